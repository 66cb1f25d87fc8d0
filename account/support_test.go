package account

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitwit/paradex/types"
	"github.com/vitwit/paradex/utils"
)

func TestSeedBeforeCheck(t *testing.T) {
	s := newSupport(ArgentV030, &fakeReader{})

	_, err := s.SeedFromSignature(types.ArraySignature("0x1", "0x2"))
	require.ErrorIs(t, err, types.ErrPreconditionViolated)
	assert.Contains(t, err.Error(), "check account contract support first")
}

func TestFlatPairWallets(t *testing.T) {
	for _, hash := range []string{ArgentV030, ArgentV031} {
		t.Run(hash, func(t *testing.T) {
			reader := &fakeReader{}
			s := newSupport(hash, reader)

			res, err := s.Check(context.Background())
			require.NoError(t, err)
			assert.True(t, res.OK)
			assert.Zero(t, reader.callCount())

			seed, err := s.SeedFromSignature(types.ArraySignature("0x1", "0x2"))
			require.NoError(t, err)
			assert.Equal(t, "0x1", seed.String())

			for _, bad := range []types.Signature{
				types.ArraySignature("0x1"),
				types.ArraySignature("0x1", "0x2", "0x3"),
				types.ArraySignature(),
			} {
				_, err := s.SeedFromSignature(bad)
				assert.ErrorIs(t, err, types.ErrMalformedSignature)
			}
		})
	}
}

func TestRecordSignatureIsNormalised(t *testing.T) {
	s := newSupport(ArgentV030, &fakeReader{})
	_, err := s.Check(context.Background())
	require.NoError(t, err)

	sig := types.WeierstrassSignature(utils.FeltToBig(utils.MustHexToFelt("0xabc")), utils.FeltToBig(utils.MustHexToFelt("0xdef")))
	seed, err := s.SeedFromSignature(sig)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", seed.String())
}

func TestArgentV040(t *testing.T) {
	tests := []struct {
		name    string
		owner   SignerKind
		sig     []string
		wantOK  bool
		want    string
		wantErr error
	}{
		{name: "starknet signer compact", owner: SignerStarknet, sig: []string{"0x1", "0x2"}, wantOK: true, want: "0x1"},
		{name: "starknet signer default", owner: SignerStarknet, sig: []string{"0x1", "0x2", "0x3", "0x4", "0x5"}, wantOK: true, want: "0x4"},
		{
			name:   "starknet signer with guardian",
			owner:  SignerStarknet,
			sig:    []string{"0x2", "0x2", "0x3", "0x4", "0x5", "0x6", "0x7", "0x8", "0x9"},
			wantOK: true,
			want:   "0x4",
		},
		{
			name:    "unexpected signature",
			owner:   SignerStarknet,
			sig:     []string{"0x2", "0x2", "0x3", "0x4", "0x5", "0x6", "0x7", "0x8", "0x9", "0x10"},
			wantOK:  true,
			wantErr: types.ErrMalformedSignature,
		},
		{
			name:    "count does not match length",
			owner:   SignerStarknet,
			sig:     []string{"0x3", "0x2", "0x3", "0x4", "0x5"},
			wantOK:  true,
			wantErr: types.ErrMalformedSignature,
		},
		{name: "secp256k1 signer", owner: SignerSecp256k1},
		{name: "secp256r1 signer", owner: SignerSecp256r1},
		{name: "eip191 signer", owner: SignerEip191},
		{name: "webauthn signer", owner: SignerWebauthn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := &fakeReader{answer: felts(uint64(tt.owner))}
			s := newSupport(ArgentV040, reader)

			res, err := s.Check(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, res.OK)
			require.Equal(t, 1, reader.callCount())
			assert.True(t, reader.calls[0].EntryPointSelector.Equal(utils.Selector("get_owner_type")))
			assert.True(t, reader.calls[0].ContractAddress.Equal(walletAddress))

			seed, err := s.SeedFromSignature(types.ArraySignature(tt.sig...))
			switch {
			case !tt.wantOK:
				assert.ErrorIs(t, err, types.ErrPreconditionViolated)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, seed)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, seed.String())
			}
		})
	}
}

func TestAlwaysUnsupportedWallets(t *testing.T) {
	for _, hash := range []string{ArgentMulticall, ArgentMultisig, BraavosMultiOwnerV1} {
		t.Run(hash, func(t *testing.T) {
			// Even a single stark signer configuration is rejected.
			reader := &fakeReader{answer: felts(1, 7, 0, 0)}
			s := newSupport(hash, reader)

			res, err := s.Check(context.Background())
			require.NoError(t, err)
			assert.False(t, res.OK)
			assert.Zero(t, reader.callCount())

			_, err = s.SeedFromSignature(types.ArraySignature("0x1", "0x2"))
			assert.ErrorIs(t, err, types.ErrPreconditionViolated)
		})
	}
}

func TestBraavos(t *testing.T) {
	tests := []struct {
		name    string
		signers []uint64
		wantOK  bool
	}{
		{"single stark signer", []uint64{1, 11, 0, 0}, true},
		{"multiple stark signers", []uint64{2, 11, 12, 0, 0}, false},
		{"no stark signer", []uint64{0, 0, 0}, false},
		{"secp256r1 strong signer", []uint64{1, 11, 1, 21, 0}, false},
		{"webauthn strong signer", []uint64{1, 11, 0, 1, 31}, false},
		{"malformed answer", []uint64{1, 11}, false},
	}

	for _, hash := range []string{BraavosV100, BraavosV110, BraavosV120} {
		for _, tt := range tests {
			t.Run(hash[:10]+" "+tt.name, func(t *testing.T) {
				reader := &fakeReader{answer: felts(tt.signers...)}
				s := newSupport(hash, reader)

				res, err := s.Check(context.Background())
				require.NoError(t, err)
				assert.Equal(t, tt.wantOK, res.OK)
				require.Equal(t, 1, reader.callCount())
				assert.True(t, reader.calls[0].EntryPointSelector.Equal(utils.Selector("get_signers")))

				if !tt.wantOK {
					_, err := s.SeedFromSignature(types.ArraySignature("0x1", "0x2"))
					assert.ErrorIs(t, err, types.ErrPreconditionViolated)
					return
				}

				seed, err := s.SeedFromSignature(types.ArraySignature("0x1", "0x2"))
				require.NoError(t, err)
				assert.Equal(t, "0x1", seed.String())

				seed, err = s.SeedFromSignature(types.ArraySignature("0x1", "0x2", "0x3"))
				require.NoError(t, err)
				assert.Equal(t, "0x2", seed.String())

				_, err = s.SeedFromSignature(types.ArraySignature("0x1", "0x2", "0x3", "0x4"))
				assert.ErrorIs(t, err, types.ErrMalformedSignature)
			})
		}
	}
}

func TestUnknownClassHash(t *testing.T) {
	reader := &fakeReader{}
	s := newSupport("0x0000", reader)

	res, err := s.Check(context.Background())
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, "unknown", res.Variant)
	assert.Zero(t, reader.callCount())

	_, err = s.SeedFromSignature(types.ArraySignature("0x1", "0x2"))
	assert.ErrorIs(t, err, types.ErrPreconditionViolated)
}

func TestCheckIsCached(t *testing.T) {
	reader := &fakeReader{answer: felts(uint64(SignerStarknet))}
	s := newSupport(ArgentV040, reader)

	first, err := s.Check(context.Background())
	require.NoError(t, err)
	second, err := s.Check(context.Background())
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := s.SeedFromSignature(types.ArraySignature("0x1", "0x2"))
		require.NoError(t, err)
	}

	assert.Equal(t, first, second)
	assert.Equal(t, 1, reader.callCount())
}

func TestConcurrentChecksReadOnce(t *testing.T) {
	reader := &fakeReader{answer: felts(1, 11, 0, 0)}
	s := newSupport(BraavosV120, reader)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := s.Check(context.Background())
			assert.NoError(t, err)
			assert.True(t, res.OK)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, reader.callCount())
}

func TestProbeErrorIsNotCached(t *testing.T) {
	boom := errors.New("node unavailable")
	reader := &fakeReader{err: boom}
	s := newSupport(ArgentV040, reader)

	_, err := s.Check(context.Background())
	assert.Same(t, boom, err)

	_, err = s.SeedFromSignature(types.ArraySignature("0x1", "0x2"))
	assert.ErrorIs(t, err, types.ErrPreconditionViolated)

	reader.err = nil
	reader.answer = felts(uint64(SignerStarknet))
	res, err := s.Check(context.Background())
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, 2, reader.callCount())
}

func TestSignatureIsNotMutated(t *testing.T) {
	s := newSupport(BraavosV100, &fakeReader{answer: felts(1, 11, 0, 0)})
	_, err := s.Check(context.Background())
	require.NoError(t, err)

	sig := types.ArraySignature("0x1", "0x2", "0x3")
	_, err = s.SeedFromSignature(sig)
	require.NoError(t, err)
	assert.Equal(t, []string{"0x1", "0x2", "0x3"}, sig.Values())
}

func TestCustomRegistryStrategies(t *testing.T) {
	registry := NewRegistry(map[string]Variant{
		"0xa1": {Name: "pair_or_tagged", Strategy: StrategyFlatPairOrTaggedPair},
		"0xa2": {Name: "multi_signer", Strategy: StrategyTaggedMultiSigner},
	})

	t.Run("flat pair or tagged pair", func(t *testing.T) {
		s := newSupport("0xa1", &fakeReader{}, WithRegistry(registry))
		res, err := s.Check(context.Background())
		require.NoError(t, err)
		assert.True(t, res.OK)

		seed, err := s.SeedFromSignature(types.ArraySignature("0x7", "0x8"))
		require.NoError(t, err)
		assert.Equal(t, "0x7", seed.String())

		seed, err = s.SeedFromSignature(types.ArraySignature("0x0", "0x7", "0x8"))
		require.NoError(t, err)
		assert.Equal(t, "0x7", seed.String())

		_, err = s.SeedFromSignature(types.ArraySignature("0x7"))
		assert.ErrorIs(t, err, types.ErrMalformedSignature)
	})

	t.Run("tagged multi signer", func(t *testing.T) {
		s := newSupport("0xa2", &fakeReader{}, WithRegistry(registry))
		res, err := s.Check(context.Background())
		require.NoError(t, err)
		assert.True(t, res.OK)

		seed, err := s.SeedFromSignature(types.ArraySignature("0x1", "0x0", "0xbeef", "0x4", "0x5"))
		require.NoError(t, err)
		assert.Equal(t, "0x4", seed.String())

		for _, bad := range [][]string{
			{"0x1", "0x1", "0xbeef", "0x4", "0x5"},                             // secp256k1 tag
			{"0x2", "0x0", "0xbeef", "0x4", "0x5", "0x0", "0x1", "0x2", "0x3"}, // two signers
			{"0x1", "0x0", "0xbeef", "0x4"},                                    // truncated
			{"0x1", "0x2"},
		} {
			_, err := s.SeedFromSignature(types.ArraySignature(bad...))
			assert.ErrorIs(t, err, types.ErrMalformedSignature, bad)
		}
	})

	t.Run("default rows are not inherited", func(t *testing.T) {
		s := newSupport(ArgentV030, &fakeReader{}, WithRegistry(registry))
		res, err := s.Check(context.Background())
		require.NoError(t, err)
		assert.False(t, res.OK)
	})
}

func TestConditionalWithoutReader(t *testing.T) {
	s := NewAccountSupport(walletAddress, utils.MustHexToFelt(ArgentV040), nil)
	_, err := s.Check(context.Background())
	assert.ErrorIs(t, err, types.ErrPreconditionViolated)
}

func TestDecodeSignerList(t *testing.T) {
	list, ok := DecodeSignerList(felts(2, 1, 2, 1, 3, 0))
	require.True(t, ok)
	assert.Len(t, list.Stark, 2)
	assert.Len(t, list.Secp256r1, 1)
	assert.Empty(t, list.Webauthn)

	_, ok = DecodeSignerList(felts(5, 1))
	assert.False(t, ok)
	_, ok = DecodeSignerList(felts(0, 0, 0, 9))
	assert.False(t, ok)
}
