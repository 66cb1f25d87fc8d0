package paradex

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitwit/paradex/clients"
	"github.com/vitwit/paradex/logger"
	"github.com/vitwit/paradex/signer"
	"github.com/vitwit/paradex/types"
	"github.com/vitwit/paradex/utils"
	"github.com/vitwit/paradex/utils/snip12"
)

const junkAddress = "0x37ff1c9d89a50b3dd3a4f90e020ea80251b09ba28049efbe4f7d3fec2995c4a"

func networkConfig() *types.ParadexConfig {
	return &types.ParadexConfig{
		ParadexFullNodeRPCURL:     "https://example-fullnode-rpc-url.com",
		ParadexChainID:            "0x505249564154455f534e5f504f54435f5345504f4c4941",
		EthereumChainID:           "11155111",
		StarknetChainID:           "SN_SEPOLIA",
		ParaclearAccountHash:      "0x41cb0280ebadaa75f996d8d92c6f265f6d040bb3ba442e5f86a554f1765244e",
		ParaclearAccountProxyHash: "0x3530cc4759d78042f1b543bf797f5f3d647cde0388c33734cf91b7f7b9314a9",
		ParaclearAddress:          "0x286003f7c7bfc3f94e8f0af48b48302e7aee2fb13c23b141479ba00832ef2c6",
		ParaclearDecimals:         8,
		BridgedTokens: map[string]types.BridgedToken{
			"USDC": {
				Name:            "USD Coin",
				Symbol:          "USDC",
				Decimals:        6,
				L1TokenAddress:  "0x29A873159D5e14AcBd63913D4A7E2df04570c666",
				L1BridgeAddress: "0x8586e05adc0C35aa11609023d4Ae6075Cb813b4C",
				L2TokenAddress:  "0x6f373b346561036d98ea10fb3e60d2f459c872b1933b50b21fe6ef4fda3b75e",
				L2BridgeAddress: "0x46e9237f5408b5f899e72125dd69bd55485a287aaf24663d3ebe00d237fc7ef",
			},
		},
	}
}

type fakeParaclear struct {
	mu      sync.Mutex
	result  []string
	reads   []types.Call
	senders []*felt.Felt
	batches [][]types.Call
}

func (f *fakeParaclear) CallContract(ctx context.Context, call types.Call) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads = append(f.reads, call)
	return f.result, nil
}

func (f *fakeParaclear) Invoke(ctx context.Context, sender *felt.Felt, calls []types.Call, s clients.HashSigner) (*types.TxResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, _, err := s.SignHash(new(felt.Felt).SetUint64(1)); err != nil {
		return nil, err
	}
	f.senders = append(f.senders, sender)
	f.batches = append(f.batches, calls)
	return &types.TxResult{TransactionHash: "0xabc"}, nil
}

type countingRecorder struct {
	mu       sync.Mutex
	counters map[string]int
}

func (c *countingRecorder) IncCounter(name string, _ map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counters == nil {
		c.counters = map[string]int{}
	}
	c.counters[name]++
}

func (c *countingRecorder) ObserveLatency(string, time.Duration, map[string]string) {}

func (c *countingRecorder) count(name string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counters[name]
}

func newTestClient(t *testing.T, node *fakeParaclear, opts ...Option) *Paradex {
	t.Helper()
	opts = append([]Option{
		WithNetworkConfig(networkConfig()),
		WithParaclear(node),
		WithLogger(logger.NoopLogger{}),
	}, opts...)
	p, err := New(context.Background(), nil, opts...)
	require.NoError(t, err)
	t.Cleanup(p.Close)
	return p
}

func TestAccountFromEthSignerAndWithdraw(t *testing.T) {
	node := &fakeParaclear{result: []string{"9900000000"}}
	rec := &countingRecorder{}
	p := newTestClient(t, node, WithMetrics(rec))

	es, err := signer.FromMnemonic("test test test test test test test test test test test junk")
	require.NoError(t, err)

	acc, err := p.AccountFromEthSigner(context.Background(), es)
	require.NoError(t, err)
	assert.Equal(t, junkAddress, acc.Address().String())
	assert.Equal(t, 1, rec.count("account_derived"))

	balance, err := p.TokenBalance(context.Background(), acc, "USDC")
	require.NoError(t, err)
	assert.Equal(t, "99", balance.Size)
	require.Len(t, node.reads, 1)
	assert.Equal(t, junkAddress, node.reads[0].Calldata[0])

	res, err := p.Withdraw(context.Background(), acc, "USDC", "100")
	require.NoError(t, err)
	assert.Equal(t, "0xabc", res.Hash)
	require.Len(t, node.batches, 1)
	assert.True(t, node.senders[0].Equal(acc.Address()))
	assert.Equal(t, "withdraw", node.batches[0][0].Entrypoint)
	assert.Equal(t, []string{networkConfig().BridgedTokens["USDC"].L2TokenAddress, "10000000000"}, node.batches[0][0].Calldata)
	assert.Equal(t, 1, rec.count("withdraw_submitted"))
}

func TestReceivableAmount(t *testing.T) {
	node := &fakeParaclear{result: []string{"1000000"}}
	p := newTestClient(t, node)

	res, err := p.ReceivableAmount(context.Background(), "USDC", "100")
	require.NoError(t, err)
	assert.Equal(t, "99", res.ReceivableAmount)
	assert.Equal(t, "99000000", res.ReceivableAmountChain)
	assert.Equal(t, "0.01", res.SocializedLossFactor)

	_, err = p.ReceivableAmount(context.Background(), "ASDF", "100")
	assert.ErrorIs(t, err, types.ErrUnsupportedToken)
}

type unknownWallet struct{}

func (unknownWallet) ClassHashAt(context.Context, rpc.BlockID, *felt.Felt) (*felt.Felt, error) {
	return utils.MustHexToFelt("0x1234"), nil
}

func (unknownWallet) Call(context.Context, rpc.FunctionCall, rpc.BlockID) ([]*felt.Felt, error) {
	return nil, nil
}

type recordingStarknetSigner struct {
	signed int
}

func (s *recordingStarknetSigner) Address() *felt.Felt {
	return utils.MustHexToFelt("0x4383e793c2d1bc29be7647794936371dac6955636f22069a033d4392794780a")
}

func (s *recordingStarknetSigner) SignMessage(context.Context, snip12.TypedData) (types.Signature, error) {
	s.signed++
	return types.ArraySignature("0x1", "0x2"), nil
}

func TestAccountFromStarknetAccountRejectsUnknownWallet(t *testing.T) {
	rec := &countingRecorder{}
	p := newTestClient(t, &fakeParaclear{}, WithStarknetReader(unknownWallet{}), WithMetrics(rec))

	ss := &recordingStarknetSigner{}
	_, err := p.AccountFromStarknetAccount(context.Background(), ss)
	require.ErrorIs(t, err, types.ErrUnsupportedWallet)
	assert.Zero(t, ss.signed)
	assert.Equal(t, 1, rec.count("wallet_unsupported"))
}

func TestNewFetchesNetworkConfig(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"starknet_fullnode_rpc_url": "https://pathfinder.api.testnet.paradex.trade/rpc/v0_7",
			"starknet_chain_id": "PRIVATE_SN_POTC_SEPOLIA",
			"paraclear_address": "0x286003f7c7bfc3f94e8f0af48b48302e7aee2fb13c23b141479ba00832ef2c6",
			"paraclear_decimals": 8,
			"paraclear_account_proxy_hash": "0x3530cc4759d78042f1b543bf797f5f3d647cde0388c33734cf91b7f7b9314a9",
			"paraclear_account_hash": "0x41cb0280ebadaa75f996d8d92c6f265f6d040bb3ba442e5f86a554f1765244e",
			"bridged_tokens": [],
			"l1_chain_id": "11155111"
		}`))
	}))
	defer srv.Close()

	p, err := New(context.Background(),
		&types.Config{ConfigURL: srv.URL, DefaultTimeout: 5 * time.Second},
		WithParaclear(&fakeParaclear{}),
		WithLogger(logger.NoopLogger{}),
		WithHTTPClient(srv.Client()),
	)
	require.NoError(t, err)
	defer p.Close()

	assert.Equal(t, "SN_SEPOLIA", p.Config().StarknetChainID)
	assert.Equal(t, "PRIVATE_SN_POTC_SEPOLIA", p.Config().ParadexChainID)
	assert.Equal(t, 5*time.Second, p.timeout)
}

func TestNewFailsWhenConfigUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := New(context.Background(), &types.Config{ConfigURL: srv.URL}, WithLogger(logger.NoopLogger{}))
	assert.ErrorIs(t, err, types.ErrConfig)
}
