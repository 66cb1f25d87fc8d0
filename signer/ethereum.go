package signer

import (
	"context"
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/tyler-smith/go-bip32"
	"github.com/tyler-smith/go-bip39"
	"github.com/vitwit/paradex/utils"
	"github.com/vitwit/paradex/utils/eip712"
)

// EthereumSigner is any wallet able to sign EIP-712 typed data. The result
// is the 65-byte signature as 0x-prefixed hex.
type EthereumSigner interface {
	SignTypedData(ctx context.Context, typedData apitypes.TypedData) (string, error)
}

var _ EthereumSigner = (*PrivateKeySigner)(nil)

// PrivateKeySigner signs with an in-memory secp256k1 key.
type PrivateKeySigner struct {
	key *ecdsa.PrivateKey
}

func NewPrivateKeySigner(key *ecdsa.PrivateKey) *PrivateKeySigner {
	return &PrivateKeySigner{key: key}
}

// NewPrivateKeySignerFromHex parses a hex encoded private key.
func NewPrivateKeySignerFromHex(hexKey string) (*PrivateKeySigner, error) {
	key, err := utils.PrivateKeyFromHex(hexKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return NewPrivateKeySigner(key), nil
}

// FromMnemonic derives the first account (m/44'/60'/0'/0/0) of a BIP-39
// mnemonic with an empty passphrase.
func FromMnemonic(mnemonic string) (*PrivateKeySigner, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, "")

	key, err := deriveBIP44(seed, 60, 0)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	priv, err := crypto.ToECDSA(key)
	if err != nil {
		return nil, fmt.Errorf("invalid derived key: %w", err)
	}
	return NewPrivateKeySigner(priv), nil
}

func (s *PrivateKeySigner) Address() common.Address {
	return crypto.PubkeyToAddress(s.key.PublicKey)
}

// SignTypedData implements EthereumSigner.
func (s *PrivateKeySigner) SignTypedData(ctx context.Context, typedData apitypes.TypedData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	hash, err := eip712.Hash(typedData)
	if err != nil {
		return "", err
	}
	sig, err := utils.SignHash(hash, s.key)
	if err != nil {
		return "", err
	}

	// The signature must recover to this signer before it is used as a seed.
	recovered, err := utils.RecoverAddressFromSignature(hash, sig)
	if err != nil {
		return "", fmt.Errorf("verify typed data signature: %w", err)
	}
	if recovered != s.Address() {
		return "", fmt.Errorf("typed data signature recovers to %s, want %s", recovered.Hex(), s.Address().Hex())
	}
	return sig, nil
}

func deriveBIP44(seed []byte, coinType, index uint32) ([]byte, error) {
	masterKey, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("master key: %w", err)
	}

	key := masterKey
	// m/44'/{coinType}'/0'/0/{index}
	for _, child := range []uint32{
		bip32.FirstHardenedChild + 44,
		bip32.FirstHardenedChild + coinType,
		bip32.FirstHardenedChild + 0,
		0,
		index,
	} {
		key, err = key.NewChildKey(child)
		if err != nil {
			return nil, fmt.Errorf("derive child %d: %w", child, err)
		}
	}

	// go-bip32 may strip leading zero bytes.
	out := make([]byte, 32)
	copy(out[32-len(key.Key):], key.Key)
	return out, nil
}
