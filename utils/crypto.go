package utils

import (
	"crypto/ecdsa"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
	snutils "github.com/NethermindEth/starknet.go/utils"
	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
	pedersenhash "github.com/consensys/gnark-crypto/ecc/stark-curve/pedersen-hash"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	// mask250 truncates keccak digests to 250 bits.
	mask250 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 250), big.NewInt(1))

	// fieldPrime is the Starknet field modulus 2^251 + 17*2^192 + 1.
	fieldPrime, _ = new(big.Int).SetString("800000000000011000000000000000000000000000000000000000000000001", 16)
	halfPrime     = new(big.Int).Rsh(fieldPrime, 1)
)

// HexToFelt parses a 0x-prefixed (or bare) hex string into a felt.
func HexToFelt(s string) (*felt.Felt, error) {
	f, err := snutils.HexToFelt(s)
	if err != nil {
		return nil, fmt.Errorf("invalid felt %q: %w", s, err)
	}
	return f, nil
}

// MustHexToFelt is HexToFelt for package-level constants.
func MustHexToFelt(s string) *felt.Felt {
	f, err := HexToFelt(s)
	if err != nil {
		panic(err)
	}
	return f
}

// ParseFelt accepts hex ("0x..."), decimal digits, or falls back to a
// Cairo short string.
func ParseFelt(s string) (*felt.Felt, error) {
	switch {
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		return HexToFelt(s)
	case s != "" && strings.Trim(s, "0123456789") == "":
		n, _ := new(big.Int).SetString(s, 10)
		return FeltFromBig(n)
	default:
		return ShortString(s)
	}
}

// ParseNumber accepts only hex or decimal digits.
func ParseNumber(s string) (*felt.Felt, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return HexToFelt(s)
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return FeltFromBig(n)
}

// BigToFelt reduces n modulo the field prime, so negative values wrap the
// way Cairo encodes them.
func BigToFelt(n *big.Int) *felt.Felt {
	return snutils.BigIntToFelt(new(big.Int).Mod(n, fieldPrime))
}

// FeltFromBig converts n without reduction and rejects values outside [0, p).
func FeltFromBig(n *big.Int) (*felt.Felt, error) {
	if n.Sign() < 0 || n.Cmp(fieldPrime) >= 0 {
		return nil, fmt.Errorf("value %s out of felt range", n.String())
	}
	return snutils.BigIntToFelt(n), nil
}

func FeltToBig(f *felt.Felt) *big.Int {
	return f.BigInt(new(big.Int))
}

// FeltToUint64 reports whether f fits in a uint64 and its value.
func FeltToUint64(f *felt.Felt) (uint64, bool) {
	n := FeltToBig(f)
	if !n.IsUint64() {
		return 0, false
	}
	return n.Uint64(), true
}

// SignedFeltToBig reads a felt as a signed Cairo integer: values above p/2
// are negative.
func SignedFeltToBig(f *felt.Felt) *big.Int {
	n := FeltToBig(f)
	if n.Cmp(halfPrime) > 0 {
		n.Sub(n, fieldPrime)
	}
	return n
}

// FeltBytes returns the 32-byte big-endian encoding of f.
func FeltBytes(f *felt.Felt) []byte {
	b := f.Bytes()
	return b[:]
}

// ShortString encodes an ASCII string of at most 31 characters as a felt.
func ShortString(s string) (*felt.Felt, error) {
	if len(s) > 31 {
		return nil, fmt.Errorf("short string %q longer than 31 characters", s)
	}
	n := new(big.Int)
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7f {
			return nil, fmt.Errorf("short string %q is not ascii", s)
		}
		n.Lsh(n, 8)
		n.Or(n, big.NewInt(int64(s[i])))
	}
	return BigToFelt(n), nil
}

// MustShortString is ShortString for constants.
func MustShortString(s string) *felt.Felt {
	f, err := ShortString(s)
	if err != nil {
		panic(err)
	}
	return f
}

// StarknetKeccak is keccak256 truncated to 250 bits.
func StarknetKeccak(data []byte) *felt.Felt {
	n := new(big.Int).SetBytes(crypto.Keccak256(data))
	return BigToFelt(n.And(n, mask250))
}

// Selector returns the entry point selector of a contract function.
func Selector(name string) *felt.Felt {
	return snutils.GetSelectorFromNameFelt(name)
}

// Pedersen hashes two felts.
func Pedersen(a, b *felt.Felt) *felt.Felt {
	x, y := toElement(a), toElement(b)
	h := pedersenhash.Pedersen(&x, &y)
	return fromElement(&h)
}

// PedersenArray computes h(h(...h(h(0, a0), a1)..., an), len), the
// Starknet hash-on-elements.
func PedersenArray(elems ...*felt.Felt) *felt.Felt {
	var acc fp.Element
	for _, e := range elems {
		x := toElement(e)
		acc = pedersenhash.Pedersen(&acc, &x)
	}
	var n fp.Element
	n.SetUint64(uint64(len(elems)))
	acc = pedersenhash.Pedersen(&acc, &n)
	return fromElement(&acc)
}

func toElement(f *felt.Felt) fp.Element {
	var e fp.Element
	e.SetBigInt(FeltToBig(f))
	return e
}

func fromElement(e *fp.Element) *felt.Felt {
	var n big.Int
	e.BigInt(&n)
	return BigToFelt(&n)
}

// Ethereum helpers

// PrivateKeyFromHex creates a secp256k1 private key from a hex string.
func PrivateKeyFromHex(hexKey string) (*ecdsa.PrivateKey, error) {
	return crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
}

// SignHash signs a 32-byte digest and returns the 65-byte signature as hex
// with v in {27, 28}.
func SignHash(hash []byte, privateKey *ecdsa.PrivateKey) (string, error) {
	signature, err := crypto.Sign(hash, privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign hash: %w", err)
	}
	signature[64] += 27
	return hexutil.Encode(signature), nil
}

// RecoverAddressFromSignature recovers the Ethereum address that produced signature over hash.
func RecoverAddressFromSignature(hash []byte, signature string) (common.Address, error) {
	sigBytes, err := hex.DecodeString(strings.TrimPrefix(signature, "0x"))
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to decode signature: %w", err)
	}
	if len(sigBytes) != 65 {
		return common.Address{}, fmt.Errorf("signature must be 65 bytes, got %d", len(sigBytes))
	}
	if sigBytes[64] >= 27 {
		sigBytes[64] -= 27
	}
	pubKey, err := crypto.SigToPub(hash, sigBytes)
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to recover public key: %w", err)
	}
	return crypto.PubkeyToAddress(*pubKey), nil
}
