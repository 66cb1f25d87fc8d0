package signer

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/curve"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/vitwit/paradex/utils"
)

var (
	two256 = new(big.Int).Lsh(big.NewInt(1), 256)

	// maxGrindValue is the largest multiple of the curve order below 2^256.
	maxGrindValue = new(big.Int).Sub(two256, new(big.Int).Mod(two256, curve.Curve.N))
)

// GrindKey maps a hex seed onto a uniformly distributed stark private key.
// Each round hashes the seed digits followed by the round index in hex
// (padded to an even length) and accepts the first digest below
// maxGrindValue. When the concatenation has an odd number of digits the
// last one is dropped before decoding.
func GrindKey(seedHex string) (*big.Int, error) {
	seedHex = strings.TrimPrefix(strings.TrimPrefix(seedHex, "0x"), "0X")
	for i := 0; ; i++ {
		index := strconv.FormatInt(int64(i), 16)
		if len(index)%2 == 1 {
			index = "0" + index
		}
		material := seedHex + index
		if len(material)%2 == 1 {
			material = material[:len(material)-1]
		}
		buf, err := hex.DecodeString(material)
		if err != nil {
			return nil, fmt.Errorf("grind seed %q: %w", seedHex, err)
		}
		digest := sha256.Sum256(buf)
		key := new(big.Int).SetBytes(digest[:])
		if key.Cmp(maxGrindValue) < 0 {
			return key.Mod(key, curve.Curve.N), nil
		}
	}
}

// PrivateKeyFromEthSignature grinds the r component of a 65-byte Ethereum
// signature into a stark private key.
func PrivateKeyFromEthSignature(signature string) (*big.Int, error) {
	raw, err := hexutil.Decode(ensure0x(signature))
	if err != nil {
		return nil, fmt.Errorf("decode ethereum signature: %w", err)
	}
	if len(raw) != 65 {
		return nil, fmt.Errorf("ethereum signature must be 65 bytes, got %d", len(raw))
	}
	return GrindKey(hex.EncodeToString(raw[:32]))
}

// PrivateKeyFromSeed grinds a seed felt using its minimal hex digits.
func PrivateKeyFromSeed(seed *felt.Felt) (*big.Int, error) {
	return GrindKey(utils.FeltToBig(seed).Text(16))
}

// PublicKey returns the x coordinate of privateKey·G.
func PublicKey(privateKey *big.Int) (*big.Int, error) {
	if privateKey.Sign() <= 0 || privateKey.Cmp(curve.Curve.N) >= 0 {
		return nil, fmt.Errorf("stark private key out of range")
	}
	x, _, err := curve.Curve.PrivateToPoint(privateKey)
	if err != nil {
		return nil, fmt.Errorf("derive public key: %w", err)
	}
	return x, nil
}

// Keypair derives (private, public) from a seed felt.
func Keypair(seed *felt.Felt) (*big.Int, *big.Int, error) {
	priv, err := PrivateKeyFromSeed(seed)
	if err != nil {
		return nil, nil, err
	}
	pub, err := PublicKey(priv)
	if err != nil {
		return nil, nil, err
	}
	return priv, pub, nil
}

func ensure0x(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s
	}
	return "0x" + s
}
