package eip712

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

const (
	DomainName     = "Paradex"
	DomainVersion  = "1"
	StarkKeyAction = "STARK Key"
)

// StarkKeyTypedData builds the message an Ethereum wallet signs to derive
// its Paradex stark key. Only the chain id varies.
func StarkKeyTypedData(ethereumChainID string) (apitypes.TypedData, error) {
	chainID, ok := new(big.Int).SetString(ethereumChainID, 10)
	if !ok {
		return apitypes.TypedData{}, fmt.Errorf("invalid ethereum chain id %q", ethereumChainID)
	}
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
			},
			"Constant": {
				{Name: "action", Type: "string"},
			},
		},
		PrimaryType: "Constant",
		Domain: apitypes.TypedDataDomain{
			Name:    DomainName,
			Version: DomainVersion,
			ChainId: (*math.HexOrDecimal256)(chainID),
		},
		Message: apitypes.TypedDataMessage{
			"action": StarkKeyAction,
		},
	}, nil
}

// Hash returns the EIP-712 digest keccak256("\x19\x01" ‖ domainSeparator ‖ hashStruct(message)).
func Hash(td apitypes.TypedData) ([]byte, error) {
	hash, _, err := apitypes.TypedDataAndHash(td)
	if err != nil {
		return nil, fmt.Errorf("failed to hash typed data: %w", err)
	}
	return hash, nil
}
