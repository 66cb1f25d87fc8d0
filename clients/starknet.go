package clients

import (
	"fmt"

	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/vitwit/paradex/types"
)

var _ StarknetReader = (*rpc.Provider)(nil)

// NewStarknetProvider dials a Starknet JSON-RPC node.
func NewStarknetProvider(url string) (*rpc.Provider, error) {
	provider, err := rpc.NewProvider(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Starknet RPC: %w", err)
	}
	return provider, nil
}

// PublicStarknetProvider dials the public node of a Starknet chain.
func PublicStarknetProvider(starknetChainID string) (*rpc.Provider, error) {
	url, ok := types.PublicStarknetRPC(starknetChainID)
	if !ok {
		return nil, types.NewError(types.CodeConfig, fmt.Sprintf("no public Starknet RPC for chain %s", starknetChainID), nil)
	}
	return NewStarknetProvider(url)
}
