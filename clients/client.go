package clients

import (
	"context"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/vitwit/paradex/types"
)

// ClassHashReader resolves the class hash deployed at an address.
type ClassHashReader interface {
	ClassHashAt(ctx context.Context, blockID rpc.BlockID, contractAddress *felt.Felt) (*felt.Felt, error)
}

// ContractReader executes a read-only call against a Starknet contract.
type ContractReader interface {
	Call(ctx context.Context, call rpc.FunctionCall, blockID rpc.BlockID) ([]*felt.Felt, error)
}

// StarknetReader is the read capability needed to classify a wallet.
type StarknetReader interface {
	ClassHashReader
	ContractReader
}

// Caller reads Paraclear contracts.
type Caller interface {
	CallContract(ctx context.Context, call types.Call) ([]string, error)
}

// HashSigner signs transaction hashes on behalf of an account.
type HashSigner interface {
	SignHash(hash *felt.Felt) (r, s *felt.Felt, err error)
}

// Invoker submits a batch of calls from an account in one transaction.
type Invoker interface {
	Invoke(ctx context.Context, sender *felt.Felt, calls []types.Call, signer HashSigner) (*types.TxResult, error)
}

// LatestBlock is the block every read is made against.
func LatestBlock() rpc.BlockID {
	return rpc.WithBlockTag("latest")
}
