package clients

import (
	"errors"

	gethrpc "github.com/ethereum/go-ethereum/rpc"
)

// Starknet JSON-RPC error codes worth telling apart in logs.
const (
	RPCCodeContractNotFound   = 20
	RPCCodeContractError      = 40
	RPCCodeInvalidNonce       = 52
	RPCCodeInsufficientFee    = 53
	RPCCodeValidationFailure  = 55
	RPCCodeBlockNotFound      = 24
	RPCCodeInvalidTransaction = 41
)

// RPCErrorCode extracts the JSON-RPC error code of err, if it carries one.
// The error itself is never rewritten.
func RPCErrorCode(err error) (int, bool) {
	var rpcErr gethrpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.ErrorCode(), true
	}
	return 0, false
}
