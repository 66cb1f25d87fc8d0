package clients

import (
	"context"
	"fmt"
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/vitwit/paradex/logger"
	"github.com/vitwit/paradex/types"
	"github.com/vitwit/paradex/utils"
)

// DefaultMaxFee caps the fee of INVOKE transactions: 0.01 ETH.
var DefaultMaxFee = big.NewInt(1e16)

var (
	_ Caller  = (*ParaclearClient)(nil)
	_ Invoker = (*ParaclearClient)(nil)

	invokePrefix = utils.MustShortString("invoke")
)

// ParaclearClient talks JSON-RPC to the Paradex full node.
type ParaclearClient struct {
	rpc     *gethrpc.Client
	chainID *felt.Felt
	maxFee  *big.Int
	logger  logger.Logger
}

type ParaclearOption func(*ParaclearClient)

func WithMaxFee(fee *big.Int) ParaclearOption {
	return func(c *ParaclearClient) {
		if fee != nil {
			c.maxFee = new(big.Int).Set(fee)
		}
	}
}

func WithClientLogger(l logger.Logger) ParaclearOption {
	return func(c *ParaclearClient) {
		c.logger = logger.OrNoop(l)
	}
}

// DialParaclear connects to the node at url. chainID is the Paradex chain
// id, either hex or its short string form.
func DialParaclear(ctx context.Context, url, chainID string, opts ...ParaclearOption) (*ParaclearClient, error) {
	client, err := gethrpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Paraclear RPC: %w", err)
	}
	c, err := NewParaclearClient(client, chainID, opts...)
	if err != nil {
		client.Close()
		return nil, err
	}
	return c, nil
}

func NewParaclearClient(client *gethrpc.Client, chainID string, opts ...ParaclearOption) (*ParaclearClient, error) {
	id, err := utils.ParseFelt(chainID)
	if err != nil {
		return nil, types.NewError(types.CodeConfig, "invalid paradex chain id", chainID)
	}
	c := &ParaclearClient{
		rpc:     client,
		chainID: id,
		maxFee:  new(big.Int).Set(DefaultMaxFee),
		logger:  logger.NoopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *ParaclearClient) Close() {
	c.rpc.Close()
}

type functionCall struct {
	ContractAddress    string   `json:"contract_address"`
	EntryPointSelector string   `json:"entry_point_selector"`
	Calldata           []string `json:"calldata"`
}

type invokeTransaction struct {
	Type          string   `json:"type"`
	SenderAddress string   `json:"sender_address"`
	Calldata      []string `json:"calldata"`
	MaxFee        string   `json:"max_fee"`
	Version       string   `json:"version"`
	Signature     []string `json:"signature"`
	Nonce         string   `json:"nonce"`
}

// CallContract implements Caller.
func (c *ParaclearClient) CallContract(ctx context.Context, call types.Call) ([]string, error) {
	contract, err := utils.HexToFelt(call.ContractAddress)
	if err != nil {
		return nil, err
	}
	calldata, err := feltStrings(call.Calldata)
	if err != nil {
		return nil, err
	}

	var result []string
	err = c.rpc.CallContext(ctx, &result, "starknet_call", functionCall{
		ContractAddress:    contract.String(),
		EntryPointSelector: utils.Selector(call.Entrypoint).String(),
		Calldata:           calldata,
	}, "latest")
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Nonce returns the current nonce of an account.
func (c *ParaclearClient) Nonce(ctx context.Context, address *felt.Felt) (*felt.Felt, error) {
	var nonce string
	if err := c.rpc.CallContext(ctx, &nonce, "starknet_getNonce", "latest", address.String()); err != nil {
		return nil, err
	}
	return utils.HexToFelt(nonce)
}

// Invoke implements Invoker with an INVOKE v1 transaction.
func (c *ParaclearClient) Invoke(ctx context.Context, sender *felt.Felt, calls []types.Call, signer HashSigner) (*types.TxResult, error) {
	if len(calls) == 0 {
		return nil, types.NewError(types.CodeContractCall, "no calls to execute", nil)
	}
	calldata, err := ExecuteCalldata(calls)
	if err != nil {
		return nil, err
	}
	nonce, err := c.Nonce(ctx, sender)
	if err != nil {
		return nil, err
	}

	maxFee := utils.BigToFelt(c.maxFee)
	hash := InvokeV1Hash(sender, calldata, maxFee, c.chainID, nonce)
	r, s, err := signer.SignHash(hash)
	if err != nil {
		return nil, err
	}

	tx := invokeTransaction{
		Type:          "INVOKE",
		SenderAddress: sender.String(),
		Calldata:      make([]string, len(calldata)),
		MaxFee:        maxFee.String(),
		Version:       "0x1",
		Signature:     []string{r.String(), s.String()},
		Nonce:         nonce.String(),
	}
	for i, v := range calldata {
		tx.Calldata[i] = v.String()
	}

	var result types.TxResult
	if err := c.rpc.CallContext(ctx, &result, "starknet_addInvokeTransaction", tx); err != nil {
		fields := map[string]any{"sender": tx.SenderAddress, "error": err}
		if code, ok := RPCErrorCode(err); ok {
			fields["code"] = code
		}
		c.logger.Warn("invoke rejected", fields)
		return nil, err
	}

	c.logger.Info("invoke submitted", map[string]any{
		"sender": tx.SenderAddress,
		"hash":   result.TransactionHash,
		"calls":  len(calls),
	})
	return &result, nil
}

// ExecuteCalldata encodes calls for a Cairo 0 account's __execute__:
// [n, (to, selector, offset, len)..., total, data...].
func ExecuteCalldata(calls []types.Call) ([]*felt.Felt, error) {
	head := []*felt.Felt{new(felt.Felt).SetUint64(uint64(len(calls)))}
	var data []*felt.Felt
	for _, call := range calls {
		to, err := utils.HexToFelt(call.ContractAddress)
		if err != nil {
			return nil, err
		}
		args := make([]*felt.Felt, len(call.Calldata))
		for i, a := range call.Calldata {
			if args[i], err = utils.ParseNumber(a); err != nil {
				return nil, err
			}
		}
		head = append(head,
			to,
			utils.Selector(call.Entrypoint),
			new(felt.Felt).SetUint64(uint64(len(data))),
			new(felt.Felt).SetUint64(uint64(len(args))),
		)
		data = append(data, args...)
	}
	head = append(head, new(felt.Felt).SetUint64(uint64(len(data))))
	return append(head, data...), nil
}

// InvokeV1Hash is the transaction hash of an INVOKE v1 transaction.
func InvokeV1Hash(sender *felt.Felt, calldata []*felt.Felt, maxFee, chainID, nonce *felt.Felt) *felt.Felt {
	return utils.PedersenArray(
		invokePrefix,
		new(felt.Felt).SetUint64(1),
		sender,
		new(felt.Felt),
		utils.PedersenArray(calldata...),
		maxFee,
		chainID,
		nonce,
	)
}

func feltStrings(values []string) ([]string, error) {
	out := make([]string, len(values))
	for i, v := range values {
		f, err := utils.ParseNumber(v)
		if err != nil {
			return nil, err
		}
		out[i] = f.String()
	}
	return out, nil
}
