package account

import (
	"context"
	"sync"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/NethermindEth/starknet.go/rpc"
	"github.com/vitwit/paradex/types"
	"github.com/vitwit/paradex/utils"
)

// fakeReader answers get_owner_type / get_signers and counts reads.
type fakeReader struct {
	mu        sync.Mutex
	classHash *felt.Felt
	answer    []*felt.Felt
	err       error
	calls     []rpc.FunctionCall
}

func (f *fakeReader) ClassHashAt(ctx context.Context, _ rpc.BlockID, _ *felt.Felt) (*felt.Felt, error) {
	return f.classHash, nil
}

func (f *fakeReader) Call(ctx context.Context, call rpc.FunctionCall, _ rpc.BlockID) ([]*felt.Felt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

func (f *fakeReader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func felts(values ...uint64) []*felt.Felt {
	out := make([]*felt.Felt, len(values))
	for i, v := range values {
		out[i] = new(felt.Felt).SetUint64(v)
	}
	return out
}

func testConfig() *types.ParadexConfig {
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

var walletAddress = utils.MustHexToFelt("0x4383e793c2d1bc29be7647794936371dac6955636f22069a033d4392794780a")

func newSupport(classHash string, reader *fakeReader, opts ...Option) *AccountSupport {
	return NewAccountSupport(walletAddress, utils.MustHexToFelt(classHash), reader, opts...)
}
