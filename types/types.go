package types

import (
	"math/big"
	"time"
)

// Hex is a 0x-prefixed hexadecimal string.
type Hex = string

// BridgedToken describes a token bridged between L1 and Paraclear.
type BridgedToken struct {
	Name            string `json:"name" validate:"required"`
	Symbol          string `json:"symbol" validate:"required"`
	Decimals        int    `json:"decimals" validate:"gte=0,lte=36"`
	L1TokenAddress  Hex    `json:"l1TokenAddress" validate:"required"`
	L1BridgeAddress Hex    `json:"l1BridgeAddress" validate:"required"`
	L2TokenAddress  Hex    `json:"l2TokenAddress" validate:"required,felt"`
	L2BridgeAddress Hex    `json:"l2BridgeAddress" validate:"required,felt"`
}

// ParadexConfig holds the network parameters of a Paradex environment.
// It is fetched once per session and treated as read-only.
type ParadexConfig struct {
	ParadexFullNodeRPCURL     string                  `json:"paradexFullNodeRpcUrl" validate:"required,url"`
	ParadexChainID            string                  `json:"paradexChainId" validate:"required"`
	EthereumChainID           string                  `json:"ethereumChainId" validate:"required,numeric"`
	StarknetChainID           string                  `json:"starknetChainId" validate:"required"`
	ParaclearAccountHash      Hex                     `json:"paraclearAccountHash" validate:"required,startswith=0x"`
	ParaclearAccountProxyHash Hex                     `json:"paraclearAccountProxyHash" validate:"required,startswith=0x"`
	ParaclearAddress          Hex                     `json:"paraclearAddress" validate:"required,startswith=0x"`
	ParaclearDecimals         int                     `json:"paraclearDecimals" validate:"gte=0,lte=36"`
	BridgedTokens             map[string]BridgedToken `json:"bridgedTokens" validate:"dive"`
}

// Token returns the bridged token registered under symbol.
func (c *ParadexConfig) Token(symbol string) (BridgedToken, bool) {
	t, ok := c.BridgedTokens[symbol]
	return t, ok
}

// Call is a single contract invocation.
type Call struct {
	ContractAddress Hex      `json:"contractAddress"`
	Entrypoint      string   `json:"entrypoint"`
	Calldata        []string `json:"calldata"`
}

// TxResult identifies a submitted transaction.
type TxResult struct {
	TransactionHash Hex `json:"transaction_hash"`
}

// Config contains the settings of the library itself.
type Config struct {
	Environment     Environment   `json:"environment" mapstructure:"environment" validate:"omitempty,oneof=testnet mainnet"`
	ConfigURL       string        `json:"configUrl,omitempty" mapstructure:"config_url" validate:"omitempty,url"`
	StarknetRPCURL  string        `json:"starknetRpcUrl,omitempty" mapstructure:"starknet_rpc_url" validate:"omitempty,url"`
	ParaclearRPCURL string        `json:"paraclearRpcUrl,omitempty" mapstructure:"paraclear_rpc_url" validate:"omitempty,url"`
	DefaultTimeout  time.Duration `json:"defaultTimeout,omitempty" mapstructure:"timeout"`
	MaxFee          *big.Int      `json:"maxFee,omitempty" mapstructure:"-"`
	LogLevel        string        `json:"logLevel,omitempty" mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	EnableMetrics   bool          `json:"enableMetrics,omitempty" mapstructure:"enable_metrics"`
}
