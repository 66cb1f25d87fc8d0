// Package config fetches the Paradex network configuration and loads the
// library settings.
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/vitwit/paradex/types"
	"github.com/vitwit/paradex/utils"
)

// RawBridgedToken is a token as served by /system/config.
type RawBridgedToken struct {
	Name            string `json:"name"`
	Symbol          string `json:"symbol"`
	Decimals        int    `json:"decimals"`
	L1TokenAddress  string `json:"l1_token_address"`
	L1BridgeAddress string `json:"l1_bridge_address"`
	L2TokenAddress  string `json:"l2_token_address"`
	L2BridgeAddress string `json:"l2_bridge_address"`
}

// RawParadexConfig is the /system/config response.
type RawParadexConfig struct {
	StarknetGatewayURL        string            `json:"starknet_gateway_url"`
	StarknetFullNodeRPCURL    string            `json:"starknet_fullnode_rpc_url"`
	StarknetChainID           string            `json:"starknet_chain_id"`
	BlockExplorerURL          string            `json:"block_explorer_url"`
	ParaclearAddress          string            `json:"paraclear_address"`
	ParaclearDecimals         int               `json:"paraclear_decimals"`
	ParaclearAccountProxyHash string            `json:"paraclear_account_proxy_hash"`
	ParaclearAccountHash      string            `json:"paraclear_account_hash"`
	BridgedTokens             []RawBridgedToken `json:"bridged_tokens"`
	L1CoreContractAddress     string            `json:"l1_core_contract_address"`
	L1OperatorAddress         string            `json:"l1_operator_address"`
	L1ChainID                 string            `json:"l1_chain_id"`
}

// Build maps the raw response onto ParadexConfig and validates it.
func Build(raw RawParadexConfig) (*types.ParadexConfig, error) {
	starknetChainID, ok := types.StarknetChainForL1(raw.L1ChainID)
	if !ok {
		return nil, types.NewError(types.CodeConfig, fmt.Sprintf("unsupported l1 chain id %s", raw.L1ChainID), nil)
	}

	tokens := make(map[string]types.BridgedToken, len(raw.BridgedTokens))
	for _, t := range raw.BridgedTokens {
		tokens[t.Symbol] = types.BridgedToken{
			Name:            t.Name,
			Symbol:          t.Symbol,
			Decimals:        t.Decimals,
			L1TokenAddress:  t.L1TokenAddress,
			L1BridgeAddress: t.L1BridgeAddress,
			L2TokenAddress:  t.L2TokenAddress,
			L2BridgeAddress: t.L2BridgeAddress,
		}
	}

	cfg := &types.ParadexConfig{
		ParadexFullNodeRPCURL:     raw.StarknetFullNodeRPCURL,
		ParadexChainID:            raw.StarknetChainID,
		EthereumChainID:           raw.L1ChainID,
		StarknetChainID:           starknetChainID,
		ParaclearAccountHash:      raw.ParaclearAccountHash,
		ParaclearAccountProxyHash: raw.ParaclearAccountProxyHash,
		ParaclearAddress:          raw.ParaclearAddress,
		ParaclearDecimals:         raw.ParaclearDecimals,
		BridgedTokens:             tokens,
	}
	if err := utils.ValidateParadexConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// URL returns the config endpoint of an environment.
func URL(env types.Environment) string {
	return env.APIURL() + "/system/config"
}

// Fetch downloads and builds the config at url. A nil client uses
// http.DefaultClient.
func Fetch(ctx context.Context, client *http.Client, url string) (*types.ParadexConfig, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, types.NewError(types.CodeConfig,
			fmt.Sprintf("failed to fetch paradex config: status %d", resp.StatusCode),
			strings.TrimSpace(string(body)))
	}

	var raw RawParadexConfig
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, types.NewError(types.CodeConfig, fmt.Sprintf("failed to parse paradex config: %v", err), nil)
	}
	return Build(raw)
}
