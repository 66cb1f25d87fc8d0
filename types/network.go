package types

// Environment selects a Paradex deployment.
type Environment string

const (
	EnvironmentTestnet Environment = "testnet"
	EnvironmentMainnet Environment = "mainnet"
)

func (e Environment) String() string {
	return string(e)
}

// APIURL returns the REST base URL of the environment.
func (e Environment) APIURL() string {
	switch e {
	case EnvironmentMainnet:
		return "https://api.prod.paradex.trade/v1"
	default:
		return "https://api.testnet.paradex.trade/v1"
	}
}

// Starknet chain identifiers.
const (
	StarknetMainnet = "SN_MAIN"
	StarknetSepolia = "SN_SEPOLIA"
)

// StarknetChainForL1 maps an Ethereum chain id to the Starknet chain settled on it.
func StarknetChainForL1(ethereumChainID string) (string, bool) {
	switch ethereumChainID {
	case "1":
		return StarknetMainnet, true
	case "11155111":
		return StarknetSepolia, true
	default:
		return "", false
	}
}

// PublicStarknetRPC returns a public JSON-RPC endpoint for a Starknet chain.
func PublicStarknetRPC(starknetChainID string) (string, bool) {
	switch starknetChainID {
	case StarknetMainnet:
		return "https://starknet-mainnet.public.blastapi.io", true
	case StarknetSepolia:
		return "https://starknet-sepolia.public.blastapi.io", true
	default:
		return "", false
	}
}
