package account

import (
	"math/big"

	"github.com/NethermindEth/juno/core/felt"
	"github.com/vitwit/paradex/utils"
)

var (
	contractAddressPrefix = utils.MustShortString("STARKNET_CONTRACT_ADDRESS")
	initializeSelector    = utils.Selector("initialize")

	// addressBound is 2^251 - 256.
	addressBound = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 251), big.NewInt(256))
)

// ComputeAddress returns the counterfactual address of a Paraclear
// account: a proxy of proxyClassHash initialised with accountClassHash and
// publicKey as signer, deployed with salt publicKey and deployer 0.
func ComputeAddress(publicKey, accountClassHash, proxyClassHash *felt.Felt) *felt.Felt {
	zero := new(felt.Felt)
	calldata := []*felt.Felt{
		accountClassHash,
		initializeSelector,
		new(felt.Felt).SetUint64(2),
		publicKey,
		zero, // guardian
	}
	h := utils.PedersenArray(
		contractAddressPrefix,
		zero,
		publicKey,
		proxyClassHash,
		utils.PedersenArray(calldata...),
	)
	addr := utils.FeltToBig(h)
	return utils.BigToFelt(addr.Mod(addr, addressBound))
}
