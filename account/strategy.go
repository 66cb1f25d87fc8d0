package account

import (
	"github.com/NethermindEth/juno/core/felt"
	"github.com/vitwit/paradex/types"
	"github.com/vitwit/paradex/utils"
)

// starknetSignerTag is the variant index of a Starknet-native signer in
// tagged signatures and owner descriptors.
const starknetSignerTag = 0

// decodeSeed applies a resolved strategy to a normalised signature. It
// never guesses: any layout it does not recognise is rejected.
func decodeSeed(strategy Strategy, sig []string) (*felt.Felt, error) {
	switch strategy {
	case StrategyFlatPair:
		if len(sig) != 2 {
			return nil, types.MalformedSignature("expected [r, s]", len(sig))
		}
		return seedAt(sig, 0)

	case StrategyFlatPairOrTaggedPair:
		switch len(sig) {
		case 2:
			return seedAt(sig, 0)
		case 3:
			return seedAt(sig, 1)
		}
		return nil, types.MalformedSignature("expected [r, s] or [signerType, r, s]", len(sig))

	case StrategyTaggedMultiSigner:
		if len(sig) != 5 {
			return nil, types.MalformedSignature("expected a single signer list", len(sig))
		}
		count, err := utils.ParseNumber(sig[0])
		if err != nil || !count.Equal(new(felt.Felt).SetUint64(1)) {
			return nil, types.MalformedSignature("expected exactly one signer", len(sig))
		}
		tag, err := utils.ParseNumber(sig[1])
		if err != nil || !tag.Equal(new(felt.Felt).SetUint64(starknetSignerTag)) {
			return nil, types.MalformedSignature("signer is not a starknet signer", len(sig))
		}
		return seedAt(sig, 3)

	case StrategyFlatPairOrMultiSigner:
		if len(sig) == 2 {
			return seedAt(sig, 0)
		}
		// Owner first, optionally followed by the guardian. The owner type
		// was already established by the probe.
		if len(sig) == 5 || len(sig) == 9 {
			count, err := utils.ParseNumber(sig[0])
			if err == nil && count.Equal(new(felt.Felt).SetUint64(uint64((len(sig)-1)/4))) {
				return seedAt(sig, 3)
			}
		}
		return nil, types.MalformedSignature("unsupported argent signature", len(sig))

	default:
		return nil, types.NewError(types.CodeUnsupportedWallet, "wallet not supported", map[string]string{"strategy": strategy.String()})
	}
}

func seedAt(sig []string, i int) (*felt.Felt, error) {
	seed, err := utils.ParseNumber(sig[i])
	if err != nil {
		return nil, types.MalformedSignature("element is not a felt", len(sig))
	}
	return seed, nil
}
