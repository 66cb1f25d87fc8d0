// Package verification checks that a wallet signs deterministically: the
// same message is signed twice and both signatures must match.
package verification

import (
	"context"

	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/vitwit/paradex/logger"
	"github.com/vitwit/paradex/metrics"
	"github.com/vitwit/paradex/signer"
	"github.com/vitwit/paradex/types"
	"github.com/vitwit/paradex/utils/snip12"
)

// VerificationService requests the two signatures sequentially. Signer
// errors are returned as they are.
type VerificationService struct {
	logger  logger.Logger
	metrics metrics.Recorder
}

func NewVerificationService(l logger.Logger, r metrics.Recorder) *VerificationService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	return &VerificationService{logger: logger.OrNoop(l), metrics: r}
}

// VerifyEthereumSigner returns the signature once two requests produced the
// same bytes.
func (s *VerificationService) VerifyEthereumSigner(ctx context.Context, es signer.EthereumSigner, typedData apitypes.TypedData) (string, error) {
	first, err := es.SignTypedData(ctx, typedData)
	if err != nil {
		return "", err
	}
	second, err := es.SignTypedData(ctx, typedData)
	if err != nil {
		return "", err
	}
	if first != second {
		return "", s.reject("ethereum")
	}
	return first, nil
}

// VerifyStarknetSigner compares both signatures with Signature.Equal, so an
// array never matches a record.
func (s *VerificationService) VerifyStarknetSigner(ctx context.Context, ss signer.StarknetSigner, typedData snip12.TypedData) (types.Signature, error) {
	first, err := ss.SignMessage(ctx, typedData)
	if err != nil {
		return types.Signature{}, err
	}
	second, err := ss.SignMessage(ctx, typedData)
	if err != nil {
		return types.Signature{}, err
	}
	if !first.Equal(second) {
		return types.Signature{}, s.reject("starknet")
	}
	return first, nil
}

func (s *VerificationService) reject(source string) error {
	s.logger.Warn("signer is not deterministic", map[string]any{"source": source})
	s.metrics.IncCounter(metrics.NonDeterministicSigner, map[string]string{"source": source})
	return types.ErrNonDeterministicSigner
}
