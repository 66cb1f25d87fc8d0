// Package settlement reads balances from and withdraws out of the
// Paraclear contract.
package settlement

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/vitwit/paradex/clients"
	"github.com/vitwit/paradex/logger"
	"github.com/vitwit/paradex/metrics"
	"github.com/vitwit/paradex/types"
	"github.com/vitwit/paradex/utils"
)

// Executor submits a batch of calls from an account, as account.Account does.
type Executor interface {
	Execute(ctx context.Context, calls []types.Call) (*types.TxResult, error)
}

type TokenBalance struct {
	Size string `json:"size"`
}

type SocializedLoss struct {
	SocializedLossFactor string `json:"socializedLossFactor"`
}

type ReceivableAmount struct {
	ReceivableAmount      string `json:"receivableAmount"`
	ReceivableAmountChain string `json:"receivableAmountChain"`
	SocializedLossFactor  string `json:"socializedLossFactor"`
}

type WithdrawResult struct {
	Hash string `json:"hash"`
}

// SettlementService runs Paraclear operations for one environment.
type SettlementService struct {
	config  *types.ParadexConfig
	caller  clients.Caller
	logger  logger.Logger
	metrics metrics.Recorder
}

func NewSettlementService(config *types.ParadexConfig, caller clients.Caller, l logger.Logger, r metrics.Recorder) *SettlementService {
	if r == nil {
		r = metrics.NoopRecorder{}
	}
	return &SettlementService{
		config:  config,
		caller:  caller,
		logger:  logger.OrNoop(l),
		metrics: r,
	}
}

// TokenBalance returns the Paraclear balance of token held by account.
func (s *SettlementService) TokenBalance(ctx context.Context, account, token string) (*TokenBalance, error) {
	bridged, err := s.token(token)
	if err != nil {
		return nil, err
	}

	res, err := s.caller.CallContract(ctx, types.Call{
		ContractAddress: s.config.ParaclearAddress,
		Entrypoint:      "getTokenAssetBalance",
		Calldata:        []string{account, bridged.L2TokenAddress},
	})
	if err != nil {
		return nil, err
	}
	if len(res) == 0 || res[0] == "" {
		return nil, types.NewError(types.CodeContractCall, "failed to get token balance", nil)
	}

	size, err := utils.ParseChainAmount(res[0], s.config.ParaclearDecimals, true)
	if err != nil {
		return nil, types.NewError(types.CodeContractCall, "failed to parse token balance", res[0])
	}
	return &TokenBalance{Size: utils.FormatAmount(size)}, nil
}

// SocializedLossFactor returns the share of a withdrawal currently withheld.
func (s *SettlementService) SocializedLossFactor(ctx context.Context) (*SocializedLoss, error) {
	factor, err := s.socializedLossFactor(ctx)
	if err != nil {
		return nil, err
	}
	return &SocializedLoss{SocializedLossFactor: utils.FormatAmount(factor)}, nil
}

func (s *SettlementService) socializedLossFactor(ctx context.Context) (decimal.Decimal, error) {
	res, err := s.caller.CallContract(ctx, types.Call{
		ContractAddress: s.config.ParaclearAddress,
		Entrypoint:      "getSocializedLossFactor",
		Calldata:        []string{},
	})
	if err != nil {
		return decimal.Zero, err
	}
	if len(res) == 0 || res[0] == "" {
		return decimal.Zero, types.NewError(types.CodeContractCall, "failed to get socialized loss factor", nil)
	}
	factor, err := utils.ParseChainAmount(res[0], s.config.ParaclearDecimals, false)
	if err != nil {
		return decimal.Zero, types.NewError(types.CodeContractCall, "failed to parse socialized loss factor", res[0])
	}
	return factor, nil
}

// ReceivableAmount is what actually arrives when amount of token is
// withdrawn: amount * (1 - socialized loss factor).
func (s *SettlementService) ReceivableAmount(ctx context.Context, token, amount string) (*ReceivableAmount, error) {
	bridged, err := s.token(token)
	if err != nil {
		return nil, err
	}
	amt, err := utils.ParseAmount(amount)
	if err != nil {
		return nil, err
	}
	factor, err := s.socializedLossFactor(ctx)
	if err != nil {
		return nil, err
	}

	receivable := amt.Mul(decimal.NewFromInt(1).Sub(factor))
	return &ReceivableAmount{
		ReceivableAmount:      utils.FormatAmount(receivable),
		ReceivableAmountChain: utils.ToChainAmount(receivable, bridged.Decimals).String(),
		SocializedLossFactor:  utils.FormatAmount(factor),
	}, nil
}

// Withdraw takes amount of token out of Paraclear and runs bridgeCalls in
// the same transaction.
func (s *SettlementService) Withdraw(ctx context.Context, account Executor, token, amount string, bridgeCalls ...types.Call) (*WithdrawResult, error) {
	bridged, err := s.token(token)
	if err != nil {
		return nil, err
	}
	amt, err := utils.ParseAmount(amount)
	if err != nil {
		return nil, err
	}

	calls := append([]types.Call{{
		ContractAddress: s.config.ParaclearAddress,
		Entrypoint:      "withdraw",
		Calldata: []string{
			bridged.L2TokenAddress,
			utils.ToChainAmount(amt, s.config.ParaclearDecimals).String(),
		},
	}}, bridgeCalls...)

	res, err := account.Execute(ctx, calls)
	if err != nil {
		return nil, err
	}

	s.metrics.IncCounter(metrics.WithdrawSubmitted, map[string]string{"source": "paraclear"})
	s.logger.Info("withdrawal submitted", map[string]any{
		"token":  token,
		"amount": amt.String(),
		"hash":   res.TransactionHash,
		"calls":  len(calls),
	})
	return &WithdrawResult{Hash: res.TransactionHash}, nil
}

func (s *SettlementService) token(symbol string) (types.BridgedToken, error) {
	t, ok := s.config.Token(symbol)
	if !ok {
		return types.BridgedToken{}, types.UnsupportedToken(symbol)
	}
	return t, nil
}
