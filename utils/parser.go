package utils

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"
	"github.com/vitwit/paradex/types"
)

// ParseAmount parses a positive decimal amount.
func ParseAmount(amount string) (decimal.Decimal, error) {
	if amount == "" {
		return decimal.Zero, types.NewError(types.CodeInvalidAmount, "invalid amount", "amount cannot be empty")
	}
	dec, err := decimal.NewFromString(amount)
	if err != nil {
		return decimal.Zero, types.NewError(types.CodeInvalidAmount, "invalid amount", err.Error())
	}
	if !dec.IsPositive() {
		return decimal.Zero, types.NewError(types.CodeInvalidAmount, "invalid amount", "amount must be positive")
	}
	return dec, nil
}

// ToChainAmount scales a decimal amount to an integer with the given number
// of decimals. Digits beyond that precision are truncated.
func ToChainAmount(amount decimal.Decimal, decimals int) *big.Int {
	return amount.Shift(int32(decimals)).Truncate(0).BigInt()
}

// FromChainAmount converts an integer chain amount back to a decimal.
func FromChainAmount(amount *big.Int, decimals int) decimal.Decimal {
	return decimal.NewFromBigInt(amount, -int32(decimals))
}

// FormatAmount renders a decimal without trailing zeros.
func FormatAmount(amount decimal.Decimal) string {
	return amount.String()
}

// ParseChainAmount parses a felt result and scales it down.
func ParseChainAmount(value string, decimals int, signed bool) (decimal.Decimal, error) {
	f, err := ParseNumber(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse chain amount: %w", err)
	}
	n := FeltToBig(f)
	if signed {
		n = SignedFeltToBig(f)
	}
	return FromChainAmount(n, decimals), nil
}
