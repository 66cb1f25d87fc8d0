// Package metrics defines the counters and latencies the library records.
package metrics

import "time"

// Metric names.
const (
	AccountDerived         = "account_derived"
	WalletUnsupported      = "wallet_unsupported"
	NonDeterministicSigner = "non_deterministic_signer"
	WithdrawSubmitted      = "withdraw_submitted"
	DeriveAccount          = "derive_account"
)

type Recorder interface {
	IncCounter(name string, labels map[string]string)
	ObserveLatency(name string, duration time.Duration, labels map[string]string)
}
