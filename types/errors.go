package types

import "fmt"

// ParadexError is returned for every failure the library itself detects.
// Errors coming from RPC nodes or wallets are passed through unchanged.
type ParadexError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func (e *ParadexError) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Data)
	}
	return e.Message
}

// Is matches any ParadexError carrying the same code.
func (e *ParadexError) Is(target error) bool {
	t, ok := target.(*ParadexError)
	return ok && t.Code == e.Code
}

// Error codes
const (
	CodeNonDeterministicSigner = "NON_DETERMINISTIC_SIGNER"
	CodeUnsupportedWallet      = "UNSUPPORTED_WALLET"
	CodeMalformedSignature     = "MALFORMED_SIGNATURE"
	CodePreconditionViolated   = "PRECONDITION_VIOLATED"
	CodeUnsupportedToken       = "UNSUPPORTED_TOKEN"
	CodeInvalidAmount          = "INVALID_AMOUNT"
	CodeContractCall           = "CONTRACT_CALL"
	CodeConfig                 = "CONFIG_ERROR"
)

// Sentinels for errors.Is.
var (
	ErrNonDeterministicSigner = &ParadexError{Code: CodeNonDeterministicSigner, Message: "wallet does not support deterministic signing, please use a different wallet"}
	ErrUnsupportedWallet      = &ParadexError{Code: CodeUnsupportedWallet, Message: "wallet not supported"}
	ErrMalformedSignature     = &ParadexError{Code: CodeMalformedSignature, Message: "unsupported signature format"}
	ErrPreconditionViolated   = &ParadexError{Code: CodePreconditionViolated, Message: "check account contract support first"}
	ErrUnsupportedToken       = &ParadexError{Code: CodeUnsupportedToken, Message: "token is not supported"}
	ErrInvalidAmount          = &ParadexError{Code: CodeInvalidAmount, Message: "invalid amount"}
	ErrContractCall           = &ParadexError{Code: CodeContractCall, Message: "contract call failed"}
	ErrConfig                 = &ParadexError{Code: CodeConfig, Message: "invalid configuration"}
)

// NewError builds a ParadexError with a specific message and optional data.
func NewError(code, message string, data interface{}) *ParadexError {
	return &ParadexError{Code: code, Message: message, Data: data}
}

func UnsupportedWallet(classHash string) *ParadexError {
	return NewError(CodeUnsupportedWallet, "wallet not supported", map[string]string{"classHash": classHash})
}

func MalformedSignature(detail string, length int) *ParadexError {
	return NewError(CodeMalformedSignature, "unsupported signature format: "+detail, map[string]int{"length": length})
}

func UnsupportedToken(symbol string) *ParadexError {
	return NewError(CodeUnsupportedToken, fmt.Sprintf("token %s is not supported", symbol), nil)
}
