package types

import (
	"math/big"
	"slices"
)

// SignatureForm tells which representation a wallet returned.
type SignatureForm int

const (
	// SignatureArray is an ordered list of felt strings.
	SignatureArray SignatureForm = iota
	// SignatureWeierstrass is an (r, s) record.
	SignatureWeierstrass
)

// Signature is what a Starknet wallet returns from signMessage: either an
// array of felts or an (r, s) record. The zero value is an empty array.
type Signature struct {
	form   SignatureForm
	values []string
	r, s   *big.Int
}

// ArraySignature wraps the array form. The input is copied.
func ArraySignature(values ...string) Signature {
	return Signature{form: SignatureArray, values: slices.Clone(values)}
}

// WeierstrassSignature wraps the (r, s) record form.
func WeierstrassSignature(r, s *big.Int) Signature {
	return Signature{
		form: SignatureWeierstrass,
		r:    new(big.Int).Set(r),
		s:    new(big.Int).Set(s),
	}
}

func (sig Signature) Form() SignatureForm {
	return sig.form
}

// Values returns the signature as a felt array. The record form becomes
// [r, s]. The returned slice is a copy.
func (sig Signature) Values() []string {
	if sig.form == SignatureWeierstrass {
		return []string{"0x" + sig.r.Text(16), "0x" + sig.s.Text(16)}
	}
	return slices.Clone(sig.values)
}

// Equal reports whether two signatures are identical in the same form:
// equal-length arrays with pointwise-equal elements, or records with equal
// r and s. Signatures of different forms are never equal.
func (sig Signature) Equal(other Signature) bool {
	if sig.form != other.form {
		return false
	}
	if sig.form == SignatureArray {
		return slices.Equal(sig.values, other.values)
	}
	return sig.r.Cmp(other.r) == 0 && sig.s.Cmp(other.s) == 0
}
