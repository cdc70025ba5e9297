package value

import (
	"fmt"
	"math/big"
)

// Integer is an arbitrary-precision integer value.
type Integer struct {
	V *big.Int
}

// NewInteger wraps n as an Integer value.
func NewInteger(n int64) *Integer { return &Integer{V: big.NewInt(n)} }

// NewIntegerFromBig wraps an existing *big.Int without copying.
func NewIntegerFromBig(n *big.Int) *Integer { return &Integer{V: n} }

// NewIntegerFromString parses a base-10 integer literal (optional leading
// sign). ok is false if s is not a valid integer literal.
func NewIntegerFromString(s string) (*Integer, bool) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, false
	}
	return &Integer{V: n}, true
}

func (i *Integer) Type() string { return "INTEGER" }

func (i *Integer) String() string { return i.V.String() }

func (i *Integer) Equal(other Value) bool {
	switch o := other.(type) {
	case *Integer:
		return i.V.Cmp(o.V) == 0
	case *Real:
		f := new(big.Float).SetInt(i.V)
		return f.Cmp(big.NewFloat(float64(*o))) == 0
	default:
		return false
	}
}

// Float returns the closest float64 to this integer.
func (i *Integer) Float() float64 {
	f := new(big.Float).SetInt(i.V)
	out, _ := f.Float64()
	return out
}

// Real is an IEEE double.
type Real float64

func (r *Real) Type() string { return "REAL" }

func (r *Real) String() string {
	f := float64(*r)
	if f == float64(int64(f)) {
		return fmt.Sprintf("%.1f", f)
	}
	return fmt.Sprintf("%g", f)
}

func (r *Real) Equal(other Value) bool {
	switch o := other.(type) {
	case *Real:
		return *r == *o
	case *Integer:
		return o.Equal(r)
	default:
		return false
	}
}

// NewReal wraps f as a Real value.
func NewReal(f float64) *Real { r := Real(f); return &r }

// IsNumber reports whether v is an Integer or Real.
func IsNumber(v Value) bool {
	switch v.(type) {
	case *Integer, *Real:
		return true
	default:
		return false
	}
}

// AsFloat converts a numeric Value to float64. ok is false for non-numbers.
func AsFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case *Integer:
		return n.Float(), true
	case *Real:
		return float64(*n), true
	default:
		return 0, false
	}
}

// AsBigInt converts an *Integer to *big.Int. ok is false otherwise.
func AsBigInt(v Value) (*big.Int, bool) {
	n, ok := v.(*Integer)
	if !ok {
		return nil, false
	}
	return n.V, true
}
