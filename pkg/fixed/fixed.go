// Package fixed implements unsigned 18-decimal fixed point numbers bounded to 128 bits.
//
// Every arithmetic operation is checked: overflow, underflow and division by
// zero are reported as errors and never wrap.
package fixed

import (
	"errors"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

const (
	// Decimals number of decimal places
	Decimals = 18
	maxBits  = 128
)

var (
	// ErrOverflow result does not fit in 128 bits or went below zero
	ErrOverflow = errors.New("fixed: arithmetic overflow")
	// ErrDivisionByZero divisor is zero
	ErrDivisionByZero = errors.New("fixed: division by zero")
	// ErrNegative negative values are not representable
	ErrNegative = errors.New("fixed: negative value")
	// ErrInvalid malformed input
	ErrInvalid = errors.New("fixed: invalid number")

	unit = uint256.NewInt(1_000_000_000_000_000_000)
)

// Number fixed point number, the zero value is 0
type Number struct {
	inner uint256.Int
}

// Zero 0
func Zero() Number {
	return Number{}
}

// One 1
func One() Number {
	return Number{inner: *unit}
}

// FromInner build number from its raw representation (value * 10^18)
func FromInner(raw uint64) Number {
	var n Number
	n.inner.SetUint64(raw)
	return n
}

// FromInt n * 10^18
func FromInt(n uint64) Number {
	var v Number
	v.inner.Mul(uint256.NewInt(n), unit)
	return v
}

// FromRational n / d, floor
func FromRational(n, d uint64) (Number, error) {
	if d == 0 {
		return Number{}, ErrDivisionByZero
	}

	return FromInt(n).DivInt(d)
}

// MustFromRational like FromRational but panics on error
func MustFromRational(n, d uint64) Number {
	v, err := FromRational(n, d)
	if err != nil {
		panic(err)
	}

	return v
}

// FromBig build number from raw big int
func FromBig(raw *big.Int) (Number, error) {
	if raw.Sign() < 0 {
		return Number{}, ErrNegative
	}

	v, overflow := uint256.FromBig(raw)
	if overflow {
		return Number{}, ErrOverflow
	}

	return bounded(v)
}

// FromDecimal convert decimal to number, digits beyond 18 decimals are truncated
func FromDecimal(d decimal.Decimal) (Number, error) {
	if d.IsNegative() {
		return Number{}, ErrNegative
	}

	return FromBig(d.Shift(Decimals).BigInt())
}

// NewFromString parse decimal string, eg: "1.5"
func NewFromString(s string) (Number, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Number{}, ErrInvalid
	}

	return FromDecimal(d)
}

// MustFromString like NewFromString but panics on error
func MustFromString(s string) Number {
	v, err := NewFromString(s)
	if err != nil {
		panic(err)
	}

	return v
}

func bounded(v *uint256.Int) (Number, error) {
	if v.BitLen() > maxBits {
		return Number{}, ErrOverflow
	}

	return Number{inner: *v}, nil
}

// Inner raw representation
func (n Number) Inner() *big.Int {
	return n.inner.ToBig()
}

// IsZero n == 0
func (n Number) IsZero() bool {
	return n.inner.IsZero()
}

// Cmp compare n and m, -1 if n < m, 0 if equal, 1 if n > m
func (n Number) Cmp(m Number) int {
	return n.inner.Cmp(&m.inner)
}

// Equal n == m
func (n Number) Equal(m Number) bool {
	return n.Cmp(m) == 0
}

// LessThan n < m
func (n Number) LessThan(m Number) bool {
	return n.Cmp(m) < 0
}

// GreaterThan n > m
func (n Number) GreaterThan(m Number) bool {
	return n.Cmp(m) > 0
}

// GreaterThanOrEqual n >= m
func (n Number) GreaterThanOrEqual(m Number) bool {
	return n.Cmp(m) >= 0
}

// Add n + m
func (n Number) Add(m Number) (Number, error) {
	var v uint256.Int
	if _, overflow := v.AddOverflow(&n.inner, &m.inner); overflow {
		return Number{}, ErrOverflow
	}

	return bounded(&v)
}

// Sub n - m, fails if m > n
func (n Number) Sub(m Number) (Number, error) {
	var v uint256.Int
	if _, underflow := v.SubOverflow(&n.inner, &m.inner); underflow {
		return Number{}, ErrOverflow
	}

	return Number{inner: v}, nil
}

// SaturatingSub n - m, 0 if m > n
func (n Number) SaturatingSub(m Number) Number {
	if n.LessThan(m) {
		return Zero()
	}

	v, _ := n.Sub(m)
	return v
}

// Mul n * m, rounded down
func (n Number) Mul(m Number) (Number, error) {
	var v uint256.Int
	if _, overflow := v.MulDivOverflow(&n.inner, &m.inner, unit); overflow {
		return Number{}, ErrOverflow
	}

	return bounded(&v)
}

// MulInt n * x
func (n Number) MulInt(x uint64) (Number, error) {
	var v uint256.Int
	if _, overflow := v.MulOverflow(&n.inner, uint256.NewInt(x)); overflow {
		return Number{}, ErrOverflow
	}

	return bounded(&v)
}

// Div n / m, rounded down
func (n Number) Div(m Number) (Number, error) {
	if m.IsZero() {
		return Number{}, ErrDivisionByZero
	}

	var v uint256.Int
	if _, overflow := v.MulDivOverflow(&n.inner, unit, &m.inner); overflow {
		return Number{}, ErrOverflow
	}

	return bounded(&v)
}

// DivInt n / x on the raw representation, rounded down
func (n Number) DivInt(x uint64) (Number, error) {
	if x == 0 {
		return Number{}, ErrDivisionByZero
	}

	var v uint256.Int
	v.Div(&n.inner, uint256.NewInt(x))
	return Number{inner: v}, nil
}

// Decimal convert to shopspring decimal
func (n Number) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(n.inner.ToBig(), -Decimals)
}

func (n Number) String() string {
	return n.Decimal().String()
}
