// Package bignum implements constructors and decimal helpers for arbitrary precision integers.
package bignum

import (
	"fmt"
	"math/big"
	"strings"
)

var one = big.NewInt(1)

// NewInt allocates a new *big.Int.
// Accepted types are: string, uint, uint64, int64, int or *big.Int.
// A string that is not a valid base-10 (or prefixed) integer panics.
func NewInt(x interface{}) (y *big.Int) {

	y = new(big.Int)

	if x == nil {
		return
	}

	switch x := x.(type) {
	case string:
		if _, ok := y.SetString(x, 0); !ok {
			panic(fmt.Sprintf("cannot NewInt: invalid integer literal %q", x))
		}
	case uint:
		y.SetUint64(uint64(x))
	case uint64:
		y.SetUint64(x)
	case int64:
		y.SetInt64(x)
	case int:
		y.SetInt64(int64(x))
	case *big.Int:
		y.Set(x)
	default:
		panic(fmt.Sprintf("cannot NewInt: accepted types are string, uint, uint64, int, int64, *big.Int, but is %T", x))
	}

	return
}

// NewInts maps NewInt over the inputs.
func NewInts[T int | int64 | uint64](xs ...T) (ys []*big.Int) {
	ys = make([]*big.Int, len(xs))
	for i, x := range xs {
		ys[i] = NewInt(x)
	}
	return
}

// ParseInt parses a base-10 integer, allowing surrounding whitespace and a leading sign.
func ParseInt(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	y, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid integer %q", s)
	}
	return y, nil
}

// Zero returns a new *big.Int set to 0.
func Zero() *big.Int {
	return new(big.Int)
}

// One returns a new *big.Int set to 1.
func One() *big.Int {
	return new(big.Int).Set(one)
}

// IsZero reports whether x == 0.
func IsZero(x *big.Int) bool {
	return x.Sign() == 0
}

// IsOne reports whether x == 1.
func IsOne(x *big.Int) bool {
	return x.Cmp(one) == 0
}

// IsEven reports whether x is divisible by two.
func IsEven(x *big.Int) bool {
	return x.Bit(0) == 0
}

// Abs returns |x| in a new *big.Int.
func Abs(x *big.Int) *big.Int {
	return new(big.Int).Abs(x)
}

// Half returns floor(x/2) for x >= 0.
func Half(x *big.Int) *big.Int {
	return new(big.Int).Rsh(x, 1)
}

// Equal reports whether x == y.
func Equal(x, y *big.Int) bool {
	return x.Cmp(y) == 0
}

// AppendDigits returns the integer whose decimal representation is the
// representation of x followed by suffix. The suffix must only contain '0'-'9'.
func AppendDigits(x *big.Int, suffix string) *big.Int {
	if suffix == "" {
		return new(big.Int).Set(x)
	}
	y, ok := new(big.Int).SetString(x.String()+suffix, 10)
	if !ok {
		panic(fmt.Sprintf("cannot AppendDigits: invalid decimal suffix %q", suffix))
	}
	return y
}

// TruncateDigits removes the last k characters of the decimal representation of x.
// If the representation has at most k characters, the result is 0.
func TruncateDigits(x *big.Int, k int) *big.Int {
	text := x.String()
	if k <= 0 {
		return new(big.Int).Set(x)
	}
	if len(text) <= k {
		return new(big.Int)
	}
	y, ok := new(big.Int).SetString(text[:len(text)-k], 10)
	if !ok {
		// A lone "-" remains when x is negative and k == len(text)-1.
		return new(big.Int)
	}
	return y
}

// Product returns the product of the inputs, 1 for an empty input.
func Product(xs []*big.Int) *big.Int {
	p := One()
	for _, x := range xs {
		p.Mul(p, x)
	}
	return p
}

// Format renders a list of integers as "[a, b, c]".
func Format(xs []*big.Int) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, x := range xs {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(x.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
