package modular

import (
	"math/big"

	"github.com/imat-lab/imatlab/utils/bignum"
)

// GCD returns the greatest common divisor of |a| and |b|, with GCD(0, 0) = 0.
func GCD(a, b *big.Int) *big.Int {
	x, y := bignum.Abs(a), bignum.Abs(b)
	for y.Sign() != 0 {
		x.Mod(x, y)
		x, y = y, x
	}
	return x
}

// AreCoprime reports whether GCD(a, b) == 1.
func AreCoprime(a, b *big.Int) bool {
	return bignum.IsOne(GCD(a, b))
}

// Bezout runs the extended Euclidean algorithm and returns (g, x, y) with
// x*a + y*b = g = GCD(a, b).
//
// The remainder sequence starts from the larger of a and b (b when a == b),
// and the coefficients are tracked as vectors over (larger, smaller). They
// are mapped back to (a, b) at the end, so x is always the coefficient of a.
func Bezout(a, b *big.Int) (g, x, y *big.Int) {

	if a.Sign() == 0 && b.Sign() == 0 {
		return new(big.Int), new(big.Int), new(big.Int)
	}

	aIsLarger := a.Cmp(b) > 0

	var larger, smaller *big.Int
	if aIsLarger {
		larger, smaller = new(big.Int).Set(a), new(big.Int).Set(b)
	} else {
		larger, smaller = new(big.Int).Set(b), new(big.Int).Set(a)
	}

	// (uL, vL) and (uS, vS) express larger and smaller as combinations of
	// the initial (larger, smaller).
	uL, vL := big.NewInt(1), big.NewInt(0)
	uS, vS := big.NewInt(0), big.NewInt(1)

	q, r, tmp := new(big.Int), new(big.Int), new(big.Int)

	for smaller.Sign() != 0 {

		q.DivMod(larger, smaller, r)

		larger, smaller, r = smaller, r, larger

		uL, uS = uS, uL.Sub(uL, tmp.Mul(q, uS))
		vL, vS = vS, vL.Sub(vL, tmp.Mul(q, vS))
	}

	g = larger

	// A negative initial operand can leave a negative last remainder.
	if g.Sign() < 0 {
		g.Neg(g)
		uL.Neg(uL)
		vL.Neg(vL)
	}

	if aIsLarger {
		return g, uL, vL
	}

	return g, vL, uL
}
