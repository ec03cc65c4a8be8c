package modular

import (
	"math/big"

	"github.com/imat-lab/imatlab/utils/bignum"
)

// LegendreSymbol returns the Legendre symbol (a|p) by Euler's criterion:
// a^((p-1)/2) mod p, where p-1 is mapped to -1. The result is 1 for a non-zero
// quadratic residue, -1 for a non-residue and 0 when p divides a.
// The modulus p must be an odd prime; for any other p the result is meaningless.
func LegendreSymbol(a, p *big.Int) int {

	if p.Sign() == 0 {
		return 0
	}

	m := bignum.Abs(p)
	e := bignum.Half(new(big.Int).Sub(m, one))

	value, err := ModPow(a, e, m)
	if err != nil {
		// Unreachable: the exponent is non-negative and the modulus non-zero.
		panic(err)
	}

	if value.Cmp(e.Sub(m, one)) == 0 && m.Cmp(two) > 0 {
		return -1
	}

	return int(value.Int64())
}

// gfp2 is an element re + im*w of GF(p)[w]/(w^2 - d).
type gfp2 struct {
	re, im *big.Int
}

// quadraticExtension holds the parameters of GF(p)[w]/(w^2 - d).
type quadraticExtension struct {
	p, d *big.Int
}

// mul returns x*y reduced in the extension, using w^2 = d.
func (qe quadraticExtension) mul(x, y gfp2) gfp2 {

	// (a + bw)(c + ew) = (ac + bed) + (ae + bc)w
	re := new(big.Int).Mul(x.re, y.re)
	tmp := new(big.Int).Mul(x.im, y.im)
	tmp.Mod(tmp, qe.p)
	tmp.Mul(tmp, qe.d)
	re.Add(re, tmp)
	re.Mod(re, qe.p)

	im := new(big.Int).Mul(x.re, y.im)
	tmp.Mul(x.im, y.re)
	im.Add(im, tmp)
	im.Mod(im, qe.p)

	return gfp2{re: re, im: im}
}

// exp returns x^e by square-and-multiply in the extension.
func (qe quadraticExtension) exp(x gfp2, e *big.Int) gfp2 {

	result := gfp2{re: big.NewInt(1), im: big.NewInt(0)}

	for i := e.BitLen() - 1; i >= 0; i-- {
		result = qe.mul(result, result)
		if e.Bit(i) == 1 {
			result = qe.mul(result, x)
		}
	}

	return result
}

// ModSqrt returns a square root of n modulo the prime p, and false when
// (n|p) != 1 or when p is not prime. The root is computed with Cipolla's algorithm: it finds the
// smallest t > 0 with t^2 - n a non-residue, and raises t + w to (p+1)/2 in
// GF(p)[w]/(w^2 - (t^2 - n)); the result lies in GF(p).
func ModSqrt(n, p *big.Int) (*big.Int, bool) {

	if p.Cmp(two) == 0 {
		return new(big.Int).Mod(n, p), true
	}

	if p.Cmp(three) < 0 || !isProbablyPrime(p) || LegendreSymbol(n, p) != 1 {
		return nil, false
	}

	nModP := new(big.Int).Mod(n, p)

	t := big.NewInt(1)
	d := new(big.Int)
	for ; t.Cmp(p) < 0; t.Add(t, one) {
		d.Mul(t, t)
		d.Sub(d, nModP)
		d.Mod(d, p)
		if LegendreSymbol(d, p) == -1 {
			break
		}
	}

	if t.Cmp(p) >= 0 {
		// No non-residue: p is not an odd prime.
		return nil, false
	}

	qe := quadraticExtension{p: p, d: d}

	e := bignum.Half(new(big.Int).Add(p, one))

	root := qe.exp(gfp2{re: new(big.Int).Set(t), im: big.NewInt(1)}, e)

	return root.re, true
}

// QuadraticEquation solves a*x^2 + b*x + c = 0 mod p for a prime p and returns
// both roots (equal for a double root). It fails with ErrNoRoot when the
// discriminant is not a square modulo p and with ErrNoInverse when 2a is not
// invertible modulo p.
func QuadraticEquation(a, b, c, p *big.Int) (x1, x2 *big.Int, err error) {

	if p.Sign() <= 0 {
		return nil, nil, errorf("QuadraticEquation", ErrInvalidModulus, "p = %v must be positive", p)
	}

	// disc = b^2 - 4ac mod p
	disc := new(big.Int).Mul(b, b)
	tmp := new(big.Int).Mul(a, c)
	tmp.Lsh(tmp, 2)
	disc.Sub(disc, tmp)
	disc.Mod(disc, p)

	root, ok := ModSqrt(disc, p)
	if !ok {
		return nil, nil, errorf("QuadraticEquation", ErrNoRoot, "discriminant %v has no square root modulo %v", disc, p)
	}

	inv2a, err := ModInverse(new(big.Int).Lsh(a, 1), p)
	if err != nil {
		return nil, nil, errorf("QuadraticEquation", ErrNoInverse, "2*%v is not invertible modulo %v", a, p)
	}

	// x = (-b +/- root) / 2a
	x1 = new(big.Int).Sub(root, b)
	x1.Mul(x1, inv2a)
	x1.Mod(x1, p)

	x2 = new(big.Int).Neg(b)
	x2.Sub(x2, root)
	x2.Mul(x2, inv2a)
	x2.Mod(x2, p)

	return x1, x2, nil
}
