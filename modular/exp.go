package modular

import (
	"math/big"

	"github.com/imat-lab/imatlab/utils/bignum"
)

// ModPow returns base^exp mod |modulus| in [0, |modulus|).
// A negative exponent is supported when base is invertible modulo modulus:
// base is replaced by its inverse and the exponent by its opposite.
func ModPow(base, exp, modulus *big.Int) (*big.Int, error) {

	if modulus.Sign() == 0 {
		return nil, errorf("ModPow", ErrInvalidModulus, "modulus must be non-zero")
	}

	m := bignum.Abs(modulus)

	if bignum.IsOne(m) {
		return bignum.Zero(), nil
	}

	x := new(big.Int).Mod(base, m)
	e := new(big.Int).Set(exp)

	if e.Sign() < 0 {
		inv, err := ModInverse(x, m)
		if err != nil {
			return nil, errorf("ModPow", ErrNoInverse, "base %v is not invertible modulo %v for exponent %v", base, modulus, exp)
		}
		x = inv
		e.Neg(e)
	}

	return modExp(x, e, m), nil
}

// modExp performs the square-and-multiply exponentiation x^e mod m
// for 0 <= x < m, e >= 0 and m > 1.
func modExp(x, e, m *big.Int) (result *big.Int) {

	result = bignum.One()
	acc := new(big.Int).Set(x)

	for i := 0; i < e.BitLen(); i++ {
		if e.Bit(i) == 1 {
			result.Mul(result, acc)
			result.Mod(result, m)
		}
		acc.Mul(acc, acc)
		acc.Mod(acc, m)
	}

	return
}

// ModInverse returns the x in [0, |modulus|) such that value*x = 1 mod modulus.
// It fails with ErrNoInverse when GCD(value, modulus) != 1 and with
// ErrInvalidModulus when modulus is zero.
func ModInverse(value, modulus *big.Int) (*big.Int, error) {

	if modulus.Sign() == 0 {
		return nil, errorf("ModInverse", ErrInvalidModulus, "modulus must be non-zero")
	}

	g, x, _ := Bezout(value, modulus)
	if !bignum.IsOne(g) {
		return nil, errorf("ModInverse", ErrNoInverse, "gcd(%v, %v) = %v", value, modulus, g)
	}

	return x.Mod(x, new(big.Int).Abs(modulus)), nil
}
