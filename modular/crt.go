package modular

import (
	"fmt"
	"math/big"

	"github.com/imat-lab/imatlab/utils/bignum"
)

// Congruence represents A*x = B mod P.
type Congruence struct {
	A, B, P *big.Int
}

// String renders the congruence as "A*x = B (mod P)".
func (c Congruence) String() string {
	return fmt.Sprintf("%v*x = %v (mod %v)", c.A, c.B, c.P)
}

// Satisfies reports whether A*x = B mod P.
func (c Congruence) Satisfies(x *big.Int) bool {
	lhs := new(big.Int).Mul(c.A, x)
	lhs.Sub(lhs, c.B)
	return lhs.Mod(lhs, c.P).Sign() == 0
}

// NewCongruenceSystem zips the coefficient lists a, b and p into a system
// a[i]*x = b[i] mod p[i]. The three lists must have the same length.
func NewCongruenceSystem(a, b, p []*big.Int) ([]Congruence, error) {

	if len(a) != len(b) || len(b) != len(p) {
		return nil, errorf("NewCongruenceSystem", ErrInvalidArgument, "lists have lengths %d, %d and %d", len(a), len(b), len(p))
	}

	system := make([]Congruence, len(a))
	for i := range a {
		system[i] = Congruence{
			A: new(big.Int).Set(a[i]),
			B: new(big.Int).Set(b[i]),
			P: new(big.Int).Set(p[i]),
		}
	}

	return system, nil
}

// SolveCongruenceSystem solves the system a_i*x = b_i mod p_i with the
// Chinese Remainder Theorem and returns x in [0, N) and N = prod p_i.
//
// The moduli must be positive and pairwise coprime; this is not checked, but a
// system for which one of the required inverses does not exist fails with
// ErrUnsolvable. An empty system gives (0, 1).
func SolveCongruenceSystem(system []Congruence) (x, N *big.Int, err error) {

	moduli := make([]*big.Int, len(system))
	for i, c := range system {
		if c.P.Sign() <= 0 {
			return nil, nil, errorf("SolveCongruenceSystem", ErrInvalidModulus, "modulus %v must be positive", c.P)
		}
		moduli[i] = c.P
	}

	N = bignum.Product(moduli)

	x = new(big.Int)
	Ni := new(big.Int)
	term := new(big.Int)

	for _, c := range system {

		Ni.Quo(N, c.P)

		NiInv, err := ModInverse(Ni, c.P)
		if err != nil {
			return nil, nil, errorf("SolveCongruenceSystem", ErrUnsolvable, "%v: N/%v has no inverse", c, c.P)
		}

		aInv, err := ModInverse(c.A, c.P)
		if err != nil {
			return nil, nil, errorf("SolveCongruenceSystem", ErrUnsolvable, "%v: %v has no inverse", c, c.A)
		}

		// x += (b_i * a_i^-1) * N_i * (N_i^-1 mod p_i)
		term.Mul(c.B, aInv)
		term.Mul(term, Ni)
		term.Mul(term, NiInv)
		x.Add(x, term)
	}

	return x.Mod(x, N), N, nil
}
