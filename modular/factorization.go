package modular

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/imat-lab/imatlab/utils/bignum"
	"golang.org/x/exp/slices"
)

const (
	// TrialDivisionThreshold is the bound below which Factorize only uses trial division.
	TrialDivisionThreshold = 10000000

	// PollardRhoAttempts is the number of polynomial constants tried by PollardRho.
	PollardRhoAttempts = 100
)

// Factor is a prime power Prime^Exponent.
type Factor struct {
	Prime    *big.Int
	Exponent int
}

// Factorization is a list of prime powers sorted by increasing prime, with no repeated prime.
type Factorization []Factor

// Product returns the product of Prime^Exponent over all factors, 1 for an empty factorization.
func (f Factorization) Product() *big.Int {
	p := big.NewInt(1)
	pow := new(big.Int)
	for _, factor := range f {
		pow.Exp(factor.Prime, big.NewInt(int64(factor.Exponent)), nil)
		p.Mul(p, pow)
	}
	return p
}

// Exponent returns the multiplicity of prime in f, 0 if absent.
func (f Factorization) Exponent(prime *big.Int) int {
	i, found := slices.BinarySearchFunc(f, prime, func(factor Factor, target *big.Int) int {
		return factor.Prime.Cmp(target)
	})
	if !found {
		return 0
	}
	return f[i].Exponent
}

// Primes returns the distinct primes of f in increasing order.
func (f Factorization) Primes() (primes []*big.Int) {
	primes = make([]*big.Int, len(f))
	for i, factor := range f {
		primes[i] = new(big.Int).Set(factor.Prime)
	}
	return
}

// String renders f as "{p1: e1, p2: e2}".
func (f Factorization) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, factor := range f {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%v: %d", factor.Prime, factor.Exponent)
	}
	sb.WriteByte('}')
	return sb.String()
}

// factorCounter accumulates multiplicities keyed by the decimal form of the prime.
type factorCounter struct {
	primes map[string]*big.Int
	counts map[string]int
}

func newFactorCounter() *factorCounter {
	return &factorCounter{
		primes: map[string]*big.Int{},
		counts: map[string]int{},
	}
}

func (c *factorCounter) add(p *big.Int, count int) {
	key := p.String()
	if _, ok := c.primes[key]; !ok {
		c.primes[key] = new(big.Int).Set(p)
	}
	c.counts[key] += count
}

func (c *factorCounter) factorization() (f Factorization) {
	f = make(Factorization, 0, len(c.primes))
	for key, p := range c.primes {
		f = append(f, Factor{Prime: p, Exponent: c.counts[key]})
	}
	slices.SortFunc(f, func(a, b Factor) bool {
		return a.Prime.Cmp(b.Prime) < 0
	})
	return
}

// Factorize returns the prime factorization of n. Values n <= 1 give an empty factorization.
//
// Below TrialDivisionThreshold, n is factored by trial division. Above it,
// non-trivial factors are split off with PollardRho until every part is
// prime. A part that PollardRho cannot split is recorded as if it were prime,
// so the result is best-effort for hard composites; its product is always n.
func Factorize(n *big.Int) Factorization {

	if n.Cmp(one) <= 0 {
		return Factorization{}
	}

	counter := newFactorCounter()

	threshold := big.NewInt(TrialDivisionThreshold)

	// Work-list of cofactors still to be split.
	stack := []*big.Int{new(big.Int).Set(n)}

	for len(stack) > 0 {

		m := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch {
		case bignum.IsOne(m):
			continue
		case m.Cmp(threshold) < 0:
			trialDivision(m.Uint64(), counter)
			continue
		case isProbablyPrime(m):
			counter.add(m, 1)
			continue
		}

		d := PollardRho(m)

		if bignum.Equal(d, m) {
			counter.add(m, 1)
			continue
		}

		stack = append(stack, d, new(big.Int).Quo(m, d))
	}

	return counter.factorization()
}

// trialDivision adds the factorization of 1 < n < TrialDivisionThreshold to counter.
func trialDivision(n uint64, counter *factorCounter) {

	for candidate := uint64(2); candidate*candidate <= n; {

		var count int
		for n%candidate == 0 {
			n /= candidate
			count++
		}

		if count > 0 {
			counter.add(new(big.Int).SetUint64(candidate), count)
		}

		if candidate == 2 {
			candidate = 3
		} else {
			candidate += 2
		}
	}

	if n != 1 {
		counter.add(new(big.Int).SetUint64(n), 1)
	}
}

// PollardRho searches a non-trivial factor of n with Pollard's rho method,
// using f(x) = x^2 + c mod n and Floyd cycle detection from x = y = 2.
// When a constant c only finds the trivial factor n, c is incremented, up to
// PollardRhoAttempts constants. It returns 2 for even n and n itself when no
// factor was found.
func PollardRho(n *big.Int) *big.Int {

	if bignum.IsEven(n) {
		return big.NewInt(2)
	}

	if n.Cmp(three) <= 0 {
		return new(big.Int).Set(n)
	}

	x, y, d := new(big.Int), new(big.Int), new(big.Int)
	diff := new(big.Int)

	for c := int64(1); c <= PollardRhoAttempts; c++ {

		cBig := big.NewInt(c)

		x.SetInt64(2)
		y.SetInt64(2)
		d.SetInt64(1)

		for bignum.IsOne(d) {
			rhoStep(x, cBig, n)
			rhoStep(y, cBig, n)
			rhoStep(y, cBig, n)
			d.GCD(nil, nil, diff.Abs(diff.Sub(x, y)), n)
		}

		if !bignum.Equal(d, n) {
			return new(big.Int).Set(d)
		}
	}

	return new(big.Int).Set(n)
}

// rhoStep sets x to x^2 + c mod n.
func rhoStep(x, c, n *big.Int) {
	x.Mul(x, x)
	x.Add(x, c)
	x.Mod(x, n)
}

// EulerTotient returns the number of integers in [1, n] coprime to n.
// It fails with ErrInvalidArgument for n <= 0.
func EulerTotient(n *big.Int) (*big.Int, error) {

	if n.Sign() <= 0 {
		return nil, errorf("EulerTotient", ErrInvalidArgument, "n = %v must be positive", n)
	}

	if bignum.IsOne(n) {
		return bignum.One(), nil
	}

	// phi = n * prod (1 - 1/p) = n * prod (p-1)/p, each division being exact.
	phi := new(big.Int).Set(n)
	pMinusOne := new(big.Int)
	for _, factor := range Factorize(n) {
		phi.Quo(phi, factor.Prime)
		phi.Mul(phi, pMinusOne.Sub(factor.Prime, one))
	}

	return phi, nil
}
