package modular

import (
	"math/big"
)

// MaxSieveBound is the largest end accepted by ListPrimes.
const MaxSieveBound = 1 << 28

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// IsPrime reports whether n is prime, by trial division with the odd
// integers up to sqrt(n). Values below 2 are not prime.
func IsPrime(n *big.Int) bool {

	if n.Cmp(two) < 0 {
		return false
	}

	if n.Cmp(two) == 0 {
		return true
	}

	if n.Bit(0) == 0 {
		return false
	}

	// Word-sized inputs avoid big.Int allocations in the inner loop.
	if n.IsUint64() {
		return isPrimeUint64(n.Uint64())
	}

	limit := new(big.Int).Sqrt(n)
	r := new(big.Int)
	for candidate := new(big.Int).Set(three); candidate.Cmp(limit) <= 0; candidate.Add(candidate, two) {
		if r.Rem(n, candidate).Sign() == 0 {
			return false
		}
	}

	return true
}

func isPrimeUint64(n uint64) bool {
	for candidate := uint64(3); candidate <= n/candidate; candidate += 2 {
		if n%candidate == 0 {
			return false
		}
	}
	return true
}

// isProbablyPrime applies the Baillie-PSW test, which is exact for numbers below 2^64.
func isProbablyPrime(n *big.Int) bool {
	return n.ProbablyPrime(20)
}

// ListPrimes returns the primes in [start, end) in ascending order, using the
// sieve of Eratosthenes over [0, end). An end <= 2 gives an empty list.
func ListPrimes(start, end int) (primes []int, err error) {

	if end <= 2 {
		return []int{}, nil
	}

	if end > MaxSieveBound {
		return nil, errorf("ListPrimes", ErrInvalidArgument, "end %d exceeds the sieve bound %d", end, MaxSieveBound)
	}

	composite := make([]bool, end)
	composite[0], composite[1] = true, true

	for candidate := 2; candidate*candidate < end; candidate++ {
		if composite[candidate] {
			continue
		}
		for multiple := candidate * candidate; multiple < end; multiple += candidate {
			composite[multiple] = true
		}
	}

	if start < 2 {
		start = 2
	}

	primes = []int{}
	for value := start; value < end; value++ {
		if !composite[value] {
			primes = append(primes, value)
		}
	}

	return primes, nil
}
