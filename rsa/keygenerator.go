package rsa

import (
	"math/big"

	"github.com/imat-lab/imatlab/modular"
	"github.com/imat-lab/imatlab/utils/bignum"
	"github.com/imat-lab/imatlab/utils/sampling"
)

const (
	// PrivateExponentSeed is the first candidate for the private exponent.
	PrivateExponentSeed = 9311

	// MaxDistinctAttempts bounds the draws of a pair of distinct primes.
	MaxDistinctAttempts = 20
)

// KeyGenerator draws key pairs from prime intervals.
type KeyGenerator struct {
	prng sampling.PRNG
}

// NewKeyGenerator creates a new KeyGenerator reading its randomness from prng.
// A nil prng defaults to crypto/rand.
func NewKeyGenerator(prng sampling.PRNG) *KeyGenerator {
	if prng == nil {
		prng = sampling.NewPRNG()
	}
	return &KeyGenerator{prng: prng}
}

// GenKeyPair draws two distinct primes p1, p2 in [minPrime, maxPrime) and
// returns the key pair with N = p1*p2. The private exponent D is the first
// integer PrivateExponentSeed, PrivateExponentSeed+2, ... coprime with
// phi = (p1-1)(p2-1), and E = D^-1 mod phi.
func (kgen KeyGenerator) GenKeyPair(minPrime, maxPrime int) (kp KeyPair, err error) {

	primes, err := modular.ListPrimes(minPrime, maxPrime)
	if err != nil {
		return kp, wrap("GenKeyPair", err)
	}

	if len(primes) < 2 {
		return kp, errorf("GenKeyPair", ErrInsufficientPrimes, "[%d, %d) holds %d primes", minPrime, maxPrime, len(primes))
	}

	p1, p2, err := kgen.drawDistinct(primes)
	if err != nil {
		return kp, err
	}

	N := new(big.Int).Mul(p1, p2)

	phi := new(big.Int).Sub(p1, big.NewInt(1))
	phi.Mul(phi, new(big.Int).Sub(p2, big.NewInt(1)))

	D := big.NewInt(PrivateExponentSeed)
	for !modular.AreCoprime(D, phi) {
		D.Add(D, big.NewInt(2))
	}

	E, err := modular.ModInverse(D, phi)
	if err != nil {
		return kp, errorf("GenKeyPair", ErrKeyDerivationFailed, "%v has no inverse modulo phi = %v", D, phi)
	}

	return KeyPair{N: N, E: E, D: D}, nil
}

// drawDistinct draws two uniform primes from the list until they differ.
func (kgen KeyGenerator) drawDistinct(primes []int) (p1, p2 *big.Int, err error) {
	for attempt := 0; attempt < MaxDistinctAttempts; attempt++ {
		i := sampling.RandIndex(kgen.prng, len(primes))
		j := sampling.RandIndex(kgen.prng, len(primes))
		if i != j {
			return bignum.NewInt(primes[i]), bignum.NewInt(primes[j]), nil
		}
	}
	return nil, nil, errorf("GenKeyPair", ErrDegenerateInterval, "no distinct pair after %d attempts", MaxDistinctAttempts)
}
