// Package rsa implements a textbook RSA scheme over small primes with a
// decimal-digit padding. It is meant for teaching: keys are tiny, the padding
// is not a secure encoding and strings are encrypted one code point at a time.
package rsa

import (
	"fmt"
	"math/big"
)

// PublicKey is the pair (N, E).
type PublicKey struct {
	N, E *big.Int
}

// PrivateKey is the pair (N, D).
type PrivateKey struct {
	N, D *big.Int
}

// KeyPair holds a modulus N = p1*p2 and exponents with E*D = 1 mod phi(N).
type KeyPair struct {
	N, E, D *big.Int
}

// PublicKey returns the public part (N, E) of the key pair.
func (kp KeyPair) PublicKey() PublicKey {
	return PublicKey{N: new(big.Int).Set(kp.N), E: new(big.Int).Set(kp.E)}
}

// PrivateKey returns the private part (N, D) of the key pair.
func (kp KeyPair) PrivateKey() PrivateKey {
	return PrivateKey{N: new(big.Int).Set(kp.N), D: new(big.Int).Set(kp.D)}
}

// String renders the key pair as "(n, e, d)".
func (kp KeyPair) String() string {
	return fmt.Sprintf("(%v, %v, %v)", kp.N, kp.E, kp.D)
}
