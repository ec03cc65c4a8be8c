// Package sampling implements sampling of bytes, integers and decimal digits
// from a caller-provided PRNG.
package sampling

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// RandInt generates a random Int in [0, max-1] read from prng.
// It panics if max <= 0 or if prng fails.
func RandInt(prng PRNG, max *big.Int) (n *big.Int) {
	var err error
	if n, err = rand.Int(prng, max); err != nil {
		panic(err)
	}
	return
}

// RandIndex returns a uniform index in [0, n-1].
func RandIndex(prng PRNG, n int) int {
	return int(RandInt(prng, big.NewInt(int64(n))).Int64())
}

// RandDigits returns a string of count independent uniform decimal digits.
// A non-positive count yields the empty string.
func RandDigits(prng PRNG, count int) string {
	if count <= 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(count)
	ten := big.NewInt(10)
	for i := 0; i < count; i++ {
		sb.WriteByte('0' + byte(RandInt(prng, ten).Int64()))
	}
	return sb.String()
}
