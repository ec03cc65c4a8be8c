package rsa

import (
	"math/big"

	"github.com/imat-lab/imatlab/utils/bignum"
	"github.com/imat-lab/imatlab/utils/sampling"
)

// ApplyPadding appends digits random decimal digits to the decimal representation of m.
// A non-positive digits leaves m unchanged.
func ApplyPadding(prng sampling.PRNG, m *big.Int, digits int) *big.Int {
	return bignum.AppendDigits(m, sampling.RandDigits(prng, digits))
}

// RemovePadding drops the last digits decimal digits of m.
// It returns 0 when m has at most digits characters.
func RemovePadding(m *big.Int, digits int) *big.Int {
	return bignum.TruncateDigits(m, digits)
}
