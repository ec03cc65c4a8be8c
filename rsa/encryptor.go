package rsa

import (
	"math/big"

	"github.com/imat-lab/imatlab/modular"
	"github.com/imat-lab/imatlab/utils/sampling"
)

// Encryptor encrypts integers and strings under a PublicKey, padding each
// plaintext with a fixed number of random decimal digits.
type Encryptor struct {
	pk      PublicKey
	padding int
	prng    sampling.PRNG
}

// NewEncryptor creates a new Encryptor. A nil prng defaults to crypto/rand.
func NewEncryptor(pk PublicKey, padding int, prng sampling.PRNG) *Encryptor {
	if prng == nil {
		prng = sampling.NewPRNG()
	}
	return &Encryptor{
		pk:      PublicKey{N: new(big.Int).Set(pk.N), E: new(big.Int).Set(pk.E)},
		padding: padding,
		prng:    prng,
	}
}

// Padding returns the number of padding digits.
func (enc Encryptor) Padding() int {
	return enc.padding
}

// EncryptInt pads m and returns padded^E mod N.
func (enc Encryptor) EncryptInt(m *big.Int) (*big.Int, error) {
	c, err := modular.ModPow(ApplyPadding(enc.prng, m, enc.padding), enc.pk.E, enc.pk.N)
	if err != nil {
		return nil, wrap("EncryptInt", err)
	}
	return c, nil
}

// EncryptString encrypts each code point of text independently.
func (enc Encryptor) EncryptString(text string) (ct []*big.Int, err error) {
	ct = make([]*big.Int, 0, len(text))
	for _, r := range text {
		c, err := enc.EncryptInt(big.NewInt(int64(r)))
		if err != nil {
			return nil, err
		}
		ct = append(ct, c)
	}
	return ct, nil
}
