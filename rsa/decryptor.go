package rsa

import (
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/imat-lab/imatlab/modular"
)

// Decryptor decrypts integers and strings with a PrivateKey. Its padding must
// match the one of the Encryptor; a mismatch yields a wrong plaintext, not an error.
type Decryptor struct {
	sk      PrivateKey
	padding int
}

// NewDecryptor creates a new Decryptor.
func NewDecryptor(sk PrivateKey, padding int) *Decryptor {
	return &Decryptor{
		sk:      PrivateKey{N: new(big.Int).Set(sk.N), D: new(big.Int).Set(sk.D)},
		padding: padding,
	}
}

// DecryptInt returns c^D mod N with the padding digits removed.
func (dec Decryptor) DecryptInt(c *big.Int) (*big.Int, error) {
	padded, err := modular.ModPow(c, dec.sk.D, dec.sk.N)
	if err != nil {
		return nil, wrap("DecryptInt", err)
	}
	return RemovePadding(padded, dec.padding), nil
}

// DecryptString decrypts each integer of ct to a code point and concatenates them.
func (dec Decryptor) DecryptString(ct []*big.Int) (string, error) {

	var sb strings.Builder

	for i, c := range ct {

		m, err := dec.DecryptInt(c)
		if err != nil {
			return "", err
		}

		if !m.IsInt64() || m.Sign() < 0 || m.Int64() > utf8.MaxRune {
			return "", errorf("DecryptString", ErrInvalidCodePoint, "value %v at position %d", m, i)
		}

		sb.WriteRune(rune(m.Int64()))
	}

	return sb.String(), nil
}
