package rsa

import (
	"errors"
	"fmt"

	"github.com/imat-lab/imatlab/modular"
)

var (
	// ErrInsufficientPrimes indicates a prime interval holding fewer than two primes.
	ErrInsufficientPrimes = errors.New("rsa: fewer than two primes in interval")

	// ErrDegenerateInterval indicates that two distinct primes could not be drawn from the interval.
	ErrDegenerateInterval = errors.New("rsa: could not draw two distinct primes")

	// ErrKeyDerivationFailed indicates that the public exponent could not be derived from the private one.
	ErrKeyDerivationFailed = errors.New("rsa: key derivation failed")

	// ErrInvalidCodePoint indicates a decrypted value that is not a Unicode code point.
	ErrInvalidCodePoint = fmt.Errorf("%w: not a unicode code point", modular.ErrInvalidArgument)
)

// Error wraps one of the sentinel errors with the name of the failing operation.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("rsa.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errorf(op string, kind error, format string, args ...interface{}) error {
	return &Error{
		Op:  op,
		Err: fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)),
	}
}

// wrap attaches op to an error returned by the modular package.
func wrap(op string, err error) error {
	return &Error{Op: op, Err: err}
}
