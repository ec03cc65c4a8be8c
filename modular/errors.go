package modular

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument indicates an input outside the domain of the operation.
	ErrInvalidArgument = errors.New("modular: invalid argument")

	// ErrInvalidModulus indicates a zero (or, where positivity is required, negative) modulus.
	ErrInvalidModulus = errors.New("modular: invalid modulus")

	// ErrNoInverse indicates that a value is not invertible modulo the given modulus.
	ErrNoInverse = errors.New("modular: no modular inverse")

	// ErrNoRoot indicates that no modular square root exists.
	ErrNoRoot = errors.New("modular: no square root")

	// ErrUnsolvable indicates a congruence system without solution for the supplied moduli.
	ErrUnsolvable = errors.New("modular: unsolvable congruence system")
)

// Error wraps one of the sentinel errors with the name of the failing operation.
type Error struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *Error) Error() string {
	return fmt.Sprintf("modular.%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errorf wraps kind with op and a formatted detail message.
func errorf(op string, kind error, format string, args ...interface{}) error {
	return &Error{
		Op:  op,
		Err: fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...)),
	}
}
