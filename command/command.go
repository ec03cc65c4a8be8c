// Package command maps the textual operations of the IMAT-LAB console, such as
// "factorizar(360)" or "resolverSistema([1,2,3;1,3,5])", onto the modular package.
package command

import (
	"errors"
	"fmt"
)

// Command enumerates the operations of the registry.
type Command int

const (
	IsPrime Command = iota
	ListPrimes
	Factorize
	GCD
	AreCoprime
	ModPow
	ModInverse
	EulerTotient
	LegendreSymbol
	SolveSystem
	ModSqrt
	QuadraticEquation

	numCommands
)

var (
	// ErrUnknownCommand indicates an operation name absent from the registry.
	ErrUnknownCommand = errors.New("command: unknown command")

	// ErrSyntax indicates a line that is not of the form name(arg, ...).
	ErrSyntax = errors.New("command: syntax error")

	// ErrArity indicates a call with the wrong number of arguments.
	ErrArity = errors.New("command: wrong number of arguments")
)

var names = [numCommands]string{
	IsPrime:           "primo",
	ListPrimes:        "primos",
	Factorize:         "factorizar",
	GCD:               "mcd",
	AreCoprime:        "coprimos",
	ModPow:            "pow",
	ModInverse:        "inv",
	EulerTotient:      "euler",
	LegendreSymbol:    "legendre",
	SolveSystem:       "resolverSistema",
	ModSqrt:           "raiz",
	QuadraticEquation: "ecCuadratica",
}

// arities holds the number of integer arguments; SolveSystem takes a bracketed system instead.
var arities = [numCommands]int{
	IsPrime:           1,
	ListPrimes:        2,
	Factorize:         1,
	GCD:               2,
	AreCoprime:        2,
	ModPow:            3,
	ModInverse:        2,
	EulerTotient:      1,
	LegendreSymbol:    2,
	SolveSystem:       -1,
	ModSqrt:           2,
	QuadraticEquation: 4,
}

// String returns the name under which the command is called.
func (c Command) String() string {
	if c < 0 || c >= numCommands {
		return fmt.Sprintf("Command(%d)", int(c))
	}
	return names[c]
}

// Arity returns the number of integer arguments of c, or -1 for SolveSystem.
func (c Command) Arity() int {
	return arities[c]
}

// Lookup returns the command registered under name.
func Lookup(name string) (Command, error) {
	for c, n := range names {
		if n == name {
			return Command(c), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// Commands returns every command of the registry.
func Commands() []Command {
	cmds := make([]Command, numCommands)
	for i := range cmds {
		cmds[i] = Command(i)
	}
	return cmds
}
