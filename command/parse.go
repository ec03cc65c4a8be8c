package command

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/imat-lab/imatlab/modular"
	"github.com/imat-lab/imatlab/utils/bignum"
)

// Call is a parsed invocation of a command.
type Call struct {
	Command Command
	Args    []*big.Int
	// System is only set for SolveSystem.
	System []modular.Congruence
}

// Parse parses a line of the form name(a, b, ...). The system of
// resolverSistema is written [a1,b1,p1;a2,b2,p2;...].
func Parse(line string) (call Call, err error) {

	line = strings.TrimSpace(line)

	open := strings.IndexByte(line, '(')
	end := strings.LastIndexByte(line, ')')
	if open < 0 || end < open {
		return call, fmt.Errorf("%w: %q", ErrSyntax, line)
	}

	if call.Command, err = Lookup(strings.TrimSpace(line[:open])); err != nil {
		return
	}

	body := line[open+1 : end]

	if call.Command == SolveSystem {
		call.System, err = parseSystem(body)
		return
	}

	if call.Args, err = parseInts(strings.Split(body, ",")); err != nil {
		return
	}

	if len(call.Args) != call.Command.Arity() {
		return call, fmt.Errorf("%w: %v takes %d, got %d", ErrArity, call.Command, call.Command.Arity(), len(call.Args))
	}

	return
}

// parseSystem parses the flattened triples of "[a1,b1,p1;a2,b2,p2]".
func parseSystem(body string) ([]modular.Congruence, error) {

	body = strings.NewReplacer("[", "", "]", "", ";", ",").Replace(body)

	values, err := parseInts(strings.Split(body, ","))
	if err != nil {
		return nil, err
	}

	if len(values)%3 != 0 {
		return nil, fmt.Errorf("%w: %d values do not form triples", modular.ErrInvalidArgument, len(values))
	}

	a := make([]*big.Int, 0, len(values)/3)
	b := make([]*big.Int, 0, len(values)/3)
	p := make([]*big.Int, 0, len(values)/3)
	for i := 0; i < len(values); i += 3 {
		a = append(a, values[i])
		b = append(b, values[i+1])
		p = append(p, values[i+2])
	}

	return modular.NewCongruenceSystem(a, b, p)
}

func parseInts(tokens []string) ([]*big.Int, error) {
	values := make([]*big.Int, len(tokens))
	for i, token := range tokens {
		v, err := bignum.ParseInt(token)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
		}
		values[i] = v
	}
	return values, nil
}
