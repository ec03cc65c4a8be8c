package command

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/imat-lab/imatlab/modular"
	"github.com/imat-lab/imatlab/utils/bignum"
)

const none = "None"

// Eval runs the call against the modular package and renders its result:
// booleans as True/False, lists as [a, b], factorizations as {p: e},
// pairs as (x, y) and an absent inverse or square root as None.
func Eval(call Call) (string, error) {

	args := call.Args

	switch call.Command {
	case IsPrime:
		return formatBool(modular.IsPrime(args[0])), nil

	case ListPrimes:
		start, err := toInt(args[0])
		if err != nil {
			return "", err
		}
		end, err := toInt(args[1])
		if err != nil {
			return "", err
		}
		primes, err := modular.ListPrimes(start, end)
		if err != nil {
			return "", err
		}
		return bignum.Format(bignum.NewInts(primes...)), nil

	case Factorize:
		return modular.Factorize(args[0]).String(), nil

	case GCD:
		return modular.GCD(args[0], args[1]).String(), nil

	case AreCoprime:
		return formatBool(modular.AreCoprime(args[0], args[1])), nil

	case ModPow:
		r, err := modular.ModPow(args[0], args[1], args[2])
		if err != nil {
			return "", err
		}
		return r.String(), nil

	case ModInverse:
		inv, err := modular.ModInverse(args[0], args[1])
		if errors.Is(err, modular.ErrNoInverse) {
			return none, nil
		}
		if err != nil {
			return "", err
		}
		return inv.String(), nil

	case EulerTotient:
		phi, err := modular.EulerTotient(args[0])
		if err != nil {
			return "", err
		}
		return phi.String(), nil

	case LegendreSymbol:
		return strconv.Itoa(modular.LegendreSymbol(args[0], args[1])), nil

	case SolveSystem:
		x, N, err := modular.SolveCongruenceSystem(call.System)
		if err != nil {
			return "", err
		}
		return formatPair(x, N), nil

	case ModSqrt:
		root, ok := modular.ModSqrt(args[0], args[1])
		if !ok {
			return none, nil
		}
		return root.String(), nil

	case QuadraticEquation:
		x1, x2, err := modular.QuadraticEquation(args[0], args[1], args[2], args[3])
		if err != nil {
			return "", err
		}
		return formatPair(x1, x2), nil

	default:
		panic(fmt.Sprintf("cannot Eval: invalid command %v", call.Command))
	}
}

// Execute parses and evaluates a single line.
func Execute(line string) (string, error) {
	call, err := Parse(line)
	if err != nil {
		return "", err
	}
	return Eval(call)
}

func toInt(x *big.Int) (int, error) {
	if !x.IsInt64() || x.Int64() > math.MaxInt || x.Int64() < math.MinInt {
		return 0, fmt.Errorf("%w: %v does not fit in an int", modular.ErrInvalidArgument, x)
	}
	return int(x.Int64()), nil
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

func formatPair(x, y *big.Int) string {
	return fmt.Sprintf("(%v, %v)", x, y)
}
