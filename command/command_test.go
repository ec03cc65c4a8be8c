package command_test

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/imat-lab/imatlab/command"
	"github.com/imat-lab/imatlab/modular"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {

	seen := map[string]bool{}
	for _, c := range command.Commands() {
		name := c.String()
		require.False(t, seen[name], "duplicate name %s", name)
		seen[name] = true

		got, err := command.Lookup(name)
		require.NoError(t, err)
		require.Equal(t, c, got)
	}
	require.Len(t, seen, 12)

	_, err := command.Lookup("sqrt")
	require.ErrorIs(t, err, command.ErrUnknownCommand)

	require.Equal(t, "Command(99)", command.Command(99).String())
	require.Equal(t, 4, command.QuadraticEquation.Arity())
	require.Equal(t, -1, command.SolveSystem.Arity())
}

func TestParse(t *testing.T) {

	t.Run("Args", func(t *testing.T) {
		call, err := command.Parse("  pow( 2, 10 ,-1000)  ")
		require.NoError(t, err)
		require.Equal(t, command.ModPow, call.Command)
		got := make([]string, len(call.Args))
		for i, a := range call.Args {
			got[i] = a.String()
		}
		require.Equal(t, []string{"2", "10", "-1000"}, got)
		require.Nil(t, call.System)
	})

	t.Run("System", func(t *testing.T) {
		call, err := command.Parse("resolverSistema([1, 2, 3; 1, 3, 5])")
		require.NoError(t, err)
		require.Len(t, call.System, 2)
		require.Equal(t, "1*x = 3 (mod 5)", call.System[1].String())
	})

	t.Run("Errors", func(t *testing.T) {
		vectors := []struct {
			line string
			err  error
		}{
			{"primo", command.ErrSyntax},
			{"primo(7", command.ErrSyntax},
			{"primo)7(", command.ErrSyntax},
			{"primo(siete)", command.ErrSyntax},
			{"primo(1.5)", command.ErrSyntax},
			{"mcd()", command.ErrSyntax},
			{"primos(10)", command.ErrArity},
			{"mcd(1, 2, 3)", command.ErrArity},
			{"sqrt(4)", command.ErrUnknownCommand},
			{"resolverSistema([1,2,3;1,3])", modular.ErrInvalidArgument},
		}
		for _, v := range vectors {
			_, err := command.Parse(v.line)
			require.ErrorIsf(t, err, v.err, "line %q", v.line)
		}
	})
}

func TestExecute(t *testing.T) {

	vectors := []struct {
		line string
		want string
	}{
		{"primo(17)", "True"},
		{"primo(1)", "False"},
		{"primo(-7)", "False"},
		{"primos(10, 30)", "[11, 13, 17, 19, 23, 29]"},
		{"primos(30, 10)", "[]"},
		{"factorizar(360)", "{2: 3, 3: 2, 5: 1}"},
		{"factorizar(1)", "{}"},
		{"factorizar(100160063)", "{10007: 1, 10009: 1}"},
		{"mcd(12, 18)", "6"},
		{"mcd(0, 0)", "0"},
		{"coprimos(9, 28)", "True"},
		{"coprimos(9, 30)", "False"},
		{"pow(2, 10, 1000)", "24"},
		{"pow(3, -1, 7)", "5"},
		{"inv(3, 7)", "5"},
		{"inv(4, 8)", "None"},
		{"euler(36)", "12"},
		{"euler(1)", "1"},
		{"legendre(2, 7)", "1"},
		{"legendre(3, 7)", "-1"},
		{"legendre(14, 7)", "0"},
		{"resolverSistema([1,2,3;1,3,5])", "(8, 15)"},
		{"resolverSistema([2,1,3;1,2,7;1,4,11])", "(191, 231)"},
		{"raiz(3, 7)", "None"},
		{"raiz(0, 7)", "None"},
		{"raiz(5, 2)", "1"},
		{"raiz(1, 1267650600228229401496703205376)", "None"},
		{"ecCuadratica(1, -5, 6, 7)", "(2, 3)"},
	}

	for _, v := range vectors {
		got, err := command.Execute(v.line)
		require.NoErrorf(t, err, "line %q", v.line)
		require.Equalf(t, v.want, got, "line %q", v.line)
	}

	t.Run("SquareRoot", func(t *testing.T) {
		got, err := command.Execute("raiz(2, 7)")
		require.NoError(t, err)
		require.Contains(t, []string{"3", "4"}, got)
	})

	t.Run("Errors", func(t *testing.T) {
		vectors := []struct {
			line string
			err  error
		}{
			{"pow(2, 3, 0)", modular.ErrInvalidModulus},
			{"pow(2, -1, 8)", modular.ErrNoInverse},
			{"euler(0)", modular.ErrInvalidArgument},
			{"primos(0, 99999999999999999999)", modular.ErrInvalidArgument},
			{"resolverSistema([1,1,4;1,1,6])", modular.ErrUnsolvable},
			{"ecCuadratica(1, 0, -3, 7)", modular.ErrNoRoot},
			{"ecCuadratica(1, 2, 1, 7)", modular.ErrNoRoot},
			{"ecCuadratica(1, -2, 1, 11)", modular.ErrNoRoot},
			{"ecCuadratica(7, 1, 1, 7)", modular.ErrNoInverse},
		}
		for _, v := range vectors {
			_, err := command.Execute(v.line)
			require.ErrorIsf(t, err, v.err, "line %q", v.line)
		}
	})
}

func TestEvalPanicsOnInvalidCommand(t *testing.T) {
	require.Panics(t, func() {
		_, _ = command.Eval(command.Call{Command: command.Command(-1), Args: []*big.Int{big.NewInt(1)}})
	})
}

func TestInterpreter(t *testing.T) {

	input := strings.Join([]string{
		"primo(7)",
		"",
		"factorizar(12)",
		"foo(1)",
		"   inv(2, 4)",
		"resolverSistema([1,2,3;1,3,5])",
		"pow(2, 3, 0)",
	}, "\n")

	var failed []int
	it := command.Interpreter{
		OnError: func(lineno int, line string, err error) {
			failed = append(failed, lineno)
		},
	}

	var out bytes.Buffer
	require.NoError(t, it.Run(strings.NewReader(input), &out))

	want := "True\n{2: 2, 3: 1}\nERROR\nNone\n(8, 15)\nERROR\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, []int{4, 7}, failed)
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestInterpreterWriteError(t *testing.T) {
	err := command.Interpreter{}.Run(strings.NewReader("primo(7)\n"), failingWriter{})
	require.Error(t, err)
}
