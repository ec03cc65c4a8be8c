package modular_test

import (
	"testing"

	"github.com/imat-lab/imatlab/modular"
	"github.com/imat-lab/imatlab/utils/bignum"
	"github.com/stretchr/testify/require"
)

func TestSolveCongruenceSystem(t *testing.T) {

	t.Run("Example", func(t *testing.T) {
		system, err := modular.NewCongruenceSystem(bignum.NewInts(1, 1), bignum.NewInts(2, 3), bignum.NewInts(3, 5))
		require.NoError(t, err)
		x, N, err := modular.SolveCongruenceSystem(system)
		require.NoError(t, err)
		require.Equal(t, "8", x.String())
		require.Equal(t, "15", N.String())
	})

	t.Run("Coefficients", func(t *testing.T) {
		// 2x = 1 (mod 3), 3x = 4 (mod 7), 4x = 5 (mod 11)
		system, err := modular.NewCongruenceSystem(bignum.NewInts(2, 3, 4), bignum.NewInts(1, 4, 5), bignum.NewInts(3, 7, 11))
		require.NoError(t, err)
		x, N, err := modular.SolveCongruenceSystem(system)
		require.NoError(t, err)
		require.Equal(t, "231", N.String())
		require.True(t, x.Sign() >= 0 && x.Cmp(N) < 0)
		for _, c := range system {
			require.Truef(t, c.Satisfies(x), "%v with x=%v", c, x)
		}
	})

	t.Run("Grid", func(t *testing.T) {
		moduli := bignum.NewInts(4, 9, 5, 7)
		for a := int64(1); a < 12; a++ {
			for b := int64(-4); b < 12; b++ {
				A := bignum.NewInts(a, a+2, 1, 3)
				B := bignum.NewInts(b, 2*b, b+1, -b)
				system, err := modular.NewCongruenceSystem(A, B, moduli)
				require.NoError(t, err)
				x, N, err := modular.SolveCongruenceSystem(system)
				solvable := true
				for _, c := range system {
					solvable = solvable && modular.AreCoprime(c.A, c.P)
				}
				if !solvable {
					require.ErrorIs(t, err, modular.ErrUnsolvable)
					continue
				}
				require.NoError(t, err)
				require.Equal(t, "1260", N.String())
				for _, c := range system {
					require.Truef(t, c.Satisfies(x), "%v with x=%v", c, x)
				}
			}
		}
	})

	t.Run("Empty", func(t *testing.T) {
		x, N, err := modular.SolveCongruenceSystem(nil)
		require.NoError(t, err)
		require.Equal(t, "0", x.String())
		require.Equal(t, "1", N.String())
	})

	t.Run("NonCoprimeModuli", func(t *testing.T) {
		system, err := modular.NewCongruenceSystem(bignum.NewInts(1, 1), bignum.NewInts(1, 3), bignum.NewInts(4, 6))
		require.NoError(t, err)
		_, _, err = modular.SolveCongruenceSystem(system)
		require.ErrorIs(t, err, modular.ErrUnsolvable)
	})

	t.Run("InvalidModulus", func(t *testing.T) {
		system, err := modular.NewCongruenceSystem(bignum.NewInts(1), bignum.NewInts(1), bignum.NewInts(0))
		require.NoError(t, err)
		_, _, err = modular.SolveCongruenceSystem(system)
		require.ErrorIs(t, err, modular.ErrInvalidModulus)
	})

	t.Run("MismatchedLengths", func(t *testing.T) {
		_, err := modular.NewCongruenceSystem(bignum.NewInts(1, 1), bignum.NewInts(2), bignum.NewInts(3, 5))
		require.ErrorIs(t, err, modular.ErrInvalidArgument)
	})
}
