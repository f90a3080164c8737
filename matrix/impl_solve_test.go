// SPDX-License-Identifier: MIT
package matrix_test

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/dspm/matrix"
)

// solver is the common shape of Solve and Roots.
type solver func(a, b matrix.Matrix) (*matrix.Dense, error)

var solvers = []struct {
	name string
	fn   solver
}{
	{"Solve", matrix.Solve},
	{"Roots", matrix.Roots},
}

func TestSolvers_ThreeByThree(t *testing.T) {
	t.Parallel()
	for _, s := range solvers {
		s := s
		t.Run(s.name, func(t *testing.T) {
			t.Parallel()
			a, b, want := threeByThree(t)
			aCopy, bCopy := a.Clone(), b.Clone()

			x, err := s.fn(a, b)
			require.NoError(t, err)
			require.Equal(t, 3, x.Rows())
			require.Equal(t, 1, x.Cols())
			RequireWithin(t, want, x, matrix.Eps)

			require.True(t, matrix.Equal(aCopy, a), "A must not be mutated")
			require.True(t, matrix.Equal(bCopy, b), "B must not be mutated")
		})
	}
}

func TestSolvers_Agree(t *testing.T) {
	t.Parallel()
	a, b, _ := threeByThree(t)
	x, diff, err := matrix.CrossCheck(a, b)
	require.NoError(t, err)
	require.NotNil(t, x)
	require.LessOrEqual(t, diff, matrix.Eps)
}

func TestSolvers_SingularZeroRow(t *testing.T) {
	t.Parallel()
	a := MustFrom(t, 3, 3,
		1, 2, 3,
		0, 0, 0,
		4, 5, 6)
	b := MustFrom(t, 3, 1, 1, 2, 3)
	for _, s := range solvers {
		x, err := s.fn(a, b)
		require.Nil(t, x, s.name)
		AssertErrorIs(t, err, matrix.ErrSingular)
	}
}

func TestSolvers_RankDeficientCounting(t *testing.T) {
	t.Parallel()
	a := countingFourByFour(t)
	b := MustFrom(t, 4, 1, 1, 2, 3, 4)
	for _, s := range solvers {
		_, err := s.fn(a, b)
		AssertErrorIs(t, err, matrix.ErrSingular)
	}
	d, err := matrix.Det(a)
	require.NoError(t, err)
	require.Zero(t, d)
}

func TestSolvers_FourByFourResidual(t *testing.T) {
	t.Parallel()
	a := wellPosedFourByFour(t)
	want := MustFrom(t, 4, 1, 1, 2, -1, 3)
	b, err := matrix.Mul(a, want)
	require.NoError(t, err)

	for _, s := range solvers {
		x, err := s.fn(a, b)
		require.NoError(t, err, s.name)
		RequireWithin(t, want, x, 10*matrix.Eps)

		ax, err := matrix.Mul(a, x)
		require.NoError(t, err)
		RequireWithin(t, b, ax, 10*matrix.Eps)
	}
}

func TestSolvers_MultipleRightHandSides(t *testing.T) {
	t.Parallel()
	a, b, want := threeByThree(t)
	bb := MustDense(t, 3, 2)
	for i := 0; i < 3; i++ {
		MustSet(t, bb, i, 0, MustAt(t, b, i, 0))
		MustSet(t, bb, i, 1, 2*MustAt(t, b, i, 0))
	}
	for _, s := range solvers {
		x, err := s.fn(a, bb)
		require.NoError(t, err, s.name)
		require.Equal(t, 2, x.Cols())
		for i := 0; i < 3; i++ {
			require.InDelta(t, MustAt(t, want, i, 0), MustAt(t, x, i, 0), float64(matrix.Eps))
			require.InDelta(t, 2*MustAt(t, want, i, 0), MustAt(t, x, i, 1), float64(2*matrix.Eps))
		}
	}
}

func TestSolvers_NeedsPivoting(t *testing.T) {
	t.Parallel()
	// Zero leading entry: elimination without row exchange would divide by 0.
	a := MustFrom(t, 2, 2, 0, 1, 1, 0)
	b := MustFrom(t, 2, 1, 3, 4)
	for _, s := range solvers {
		x, err := s.fn(a, b)
		require.NoError(t, err, s.name)
		require.True(t, matrix.Equal(MustFrom(t, 2, 1, 4, 3), x), "%s got\n%v", s.name, x)
	}
}

func TestSolvers_Errors(t *testing.T) {
	t.Parallel()
	sq := MustDense(t, 3, 3)
	for _, s := range solvers {
		_, err := s.fn(MustDense(t, 2, 3), MustDense(t, 2, 1))
		AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
		_, err = s.fn(sq, MustDense(t, 4, 1))
		AssertErrorIs(t, err, matrix.ErrDimensionMismatch)
		_, err = s.fn(nil, MustDense(t, 3, 1))
		AssertErrorIs(t, err, matrix.ErrNilMatrix)
		_, err = s.fn(sq, nil)
		AssertErrorIs(t, err, matrix.ErrNilMatrix)
	}
}

func TestSolvers_FallbackOperands(t *testing.T) {
	t.Parallel()
	a, b, want := threeByThree(t)
	for _, s := range solvers {
		x, err := s.fn(hide{a}, hide{b})
		require.NoError(t, err, s.name)
		RequireWithin(t, want, x, matrix.Eps)
	}
}

// diagDominant returns a strictly diagonally dominant n×n matrix.
func diagDominant(t *testing.T, rng *rand.Rand, n int) *matrix.Dense {
	t.Helper()
	a := MustDense(t, n, n)
	a.Apply(func(i, j int, _ float32) float32 {
		v := float32(rng.Float64()*2 - 1)
		if i == j {
			v += float32(n)
		}
		return v
	})

	return a
}

func TestSolvers_MatchGonum(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(42))
	for _, n := range []int{1, 2, 5, 12} {
		n := n
		a := diagDominant(t, rng, n)
		b := MustDense(t, n, 1)
		b.Apply(func(_, _ int, _ float32) float32 { return float32(rng.Float64()*2 - 1) })

		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			ga, err := matrix.AsGonum(a)
			require.NoError(t, err)
			gb, err := matrix.AsGonum(b)
			require.NoError(t, err)
			var gx mat.Dense
			require.NoError(t, gx.Solve(ga, gb))
			ref, err := matrix.FromGonum(&gx)
			require.NoError(t, err)

			for _, s := range solvers {
				x, err := s.fn(a, b)
				require.NoError(t, err, s.name)
				RequireWithin(t, ref, x, matrix.Eps)
			}
		})
	}
}

func TestSolvers_NonFiniteInput(t *testing.T) {
	t.Parallel()
	nan := float32(math.NaN())
	inf := float32(math.Inf(1))

	for _, tc := range []struct {
		name string
		a, b *matrix.Dense
	}{
		{"NaN leading pivot", MustFrom(t, 2, 2, nan, 1, 1, 1), MustFrom(t, 2, 1, 1, 2)},
		{"NaN off pivot", MustFrom(t, 2, 2, 2, nan, 1, 1), MustFrom(t, 2, 1, 1, 2)},
		{"Inf in A", MustFrom(t, 2, 2, 2, 1, inf, 1), MustFrom(t, 2, 1, 1, 2)},
		{"NaN in B", MustFrom(t, 2, 2, 2, 1, 1, 1), MustFrom(t, 2, 1, nan, 2)},
	} {
		for _, s := range solvers {
			x, err := s.fn(tc.a, tc.b)
			require.Nil(t, x, "%s/%s", tc.name, s.name)
			AssertErrorIs(t, err, matrix.ErrNaNInf)
		}
	}

	_, err := matrix.LU(MustFrom(t, 2, 2, nan, 1, 1, 1))
	AssertErrorIs(t, err, matrix.ErrNaNInf)
	_, err = matrix.Det(MustFrom(t, 1, 1, inf))
	AssertErrorIs(t, err, matrix.ErrNaNInf)
}

func TestSolvers_SingularReportsZeroPivot(t *testing.T) {
	t.Parallel()
	a := MustDense(t, 2, 2)
	b := MustDense(t, 2, 1)
	for _, s := range solvers {
		_, err := s.fn(a, b)
		AssertErrorIs(t, err, matrix.ErrSingular)
		require.Contains(t, err.Error(), "|pivot|=0", s.name)
	}
}
