// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers
//
// Purpose:
//   - Small, deterministic fixtures and must-style accessors for kernel tests.
//   - Keep all data finite and small-valued so float32 rounding stays far below Eps.

package matrix_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dspm/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions.
// Use hide{X} to force the At/Set fallback paths of the kernels.
type hide struct{ matrix.Matrix }

// MustDense allocates an r×c *Dense or fails the test.
func MustDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(r, c)
	require.NoError(t, err, "NewDense(%d,%d)", r, c)

	return m
}

// MustFrom builds an r×c *Dense from row-major values or fails the test.
func MustFrom(t *testing.T, r, c int, vals ...float32) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(r, c, vals)
	require.NoError(t, err, "NewDenseFrom(%d,%d)", r, c)

	return m
}

// MustAt reads (i,j) or fails the test.
func MustAt(t *testing.T, m matrix.Matrix, i, j int) float32 {
	t.Helper()
	v, err := m.At(i, j)
	require.NoError(t, err, "At(%d,%d)", i, j)

	return v
}

// MustSet writes (i,j) or fails the test.
func MustSet(t *testing.T, m matrix.Matrix, i, j int, v float32) {
	t.Helper()
	require.NoError(t, m.Set(i, j, v), "Set(%d,%d)", i, j)
}

// NewFilledDense returns an r×c matrix with element (i,j) = i*c + j + 1.
func NewFilledDense(t *testing.T, r, c int) *matrix.Dense {
	t.Helper()
	m := MustDense(t, r, c)
	m.Apply(func(i, j int, _ float32) float32 { return float32(i*c + j + 1) })

	return m
}

// AssertErrorIs fails unless errors.Is(err, target).
func AssertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected errors.Is(err, %v), got %v", target, err)
	}
}

// RequireWithin fails unless got and want agree element-wise within tol.
func RequireWithin(t *testing.T, want, got matrix.Matrix, tol float32) {
	t.Helper()
	d, err := matrix.MaxAbsDiff(want, got)
	require.NoError(t, err)
	require.LessOrEqual(t, d, tol, "want\n%vgot\n%v", want, got)
}

// threeByThree is the 3×3 reference system; its solution is
// x = [41/12, -31/12, -1/12] and det(A) = 12.
func threeByThree(t *testing.T) (a, b, x *matrix.Dense) {
	t.Helper()
	a = MustFrom(t, 3, 3,
		3, 2, 1,
		2, 3, 1,
		2, 1, 3)
	b = MustFrom(t, 3, 1, 5, -1, 4)
	x = MustFrom(t, 3, 1, 41.0/12, -31.0/12, -1.0/12)

	return a, b, x
}

// countingFourByFour is A(i,j) = 4i + j with A(0,0)=10 and A(0,1)=11.
// Row 3 equals 2·row 2 − row 1, so the matrix is singular.
func countingFourByFour(t *testing.T) *matrix.Dense {
	t.Helper()
	a := MustDense(t, 4, 4)
	a.Apply(func(i, j int, _ float32) float32 { return float32(4*i + j) })
	MustSet(t, a, 0, 0, 10)
	MustSet(t, a, 0, 1, 11)

	return a
}

// wellPosedFourByFour perturbs the diagonal of countingFourByFour so the
// system has a unique solution.
func wellPosedFourByFour(t *testing.T) *matrix.Dense {
	t.Helper()
	a := countingFourByFour(t)
	for i := 1; i < 4; i++ {
		MustSet(t, a, i, i, MustAt(t, a, i, i)+float32(i+2))
	}

	return a
}
