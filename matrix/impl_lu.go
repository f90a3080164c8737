// SPDX-License-Identifier: MIT

// Package matrix - cross-check solver: Doolittle LU with row pivoting and
// triangular substitution.
//
// Roots solves the same systems as Solve but takes a different arithmetic
// route: U and L are built entry by entry from dot products of already
// computed factors (left-looking), and each right-hand side is pushed through
// L then U. Keeping both routes lets a regression in either show up as a
// disagreement between the two.

package matrix

import (
	"errors"
	"fmt"
	"math"
)

const (
	opLU      = "LU"
	opRoots   = "Roots"
	opLUSolve = "LU.Solve"
	opInverse = "Inverse"
	opDet     = "Det"
)

// LUFactors holds P·A = L·U for a square A.
// L is unit lower triangular, U is upper triangular, P is a row permutation.
type LUFactors struct {
	n    int
	l    []float64 // n×n row-major, unit diagonal
	u    []float64 // n×n row-major
	perm []int     // row i of P·A is row perm[i] of A
	sign float64   // det(P): +1 or -1
}

// LU computes the pivoted Doolittle factorization of a.
//
// Implementation:
//   - Stage 1: validate a (non-nil, square); copy into float64 scratch.
//   - Stage 2: for i = 0..n-1:
//     evaluate the candidate diagonal s_r = A[r,i] − Σ_{k<i} L[r,k]·U[k,i] for r ≥ i,
//     swap the row with the largest |s_r| into position i,
//     fill row i of U (j ≥ i) and column i of L (j > i) from dot products.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrNaNInf (non-finite
//     entry), ErrSingular (best |s_r| ≤ Eps).
//
// Complexity:
//   - Time O(n^3), Space O(n^2).
func LU(a Matrix) (*LUFactors, error) {
	if err := ValidateNotNil(a); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	if err := ValidateSquare(a); err != nil {
		return nil, matrixErrorf(opLU, err)
	}

	n := a.Rows()
	src := make([]float64, n*n)
	if err := widen(src, n, 0, a); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	if err := requireFinite(src); err != nil {
		return nil, matrixErrorf(opLU, err)
	}

	f := &LUFactors{
		n:    n,
		l:    make([]float64, n*n),
		u:    make([]float64, n*n),
		perm: make([]int, n),
		sign: 1,
	}
	for i := range f.perm {
		f.perm[i] = i
	}

	var (
		i, j, k, r, p int
		sum, best, s  float64
		pivot         float64
	)
	tol := float64(Eps)
	for i = 0; i < n; i++ {
		// Candidate diagonal for every remaining row.
		p, best = i, 0
		for r = i; r < n; r++ {
			s = src[r*n+i]
			for k = 0; k < i; k++ {
				s -= f.l[r*n+k] * f.u[k*n+i]
			}
			if math.Abs(s) > best {
				p, best = r, math.Abs(s)
			}
		}
		if !(best > tol) {
			return nil, matrixErrorf(opLU, fmt.Errorf("column %d: |pivot|=%g: %w", i, best, ErrSingular))
		}
		if p != i {
			swapRows(src, n, p, i)
			// Only the already computed part of L moves with the row.
			for k = 0; k < i; k++ {
				f.l[p*n+k], f.l[i*n+k] = f.l[i*n+k], f.l[p*n+k]
			}
			f.perm[p], f.perm[i] = f.perm[i], f.perm[p]
			f.sign = -f.sign
		}

		// Row i of U.
		for j = i; j < n; j++ {
			sum = src[i*n+j]
			for k = 0; k < i; k++ {
				sum -= f.l[i*n+k] * f.u[k*n+j]
			}
			f.u[i*n+j] = sum
		}

		// Column i of L.
		pivot = f.u[i*n+i]
		f.l[i*n+i] = 1
		for j = i + 1; j < n; j++ {
			sum = src[j*n+i]
			for k = 0; k < i; k++ {
				sum -= f.l[j*n+k] * f.u[k*n+i]
			}
			f.l[j*n+i] = sum / pivot
		}
	}

	return f, nil
}

// Size returns n for the n×n factorized matrix.
func (f *LUFactors) Size() int { return f.n }

// L returns the unit lower triangular factor as a new Dense.
func (f *LUFactors) L() *Dense { return narrow(f.n, f.l) }

// U returns the upper triangular factor as a new Dense.
func (f *LUFactors) U() *Dense { return narrow(f.n, f.u) }

// Pivots returns a copy of the row permutation: row i of P·A is row Pivots()[i] of A.
func (f *LUFactors) Pivots() []int {
	out := make([]int, f.n)
	copy(out, f.perm)

	return out
}

// Det returns det(A) = det(P)·Π U[i,i].
func (f *LUFactors) Det() float32 {
	d := f.sign
	for i := 0; i < f.n; i++ {
		d *= f.u[i*f.n+i]
	}

	return float32(d)
}

// Solve returns X with A·X ≈ B using forward substitution L·Y = P·B and
// backward substitution U·X = Y, one column of B at a time.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (B.Rows() != n), ErrNaNInf.
func (f *LUFactors) Solve(b Matrix) (*Dense, error) {
	if err := ValidateNotNil(b); err != nil {
		return nil, matrixErrorf(opLUSolve, err)
	}
	if b.Rows() != f.n {
		return nil, matrixErrorf(opLUSolve, ErrDimensionMismatch)
	}

	n, k := f.n, b.Cols()
	rhs := make([]float64, n*k)
	if err := widen(rhs, k, 0, b); err != nil {
		return nil, matrixErrorf(opLUSolve, err)
	}
	if err := requireFinite(rhs); err != nil {
		return nil, matrixErrorf(opLUSolve, err)
	}
	x, err := NewDense(n, k)
	if err != nil {
		return nil, matrixErrorf(opLUSolve, err)
	}

	var (
		col, i, j int
		sum       float64
		y         = make([]float64, n)
		sol       = make([]float64, n)
	)
	for col = 0; col < k; col++ {
		// Forward: L·y = P·b (L has a unit diagonal).
		for i = 0; i < n; i++ {
			sum = rhs[f.perm[i]*k+col]
			for j = 0; j < i; j++ {
				sum -= f.l[i*n+j] * y[j]
			}
			y[i] = sum
		}
		// Backward: U·x = y.
		for i = n - 1; i >= 0; i-- {
			sum = y[i]
			for j = i + 1; j < n; j++ {
				sum -= f.u[i*n+j] * sol[j]
			}
			sol[i] = sum / f.u[i*n+i]
		}
		for i = 0; i < n; i++ {
			x.data[i*k+col] = float32(sol[i])
		}
	}

	return x, nil
}

// narrow converts an n×n float64 buffer into a new float32 Dense.
func narrow(n int, src []float64) *Dense {
	out := &Dense{r: n, c: n, data: make([]float32, n*n)}
	for i, v := range src {
		out.data[i] = float32(v)
	}

	return out
}

// Roots returns X such that A·X ≈ B through the LU route.
// It has the same contract and failure conditions as Solve and is meant to
// cross-check it.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular.
func Roots(a, b Matrix) (*Dense, error) {
	if err := ValidateLinearSystem(a, b); err != nil {
		return nil, matrixErrorf(opRoots, err)
	}
	f, err := LU(a)
	if err != nil {
		return nil, matrixErrorf(opRoots, err)
	}
	x, err := f.Solve(b)
	if err != nil {
		return nil, matrixErrorf(opRoots, err)
	}

	return x, nil
}

// Det returns the determinant of a square matrix. A matrix whose
// factorization hits a pivot ≤ Eps reports 0.
func Det(a Matrix) (float32, error) {
	f, err := LU(a)
	if errors.Is(err, ErrSingular) {
		return 0, nil
	}
	if err != nil {
		return 0, matrixErrorf(opDet, err)
	}

	return f.Det(), nil
}

// Inverse returns A⁻¹ by solving A·X = I through the LU factors.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch, ErrSingular.
func Inverse(a Matrix) (*Dense, error) {
	f, err := LU(a)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	id, err := NewIdentity(f.n)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	inv, err := f.Solve(id)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	return inv, nil
}
