// SPDX-License-Identifier: MIT

// Package matrix - primary linear solver: Gaussian elimination with partial
// pivoting on an augmented working copy [A | B].
//
// Numeric policy:
//   - Elements are float32 at rest; the working copy accumulates in float64 and
//     the solution is rounded back to float32 once, at the end.
//   - A pivot column whose largest remaining magnitude is ≤ Eps makes the
//     system singular (ErrSingular); nothing is returned in that case.
//   - Row selection is deterministic: the first row holding the maximum
//     magnitude wins ties.

package matrix

import (
	"fmt"
	"math"
)

const opSolve = "Solve"

// Solve returns X such that A·X ≈ B.
//
// Implementation:
//   - Stage 1: validate A square (n×n) and B with n rows (n×k).
//   - Stage 2: copy [A | B] into an n×(n+k) float64 scratch buffer.
//   - Stage 3: forward elimination column by column, swapping in the row with
//     the largest magnitude entry of the column (partial pivoting).
//   - Stage 4: back substitution from the last row upward for each of the k columns.
//
// Behavior highlights:
//   - A and B are read once and never mutated; they may share storage.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square A or B.Rows() != n),
//     ErrNaNInf (non-finite entry in A or B), ErrSingular (best pivot ≤ Eps).
//
// Complexity:
//   - Time O(n^2·(n+k)), Space O(n·(n+k)).
func Solve(a, b Matrix) (*Dense, error) {
	if err := ValidateLinearSystem(a, b); err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	n, k := a.Rows(), b.Cols()
	w := n + k

	aug, err := augment(a, b)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}

	var (
		col, r, c, p int
		best, v, f   float64
		pivotRow     []float64
		row          []float64
	)
	tol := float64(Eps)
	for col = 0; col < n; col++ {
		// Partial pivoting: largest |aug[r,col]| among r ≥ col.
		p, best = col, 0
		for r = col; r < n; r++ {
			if v = math.Abs(aug[r*w+col]); v > best {
				p, best = r, v
			}
		}
		if !(best > tol) {
			return nil, matrixErrorf(opSolve, fmt.Errorf("pivot column %d: |pivot|=%g: %w", col, best, ErrSingular))
		}
		if p != col {
			swapRows(aug, w, p, col)
		}

		pivotRow = aug[col*w : (col+1)*w]
		for r = col + 1; r < n; r++ {
			row = aug[r*w : (r+1)*w]
			f = row[col] / pivotRow[col]
			if f == 0 {
				continue
			}
			row[col] = 0
			for c = col + 1; c < w; c++ {
				row[c] -= f * pivotRow[c]
			}
		}
	}

	x, err := NewDense(n, k)
	if err != nil {
		return nil, matrixErrorf(opSolve, err)
	}
	sol := make([]float64, n)
	var i, j, rhs int
	var sum float64
	for rhs = 0; rhs < k; rhs++ {
		for i = n - 1; i >= 0; i-- {
			sum = aug[i*w+n+rhs]
			for j = i + 1; j < n; j++ {
				sum -= aug[i*w+j] * sol[j]
			}
			sol[i] = sum / aug[i*w+i]
		}
		for i = 0; i < n; i++ {
			x.data[i*k+rhs] = float32(sol[i])
		}
	}

	return x, nil
}

// augment copies [a | b] into a fresh row-major float64 buffer of width
// a.Cols()+b.Cols().
func augment(a, b Matrix) ([]float64, error) {
	n, k := a.Rows(), b.Cols()
	w := n + k
	aug := make([]float64, n*w)
	if err := widen(aug, w, 0, a); err != nil {
		return nil, err
	}
	if err := widen(aug, w, n, b); err != nil {
		return nil, err
	}
	if err := requireFinite(aug); err != nil {
		return nil, err
	}

	return aug, nil
}

// widen writes m into dst (row width w) starting at column off, converting to float64.
func widen(dst []float64, w, off int, m Matrix) error {
	rows, cols := m.Rows(), m.Cols()
	if data, stride, ok := rawStrided(m); ok {
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				dst[i*w+off+j] = float64(data[i*stride+j])
			}
		}

		return nil
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			v, err := m.At(i, j)
			if err != nil {
				return err
			}
			dst[i*w+off+j] = float64(v)
		}
	}

	return nil
}

// requireFinite rejects a working buffer holding NaN or ±Inf, which no pivot
// test can reliably catch.
func requireFinite(buf []float64) error {
	for idx, v := range buf {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("element %d: %g: %w", idx, v, ErrNaNInf)
		}
	}

	return nil
}

// swapRows exchanges rows p and q of a row-major buffer with row width w.
func swapRows(buf []float64, w, p, q int) {
	rp := buf[p*w : (p+1)*w]
	rq := buf[q*w : (q+1)*w]
	for c := range rp {
		rp[c], rq[c] = rq[c], rp[c]
	}
}
