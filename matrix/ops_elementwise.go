// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Element-wise comparison kernels: exact Equal, absolute-tolerance
//     EqualWithin, numpy-style AllClose and MaxAbsDiff.
//
// Policy:
//   - Equal is exact (==) and never conflated with tolerance comparison.
//     Integer-valued results (identity products, sums of small integers) are
//     exactly representable in float32 and compare with Equal; solver output
//     compares with EqualWithin(…, Eps) or AllClose.
//   - NaN never compares equal to anything; +Inf equals +Inf.
//   - Shape mismatch means "not equal", never an error, for the bool-only forms.

package matrix

import "math"

const (
	opAllClose   = "AllClose"
	opMaxAbsDiff = "MaxAbsDiff"
)

// zipAll walks a and b in row-major order and reports whether pred holds for
// every pair. Shapes must already match.
func zipAll(a, b Matrix, pred func(x, y float32) bool) (bool, error) {
	if da, okA := contiguous(a); okA {
		if db, okB := contiguous(b); okB {
			for idx := range da {
				if !pred(da[idx], db[idx]) {
					return false, nil
				}
			}

			return true, nil
		}
	}

	var av, bv float32
	var err error
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			if av, err = a.At(i, j); err != nil {
				return false, err
			}
			if bv, err = b.At(i, j); err != nil {
				return false, err
			}
			if !pred(av, bv) {
				return false, nil
			}
		}
	}

	return true, nil
}

// Equal reports whether a and b have the same shape and every pair of
// corresponding elements compares exactly equal. Nil operands are never equal.
// Time: O(r*c). Space: O(1).
func Equal(a, b Matrix) bool {
	if ValidateBinarySameShape(a, b) != nil {
		return false
	}
	ok, err := zipAll(a, b, func(x, y float32) bool { return x == y })

	return err == nil && ok
}

// EqualWithin reports whether a and b have the same shape and
// |a[i,j] - b[i,j]| ≤ tol for every element. A NaN/Inf tolerance or a NaN
// element makes the result false.
func EqualWithin(a, b Matrix, tol float32) bool {
	if ValidateTolerance(tol) != nil || ValidateBinarySameShape(a, b) != nil {
		return false
	}
	if tol < 0 {
		tol = -tol
	}
	ok, err := zipAll(a, b, func(x, y float32) bool {
		if x == y {
			return true // covers matching infinities
		}
		d := x - y
		if d < 0 {
			d = -d
		}

		return d <= tol
	})

	return err == nil && ok
}

// AllClose checks element-wise |a-b| ≤ atol + rtol*|b| for identical shapes.
// Returns (true,nil) if all elements satisfy the relation; (false,nil) otherwise.
//
// Policy:
//   - a and b must be non-nil and have identical shapes (else an error).
//   - rtol, atol are treated as |rtol|, |atol|; NaN/Inf tolerances are rejected.
func AllClose(a, b Matrix, rtol, atol float32) (bool, error) {
	if err := ValidateTolerance(rtol); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if err := ValidateTolerance(atol); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}
	if rtol < 0 {
		rtol = -rtol
	}
	if atol < 0 {
		atol = -atol
	}
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	ok, err := zipAll(a, b, func(x, y float32) bool {
		if x == y {
			return true
		}
		diff := x - y
		if diff < 0 {
			diff = -diff
		}
		absb := y
		if absb < 0 {
			absb = -absb
		}

		return diff <= atol+rtol*absb
	})
	if err != nil {
		return false, matrixErrorf(opAllClose, err)
	}

	return ok, nil
}

// MaxAbsDiff returns max |a[i,j] - b[i,j]|. NaN in either operand yields NaN.
func MaxAbsDiff(a, b Matrix) (float32, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return 0, matrixErrorf(opMaxAbsDiff, err)
	}

	var worst float32
	_, err := zipAll(a, b, func(x, y float32) bool {
		d := float32(math.Abs(float64(x - y)))
		if d != d { // NaN
			worst = d

			return false
		}
		if d > worst {
			worst = d
		}

		return true
	})
	if err != nil {
		return 0, matrixErrorf(opMaxAbsDiff, err)
	}

	return worst, nil
}
