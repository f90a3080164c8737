// SPDX-License-Identifier: MIT
// Package matrix - public API facades.
//
// Purpose:
//   - Provide thin, intention-revealing entry points for common tasks.
//   - Avoid logic duplication: each facade delegates to the canonical kernel.
//
// Policy:
//   - Facades never change loop orders or numeric policy of the kernels.
//   - Validation is performed in the kernels; facades only compose or forward.

package matrix

// ---------- Constructors & Utilities ----------

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
// It is a thin alias of NewDense with an intention-revealing name.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n (n×n identity; ones on the diagonal, zeros elsewhere).
// Complexity: O(n^2) zeroing (constructor) + O(n) writes on the diagonal.
func NewIdentity(n int) (*Dense, error) {
	I, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		I.data[i*n+i] = 1
	}

	return I, nil
}

// CloneMatrix returns an owning deep copy of m as a *Dense, whatever the
// concrete type of m (views are materialized).
func CloneMatrix(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("CloneMatrix", err)
	}

	return copyDense(m, "CloneMatrix")
}

// ZerosLike returns a new zero matrix with the same shape as m.
func ZerosLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ZerosLike", err)
	}

	return NewDense(m.Rows(), m.Cols())
}

// IdentityLike returns I with dimension = Rows(m); requires square shape.
func IdentityLike(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("IdentityLike", err)
	}
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf("IdentityLike", err)
	}

	return NewIdentity(m.Rows())
}

// ---------- Aliases ----------

// Sum is an alias for Add: element-wise a + b.
func Sum(a, b Matrix) (*Dense, error) { return Add(a, b) }

// Diff is an alias for Sub: element-wise a − b.
func Diff(a, b Matrix) (*Dense, error) { return Sub(a, b) }

// Product is an alias for Mul: matrix product a × b.
func Product(a, b Matrix) (*Dense, error) { return Mul(a, b) }

// T is an alias for Transpose: returns mᵀ.
func T(m Matrix) (*Dense, error) { return Transpose(m) }

// ScaleBy is an alias for Scale: alpha*m.
func ScaleBy(m Matrix, alpha float32) (*Dense, error) { return Scale(m, alpha) }

// InverseOf is an alias for Inverse.
func InverseOf(m Matrix) (*Dense, error) { return Inverse(m) }

// ---------- Compositions ----------

// Affine returns m*alpha + beta in one call (scale, then offset).
func Affine(m Matrix, alpha, beta float32) (*Dense, error) {
	scaled, err := Scale(m, alpha)
	if err != nil {
		return nil, matrixErrorf("Affine", err)
	}
	if err = AddScalarInPlace(scaled, beta); err != nil {
		return nil, matrixErrorf("Affine", err)
	}

	return scaled, nil
}

// Residual returns A·X − B, the quantity a solver drives to zero.
// Composition: Mul → Sub.
func Residual(a, x, b Matrix) (*Dense, error) {
	ax, err := Mul(a, x)
	if err != nil {
		return nil, matrixErrorf("Residual", err)
	}
	r, err := Sub(ax, b)
	if err != nil {
		return nil, matrixErrorf("Residual", err)
	}

	return r, nil
}

// CrossCheck solves A·X = B with both Solve and Roots and returns the
// elimination solution together with the largest absolute disagreement
// between the two. Any solver error is returned as-is.
func CrossCheck(a, b Matrix) (*Dense, float32, error) {
	x1, err := Solve(a, b)
	if err != nil {
		return nil, 0, err
	}
	x2, err := Roots(a, b)
	if err != nil {
		return nil, 0, err
	}
	d, err := MaxAbsDiff(x1, x2)
	if err != nil {
		return nil, 0, matrixErrorf("CrossCheck", err)
	}

	return x1, d, nil
}
