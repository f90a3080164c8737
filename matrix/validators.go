// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating nil/shape checks here.
//  - Return sentinel errors tagged with the validator name so call sites can
//    wrap uniformly with the operation tag.
//
// Note:
//  - Composite validators follow a fixed sequence (NotNil → Shape).
//  - All checks are O(1) and allocate nothing.

package matrix

import (
	"fmt"
	"math"
)

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil, including typed nil
// pointers of the package's own storage types.
// Complexity: O(1).
func ValidateNotNil(m Matrix) error {
	switch v := m.(type) {
	case nil:
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	case *Dense:
		if v == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	case *View:
		if v == nil {
			return validatorErrorf("ValidateNotNil", ErrNilMatrix)
		}
	}

	return nil
}

// ValidateSameShape checks Rows/Cols equality of two non-nil matrices.
// Assumes both are non-nil.
func ValidateSameShape(a, b Matrix) error {
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateSameShape: Rows", ErrDimensionMismatch)
	}
	if a.Cols() != b.Cols() {
		return validatorErrorf("ValidateSameShape: Columns", ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is square (Rows == Cols). Assumes non-nil.
func ValidateSquare(m Matrix) error {
	if m.Rows() != m.Cols() {
		return validatorErrorf("ValidateSquare", ErrDimensionMismatch)
	}

	return nil
}

// ValidateBinarySameShape – Composite: NotNil(a) → NotNil(b) → SameShape.
func ValidateBinarySameShape(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}
	if err := ValidateSameShape(a, b); err != nil {
		return validatorErrorf("ValidateBinarySameShape", err)
	}

	return nil
}

// ValidateMulCompatible – Composite: NotNil(a) → NotNil(b) → a.Cols == b.Rows.
func ValidateMulCompatible(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateMulCompatible", err)
	}
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateMulCompatible", ErrDimensionMismatch)
	}

	return nil
}

// ValidateLinearSystem – Composite for A·x = b:
// NotNil(a) → NotNil(b) → Square(a) → a.Rows == b.Rows.
func ValidateLinearSystem(a, b Matrix) error {
	if err := ValidateNotNil(a); err != nil {
		return validatorErrorf("ValidateLinearSystem", err)
	}
	if err := ValidateNotNil(b); err != nil {
		return validatorErrorf("ValidateLinearSystem", err)
	}
	if err := ValidateSquare(a); err != nil {
		return validatorErrorf("ValidateLinearSystem", err)
	}
	if a.Rows() != b.Rows() {
		return validatorErrorf("ValidateLinearSystem: rhs Rows", ErrDimensionMismatch)
	}

	return nil
}

// ValidateTolerance rejects NaN/±Inf tolerances.
func ValidateTolerance(tol float32) error {
	t := float64(tol)
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return validatorErrorf("ValidateTolerance", ErrNaNInf)
	}

	return nil
}
