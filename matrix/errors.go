// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set (unified, consistent).
// This file defines ONLY package-level sentinel errors used across the matrix
// package. All kernels MUST return these sentinels and tests MUST check them
// via errors.Is. No kernel panics on caller-triggered error conditions.

package matrix

import "errors"

// NOTE ON NAMING & PREFIXING
// --------------------------
// Every message is prefixed with "matrix: ..." for consistency and to allow
// easy grepping across logs. Call sites add context with
// fmt.Errorf("Op: %w", ErrX) (see matrixErrorf/denseErrorf); callers match
// with errors.Is.
//
// ERROR PRIORITY (enforced in tests):
// nil operand -> invalid shape -> dimension mismatch -> singular system.

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrBufferLength indicates that a caller-supplied buffer does not hold
	// exactly rows*cols elements (or is too short for a strided window).
	ErrBufferLength = errors.New("matrix: buffer length does not match shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g., Add/Sub of different shapes, Mul where a.Cols != b.Rows, or a
	// non-square coefficient matrix handed to a solver.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrSingular is returned when no pivot with magnitude above Eps exists
	// during elimination or factorization.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrNaNInf signals a NaN or ±Inf value where finite input is required
	// (tolerances passed to AllClose/EqualWithin).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")
)
