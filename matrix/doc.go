// SPDX-License-Identifier: MIT

// Package matrix provides a dense, row-major float32 matrix with explicit,
// error-returning arithmetic and two independent direct linear solvers.
//
// The matrix package provides:
//
//   - Dense, an owning row-major matrix, and View, a borrowed span over
//     caller-managed storage (a raw []float32, a window into a Dense, or an
//     arena region). Both satisfy the Matrix interface.
//   - Named arithmetic in place of operators: Add, Sub, Mul, Scale, Divide,
//     AddScalar, SubScalar, Transpose and the *InPlace forms.
//   - Exact comparison (Equal) kept apart from tolerance comparison
//     (EqualWithin, AllClose).
//   - Solve: Gaussian elimination with partial pivoting.
//   - Roots: pivoted Doolittle LU with triangular substitution, used to
//     cross-check Solve. LU, Det and Inverse expose the same factorization.
//   - Render: diagnostic, row-by-row text output with functional options.
//
// Shape violations return ErrDimensionMismatch, bad indices ErrOutOfRange and
// pivots at or below Eps ErrSingular; match them with errors.Is. No function
// panics on caller input.
//
// Values are single-owner and not safe for concurrent mutation.
package matrix
