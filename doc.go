// SPDX-License-Identifier: MIT

// Package dspm is a small numeric toolkit for dense float32 matrices, built
// for places where memory is laid out by hand and every result is checked.
//
// 🚀 What is in dspm?
//
//	• Dense, row-major float32 matrices with error-returning accessors
//	• Borrowed views over caller storage (raw slices, windows, arena regions)
//	• Named arithmetic: Add, Sub, Mul, Scale, Transpose and in-place forms
//	• Two direct solvers, Solve (elimination) and Roots (LU), that cross-check each other
//	• An mmap-backed arena that hands out matrix views without touching the heap
//	• matcheck, a command that runs the solver cross-checks and logs the outcome
//
// Under the hood the code is split into:
//
//	matrix/        - Matrix, Dense, View, kernels, solvers, rendering, gonum interop
//	arena/         - fixed-capacity float32 storage over an anonymous mapping
//	cmd/matcheck/  - diagnostic CLI (cobra flags, zerolog output)
//
// Quick example:
//
//	a, _ := matrix.NewDenseFrom(3, 3, []float32{3, 2, 1, 2, 3, 1, 2, 1, 3})
//	b, _ := matrix.NewDenseFrom(3, 1, []float32{5, -1, 4})
//	x, diff, err := matrix.CrossCheck(a, b) // diff ≤ matrix.Eps
//
//	go get github.com/katalvlaran/dspm/matrix
package dspm
