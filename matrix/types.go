// SPDX-License-Identifier: MIT

// Package matrix: the Matrix interface and the numeric tolerance shared by
// solvers and comparisons. Concrete storage lives in impl_dense.go (owning)
// and impl_view.go (borrowed).
package matrix

// Eps is the fixed tolerance used by the solvers to reject near-zero pivots
// and by the tolerance comparisons in tests and diagnostics.
const Eps float32 = 1e-6

// Matrix represents a two-dimensional mutable array of float32 values.
//
// Complexity notes: all methods are expected O(1) except Clone (O(r*c)).
type Matrix interface {
	// Rows returns the number of rows in the matrix.
	Rows() int

	// Cols returns the number of columns in the matrix.
	Cols() int

	// At retrieves the element at position (i, j).
	// Returns ErrOutOfRange if i<0, i>=Rows(), j<0 or j>=Cols().
	At(i, j int) (float32, error)

	// Set assigns the value v at position (i, j).
	// Returns ErrOutOfRange if indices are invalid.
	Set(i, j int, v float32) error

	// Clone returns an independently owned deep copy of the matrix.
	Clone() Matrix
}

// strided is implemented by storage types whose elements live in a single
// row-major slice with a fixed row stride. Kernels use it to skip the
// interface path. Unexported so callers cannot fake a fast path.
type strided interface {
	raw() (data []float32, stride int)
}

// contiguous reports the flat backing slice of m when m is a strided type
// whose rows are packed back to back (stride == cols).
func contiguous(m Matrix) ([]float32, bool) {
	s, ok := m.(strided)
	if !ok {
		return nil, false
	}
	data, stride := s.raw()
	if stride != m.Cols() {
		return nil, false
	}

	return data[:m.Rows()*m.Cols()], true
}

// rawStrided exposes data and stride for any strided type.
func rawStrided(m Matrix) ([]float32, int, bool) {
	s, ok := m.(strided)
	if !ok {
		return nil, 0, false
	}
	data, stride := s.raw()

	return data, stride, true
}
