// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major float32) & safe accessors.
//
// Purpose:
//   - Own a contiguous row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep loop orders fixed so results are reproducible bit for bit.
//   - Offer no-copy strided windows (Window) that share the buffer.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); Window: O(1).

package matrix

import (
	"fmt"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt     = "At"     // method tag used in error wrappers
	ctxSet    = "Set"    // method tag used in error wrappers
	ctxWindow = "Window" // ctor tag for Dense.Window
	ctxFrom   = "NewDenseFrom"
)

// ---------- Formatting literals ----------

const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
// Stable, human-friendly messages; preserves the sentinel via %w.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is an owning row-major matrix of float32 values.
//   - r,c hold dimensions (rows, cols), both ≥ 1.
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
type Dense struct {
	r, c int       // row and column counts
	data []float32 // contiguous row-major storage (len == r*c)
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
	_ strided      = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate a zero-filled buffer.
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	// make() zero-fills deterministically.
	return &Dense{r: rows, c: cols, data: make([]float32, rows*cols)}, nil
}

// NewDenseFrom builds an owning rows×cols matrix from a row-major slice.
// The slice is copied; later writes to data do not affect the result.
//
// Errors:
//   - ErrInvalidDimensions for non-positive dims.
//   - ErrBufferLength when len(data) != rows*cols.
func NewDenseFrom(rows, cols int, data []float32) (*Dense, error) {
	m, err := NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%s(%d,%d): len=%d: %w", ctxFrom, rows, cols, len(data), ErrBufferLength)
	}
	copy(m.data, data)

	return m, nil
}

// Rows returns the row count. Complexity: O(1).
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count. Complexity: O(1).
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call for convenience.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// Data returns the backing row-major slice without copying.
// Writes through the returned slice mutate the matrix.
func (m *Dense) Data() []float32 { return m.data }

func (m *Dense) raw() ([]float32, int) { return m.data, m.c }

// indexOf computes the row-major offset or returns ErrOutOfRange.
// Public methods (At/Set) wrap the sentinel with coordinates.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
// Never panics on out-of-range; returns a wrapped sentinel.
// Complexity: O(1).
func (m *Dense) At(row, col int) (float32, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col) or returns ErrOutOfRange.
// Complexity: O(1).
func (m *Dense) Set(row, col int, v float32) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy with a freshly allocated buffer.
// Mutations of the clone never affect the original.
// Complexity: Time O(r*c), Space O(r*c).
func (m *Dense) Clone() Matrix {
	cp := make([]float32, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp}
}

// reshape replaces the shape and buffer in place. Used by MulInPlace when the
// product changes the destination's column count.
func (m *Dense) reshape(rows, cols int, data []float32) {
	m.r, m.c, m.data = rows, cols, data
}

// String renders the rows for diagnostics, one bracketed row per line.
// Not a parseable format; see Render for configurable output.
func (m *Dense) String() string {
	return formatRows(m.r, m.c, func(i, j int) float32 { return m.data[i*m.c+j] })
}

// formatRows is shared by Dense and View String methods.
func formatRows(rows, cols int, at func(i, j int) float32) string {
	var b strings.Builder
	var i, j int
	for i = 0; i < rows; i++ {
		b.WriteString(_fmtRowOpen)
		for j = 0; j < cols; j++ {
			fmt.Fprintf(&b, "%g", at(i, j))
			if j+1 < cols {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Window creates a no-copy rows×cols window starting at (r0, c0).
// MAIN DESCRIPTION:
//   - Lightweight submatrix referencing the Dense buffer (shared storage).
//
// Behavior highlights:
//   - Writes via the window reflect in m; the window never owns memory.
//   - The window is a *View with stride m.Cols(), so kernels keep their fast path.
//
// Errors:
//   - ErrInvalidDimensions when rows or cols ≤ 0.
//   - ErrOutOfRange when the window does not fit inside m.
//
// Complexity:
//   - Time O(1), Space O(1).
func (m *Dense) Window(r0, c0, rows, cols int) (*View, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("Dense.%s(%d,%d,%d,%d): %w", ctxWindow, r0, c0, rows, cols, ErrInvalidDimensions)
	}
	if r0 < 0 || c0 < 0 || r0+rows > m.r || c0+cols > m.c {
		return nil, fmt.Errorf("Dense.%s(%d,%d,%d,%d): %w", ctxWindow, r0, c0, rows, cols, ErrOutOfRange)
	}

	return &View{
		r:      rows,
		c:      cols,
		stride: m.c,
		data:   m.data[r0*m.c+c0 : (r0+rows-1)*m.c+c0+cols],
	}, nil
}

// Do visits each element (i,j) in row-major order and calls f(i,j,v).
// Stops early when f returns false. No allocations.
func (m *Dense) Do(f func(i, j int, v float32) bool) {
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// Apply replaces each element with f(i,j,v) in place, in row-major order.
// Keep transforms pure; the callback must not capture the matrix itself.
func (m *Dense) Apply(f func(i, j int, v float32) float32) {
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			m.data[base+j] = f(i, j, m.data[base+j])
		}
	}
}
