// SPDX-License-Identifier: MIT

// Package matrix - View: a borrowed span over caller-managed float32 storage.
//
// Ownership contract:
//   - A View never allocates or frees element storage; it reads and writes the
//     slice it was built over. The caller keeps that memory alive (and does not
//     reuse it for something else) for as long as the View is in use.
//   - Clone materializes an owning *Dense; every arithmetic result is owning too.
//   - There is no internal locking; one goroutine per view at a time.

package matrix

import "fmt"

const ctxNewView = "NewView"

// View is a non-owning rows×cols matrix over a caller-supplied buffer.
// Element (i, j) lives at data[i*stride + j].
type View struct {
	r, c   int
	stride int       // ≥ c; equals c for views built by NewView
	data   []float32 // borrowed; len ≥ (r-1)*stride + c
}

var (
	_ Matrix       = (*View)(nil)
	_ fmt.Stringer = (*View)(nil)
	_ strided      = (*View)(nil)
)

// NewView wraps buf as a rows×cols row-major matrix without copying.
// Writes through the view mutate buf.
//
// Errors:
//   - ErrInvalidDimensions for rows ≤ 0 or cols ≤ 0.
//   - ErrBufferLength when len(buf) != rows*cols.
func NewView(buf []float32, rows, cols int) (*View, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%s(%d,%d): %w", ctxNewView, rows, cols, ErrInvalidDimensions)
	}
	if len(buf) != rows*cols {
		return nil, fmt.Errorf("%s(%d,%d): len=%d: %w", ctxNewView, rows, cols, len(buf), ErrBufferLength)
	}

	return &View{r: rows, c: cols, stride: cols, data: buf}, nil
}

// Rows returns the number of rows in the view.
func (v *View) Rows() int { return v.r }

// Cols returns the number of columns in the view.
func (v *View) Cols() int { return v.c }

// Stride returns the distance, in elements, between the starts of two rows.
func (v *View) Stride() int { return v.stride }

func (v *View) raw() ([]float32, int) { return v.data, v.stride }

// At reads element (i,j) or returns ErrOutOfRange.
func (v *View) At(i, j int) (float32, error) {
	if i < 0 || i >= v.r || j < 0 || j >= v.c {
		return 0, fmt.Errorf("View.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return v.data[i*v.stride+j], nil
}

// Set writes element (i,j) through to the borrowed storage.
func (v *View) Set(i, j int, val float32) error {
	if i < 0 || i >= v.r || j < 0 || j >= v.c {
		return fmt.Errorf("View.Set(%d,%d): %w", i, j, ErrOutOfRange)
	}
	v.data[i*v.stride+j] = val

	return nil
}

// Clone copies the viewed elements into a new owning *Dense.
func (v *View) Clone() Matrix {
	return v.Dense()
}

// Dense is Clone with a concrete return type.
func (v *View) Dense() *Dense {
	out := &Dense{r: v.r, c: v.c, data: make([]float32, v.r*v.c)}
	for i := 0; i < v.r; i++ {
		copy(out.data[i*v.c:(i+1)*v.c], v.data[i*v.stride:i*v.stride+v.c])
	}

	return out
}

// String renders the viewed rows in the same layout as Dense.String.
func (v *View) String() string {
	return formatRows(v.r, v.c, func(i, j int) float32 { return v.data[i*v.stride+j] })
}
