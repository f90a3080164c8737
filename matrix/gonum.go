// SPDX-License-Identifier: MIT

// Package matrix - interop with gonum's float64 matrices.
//
// Conversions always copy: gonum stores float64, this package float32, so no
// storage can be shared. Narrowing to float32 rounds to nearest.
package matrix

import (
	"gonum.org/v1/gonum/mat"
)

const (
	opAsGonum   = "AsGonum"
	opFromGonum = "FromGonum"
)

// AsGonum widens m into a new *mat.Dense.
//
// Errors:
//   - ErrNilMatrix; any error returned by m.At for foreign implementations.
func AsGonum(m Matrix) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opAsGonum, err)
	}
	rows, cols := m.Rows(), m.Cols()
	data := make([]float64, rows*cols)
	if err := widen(data, cols, 0, m); err != nil {
		return nil, matrixErrorf(opAsGonum, err)
	}

	return mat.NewDense(rows, cols, data), nil
}

// FromGonum narrows any gonum matrix into a new owning *Dense.
//
// Errors:
//   - ErrNilMatrix for a nil argument (including a typed nil *mat.Dense).
//   - ErrInvalidDimensions for an empty gonum matrix.
func FromGonum(g mat.Matrix) (*Dense, error) {
	switch v := g.(type) {
	case nil:
		return nil, matrixErrorf(opFromGonum, ErrNilMatrix)
	case *mat.Dense:
		if v == nil {
			return nil, matrixErrorf(opFromGonum, ErrNilMatrix)
		}
	}
	// A zero-value mat.Dense reports 0×0; NewDense rejects it.
	rows, cols := g.Dims()
	out, err := NewDense(rows, cols)
	if err != nil {
		return nil, matrixErrorf(opFromGonum, err)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out.data[i*cols+j] = float32(g.At(i, j))
		}
	}

	return out, nil
}
