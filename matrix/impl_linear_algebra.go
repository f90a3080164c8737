// SPDX-License-Identifier: MIT
// Package matrix provides universal arithmetic on any Matrix implementation:
// element-wise addition and subtraction, matrix multiplication, transpose,
// scalar scaling/offset and their in-place forms. All functions validate
// fail-fast and return clear errors on dimension mismatches; nothing is
// written before validation succeeds.
//
// Notes:
//   - Pure functions always return a freshly allocated *Dense; operands are never mutated.
//   - *InPlace functions mutate their first argument only.
//   - Strided storage (*Dense, *View) takes a flat fast path; any other Matrix
//     implementation goes through At/Set with a fixed i→j order.

package matrix

import (
	"fmt"
	"unsafe"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// ZeroSum is the initial value for accumulations.
const ZeroSum = 0.0

// Operation name constants for unified error wrapping.
const (
	opAdd        = "Add"
	opSub        = "Sub"
	opMul        = "Mul"
	opTranspose  = "Transpose"
	opScale      = "Scale"
	opDivide     = "Divide"
	opAddScalar  = "AddScalar"
	opSubScalar  = "SubScalar"
	opHadamard   = "Hadamard"
	opAddInPlace = "AddInPlace"
	opSubInPlace = "SubInPlace"
	opMulInPlace = "MulInPlace"
	opScaleIP    = "ScaleInPlace"
	opOffsetIP   = "AddScalarInPlace"
)

// matrixErrorf wraps err with an operation tag, preserving the original error via %w.
// Use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// zipInto computes out[i,j] = f(a[i,j], b[i,j]). Shapes are validated by the caller.
func zipInto(out *Dense, a, b Matrix, f func(x, y float32) float32, opTag string) error {
	rows, cols := out.r, out.c

	// Fast path: both packed → single flat loop.
	if da, okA := contiguous(a); okA {
		if db, okB := contiguous(b); okB {
			for idx := range out.data {
				out.data[idx] = f(da[idx], db[idx])
			}

			return nil
		}
	}

	// Fallback: interface path with fixed i→j order.
	var (
		i, j   int
		av, bv float32
		err    error
	)
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if av, err = a.At(i, j); err != nil {
				return matrixErrorf(opTag, err)
			}
			if bv, err = b.At(i, j); err != nil {
				return matrixErrorf(opTag, err)
			}
			out.data[i*cols+j] = f(av, bv)
		}
	}

	return nil
}

// mapInto computes out[i,j] = f(m[i,j]).
func mapInto(out *Dense, m Matrix, f func(x float32) float32, opTag string) error {
	if dm, ok := contiguous(m); ok {
		for idx := range out.data {
			out.data[idx] = f(dm[idx])
		}

		return nil
	}

	var v float32
	var err error
	for i := 0; i < out.r; i++ {
		for j := 0; j < out.c; j++ {
			if v, err = m.At(i, j); err != nil {
				return matrixErrorf(opTag, err)
			}
			out.data[i*out.c+j] = f(v)
		}
	}

	return nil
}

func add(x, y float32) float32 { return x + y }
func sub(x, y float32) float32 { return x - y }
func mul(x, y float32) float32 { return x * y }

// binary validates same-shape operands, allocates the result and fills it.
func binary(a, b Matrix, f func(x, y float32) float32, opTag string) (*Dense, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	res, err := NewDense(a.Rows(), a.Cols())
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	if err = zipInto(res, a, b, f, opTag); err != nil {
		return nil, err
	}

	return res, nil
}

// unary validates m, allocates a same-shape result and fills it with f(m).
func unary(m Matrix, f func(x float32) float32, opTag string) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	res, err := NewDense(m.Rows(), m.Cols())
	if err != nil {
		return nil, matrixErrorf(opTag, err)
	}
	if err = mapInto(res, m, f, opTag); err != nil {
		return nil, err
	}

	return res, nil
}

// Add computes the element-wise sum C = A + B into a fresh Dense.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Add(a, b Matrix) (*Dense, error) { return binary(a, b, add, opAdd) }

// Sub computes the element-wise difference C = A - B into a fresh Dense.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (shape mismatch).
func Sub(a, b Matrix) (*Dense, error) { return binary(a, b, sub, opSub) }

// Hadamard computes the element-wise product C = A ⊙ B.
func Hadamard(a, b Matrix) (*Dense, error) { return binary(a, b, mul, opHadamard) }

// Mul performs standard matrix multiplication C = A × B.
//
// Implementation:
//   - Stage 1: validate A,B (not nil) and inner dimensions (A.Cols == B.Rows).
//   - Stage 2: strided operands go through blas32.Gemm with their own strides
//     (windows included); anything else uses a fixed i→j→k loop.
//
// Behavior highlights:
//   - The result is always a fresh buffer, so A and B may share storage.
//   - On a shape conflict nothing is allocated or computed.
//
// Errors:
//   - ErrNilMatrix (nil input), ErrDimensionMismatch (inner mismatch).
//
// Complexity:
//   - Time O(r*n*c), Space O(r*c).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	res, err := NewDense(a.Rows(), b.Cols())
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	if err = mulInto(res, a, b); err != nil {
		return nil, err
	}

	return res, nil
}

// general describes strided storage as a blas32.General.
func general(m Matrix) (blas32.General, bool) {
	data, stride, ok := rawStrided(m)
	if !ok {
		return blas32.General{}, false
	}

	return blas32.General{Rows: m.Rows(), Cols: m.Cols(), Stride: stride, Data: data}, true
}

// mulInto writes a×b into out, which must be freshly allocated and zeroed
// with shape a.Rows()×b.Cols() and must not share storage with a or b.
func mulInto(out *Dense, a, b Matrix) error {
	if ga, okA := general(a); okA {
		if gb, okB := general(b); okB {
			gc := blas32.General{Rows: out.r, Cols: out.c, Stride: out.c, Data: out.data}
			blas32.Gemm(blas.NoTrans, blas.NoTrans, 1, ga, gb, 0, gc)

			return nil
		}
	}

	// Fallback: generic interface triple loop (i-j-k).
	var (
		i, j, k int
		av, bv  float32
		current float32
		err     error
	)
	inner := a.Cols()
	for i = 0; i < out.r; i++ {
		for j = 0; j < out.c; j++ {
			current = ZeroSum
			for k = 0; k < inner; k++ {
				if av, err = a.At(i, k); err != nil {
					return matrixErrorf(opMul, err)
				}
				if av == 0 {
					continue
				}
				if bv, err = b.At(k, j); err != nil {
					return matrixErrorf(opMul, err)
				}
				current += av * bv
			}
			out.data[i*out.c+j] = current
		}
	}

	return nil
}

// Transpose returns a new cols×rows matrix with out(j,i) = m(i,j).
// The input is never mutated.
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	rows, cols := m.Rows(), m.Cols()
	res, err := NewDense(cols, rows)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}

	var i, j int
	if data, stride, ok := rawStrided(m); ok {
		var baseSrc int
		for i = 0; i < rows; i++ {
			baseSrc = i * stride
			for j = 0; j < cols; j++ {
				res.data[j*rows+i] = data[baseSrc+j]
			}
		}

		return res, nil
	}

	var v float32
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, matrixErrorf(opTranspose, err)
			}
			res.data[j*rows+i] = v
		}
	}

	return res, nil
}

// Scale returns a new matrix whose elements are alpha * m[i,j].
// The reflected form alpha*m is the same call.
// Every element is multiplied, so 0*Inf and 0*NaN yield NaN for alpha == 0.
//
// Errors:
//   - ErrNilMatrix.
func Scale(m Matrix, alpha float32) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	// blas32.Scal zero-fills for alpha == 0 instead of multiplying.
	if alpha == 0 {
		return unary(m, func(x float32) float32 { return x * alpha }, opScale)
	}
	res, err := copyDense(m, opScale)
	if err != nil {
		return nil, err
	}
	blas32.Scal(alpha, blas32.Vector{N: len(res.data), Inc: 1, Data: res.data})

	return res, nil
}

// Divide returns a new matrix whose elements are m[i,j] / alpha.
// A zero divisor is not checked; the IEEE-754 result (±Inf or NaN) is stored.
func Divide(m Matrix, alpha float32) (*Dense, error) {
	return unary(m, func(x float32) float32 { return x / alpha }, opDivide)
}

// AddScalar returns a new matrix with alpha added to every element.
func AddScalar(m Matrix, alpha float32) (*Dense, error) {
	return unary(m, func(x float32) float32 { return x + alpha }, opAddScalar)
}

// SubScalar returns a new matrix with alpha subtracted from every element.
func SubScalar(m Matrix, alpha float32) (*Dense, error) {
	return unary(m, func(x float32) float32 { return x - alpha }, opSubScalar)
}

// copyDense materializes any Matrix into a new owning Dense.
func copyDense(m Matrix, opTag string) (*Dense, error) {
	switch v := m.(type) {
	case *Dense:
		return v.Clone().(*Dense), nil
	case *View:
		return v.Dense(), nil
	}

	return unary(m, func(x float32) float32 { return x }, opTag)
}

// ---------- In-place kernels ----------

// overlaps reports whether two slices share any backing memory.
func overlaps(x, y []float32) bool {
	if len(x) == 0 || len(y) == 0 {
		return false
	}
	const size = unsafe.Sizeof(float32(0))
	xs := uintptr(unsafe.Pointer(&x[0]))
	ys := uintptr(unsafe.Pointer(&y[0]))
	xe := xs + uintptr(len(x))*size
	ye := ys + uintptr(len(y))*size

	return xs < ye && ys < xe
}

// sameLayout reports whether x and y address identical elements in identical order.
func sameLayout(x []float32, xs int, y []float32, ys int) bool {
	return len(x) > 0 && len(y) > 0 && &x[0] == &y[0] && xs == ys
}

// rowVector returns row i of strided storage as a blas32.Vector.
func rowVector(data []float32, stride, i, cols int) blas32.Vector {
	return blas32.Vector{N: cols, Inc: 1, Data: data[i*stride : i*stride+cols]}
}

// axpyInPlace performs dst += alpha*b for same-shape operands.
// A b that overlaps dst with a different layout is snapshotted first.
func axpyInPlace(dst, b Matrix, alpha float32, opTag string) error {
	if err := ValidateBinarySameShape(dst, b); err != nil {
		return matrixErrorf(opTag, err)
	}
	rows, cols := dst.Rows(), dst.Cols()

	dd, ds, okD := rawStrided(dst)
	bd, bs, okB := rawStrided(b)
	if okD && okB {
		if overlaps(dd, bd) && !sameLayout(dd, ds, bd, bs) {
			snap := b.Clone().(*Dense)
			bd, bs = snap.data, snap.c
		}
		for i := 0; i < rows; i++ {
			blas32.Axpy(alpha, rowVector(bd, bs, i, cols), rowVector(dd, ds, i, cols))
		}

		return nil
	}

	// Generic path: snapshot b so that reads never observe our own writes.
	snap, err := copyDense(b, opTag)
	if err != nil {
		return err
	}
	var v float32
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = dst.At(i, j); err != nil {
				return matrixErrorf(opTag, err)
			}
			if err = dst.Set(i, j, v+alpha*snap.data[i*cols+j]); err != nil {
				return matrixErrorf(opTag, err)
			}
		}
	}

	return nil
}

// AddInPlace performs dst += b. Shapes must match.
// If dst is a *View, the caller's buffer is updated.
func AddInPlace(dst, b Matrix) error { return axpyInPlace(dst, b, 1, opAddInPlace) }

// SubInPlace performs dst -= b. Shapes must match.
func SubInPlace(dst, b Matrix) error { return axpyInPlace(dst, b, -1, opSubInPlace) }

// mapInPlace replaces dst[i,j] with f(dst[i,j]).
func mapInPlace(dst Matrix, f func(x float32) float32, opTag string) error {
	if err := ValidateNotNil(dst); err != nil {
		return matrixErrorf(opTag, err)
	}
	rows, cols := dst.Rows(), dst.Cols()
	if data, stride, ok := rawStrided(dst); ok {
		var base int
		for i := 0; i < rows; i++ {
			base = i * stride
			for j := 0; j < cols; j++ {
				data[base+j] = f(data[base+j])
			}
		}

		return nil
	}

	var v float32
	var err error
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if v, err = dst.At(i, j); err != nil {
				return matrixErrorf(opTag, err)
			}
			if err = dst.Set(i, j, f(v)); err != nil {
				return matrixErrorf(opTag, err)
			}
		}
	}

	return nil
}

// ScaleInPlace performs dst *= alpha element-wise, with the same alpha == 0
// semantics as Scale.
func ScaleInPlace(dst Matrix, alpha float32) error {
	if err := ValidateNotNil(dst); err != nil {
		return matrixErrorf(opScaleIP, err)
	}
	if data, stride, ok := rawStrided(dst); ok && alpha != 0 {
		for i := 0; i < dst.Rows(); i++ {
			blas32.Scal(alpha, rowVector(data, stride, i, dst.Cols()))
		}

		return nil
	}

	return mapInPlace(dst, func(x float32) float32 { return x * alpha }, opScaleIP)
}

// AddScalarInPlace performs dst[i,j] += alpha for every element.
func AddScalarInPlace(dst Matrix, alpha float32) error {
	return mapInPlace(dst, func(x float32) float32 { return x + alpha }, opOffsetIP)
}

// MulInPlace replaces dst with dst × b.
//
// Behavior highlights:
//   - A *Dense destination adopts the product shape dst.Rows()×b.Cols()
//     (its buffer is replaced when the shape changes).
//   - Any other destination has fixed storage; the product shape must equal
//     dst's shape (b square), otherwise ErrDimensionMismatch and dst is untouched.
//   - The product is computed into scratch first, so b may alias dst
//     (MulInPlace(a, a) squares a).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
func MulInPlace(dst, b Matrix) error {
	if err := ValidateMulCompatible(dst, b); err != nil {
		return matrixErrorf(opMulInPlace, err)
	}
	d, resizable := dst.(*Dense)
	if !resizable && b.Cols() != dst.Cols() {
		return matrixErrorf(opMulInPlace, fmt.Errorf("fixed destination %dx%d, product %dx%d: %w",
			dst.Rows(), dst.Cols(), dst.Rows(), b.Cols(), ErrDimensionMismatch))
	}

	prod, err := NewDense(dst.Rows(), b.Cols())
	if err != nil {
		return matrixErrorf(opMulInPlace, err)
	}
	if err = mulInto(prod, dst, b); err != nil {
		return err
	}

	if resizable {
		if d.c == prod.c {
			copy(d.data, prod.data)
		} else {
			d.reshape(prod.r, prod.c, prod.data)
		}

		return nil
	}

	return assign(dst, prod, opMulInPlace)
}

// assign copies src into dst element-wise; shapes are validated by the caller.
func assign(dst Matrix, src *Dense, opTag string) error {
	if data, stride, ok := rawStrided(dst); ok {
		for i := 0; i < src.r; i++ {
			copy(data[i*stride:i*stride+src.c], src.data[i*src.c:(i+1)*src.c])
		}

		return nil
	}
	for i := 0; i < src.r; i++ {
		for j := 0; j < src.c; j++ {
			if err := dst.Set(i, j, src.data[i*src.c+j]); err != nil {
				return matrixErrorf(opTag, err)
			}
		}
	}

	return nil
}

// CopyInto copies src into dst element-wise (shapes must match). Useful to
// fill caller-owned storage wrapped by a View from a computed result.
func CopyInto(dst, src Matrix) error {
	if err := ValidateBinarySameShape(dst, src); err != nil {
		return matrixErrorf("CopyInto", err)
	}
	snap, err := copyDense(src, "CopyInto")
	if err != nil {
		return err
	}

	return assign(dst, snap, "CopyInto")
}
