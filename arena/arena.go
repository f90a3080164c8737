// SPDX-License-Identifier: MIT

// Package arena hands out float32 matrix storage from one fixed-size region,
// the way firmware carves matrices out of a static buffer instead of the heap.
//
// The region is an anonymous memory mapping, so it lives outside the Go heap
// and is never moved or collected. Every allocation is a *matrix.View
// (borrowed storage): the arena owns the memory, the views only point into it.
//
// Lifetime contract:
//   - Views stay valid until Reset/Rewind reclaims them or Close unmaps the region.
//   - Using a view after Close is a use-after-free; the arena cannot detect it.
//   - An Arena is single-owner and not safe for concurrent use.
package arena

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/edsrzf/mmap-go"

	"github.com/katalvlaran/dspm/matrix"
)

var (
	// ErrInvalidCapacity is returned by New for a non-positive element capacity.
	ErrInvalidCapacity = errors.New("arena: capacity must be > 0")

	// ErrExhausted is returned when an allocation does not fit in the free space.
	ErrExhausted = errors.New("arena: not enough free elements")

	// ErrClosed is returned by any allocation after Close.
	ErrClosed = errors.New("arena: closed")

	// ErrBadMark is returned by Rewind for a mark that was not produced by Mark
	// or lies beyond the current allocation offset.
	ErrBadMark = errors.New("arena: invalid mark")
)

const elemSize = int(unsafe.Sizeof(float32(0)))

// Arena is a bump allocator of float32 elements over an anonymous mapping.
type Arena struct {
	region mmap.MMap
	buf    []float32 // the region reinterpreted as float32; nil after Close
	off    int       // next free element
	locked bool
}

// New maps a region able to hold capacity float32 elements.
// The mapping starts zero-filled.
//
// Errors:
//   - ErrInvalidCapacity for capacity ≤ 0.
//   - mapping/locking failures from the operating system, wrapped.
func New(capacity int, opts ...Option) (*Arena, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	o := gatherOptions(opts...)

	size := capacity * elemSize
	region, err := mmap.MapRegion(nil, size, mmap.RDWR, mmap.ANON, 0)
	if err != nil {
		return nil, fmt.Errorf("arena: map %d bytes: %w", size, err)
	}

	a := &Arena{
		region: region,
		buf:    unsafe.Slice((*float32)(unsafe.Pointer(&region[0])), capacity),
	}
	if o.locked {
		if err = region.Lock(); err != nil {
			_ = region.Unmap()
			return nil, fmt.Errorf("arena: lock %d bytes: %w", size, err)
		}
		a.locked = true
	}

	return a, nil
}

// Cap returns the total number of float32 elements the arena can hold.
func (a *Arena) Cap() int { return len(a.buf) }

// Len returns the number of elements currently handed out.
func (a *Arena) Len() int { return a.off }

// Free returns the number of elements still available.
func (a *Arena) Free() int { return len(a.buf) - a.off }

// Locked reports whether the region is pinned in RAM.
func (a *Arena) Locked() bool { return a.locked }

// Alloc returns a zeroed rows×cols view carved from the free space.
//
// Errors:
//   - ErrClosed after Close.
//   - matrix.ErrInvalidDimensions for rows ≤ 0 or cols ≤ 0.
//   - ErrExhausted when rows*cols exceeds Free().
func (a *Arena) Alloc(rows, cols int) (*matrix.View, error) {
	if a.buf == nil {
		return nil, ErrClosed
	}
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("arena: Alloc(%d,%d): %w", rows, cols, matrix.ErrInvalidDimensions)
	}
	n := rows * cols
	if n > a.Free() {
		return nil, fmt.Errorf("arena: Alloc(%d,%d): need %d, free %d: %w", rows, cols, n, a.Free(), ErrExhausted)
	}

	// Cap the slice so nothing written through it can reach the next allocation.
	span := a.buf[a.off : a.off+n : a.off+n]
	v, err := matrix.NewView(span, rows, cols)
	if err != nil {
		return nil, fmt.Errorf("arena: Alloc(%d,%d): %w", rows, cols, err)
	}
	a.off += n

	return v, nil
}

// Copy allocates a view shaped like m and fills it with m's elements.
func (a *Arena) Copy(m matrix.Matrix) (*matrix.View, error) {
	if err := matrix.ValidateNotNil(m); err != nil {
		return nil, fmt.Errorf("arena: Copy: %w", err)
	}
	mark := a.off
	v, err := a.Alloc(m.Rows(), m.Cols())
	if err != nil {
		return nil, err
	}
	if err = matrix.CopyInto(v, m); err != nil {
		a.off = mark
		return nil, fmt.Errorf("arena: Copy: %w", err)
	}

	return v, nil
}

// Mark records the current allocation offset for a later Rewind.
func (a *Arena) Mark() int { return a.off }

// Rewind releases every allocation made after mark and zeroes that space.
// Views allocated after mark must no longer be used.
func (a *Arena) Rewind(mark int) error {
	if a.buf == nil {
		return ErrClosed
	}
	if mark < 0 || mark > a.off {
		return fmt.Errorf("arena: Rewind(%d) with offset %d: %w", mark, a.off, ErrBadMark)
	}
	clear(a.buf[mark:a.off])
	a.off = mark

	return nil
}

// Reset releases every allocation; equivalent to Rewind(0).
func (a *Arena) Reset() error { return a.Rewind(0) }

// Close unlocks and unmaps the region. Further allocations return ErrClosed.
// Closing twice is a no-op.
func (a *Arena) Close() error {
	if a.buf == nil {
		return nil
	}
	a.buf = nil
	a.off = 0

	var errs []error
	if a.locked {
		if err := a.region.Unlock(); err != nil {
			errs = append(errs, fmt.Errorf("arena: unlock: %w", err))
		}
		a.locked = false
	}
	if err := a.region.Unmap(); err != nil {
		errs = append(errs, fmt.Errorf("arena: unmap: %w", err))
	}
	a.region = nil

	return errors.Join(errs...)
}
