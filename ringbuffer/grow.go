package ringbuffer

import (
	"math"
	"runtime"

	"github.com/loren-osborn/ringdeque/internal/slots"
)

// Reserve ensures room for at least additional more elements, growing with
// the same doubling policy as insertions.
func (rb *Buffer[T]) Reserve(additional int) error {
	if err := rb.checkMutable("Reserve"); err != nil {
		return err
	}

	if additional < 0 {
		return outOfRange("Reserve", additional, rb.size)
	}

	if len(rb.buf)-rb.size >= additional {
		return nil
	}

	return rb.grow("Reserve", additional)
}

// ReserveExact ensures room for at least additional more elements, growing
// to exactly Len()+additional slots when growth is needed.
func (rb *Buffer[T]) ReserveExact(additional int) error {
	if err := rb.checkMutable("ReserveExact"); err != nil {
		return err
	}

	if additional < 0 {
		return outOfRange("ReserveExact", additional, rb.size)
	}

	if len(rb.buf)-rb.size >= additional {
		return nil
	}

	if additional > math.MaxInt-rb.size {
		return allocationFailed("ReserveExact", math.MaxInt, rb.size, nil)
	}

	return rb.resize("ReserveExact", rb.size+additional)
}

// ShrinkToFit reallocates the backing store to exactly Len() slots. An empty
// buffer releases its backing store entirely.
func (rb *Buffer[T]) ShrinkToFit() error {
	if err := rb.checkMutable("ShrinkToFit"); err != nil {
		return err
	}

	if len(rb.buf) == rb.size {
		return nil
	}

	if rb.size == 0 {
		oldCap := len(rb.buf)
		rb.buf = nil
		rb.head = 0
		rb.notifyResized(oldCap, 0, 0)

		return nil
	}

	return rb.resize("ShrinkToFit", rb.size)
}

// grow reallocates so that at least additional more elements fit. The new
// capacity doubles the current one, never drops below MinGrowCapacity, and is
// clamped to the configured maximum.
func (rb *Buffer[T]) grow(op string, additional int) error {
	if additional > math.MaxInt-rb.size {
		return allocationFailed(op, math.MaxInt, rb.size, nil)
	}

	required := rb.size + additional

	newCap := MinGrowCapacity
	if len(rb.buf) > math.MaxInt/2 {
		newCap = math.MaxInt
	} else {
		newCap = max(newCap, len(rb.buf)*2)
	}

	newCap = max(newCap, required)

	if limit := rb.opts.maxCapacity; limit > 0 && newCap > limit {
		newCap = max(limit, required)
	}

	return rb.resize(op, newCap)
}

// resize moves the live elements, in logical order, to the start of a new
// backing store of newCap slots. On failure the buffer is untouched.
// Preconditions: newCap >= rb.size.
func (rb *Buffer[T]) resize(op string, newCap int) error {
	buf, err := allocate[T](op, newCap, rb.opts.maxCapacity, rb.size)
	if err != nil {
		return err
	}

	first, second := rb.AsSlices()
	moved := slots.Relocate(buf, first, second)

	oldCap := len(rb.buf)
	rb.buf = buf
	rb.head = 0
	rb.notifyResized(oldCap, newCap, moved)

	return nil
}

func (rb *Buffer[T]) notifyResized(oldCap, newCap, moved int) {
	if rb.opts.observer != nil {
		rb.opts.observer.Resized(oldCap, newCap, moved)
	}
}

// allocate returns a zeroed slice of capacity slots, or an ErrAllocation
// error when capacity exceeds limit (if set) or the runtime rejects the size.
func allocate[T any](op string, capacity, limit, length int) (buf []T, err error) {
	if limit > 0 && capacity > limit {
		return nil, allocationFailed(op, capacity, length, nil)
	}

	defer func() {
		if r := recover(); r != nil {
			rtErr, ok := r.(runtime.Error)
			if !ok {
				panic(r)
			}

			buf = nil
			err = allocationFailed(op, capacity, length, rtErr)
		}
	}()

	return make([]T, capacity), nil
}
