package ringbuffer

import (
	"iter"

	"github.com/loren-osborn/ringdeque/internal/slots"
)

// Slice Conversion Methods

// FromSlice returns a Buffer that takes ownership of items and its backing
// array: the buffer starts at offset 0 with Len() == len(items) and
// Cap() == cap(items). No elements are copied. The caller must not use items
// afterwards.
func FromSlice[T any](items []T, opts ...Option[T]) *Buffer[T] {
	result := &Buffer[T]{opts: applyOptions(opts...)}

	if cap(items) == 0 {
		return result
	}

	result.buf = items[:cap(items)]
	result.size = len(items)

	// The slots past len(items) now belong to the buffer as free slots.
	clear(result.buf[result.size:])

	if limit := result.opts.maxCapacity; limit > 0 && limit < len(result.buf) {
		result.opts.maxCapacity = len(result.buf)
	}

	return result
}

// ToSlice returns a new slice holding a copy of the elements in logical order.
func (rb *Buffer[T]) ToSlice() []T {
	first, second := rb.AsSlices()
	result := make([]T, rb.size)
	slots.Relocate(result, first, second)

	return result
}

// IntoSlice transfers the elements to the caller as a plain slice in logical
// order and leaves the buffer empty with no capacity. When the contents are
// contiguous the returned slice is the buffer's own storage and nothing is
// copied; a wrapped buffer is first rotated in place by MakeContiguous.
func (rb *Buffer[T]) IntoSlice() ([]T, error) {
	if err := rb.checkMutable("IntoSlice"); err != nil {
		return nil, err
	}

	if !rb.IsContiguous() {
		slots.Linearize(rb.buf, rb.head, rb.size)
		rb.head = 0
	}

	result := rb.buf[rb.head : rb.head+rb.size]

	rb.buf = nil
	rb.head = 0
	rb.size = 0

	return result, nil
}

// MakeContiguous rotates the backing store in place so the elements start at
// slot 0, and returns them as a single slice aliasing the buffer. Only the
// smaller wrapped segment is copied through temporary storage.
func (rb *Buffer[T]) MakeContiguous() ([]T, error) {
	if err := rb.checkMutable("MakeContiguous"); err != nil {
		return nil, err
	}

	slots.Linearize(rb.buf, rb.head, rb.size)
	rb.head = 0

	return rb.buf[:rb.size:rb.size], nil
}

// Clone returns a copy of the buffer with capacity equal to its length and
// the same options.
func (rb *Buffer[T]) Clone() *Buffer[T] {
	result := &Buffer[T]{opts: rb.opts, size: rb.size}

	if rb.size > 0 {
		result.buf = rb.ToSlice()
	}

	if limit := result.opts.maxCapacity; limit > 0 && limit < rb.size {
		result.opts.maxCapacity = rb.size
	}

	return result
}

// Bulk insertion

// AppendSlice appends items at the back. Room for all of them is reserved
// first, so either every item is appended or, on error, none is.
func (rb *Buffer[T]) AppendSlice(items ...T) error {
	if err := rb.checkMutable("AppendSlice"); err != nil {
		return err
	}

	if len(items) == 0 {
		return nil
	}

	if len(rb.buf)-rb.size < len(items) {
		if err := rb.grow("AppendSlice", len(items)); err != nil {
			return err
		}
	}

	// Fill the free run after the tail, then wrap to slot 0. The reservation
	// above guarantees neither copy reaches a live slot.
	tail := rb.physical(rb.size)
	copied := copy(rb.buf[tail:], items)
	copy(rb.buf, items[copied:])

	rb.size += len(items)

	return nil
}

// Extend appends every element produced by seq at the back. It stops at the
// first failed insertion; elements appended before the failure remain.
func (rb *Buffer[T]) Extend(seq iter.Seq[T]) error {
	for value := range seq {
		if err := rb.PushBack(value); err != nil {
			return err
		}
	}

	return nil
}

// Collect builds a Buffer from the elements produced by seq. If an insertion
// fails, the elements collected so far are destroyed (see WithRelease).
func Collect[T any](seq iter.Seq[T], opts ...Option[T]) (*Buffer[T], error) {
	result, err := TryNew(opts...)
	if err != nil {
		return nil, err
	}

	if err := result.Extend(seq); err != nil {
		result.truncate(0)

		return nil, err
	}

	return result, nil
}
