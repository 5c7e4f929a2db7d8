package ringbuffer

import (
	"iter"
	"slices"
)

// Contiguity decomposition

// IsContiguous reports whether the elements occupy a single run of the
// backing store, so that the second slice of AsSlices is empty.
func (rb *Buffer[T]) IsContiguous() bool {
	return rb.head <= len(rb.buf)-rb.size
}

// AsSlices returns the buffer's contents, in logical order, as two slices
// that alias the backing store. When the contents wrap past the end of the
// backing store, first holds [head, Cap()) and second holds the remainder
// from slot 0; otherwise second is empty. Either or both may be empty.
//
// Writes through the slices modify the buffer. The slices are capped to the
// live range, so appending to them never overwrites the buffer's free slots.
// They are valid until the next structural mutation.
func (rb *Buffer[T]) AsSlices() (first, second []T) {
	if rb.IsContiguous() {
		end := rb.head + rb.size

		return rb.buf[rb.head:end:end], rb.buf[0:0:0]
	}

	len1 := len(rb.buf) - rb.head
	len2 := rb.size - len1

	return rb.buf[rb.head:len(rb.buf):len(rb.buf)], rb.buf[0:len2:len2]
}

// Views is the read-only counterpart of AsSlices.
func (rb *Buffer[T]) Views() (first, second View[T]) {
	s1, s2 := rb.AsSlices()

	return View[T]{items: s1}, View[T]{items: s2}
}

// View is a read-only window onto a contiguous run of a Buffer's backing
// store. It is valid until the next structural mutation of the buffer.
type View[T any] struct {
	items []T
}

// Len returns the number of elements in the view.
func (v View[T]) Len() int {
	return len(v.items)
}

// At returns the i'th element of the view. Like slice indexing, it panics if
// i is out of range.
func (v View[T]) At(i int) T {
	return v.items[i]
}

// All iterates over the view's indices and elements.
func (v View[T]) All() iter.Seq2[int, T] {
	return slices.All(v.items)
}

// Clone returns a copy of the view's elements.
func (v View[T]) Clone() []T {
	return slices.Clone(v.items)
}

// AppendTo appends the view's elements to dst and returns the result.
func (v View[T]) AppendTo(dst []T) []T {
	return append(dst, v.items...)
}
