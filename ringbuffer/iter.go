package ringbuffer

import (
	"iter"
)

// Range Iteration Methods
//
// Every iterator holds a lease on the buffer while it is active. Structural
// mutations (pushes, pops, growth, clearing) attempted during that time fail
// with ErrBorrowed. Element writes via Set, Swap, or Ptr remain allowed.
// While a Drainer is active, starting any other iterator panics with an
// ErrBorrowed *Error.

// All returns an iterator over logical indices and elements, front to back.
// The iterator is restartable: each range over it starts from the front. The
// buffer is leased for the duration of the range loop.
func (rb *Buffer[T]) All() iter.Seq2[int, T] {
	return rb.forward("All")
}

// Values returns an iterator over the elements, front to back.
func (rb *Buffer[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range rb.forward("Values") {
			if !yield(value) {
				return
			}
		}
	}
}

func (rb *Buffer[T]) forward(op string) iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		rb.acquire(op)
		defer rb.release()

		first, second := rb.AsSlices()

		for i, value := range first {
			if !yield(i, value) {
				return
			}
		}

		for i, value := range second {
			if !yield(len(first)+i, value) {
				return
			}
		}
	}
}

// AllPtrs returns an iterator over logical indices and pointers to the
// elements, front to back, so elements can be modified in place. Like All,
// it leases the buffer for the duration of the range loop.
func (rb *Buffer[T]) AllPtrs() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		rb.acquire("AllPtrs")
		defer rb.release()

		first, second := rb.AsSlices()

		for i := range first {
			if !yield(i, &first[i]) {
				return
			}
		}

		for i := range second {
			if !yield(len(first)+i, &second[i]) {
				return
			}
		}
	}
}

// Backward returns an iterator over logical indices and elements, back to
// front.
func (rb *Buffer[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		rb.acquire("Backward")
		defer rb.release()

		first, second := rb.AsSlices()

		for i := len(second) - 1; i >= 0; i-- {
			if !yield(len(first)+i, second[i]) {
				return
			}
		}

		for i := len(first) - 1; i >= 0; i-- {
			if !yield(i, first[i]) {
				return
			}
		}
	}
}

// Cursor is a double-ended iterator over a Buffer. Elements can be taken from
// the front with Next and from the back with NextBack in any interleaving;
// each element is yielded exactly once and the cursor ends when the two ends
// meet.
//
// A Cursor leases its buffer until it is exhausted or closed. Callers that
// may stop early should defer Close.
type Cursor[T any] struct {
	owner *Buffer[T]
	front int // Next logical index to yield from the front
	back  int // One past the next logical index to yield from the back
	done  bool
}

// Cursor returns a double-ended cursor positioned over the whole buffer. It
// panics if a Drainer is active on the buffer.
func (rb *Buffer[T]) Cursor() *Cursor[T] {
	rb.acquire("Cursor")

	result := &Cursor[T]{owner: rb, front: 0, back: rb.size}
	if result.back == 0 {
		result.Close()
	}

	return result
}

// Next returns the next element from the front. It returns false once the
// cursor is exhausted.
func (c *Cursor[T]) Next() (T, bool) {
	if c.done {
		var zero T

		return zero, false
	}

	value := c.owner.buf[c.owner.physical(c.front)]
	c.front++

	if c.front == c.back {
		c.Close()
	}

	return value, true
}

// NextBack returns the next element from the back. It returns false once the
// cursor is exhausted.
func (c *Cursor[T]) NextBack() (T, bool) {
	if c.done {
		var zero T

		return zero, false
	}

	c.back--
	value := c.owner.buf[c.owner.physical(c.back)]

	if c.front == c.back {
		c.Close()
	}

	return value, true
}

// Len returns the number of elements not yet yielded.
func (c *Cursor[T]) Len() int {
	return c.back - c.front
}

// Close ends the iteration early and releases the lease. It is idempotent.
func (c *Cursor[T]) Close() {
	if c.done {
		return
	}

	c.done = true
	c.front = c.back
	c.owner.release()
}

// Drainer is a consuming double-ended iterator. Each element it yields is
// removed from the buffer and handed to the caller, so the buffer shrinks
// with every step. Elements still in the buffer when the Drainer is closed
// are destroyed (see WithRelease). The buffer keeps its capacity.
//
// A Drainer owns the buffer until it is exhausted or closed: no other
// structural mutation, and no other iterator, may run meanwhile.
type Drainer[T any] struct {
	owner *Buffer[T]
	done  bool
}

// Drain starts a consuming iteration. It fails with ErrBorrowed if another
// iterator is active.
func (rb *Buffer[T]) Drain() (*Drainer[T], error) {
	if err := rb.checkMutable("Drain"); err != nil {
		return nil, err
	}

	rb.acquire("Drain")
	rb.draining = true

	return &Drainer[T]{owner: rb}, nil
}

// Next removes and returns the first remaining element. It returns false
// once the buffer is empty.
func (d *Drainer[T]) Next() (T, bool) {
	if !d.ready() {
		var zero T

		return zero, false
	}

	value := d.owner.takeFront()
	if d.owner.size == 0 {
		d.Close()
	}

	return value, true
}

// NextBack removes and returns the last remaining element. It returns false
// once the buffer is empty.
func (d *Drainer[T]) NextBack() (T, bool) {
	if !d.ready() {
		var zero T

		return zero, false
	}

	value := d.owner.takeBack()
	if d.owner.size == 0 {
		d.Close()
	}

	return value, true
}

// Len returns the number of elements not yet drained.
func (d *Drainer[T]) Len() int {
	if d.done {
		return 0
	}

	return d.owner.size
}

// All returns an iterator that drains the buffer front to back. The Drainer
// is closed when the loop ends for any reason, so breaking out early still
// destroys the remaining elements.
func (d *Drainer[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		defer d.Close()

		for {
			value, ok := d.Next()
			if !ok || !yield(value) {
				return
			}
		}
	}
}

// Close destroys every element not yet drained and releases the buffer. It
// is idempotent.
func (d *Drainer[T]) Close() {
	if d.done {
		return
	}

	d.done = true
	d.owner.draining = false
	d.owner.truncate(0)
	d.owner.release()
}

// ready reports whether the drainer may take another element.
func (d *Drainer[T]) ready() bool {
	if d.done {
		return false
	}

	if d.owner.size == 0 {
		d.Close()

		return false
	}

	return true
}
