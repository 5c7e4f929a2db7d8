// Package ringbuffer provides a dynamically growing double-ended queue backed
// by a single contiguous slice used as a circular buffer. Unlike container/ring,
// which is an untyped circular linked list, ringbuffer uses generics and a
// contiguous memory block, offering amortized O(1) insertion and removal at
// both ends, O(1) random access, and zero-copy access to its contents as one
// or two contiguous slices.
//
// The main type is Buffer. Its logical contents start at a physical offset
// (the head) and may wrap past the end of the backing slice; AsSlices and
// Views expose the two pieces without copying, and FromSlice / IntoSlice
// convert to and from a plain slice without per-element work whenever the
// layout allows.
//
// A Buffer is not safe for concurrent use. It has a single owner; callers that
// share one between goroutines must synchronize externally. Iterators borrow
// the buffer: while one is active, structural mutations fail with
// ErrBorrowed instead of corrupting the traversal.
package ringbuffer

import (
	"fmt"

	"github.com/loren-osborn/ringdeque/internal/slots"
)

// MinGrowCapacity is the capacity of the first backing store allocated by
// growth, and the floor for every later growth step.
const MinGrowCapacity = 8

// Type definition

// Buffer is a double-ended queue stored in a circular slice. The zero value
// is an empty buffer with no capacity, ready to use.
//
// Type Parameter:
//   - T: The type of elements stored in the buffer.
type Buffer[T any] struct {
	buf      []T  // Backing store; len(buf) is the capacity
	head     int  // Physical offset of logical element 0
	size     int  // Number of live elements
	leases   int  // Outstanding iterator leases
	draining bool // A Drainer holds the buffer exclusively
	opts     options[T]
}

// Constructors

// New returns an empty Buffer configured by opts. It panics if the requested
// initial capacity is negative or cannot be allocated; use TryNew to receive
// the allocation error instead.
func New[T any](opts ...Option[T]) *Buffer[T] {
	result, err := TryNew(opts...)
	if err != nil {
		panic(err)
	}

	return result
}

// TryNew is like New but reports a failed initial allocation as an error
// wrapping ErrAllocation.
func TryNew[T any](opts ...Option[T]) (*Buffer[T], error) {
	result := &Buffer[T]{opts: applyOptions(opts...)}

	if result.opts.capacity > 0 {
		buf, err := allocate[T]("New", result.opts.capacity, result.opts.maxCapacity, 0)
		if err != nil {
			return nil, err
		}

		result.buf = buf
	}

	return result, nil
}

// Capacity queries

// Len returns the number of elements in the buffer.
func (rb *Buffer[T]) Len() int {
	return rb.size
}

// Cap returns the number of slots in the backing store.
func (rb *Buffer[T]) Cap() int {
	return len(rb.buf)
}

// IsEmpty reports whether the buffer holds no elements.
func (rb *Buffer[T]) IsEmpty() bool {
	return rb.size == 0
}

// IsFull reports whether the next insertion will reallocate. A buffer with no
// capacity is both empty and full.
func (rb *Buffer[T]) IsFull() bool {
	return rb.size == len(rb.buf)
}

// Core Public Methods

// PushBack appends value at the back of the buffer, growing the backing store
// if it is full.
func (rb *Buffer[T]) PushBack(value T) error {
	if err := rb.checkMutable("PushBack"); err != nil {
		return err
	}

	if rb.size == len(rb.buf) {
		if err := rb.grow("PushBack", 1); err != nil {
			return err
		}
	}

	rb.buf[rb.physical(rb.size)] = value
	rb.size++

	return nil
}

// PushFront prepends value at the front of the buffer, growing the backing
// store if it is full.
func (rb *Buffer[T]) PushFront(value T) error {
	if err := rb.checkMutable("PushFront"); err != nil {
		return err
	}

	if rb.size == len(rb.buf) {
		if err := rb.grow("PushFront", 1); err != nil {
			return err
		}
	}

	slot := rb.frontSlot()
	rb.buf[slot] = value
	rb.head = slot
	rb.size++

	return nil
}

// PopFront removes and returns the first element.
func (rb *Buffer[T]) PopFront() (T, error) {
	var zero T

	if err := rb.checkMutable("PopFront"); err != nil {
		return zero, err
	}

	if rb.size == 0 {
		return zero, emptyBuffer("PopFront")
	}

	return rb.takeFront(), nil
}

// PopBack removes and returns the last element.
func (rb *Buffer[T]) PopBack() (T, error) {
	var zero T

	if err := rb.checkMutable("PopBack"); err != nil {
		return zero, err
	}

	if rb.size == 0 {
		return zero, emptyBuffer("PopBack")
	}

	return rb.takeBack(), nil
}

// Insert places value at logical position index, shifting whichever side of
// the buffer is shorter. index may equal Len(), which appends.
func (rb *Buffer[T]) Insert(index int, value T) error {
	if err := rb.checkMutable("Insert"); err != nil {
		return err
	}

	if index < 0 || index > rb.size {
		return outOfRange("Insert", index, rb.size)
	}

	if rb.size == len(rb.buf) {
		if err := rb.grow("Insert", 1); err != nil {
			return err
		}
	}

	if index < rb.size-index {
		// Open a slot at the front and slide the leading elements down.
		rb.head = rb.frontSlot()
		rb.size++

		for i := 0; i < index; i++ {
			rb.buf[rb.physical(i)] = rb.buf[rb.physical(i+1)]
		}
	} else {
		rb.size++

		for i := rb.size - 1; i > index; i-- {
			rb.buf[rb.physical(i)] = rb.buf[rb.physical(i-1)]
		}
	}

	rb.buf[rb.physical(index)] = value

	return nil
}

// Remove deletes and returns the element at logical position index, closing
// the gap from whichever side is shorter.
func (rb *Buffer[T]) Remove(index int) (T, error) {
	var zero T

	if err := rb.checkMutable("Remove"); err != nil {
		return zero, err
	}

	if index < 0 || index >= rb.size {
		if rb.size == 0 {
			return zero, emptyBuffer("Remove")
		}

		return zero, outOfRange("Remove", index, rb.size)
	}

	value := rb.buf[rb.physical(index)]

	if index < rb.size-1-index {
		for i := index; i > 0; i-- {
			rb.buf[rb.physical(i)] = rb.buf[rb.physical(i-1)]
		}

		slots.Vacate(rb.buf, rb.head)
		rb.head = rb.physical(1)
	} else {
		for i := index; i < rb.size-1; i++ {
			rb.buf[rb.physical(i)] = rb.buf[rb.physical(i+1)]
		}

		slots.Vacate(rb.buf, rb.physical(rb.size-1))
	}

	rb.size--
	rb.resetIfEmpty()

	return value, nil
}

// Truncate shortens the buffer to its first n elements, destroying the rest
// from the back. It has no effect when n >= Len(). Capacity is retained.
func (rb *Buffer[T]) Truncate(n int) error {
	if err := rb.checkMutable("Truncate"); err != nil {
		return err
	}

	if n < 0 {
		return outOfRange("Truncate", n, rb.size)
	}

	rb.truncate(n)

	return nil
}

// Clear destroys every element. The backing store is retained, so refilling
// the buffer up to Cap() does not reallocate; use ShrinkToFit or Close to
// release it.
func (rb *Buffer[T]) Clear() error {
	if err := rb.checkMutable("Clear"); err != nil {
		return err
	}

	rb.truncate(0)

	return nil
}

// Close destroys every element and releases the backing store. The buffer is
// left empty with no capacity and may be reused.
func (rb *Buffer[T]) Close() error {
	if err := rb.checkMutable("Close"); err != nil {
		return err
	}

	rb.truncate(0)
	rb.buf = nil
	rb.head = 0

	return nil
}

// Front returns the first element without removing it.
func (rb *Buffer[T]) Front() (T, error) {
	if rb.size == 0 {
		var zero T

		return zero, emptyBuffer("Front")
	}

	return rb.buf[rb.head], nil
}

// Back returns the last element without removing it.
func (rb *Buffer[T]) Back() (T, error) {
	if rb.size == 0 {
		var zero T

		return zero, emptyBuffer("Back")
	}

	return rb.buf[rb.physical(rb.size-1)], nil
}

// FrontPtr returns a pointer to the first element. The pointer is valid until
// the next structural mutation.
func (rb *Buffer[T]) FrontPtr() (*T, error) {
	if rb.size == 0 {
		return nil, emptyBuffer("FrontPtr")
	}

	return &rb.buf[rb.head], nil
}

// BackPtr returns a pointer to the last element. The pointer is valid until
// the next structural mutation.
func (rb *Buffer[T]) BackPtr() (*T, error) {
	if rb.size == 0 {
		return nil, emptyBuffer("BackPtr")
	}

	return &rb.buf[rb.physical(rb.size-1)], nil
}

// String formats the elements in logical order, like a slice: "[1 2 3]".
func (rb *Buffer[T]) String() string {
	return fmt.Sprint(rb.ToSlice())
}

// Internal Helper Methods

// checkMutable fails when an iterator holds a lease on the buffer.
func (rb *Buffer[T]) checkMutable(op string) error {
	if rb.leases > 0 {
		return borrowed(op, rb.size)
	}

	return nil
}

// acquire takes a lease for the iterator started by op. No iterator may start
// alongside a Drainer.
func (rb *Buffer[T]) acquire(op string) {
	if rb.draining {
		panic(borrowed(op, rb.size))
	}

	rb.leases++
}

func (rb *Buffer[T]) release() {
	rb.leases--
}

// takeFront moves the first element out. The buffer must not be empty.
func (rb *Buffer[T]) takeFront() T {
	value := slots.Take(rb.buf, rb.head)
	rb.head = rb.physical(1)
	rb.size--
	rb.resetIfEmpty()

	return value
}

// takeBack moves the last element out. The buffer must not be empty.
func (rb *Buffer[T]) takeBack() T {
	value := slots.Take(rb.buf, rb.physical(rb.size-1))
	rb.size--
	rb.resetIfEmpty()

	return value
}

// truncate destroys elements from the back until n remain.
func (rb *Buffer[T]) truncate(n int) {
	for rb.size > n {
		// Shrink first so a panicking release never sees the element again.
		rb.size--
		value := slots.Take(rb.buf, rb.physical(rb.size))

		if rb.opts.release != nil {
			rb.opts.release(value)
		}
	}

	rb.resetIfEmpty()
}

func (rb *Buffer[T]) resetIfEmpty() {
	if rb.size == 0 {
		rb.head = 0
	}
}
