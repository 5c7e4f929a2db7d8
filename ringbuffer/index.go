package ringbuffer

// Wraparound arithmetic. Capacities are arbitrary (not necessarily powers of
// two), so physical offsets are computed with a single conditional subtract
// instead of a modulo or a mask.

// physical maps logical index i to its slot in buf.
// Preconditions: 0 <= i < len(buf) and head < len(buf).
func (rb *Buffer[T]) physical(i int) int {
	// Compare against the distance to the end so head+i cannot overflow.
	if i >= len(rb.buf)-rb.head {
		return i - (len(rb.buf) - rb.head)
	}

	return rb.head + i
}

// logical maps a slot in the live range back to its logical index.
func (rb *Buffer[T]) logical(slot int) int {
	if slot >= rb.head {
		return slot - rb.head
	}

	return slot + (len(rb.buf) - rb.head)
}

// frontSlot is the slot just before head, where PushFront writes.
// Preconditions: len(buf) > 0.
func (rb *Buffer[T]) frontSlot() int {
	if rb.head == 0 {
		return len(rb.buf) - 1
	}

	return rb.head - 1
}

// Random access

// At returns the element at logical index i.
func (rb *Buffer[T]) At(i int) (T, error) {
	if i < 0 || i >= rb.size {
		var zero T

		return zero, outOfRange("At", i, rb.size)
	}

	return rb.buf[rb.physical(i)], nil
}

// Ptr returns a pointer to the element at logical index i, allowing it to be
// modified in place. The pointer is valid until the next structural mutation.
func (rb *Buffer[T]) Ptr(i int) (*T, error) {
	if i < 0 || i >= rb.size {
		return nil, outOfRange("Ptr", i, rb.size)
	}

	return &rb.buf[rb.physical(i)], nil
}

// Set replaces the element at logical index i. Set is not a structural
// mutation and is allowed while iterators are active.
func (rb *Buffer[T]) Set(i int, value T) error {
	if i < 0 || i >= rb.size {
		return outOfRange("Set", i, rb.size)
	}

	rb.buf[rb.physical(i)] = value

	return nil
}

// Swap exchanges the elements at logical indices i and j, which may be equal.
func (rb *Buffer[T]) Swap(i, j int) error {
	if i < 0 || i >= rb.size {
		return outOfRange("Swap", i, rb.size)
	}

	if j < 0 || j >= rb.size {
		return outOfRange("Swap", j, rb.size)
	}

	pi, pj := rb.physical(i), rb.physical(j)
	rb.buf[pi], rb.buf[pj] = rb.buf[pj], rb.buf[pi]

	return nil
}

// IndexFunc returns the logical index of the first element satisfying match,
// or -1 if there is none.
func (rb *Buffer[T]) IndexFunc(match func(T) bool) int {
	first, second := rb.AsSlices()

	for i, value := range first {
		if match(value) {
			return i
		}
	}

	for i, value := range second {
		if match(value) {
			return len(first) + i
		}
	}

	return -1
}
