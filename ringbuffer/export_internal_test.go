package ringbuffer

// Head exposes the physical offset of the first element.
func (rb *Buffer[T]) Head() int {
	return rb.head
}

// Leases exposes the number of outstanding iterator leases.
func (rb *Buffer[T]) Leases() int {
	return rb.leases
}

// Physical exposes the logical-to-physical mapping.
func (rb *Buffer[T]) Physical(i int) int {
	return rb.physical(i)
}

// Logical exposes the physical-to-logical mapping.
func (rb *Buffer[T]) Logical(slot int) int {
	return rb.logical(slot)
}

// Slot exposes a raw backing-store slot, live or not.
func (rb *Buffer[T]) Slot(i int) T {
	return rb.buf[i]
}
