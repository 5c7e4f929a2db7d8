// Package slots holds the element-ownership primitives shared by the ring
// buffer. Every move and vacate of a slot goes through here so that each
// element leaves a slot exactly once and dead slots never keep referents
// alive.
package slots

// Take returns the element stored at s[i] and leaves the zero value behind.
func Take[T any](s []T, i int) T {
	var zero T

	value := s[i]
	s[i] = zero

	return value
}

// Vacate zeroes s[i]. It is used for slots whose element has already been
// copied elsewhere, so nothing is released.
func Vacate[T any](s []T, i int) {
	var zero T

	s[i] = zero
}

// Relocate copies first and then second to the front of dst, preserving
// order, and returns the number of elements moved. dst must not overlap
// either segment and must be large enough to hold both.
func Relocate[T any](dst, first, second []T) int {
	moved := copy(dst, first)
	moved += copy(dst[moved:], second)

	return moved
}

// Linearize rotates the circular sequence of n elements starting at physical
// offset head of buf so that it occupies buf[:n] in logical order. Slots past
// n are zeroed afterwards. Only the smaller wrapped segment is ever copied to
// temporary storage.
func Linearize[T any](buf []T, head, n int) {
	if head == 0 {
		return
	}

	capacity := len(buf)
	len1 := min(n, capacity-head) // segment [head, capacity)
	len2 := n - len1              // segment [0, len2)

	switch {
	case len2 == 0:
		// Not wrapped: slide the single segment down.
		//
		//      head
		//       V
		//  +-+-+-+-+-+-+-+
		//  | | |x|x|x|x| |
		//  +-+-+-+-+-+-+-+
		copy(buf, buf[head:head+n])
	case len1 <= head-len2:
		// The gap is wide enough to slide the tail segment right without
		// touching the head segment.
		//
		//            head
		//             V
		//  +-+-+-+-+-+-+-+
		//  |x|x| | | |x|x|
		//  +-+-+-+-+-+-+-+
		copy(buf[len1:], buf[:len2])
		copy(buf, buf[head:capacity])
	case len1 < len2:
		// Save the (smaller) head segment, slide the tail segment right.
		//
		//              head
		//               V
		//  +-+-+-+-+-+-+-+
		//  |x|x|x|x| |x|x|
		//  +-+-+-+-+-+-+-+
		saved := make([]T, len1)
		copy(saved, buf[head:capacity])
		copy(buf[len1:], buf[:len2])
		copy(buf, saved)
	default:
		// Save the (smaller) tail segment, slide the head segment left.
		//
		//          head
		//           V
		//  +-+-+-+-+-+-+-+
		//  |x|x| | |x|x|x|
		//  +-+-+-+-+-+-+-+
		saved := make([]T, len2)
		copy(saved, buf[:len2])
		copy(buf, buf[head:capacity])
		copy(buf[len1:], saved)
	}

	clear(buf[n:])
}
