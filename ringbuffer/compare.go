package ringbuffer

import (
	"cmp"
)

// Equal reports whether a and b hold equal elements in the same logical
// order. Capacity and physical layout are ignored.
func Equal[T comparable](a, b *Buffer[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like Equal but compares elements with eq.
func EqualFunc[T, U any](a *Buffer[T], b *Buffer[U], eq func(T, U) bool) bool {
	if a.size != b.size {
		return false
	}

	for i := range a.size {
		if !eq(a.buf[a.physical(i)], b.buf[b.physical(i)]) {
			return false
		}
	}

	return true
}

// Compare compares a and b lexicographically in logical order. A buffer that
// is a prefix of the other compares as smaller.
func Compare[T cmp.Ordered](a, b *Buffer[T]) int {
	return CompareFunc(a, b, cmp.Compare[T])
}

// CompareFunc is like Compare but compares elements with cmpFn.
func CompareFunc[T, U any](a *Buffer[T], b *Buffer[U], cmpFn func(T, U) int) int {
	for i := range min(a.size, b.size) {
		if c := cmpFn(a.buf[a.physical(i)], b.buf[b.physical(i)]); c != 0 {
			return c
		}
	}

	return cmp.Compare(a.size, b.size)
}
