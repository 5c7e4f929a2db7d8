package ringbuffer

import (
	"errors"
	"fmt"
)

// Standard errors reported by Buffer operations. They are always wrapped in an
// *Error carrying the operation context; match them with errors.Is.
var (
	// ErrOutOfRange reports a logical index outside [0, Len()) (or
	// [0, Len()] for insertion).
	ErrOutOfRange = errors.New("index out of range")

	// ErrEmpty reports a pop, peek, or removal on an empty buffer.
	ErrEmpty = errors.New("buffer is empty")

	// ErrAllocation reports that a new backing store could not be obtained,
	// either because it would exceed the configured maximum capacity or
	// because the runtime refused the allocation.
	ErrAllocation = errors.New("allocation failed")

	// ErrBorrowed reports a structural mutation attempted while an iterator
	// still holds a lease on the buffer.
	ErrBorrowed = errors.New("buffer is borrowed by an active iterator")
)

// Error describes a failed Buffer operation. A failed operation never
// modifies the buffer.
type Error struct {
	Op    string // Operation that failed, e.g. "PopFront"
	Index int    // Offending logical index, or requested capacity for ErrAllocation
	Len   int    // Buffer length at the time of the call
	Err   error  // Underlying cause; always wraps one of the Err* sentinels
}

// Error implements the error interface.
func (e *Error) Error() string {
	switch {
	case errors.Is(e.Err, ErrOutOfRange):
		return fmt.Sprintf("ringbuffer: %s: index %d out of range with length %d", e.Op, e.Index, e.Len)
	case errors.Is(e.Err, ErrAllocation):
		return fmt.Sprintf("ringbuffer: %s: cannot allocate %d slots: %v", e.Op, e.Index, e.Err)
	default:
		return fmt.Sprintf("ringbuffer: %s: %v", e.Op, e.Err)
	}
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

func outOfRange(op string, index, length int) error {
	return &Error{Op: op, Index: index, Len: length, Err: ErrOutOfRange}
}

func emptyBuffer(op string) error {
	return &Error{Op: op, Index: -1, Len: 0, Err: ErrEmpty}
}

func borrowed(op string, length int) error {
	return &Error{Op: op, Index: -1, Len: length, Err: ErrBorrowed}
}

func allocationFailed(op string, capacity, length int, cause error) error {
	err := ErrAllocation
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrAllocation, cause)
	}

	return &Error{Op: op, Index: capacity, Len: length, Err: err}
}
