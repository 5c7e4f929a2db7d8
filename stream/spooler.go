package stream

// This file implements the pushback side of a pipeline: Spooler.

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/loren-osborn/ringdeque/ringbuffer"
)

// Spooler buffers elements in front of a data source and provides
// sequential access to them. Elements queued with Stuff are pulled after any
// already buffered but before further upstream data; elements returned with
// Unread are pulled next, ahead of everything else.
//
// Type Parameter:
//
//	T: The type of elements buffered and consumed by the Spooler.
type Spooler[T any] struct {
	input  Source[T]
	buffer *ringbuffer.Buffer[T]
}

// NewSpooler creates a new Spooler reading from input. opts configure the
// internal buffer, for example to bound it with ringbuffer.WithMaxCapacity.
func NewSpooler[T any](input Source[T], opts ...ringbuffer.Option[T]) *Spooler[T] {
	return &Spooler[T]{input: input, buffer: ringbuffer.New(opts...)}
}

// Pull retrieves the next item from the Spooler.
//
// If there are buffered elements, Pull returns the next buffered element.
// Otherwise, it retrieves data from the upstream source. If the source is
// exhausted, Pull returns io.EOF.
//
// Notes:
//   - If the source returns io.EOF, the Spooler keeps accepting Stuff and
//     Unread; buffered elements are still pulled in order.
func (s *Spooler[T]) Pull(ctx context.Context) (*T, error) {
	var next *T

	err := io.EOF
	ctxErr := ctx.Err()

	if ctxErr == nil {
		if !s.buffer.IsEmpty() {
			out, popErr := s.buffer.PopFront()
			assertf(popErr == nil, "PopFront on a non-empty spool cannot fail: %v", popErr)

			return &out, nil
		}

		if s.input == nil {
			return nil, io.EOF
		}

		next, err = s.input.Pull(ctx)
		ctxErr = ctx.Err()
	}

	if (ctxErr != nil) || (err != nil) {
		switch {
		case ctxErr != nil:
			return nil, canceled(ctxErr, s.Close())
		case errors.Is(err, io.EOF):
			s.input = nil // Source should have already closed itself

			return nil, io.EOF
		default:
			return nil, fmt.Errorf("data pull failed: %w", err)
		}
	}

	return next, nil
}

// Stuff queues items behind the elements already buffered. Either all items
// are queued or, if the buffer cannot grow, none are.
func (s *Spooler[T]) Stuff(items ...T) error {
	if err := s.buffer.AppendSlice(items...); err != nil {
		return fmt.Errorf("cannot stuff %d elements: %w", len(items), err)
	}

	return nil
}

// Unread pushes items back so that they are the next elements pulled, in the
// order given. Either all items are returned or, if the buffer cannot grow,
// none are.
func (s *Spooler[T]) Unread(items ...T) error {
	if err := s.buffer.Reserve(len(items)); err != nil {
		return fmt.Errorf("cannot unread %d elements: %w", len(items), err)
	}

	for i := len(items) - 1; i >= 0; i-- {
		err := s.buffer.PushFront(items[i])
		assertf(err == nil, "PushFront after Reserve cannot fail: %v", err)
	}

	return nil
}

// Buffered returns the number of elements waiting in the spool.
func (s *Spooler[T]) Buffered() int {
	return s.buffer.Len()
}

// closeInput signals to the upstream source that no more data will be pulled.
// The buffered elements remain available.
func (s *Spooler[T]) closeInput() error {
	var err error

	if s.input != nil {
		err = s.input.Close()
	}

	s.input = nil

	if err != nil {
		return fmt.Errorf("error closing source: %w", err)
	}

	return nil
}

// Close signals to the Spooler that it will no longer be used and releases
// its resources.
//
// This method destroys the buffered elements and closes the upstream source.
func (s *Spooler[T]) Close() error {
	err := s.closeInput()

	closeErr := s.buffer.Close()
	assertf(closeErr == nil, "the spool buffer is never borrowed: %v", closeErr)

	return err
}
