package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/loren-osborn/ringdeque/ringbuffer"
)

// Window passes elements through from its input unchanged while remembering
// the last size of them. Once the window is full, each new element evicts
// the oldest one.
type Window[T any] struct {
	input  Source[T]
	buffer *ringbuffer.Buffer[T]
}

// NewWindow returns a Window of the given size over input. It panics if size
// is not positive. opts configure the internal buffer; the capacity is always
// exactly size.
func NewWindow[T any](input Source[T], size int, opts ...ringbuffer.Option[T]) *Window[T] {
	assertf(size > 0, "window size must be positive, got %d", size)

	opts = append(opts[:len(opts):len(opts)], ringbuffer.WithCapacity[T](size), ringbuffer.WithMaxCapacity[T](size))

	return &Window[T]{input: input, buffer: ringbuffer.New(opts...)}
}

// Pull retrieves the next element from the input, records it in the window,
// and returns it. It fails with ringbuffer.ErrBorrowed, without touching the
// input, while the window is being iterated with All.
func (w *Window[T]) Pull(ctx context.Context) (*T, error) {
	// Reserve(0) allocates nothing; it only fails while All is running.
	if err := w.buffer.Reserve(0); err != nil {
		return nil, fmt.Errorf("window buffer is borrowed: %w", err)
	}

	var next *T

	err := io.EOF
	ctxErr := ctx.Err()

	if (ctxErr == nil) && (w.input != nil) {
		next, err = w.input.Pull(ctx)
		ctxErr = ctx.Err()
	}

	if (err != nil) || (ctxErr != nil) {
		switch {
		case ctxErr != nil:
			return nil, canceled(ctxErr, w.closeInput())
		case errors.Is(err, io.EOF):
			w.input = nil // Source should have already closed itself

			return nil, io.EOF
		default:
			return nil, fmt.Errorf("data pull failed: %w", err)
		}
	}

	if w.buffer.IsFull() {
		// Evict before pushing so the buffer never grows.
		if _, err := w.buffer.PopFront(); err != nil {
			return nil, fmt.Errorf("window eviction failed: %w", err)
		}
	}

	if err := w.buffer.PushBack(*next); err != nil {
		return nil, fmt.Errorf("window buffer rejected element: %w", err)
	}

	return next, nil
}

// Len returns the number of elements currently in the window.
func (w *Window[T]) Len() int {
	return w.buffer.Len()
}

// Slices returns the window's contents, oldest first, as up to two slices
// aliasing its storage. They are valid until the next Pull.
func (w *Window[T]) Slices() (older, newer []T) {
	return w.buffer.AsSlices()
}

// Snapshot returns a copy of the window's contents, oldest first.
func (w *Window[T]) Snapshot() []T {
	return w.buffer.ToSlice()
}

// All iterates over the window's contents, oldest first.
func (w *Window[T]) All() iter.Seq2[int, T] {
	return w.buffer.All()
}

func (w *Window[T]) closeInput() error {
	var err error

	if w.input != nil {
		err = w.input.Close()
	}

	w.input = nil

	if err != nil {
		return fmt.Errorf("error closing source: %w", err)
	}

	return nil
}

// Close closes the input. The window's contents stay readable.
func (w *Window[T]) Close() error {
	return w.closeInput()
}
