// Package stream provides pull-based data pipelines whose buffering is done
// by ringbuffer.Buffer.
//
// # Core Concepts
//
//   - Source[T]: An interface that represents a producer of data elements, emitting
//     elements one at a time via the Pull method.
//   - Sink: A conceptual construct representing the consumption of elements, such
//     as BufferSink, which collects a Source into a ring buffer.
//   - Transformer: A Source that reads from another Source, such as Mapper,
//     Spooler, or Window.
//
// # Source[T] Lifecycle
//
//   - A Source[T] that reaches io.EOF is responsible for closing itself.
//   - If a consumer closes a Source[T] early, the consumer assumes
//     responsibility for ensuring that the Source is properly closed.
//   - The Close method on a Source[T] must be idempotent.
//   - A canceled context closes the Source and its upstream; Pull then
//     returns an error wrapping the context error.
//
// # Example
//
//	source := NewSliceSource([]int{1, 2, 3, 4, 5})
//	squares := NewMapper(source, func(n int) int { return n * n })
//	window := NewWindow(squares, 2)
//
//	for {
//		if _, err := window.Pull(ctx); err != nil {
//			break
//		}
//	}
//
//	fmt.Println(window.Snapshot()) // Output: [16 25]
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/loren-osborn/ringdeque/ringbuffer"
)

// Source represents a source of data that emits elements one at a time.
//
// Pull retrieves the next element, or an error if none is available. Implementations
// return io.EOF when the source is exhausted. Close releases any resources held by
// the source.
type Source[T any] interface {
	Pull(ctx context.Context) (*T, error) // Returns the next element.
	Close() error                         // Lets the consumer tell the source that no more data will be Pull()ed.
}

// canceled reports a cancellation, joined with any error from closing the
// source.
func canceled(ctxErr error, closeErr error) error {
	if closeErr != nil {
		return fmt.Errorf("error closing source while canceling: %w", errors.Join(closeErr, ctxErr))
	}

	return fmt.Errorf("operation canceled: %w", ctxErr)
}

// sourceFunc is a Source implementation backed by function calls.
type sourceFunc[T any] struct {
	srcFunc   func(context.Context) (*T, error)
	closeFunc func() error
}

// Pull calls the underlying source function to retrieve the next element.
// It returns an error if the context is canceled or the source is exhausted.
func (sf *sourceFunc[T]) Pull(ctx context.Context) (*T, error) {
	var val *T

	err := io.EOF
	ctxErr := ctx.Err()

	if (ctxErr == nil) && (sf.srcFunc != nil) {
		val, err = sf.srcFunc(ctx)
		ctxErr = ctx.Err()
	}

	if (err != nil) || (ctxErr != nil) {
		switch {
		case ctxErr != nil:
			return nil, canceled(ctxErr, sf.Close())
		case errors.Is(err, io.EOF):
			if closeErr := sf.Close(); closeErr != nil {
				return nil, fmt.Errorf("error closing exhausted source: %w", closeErr)
			}

			return nil, io.EOF
		default:
			// we expect srcFunc to wrap its own errors.
			return nil, err
		}
	}

	return val, nil
}

// Close releases the resources associated with the source function.
func (sf *sourceFunc[T]) Close() error {
	var err error

	if sf.closeFunc != nil {
		err = sf.closeFunc()
	}

	sf.srcFunc = nil
	sf.closeFunc = nil

	return err
}

// SourceFunc creates a Source backed by function calls.
//
// srcFunc is called to produce elements, and closeFunc (which may be nil) is
// called once when the source is closed.
func SourceFunc[T any](srcFunc func(context.Context) (*T, error), closeFunc func() error) Source[T] {
	return &sourceFunc[T]{
		srcFunc:   srcFunc,
		closeFunc: closeFunc,
	}
}

// SliceSource is a Source that emits the elements of a slice in order. It
// takes ownership of the slice's backing array and pops elements from the
// front, so nothing is copied up front.
type SliceSource[T any] struct {
	data *ringbuffer.Buffer[T]
}

// NewSliceSource returns a new SliceSource that owns data. The caller must not
// use data afterwards.
func NewSliceSource[T any](data []T) *SliceSource[T] {
	return &SliceSource[T]{data: ringbuffer.FromSlice(data)}
}

// Pull retrieves the next element from the slice or io.EOF if exhausted.
func (sp *SliceSource[T]) Pull(ctx context.Context) (*T, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, canceled(ctxErr, sp.Close())
	}

	if sp.data == nil || sp.data.IsEmpty() {
		_ = sp.Close() // Free unused storage

		return nil, io.EOF
	}

	value, err := sp.data.PopFront()
	assertf(err == nil, "PopFront on a non-empty, unborrowed buffer cannot fail: %v", err)

	return &value, nil
}

// Len returns the number of elements not yet pulled.
func (sp *SliceSource[T]) Len() int {
	if sp.data == nil {
		return 0
	}

	return sp.data.Len()
}

// Close releases the remaining elements.
func (sp *SliceSource[T]) Close() error {
	sp.data = nil

	return nil
}

// BufferSource is a Source that drains an existing ring buffer from the
// front. The buffer is borrowed until the source is exhausted or closed;
// closing early destroys the elements not yet pulled.
type BufferSource[T any] struct {
	drainer *ringbuffer.Drainer[T]
}

// NewBufferSource starts draining buf. It fails with ringbuffer.ErrBorrowed if
// buf already has an active iterator.
func NewBufferSource[T any](buf *ringbuffer.Buffer[T]) (*BufferSource[T], error) {
	drainer, err := buf.Drain()
	if err != nil {
		return nil, fmt.Errorf("cannot drain buffer: %w", err)
	}

	return &BufferSource[T]{drainer: drainer}, nil
}

// Pull removes the next element from the buffer, or returns io.EOF once it is
// empty.
func (bs *BufferSource[T]) Pull(ctx context.Context) (*T, error) {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, canceled(ctxErr, bs.Close())
	}

	if bs.drainer == nil {
		return nil, io.EOF
	}

	value, ok := bs.drainer.Next()
	if !ok {
		_ = bs.Close()

		return nil, io.EOF
	}

	return &value, nil
}

// Close ends the drain, destroying any elements not yet pulled, and returns
// the buffer to its owner.
func (bs *BufferSource[T]) Close() error {
	if bs.drainer != nil {
		bs.drainer.Close()
	}

	bs.drainer = nil

	return nil
}

// BufferSink collects elements from a Source into a ring buffer.
type BufferSink[T any] struct {
	dest *ringbuffer.Buffer[T]
}

// NewBufferSink creates a new BufferSink appending to dest. A nil dest gets a
// fresh buffer.
func NewBufferSink[T any](dest *ringbuffer.Buffer[T]) *BufferSink[T] {
	if dest == nil {
		dest = ringbuffer.New[T]()
	}

	return &BufferSink[T]{dest: dest}
}

// Append collects all elements from the source and appends them to the
// buffer.
//
// It stops on context cancellation, an error, or when the source is exhausted.
// If the buffer cannot take another element the source is closed and the
// buffer error is returned; the elements appended so far remain.
func (bs *BufferSink[T]) Append(ctx context.Context, input Source[T]) (*ringbuffer.Buffer[T], error) {
	ctxErr := ctx.Err()

	for {
		var next *T

		var err error

		if ctxErr == nil {
			next, err = input.Pull(ctx)
			ctxErr = ctx.Err()
		}

		if (err != nil) || (ctxErr != nil) {
			switch {
			case ctxErr != nil:
				return nil, canceled(ctxErr, input.Close())
			case errors.Is(err, io.EOF):
				return bs.dest, nil
			default:
				return nil, fmt.Errorf("data pull failed: %w", err)
			}
		}

		if err := bs.dest.PushBack(*next); err != nil {
			return nil, errors.Join(fmt.Errorf("sink buffer rejected element: %w", err), input.Close())
		}
	}
}

// Mapper applies a transformation function to elements from a Source.
type Mapper[TIn, TOut any] struct {
	input Source[TIn]
	mapFn func(TIn) TOut
}

// NewMapper returns a new Mapper wrapping the given Source.
func NewMapper[TIn, TOut any](input Source[TIn], mapFn func(TIn) TOut) *Mapper[TIn, TOut] {
	return &Mapper[TIn, TOut]{input: input, mapFn: mapFn}
}

// Pull retrieves the next element from the input Source and returns the result
// of applying the mapping function to it.
func (mt *Mapper[TIn, TOut]) Pull(ctx context.Context) (*TOut, error) {
	var nextIn *TIn

	err := io.EOF
	ctxErr := ctx.Err()

	if (ctxErr == nil) && (mt.input != nil) {
		nextIn, err = mt.input.Pull(ctx)
		ctxErr = ctx.Err()
	}

	if (err != nil) || (ctxErr != nil) {
		switch {
		case ctxErr != nil:
			return nil, canceled(ctxErr, mt.Close())
		case errors.Is(err, io.EOF):
			mt.input = nil // Source should have already closed itself
			_ = mt.Close()

			return nil, io.EOF
		default:
			return nil, fmt.Errorf("data pull failed: %w", err)
		}
	}

	nextOut := mt.mapFn(*nextIn)

	return &nextOut, nil
}

// Close releases resources associated with the Mapper.
func (mt *Mapper[TIn, TOut]) Close() error {
	var err error

	if mt.input != nil {
		err = mt.input.Close()
	}

	mt.input = nil

	return err
}
