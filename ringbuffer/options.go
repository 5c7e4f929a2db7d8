package ringbuffer

// Option configures a Buffer at construction time.
type Option[T any] func(*options[T])

type options[T any] struct {
	capacity    int      // Initial number of slots
	maxCapacity int      // Upper bound on growth; 0 means unbounded
	release     func(T)  // Called once for each element the buffer destroys
	observer    Observer // Notified after every reallocation
}

// WithCapacity pre-allocates exactly capacity slots, so the first capacity
// insertions never reallocate. A negative capacity makes New panic.
func WithCapacity[T any](capacity int) Option[T] {
	return func(opts *options[T]) {
		opts.capacity = capacity
	}
}

// WithMaxCapacity bounds the capacity growth may reach. Insertions that would
// need more room fail with ErrAllocation instead of reallocating. Zero or a
// negative value removes the bound. A bound below the initial capacity (or
// the capacity of the slice handed to FromSlice) is raised to it.
func WithMaxCapacity[T any](maxCapacity int) Option[T] {
	return func(opts *options[T]) {
		opts.maxCapacity = max(maxCapacity, 0)
	}
}

// WithRelease registers a function that receives every element the buffer
// destroys on its own: by Clear, Truncate, Close, or an abandoned Drainer.
// Elements handed to the caller (pops, removals, conversions) are never
// passed to it. Each element is released at most once.
func WithRelease[T any](release func(T)) Option[T] {
	return func(opts *options[T]) {
		opts.release = release
	}
}

// WithObserver registers an Observer that is notified after each reallocation
// of the backing store.
func WithObserver[T any](observer Observer) Option[T] {
	return func(opts *options[T]) {
		opts.observer = observer
	}
}

func applyOptions[T any](opts ...Option[T]) options[T] {
	var result options[T]

	for _, opt := range opts {
		if opt != nil {
			opt(&result)
		}
	}

	if result.capacity < 0 {
		panic("capacity must not be negative")
	}

	if result.maxCapacity > 0 && result.maxCapacity < result.capacity {
		result.maxCapacity = result.capacity
	}

	return result
}
