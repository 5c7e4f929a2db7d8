package ringbuffer

import (
	"context"
	"log/slog"
)

// Observer is notified after a Buffer replaces its backing store. oldCap and
// newCap are the capacities before and after; moved is the number of
// elements relocated. Observers run synchronously on the owner's goroutine.
type Observer interface {
	Resized(oldCap, newCap, moved int)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(oldCap, newCap, moved int)

// Resized calls f.
func (f ObserverFunc) Resized(oldCap, newCap, moved int) {
	f(oldCap, newCap, moved)
}

// LogObserver returns an Observer that logs each reallocation at debug level.
// A nil logger uses slog.Default().
func LogObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}

	return ObserverFunc(func(oldCap, newCap, moved int) {
		direction := "grow"
		if newCap < oldCap {
			direction = "shrink"
		}

		logger.LogAttrs(context.Background(), slog.LevelDebug, "ring buffer reallocated",
			slog.String("direction", direction),
			slog.Int("old_cap", oldCap),
			slog.Int("new_cap", newCap),
			slog.Int("moved", moved),
		)
	})
}

// Observers fans a notification out to several observers in order.
func Observers(observers ...Observer) Observer {
	return ObserverFunc(func(oldCap, newCap, moved int) {
		for _, o := range observers {
			if o != nil {
				o.Resized(oldCap, newCap, moved)
			}
		}
	})
}
