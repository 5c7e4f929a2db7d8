// Package metrics exports ring buffer reallocation activity to Prometheus.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/loren-osborn/ringdeque/ringbuffer"
)

// Collector is a ringbuffer.Observer that records every reallocation of the
// buffers it is attached to, and a prometheus.Collector that exports them.
// Attach it with ringbuffer.WithObserver.
type Collector struct {
	// Counter metrics
	resizes   *prometheus.CounterVec // by direction: grow or shrink
	relocated prometheus.Counter

	// Gauge metrics - updated on every reallocation
	capacity prometheus.Gauge
}

var (
	_ ringbuffer.Observer  = (*Collector)(nil)
	_ prometheus.Collector = (*Collector)(nil)
)

// NewCollector creates the metrics for component and registers them with reg.
// A nil reg leaves the metrics unregistered, which is useful in tests.
func NewCollector(reg prometheus.Registerer, component string) (*Collector, error) {
	labels := prometheus.Labels{"component": component}

	c := &Collector{
		resizes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "ringdeque",
			Subsystem:   "buffer",
			Name:        "resizes_total",
			ConstLabels: labels,
			Help:        "Total number of backing store reallocations",
		}, []string{"direction"}),
		relocated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "ringdeque",
			Subsystem:   "buffer",
			Name:        "relocated_elements_total",
			ConstLabels: labels,
			Help:        "Total number of elements moved by reallocations",
		}),
		capacity: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   "ringdeque",
			Subsystem:   "buffer",
			Name:        "capacity",
			ConstLabels: labels,
			Help:        "Capacity of the most recently reallocated buffer",
		}),
	}

	if reg == nil {
		return c, nil
	}

	if err := reg.Register(c); err != nil {
		return nil, fmt.Errorf("register ring buffer metrics for %q: %w", component, err)
	}

	return c, nil
}

// Resized implements ringbuffer.Observer.
func (c *Collector) Resized(oldCap, newCap, moved int) {
	direction := "grow"
	if newCap < oldCap {
		direction = "shrink"
	}

	c.resizes.WithLabelValues(direction).Inc()
	c.relocated.Add(float64(moved))
	c.capacity.Set(float64(newCap))
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	c.resizes.Describe(ch)
	c.relocated.Describe(ch)
	c.capacity.Describe(ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.resizes.Collect(ch)
	c.relocated.Collect(ch)
	c.capacity.Collect(ch)
}
