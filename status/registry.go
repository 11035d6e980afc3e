// Package status is the in-process metrics registry: counters and gauges written by the loop, read by the reporter
package status

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Registry is the session metrics facade
// Writers cache pointers at construction and update atomics directly
type Registry struct {
	Bools  *MetricMap[atomic.Bool]
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[Float]

	mu         sync.Mutex
	collectors []func(*Registry)
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:  NewMetricMap[atomic.Bool](),
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[Float](),
	}
}

// AddCollector registers fn to refresh pulled metrics before each snapshot
// fn runs on the reader's goroutine and must only touch thread-safe state
func (r *Registry) AddCollector(fn func(*Registry)) {
	r.mu.Lock()
	r.collectors = append(r.collectors, fn)
	r.mu.Unlock()
}

// Collect runs every collector
func (r *Registry) Collect() {
	r.mu.Lock()
	fns := append([]func(*Registry)(nil), r.collectors...)
	r.mu.Unlock()
	for _, fn := range fns {
		fn(r)
	}
}

// TotalCount returns the number of metrics across all kinds
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count()
}

// Fields collects and returns every metric as zap fields, bools then ints then floats, each by name
func (r *Registry) Fields() []zap.Field {
	r.Collect()
	fields := make([]zap.Field, 0, r.TotalCount())
	r.Bools.Range(func(name string, v *atomic.Bool) {
		fields = append(fields, zap.Bool(name, v.Load()))
	})
	r.Ints.Range(func(name string, v *atomic.Int64) {
		fields = append(fields, zap.Int64(name, v.Load()))
	})
	r.Floats.Range(func(name string, v *Float) {
		fields = append(fields, zap.Float64(name, v.Load()))
	})
	return fields
}
