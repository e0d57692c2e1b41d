// Package telemetry provides hierarchical timing collection. Collectors
// travel by context so instrumented code needs no extra parameters, and
// the default collector does nothing.
package telemetry

import (
	"context"
)

type contextKey struct{}

var collectorKey = contextKey{}

// Collector receives timing data from instrumented operations.
type Collector interface {
	// Start begins timing a named operation. End the returned timer when
	// the operation completes.
	Start(name string) Timer
}

// Timer tracks one operation. Nested operations hang off Child.
type Timer interface {
	End()
	Child(name string) Timer
}

// WithCollector attaches a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext returns the context's collector, or a no-op collector when
// none is attached.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}

type noOpCollector struct{}

func (noOpCollector) Start(name string) Timer { return noOpTimer{} }

type noOpTimer struct{}

func (noOpTimer) End() {}

func (noOpTimer) Child(name string) Timer { return noOpTimer{} }
