package factory

import (
	"context"
	"sort"
	"sync"

	"github.com/lychee-technology/formdesk/internal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// NewOTelEmitter reports formdesk measurements as OpenTelemetry counters on the
// global meter provider. Counter names are prefixed with namespace.
func NewOTelEmitter(namespace string) internal.TelemetryEmitter {
	meter := otel.Meter("github.com/lychee-technology/formdesk")
	var mu sync.Mutex
	counters := make(map[string]metric.Int64Counter)

	return func(ctx context.Context, name string, labels map[string]string, value int64) {
		mu.Lock()
		counter, ok := counters[name]
		if !ok {
			var err error
			counter, err = meter.Int64Counter(namespace + "." + name)
			if err != nil {
				mu.Unlock()
				zap.S().Warnw("failed to create counter", "name", name, "error", err)
				return
			}
			counters[name] = counter
		}
		mu.Unlock()

		keys := make([]string, 0, len(labels))
		for k := range labels {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		attrs := make([]attribute.KeyValue, 0, len(keys))
		for _, k := range keys {
			attrs = append(attrs, attribute.String(k, labels[k]))
		}
		counter.Add(ctx, value, metric.WithAttributes(attrs...))
	}
}
