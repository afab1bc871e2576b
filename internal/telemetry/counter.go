package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/classicvalues/phased-table-translation/pkg/translate"
)

// Counter adapts an otel Int64Counter to the translate.Counter
// interface. Increments carry the derived counter name as an
// attribute, so per-stage failure counts stay distinguishable on a
// single instrument. Safe for concurrent use.
type Counter struct {
	counter metric.Int64Counter
}

// NewCounter creates a Counter on the global meter provider.
func NewCounter() (*Counter, error) {
	c, err := otel.Meter(tracerName).Int64Counter("translate.stage.errors",
		metric.WithDescription("element translation failures per stage"),
	)
	if err != nil {
		return nil, err
	}
	return &Counter{counter: c}, nil
}

// IncrementCounter records one failure under name.
func (c *Counter) IncrementCounter(name string) {
	c.counter.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("counter", name)))
}

var _ translate.Counter = (*Counter)(nil)
