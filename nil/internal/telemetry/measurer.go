package telemetry

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type (
	Counter   = metric.Int64Counter
	Histogram = metric.Int64Histogram
	Gauge     = metric.Int64Gauge
)

// Measurer counts operations and records how long each of them took.
// It is not thread-safe.
type Measurer struct {
	counter    Counter
	histogram  Histogram
	attributes attribute.Set
	clock      clockwork.Clock
	startTime  time.Time
}

func NewMeasurer(meter Meter, name string, clock clockwork.Clock, attrs ...attribute.KeyValue) (*Measurer, error) {
	counter, err := meter.Int64Counter(name)
	if err != nil {
		return nil, err
	}
	histogram, err := meter.Int64Histogram(name+".duration", metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Measurer{
		counter:    counter,
		histogram:  histogram,
		attributes: attribute.NewSet(attrs...),
		clock:      clock,
		startTime:  clock.Now(),
	}, nil
}

func (m *Measurer) Restart() {
	m.startTime = m.clock.Now()
}

// Measure records the operation started by the last Restart; extra attributes describe its outcome.
func (m *Measurer) Measure(ctx context.Context, outcome ...attribute.KeyValue) time.Duration {
	elapsed := m.clock.Since(m.startTime)

	opts := []metric.AddOption{metric.WithAttributeSet(m.attributes)}
	recordOpts := []metric.RecordOption{metric.WithAttributeSet(m.attributes)}
	if len(outcome) > 0 {
		set := attribute.NewSet(outcome...)
		opts = append(opts, metric.WithAttributeSet(set))
		recordOpts = append(recordOpts, metric.WithAttributeSet(set))
	}

	m.counter.Add(ctx, 1, opts...)
	m.histogram.Record(ctx, elapsed.Milliseconds(), recordOpts...)
	return elapsed
}
