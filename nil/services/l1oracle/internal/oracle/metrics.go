package oracle

import (
	"context"

	"github.com/NilFoundation/l1oracle/nil/internal/telemetry"
	"github.com/NilFoundation/l1oracle/nil/internal/telemetry/telattr"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/metrics"
	"go.opentelemetry.io/otel/metric"
)

type Metrics interface {
	AddCall(ctx context.Context, method string)
	AddCompletedCycle(ctx context.Context)
	AddEnqueued(ctx context.Context)
	SetQueueLength(ctx context.Context, length int)
}

type oracleMetrics struct {
	attrs metric.MeasurementOption

	calls       telemetry.Counter
	cycles      telemetry.Counter
	enqueued    telemetry.Counter
	queueLength telemetry.Gauge
}

func NewMetrics() (Metrics, error) {
	m := &oracleMetrics{}
	if err := metrics.InitMetrics(m, metrics.Namespace, "oracle"); err != nil {
		return nil, err
	}
	return m, nil
}

func NewMetricsWithMeter(meter telemetry.Meter) (Metrics, error) {
	m := &oracleMetrics{}
	if err := metrics.InitMetricsWithMeter(m, meter, metrics.Namespace, "oracle"); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *oracleMetrics) Init(name string, meter telemetry.Meter, attrs metric.MeasurementOption) error {
	var err error

	m.calls, err = meter.Int64Counter(name + ".rpc_calls")
	if err != nil {
		return err
	}

	m.cycles, err = meter.Int64Counter(name + ".completed_cycles")
	if err != nil {
		return err
	}

	m.enqueued, err = meter.Int64Counter(name + ".enqueued_snapshots")
	if err != nil {
		return err
	}

	m.queueLength, err = meter.Int64Gauge(name + ".queue_length")
	if err != nil {
		return err
	}

	m.attrs = attrs
	return nil
}

func (m *oracleMetrics) AddCall(ctx context.Context, method string) {
	m.calls.Add(ctx, 1, m.attrs, telattr.With(telattr.RpcMethod(method)))
}

func (m *oracleMetrics) AddCompletedCycle(ctx context.Context) {
	m.cycles.Add(ctx, 1, m.attrs)
}

func (m *oracleMetrics) AddEnqueued(ctx context.Context) {
	m.enqueued.Add(ctx, 1, m.attrs)
}

func (m *oracleMetrics) SetQueueLength(ctx context.Context, length int) {
	m.queueLength.Record(ctx, int64(length), m.attrs)
}
