package fixtures

import (
	"context"

	"github.com/NilFoundation/l1oracle/nil/internal/telemetry"
	"github.com/NilFoundation/l1oracle/nil/internal/telemetry/telattr"
	"github.com/NilFoundation/l1oracle/nil/services/l1oracle/internal/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type TableMetrics interface {
	RecordInserts(ctx context.Context, count int)
	RecordReads(ctx context.Context, count int)
}

const (
	opLabel = "operation"

	opInsert = "insert"
	opRead   = "read"
)

type tableMetrics struct {
	attrs     metric.MeasurementOption
	opCounter telemetry.Counter
}

func NewTableMetrics() (TableMetrics, error) {
	tm := &tableMetrics{}
	if err := metrics.InitMetrics(tm, metrics.Namespace, "fixtures"); err != nil {
		return nil, err
	}
	return tm, nil
}

func (tm *tableMetrics) Init(name string, meter telemetry.Meter, attrs metric.MeasurementOption) error {
	var err error

	tm.opCounter, err = meter.Int64Counter(name + ".table_operations")
	if err != nil {
		return err
	}

	tm.attrs = attrs
	return nil
}

func (tm *tableMetrics) RecordInserts(ctx context.Context, count int) {
	tm.record(ctx, opInsert, count)
}

func (tm *tableMetrics) RecordReads(ctx context.Context, count int) {
	tm.record(ctx, opRead, count)
}

func (tm *tableMetrics) record(ctx context.Context, op string, count int) {
	tm.opCounter.Add(
		ctx,
		int64(count),
		tm.attrs,
		telattr.With(
			attribute.String(opLabel, op),
			attribute.String("table_name", string(fixturesTable)),
		),
	)
}
