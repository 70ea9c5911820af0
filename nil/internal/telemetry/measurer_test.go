package telemetry

import (
	"testing"
	"time"

	"github.com/NilFoundation/l1oracle/nil/internal/telemetry/telattr"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestMeasurer(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	clock := clockwork.NewFakeClock()

	m, err := NewMeasurer(provider.Meter("test"), "l1oracle.await", clock, telattr.Component("session"))
	require.NoError(t, err)

	clock.Advance(250 * time.Millisecond)
	require.Equal(t, 250*time.Millisecond, m.Measure(t.Context(), telattr.Found(true)))

	m.Restart()
	clock.Advance(50 * time.Millisecond)
	require.Equal(t, 50*time.Millisecond, m.Measure(t.Context(), telattr.Found(false)))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(t.Context(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	var count, sum int64
	for _, metric := range rm.ScopeMetrics[0].Metrics {
		switch data := metric.Data.(type) {
		case metricdata.Sum[int64]:
			require.Equal(t, "l1oracle.await", metric.Name)
			for _, dp := range data.DataPoints {
				count += dp.Value
			}
		case metricdata.Histogram[int64]:
			require.Equal(t, "l1oracle.await.duration", metric.Name)
			for _, dp := range data.DataPoints {
				sum += dp.Sum
			}
		}
	}
	require.Equal(t, int64(2), count)
	require.Equal(t, int64(300), sum)
}
