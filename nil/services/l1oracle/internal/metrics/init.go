package metrics

import (
	"os"

	"github.com/NilFoundation/l1oracle/nil/internal/telemetry"
	"github.com/NilFoundation/l1oracle/nil/internal/telemetry/telattr"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const Namespace = "l1oracle"

// Metrics is implemented by every component-level metrics holder.
type Metrics interface {
	Init(name string, meter telemetry.Meter, attrs metric.MeasurementOption) error
}

// InitMetrics creates the instruments of mt under "<namespace>.<component>" on the global meter provider.
func InitMetrics(mt Metrics, namespace, component string) error {
	return InitMetricsWithMeter(mt, telemetry.NewMeter(namespace), namespace, component)
}

func InitMetricsWithMeter(mt Metrics, meter telemetry.Meter, namespace, component string) error {
	hostName, err := os.Hostname()
	if err != nil {
		return err
	}

	attr := telattr.With(
		attribute.String("host.name", hostName),
		telattr.Component(component),
	)

	return mt.Init(
		namespace+"."+component,
		meter,
		attr,
	)
}
