package telemetry

import (
	"context"
	"os"

	"github.com/NilFoundation/l1oracle/nil/internal/telemetry/internal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type (
	Config = internal.Config

	Meter = metric.Meter
)

func NewDefaultConfig() *Config {
	// https://opentelemetry.io/docs/languages/sdk-configuration/general/#otel_service_name
	serviceName := os.Getenv("OTEL_SERVICE_NAME")
	if serviceName == "" {
		serviceName = "l1oracle"
	}
	return &Config{
		ServiceName: serviceName,
	}
}

// Init installs the global meter provider. With a nil config or exporting disabled
// the otel no-op provider stays in place and every instrument is free to use.
func Init(ctx context.Context, config *Config) error {
	if config == nil {
		return nil
	}

	if err := internal.StartPrometheusServer(config.PrometheusPort); err != nil {
		return err
	}

	return internal.InitMetrics(ctx, config)
}

func Shutdown(ctx context.Context) {
	internal.ShutdownMetrics(ctx)
	internal.StopPrometheusServer(ctx)
}

func NewMeter(name string) Meter {
	return otel.Meter(name)
}
