package cmdflags

import (
	"github.com/NilFoundation/l1oracle/nil/internal/telemetry"
	"github.com/spf13/pflag"
)

func AddTelemetry(fset *pflag.FlagSet, config *telemetry.Config) {
	fset.IntVar(&config.PrometheusPort, "metrics-port", config.PrometheusPort,
		"port of the prometheus /metrics endpoint; 0 to disable")
	fset.BoolVar(&config.ExportMetrics, "export-metrics", config.ExportMetrics, "export metrics via grpc")
	fset.StringVar(&config.GrpcEndpoint, "otlp-endpoint", config.GrpcEndpoint, "OTLP/gRPC collector endpoint")
}
