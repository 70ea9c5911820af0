package internal

type Config struct {
	ServiceName string `yaml:"serviceName,omitempty" mapstructure:"serviceName"`

	ExportMetrics bool   `yaml:"exportMetrics,omitempty" mapstructure:"exportMetrics"`
	GrpcEndpoint  string `yaml:"grpcEndpoint,omitempty" mapstructure:"grpcEndpoint"`

	// 0 disables the /metrics endpoint
	PrometheusPort int `yaml:"prometheusPort,omitempty" mapstructure:"prometheusPort"`
}
