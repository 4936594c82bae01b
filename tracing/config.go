package tracing

import "time"

const (
	reconnectionPeriod = 30 * time.Second
	clientTimeout      = 30 * time.Second
	maxQueueSize       = 10000
	batchTimeout       = 5 * time.Second
	maxExportBatchSize = 1024
	shutdownTimeout    = 5 * time.Second
)

// Config holds the configuration for span export.
type Config struct {
	// Enable turns on export of spans to an OTLP collector. When false the
	// global tracer provider is a no-op.
	Enable bool `yaml:"enable" default:"false"`

	// SampleRate is the fraction of traces kept, between 0 and 1.
	SampleRate float64 `yaml:"sample_rate" validate:"gte=0,lte=1" default:"1"`

	// ExporterHost is the hostname or IP address of the OTLP gRPC collector.
	ExporterHost string `yaml:"exporter_host" validate:"required" default:"localhost"`

	// ExporterPort is the port of the OTLP gRPC collector.
	ExporterPort int `yaml:"exporter_port" validate:"gt=0,lte=65535" default:"4317"`

	// Headers are sent with every export request, usually for authentication.
	Headers map[string]string `yaml:"headers" mask:"true"`

	// Tags are added as resource attributes to all spans.
	Tags map[string]string `yaml:"tags"`
}
