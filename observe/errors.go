package observe

import "errors"

// Configuration errors returned by Config.Validate.
var (
	// ErrMissingServiceName indicates Config.ServiceName is empty.
	ErrMissingServiceName = errors.New("observe: service name is required")

	// ErrInvalidSamplePct indicates Tracing.SamplePct is outside [0.0, 1.0].
	ErrInvalidSamplePct = errors.New("observe: sample percentage must be between 0.0 and 1.0")

	// ErrInvalidTracingExporter indicates an unknown tracing exporter name.
	ErrInvalidTracingExporter = errors.New("observe: invalid tracing exporter")

	// ErrInvalidMetricsExporter indicates an unknown metrics exporter name.
	ErrInvalidMetricsExporter = errors.New("observe: invalid metrics exporter")

	// ErrInvalidLogLevel indicates an unknown log level.
	ErrInvalidLogLevel = errors.New("observe: invalid log level")
)

// Exporter and level names accepted by Config.Validate. The empty string is
// accepted everywhere and means the subsystem is left disabled.
var (
	// ValidTracingExporters lists accepted tracing exporter names.
	ValidTracingExporters = []string{"otlp", "stdout", "none", ""}

	// ValidMetricsExporters lists accepted metrics exporter names.
	ValidMetricsExporters = []string{"otlp", "prometheus", "stdout", "none", ""}

	// ValidLogLevels lists accepted log level names.
	ValidLogLevels = []string{"debug", "info", "warn", "error", ""}
)

// RedactedFields lists log field keys whose values are replaced with a
// redaction marker. Membership lookups run on the gateway's authentication
// boundary; consumer credential material must never reach log output.
var RedactedFields = []string{
	"password",
	"secret",
	"token",
	"api_key",
	"apiKey",
	"credential",
}
