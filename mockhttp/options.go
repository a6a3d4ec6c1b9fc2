package mockhttp

import (
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	// scope is the instrumentation scope name for OpenTelemetry.
	scope = "github.com/kroma-labs/mockhttp/mockhttp"

	// defaultName labels a Context when WithName is not used.
	defaultName = "mockhttp"
)

// defaultSchemes are the URL schemes intercepted unless WithSchemes is used.
var defaultSchemes = []string{"http", "https"}

// config holds the settings shared by a Context and its interceptor.
type config struct {
	// Logger receives interception and lifecycle events.
	// Default: zerolog.Nop()
	Logger zerolog.Logger

	// Name labels the Context in logs, spans, and Prometheus metrics.
	Name string

	// Schemes lists the URL schemes the interceptor accepts.
	Schemes []string

	// TracerProvider is the tracer provider to use.
	// If not set, uses the global provider via otel.GetTracerProvider().
	TracerProvider trace.TracerProvider

	// MeterProvider is the meter provider to use.
	// If not set, uses the global provider via otel.GetMeterProvider().
	MeterProvider metric.MeterProvider

	// Tracer is created from TracerProvider once options are applied.
	Tracer trace.Tracer

	// Metrics holds the metric instruments. Nil if creation failed.
	Metrics *metrics
}

// newConfig creates a config with defaults and applies options.
func newConfig(opts ...Option) *config {
	cfg := &config{
		Logger:         zerolog.Nop(),
		Name:           defaultName,
		Schemes:        defaultSchemes,
		TracerProvider: otel.GetTracerProvider(),
		MeterProvider:  otel.GetMeterProvider(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	cfg.Tracer = cfg.TracerProvider.Tracer(scope)

	// Instruments are optional; a nil *metrics records nothing.
	cfg.Metrics, _ = newMetrics(cfg.MeterProvider.Meter(scope))

	return cfg
}

// baseAttributes returns attributes common to every span and metric.
func (cfg *config) baseAttributes(id string) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("mockhttp.context.name", cfg.Name),
		attribute.String("mockhttp.context.id", id),
	}
}

// Option configures a Context.
type Option func(*config)

// WithLogger sets the logger for interception and lifecycle events.
//
// Intercepted requests are logged at debug level; requests nothing was
// registered for are logged at warn level together with a cURL command that
// reproduces them.
//
// Example:
//
//	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	ctx := mockhttp.Start(session, mockhttp.WithLogger(logger))
func WithLogger(l zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.Logger = l
	}
}

// WithName labels the Context. The name shows up as the
// "mockhttp.context.name" attribute and the "context" Prometheus label.
func WithName(name string) Option {
	return func(cfg *config) {
		cfg.Name = name
	}
}

// WithSchemes restricts interception to the given URL schemes.
// Default: http and https.
//
// Example:
//
//	// Only plain HTTP is mocked; HTTPS goes to the next handler.
//	ctx := mockhttp.Start(session, mockhttp.WithSchemes("http"))
func WithSchemes(schemes ...string) Option {
	return func(cfg *config) {
		cfg.Schemes = schemes
	}
}

// WithTracerProvider sets a custom OpenTelemetry TracerProvider.
// If not called, the global provider from otel.GetTracerProvider() is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(cfg *config) {
		cfg.TracerProvider = tp
	}
}

// WithMeterProvider sets a custom OpenTelemetry MeterProvider.
// If not called, the global provider from otel.GetMeterProvider() is used.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(cfg *config) {
		cfg.MeterProvider = mp
	}
}
