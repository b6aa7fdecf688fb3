package libdiff

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/zero-day-ai/libdiff/changelog"
	"github.com/zero-day-ai/libdiff/config"
	"github.com/zero-day-ai/libdiff/diff"
)

// Option configures a Service.
type Option func(*serviceConfig)

type serviceConfig struct {
	showMitigations bool
	listComparison  diff.ListComparison
	relationTree    diff.RelationTreeFunc
	properties      config.PropertySource
	filter          *changelog.Filter

	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter
}

// WithLogger sets a custom logger for the service.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *serviceConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer for comparison spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *serviceConfig) {
		c.tracer = tracer
	}
}

// WithMeter sets an OpenTelemetry meter for comparison metrics.
func WithMeter(meter metric.Meter) Option {
	return func(c *serviceConfig) {
		c.meter = meter
	}
}

// WithShowMitigations sets the default mitigation visibility.
func WithShowMitigations(show bool) Option {
	return func(c *serviceConfig) {
		c.showMitigations = show
	}
}

// WithListComparison sets how list-valued fields are compared.
func WithListComparison(mode diff.ListComparison) Option {
	return func(c *serviceConfig) {
		c.listComparison = mode
	}
}

// WithRelationTree replaces the relation tree builder.
func WithRelationTree(fn diff.RelationTreeFunc) Option {
	return func(c *serviceConfig) {
		c.relationTree = fn
	}
}

// WithProperties sets a runtime property source consulted on every call.
// A value it holds overrides WithShowMitigations.
func WithProperties(props config.PropertySource) Option {
	return func(c *serviceConfig) {
		c.properties = props
	}
}

// WithFilter restricts CompactChangelog reports to entries accepted by f.
func WithFilter(f *changelog.Filter) Option {
	return func(c *serviceConfig) {
		c.filter = f
	}
}

// FromConfig returns the options described by cfg.
func FromConfig(cfg *config.Config) []Option {
	return []Option{
		WithShowMitigations(cfg.ShowMitigationValues),
		WithListComparison(diff.ListComparison(cfg.ListComparison)),
	}
}
