package diff

import (
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/zero-day-ai/libdiff/differr"
	"github.com/zero-day-ai/libdiff/snapshot"
)

// RelationTreeFunc flattens the relation table of a library into one tree per
// risk pattern, keyed by risk pattern ref.
type RelationTreeFunc func(*snapshot.Library) map[string]*snapshot.RiskPatternItem

// ListComparison selects how list-valued fields are compared.
type ListComparison string

const (
	// ListOrdered joins list values as stored. Reordering is reported as a change.
	ListOrdered ListComparison = "ordered"

	// ListSorted sorts list values before joining.
	ListSorted ListComparison = "sorted"
)

// IsValid returns true if the mode is ordered or sorted.
func (l ListComparison) IsValid() bool {
	return l == ListOrdered || l == ListSorted
}

// Option configures a Comparer.
type Option func(*Comparer)

// WithShowMitigations controls whether changed mitigation values produce
// nodes and changelog items.
func WithShowMitigations(show bool) Option {
	return func(c *Comparer) {
		c.showMitigations = show
	}
}

// WithListComparison sets how list-valued fields are compared.
// Defaults to ListOrdered.
func WithListComparison(mode ListComparison) Option {
	return func(c *Comparer) {
		c.listComparison = mode
	}
}

// WithRelationTree replaces the relation tree builder.
// Defaults to snapshot.BuildRelationTree.
func WithRelationTree(fn RelationTreeFunc) Option {
	return func(c *Comparer) {
		c.relationTree = fn
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Comparer) {
		c.logger = logger
	}
}

// WithTracer sets the OpenTelemetry tracer. Defaults to a no-op tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Comparer) {
		c.tracer = tracer
	}
}

// WithMeter sets the OpenTelemetry meter. Defaults to a no-op meter.
func WithMeter(meter metric.Meter) Option {
	return func(c *Comparer) {
		c.meter = meter
	}
}

// Comparer compares snapshots. It holds only configuration and is safe for
// concurrent use.
type Comparer struct {
	showMitigations bool
	listComparison  ListComparison
	relationTree    RelationTreeFunc

	logger  *slog.Logger
	tracer  trace.Tracer
	meter   metric.Meter
	metrics *instruments
}

// New returns a Comparer configured by opts.
func New(opts ...Option) (*Comparer, error) {
	c := &Comparer{
		listComparison: ListOrdered,
		relationTree:   snapshot.BuildRelationTree,
		logger:         slog.Default(),
		tracer:         tracenoop.NewTracerProvider().Tracer("libdiff"),
		meter:          metricnoop.NewMeterProvider().Meter("libdiff"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if !c.listComparison.IsValid() {
		return nil, differr.NewConfiguration(opNew,
			fmt.Errorf("%w: unknown list comparison %q", differr.ErrInvalidConfig, c.listComparison))
	}
	if c.relationTree == nil {
		return nil, differr.NewConfiguration(opNew,
			fmt.Errorf("%w: relation tree function is required", differr.ErrInvalidConfig))
	}

	metrics, err := newInstruments(c.meter)
	if err != nil {
		return nil, differr.NewConfiguration(opNew, err)
	}
	c.metrics = metrics

	return c, nil
}

// WithMitigations returns a copy of c with mitigation visibility set to show.
func (c *Comparer) WithMitigations(show bool) *Comparer {
	cp := *c
	cp.showMitigations = show
	return &cp
}

// ShowMitigations reports whether mitigation changes are rendered.
func (c *Comparer) ShowMitigations() bool {
	return c.showMitigations
}
