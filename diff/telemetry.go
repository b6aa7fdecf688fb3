package diff

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const (
	spanCompareLibraries = "libdiff.compare_libraries"
	spanCompareVersions  = "libdiff.compare_versions"

	metricComparisons    = "libdiff.comparisons"
	metricChangelogItems = "libdiff.changelog_items"
	metricDuration       = "libdiff.comparison.duration"
)

// instruments holds the metric instruments shared by all comparisons.
type instruments struct {
	// comparisons counts library comparisons by outcome.
	comparisons metric.Int64Counter

	// changelogItems counts changelog items produced.
	changelogItems metric.Int64Counter

	// duration records comparison duration in milliseconds.
	duration metric.Float64Histogram
}

func newInstruments(meter metric.Meter) (*instruments, error) {
	m := &instruments{}
	var err error

	m.comparisons, err = meter.Int64Counter(
		metricComparisons,
		metric.WithDescription("Number of library comparisons performed"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create comparisons counter: %w", err)
	}

	m.changelogItems, err = meter.Int64Counter(
		metricChangelogItems,
		metric.WithDescription("Number of changelog items produced"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create changelog items counter: %w", err)
	}

	m.duration, err = meter.Float64Histogram(
		metricDuration,
		metric.WithDescription("Library comparison duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}

	return m, nil
}

// startSpan opens a comparison span tagged with the version pair.
func (c *Comparer) startSpan(ctx context.Context, name, firstVersion, secondVersion string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append([]attribute.KeyValue{
		attribute.String("libdiff.version.first", firstVersion),
		attribute.String("libdiff.version.second", secondVersion),
	}, attrs...)
	return c.tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// record closes out one library comparison on span and in the instruments.
func (c *Comparer) record(ctx context.Context, span trace.Span, start time.Time, items int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("libdiff.changelog_items", items))
		span.SetStatus(codes.Ok, "")
	}

	opts := metric.WithAttributes(attribute.String("outcome", outcome))
	c.metrics.comparisons.Add(ctx, 1, opts)
	c.metrics.changelogItems.Add(ctx, int64(items))
	c.metrics.duration.Record(ctx, float64(time.Since(start).Microseconds())/1000, opts)
}
