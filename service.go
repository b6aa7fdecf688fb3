package libdiff

import (
	"context"
	"log/slog"

	"github.com/zero-day-ai/libdiff/changelog"
	"github.com/zero-day-ai/libdiff/config"
	"github.com/zero-day-ai/libdiff/diff"
	"github.com/zero-day-ai/libdiff/differr"
	"github.com/zero-day-ai/libdiff/graph"
	"github.com/zero-day-ai/libdiff/snapshot"
	"github.com/zero-day-ai/libdiff/store"
)

const (
	opCompareLibraries       = "libdiff.CompareLibraries"
	opCompareLibrarySpecific = "libdiff.CompareLibrarySpecific"
	opCompareVersions        = "libdiff.CompareVersions"
	opCompactChangelog       = "libdiff.CompactChangelog"
	opSummarizeLibraries     = "libdiff.SummarizeLibraries"
	opRelationsChangelog     = "libdiff.RelationsChangelog"
)

// Service answers comparison requests over snapshots loaded from a
// store.Source. It is safe for concurrent use.
type Service struct {
	source     store.Source
	comparer   *diff.Comparer
	properties config.PropertySource
	filter     *changelog.Filter
	logger     *slog.Logger
}

// New returns a Service reading snapshots from src.
func New(src store.Source, opts ...Option) (*Service, error) {
	if src == nil {
		return nil, differr.NewConfiguration("libdiff.New", differr.ErrInvalidConfig)
	}

	cfg := &serviceConfig{
		listComparison: diff.ListOrdered,
		relationTree:   snapshot.BuildRelationTree,
		logger:         slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	diffOpts := []diff.Option{
		diff.WithShowMitigations(cfg.showMitigations),
		diff.WithListComparison(cfg.listComparison),
		diff.WithRelationTree(cfg.relationTree),
		diff.WithLogger(cfg.logger),
	}
	if cfg.tracer != nil {
		diffOpts = append(diffOpts, diff.WithTracer(cfg.tracer))
	}
	if cfg.meter != nil {
		diffOpts = append(diffOpts, diff.WithMeter(cfg.meter))
	}

	comparer, err := diff.New(diffOpts...)
	if err != nil {
		return nil, err
	}

	return &Service{
		source:     src,
		comparer:   comparer,
		properties: cfg.properties,
		filter:     cfg.filter,
		logger:     cfg.logger,
	}, nil
}

// comparerFor applies the runtime mitigation property, if any. A failing
// property source leaves the configured value in place.
func (s *Service) comparerFor(ctx context.Context) *diff.Comparer {
	if s.properties == nil {
		return s.comparer
	}
	show, ok, err := s.properties.ShowMitigationValues(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to read mitigation property, using configured value",
			"key", config.ShowMitigationValuesKey,
			"error", err,
		)
		return s.comparer
	}
	if !ok || show == s.comparer.ShowMitigations() {
		return s.comparer
	}
	return s.comparer.WithMitigations(show)
}

func (s *Service) versions(ctx context.Context, req Request) (*snapshot.Version, *snapshot.Version, error) {
	fv, err := s.source.GetVersion(ctx, req.FirstVersion)
	if err != nil {
		return nil, nil, err
	}
	sv, err := s.source.GetVersion(ctx, req.SecondVersion)
	if err != nil {
		return nil, nil, err
	}
	return fv, sv, nil
}

// CompareLibraries compares FirstLibrary of FirstVersion against
// SecondLibrary of SecondVersion.
func (s *Service) CompareLibraries(ctx context.Context, req Request) (*graph.Graph, error) {
	if err := req.check(opCompareLibraries, libraryFields...); err != nil {
		return nil, err
	}
	fv, sv, err := s.versions(ctx, req)
	if err != nil {
		return nil, err
	}
	first, err := s.source.GetLibrary(ctx, fv.ID, req.FirstLibrary)
	if err != nil {
		return nil, err
	}
	second, err := s.source.GetLibrary(ctx, sv.ID, req.SecondLibrary)
	if err != nil {
		return nil, err
	}
	return s.comparerFor(ctx).CompareLibraries(ctx, fv, first, sv, second)
}

// CompareLibrarySpecific compares LibraryRef between the two versions.
func (s *Service) CompareLibrarySpecific(ctx context.Context, req Request) (*graph.Graph, error) {
	if err := req.check(opCompareLibrarySpecific, specificFields...); err != nil {
		return nil, err
	}
	fv, sv, err := s.versions(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.comparerFor(ctx).CompareLibrarySpecific(ctx, fv, sv, req.LibraryRef)
}

// CompareVersions compares every library of the two versions.
func (s *Service) CompareVersions(ctx context.Context, req Request) (*graph.GraphList, error) {
	if err := req.check(opCompareVersions, versionFields...); err != nil {
		return nil, err
	}
	fv, sv, err := s.versions(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.comparerFor(ctx).CompareVersions(ctx, fv, sv)
}

// CompactChangelog builds the per-category report for LibraryRef when it is
// set, or for every library of the two versions otherwise. Libraries that
// fail to compare are logged and left out of a version-wide report.
func (s *Service) CompactChangelog(ctx context.Context, req Request) (*changelog.Report, error) {
	if err := req.check(opCompactChangelog, versionFields...); err != nil {
		return nil, err
	}

	var items []*graph.ChangelogItem
	if req.LibraryRef != "" {
		g, err := s.CompareLibrarySpecific(ctx, req)
		if err != nil {
			return nil, err
		}
		items = changelog.Items(g)
	} else {
		gl, err := s.CompareVersions(ctx, req)
		if err != nil {
			return nil, err
		}
		if len(gl.Failures) > 0 {
			s.logger.WarnContext(ctx, "compact changelog omits failed libraries",
				"first_version", req.FirstVersion,
				"second_version", req.SecondVersion,
				"failed", len(gl.Failures),
			)
		}
		items = changelog.ListItems(gl)
	}

	var opts []changelog.Option
	if s.filter != nil {
		opts = append(opts, changelog.WithFilter(s.filter))
	}
	return changelog.Compact(items, opts...)
}

// SummarizeLibraries lists the libraries added, deleted and present in both
// versions.
func (s *Service) SummarizeLibraries(ctx context.Context, req Request) (*diff.Summaries, error) {
	if err := req.check(opSummarizeLibraries, versionFields...); err != nil {
		return nil, err
	}
	fv, sv, err := s.versions(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.comparer.SummarizeLibraries(fv, sv)
}

// RelationsChangelog reports relations added and deleted across all
// libraries, plus controls that are new to the second version.
func (s *Service) RelationsChangelog(ctx context.Context, req Request) (*diff.RelationsReport, error) {
	if err := req.check(opRelationsChangelog, versionFields...); err != nil {
		return nil, err
	}
	fv, sv, err := s.versions(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.comparer.RelationsReport(fv, sv)
}
