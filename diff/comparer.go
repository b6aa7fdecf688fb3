package diff

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/zero-day-ai/libdiff/differr"
	"github.com/zero-day-ai/libdiff/graph"
	"github.com/zero-day-ai/libdiff/snapshot"
)

const (
	opNew                    = "diff.New"
	opCompareLibraries       = "diff.CompareLibraries"
	opCompareLibrarySpecific = "diff.CompareLibrarySpecific"
	opCompareVersions        = "diff.CompareVersions"
	opSummarizeLibraries     = "diff.SummarizeLibraries"
	opRelationsReport        = "diff.RelationsReport"
)

// CompareLibraries compares library first of version fv against library
// second of version sv. Comparing a library of a version with itself yields
// an empty graph.
func (c *Comparer) CompareLibraries(ctx context.Context, fv *snapshot.Version, first *snapshot.Library, sv *snapshot.Version, second *snapshot.Library) (*graph.Graph, error) {
	if fv == nil || sv == nil || first == nil || second == nil {
		return nil, differr.NewInvalidArgument(opCompareLibraries,
			fmt.Errorf("%w: versions and libraries are required", differr.ErrInvalidRequest))
	}
	if first.Ref == second.Ref && fv.ID == sv.ID {
		return graph.New(c.showMitigations), nil
	}

	ctx, span := c.startSpan(ctx, spanCompareLibraries, fv.ID, sv.ID,
		attribute.String("libdiff.library.first", first.Ref),
		attribute.String("libdiff.library.second", second.Ref),
	)
	defer span.End()

	start := time.Now()
	c.logger.InfoContext(ctx, "creating changelog",
		"first_version", fv.ID,
		"first_library", first.Ref,
		"second_version", sv.ID,
		"second_library", second.Ref,
	)

	cmp := c.newComparison(fv, first, sv, second)
	g, err := cmp.run()

	items := 0
	if g != nil {
		items = len(g.Changelog)
	}
	c.record(ctx, span, start, items, err)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// CompareLibrarySpecific compares the library ref across fv and sv. A library
// present on one side only yields a single NEW or DELETED root with no
// sub-diff. A library present on neither side is an invalid argument.
func (c *Comparer) CompareLibrarySpecific(ctx context.Context, fv, sv *snapshot.Version, ref string) (*graph.Graph, error) {
	if fv == nil || sv == nil {
		return nil, differr.NewInvalidArgument(opCompareLibrarySpecific,
			fmt.Errorf("%w: versions are required", differr.ErrInvalidRequest))
	}

	first, second := fv.Library(ref), sv.Library(ref)
	switch {
	case first == nil && second == nil:
		return nil, differr.NewInvalidArgument(opCompareLibrarySpecific, differr.ErrLibraryAbsent).
			WithContext(map[string]any{"library": ref})
	case first == nil:
		return c.singleSided(second, graph.ActionNew), nil
	case second == nil:
		return c.singleSided(first, graph.ActionDelete), nil
	}
	return c.CompareLibraries(ctx, fv, first, sv, second)
}

// singleSided returns the graph of a library that exists in one version only.
func (c *Comparer) singleSided(lib *snapshot.Library, action graph.Action) *graph.Graph {
	b := graph.NewBuilder(c.showMitigations)
	root := graph.NewRoot(lib.Ref, nil)
	root.SetStatus(action.Status())
	b.AddNode(root)
	b.Record(elementLibrary, lib.Ref, action, nil)

	g := b.Graph()
	if action == graph.ActionNew {
		g.RevSecond = lib.Revision
	} else {
		g.RevFirst = lib.Revision
	}
	return g
}

// CompareVersions compares every library present in both versions. Libraries
// present on one side only are listed by name. A library whose comparison
// fails is recorded in the list's failures and the sweep continues.
func (c *Comparer) CompareVersions(ctx context.Context, fv, sv *snapshot.Version) (*graph.GraphList, error) {
	if fv == nil || sv == nil {
		return nil, differr.NewInvalidArgument(opCompareVersions,
			fmt.Errorf("%w: versions are required", differr.ErrInvalidRequest))
	}

	ctx, span := c.startSpan(ctx, spanCompareVersions, fv.ID, sv.ID)
	defer span.End()

	gl := graph.NewList()
	for _, ref := range fv.LibraryRefs() {
		second := sv.Library(ref)
		if second == nil {
			gl.DeletedLibraries = append(gl.DeletedLibraries, fv.Library(ref).Name)
			continue
		}
		g, err := c.CompareLibraries(ctx, fv, fv.Library(ref), sv, second)
		if err != nil {
			c.logger.WarnContext(ctx, "library comparison failed", "library", ref, "error", err)
			gl.Fail(ref, err)
			continue
		}
		gl.Put(ref, g)
	}
	for _, ref := range sv.LibraryRefs() {
		if fv.Library(ref) == nil {
			gl.AddedLibraries = append(gl.AddedLibraries, sv.Library(ref).Name)
		}
	}

	span.SetAttributes(
		attribute.Int("libdiff.graphs", gl.Graphs.Len()),
		attribute.Int("libdiff.failures", len(gl.Failures)),
	)
	return gl, nil
}
