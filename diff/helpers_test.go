package diff

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/libdiff/graph"
	"github.com/zero-day-ai/libdiff/snapshot"
	"github.com/zero-day-ai/libdiff/snapshot/snapshottest"
)

func newComparer(t *testing.T, opts ...Option) *Comparer {
	t.Helper()
	c, err := New(opts...)
	require.NoError(t, err)
	return c
}

// compareBaseline compares snapshottest.LibraryRef across fv and sv.
func compareBaseline(t *testing.T, c *Comparer, fv, sv *snapshot.Version) *graph.Graph {
	t.Helper()
	g, err := c.CompareLibraries(context.Background(),
		fv, fv.Library(snapshottest.LibraryRef),
		sv, sv.Library(snapshottest.LibraryRef))
	require.NoError(t, err)
	return g
}

// nodeNamed returns the single entity or root node called name.
func nodeNamed(t *testing.T, g *graph.Graph, name string) *graph.Node {
	t.Helper()
	var found *graph.Node
	for _, n := range g.Nodes {
		if n.Name == name && n.Kind != graph.KindGroup {
			require.Nil(t, found, "duplicate node %q", name)
			found = n
		}
	}
	require.NotNil(t, found, "node %q not found", name)
	return found
}

func hasNode(g *graph.Graph, name string) bool {
	for _, n := range g.Nodes {
		if n.Name == name && n.Kind != graph.KindGroup {
			return true
		}
	}
	return false
}

func names(nodes []*graph.Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Name)
	}
	return out
}

// entry is a compact view of a changelog item.
type entry struct {
	Element string
	Ref     string
	Action  graph.Action
}

func entries(g *graph.Graph) []entry {
	out := make([]entry, 0, len(g.Changelog))
	for _, item := range g.Changelog {
		out = append(out, entry{item.Element, item.ElementRef, item.Action})
	}
	return out
}

func itemFor(t *testing.T, g *graph.Graph, element, ref string) *graph.ChangelogItem {
	t.Helper()
	for _, item := range g.Changelog {
		if item.Element == element && item.ElementRef == ref {
			return item
		}
	}
	require.Failf(t, "changelog item not found", "%s %s", element, ref)
	return nil
}
