package diff

import (
	"fmt"
	"slices"
	"strings"

	"github.com/zero-day-ai/libdiff/differr"
	"github.com/zero-day-ai/libdiff/graph"
	"github.com/zero-day-ai/libdiff/snapshot"
)

// comparison is the working state of one library comparison.
type comparison struct {
	*Comparer

	fv, sv        *snapshot.Version
	first, second *snapshot.Library
	b             *graph.Builder

	// trees caches the relation trees of first and second.
	trees [2]map[string]*snapshot.RiskPatternItem
}

func (c *Comparer) newComparison(fv *snapshot.Version, first *snapshot.Library, sv *snapshot.Version, second *snapshot.Library) *comparison {
	return &comparison{
		Comparer: c,
		fv:       fv,
		sv:       sv,
		first:    first,
		second:   second,
		b:        graph.NewBuilder(c.showMitigations),
	}
}

// step diffs one category below parentID and reports whether anything changed.
type step func(parentID string) (bool, error)

func (c *comparison) run() (*graph.Graph, error) {
	if err := c.checkRelations(c.fv, c.first); err != nil {
		return nil, err
	}
	if err := c.checkRelations(c.sv, c.second); err != nil {
		return nil, err
	}

	var changes graph.Changes
	changes.Add("revision", c.first.Revision, c.second.Revision).
		Add("ref", c.first.Ref, c.second.Ref).
		Add("name", c.first.Name, c.second.Name).
		Add("desc", c.first.Desc, c.second.Desc).
		Add("filename", c.first.Filename, c.second.Filename).
		Add("enabled", c.first.Enabled, c.second.Enabled)

	root := graph.NewRoot(c.second.Ref, changes)
	if len(changes) > 0 {
		c.b.Record(elementLibrary, c.second.Ref, graph.ActionEdit, changes)
	}
	c.b.AddNode(root)

	steps := []step{
		c.categories,
		c.components,
		c.supportedStandards,
		c.standards,
		c.riskPatterns,
		c.rules,
	}
	if c.fv.ID != c.sv.ID {
		steps = append(steps,
			c.usecases,
			c.threats,
			c.controls,
			c.weaknesses,
			c.references,
		)
	}
	for _, s := range steps {
		if _, err := s(root.ID); err != nil {
			return nil, err
		}
	}

	g := c.b.Graph()
	g.RevFirst = c.first.Revision
	g.RevSecond = c.second.Revision
	if len(g.Changelog) > 0 && c.first.Revision == c.second.Revision {
		c.logger.Info("library has same revision but changes",
			"library", c.second.Ref,
			"revision", c.second.Revision,
		)
		g.EqualRevisionNumber = true
	}
	return g, nil
}

// walk partitions the sorted key lists of both sides. Keys only in first
// become DELETED nodes and keys only in second NEW nodes. Keys in both are
// handed to modify, which returns nil when the member is unchanged. A nil
// modify restricts the walk to additions and deletions.
func (c *comparison) walk(element string, first, second []string, modify func(key string) (*graph.Node, error)) ([]*graph.Node, error) {
	return c.walkNamed(element, first, second, nil, modify)
}

// walkNamed is walk with added and deleted members named by name(key). A nil
// name uses the key itself.
func (c *comparison) walkNamed(element string, first, second []string, name func(key string) string, modify func(key string) (*graph.Node, error)) ([]*graph.Node, error) {
	if name == nil {
		name = func(key string) string { return key }
	}
	inFirst := toSet(first)
	inSecond := toSet(second)

	var nodes []*graph.Node
	for _, key := range first {
		if !inSecond[key] {
			nodes = append(nodes, c.entity(element, name(key), graph.ActionDelete))
			continue
		}
		if modify == nil {
			continue
		}
		n, err := modify(key)
		if err != nil {
			return nil, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	for _, key := range second {
		if !inFirst[key] {
			nodes = append(nodes, c.entity(element, name(key), graph.ActionNew))
		}
	}
	return nodes, nil
}

// entity records an added or deleted member and returns its node.
func (c *comparison) entity(element, ref string, action graph.Action) *graph.Node {
	c.b.Record(element, ref, action, nil)
	return graph.NewEntity(ref, action.Status(), nil)
}

// modified returns a MODIFIED node for ref when changes is non-empty or any
// nested step attached something below it, and nil otherwise.
func (c *comparison) modified(element, ref string, changes graph.Changes, nested ...step) (*graph.Node, error) {
	n := graph.NewEntity(ref, graph.StatusModified, changes)
	changed := len(changes) > 0
	for _, s := range nested {
		ok, err := s(n.ID)
		if err != nil {
			return nil, err
		}
		changed = changed || ok
	}
	if !changed {
		return nil, nil
	}
	c.b.Record(element, ref, graph.ActionEdit, changes)
	return n, nil
}

// membership diffs two key lists by presence only and groups the result
// under label.
func (c *comparison) membership(element, label string, first, second []string) step {
	return func(parentID string) (bool, error) {
		nodes, err := c.walk(element, sortedUnique(first), sortedUnique(second), nil)
		if err != nil {
			return false, err
		}
		return c.b.AttachGrouped(parentID, label, nodes), nil
	}
}

// list renders a list-valued field for comparison.
func (c *comparison) list(values []string) string {
	if c.listComparison == ListSorted {
		values = slices.Sorted(slices.Values(values))
	}
	return strings.Join(values, ",")
}

// dangling builds the structural error for ref of the given kind missing from
// version v.
func dangling(v *snapshot.Version, lib *snapshot.Library, kind, ref string) error {
	return differr.NewStructural(opCompareLibraries,
		fmt.Errorf("%w: %s %q", differr.ErrDanglingReference, kind, ref)).
		WithContext(map[string]any{
			"version": v.ID,
			"library": lib.Ref,
		})
}

// checkRelations verifies every endpoint of the relations of lib resolves in
// its version.
func (c *comparison) checkRelations(v *snapshot.Version, lib *snapshot.Library) error {
	for _, id := range snapshot.SortedKeys(lib.Relations) {
		r := lib.Relations[id]
		if r.RiskPattern != "" && lib.RiskPatterns[r.RiskPattern] == nil {
			return dangling(v, lib, "risk pattern", r.RiskPattern)
		}
		if r.UseCase != "" && v.UseCases[r.UseCase] == nil {
			return dangling(v, lib, "usecase", r.UseCase)
		}
		if r.Threat != "" && v.Threats[r.Threat] == nil {
			return dangling(v, lib, "threat", r.Threat)
		}
		if r.Weakness != "" && v.Weaknesses[r.Weakness] == nil {
			return dangling(v, lib, "weakness", r.Weakness)
		}
		if r.Control != "" && v.Controls[r.Control] == nil {
			return dangling(v, lib, "control", r.Control)
		}
	}
	return nil
}

func toSet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return set
}

// sortedUnique returns the non-empty values of keys, sorted and deduplicated.
func sortedUnique(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k != "" {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
