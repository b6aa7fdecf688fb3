package diff

import (
	"github.com/zero-day-ai/libdiff/graph"
	"github.com/zero-day-ai/libdiff/snapshot"
)

// relationRefs returns the sorted, non-empty endpoint refs of lib's relations
// selected by pick.
func relationRefs(lib *snapshot.Library, pick func(*snapshot.Relation) string) []string {
	refs := make([]string, 0, len(lib.Relations))
	for _, r := range lib.Relations {
		refs = append(refs, pick(r))
	}
	return sortedUnique(refs)
}

func (c *comparison) usecases(parentID string) (bool, error) {
	pick := func(r *snapshot.Relation) string { return r.UseCase }

	nodes, err := c.walk(elementUsecases, relationRefs(c.first, pick), relationRefs(c.second, pick), func(ref string) (*graph.Node, error) {
		u1, u2 := c.fv.UseCases[ref], c.sv.UseCases[ref]
		var changes graph.Changes
		changes.Add("name", u1.Name, u2.Name).
			Add("desc", u1.Desc, u2.Desc)
		return c.modified(elementUsecases, ref, changes)
	})
	if err != nil {
		return false, err
	}
	return c.b.AttachGrouped(parentID, "usecases", nodes), nil
}

func (c *comparison) threats(parentID string) (bool, error) {
	pick := func(r *snapshot.Relation) string { return r.Threat }

	nodes, err := c.walk(elementThreats, relationRefs(c.first, pick), relationRefs(c.second, pick), func(ref string) (*graph.Node, error) {
		t1, t2 := c.fv.Threats[ref], c.sv.Threats[ref]
		var changes graph.Changes
		changes.Add("name", t1.Name, t2.Name).
			Add("desc", t1.Desc, t2.Desc).
			Add("confidentiality", t1.RiskRating.Confidentiality, t2.RiskRating.Confidentiality).
			Add("integrity", t1.RiskRating.Integrity, t2.RiskRating.Integrity).
			Add("availability", t1.RiskRating.Availability, t2.RiskRating.Availability).
			Add("easeOfExploitation", t1.RiskRating.EaseOfExploitation, t2.RiskRating.EaseOfExploitation).
			Add("mitre", c.list(t1.Mitre), c.list(t2.Mitre)).
			Add("stride", c.list(t1.Stride), c.list(t2.Stride))
		return c.modified(elementThreats, ref, changes,
			c.membership(elementThreatReferences, "references", t1.References, t2.References),
		)
	})
	if err != nil {
		return false, err
	}
	return c.b.AttachGrouped(parentID, "threats", nodes), nil
}

func (c *comparison) controls(parentID string) (bool, error) {
	pick := func(r *snapshot.Relation) string { return r.Control }

	nodes, err := c.walk(elementControls, relationRefs(c.first, pick), relationRefs(c.second, pick), func(ref string) (*graph.Node, error) {
		c1, c2 := c.fv.Controls[ref], c.sv.Controls[ref]
		var changes graph.Changes
		changes.Add("name", c1.Name, c2.Name).
			Add("desc", c1.Desc, c2.Desc).
			Add("state", c1.State, c2.State).
			Add("cost", c1.Cost, c2.Cost).
			Add("steps", c1.Test.Steps, c2.Test.Steps).
			Add("baseStandard", c.list(c1.BaseStandard), c.list(c2.BaseStandard)).
			Add("baseStandardSection", c.list(c1.BaseStandardSection), c.list(c2.BaseStandardSection)).
			Add("scope", c.list(c1.Scope), c.list(c2.Scope)).
			Add("mitre", c.list(c1.Mitre), c.list(c2.Mitre))
		return c.modified(elementControls, ref, changes,
			c.standardLinks(elementControlStandards, "standards", c1.Standards, c2.Standards),
			c.membership(elementControlReferences, "references", c1.References, c2.References),
			c.membership(elementControlTestRefs, "testReferences", c1.Test.References, c2.Test.References),
			c.membership(elementControlImplementations, "implementations", c1.Implementations, c2.Implementations),
		)
	})
	if err != nil {
		return false, err
	}
	return c.b.AttachGrouped(parentID, "controls", nodes), nil
}

func (c *comparison) weaknesses(parentID string) (bool, error) {
	pick := func(r *snapshot.Relation) string { return r.Weakness }

	nodes, err := c.walk(elementWeaknesses, relationRefs(c.first, pick), relationRefs(c.second, pick), func(ref string) (*graph.Node, error) {
		w1, w2 := c.fv.Weaknesses[ref], c.sv.Weaknesses[ref]
		var changes graph.Changes
		changes.Add("name", w1.Name, w2.Name).
			Add("desc", w1.Desc, w2.Desc).
			Add("impact", w1.Impact, w2.Impact).
			Add("steps", w1.Test.Steps, w2.Test.Steps)
		return c.modified(elementWeaknesses, ref, changes,
			c.membership(elementWeaknessTestRefs, "testReferences", w1.Test.References, w2.Test.References),
		)
	})
	if err != nil {
		return false, err
	}
	return c.b.AttachGrouped(parentID, "weaknesses", nodes), nil
}

// references diffs the references reachable from the relations of both
// libraries, keyed by display name.
func (c *comparison) references(parentID string) (bool, error) {
	first, err := referencesByName(c.fv, c.first)
	if err != nil {
		return false, err
	}
	second, err := referencesByName(c.sv, c.second)
	if err != nil {
		return false, err
	}

	nodes, err := c.walk(elementReferences, snapshot.SortedKeys(first), snapshot.SortedKeys(second), func(name string) (*graph.Node, error) {
		var changes graph.Changes
		changes.Add("url", first[name].URL, second[name].URL)
		return c.modified(elementReferences, name, changes)
	})
	if err != nil {
		return false, err
	}
	return c.b.AttachGrouped(parentID, "references", nodes), nil
}

// referencesByName collects the references of the threats, weaknesses and
// controls related in lib. When two references share a name the one with
// the lowest ref wins.
func referencesByName(v *snapshot.Version, lib *snapshot.Library) (map[string]*snapshot.Reference, error) {
	var refs []string
	for _, id := range snapshot.SortedKeys(lib.Relations) {
		r := lib.Relations[id]
		if t := v.Threats[r.Threat]; t != nil {
			refs = append(refs, t.References...)
		}
		if w := v.Weaknesses[r.Weakness]; w != nil {
			refs = append(refs, w.Test.References...)
		}
		if ctl := v.Controls[r.Control]; ctl != nil {
			refs = append(refs, ctl.References...)
			refs = append(refs, ctl.Test.References...)
		}
	}

	byName := make(map[string]*snapshot.Reference)
	for _, ref := range sortedUnique(refs) {
		reference := v.References[ref]
		if reference == nil {
			return nil, dangling(v, lib, "reference", ref)
		}
		if _, ok := byName[reference.Name]; !ok {
			byName[reference.Name] = reference
		}
	}
	return byName, nil
}
