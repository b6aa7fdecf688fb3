package diff

import (
	"fmt"

	"github.com/zero-day-ai/libdiff/graph"
	"github.com/zero-day-ai/libdiff/snapshot"
)

// Changelog element labels.
const (
	elementLibrary                = "Library"
	elementCategories             = "Categories"
	elementComponents             = "Component Definitions"
	elementSupportedStandards     = "Supported Standards"
	elementStandards              = "Standards"
	elementRiskPattern            = "RiskPattern"
	elementRules                  = "Rules"
	elementUsecases               = "Usecases"
	elementThreats                = "Threats"
	elementWeaknesses             = "Weaknesses"
	elementControls               = "Controls"
	elementReferences             = "References"
	elementThreatReferences       = "Threat:References"
	elementWeaknessTestRefs       = "Weaknesses:TestReferences"
	elementControlStandards       = "Controls:Standards"
	elementControlReferences      = "Controls:References"
	elementControlTestRefs        = "Controls:TestReferences"
	elementControlImplementations = "Controls:Implementations"
	elementRelationUsecase        = "Relation:Usecase"
	elementRelationThreat         = "Relation:Threat"
	elementRelationWeakness       = "Relation:Weakness"
	elementRelationControl        = "Relation:Control"
)

// categoryRefs returns the sorted categories used by the components of lib,
// failing on a category missing from v.
func categoryRefs(v *snapshot.Version, lib *snapshot.Library) ([]string, error) {
	refs := make([]string, 0, len(lib.ComponentDefinitions))
	for _, key := range snapshot.SortedKeys(lib.ComponentDefinitions) {
		ref := lib.ComponentDefinitions[key].CategoryRef
		if ref == "" {
			continue
		}
		if v.Categories[ref] == nil {
			return nil, dangling(v, lib, "category", ref)
		}
		refs = append(refs, ref)
	}
	return sortedUnique(refs), nil
}

func (c *comparison) categories(parentID string) (bool, error) {
	first, err := categoryRefs(c.fv, c.first)
	if err != nil {
		return false, err
	}
	second, err := categoryRefs(c.sv, c.second)
	if err != nil {
		return false, err
	}

	nodes, err := c.walk(elementCategories, first, second, func(ref string) (*graph.Node, error) {
		var changes graph.Changes
		changes.Add("name", c.fv.Categories[ref].Name, c.sv.Categories[ref].Name)
		return c.modified(elementCategories, ref, changes)
	})
	if err != nil {
		return false, err
	}
	return c.b.AttachGrouped(parentID, "categories", nodes), nil
}

func (c *comparison) components(parentID string) (bool, error) {
	first, second := c.first.ComponentDefinitions, c.second.ComponentDefinitions

	nodes, err := c.walk(elementComponents, snapshot.SortedKeys(first), snapshot.SortedKeys(second), func(ref string) (*graph.Node, error) {
		c1, c2 := first[ref], second[ref]
		var changes graph.Changes
		changes.Add("name", c1.Name, c2.Name).
			Add("desc", c1.Desc, c2.Desc).
			Add("categoryRef", c1.CategoryRef, c2.CategoryRef).
			Add("riskPatterns", c.list(c1.RiskPatternRefs), c.list(c2.RiskPatternRefs)).
			Add("visible", c1.Visible, c2.Visible)
		return c.modified(elementComponents, ref, changes)
	})
	if err != nil {
		return false, err
	}
	return c.b.AttachGrouped(parentID, "components", nodes), nil
}

func (c *comparison) supportedStandards(parentID string) (bool, error) {
	first, second := c.first.SupportedStandards, c.second.SupportedStandards

	nodes, err := c.walk(elementSupportedStandards, snapshot.SortedKeys(first), snapshot.SortedKeys(second), func(ref string) (*graph.Node, error) {
		var changes graph.Changes
		changes.Add("name", first[ref].Name, second[ref].Name)
		return c.modified(elementSupportedStandards, ref, changes)
	})
	if err != nil {
		return false, err
	}
	return c.b.AttachGrouped(parentID, "supported_standards", nodes), nil
}

// standards diffs the standards links by their composite identity.
func (c *comparison) standards(parentID string) (bool, error) {
	return c.standardLinks(elementStandards, "standards", c.first.Standards, c.second.Standards)(parentID)
}

// standardLinks diffs two sets of standards links by ID and names the
// resulting nodes by Key.
func (c *comparison) standardLinks(element, label string, first, second []snapshot.Standard) step {
	names := make(map[string]string, len(first)+len(second))
	ids := func(links []snapshot.Standard) []string {
		out := make([]string, 0, len(links))
		for _, s := range links {
			names[s.ID()] = s.Key()
			out = append(out, s.ID())
		}
		return sortedUnique(out)
	}
	firstIDs, secondIDs := ids(first), ids(second)

	return func(parentID string) (bool, error) {
		nodes, err := c.walkNamed(element, firstIDs, secondIDs, func(id string) string { return names[id] }, nil)
		if err != nil {
			return false, err
		}
		return c.b.AttachGrouped(parentID, label, nodes), nil
	}
}

func (c *comparison) riskPatterns(parentID string) (bool, error) {
	first, second := c.first.RiskPatterns, c.second.RiskPatterns

	nodes, err := c.walk(elementRiskPattern, snapshot.SortedKeys(first), snapshot.SortedKeys(second), func(ref string) (*graph.Node, error) {
		rp1, rp2 := first[ref], second[ref]
		var changes graph.Changes
		changes.Add("name", rp1.Name, rp2.Name).
			Add("desc", rp1.Desc, rp2.Desc).
			Add("uuid", rp1.UUID, rp2.UUID)
		return c.modified(elementRiskPattern, ref, changes, c.relationDiff(ref))
	})
	if err != nil {
		return false, err
	}
	return c.b.AttachGrouped(parentID, "riskPatterns", nodes), nil
}

// rules diffs rules by name. The first rule carrying a name wins.
func (c *comparison) rules(parentID string) (bool, error) {
	first, second := rulesByName(c.first.Rules), rulesByName(c.second.Rules)

	nodes, err := c.walk(elementRules, snapshot.SortedKeys(first), snapshot.SortedKeys(second), func(name string) (*graph.Node, error) {
		r1, r2 := first[name], second[name]
		var changes graph.Changes
		changes.Add("name", r1.Name, r2.Name).
			Add("module", r1.Module, r2.Module).
			Add("gui", r1.GUI, r2.GUI)
		return c.modified(elementRules, name, changes,
			c.ruleParts(name, "Condition", conditionKeys(r1), conditionKeys(r2)),
			c.ruleParts(name, "Action", actionKeys(r1), actionKeys(r2)),
		)
	})
	if err != nil {
		return false, err
	}
	return c.b.AttachGrouped(parentID, "rules", nodes), nil
}

// ruleParts diffs the conditions or actions of one rule by value and attaches
// them directly below the rule node.
func (c *comparison) ruleParts(rule, part string, first, second []string) step {
	return func(parentID string) (bool, error) {
		first, second := sortedUnique(first), sortedUnique(second)
		inFirst, inSecond := toSet(first), toSet(second)

		var nodes []*graph.Node
		for _, key := range first {
			if !inSecond[key] {
				c.b.Record(elementRules, fmt.Sprintf("%s[%s]%s", rule, part, key), graph.ActionDelete, nil)
				nodes = append(nodes, graph.NewEntity(key, graph.StatusDeleted, nil))
			}
		}
		for _, key := range second {
			if !inFirst[key] {
				c.b.Record(elementRules, fmt.Sprintf("%s[%s]%s", rule, part, key), graph.ActionNew, nil)
				nodes = append(nodes, graph.NewEntity(key, graph.StatusNew, nil))
			}
		}
		return c.b.AttachFlat(parentID, nodes), nil
	}
}

func rulesByName(rules []*snapshot.Rule) map[string]*snapshot.Rule {
	byName := make(map[string]*snapshot.Rule, len(rules))
	for _, r := range rules {
		if _, ok := byName[r.Name]; !ok {
			byName[r.Name] = r
		}
	}
	return byName
}

func conditionKeys(r *snapshot.Rule) []string {
	keys := make([]string, 0, len(r.Conditions))
	for _, cond := range r.Conditions {
		keys = append(keys, fmt.Sprintf("[%s, %s, %s]", cond.Field, cond.Name, cond.Value))
	}
	return keys
}

func actionKeys(r *snapshot.Rule) []string {
	keys := make([]string, 0, len(r.Actions))
	for _, a := range r.Actions {
		keys = append(keys, fmt.Sprintf("[%s, %s, %s]", a.Project, a.Name, a.Value))
	}
	return keys
}
