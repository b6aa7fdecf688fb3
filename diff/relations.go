package diff

import (
	"github.com/zero-day-ai/libdiff/graph"
	"github.com/zero-day-ai/libdiff/snapshot"
)

// tree returns the relation tree of risk pattern ref on side 0 (first) or
// 1 (second), building each side's trees once per comparison.
func (c *comparison) tree(side int, ref string) *snapshot.RiskPatternItem {
	if c.trees[side] == nil {
		lib := c.first
		if side == 1 {
			lib = c.second
		}
		c.trees[side] = c.relationTree(lib)
	}
	return c.trees[side][ref]
}

// relationDiff compares the relation trees of one risk pattern and attaches
// the changed usecases below the risk pattern node.
func (c *comparison) relationDiff(ref string) step {
	return func(parentID string) (bool, error) {
		rp1, rp2 := c.tree(0, ref), c.tree(1, ref)
		if rp1 == nil {
			rp1 = &snapshot.RiskPatternItem{Ref: ref}
		}
		if rp2 == nil {
			rp2 = &snapshot.RiskPatternItem{Ref: ref}
		}

		nodes, err := c.walk(elementRelationUsecase, snapshot.SortedKeys(rp1.UseCases), snapshot.SortedKeys(rp2.UseCases), func(uc string) (*graph.Node, error) {
			return c.modified(elementRelationUsecase, uc, nil,
				c.threatRelations(rp1.UseCases[uc].Threats, rp2.UseCases[uc].Threats),
			)
		})
		if err != nil {
			return false, err
		}
		return c.b.AttachFlat(parentID, nodes), nil
	}
}

func (c *comparison) threatRelations(first, second map[string]*snapshot.ThreatItem) step {
	return func(parentID string) (bool, error) {
		nodes, err := c.walk(elementRelationThreat, snapshot.SortedKeys(first), snapshot.SortedKeys(second), func(ref string) (*graph.Node, error) {
			t1, t2 := first[ref], second[ref]
			return c.modified(elementRelationThreat, ref, nil,
				c.weaknessRelations(t1.Weaknesses, t2.Weaknesses),
				c.controlRelations(t1.OrphanedControls, t2.OrphanedControls),
			)
		})
		if err != nil {
			return false, err
		}
		return c.b.AttachFlat(parentID, nodes), nil
	}
}

func (c *comparison) weaknessRelations(first, second map[string]*snapshot.WeaknessItem) step {
	return func(parentID string) (bool, error) {
		nodes, err := c.walk(elementRelationWeakness, snapshot.SortedKeys(first), snapshot.SortedKeys(second), func(ref string) (*graph.Node, error) {
			return c.modified(elementRelationWeakness, ref, nil,
				c.controlRelations(first[ref].Controls, second[ref].Controls),
			)
		})
		if err != nil {
			return false, err
		}
		return c.b.AttachFlat(parentID, nodes), nil
	}
}

// controlRelations compares the controls below a weakness or threat. A
// control is modified when its mitigation changed. Hidden mitigation changes
// attach nothing but still report a change.
func (c *comparison) controlRelations(first, second map[string]*snapshot.ControlItem) step {
	return func(parentID string) (bool, error) {
		hidden := false
		nodes, err := c.walk(elementRelationControl, snapshot.SortedKeys(first), snapshot.SortedKeys(second), func(ref string) (*graph.Node, error) {
			var changes graph.Changes
			changes.Add("mitigation", first[ref].Mitigation, second[ref].Mitigation)
			if len(changes) == 0 {
				return nil, nil
			}
			if !c.b.ShowMitigations() {
				hidden = true
				return nil, nil
			}
			return c.modified(elementRelationControl, ref, changes)
		})
		if err != nil {
			return false, err
		}
		return c.b.AttachFlat(parentID, nodes) || hidden, nil
	}
}
