package snapshot

// RiskPatternItem is the root of a flattened relation tree.
type RiskPatternItem struct {
	Ref      string
	UseCases map[string]*UseCaseItem
}

// UseCaseItem groups the threats related to one usecase of a risk pattern.
type UseCaseItem struct {
	Ref     string
	Threats map[string]*ThreatItem
}

// ThreatItem holds the weaknesses of a threat and the controls attached to it
// directly.
type ThreatItem struct {
	Ref              string
	Weaknesses       map[string]*WeaknessItem
	OrphanedControls map[string]*ControlItem
}

// WeaknessItem holds the controls mitigating one weakness.
type WeaknessItem struct {
	Ref      string
	Controls map[string]*ControlItem
}

// ControlItem is a leaf of the tree carrying the mitigation percentage.
type ControlItem struct {
	Ref        string
	Mitigation string
}

// BuildRelationTree folds the relation table of lib into one tree per risk
// pattern: risk pattern, usecase, threat, then weaknesses with their controls
// and orphaned controls.
//
// Relations without a risk pattern or usecase are skipped. A relation with a
// control but no mitigation, or with a control but no threat, only contributes
// its risk pattern and usecase. The first relation seen for a control wins;
// relations are visited in sorted id order so the result is deterministic.
func BuildRelationTree(lib *Library) map[string]*RiskPatternItem {
	tree := make(map[string]*RiskPatternItem)
	if lib == nil {
		return tree
	}

	for _, id := range SortedKeys(lib.Relations) {
		r := lib.Relations[id]
		if r.RiskPattern == "" || r.UseCase == "" {
			continue
		}

		rp, ok := tree[r.RiskPattern]
		if !ok {
			rp = &RiskPatternItem{Ref: r.RiskPattern, UseCases: make(map[string]*UseCaseItem)}
			tree[rp.Ref] = rp
		}
		uc, ok := rp.UseCases[r.UseCase]
		if !ok {
			uc = &UseCaseItem{Ref: r.UseCase, Threats: make(map[string]*ThreatItem)}
			rp.UseCases[uc.Ref] = uc
		}

		if r.Control != "" && (r.Mitigation == "" || r.Threat == "") {
			continue
		}
		if r.Threat == "" {
			continue
		}

		t, ok := uc.Threats[r.Threat]
		if !ok {
			t = &ThreatItem{
				Ref:              r.Threat,
				Weaknesses:       make(map[string]*WeaknessItem),
				OrphanedControls: make(map[string]*ControlItem),
			}
			uc.Threats[t.Ref] = t
		}

		switch {
		case r.Weakness != "" && r.Control != "":
			w := t.weakness(r.Weakness)
			if _, ok := w.Controls[r.Control]; !ok {
				w.Controls[r.Control] = &ControlItem{Ref: r.Control, Mitigation: r.Mitigation}
			}
		case r.IsOrphanedControl():
			if _, ok := t.OrphanedControls[r.Control]; !ok {
				t.OrphanedControls[r.Control] = &ControlItem{Ref: r.Control, Mitigation: r.Mitigation}
			}
		case r.Weakness != "":
			t.weakness(r.Weakness)
		}
	}

	return tree
}

func (t *ThreatItem) weakness(ref string) *WeaknessItem {
	w, ok := t.Weaknesses[ref]
	if !ok {
		w = &WeaknessItem{Ref: ref, Controls: make(map[string]*ControlItem)}
		t.Weaknesses[ref] = w
	}
	return w
}
