package diff

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/zero-day-ai/libdiff/differr"
	"github.com/zero-day-ai/libdiff/snapshot"
)

// ExtendedRelation is a relation qualified by the library that owns it.
type ExtendedRelation struct {
	LibraryRef     string `json:"libraryRef"`
	RiskPatternRef string `json:"riskPatternRef"`
	UseCaseRef     string `json:"usecaseRef"`
	ThreatRef      string `json:"threatRef"`
	WeaknessRef    string `json:"weaknessRef"`
	ControlRef     string `json:"controlRef"`
	Mitigation     string `json:"mitigation"`
}

func compareRelations(a, b ExtendedRelation) int {
	return cmp.Or(
		cmp.Compare(a.LibraryRef, b.LibraryRef),
		cmp.Compare(a.RiskPatternRef, b.RiskPatternRef),
		cmp.Compare(a.UseCaseRef, b.UseCaseRef),
		cmp.Compare(a.ThreatRef, b.ThreatRef),
		cmp.Compare(a.WeaknessRef, b.WeaknessRef),
		cmp.Compare(a.ControlRef, b.ControlRef),
		cmp.Compare(a.Mitigation, b.Mitigation),
	)
}

// RelationsReport lists the relation edges added and deleted between two
// versions, and the relations that use a control unknown to the first
// version grouped by control ref.
type RelationsReport struct {
	Added              []ExtendedRelation            `json:"added"`
	Deleted            []ExtendedRelation            `json:"deleted"`
	NewCountermeasures map[string][]ExtendedRelation `json:"newCountermeasures"`
}

// RelationsReport compares the relations of every library of fv and sv as
// value sets. A changed mitigation shows up as one deletion and one addition.
func (c *Comparer) RelationsReport(fv, sv *snapshot.Version) (*RelationsReport, error) {
	if fv == nil || sv == nil {
		return nil, differr.NewInvalidArgument(opRelationsReport,
			fmt.Errorf("%w: versions are required", differr.ErrInvalidRequest))
	}

	oldRelations := extendedRelations(fv)
	newRelations := extendedRelations(sv)

	report := &RelationsReport{
		Added:              difference(newRelations, oldRelations),
		Deleted:            difference(oldRelations, newRelations),
		NewCountermeasures: make(map[string][]ExtendedRelation),
	}
	for _, r := range newRelations {
		if r.ControlRef == "" || fv.Controls[r.ControlRef] != nil {
			continue
		}
		report.NewCountermeasures[r.ControlRef] = append(report.NewCountermeasures[r.ControlRef], r)
	}
	return report, nil
}

// extendedRelations returns the distinct relations of v in sorted order.
func extendedRelations(v *snapshot.Version) []ExtendedRelation {
	var out []ExtendedRelation
	for _, ref := range v.LibraryRefs() {
		lib := v.Library(ref)
		for _, r := range lib.Relations {
			out = append(out, ExtendedRelation{
				LibraryRef:     lib.Ref,
				RiskPatternRef: r.RiskPattern,
				UseCaseRef:     r.UseCase,
				ThreatRef:      r.Threat,
				WeaknessRef:    r.Weakness,
				ControlRef:     r.Control,
				Mitigation:     r.Mitigation,
			})
		}
	}
	slices.SortFunc(out, compareRelations)
	return slices.Compact(out)
}

// difference returns the members of a absent from b.
func difference(a, b []ExtendedRelation) []ExtendedRelation {
	out := []ExtendedRelation{}
	for _, r := range a {
		if _, found := slices.BinarySearchFunc(b, r, compareRelations); !found {
			out = append(out, r)
		}
	}
	return out
}
