// Package snapshottest provides consistent snapshot fixtures for tests of
// packages that compare versions.
package snapshottest

import "github.com/zero-day-ai/libdiff/snapshot"

// Library ref used by the baseline fixture.
const LibraryRef = "lib-a"

// NewVersion returns a fresh, internally consistent version holding one
// library (LibraryRef) with every category of content populated. Each call
// returns independent values so tests may mutate the result.
func NewVersion(id string) *snapshot.Version {
	v := snapshot.NewVersion(id)

	v.Categories["CAT1"] = &snapshot.Category{Ref: "CAT1", Name: "Network"}
	v.UseCases["UC1"] = &snapshot.UseCase{Ref: "UC1", Name: "Authentication", Desc: "User login"}
	v.References["REF1"] = &snapshot.Reference{Ref: "REF1", Name: "OWASP ASVS", URL: "https://owasp.org/asvs"}
	v.References["REF2"] = &snapshot.Reference{Ref: "REF2", Name: "NIST 800-63", URL: "https://nist.gov/800-63"}
	v.Threats["T1"] = &snapshot.Threat{
		Ref:  "T1",
		Name: "Credential stuffing",
		Desc: "Reused passwords",
		RiskRating: snapshot.RiskRating{
			Confidentiality:    "100",
			Integrity:          "75",
			Availability:       "25",
			EaseOfExploitation: "50",
		},
		Stride:     []string{"S"},
		References: []string{"REF1"},
	}
	v.Weaknesses["W1"] = &snapshot.Weakness{
		Ref:    "W1",
		Name:   "Weak password policy",
		Impact: "100",
		Test:   snapshot.Test{Steps: "Try common passwords", References: []string{"REF2"}},
	}
	v.Controls["C1"] = &snapshot.Control{
		Ref:       "C1",
		Name:      "Enforce MFA",
		State:     "Recommended",
		Cost:      "1",
		Standards: []snapshot.Standard{{SupportedStandardRef: "SS1", StandardRef: "A.9"}},
	}
	v.Controls["C2"] = &snapshot.Control{Ref: "C2", Name: "Rate limiting", State: "Required", Cost: "0"}

	lib := snapshot.NewLibrary(LibraryRef, "Library A", "3")
	lib.Desc = "Authentication risks"
	lib.Filename = "lib-a.xml"
	lib.ComponentDefinitions["CD1"] = &snapshot.ComponentDefinition{
		Ref:             "CD1",
		Name:            "API gateway",
		CategoryRef:     "CAT1",
		Visible:         "true",
		RiskPatternRefs: []string{"RP1"},
	}
	lib.RiskPatterns["RP1"] = &snapshot.RiskPattern{Ref: "RP1", UUID: "rp1-uuid", Name: "Login"}
	lib.RiskPatterns["RP2"] = &snapshot.RiskPattern{Ref: "RP2", UUID: "rp2-uuid", Name: "Legacy"}
	lib.SupportedStandards["SS1"] = &snapshot.SupportedStandard{Ref: "SS1", Name: "ISO 27001"}
	lib.Standards = []snapshot.Standard{{SupportedStandardRef: "SS1", StandardRef: "A.9"}}
	lib.Rules = []*snapshot.Rule{{
		Name:       "gateway rule",
		Module:     "component",
		GUI:        "<xml/>",
		Conditions: []snapshot.RuleCondition{{Name: "CONDITION_COMPONENT_DEFINITION", Field: "id", Value: "CD1"}},
		Actions:    []snapshot.RuleAction{{Name: "INSERT_RISK_PATTERN", Value: "RP1", Project: "lib-a"}},
	}}
	lib.Relations["r1"] = &snapshot.Relation{ID: "r1", RiskPattern: "RP1", UseCase: "UC1", Threat: "T1", Weakness: "W1", Control: "C1", Mitigation: "50"}
	lib.Relations["r2"] = &snapshot.Relation{ID: "r2", RiskPattern: "RP1", UseCase: "UC1", Threat: "T1", Control: "C2", Mitigation: "50"}
	v.AddLibrary(lib)

	return v
}

// Pair returns two versions derived from NewVersion with a known set of
// differences:
//   - LibraryRef revision "3" → "4"
//   - risk pattern RP2 deleted
//   - mitigation of C1 under T1/W1 "50" → "60"
//   - lib-old present only in the first version
//   - lib-new present only in the second version
func Pair() (first, second *snapshot.Version) {
	first = NewVersion("v1")
	first.AddLibrary(snapshot.NewLibrary("lib-old", "Old library", "7"))

	second = NewVersion("v2")
	lib := second.Library(LibraryRef)
	lib.Revision = "4"
	delete(lib.RiskPatterns, "RP2")
	lib.Relations["r1"].Mitigation = "60"
	second.AddLibrary(snapshot.NewLibrary("lib-new", "New library", "1"))

	return first, second
}
