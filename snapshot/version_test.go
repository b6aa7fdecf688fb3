package snapshot

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersion_Normalize(t *testing.T) {
	raw := `{
		"id": "v1",
		"libraries": {
			"lib-a": {
				"revision": "3",
				"name": "A",
				"riskPatterns": {"RP1": {"name": "Pattern"}},
				"relations": {"r1": {"riskPattern": "RP1", "usecase": "UC1"}}
			}
		},
		"threats": {"T1": {"name": "Threat"}}
	}`

	var v Version
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	v.Normalize()

	lib := v.Library("lib-a")
	require.NotNil(t, lib)
	assert.Equal(t, "lib-a", lib.Ref)
	assert.Equal(t, "RP1", lib.RiskPatterns["RP1"].Ref)
	assert.Equal(t, "r1", lib.Relations["r1"].ID)
	assert.NotNil(t, lib.ComponentDefinitions)
	assert.NotNil(t, lib.SupportedStandards)
	assert.Equal(t, "T1", v.Threats["T1"].Ref)
	assert.NotNil(t, v.Controls)
	assert.NotNil(t, v.Categories)
}

func TestVersion_LibraryRefs(t *testing.T) {
	v := NewVersion("v1").
		AddLibrary(NewLibrary("zeta", "Z", "1")).
		AddLibrary(NewLibrary("alpha", "A", "1")).
		AddLibrary(NewLibrary("mid", "M", "1"))

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, v.LibraryRefs())
	assert.Nil(t, v.Library("missing"))

	var nilVersion *Version
	assert.Nil(t, nilVersion.Library("alpha"))
}

func TestStandard_Key(t *testing.T) {
	s := Standard{SupportedStandardRef: "iso", StandardRef: "A.5"}
	assert.Equal(t, "iso-A.5", s.Key())
	assert.Equal(t, "iso\x00A.5", s.ID())

	a := Standard{SupportedStandardRef: "a-b", StandardRef: "c"}
	b := Standard{SupportedStandardRef: "a", StandardRef: "b-c"}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestRelation_IsOrphanedControl(t *testing.T) {
	tests := []struct {
		name string
		rel  Relation
		want bool
	}{
		{"weakness and control", Relation{Weakness: "W", Control: "C"}, false},
		{"control only", Relation{Control: "C"}, true},
		{"weakness only", Relation{Weakness: "W"}, false},
		{"neither", Relation{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rel.IsOrphanedControl())
		})
	}
}
