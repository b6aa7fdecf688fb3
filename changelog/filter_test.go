package changelog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/libdiff/differr"
	"github.com/zero-day-ai/libdiff/graph"
)

func TestNewFilter(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		wantErr bool
	}{
		{"category match", `category == "Threats"`, false},
		{"list membership", `"desc" in changes`, false},
		{"combined", `action != "D" && ref.startsWith("T")`, false},
		{"syntax error", `category ==`, true},
		{"unknown variable", `severity == "high"`, true},
		{"non-bool result", `ref`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilter(tt.expr)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, differr.IsInvalidArgument(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expr, f.String())
		})
	}
}

func TestFilter_Match(t *testing.T) {
	f, err := NewFilter(`category == "Threats" && "desc" in changes`)
	require.NoError(t, err)

	ok, err := f.Match("Threats", Entry{Ref: "T1", Action: graph.ActionEdit, Changes: []string{"name", "desc"}})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.Match("Threats", Entry{Ref: "T2", Action: graph.ActionNew})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.Match("Controls", Entry{Ref: "C1", Action: graph.ActionEdit, Changes: []string{"desc"}})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompact_WithFilter(t *testing.T) {
	f, err := NewFilter(`action == "D"`)
	require.NoError(t, err)

	r, err := Compact([]*graph.ChangelogItem{
		item("Threats", "T1", graph.ActionDelete),
		item("Threats", "T2", graph.ActionNew),
		item("Controls", "C1", graph.ActionEdit, "cost"),
	}, WithFilter(f))
	require.NoError(t, err)

	assert.Equal(t, []string{"Threats"}, r.Categories())
	threats, _ := r.Get("Threats")
	assert.Equal(t, []Entry{{Ref: "T1", Action: graph.ActionDelete, Changes: []string{}}}, threats)
}
