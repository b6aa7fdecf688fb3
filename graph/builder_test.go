package graph

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChanges_Add(t *testing.T) {
	var changes Changes
	changes.Add("name", "a", "a").Add("desc", "x", "y").Add("revision", "", "")

	require.Len(t, changes, 1)
	assert.Equal(t, Change{Field: "desc", Old: "x", New: "y"}, changes[0])
	assert.Equal(t, []string{"desc"}, changes.Fields())
}

func TestNewRoot(t *testing.T) {
	unchanged := NewRoot("lib", nil)
	assert.Equal(t, KindRoot, unchanged.Kind)
	assert.Equal(t, StatusRoot, unchanged.Status)
	assert.Equal(t, "#30cbe8", unchanged.Color)
	assert.NotNil(t, unchanged.Changes)

	changed := NewRoot("lib", Changes{{Field: "revision", Old: "3", New: "4"}})
	assert.Equal(t, StatusModified, changed.Status)
	assert.Equal(t, "#f6ec48", changed.Color)
}

func TestNode_IdentityNotContentDerived(t *testing.T) {
	a := NewEntity("T1", StatusNew, nil)
	b := NewEntity("T1", StatusNew, nil)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Len(t, a.ID, 36)
}

func TestBuilder_AttachGrouped(t *testing.T) {
	b := NewBuilder(false)
	root := NewRoot("lib", nil)
	b.AddNode(root)

	assert.False(t, b.AttachGrouped(root.ID, "riskPatterns", nil))
	assert.Len(t, b.Graph().Nodes, 1)
	assert.Empty(t, b.Graph().Links)

	child := NewEntity("RP1", StatusDeleted, nil)
	assert.True(t, b.AttachGrouped(root.ID, "riskPatterns", []*Node{child}))

	g := b.Graph()
	require.Len(t, g.Nodes, 3)
	group := g.Nodes[1]
	assert.Equal(t, KindGroup, group.Kind)
	assert.Equal(t, "riskPatterns", group.Name)
	assert.Equal(t, DefaultColor, group.Color)
	assert.Equal(t, []Link{{root.ID, group.ID}, {group.ID, child.ID}}, g.Links)
	assert.Equal(t, []*Node{group}, g.Children(root.ID))
	assert.Equal(t, []*Node{child}, g.Children(group.ID))
}

func TestBuilder_AttachFlat(t *testing.T) {
	b := NewBuilder(true)
	parent := NewEntity("T1", StatusModified, nil)

	assert.False(t, b.AttachFlat(parent.ID, []*Node{}))

	children := []*Node{NewEntity("W1", StatusNew, nil), NewEntity("C1", StatusDeleted, nil)}
	assert.True(t, b.AttachFlat(parent.ID, children))

	g := b.Graph()
	assert.Len(t, g.Nodes, 2)
	assert.Equal(t, []Link{{parent.ID, children[0].ID}, {parent.ID, children[1].ID}}, g.Links)
	assert.True(t, b.ShowMitigations())
}

func TestBuilder_Record(t *testing.T) {
	b := NewBuilder(false)
	b.Record("RiskPattern", "RP1", ActionDelete, nil)

	require.Len(t, b.Graph().Changelog, 1)
	item := b.Graph().Changelog[0]
	assert.Equal(t, "RiskPattern", item.Element)
	assert.Equal(t, "RP1", item.ElementRef)
	assert.Equal(t, ActionDelete, item.Action)
	assert.Equal(t, "The element RP1 has been deleted", item.Info)
	assert.NotNil(t, item.Changes)
}

func TestGraph_JSON(t *testing.T) {
	g := New(true)
	assert.True(t, g.IsEmpty())
	assert.Nil(t, g.Root())

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"nodes": [],
		"links": [],
		"changelogList": [],
		"revFirst": "",
		"revSecond": "",
		"equalRevisionNumber": false,
		"showMitigations": true,
		"directed": true,
		"multigraph": false
	}`, string(data))
}

func TestGraphList(t *testing.T) {
	gl := NewList()
	gl.Put("b", New(false))
	gl.Put("a", New(false))

	var order []string
	gl.Each(func(ref string, _ *Graph) { order = append(order, ref) })
	assert.Equal(t, []string{"b", "a"}, order, "insertion order is preserved")

	_, ok := gl.Get("a")
	assert.True(t, ok)
	assert.NoError(t, gl.Err())

	cause := errors.New("dangling")
	gl.Fail("c", cause)
	require.Len(t, gl.Failures, 1)
	assert.ErrorIs(t, gl.Err(), cause)
	assert.Contains(t, gl.Err().Error(), "library c")

	data, err := json.Marshal(gl)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, string(decoded["graphs"]), `"b"`)
	assert.JSONEq(t, `[{"library":"c","error":"dangling"}]`, string(decoded["failures"]))
}
