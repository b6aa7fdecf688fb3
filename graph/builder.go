package graph

// Builder accumulates the nodes, links and changelog items of one comparison.
// A Builder is not safe for concurrent use.
type Builder struct {
	g *Graph
}

// NewBuilder returns a Builder over a fresh Graph.
func NewBuilder(showMitigations bool) *Builder {
	return &Builder{g: New(showMitigations)}
}

// Graph returns the accumulated graph.
func (b *Builder) Graph() *Graph {
	return b.g
}

// ShowMitigations reports whether mitigation changes are rendered.
func (b *Builder) ShowMitigations() bool {
	return b.g.ShowMitigations
}

// AddNode appends n to the graph.
func (b *Builder) AddNode(n *Node) {
	b.g.Nodes = append(b.g.Nodes, n)
}

// AddLink appends a directed link.
func (b *Builder) AddLink(source, target string) {
	b.g.Links = append(b.g.Links, Link{Source: source, Target: target})
}

// AttachGrouped links children to parentID through a new group node labelled
// label. Nothing is added when children is empty. It reports whether
// anything was attached.
func (b *Builder) AttachGrouped(parentID, label string, children []*Node) bool {
	if len(children) == 0 {
		return false
	}
	group := NewGroup(label)
	b.AddNode(group)
	b.AddLink(parentID, group.ID)
	for _, n := range children {
		b.AddNode(n)
		b.AddLink(group.ID, n.ID)
	}
	return true
}

// AttachFlat links children directly to parentID. Nothing is added when
// children is empty. It reports whether anything was attached.
func (b *Builder) AttachFlat(parentID string, children []*Node) bool {
	if len(children) == 0 {
		return false
	}
	for _, n := range children {
		b.AddNode(n)
		b.AddLink(parentID, n.ID)
	}
	return true
}

// Record appends a changelog item.
func (b *Builder) Record(element, ref string, action Action, changes Changes) {
	if changes == nil {
		changes = Changes{}
	}
	b.g.Changelog = append(b.g.Changelog, &ChangelogItem{
		Element:    element,
		ElementRef: ref,
		Action:     action,
		Info:       action.Info(ref),
		Changes:    changes,
	})
}
