package graph

import "github.com/google/uuid"

// Kind discriminates the node variants.
type Kind string

const (
	KindEntity Kind = "entity"
	KindGroup  Kind = "group"
	KindRoot   Kind = "root"
)

// Change records one field whose value differs between the two snapshots.
type Change struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// Changes accumulates field changes, skipping equal values.
type Changes []Change

// Add appends a Change for field when before and after differ.
func (c *Changes) Add(field, before, after string) *Changes {
	if before != after {
		*c = append(*c, Change{Field: field, Old: before, New: after})
	}
	return c
}

// Fields returns the changed field names in order.
func (c Changes) Fields() []string {
	fields := make([]string, 0, len(c))
	for _, ch := range c {
		fields = append(fields, ch.Field)
	}
	return fields
}

// Node is a vertex of the comparison graph.
type Node struct {
	// ID is a random UUID assigned at construction.
	ID string `json:"id"`

	Kind Kind   `json:"kind"`
	Name string `json:"name"`

	// Changes is empty for group nodes and for added or deleted entities.
	Changes Changes `json:"changes"`

	// Status is empty for group nodes.
	Status Status `json:"status,omitempty"`
	Color  string `json:"color"`
}

// NewEntity returns an entity node with the given status.
func NewEntity(name string, status Status, changes Changes) *Node {
	if changes == nil {
		changes = Changes{}
	}
	return &Node{
		ID:      uuid.NewString(),
		Kind:    KindEntity,
		Name:    name,
		Changes: changes,
		Status:  status,
		Color:   status.Color(),
	}
}

// NewGroup returns a group node with a fixed label.
func NewGroup(label string) *Node {
	return &Node{
		ID:      uuid.NewString(),
		Kind:    KindGroup,
		Name:    label,
		Changes: Changes{},
		Color:   DefaultColor,
	}
}

// NewRoot returns the library root node. A root with changes is MODIFIED.
func NewRoot(name string, changes Changes) *Node {
	n := NewEntity(name, StatusRoot, changes)
	n.Kind = KindRoot
	if len(changes) > 0 {
		n.SetStatus(StatusModified)
	}
	return n
}

// SetStatus updates the status and the derived color.
func (n *Node) SetStatus(s Status) {
	n.Status = s
	n.Color = s.Color()
}

// Link is a directed edge between two nodes. Duplicates are permitted.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// ChangelogItem is the flat record of one added, deleted or modified element.
type ChangelogItem struct {
	Element    string  `json:"element"`
	ElementRef string  `json:"elementRef"`
	Action     Action  `json:"action"`
	Info       string  `json:"info"`
	Changes    Changes `json:"changes"`
}
