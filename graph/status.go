package graph

import "fmt"

// Status tags an entity node with its classification.
type Status string

const (
	// StatusNew marks an entity present only in the second snapshot.
	StatusNew Status = "NEW"

	// StatusModified marks an entity present in both snapshots with changes.
	StatusModified Status = "MODIFIED"

	// StatusDeleted marks an entity present only in the first snapshot.
	StatusDeleted Status = "DELETED"

	// StatusRoot marks an unchanged library root.
	StatusRoot Status = "ROOT"
)

// DefaultColor is used for group nodes and unrecognized statuses.
const DefaultColor = "#C0C0C0"

var statusColors = map[Status]string{
	StatusModified: "#f6ec48",
	StatusNew:      "#39e260",
	StatusDeleted:  "#fa4040",
	StatusRoot:     "#30cbe8",
}

// IsValid returns true if the status is one of the defined values.
func (s Status) IsValid() bool {
	_, ok := statusColors[s]
	return ok
}

// Color returns the display color for the status, or DefaultColor.
func (s Status) Color() string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return DefaultColor
}

// String returns the string representation of the status.
func (s Status) String() string {
	return string(s)
}

// Action is the changelog action code.
type Action string

const (
	// ActionNew records an added element.
	ActionNew Action = "N"

	// ActionEdit records a modified element.
	ActionEdit Action = "E"

	// ActionDelete records a deleted element.
	ActionDelete Action = "D"
)

var actionVerbs = map[Action]string{
	ActionNew:    "added",
	ActionEdit:   "modified",
	ActionDelete: "deleted",
}

var actionStatuses = map[Action]Status{
	ActionNew:    StatusNew,
	ActionEdit:   StatusModified,
	ActionDelete: StatusDeleted,
}

// IsValid returns true if the action is N, E or D.
func (a Action) IsValid() bool {
	_, ok := actionVerbs[a]
	return ok
}

// Info returns the human-readable sentence describing the action on ref.
// Unknown actions produce an empty sentence.
func (a Action) Info(ref string) string {
	verb, ok := actionVerbs[a]
	if !ok {
		return ""
	}
	return fmt.Sprintf("The element %s has been %s", ref, verb)
}

// Status returns the node status matching the action, or an empty Status.
func (a Action) Status() Status {
	return actionStatuses[a]
}

// String returns the string representation of the action.
func (a Action) String() string {
	return string(a)
}
