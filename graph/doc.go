// Package graph holds the output model of a library comparison and the
// Builder that accumulates it.
//
// A Graph is a bag of nodes, directed links and flat changelog items plus the
// comparison metadata. Nodes come in three kinds: entity nodes carry a status
// and an ordered list of field changes, group nodes bundle the changed
// members of one category under a fixed label, and exactly one root node
// stands for the library being compared. Node identifiers are random UUIDs
// assigned at construction, so two nodes with the same name never collide.
//
// The Builder owns the lazy grouping policy: AttachGrouped creates a group
// node only when it is handed at least one child, and both attach operations
// report whether anything was attached so callers can propagate "a descendant
// changed" upward.
package graph
