// Package snapshot defines the read-only input model compared by libdiff.
//
// A Version is a point-in-time export of a content-library collection. It owns
// a set of libraries plus version-global tables (threats, weaknesses, controls,
// usecases, references and component categories) keyed by stable ref.
// Libraries own their component definitions, risk patterns, standards, rules
// and relations. A Relation is a many-to-many edge whose endpoints resolve
// against the owning version's global tables.
//
// Snapshots are treated as immutable while a comparison runs. Map iteration
// order is never relied upon: use SortedKeys to walk a collection
// deterministically.
//
// BuildRelationTree flattens a library's relation table into the nested
// risk pattern → usecase → threat → {weakness → control, orphaned control}
// shape consumed by the relation-tree differ.
package snapshot
