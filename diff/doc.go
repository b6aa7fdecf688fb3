// Package diff implements the comparison engine.
//
// A Comparer holds immutable configuration and is safe for concurrent use.
// Every call builds its own comparison context holding the snapshot pair, the
// library pair and a graph.Builder, and threads it through the per-category
// differs.
//
// # Categories
//
// A library comparison runs the categories in a fixed order: library
// metadata, categories of components, component definitions, supported
// standards, standards links, risk patterns (with their relation trees) and
// rules. When the two libraries come from different versions the
// version-global entities reachable from the library relations follow:
// usecases, threats, controls, weaknesses and references.
//
// Each category partitions its members by key into deleted (first only), new
// (second only) and modified (both, with a field or nested change). Members
// present in both without changes are dropped. Keys are walked in sorted
// order so output is reproducible.
//
// # Relation trees
//
// For every risk pattern present in both libraries, the relation trees
// produced by a RelationTreeFunc are compared level by level. A parent is
// emitted only when one of its descendants changed. A changed mitigation
// is hidden when mitigation values are not shown, but it still marks its
// ancestors as changed.
//
// # Errors
//
// A relation, component or entity referencing an identifier missing from the
// owning version aborts the comparison with a
// differr.KindStructuralInconsistency error. Version sweeps isolate such
// failures per library.
package diff
