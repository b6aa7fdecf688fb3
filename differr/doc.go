// Package differr provides the structured error type used across libdiff.
//
// Every failure surfaced by the diff engine, the snapshot sources and the
// configuration layer is a *Error carrying the operation that failed, a Kind
// and a wrapped sentinel. Both sentinel matching and kind matching work with
// the standard errors package:
//
//	g, err := cmp.CompareLibraries(ctx, v1, lib1, v2, lib2)
//	if errors.Is(err, differr.ErrDanglingReference) {
//	    // the snapshot references an entity missing from its version tables
//	}
//	if differr.IsNotFound(err) {
//	    // unknown version or library
//	}
//
// # Kinds
//
//   - KindNotFound: unknown version or library ref
//   - KindStructuralInconsistency: a relation or entity references an identifier
//     absent from the version lookup tables
//   - KindInvalidArgument: the request cannot be satisfied as stated
//   - KindConfiguration: configuration could not be loaded or validated
//   - KindStorage: a snapshot source failed for reasons other than not-found
package differr
