package differr

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Sentinel errors wrapped by *Error. Use errors.Is to match them.
var (
	// ErrVersionNotFound indicates the requested snapshot version does not exist.
	ErrVersionNotFound = errors.New("version not found")

	// ErrLibraryNotFound indicates the requested library does not exist in a version.
	ErrLibraryNotFound = errors.New("library not found")

	// ErrDanglingReference indicates an identifier referenced by a relation or
	// entity is missing from the owning version's lookup tables.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrLibraryAbsent indicates a library is present in neither compared snapshot.
	ErrLibraryAbsent = errors.New("library absent from both snapshots")

	// ErrInvalidConfig indicates the provided configuration is invalid or incomplete.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidRequest indicates a comparison request is missing required fields.
	ErrInvalidRequest = errors.New("invalid request")
)

// Kind categorizes errors by their type.
type Kind string

const (
	KindNotFound                Kind = "not_found"
	KindStructuralInconsistency Kind = "structural_inconsistency"
	KindInvalidArgument         Kind = "invalid_argument"
	KindConfiguration           Kind = "configuration"
	KindStorage                 Kind = "storage"
)

// Error wraps an underlying error with the operation that failed and the
// category of the failure.
type Error struct {
	// Op is the operation that failed (e.g. "diff.CompareLibraries").
	Op string

	// Kind categorizes the error.
	Kind Kind

	// Err is the underlying error.
	Err error

	// Context carries identifiers useful for debugging (refs, version ids).
	Context map[string]any
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("libdiff: %s: %s", e.Op, e.Kind)
	}
	if len(e.Context) > 0 {
		return fmt.Sprintf("libdiff: %s (%s): %v [%s]", e.Op, e.Kind, e.Err, formatContext(e.Context))
	}
	return fmt.Sprintf("libdiff: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches a target *Error by Kind (and Op when the target sets one), and
// otherwise delegates to the wrapped error.
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*Error); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}
	return errors.Is(e.Err, target)
}

// WithContext returns a copy of the error with the given context merged in.
func (e *Error) WithContext(ctx map[string]any) *Error {
	newErr := *e
	newErr.Context = make(map[string]any, len(e.Context)+len(ctx))
	maps.Copy(newErr.Context, e.Context)
	maps.Copy(newErr.Context, ctx)
	return &newErr
}

// formatContext renders context pairs in key order so messages are stable.
func formatContext(ctx map[string]any) string {
	parts := make([]string, 0, len(ctx))
	for _, k := range slices.Sorted(maps.Keys(ctx)) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, ctx[k]))
	}
	return strings.Join(parts, " ")
}

// New creates an *Error of the given kind.
func New(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// NewNotFound creates an *Error with KindNotFound.
func NewNotFound(op string, err error) *Error {
	return New(op, KindNotFound, err)
}

// NewStructural creates an *Error with KindStructuralInconsistency.
func NewStructural(op string, err error) *Error {
	return New(op, KindStructuralInconsistency, err)
}

// NewInvalidArgument creates an *Error with KindInvalidArgument.
func NewInvalidArgument(op string, err error) *Error {
	return New(op, KindInvalidArgument, err)
}

// NewConfiguration creates an *Error with KindConfiguration.
func NewConfiguration(op string, err error) *Error {
	return New(op, KindConfiguration, err)
}

// NewStorage creates an *Error with KindStorage.
func NewStorage(op string, err error) *Error {
	return New(op, KindStorage, err)
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsNotFound reports whether err is a not-found error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsStructural reports whether err is a structural inconsistency in the input snapshots.
func IsStructural(err error) bool {
	return KindOf(err) == KindStructuralInconsistency
}

// IsInvalidArgument reports whether err is an invalid-argument error.
func IsInvalidArgument(err error) bool {
	return KindOf(err) == KindInvalidArgument
}
