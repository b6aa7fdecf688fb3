package differr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrVersionNotFound", ErrVersionNotFound, "version not found"},
		{"ErrLibraryNotFound", ErrLibraryNotFound, "library not found"},
		{"ErrDanglingReference", ErrDanglingReference, "dangling reference"},
		{"ErrLibraryAbsent", ErrLibraryAbsent, "library absent from both snapshots"},
		{"ErrInvalidConfig", ErrInvalidConfig, "invalid configuration"},
		{"ErrInvalidRequest", ErrInvalidRequest, "invalid request"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "without wrapped error",
			err:  &Error{Op: "diff.CompareLibraries", Kind: KindInvalidArgument},
			want: "libdiff: diff.CompareLibraries: invalid_argument",
		},
		{
			name: "with wrapped error",
			err:  NewNotFound("store.GetVersion", ErrVersionNotFound),
			want: "libdiff: store.GetVersion (not_found): version not found",
		},
		{
			name: "with context sorted by key",
			err: NewStructural("diff.threats", ErrDanglingReference).WithContext(map[string]any{
				"version": "v2",
				"ref":     "T1",
			}),
			want: "libdiff: diff.threats (structural_inconsistency): dangling reference [ref=T1 version=v2]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestError_Is(t *testing.T) {
	err := NewNotFound("store.GetLibrary", ErrLibraryNotFound)
	wrapped := fmt.Errorf("loading first library: %w", err)

	assert.True(t, errors.Is(wrapped, ErrLibraryNotFound))
	assert.False(t, errors.Is(wrapped, ErrVersionNotFound))
	assert.True(t, errors.Is(wrapped, &Error{Kind: KindNotFound}))
	assert.True(t, errors.Is(wrapped, &Error{Op: "store.GetLibrary", Kind: KindNotFound}))
	assert.False(t, errors.Is(wrapped, &Error{Op: "store.GetVersion", Kind: KindNotFound}))
	assert.False(t, errors.Is(wrapped, &Error{Kind: KindStorage}))
	assert.False(t, err.Is(nil))
}

func TestError_WithContextDoesNotMutate(t *testing.T) {
	base := NewStructural("diff.usecases", ErrDanglingReference)
	withCtx := base.WithContext(map[string]any{"ref": "UC1"})
	more := withCtx.WithContext(map[string]any{"version": "v1"})

	assert.Nil(t, base.Context)
	assert.Equal(t, map[string]any{"ref": "UC1"}, withCtx.Context)
	assert.Equal(t, map[string]any{"ref": "UC1", "version": "v1"}, more.Context)
}

func TestKindHelpers(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		wantKind       Kind
		wantNotFound   bool
		wantStructural bool
		wantInvalid    bool
	}{
		{"not found", NewNotFound("op", ErrVersionNotFound), KindNotFound, true, false, false},
		{"structural", NewStructural("op", ErrDanglingReference), KindStructuralInconsistency, false, true, false},
		{"invalid argument", NewInvalidArgument("op", ErrLibraryAbsent), KindInvalidArgument, false, false, true},
		{"configuration", NewConfiguration("op", ErrInvalidConfig), KindConfiguration, false, false, false},
		{"storage", NewStorage("op", errors.New("boom")), KindStorage, false, false, false},
		{"plain error", errors.New("plain"), "", false, false, false},
		{"nil", nil, "", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantKind, KindOf(tt.err))
			assert.Equal(t, tt.wantNotFound, IsNotFound(tt.err))
			assert.Equal(t, tt.wantStructural, IsStructural(tt.err))
			assert.Equal(t, tt.wantInvalid, IsInvalidArgument(tt.err))
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := NewStorage("store.RedisSource.GetVersion", inner)

	var target *Error
	require.True(t, errors.As(fmt.Errorf("outer: %w", err), &target))
	assert.Equal(t, KindStorage, target.Kind)
	assert.Same(t, inner, errors.Unwrap(err))
}
