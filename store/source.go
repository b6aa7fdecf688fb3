package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/zero-day-ai/libdiff/differr"
	"github.com/zero-day-ai/libdiff/snapshot"
)

// Source resolves snapshot versions by id.
type Source interface {
	// GetVersion returns the version with the given id.
	GetVersion(ctx context.Context, versionID string) (*snapshot.Version, error)

	// GetLibrary returns one library of the given version.
	GetLibrary(ctx context.Context, versionID, libraryRef string) (*snapshot.Library, error)
}

const (
	opGetVersion = "store.GetVersion"
	opGetLibrary = "store.GetLibrary"
	opPut        = "store.Put"
)

var validate = validator.New()

// libraryOf looks a library up in v, or returns a not-found error.
func libraryOf(v *snapshot.Version, libraryRef string) (*snapshot.Library, error) {
	lib := v.Library(libraryRef)
	if lib == nil {
		return nil, differr.NewNotFound(opGetLibrary, differr.ErrLibraryNotFound).
			WithContext(map[string]any{"version": v.ID, "library": libraryRef})
	}
	return lib, nil
}

func versionNotFound(versionID string) error {
	return differr.NewNotFound(opGetVersion, differr.ErrVersionNotFound).
		WithContext(map[string]any{"version": versionID})
}

// prepare normalizes a decoded version and checks it identifies itself.
// An empty id is taken from the id it was requested under.
func prepare(v *snapshot.Version, versionID string) (*snapshot.Version, error) {
	if v.ID == "" {
		v.ID = versionID
	}
	v.Normalize()

	if err := validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			err = fmt.Errorf("%s failed on %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return nil, differr.NewStorage(opGetVersion, fmt.Errorf("invalid snapshot: %w", err)).
			WithContext(map[string]any{"version": versionID})
	}
	if v.ID != versionID {
		return nil, differr.NewStorage(opGetVersion,
			fmt.Errorf("snapshot declares id %q", v.ID)).
			WithContext(map[string]any{"version": versionID})
	}
	return v, nil
}
