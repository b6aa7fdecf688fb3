package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/zero-day-ai/libdiff/differr"
	"github.com/zero-day-ai/libdiff/snapshot"
)

var fileExtensions = []string{".yaml", ".yml", ".json"}

// FileSource reads versions from a directory of YAML or JSON files named
// after the version id.
type FileSource struct {
	dir string
}

// NewFileSource returns a FileSource over dir. The directory must exist.
func NewFileSource(dir string) (*FileSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, differr.NewConfiguration("store.NewFileSource", fmt.Errorf("failed to open snapshot dir: %w", err))
	}
	if !info.IsDir() {
		return nil, differr.NewConfiguration("store.NewFileSource",
			fmt.Errorf("%w: %s is not a directory", differr.ErrInvalidConfig, dir))
	}
	return &FileSource{dir: dir}, nil
}

// Dir returns the snapshot directory.
func (s *FileSource) Dir() string {
	return s.dir
}

// GetVersion implements Source. Files are re-read on every call.
func (s *FileSource) GetVersion(ctx context.Context, versionID string) (*snapshot.Version, error) {
	if versionID == "" || strings.ContainsAny(versionID, `/\`) || versionID == "." || versionID == ".." {
		return nil, differr.NewInvalidArgument(opGetVersion,
			fmt.Errorf("%w: version id %q", differr.ErrInvalidRequest, versionID))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, ext := range fileExtensions {
		path := filepath.Join(s.dir, versionID+ext)
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, differr.NewStorage(opGetVersion, fmt.Errorf("failed to read snapshot: %w", err)).
				WithContext(map[string]any{"version": versionID, "path": path})
		}

		v, err := decodeFile(data, ext)
		if err != nil {
			return nil, differr.NewStorage(opGetVersion, fmt.Errorf("failed to decode snapshot: %w", err)).
				WithContext(map[string]any{"version": versionID, "path": path})
		}
		return prepare(v, versionID)
	}

	return nil, versionNotFound(versionID)
}

// GetLibrary implements Source.
func (s *FileSource) GetLibrary(ctx context.Context, versionID, libraryRef string) (*snapshot.Library, error) {
	v, err := s.GetVersion(ctx, versionID)
	if err != nil {
		return nil, err
	}
	return libraryOf(v, libraryRef)
}

func decodeFile(data []byte, ext string) (*snapshot.Version, error) {
	var v snapshot.Version
	if ext == ".json" {
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, err
		}
		return &v, nil
	}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

// WriteFile stores v as <dir>/<id>.yaml.
func (s *FileSource) WriteFile(v *snapshot.Version) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return differr.NewStorage(opPut, fmt.Errorf("failed to encode snapshot: %w", err))
	}
	path := filepath.Join(s.dir, v.ID+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return differr.NewStorage(opPut, fmt.Errorf("failed to write snapshot: %w", err)).
			WithContext(map[string]any{"path": path})
	}
	return nil
}
