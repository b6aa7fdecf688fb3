package store

import (
	"context"
	"sync"

	"github.com/zero-day-ai/libdiff/snapshot"
)

// MemorySource is a Source over versions held in memory.
type MemorySource struct {
	mu       sync.RWMutex
	versions map[string]*snapshot.Version
}

// NewMemorySource returns a MemorySource holding the given versions.
func NewMemorySource(versions ...*snapshot.Version) *MemorySource {
	s := &MemorySource{versions: make(map[string]*snapshot.Version, len(versions))}
	for _, v := range versions {
		s.versions[v.ID] = v.Normalize()
	}
	return s
}

// Put adds or replaces a version.
func (s *MemorySource) Put(_ context.Context, v *snapshot.Version) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.versions[v.ID] = v.Normalize()
	return nil
}

// GetVersion implements Source.
func (s *MemorySource) GetVersion(_ context.Context, versionID string) (*snapshot.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.versions[versionID]
	if !ok {
		return nil, versionNotFound(versionID)
	}
	return v, nil
}

// GetLibrary implements Source.
func (s *MemorySource) GetLibrary(ctx context.Context, versionID, libraryRef string) (*snapshot.Library, error) {
	v, err := s.GetVersion(ctx, versionID)
	if err != nil {
		return nil, err
	}
	return libraryOf(v, libraryRef)
}

// VersionIDs returns the ids of all held versions in sorted order.
func (s *MemorySource) VersionIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot.SortedKeys(s.versions)
}
