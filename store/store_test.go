package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/libdiff/differr"
	"github.com/zero-day-ai/libdiff/snapshot"
	"github.com/zero-day-ai/libdiff/snapshot/snapshottest"
)

// sourceContract checks behavior every Source must share. The source must
// hold snapshottest.NewVersion("v1") and nothing under "missing".
func sourceContract(t *testing.T, src Source) {
	t.Helper()
	ctx := context.Background()

	t.Run("get version", func(t *testing.T) {
		v, err := src.GetVersion(ctx, "v1")
		require.NoError(t, err)
		assert.Equal(t, "v1", v.ID)
		assert.Equal(t, []string{snapshottest.LibraryRef}, v.LibraryRefs())
		require.Contains(t, v.Threats, "T1")
		assert.Equal(t, "T1", v.Threats["T1"].Ref)
	})

	t.Run("get library", func(t *testing.T) {
		lib, err := src.GetLibrary(ctx, "v1", snapshottest.LibraryRef)
		require.NoError(t, err)
		assert.Equal(t, "Library A", lib.Name)
		assert.Equal(t, "3", lib.Revision)
		assert.Len(t, lib.Relations, 2)
	})

	t.Run("unknown version", func(t *testing.T) {
		_, err := src.GetVersion(ctx, "missing")
		require.Error(t, err)
		assert.True(t, differr.IsNotFound(err))
		assert.True(t, errors.Is(err, differr.ErrVersionNotFound))
	})

	t.Run("unknown library", func(t *testing.T) {
		_, err := src.GetLibrary(ctx, "v1", "lib-z")
		require.Error(t, err)
		assert.True(t, differr.IsNotFound(err))
		assert.True(t, errors.Is(err, differr.ErrLibraryNotFound))
	})

	t.Run("library of unknown version", func(t *testing.T) {
		_, err := src.GetLibrary(ctx, "missing", snapshottest.LibraryRef)
		assert.True(t, errors.Is(err, differr.ErrVersionNotFound))
	})
}

func TestMemorySource(t *testing.T) {
	src := NewMemorySource(snapshottest.NewVersion("v1"))
	sourceContract(t, src)

	require.NoError(t, src.Put(context.Background(), snapshot.NewVersion("v0")))
	assert.Equal(t, []string{"v0", "v1"}, src.VersionIDs())
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	src, err := NewFileSource(dir)
	require.NoError(t, err)
	require.NoError(t, src.WriteFile(snapshottest.NewVersion("v1")))

	sourceContract(t, src)
}

func TestFileSource_JSON(t *testing.T) {
	dir := t.TempDir()
	data, err := json.Marshal(snapshottest.NewVersion("v1"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "v1.json"), data, 0o600))

	src, err := NewFileSource(dir)
	require.NoError(t, err)

	sourceContract(t, src)
}

func TestFileSource_RefsFromKeys(t *testing.T) {
	dir := t.TempDir()
	doc := `
libraries:
  lib-x:
    name: Library X
    revision: "1"
    riskPatterns:
      RP1:
        name: Login
threats:
  T9:
    name: Replay
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2024-06.yml"), []byte(doc), 0o600))

	src, err := NewFileSource(dir)
	require.NoError(t, err)

	v, err := src.GetVersion(context.Background(), "2024-06")
	require.NoError(t, err)
	assert.Equal(t, "2024-06", v.ID)
	assert.Equal(t, "T9", v.Threats["T9"].Ref)

	lib := v.Library("lib-x")
	require.NotNil(t, lib)
	assert.Equal(t, "lib-x", lib.Ref)
	assert.Equal(t, "RP1", lib.RiskPatterns["RP1"].Ref)
	assert.NotNil(t, lib.Relations)
}

func TestFileSource_Errors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("libraries: ["), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("id: not-other\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "null-library.yaml"), []byte("libraries:\n  lib-a:\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "null-threat.yaml"), []byte("threats:\n  T1:\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "null-relation.yaml"),
		[]byte("libraries:\n  lib-a:\n    relations:\n      r1:\n"), 0o600))

	src, err := NewFileSource(dir)
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name     string
		id       string
		wantKind differr.Kind
	}{
		{"malformed file", "broken", differr.KindStorage},
		{"mismatched id", "other", differr.KindStorage},
		{"null library", "null-library", differr.KindStorage},
		{"null threat", "null-threat", differr.KindStorage},
		{"null relation", "null-relation", differr.KindStorage},
		{"path traversal", "../etc", differr.KindInvalidArgument},
		{"empty id", "", differr.KindInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := src.GetVersion(ctx, tt.id)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, differr.KindOf(err))
		})
	}
}

func TestNewFileSource_MissingDir(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Equal(t, differr.KindConfiguration, differr.KindOf(err))
}

// setupRedisSource creates a miniredis instance and returns a connected RedisSource.
func setupRedisSource(t *testing.T) (*RedisSource, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	src, err := NewRedisSource(RedisOptions{
		URL:    fmt.Sprintf("redis://%s", mr.Addr()),
		Prefix: "test",
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = src.Close()
		mr.Close()
	})

	return src, mr
}

func TestRedisSource(t *testing.T) {
	src, mr := setupRedisSource(t)
	require.NoError(t, src.Put(context.Background(), snapshottest.NewVersion("v1")))

	assert.True(t, mr.Exists("test:version:v1"))
	sourceContract(t, src)
}

func TestRedisSource_CorruptValue(t *testing.T) {
	src, mr := setupRedisSource(t)
	require.NoError(t, mr.Set("test:version:bad", "{not json"))

	_, err := src.GetVersion(context.Background(), "bad")
	require.Error(t, err)
	assert.Equal(t, differr.KindStorage, differr.KindOf(err))
	assert.Contains(t, err.Error(), "failed to unmarshal version bad")
}

func TestNewRedisSource_Errors(t *testing.T) {
	t.Run("invalid url", func(t *testing.T) {
		_, err := NewRedisSource(RedisOptions{URL: "invalid://url"})
		require.Error(t, err)
		assert.Equal(t, differr.KindConfiguration, differr.KindOf(err))
	})

	t.Run("connection refused", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := NewRedisSource(RedisOptions{URL: fmt.Sprintf("redis://%s", addr)})
		require.Error(t, err)
		assert.Equal(t, differr.KindStorage, differr.KindOf(err))
	})
}

var (
	_ Source = (*MemorySource)(nil)
	_ Source = (*FileSource)(nil)
	_ Source = (*RedisSource)(nil)
)

func TestRedisSource_Ping(t *testing.T) {
	src, mr := setupRedisSource(t)
	require.NoError(t, src.Ping(context.Background()))

	mr.Close()
	assert.Error(t, src.Ping(context.Background()))
}

func TestRedisSource_NullEntry(t *testing.T) {
	src, mr := setupRedisSource(t)
	require.NoError(t, mr.Set("test:version:v1", `{"id":"v1","libraries":{"lib-a":null}}`))

	_, err := src.GetVersion(context.Background(), "v1")
	require.Error(t, err)
	assert.Equal(t, differr.KindStorage, differr.KindOf(err))
	assert.Contains(t, err.Error(), "invalid snapshot")
}
