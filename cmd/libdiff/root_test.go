package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zero-day-ai/libdiff/differr"
	"github.com/zero-day-ai/libdiff/snapshot/snapshottest"
	"github.com/zero-day-ai/libdiff/store"
)

// snapshotDir writes the fixture pair to a temporary directory.
func snapshotDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	src, err := store.NewFileSource(dir)
	require.NoError(t, err)

	v1, v2 := snapshottest.Pair()
	require.NoError(t, src.WriteFile(v1))
	require.NoError(t, src.WriteFile(v2))
	return dir
}

// run executes the root command and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestSummaryCommand(t *testing.T) {
	out, err := run(t, "--store-dir", snapshotDir(t), "summary", "v1", "v2")
	require.NoError(t, err)

	var got struct {
		Added    []struct{ Ref string } `json:"added"`
		Deleted  []struct{ Ref string } `json:"deleted"`
		Modified []struct{ Ref string } `json:"modified"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Added, 1)
	assert.Equal(t, "lib-new", got.Added[0].Ref)
	require.Len(t, got.Deleted, 1)
	assert.Equal(t, "lib-old", got.Deleted[0].Ref)
	require.Len(t, got.Modified, 1)
}

func TestCompactCommand(t *testing.T) {
	dir := snapshotDir(t)

	t.Run("all libraries", func(t *testing.T) {
		out, err := run(t, "--store-dir", dir, "compact", "v1", "v2")
		require.NoError(t, err)
		assert.JSONEq(t, `{"RiskPattern":[{"ref":"RP2","action":"D","changes":[]}]}`, out)
	})

	t.Run("filtered", func(t *testing.T) {
		out, err := run(t, "--store-dir", dir, "compact", "v1", "v2", "lib-a", "--filter", `action == "N"`)
		require.NoError(t, err)
		assert.JSONEq(t, `{}`, out)
	})

	t.Run("bad filter", func(t *testing.T) {
		_, err := run(t, "--store-dir", dir, "compact", "v1", "v2", "--filter", "action ==")
		require.Error(t, err)
		assert.True(t, differr.IsInvalidArgument(err))
	})
}

func TestLibraryCommand_ShowMitigations(t *testing.T) {
	dir := snapshotDir(t)

	out, err := run(t, "--store-dir", dir, "--show-mitigations", "library", "v1", "v2", "lib-a")
	require.NoError(t, err)
	assert.Contains(t, out, `"element":"Relation:Control"`)

	out, err = run(t, "--store-dir", dir, "library", "v1", "v2", "lib-a")
	require.NoError(t, err)
	assert.NotContains(t, out, `"element":"Relation:Control"`)
}

func TestConfigFile(t *testing.T) {
	dir := snapshotDir(t)
	path := filepath.Join(t.TempDir(), "libdiff.yaml")
	cfg := "show_mitigation_values: true\nlog:\n  level: error\nstore:\n  kind: file\n  dir: " + dir + "\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	out, err := run(t, "--config", path, "relations", "v1", "v2")
	require.NoError(t, err)
	assert.Contains(t, out, `"mitigation":"60"`)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("list_comparison: random\n"), 0o600))
	_, err = run(t, "--config", bad, "summary", "v1", "v2")
	assert.ErrorIs(t, err, differr.ErrInvalidConfig)
}

func TestCommandErrors(t *testing.T) {
	dir := snapshotDir(t)

	_, err := run(t, "--store-dir", dir, "versions", "v1", "v9")
	assert.True(t, differr.IsNotFound(err))

	_, err = run(t, "--store-dir", dir, "libraries", "v1", "lib-a", "v2")
	assert.Error(t, err)

	_, err = run(t, "--store-dir", filepath.Join(dir, "missing"), "summary", "v1", "v2")
	assert.Equal(t, differr.KindConfiguration, differr.KindOf(err))
}

func TestHealthCommand(t *testing.T) {
	dir := snapshotDir(t)

	out, err := run(t, "--store-dir", dir, "health", "v1", "v2")
	require.NoError(t, err)
	assert.Contains(t, out, `"status":"healthy"`)

	out, err = run(t, "--store-dir", dir, "health", "v9")
	require.Error(t, err)
	assert.Contains(t, out, `"status":"unhealthy"`)
}

func TestSetup_ClosesSourceOnError(t *testing.T) {
	mr := miniredis.RunT(t)
	path := filepath.Join(t.TempDir(), "libdiff.yaml")
	cfg := "log:\n  level: error\nstore:\n  kind: redis\n  redis:\n    url: redis://" + mr.Addr() + "\n"
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	a := &app{configPath: path, filter: "action =="}
	err := a.setup(&cobra.Command{}, nil)
	require.Error(t, err)
	assert.True(t, differr.IsInvalidArgument(err))
	assert.Empty(t, a.closers)
	assert.Nil(t, a.svc)
}
