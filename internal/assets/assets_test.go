package assets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsure_ExistingAssetsAreNotRefetched(t *testing.T) {
	dir := t.TempDir()
	binary := filepath.Join(dir, "xl-v1.2.3-linux-amd64")
	bundle := filepath.Join(dir, "xl-skill-v1.2.3.zip")
	require.NoError(t, os.WriteFile(binary, []byte("elf"), 0o755))
	require.NoError(t, os.WriteFile(bundle, []byte("zip"), 0o644))

	// With both assets on disk, Ensure never touches the network.
	paths, err := Ensure(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, binary, paths.Binary)
	assert.Equal(t, bundle, paths.Bundle)
}

func TestEnsure_CreatesAssetsDir(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "nested", ".xlbench")

	// Missing assets force a release lookup, which fails fast on a
	// cancelled context; the directory must exist regardless.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Ensure(ctx, dir)
	require.Error(t, err)

	info, statErr := os.Stat(dir)
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestFindAsset(t *testing.T) {
	dir := t.TempDir()

	path, err := findAsset(dir, binaryPattern)
	require.NoError(t, err)
	assert.Empty(t, path)

	want := filepath.Join(dir, "xl-v2.0.0-linux-amd64")
	require.NoError(t, os.WriteFile(want, []byte("elf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.txt"), []byte("x"), 0o644))

	path, err = findAsset(dir, binaryPattern)
	require.NoError(t, err)
	assert.Equal(t, want, path)
}

func TestDownloadMatching_NoMatch(t *testing.T) {
	rel := &release{TagName: "v1.0.0"}
	_, err := downloadMatching(context.Background(), rel, t.TempDir(), bundlePattern)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no asset matching")
}
