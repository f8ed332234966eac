package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func newTestManager(t *testing.T, dir string) *AssetManager {
	t.Helper()
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir))
	t.Cleanup(am.Shutdown)
	return am
}

func TestDetermineAssetType(t *testing.T) {
	cases := map[string]ResourceType{
		"shaders/gui.vert.spv": ResourceTypeShader,
		"textures/wood.PNG":    ResourceTypeImage,
		"textures/photo.jpeg":  ResourceTypeImage,
		"models/helmet.gltf":   ResourceTypeModel,
		"models/helmet.glb":    ResourceTypeModel,
		"fonts/ubuntu.fnt":     ResourceTypeBitmapFont,
		"notes/readme.txt":     ResourceTypeNone,
		"Makefile":             ResourceTypeNone,
	}
	for path, want := range cases {
		assert.Equal(t, want, determineAssetType(path), path)
	}
}

func TestAssetManagerIndexesOnInitialize(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.spv", make([]byte, 8))
	writeFile(t, dir, "b.glb", []byte("glTF\x02\x00\x00\x00\x0c\x00\x00\x00"))
	writeFile(t, dir, "ignored.txt", []byte("hello"))

	am := newTestManager(t, dir)
	assert.Equal(t, 2, am.Count())
}

func TestAssetManagerLoadDispatchesByExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "basic.spv", make([]byte, 16))
	am := newTestManager(t, dir)

	resource, err := am.LoadAsset(path, nil)
	require.NoError(t, err)
	assert.Equal(t, ResourceTypeShader, resource.Type)
	assert.Equal(t, "basic.spv", resource.Name)

	require.NoError(t, am.UnloadAsset(resource))
	assert.Nil(t, resource.Data)
}

func TestAssetManagerLoadRejectsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.bin", []byte{1, 2, 3})
	am := newTestManager(t, dir)

	_, err := am.LoadAsset(path, nil)
	assert.ErrorIs(t, err, core.ErrInvalidExtension)
}

func TestAssetManagerPicksUpNewFiles(t *testing.T) {
	dir := t.TempDir()
	am := newTestManager(t, dir)
	require.Zero(t, am.Count())

	writeFile(t, dir, "late.spv", make([]byte, 4))

	assert.Eventually(t, func() bool {
		return am.Count() == 1
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAssetManagerForgetsRemovedFiles(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "gone.spv", make([]byte, 4))
	am := newTestManager(t, dir)
	require.Equal(t, 1, am.Count())

	require.NoError(t, os.Remove(path))

	assert.Eventually(t, func() bool {
		return am.Count() == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestAssetManagerShutdownIsIdempotent(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(t.TempDir()))

	am.Shutdown()
	am.Shutdown()
}
