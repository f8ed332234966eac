package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/aurora/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadApplicationConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadApplicationConfig(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	defaults := DefaultApplicationConfig()
	assert.Equal(t, defaults, config)
}

func TestLoadApplicationConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "application.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
name = "Testbed"
start_width = 1920
start_height = 1080
ticks_per_second = 30
log_level = "debug"
`), 0o644))

	config, err := LoadApplicationConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Testbed", config.Name)
	assert.Equal(t, uint32(1920), config.StartWidth)
	assert.Equal(t, uint32(1080), config.StartHeight)
	assert.Equal(t, uint32(30), config.TicksPerSecond)
	assert.Equal(t, "debug", config.LogLevel)

	// Keys the file leaves out keep their defaults.
	assert.Equal(t, "assets", config.AssetsDir)
	assert.Equal(t, "shaders/gui.vert.spv", config.GUIVertexShader)
}

func TestLoadApplicationConfigRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "application.toml")
	require.NoError(t, os.WriteFile(path, []byte("name = [unterminated"), 0o644))

	_, err := LoadApplicationConfig(path)
	assert.ErrorIs(t, err, core.ErrIncorrectFormat)
}

func TestLoadApplicationConfigZeroTickRateFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "application.toml")
	require.NoError(t, os.WriteFile(path, []byte("ticks_per_second = 0\n"), 0o644))

	config, err := LoadApplicationConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(60), config.TicksPerSecond)
}
