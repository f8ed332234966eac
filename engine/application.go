package engine

import (
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/aurora/engine/core"
)

type ApplicationConfig struct {
	// The application name used in windowing.
	Name string `toml:"name"`
	// Window starting position, if the platform honors it.
	StartPosX uint32 `toml:"start_pos_x"`
	StartPosY uint32 `toml:"start_pos_y"`
	// Window starting size.
	StartWidth  uint32 `toml:"start_width"`
	StartHeight uint32 `toml:"start_height"`
	// Fixed simulation rate in ticks per second.
	TicksPerSecond uint32 `toml:"ticks_per_second"`
	// Directory indexed and watched by the asset manager.
	AssetsDir string `toml:"assets_dir"`
	// SPIR-V pair for the GUI overlay pipeline, relative to AssetsDir.
	GUIVertexShader   string `toml:"gui_vertex_shader"`
	GUIFragmentShader string `toml:"gui_fragment_shader"`

	LogLevel string `toml:"log_level"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:              "Aurora Application",
		StartWidth:        1280,
		StartHeight:       720,
		TicksPerSecond:    60,
		AssetsDir:         "assets",
		GUIVertexShader:   "shaders/gui.vert.spv",
		GUIFragmentShader: "shaders/gui.frag.spv",
		LogLevel:          "info",
	}
}

// LoadApplicationConfig reads a TOML file over the defaults. A missing
// file is not an error; the defaults apply as-is.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	config := DefaultApplicationConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			core.LogWarn("no config at '%s', using defaults", path)
			return config, nil
		}
		return nil, err
	}
	if err := toml.Unmarshal(data, config); err != nil {
		core.LogError("func LoadApplicationConfig - cannot parse '%s': %s", path, err)
		return nil, core.ErrIncorrectFormat
	}
	if config.TicksPerSecond == 0 {
		config.TicksPerSecond = 60
	}
	return config, nil
}
