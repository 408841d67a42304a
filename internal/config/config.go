// Package config handles configuration loading and management.
package config

import (
	"path/filepath"
	"time"
)

// Config holds all settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Game     GameConfig     `yaml:"game"`
	World    WorldConfig    `yaml:"world"`
	Data     DataConfig     `yaml:"data"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// GameConfig holds gameplay and view settings.
type GameConfig struct {
	RenderDistance   float32 `yaml:"render_distance"` // Chunks
	FOV              float32 `yaml:"fov"`             // Degrees
	ShowFPS          bool    `yaml:"show_fps"`
	SelectedBlock    int     `yaml:"selected_block"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
}

// Generators accepted by WorldConfig.Generator.
const (
	GeneratorFlat    = "flat"
	GeneratorTerrain = "terrain"
)

// WorldConfig holds world generation and simulation settings.
type WorldConfig struct {
	Chunks      int           `yaml:"chunks"` // Per axis
	SpawnHeight float32       `yaml:"spawn_height"`
	Tick        time.Duration `yaml:"tick"`
	GroundLevel float32       `yaml:"ground_level"`
	Generator   string        `yaml:"generator"`
	Seed        int64         `yaml:"seed"` // 0 picks a random seed
}

// DataConfig holds data file locations. Relative paths are resolved
// against Root.
type DataConfig struct {
	Root          string `yaml:"root"`
	BlocksFile    string `yaml:"blocks_file"`
	EntitiesFile  string `yaml:"entities_file"`
	ModelsDir     string `yaml:"models_dir"`
	TexturesDir   string `yaml:"textures_dir"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// Path joins rel onto the data root unless it is absolute.
func (d DataConfig) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(d.Root, rel)
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      false,
		},
		Game: GameConfig{
			RenderDistance:   12,
			FOV:              60,
			ShowFPS:          true,
			SelectedBlock:    1,
			MouseSensitivity: 0.1,
		},
		World: WorldConfig{
			Chunks:      20,
			SpawnHeight: 20,
			Tick:        16 * time.Millisecond,
			GroundLevel: 1,
			Generator:   GeneratorFlat,
		},
		Data: DataConfig{
			Root:          ".",
			BlocksFile:    "blocks.block",
			EntitiesFile:  "tile_entities.block",
			ModelsDir:     "models",
			TexturesDir:   "textures",
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
