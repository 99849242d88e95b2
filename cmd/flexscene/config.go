package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// Config is the viewer configuration, loaded from a TOML file with flag
// overrides applied afterwards.
type Config struct {
	Window WindowConfig `toml:"window"`
	Scene  SceneConfig  `toml:"scene"`
	Log    LogConfig    `toml:"log"`
}

type WindowConfig struct {
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
	// PixelsPerUnit converts plane units to screen pixels when drawing.
	PixelsPerUnit float32 `toml:"pixels_per_unit"`
}

type SceneConfig struct {
	// File is a markup (.html/.xml) or script (.js) scene description.
	File string `toml:"file"`
	// Animated runs every box through the spring overlay.
	Animated bool `toml:"animated"`
	// Stiffness/Damping/Mass tune the springs; zero means defaults.
	Stiffness float64 `toml:"stiffness"`
	Damping   float64 `toml:"damping"`
	Mass      float64 `toml:"mass"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Width: 1024, Height: 768, PixelsPerUnit: 160},
		Log:    LogConfig{Level: "info"},
	}
}

// LoadConfig reads a TOML config file over the defaults. A missing file is
// fine when the path was not set explicitly.
func LoadConfig(path string, explicit bool) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if explicit {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LogLevel maps the configured level name onto a charmbracelet/log level.
func (c *Config) LogLevel() log.Level {
	switch c.Log.Level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
