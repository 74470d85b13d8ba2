package util

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Configuration holds everything tunable from quill.toml or flags.
// Flags win over the file, which wins over the defaults.
type Configuration struct {
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`

	Surface string       `toml:"surface"`
	Canvas  CanvasConfig `toml:"canvas"`
	Record  RecordConfig `toml:"record"`
}

type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
	Output string  `toml:"output"`
}

// RecordConfig configures drawing-op persistence. Driver is one of
// sqlite3, mysql or postgres.
type RecordConfig struct {
	Enabled bool   `toml:"enabled"`
	Driver  string `toml:"driver"`
	DSN     string `toml:"dsn"`
	Session string `toml:"session"`
}

func Default() Configuration {
	return Configuration{
		LogLevel: "info",
		Surface:  "svg",
		Canvas: CanvasConfig{
			Width:  800,
			Height: 600,
			Output: "drawing.svg",
		},
		Record: RecordConfig{
			Driver:  "sqlite3",
			DSN:     "quill.db",
			Session: "default",
		},
	}
}

// Load reads the configuration file at path over the defaults. A missing
// file is not an error; the defaults stand.
func Load(path string) (Configuration, error) {
	cfg := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	return cfg, nil
}
