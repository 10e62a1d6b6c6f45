// Package config handles qsheets.toml configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the settings read from qsheets.toml
type Config struct {
	Server  Server  `toml:"server"`
	Sheet   Sheet   `toml:"sheet"`
	DataGen DataGen `toml:"datagen"`
}

// Server names the server as it announces itself to clients
type Server struct {
	Name     string `toml:"name"`
	LogLevel string `toml:"log-level"`
}

// Sheet configures grid behavior
type Sheet struct {
	// SequentialAppend switches the grid to the legacy write mode that
	// appends values in arrival order instead of placing them by row
	SequentialAppend bool `toml:"sequential-append"`
}

// DataGen configures the test data generator
type DataGen struct {
	// Seed fixes the random source for reproducible output; 0 means
	// randomize
	Seed uint64 `toml:"seed"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Server: Server{
			Name:     "quantum-sheets",
			LogLevel: "info",
		},
	}
}

// Load parses a TOML configuration file. A missing file is not an
// error; defaults are returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return cfg, nil
}
