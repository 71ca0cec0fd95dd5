// Package config loads and validates the configuration astrodb-server
// and astrodb-gen run with: the data-source paths a Builder accumulates
// from, the HTTP address to serve on, and a debug flag controlling Gin's
// mode.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

// Sources lists the catalog source files a Builder loads during
// accumulate. Any field left empty or nil is simply skipped by the
// caller -- Load itself does not check that the paths exist.
type Sources struct {
	StarsBin string            `yaml:"stars_bin"`
	StarsSTC []string          `yaml:"stars_stc"`
	DSODSC   []string          `yaml:"dso_dsc"`
	NamesTxt []string          `yaml:"names_txt"`
	XIndex   map[string]string `yaml:"xindex_bin"` // catalog prefix ("HD") -> CELINDEX path
}

// Config is the top-level astrodb-server / astrodb-gen configuration.
type Config struct {
	Address     string  `yaml:"address" validate:"required"`
	Debug       bool    `yaml:"debug"`
	SnapshotOut string  `yaml:"snapshot_out"`
	Sources     Sources `yaml:"sources"`
}

// Default returns the configuration used when no file is given: listen
// on :8080 in debug mode with no sources configured.
func Default() Config {
	return Config{
		Address: ":8080",
		Debug:   true,
	}
}

// Load reads, parses, and validates the YAML configuration file at
// path, starting from Default() so an incomplete file still produces a
// usable configuration.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config: invalid %s: %w", path, err)
	}
	return cfg, nil
}
