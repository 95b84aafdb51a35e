package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

// Config represents the optional homeward configuration file.
type Config struct {
	Defaults DefaultsConfig `toml:"defaults"`
	Theme    ThemeConfig    `toml:"theme"`
}

// DefaultsConfig holds persistent flag defaults. A nil field means the key
// was absent and the built-in flag default applies.
type DefaultsConfig struct {
	Jobs          *int     `toml:"jobs"`
	Home          *string  `toml:"home"`
	OnConflict    *string  `toml:"on_conflict"`
	Exclude       []string `toml:"exclude"`
	BWLimit       *string  `toml:"bwlimit"`
	DropIdentical *bool    `toml:"drop_identical"`
}

// ThemeConfig holds optional color overrides for the report.
type ThemeConfig struct {
	Green  *string `toml:"green"`
	Yellow *string `toml:"yellow"`
	Red    *string `toml:"red"`
	Muted  *string `toml:"muted"`
	Bright *string `toml:"bright"`
}

var conflictModes = map[string]bool{
	"ask": true, "adopt-new": true, "keep-original": true, "leave-both": true,
}

// Path returns the resolved path to the config file.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		dir = xdg.ConfigHome
	}
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "homeward", "config.toml")
}

// Load reads the config file from the XDG path. A missing file yields a
// zero Config and no error.
func Load() (Config, error) {
	path := Path()
	if path == "" {
		return Config{}, nil
	}
	return LoadFile(path)
}

// LoadFile reads and validates the config file at path.
func LoadFile(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that toml decoding alone cannot.
func (c Config) Validate() error {
	d := c.Defaults
	if d.Jobs != nil && *d.Jobs < 1 {
		return fmt.Errorf("defaults.jobs must be at least 1, got %d", *d.Jobs)
	}
	if d.OnConflict != nil && !conflictModes[*d.OnConflict] {
		return fmt.Errorf("defaults.on_conflict: unknown mode %q", *d.OnConflict)
	}
	return nil
}
