// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Filter    FilterConfig    `toml:"filter"`
	Generator GeneratorConfig `toml:"generator"`
}

// FilterConfig maps the default dashboard filter.
type FilterConfig struct {
	Facility  *string `toml:"facility"`
	Tier      *string `toml:"tier"`
	Timeframe *string `toml:"timeframe"`
}

// GeneratorConfig maps fact generator settings.
type GeneratorConfig struct {
	Seed  *int64   `toml:"seed"`
	Noise *float64 `toml:"noise"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// DefaultConfigTemplate is written when the config command creates a new file.
const DefaultConfigTemplate = `# usageheat configuration

[filter]
# facility = "all"        # all, Basketball Courts, Soccer Fields, Volleyball Courts, Player Lab, Fitness Center
# tier = "all"            # all, Venture North Club, All-Access, Family Plan, Basic Member
# timeframe = "week"      # week, month, quarter

[generator]
# seed = 0                # 0 picks a time-based seed
# noise = 10              # noise amplitude, 0-10
`

// WriteDefaultConfig creates the config file with a commented template if it
// does not exist yet. It reports whether a file was created.
func WriteDefaultConfig(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to stat config: %w", err)
	}
	if err := EnsureDir(path); err != nil {
		return false, err
	}
	if err := os.WriteFile(path, []byte(DefaultConfigTemplate), 0o644); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}
