package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig is the optional YAML config file. It seeds defaults on
// first run; values later changed at runtime are persisted to the
// store and take precedence.
type fileConfig struct {
	FocusMinutes     int   `yaml:"focus_minutes"`
	BreakMinutes     int   `yaml:"break_minutes"`
	LongBreakMinutes int   `yaml:"long_break_minutes"`
	CycleCount       int   `yaml:"cycle_count"`
	AutoSwitch       *bool `yaml:"auto_switch"`
	AutoStart        *bool `yaml:"auto_start"`
	Sound            *bool `yaml:"sound"`
	AutoSkipNotify   *bool `yaml:"auto_skip_notification"`
}

// loadFileConfig reads the YAML config at path. A missing file is not
// an error, the zero config is returned and built-in defaults apply.
func loadFileConfig(path string) (fileConfig, error) {
	var cfg fileConfig
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config yaml: %w", err)
	}
	return cfg, nil
}

// DefaultConfigPath returns the conventional config file location
// under the user config dir.
func DefaultConfigPath(appName string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, appName, "config.yaml"), nil
}
