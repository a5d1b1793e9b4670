// Package config loads quest settings from the data directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config file names, checked in this order.
const (
	YAMLFile = "config.yaml"
	TOMLFile = "config.toml"
)

// LogLevelEnv overrides LogLevel when set.
const LogLevelEnv = "QUEST_LOG_LEVEL"

// Config holds user settings.
type Config struct {
	// Save is the save file used when a command does not name one.
	Save string `yaml:"save" toml:"save"`
	// Seed adds the example goals when the active save does not exist yet.
	Seed bool `yaml:"seed" toml:"seed"`
	// AutoCommit commits the data directory to git after every save.
	AutoCommit bool   `yaml:"auto_commit" toml:"auto_commit"`
	LogLevel   string `yaml:"log_level" toml:"log_level"`
	// Journal enables the event history database.
	Journal bool   `yaml:"journal" toml:"journal"`
	Remote  string `yaml:"remote,omitempty" toml:"remote,omitempty"`

	// Path of the file this config was read from, empty for defaults.
	Path string `yaml:"-" toml:"-"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Save:     "goals",
		Seed:     true,
		LogLevel: "info",
		Journal:  true,
	}
}

// Load reads config.yaml or config.toml from dir. Missing files yield defaults.
// Fields absent from the file keep their default values.
func Load(dir string) (*Config, error) {
	cfg := Default()

	for _, name := range []string{YAMLFile, TOMLFile} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}

		if name == YAMLFile {
			err = yaml.Unmarshal(data, cfg)
		} else {
			err = toml.Unmarshal(data, cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		cfg.Path = path
		break
	}

	if lvl := os.Getenv(LogLevelEnv); lvl != "" {
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

// Save writes cfg as YAML to dir/config.yaml.
func Save(dir string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("serializing config: %w", err)
	}
	path := filepath.Join(dir, YAMLFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", YAMLFile, err)
	}
	cfg.Path = path
	return nil
}
