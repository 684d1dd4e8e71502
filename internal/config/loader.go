package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from defaults and an optional YAML file.
//
// An explicit configPath must exist. With an empty configPath, DefaultFile
// in the working directory is used when present; otherwise the defaults
// stand alone.
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath, err := discoverConfigFile(configPath)
	if err != nil {
		return nil, err
	}
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

func discoverConfigFile(configPath string) (string, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return configPath, nil
	}

	if _, err := os.Stat(DefaultFile); err == nil {
		return DefaultFile, nil
	}
	return "", nil
}

// loadYAMLFile parses path into cfg. Fields not present in the YAML retain
// their current (default) values; unknown fields are rejected so a typo in a
// selector key does not silently fall back to the defaults.
func loadYAMLFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
