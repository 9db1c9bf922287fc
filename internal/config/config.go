package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the profile configuration file.
const FileName = "billfold.yaml"

// Config represents the top-level billfold.yaml configuration.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
}

// DataConfig locates the persisted card collection and its artifacts.
type DataConfig struct {
	Dir       string `yaml:"dir"`
	ExportDir string `yaml:"export_dir"`
}

// DisplayConfig controls how amounts are rendered.
type DisplayConfig struct {
	Currency string `yaml:"currency"`
}

// LogConfig controls application logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Load reads a billfold.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new profile.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			Dir:       "data",
			ExportDir: "exports",
		},
		Display: DisplayConfig{
			Currency: "INR",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
