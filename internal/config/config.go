// Package config loads the simulator's YAML run configuration: parameter
// overrides for the material model plus CLI-facing settings. The core engine
// never reads files itself; the CLI resolves a Config and hands the override
// mapping to the model.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full run configuration.
type Config struct {
	// Logging configures the diagnostic logger.
	Logging LoggingConfig `yaml:"logging"`

	// Params are raw parameter overrides, keyed by the parameter names of
	// the material model (c_c, k_cminus, lambda_roof, ...). Unknown keys
	// are ignored by the model.
	Params map[string]float64 `yaml:"params"`
}

// LoggingConfig configures diagnostic output.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "warn".
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Params:  map[string]float64{},
	}
}

// Load reads a YAML configuration file, filling unset sections with
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Params == nil {
		cfg.Params = map[string]float64{}
	}
	return cfg, nil
}
