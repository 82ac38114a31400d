package config

import (
	"fmt"
	"log/slog"

	"github.com/BurntSushi/toml"
)

// LoadFromToml loads the application configuration from a TOML file.
func LoadFromToml(path string, logger *slog.Logger) (*Config, error) {
	cfg := NewDefaultConfig()

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		logger.Error("failed to decode TOML config", "path", path, "error", err)
		return nil, fmt.Errorf("config: failed to decode TOML file %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		// Unknown keys are almost always typos. Fail loudly instead of
		// silently running with defaults.
		return nil, fmt.Errorf("config: unknown keys in %s: %v", path, undecoded)
	}

	if err := Validate(cfg); err != nil {
		logger.Error("configuration validation failed", "path", path, "error", err)
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	logger.Info("successfully loaded configuration", "path", path)
	return cfg, nil
}
