package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by Validate failures.
var ErrInvalidConfig = errors.New("config: invalid")

// LoadJustRun loads Just Run configuration.
// Search order: customPath -> ~/.justrun/configs/justrun.{yaml,toml} ->
// ./configs/justrun.{yaml,toml} -> embedded default -> hardcoded default.
// Files decode on top of the defaults, so they only need the keys they change.
func LoadJustRun(customPath string) (JustRunConfig, error) {
	// Try custom path first
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return DefaultJustRunConfig(), err
		}
		return cfg, nil
	}

	var candidates []string
	for _, name := range []string{"justrun.yaml", "justrun.toml"} {
		if p := userConfigPath(name); p != "" {
			candidates = append(candidates, p)
		}
	}
	candidates = append(candidates,
		filepath.Join("configs", "justrun.yaml"),
		filepath.Join("configs", "justrun.toml"),
	)

	for _, p := range candidates {
		if cfg, err := loadFile(p); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg := DefaultJustRunConfig()
	if err := yaml.Unmarshal(defaultJustRunYAML, &cfg); err != nil {
		return DefaultJustRunConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// loadFile reads one config file, picking the decoder by extension.
func loadFile(path string) (JustRunConfig, error) {
	cfg := DefaultJustRunConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := Decode(data, filepath.Ext(path), &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode unmarshals data into cfg. ext selects the format: ".toml" uses
// TOML, anything else YAML.
func Decode(data []byte, ext string, cfg *JustRunConfig) error {
	if strings.EqualFold(ext, ".toml") {
		_, err := toml.Decode(string(data), cfg)
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".justrun", "configs", filename)
}

// Validate rejects values the simulation cannot run with.
func (c JustRunConfig) Validate() error {
	switch {
	case c.World.Rows < 3 || c.World.Cols < 3:
		return fmt.Errorf("%w: world must be at least 3x3 tiles", ErrInvalidConfig)
	case c.World.FrameRate <= 0:
		return fmt.Errorf("%w: frame_rate must be positive", ErrInvalidConfig)
	case c.Player.Health <= 0:
		return fmt.Errorf("%w: player health must be positive", ErrInvalidConfig)
	case c.Player.MaxVelocity <= 0:
		return fmt.Errorf("%w: player max_velocity must be positive", ErrInvalidConfig)
	case c.Spawns.Retries <= 0:
		return fmt.Errorf("%w: spawn retries must be positive", ErrInvalidConfig)
	case c.Spawns.MaxEnemies < 0:
		return fmt.Errorf("%w: max_enemies must not be negative", ErrInvalidConfig)
	}
	return nil
}

// ApplyJustRunPreset modifies the config based on a difficulty preset.
func ApplyJustRunPreset(cfg *JustRunConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
