package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source describes where a loaded configuration came from.
type Source string

const (
	SourceCustom   Source = "custom"
	SourceUser     Source = "user"
	SourceLocal    Source = "local"
	SourceEmbedded Source = "embedded"
)

// configFile is the file name searched for in the user and local directories.
const configFile = "tetris.yaml"

// localDir is the working-directory config location.
var localDir = "configs"

// LoadTetris loads Tetris configuration.
// Search order: customPath -> ~/.tetris/configs/tetris.yaml -> ./configs/tetris.yaml -> embedded default.
// A custom path that cannot be read or parsed is an error; the other locations
// are skipped silently when missing or malformed.
func LoadTetris(customPath string) (TetrisConfig, Source, error) {
	if customPath != "" {
		cfg, err := readFile(customPath)
		if err != nil {
			return cfg, SourceCustom, err
		}
		if err := cfg.Validate(); err != nil {
			return cfg, SourceCustom, fmt.Errorf("config %s: %w", customPath, err)
		}
		return cfg, SourceCustom, nil
	}

	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if cfg, err := readFile(userCfgPath); err == nil && cfg.Validate() == nil {
			return cfg, SourceUser, nil
		}
	}

	if cfg, err := readFile(filepath.Join(localDir, configFile)); err == nil && cfg.Validate() == nil {
		return cfg, SourceLocal, nil
	}

	cfg, err := Parse(defaultTetrisYAML)
	if err != nil {
		return DefaultTetrisConfig(), SourceEmbedded, nil // Fallback to hardcoded if embed fails
	}
	return cfg, SourceEmbedded, nil
}

// Parse decodes YAML on top of the built-in defaults, so a file only needs
// to list the keys it changes.
func Parse(data []byte) (TetrisConfig, error) {
	cfg := DefaultTetrisConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Marshal encodes a configuration as YAML.
func Marshal(cfg TetrisConfig) ([]byte, error) {
	return yaml.Marshal(cfg)
}

func readFile(path string) (TetrisConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultTetrisConfig(), fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tetris", "configs", filename)
}
