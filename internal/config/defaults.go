package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in Tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: TetrisBoard{
			Width:  10,
			Height: 20,
		},
		Gameplay: TetrisGameplay{
			GravityTicks:   12,
			StrictRotation: false,
		},
	}
}

// DefaultTetrisYAML returns the embedded default YAML.
func DefaultTetrisYAML() []byte {
	return defaultTetrisYAML
}
