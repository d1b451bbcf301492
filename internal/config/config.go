// Package config provides YAML-based game configuration loading with
// embedded defaults.
package config

import (
	"errors"
	"fmt"
)

// MinBoardWidth is the narrowest board that still fits the I piece lying flat.
const MinBoardWidth = 4

// MinBoardHeight is the shortest board that still fits the I piece standing up.
const MinBoardHeight = 4

// TetrisConfig contains all configuration for the Tetris game.
type TetrisConfig struct {
	Board    TetrisBoard    `yaml:"board"`
	Gameplay TetrisGameplay `yaml:"gameplay"`
}

// TetrisBoard defines the grid dimensions.
type TetrisBoard struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TetrisGameplay defines timing and rule switches.
type TetrisGameplay struct {
	GravityTicks   int  `yaml:"gravity_ticks"`
	StrictRotation bool `yaml:"strict_rotation"`
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the configuration describes a playable board.
func (c TetrisConfig) Validate() error {
	if c.Board.Width < MinBoardWidth {
		return fmt.Errorf("%w: board width %d is below %d", ErrInvalidConfig, c.Board.Width, MinBoardWidth)
	}
	if c.Board.Height < MinBoardHeight {
		return fmt.Errorf("%w: board height %d is below %d", ErrInvalidConfig, c.Board.Height, MinBoardHeight)
	}
	if c.Gameplay.GravityTicks <= 0 {
		return fmt.Errorf("%w: gravity_ticks must be positive, got %d", ErrInvalidConfig, c.Gameplay.GravityTicks)
	}
	return nil
}
