package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [classic|strict]",
	Short: "Play a variant",
	Long: `Start playing Tetris.

Variants:
  classic  - Rotation is applied without checking (default)
  strict   - Rotations that would overlap a wall or the stack are refused

Controls:
  Left/Right, A/D, H/L  - Move
  Up, W, K, Space       - Rotate clockwise
  Down, S, J            - Soft drop
  P                     - Pause
  R                     - Restart (after game over)
  Esc/B                 - Back (when paused or over)
  Ctrl+S                - Save a text screenshot
  Q/Ctrl+C              - Quit

Examples:
  tetris play
  tetris play strict
  tetris play --seed 1234 --fps 30
  tetris play --config ./my-tetris.yaml`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(tetris.VariantClassic), string(tetris.VariantStrict)},
	RunE:      runPlay,
}

// resolveGameID maps a variant name or a registry ID to a registry ID.
func resolveGameID(arg string) (string, error) {
	switch tetris.Variant(arg) {
	case "", tetris.VariantClassic:
		return tetris.IDClassic, nil
	case tetris.VariantStrict:
		return tetris.IDStrict, nil
	}
	if registry.Exists(arg) {
		return arg, nil
	}
	return "", fmt.Errorf("unknown variant %q (run 'tetris list' to see available variants)", arg)
}

func runPlay(_ *cobra.Command, args []string) error {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}

	gameID, err := resolveGameID(arg)
	if err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	cfg := runtimeConfig()
	logger.Debug("starting game", "id", gameID, "seed", cfg.Seed, "fps", cfg.TickRate)

	return tui.Run(game, cfg)
}
