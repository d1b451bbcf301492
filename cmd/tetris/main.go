// tetris is a terminal falling-block puzzle game.
//
// Usage:
//
//	tetris list               - List available variants
//	tetris play [variant]     - Play classic (default) or strict
//	tetris menu               - Pick a variant interactively
//	tetris serve              - Start SSH server for remote play
//	tetris config             - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--config <path>      - Use a custom YAML config
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagLogLevel string

	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetris",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris - the falling-block puzzle in your terminal",
	Long: `Tetris drops one of seven pieces at a time into a 10x20 well.
Move and rotate it, fill whole rows to clear them, and score n*n points
for n rows cleared at once. The game ends when a new piece cannot spawn.

Available commands:
  list     - Show the available variants
  play     - Play a variant directly
  menu     - Interactive variant picker
  serve    - Start SSH server for remote play
  config   - Print the effective configuration

Examples:
  tetris play
  tetris play strict --seed 42
  tetris menu
  tetris serve --ssh :2222
  tetris config --config ./my-tetris.yaml`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tetris config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// setup applies the global flags before any subcommand runs.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)

	if flagFPS <= 0 {
		return fmt.Errorf("invalid --fps %d: must be positive", flagFPS)
	}

	// A broken custom config is reported now rather than silently replaced
	// by defaults inside the game.
	cfg, source, err := config.LoadTetris(flagConfig)
	if err != nil {
		return err
	}
	logger.Debug("config loaded", "source", source,
		"width", cfg.Board.Width, "height", cfg.Board.Height,
		"gravity_ticks", cfg.Gameplay.GravityTicks, "strict_rotation", cfg.Gameplay.StrictRotation)

	tetris.SetConfigPath(flagConfig)
	return nil
}

// runtimeConfig builds the runtime config from the flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	} else {
		logger.Debug("terminal size unavailable, using defaults", "error", err)
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}
