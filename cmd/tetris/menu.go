package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a variant picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a variant.
Press Esc or B while paused or after game over to return to the menu.

Examples:
  tetris menu
  tetris menu --fps 30`,
	RunE: func(_ *cobra.Command, _ []string) error {
		return tui.RunSession(runtimeConfig())
	},
}
