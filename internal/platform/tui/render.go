package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Palette maps core.Color to lipgloss styles bound to one renderer.
// SSH sessions get their own renderer so colors follow the client terminal.
type Palette struct {
	styles map[core.Color]lipgloss.Style
	muted  lipgloss.Style
}

// NewPalette builds a palette for the given renderer.
// A nil renderer uses the process-wide default.
func NewPalette(r *lipgloss.Renderer) *Palette {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}
	return &Palette{muted: fg("241"), styles: map[core.Color]lipgloss.Style{
		core.ColorDefault:     r.NewStyle(),
		core.ColorRed:         fg("1"),
		core.ColorGreen:       fg("2"),
		core.ColorYellow:      fg("3"),
		core.ColorBlue:        fg("4"),
		core.ColorMagenta:     fg("5"),
		core.ColorCyan:        fg("6"),
		core.ColorWhite:       fg("7"),
		core.ColorBrightGreen: fg("10"),
		core.ColorBrightBlue:  fg("12"),
		core.ColorOrange:      fg("208"),
		core.ColorGray:        fg("245"),
	}}
}

var defaultPalette = NewPalette(nil)

// Muted returns the style used for help lines and descriptions.
func (p *Palette) Muted() lipgloss.Style {
	return p.muted
}

// RenderScreen converts a Screen buffer to a styled string using the default renderer.
func RenderScreen(s *core.Screen) string {
	return defaultPalette.Render(s)
}

// Render converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (p *Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y, h := 0, s.Height(); y < h; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := p.styles[startColor]
			if !ok {
				style = p.styles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
