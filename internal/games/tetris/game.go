package tetris

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Variant selects the rotation rule of a registered game.
type Variant string

const (
	VariantClassic Variant = "classic"
	VariantStrict  Variant = "strict"
)

// Registry IDs.
const (
	IDClassic = "tetris"
	IDStrict  = "tetris_strict"
)

// Layout constants, in screen cells.
const (
	cellW        = 2  // Each grid cell is two characters wide
	hudHeight    = 1  // Score line above the well
	sidebarWidth = 12 // Next-piece preview and counters
	sidebarGap   = 1
	previewRows  = 2 // Tallest template
	previewCols  = 4 // Widest template
)

// Package-level settings applied on the next Reset (same pattern as the CLI flags).
var configPath string

// SetConfigPath sets the YAML config file used by subsequently reset games.
func SetConfigPath(path string) {
	configPath = path
}

// Game adapts the Engine to the terminal platform: it turns actions into
// engine commands, applies gravity on a fixed tick interval and draws the
// board into a screen buffer.
type Game struct {
	variant Variant
	cfg     config.TetrisConfig
	rng     *rand.Rand
	engine  *Engine

	tick       uint64
	fallTicker int
	paused     bool

	screenW  int
	screenH  int
	tooSmall bool
}

// New creates a classic game: rotation is applied without a validity check.
func New() *Game {
	return &Game{variant: VariantClassic}
}

// NewStrict creates a game that reverts rotations landing in an invalid position.
func NewStrict() *Game {
	return &Game{variant: VariantStrict}
}

func init() {
	registry.Register(IDClassic, func() registry.Game {
		return New()
	})
	registry.Register(IDStrict, func() registry.Game {
		return NewStrict()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.variant == VariantStrict {
		return IDStrict
	}
	return IDClassic
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.variant == VariantStrict {
		return "Tetris (Strict Rotation)"
	}
	return "Tetris"
}

// Description returns a one-line summary for menus.
func (g *Game) Description() string {
	if g.variant == VariantStrict {
		return "Rotations that would overlap are refused"
	}
	return "Rotation is never checked; pieces may clip into walls"
}

// Reset starts a new game with the configured board.
func (g *Game) Reset(rc core.RuntimeConfig) {
	cfg, _, err := config.LoadTetris(configPath)
	if err != nil {
		cfg = config.DefaultTetrisConfig()
	}
	g.ResetWithConfig(rc, cfg)
}

// ResetWithConfig starts a new game with an explicit configuration.
func (g *Game) ResetWithConfig(rc core.RuntimeConfig, cfg config.TetrisConfig) {
	if g.variant == VariantStrict {
		cfg.Gameplay.StrictRotation = true
	}
	g.cfg = cfg
	g.rng = rand.New(rand.NewSource(rc.Seed))
	g.engine = NewEngine(Options{
		Width:          cfg.Board.Width,
		Height:         cfg.Board.Height,
		StrictRotation: cfg.Gameplay.StrictRotation,
		Chooser:        g.rng,
	})
	g.tick = 0
	g.fallTicker = 0
	g.paused = false
	g.Resize(rc.ScreenW, rc.ScreenH)
}

// Resize adapts the layout to a new screen size without restarting.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	reqW, reqH := g.requiredSize()
	g.tooSmall = width < reqW || height < reqH
}

// requiredSize returns the smallest screen that fits the well, HUD and sidebar.
func (g *Game) requiredSize() (int, int) {
	w := g.cfg.Board.Width*cellW + 2 + sidebarGap + sidebarWidth
	h := hudHeight + g.cfg.Board.Height + 2
	return w, h
}

// Engine exposes the underlying engine for inspection.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Step advances the game by one tick.
func (g *Game) Step(input core.InputFrame) core.StepResult {
	g.tick++

	if input.Has(core.ActionRestart) && g.engine.GameOver() {
		g.ResetWithConfig(core.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		}, g.cfg)
		return core.StepResult{State: g.State()}
	}

	if input.Has(core.ActionPause) && !g.engine.GameOver() {
		g.paused = !g.paused
	}

	if g.engine.GameOver() || g.paused || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	linesBefore := g.engine.Lines()

	for i, n := 0, input.Count(core.ActionRotate); i < n; i++ {
		g.engine.Rotate()
	}
	for i, n := 0, input.Count(core.ActionLeft); i < n; i++ {
		g.engine.MoveLeft()
	}
	for i, n := 0, input.Count(core.ActionRight); i < n; i++ {
		g.engine.MoveRight()
	}
	for i, n := 0, input.Count(core.ActionDown); i < n; i++ {
		g.engine.SoftDrop()
	}

	g.fallTicker++
	if g.fallTicker >= g.cfg.Gameplay.GravityTicks {
		g.fallTicker = 0
		g.engine.TickDrop()
	}

	return core.StepResult{
		State:   g.State(),
		Cleared: g.engine.Lines() - linesBefore,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.engine.Score(),
		Lines:    g.engine.Lines(),
		GameOver: g.engine.GameOver(),
		Paused:   g.paused,
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.engine == nil {
		return
	}

	reqW, reqH := g.requiredSize()
	if g.tooSmall || dst.Width() < reqW || dst.Height() < reqH {
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", reqW, reqH))
		return
	}

	area := dst.Bounds().Centered(reqW, reqH)
	well := core.NewRect(area.X, area.Y+hudHeight, g.cfg.Board.Width*cellW+2, g.cfg.Board.Height+2)

	g.renderHUD(dst, area)
	g.renderWell(dst, well)
	g.renderSidebar(dst, well.Right()+sidebarGap, well.Y)

	switch {
	case g.engine.GameOver():
		g.renderOverlay(dst, "Game Over", "Press R to restart")
	case g.paused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// renderHUD draws the score line above the well.
func (g *Game) renderHUD(dst *core.Screen, area core.Rect) {
	hud := fmt.Sprintf("%s  Score: %d  Lines: %d", g.Title(), g.engine.Score(), g.engine.Lines())
	dst.DrawTextColor(area.X, area.Y, hud, core.ColorWhite)
}

// renderWell draws the border, the settled stack and the falling piece.
func (g *Game) renderWell(dst *core.Screen, well core.Rect) {
	dst.DrawBox(well, core.ColorGray)

	inner := core.NewRect(well.X+1, well.Y+1, well.W-2, well.H-2)
	for y := inner.Y; y < inner.Bottom(); y++ {
		for x := inner.X; x < inner.Right(); x += cellW {
			dst.SetColor(x+1, y, '.', core.ColorGray)
		}
	}

	g.engine.EachCell(func(row, col int, kind CellKind) {
		color := core.ColorBlue
		if kind == CellActive {
			color = core.ColorGreen
		}
		drawBlock(dst, inner.X+col*cellW, inner.Y+row, color)
	})
}

// renderSidebar draws the next-piece preview and counters.
func (g *Game) renderSidebar(dst *core.Screen, x, y int) {
	dst.DrawTextColor(x, y, "Next", core.ColorWhite)

	box := core.NewRect(x, y+1, previewCols*cellW+2, previewRows+2)
	dst.DrawBox(box, core.ColorGray)

	g.engine.Next().Shape().each(func(sy, sx, _ int) {
		drawBlock(dst, box.X+1+sx*cellW, box.Y+1+sy, core.ColorCyan)
	})

	dst.DrawText(x, box.Bottom()+1, fmt.Sprintf("Pieces %d", g.engine.Pieces()))
	if g.engine.StrictRotation() {
		dst.DrawTextColor(x, box.Bottom()+2, "Strict", core.ColorYellow)
	}
}

func drawBlock(dst *core.Screen, x, y int, color core.Color) {
	dst.SetColor(x, y, '█', color)
	dst.SetColor(x+1, y, '█', color)
}

// renderOverlay draws a centered message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	box := dst.Bounds().Centered(boxW, 5)
	box.X = core.Clamp(box.X, 0, max(dst.Width()-1, 0))
	box.Y = core.Clamp(box.Y, 0, max(dst.Height()-1, 0))

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextColor(box.X+(boxW-len(line1))/2, box.Y+1, line1, core.ColorBrightGreen)
	dst.DrawText(box.X+(boxW-len(line2))/2, box.Y+3, line2)
}
