package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// SessionModel manages the full session flow: menu -> game -> menu.
// It is the top-level model for both SSH sessions and the local menu command.
type SessionModel struct {
	config    core.RuntimeConfig
	seed      int64 // Fixed seed for every game, or 0 for time-based seeds
	username  string
	renderer  *lipgloss.Renderer
	palette   *Palette
	menu      MenuModel
	gameModel *Model
	quitting  bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(cfg core.RuntimeConfig, username string) SessionModel {
	return SessionModel{
		config:   cfg,
		seed:     cfg.Seed,
		username: username,
		palette:  defaultPalette,
		menu:     NewMenuModel(cfg),
	}
}

// WithRenderer returns a copy of the session that styles output for r.
func (m SessionModel) WithRenderer(r *lipgloss.Renderer) SessionModel {
	m.renderer = r
	m.palette = NewPalette(r)
	m.menu = m.menu.WithRenderer(r)
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.gameModel != nil {
		return m.updateGame(msg)
	}
	return m.updateMenu(msg)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	selected := m.menu.Selected()
	if selected == nil {
		return m, cmd
	}

	game, err := registry.Create(selected.GameID)
	if err != nil {
		// Menu only lists registered games
		m.menu = m.newMenu()
		return m, nil
	}

	cfg := m.menu.Config()
	cfg.Seed = m.seed
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	m.config = cfg

	gameModel := NewModel(game, cfg).WithPalette(m.palette)
	m.gameModel = &gameModel

	return m, m.gameModel.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.gameModel.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.gameModel = &gameModel
	}

	if m.gameModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	// The game model ends its program on back; the session returns to the menu instead
	if m.gameModel.BackToMenu() {
		m.gameModel = nil
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.config).WithRenderer(m.renderer)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	if m.gameModel != nil {
		return m.gameModel.View()
	}

	return m.menu.View()
}

// InGame reports whether a game is currently running.
func (m SessionModel) InGame() bool {
	return m.gameModel != nil
}

// Username returns the name the session was opened with.
func (m SessionModel) Username() string {
	return m.username
}

// RunSession runs the menu -> game loop in the local terminal.
func RunSession(cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		NewSessionModel(cfg, "local"),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run session: %w", err)
	}
	return nil
}
