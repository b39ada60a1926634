package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/quantum-squares/internal/core"
	"github.com/vovakirdan/quantum-squares/internal/registry"
	"github.com/vovakirdan/quantum-squares/internal/squares"
)

// SessionOptions configure a menu -> board -> menu session.
type SessionOptions struct {
	Factory MatchFactory
	History HistorySource // nil shows an empty history
	Players []squares.PlayerID
	ModeID  string
	Size    int

	// OnSelect is called whenever a mode is started, so the choice can be
	// remembered for the next session.
	OnSelect func(modeID string, size int, players []squares.PlayerID)
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenHistory
)

// SessionModel manages the full session flow: menu, board and history.
// It is the top-level model for SSH sessions and the interactive menu.
type SessionModel struct {
	opts     SessionOptions
	config   core.RuntimeConfig
	screen   sessionScreen
	menu     MenuModel
	game     GameModel
	history  HistoryModel
	message  string
	quitting bool
}

// NewSessionModel creates a session that opens on the menu.
func NewSessionModel(opts SessionOptions, cfg core.RuntimeConfig) SessionModel {
	if opts.Size == 0 {
		opts.Size = squares.MinSize
	}
	return SessionModel{
		opts:   opts,
		config: cfg,
		menu:   NewMenuModel(cfg, opts.ModeID, opts.Size),
	}
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

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenHistory:
		return m.updateHistory(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if mm, ok := newMenu.(MenuModel); ok {
		m.menu = mm
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsHistory():
		m.history = NewHistoryModel(m.opts.History, m.config.ScreenW, m.config.ScreenH)
		m.screen = screenHistory
		return m, m.history.Init()

	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().ModeID, m.menu.Size())
	}
	return m, cmd
}

// startGame builds the chosen preset with the configured players, falling
// back to the preset's own seats when they do not fit the mode.
func (m SessionModel) startGame(modeID string, size int) (tea.Model, tea.Cmd) {
	cfg, err := registry.Create(modeID, size, m.opts.Players)
	if err != nil {
		cfg, err = registry.Create(modeID, size, nil)
	}
	if err == nil {
		m.game, err = NewGameModel(m.opts.Factory, cfg, m.config)
	}
	if err != nil {
		m.message = err.Error()
		m.menu = NewMenuModel(m.config, modeID, size)
		return m, nil
	}

	if m.opts.OnSelect != nil {
		m.opts.OnSelect(modeID, size, cfg.Players)
	}
	m.opts.ModeID, m.opts.Size = modeID, size
	m.message = ""
	m.screen = screenGame
	return m, m.game.Init()
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newGame, cmd := m.game.Update(msg)
	if gm, ok := newGame.(GameModel); ok {
		m.game = gm
	}

	switch {
	case m.game.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.game.BackToMenu():
		m.backToMenu()
		return m, nil
	}
	return m, cmd
}

func (m SessionModel) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	newHistory, cmd := m.history.Update(msg)
	if hm, ok := newHistory.(HistoryModel); ok {
		m.history = hm
	}

	switch {
	case m.history.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.history.IsGoingBack():
		m.backToMenu()
		return m, nil
	}
	return m, cmd
}

func (m *SessionModel) backToMenu() {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.config, m.opts.ModeID, m.opts.Size)
}

// Stop abandons a running match. Used when the session disconnects.
func (m SessionModel) Stop() {
	if m.screen == screenGame {
		m.game.stop()
	}
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenHistory:
		return m.history.View()
	}
	if m.message != "" {
		return m.menu.View() + "\n" + centerText(m.message, m.config.ScreenW)
	}
	return m.menu.View()
}

// RunSession runs a local session until the player quits.
func RunSession(opts SessionOptions, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(NewSessionModel(opts, cfg), tea.WithAltScreen())
	final, err := p.Run()
	if sm, ok := final.(SessionModel); ok {
		sm.Stop()
	}
	return err
}
