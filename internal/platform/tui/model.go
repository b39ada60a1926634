package tui

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/quantum-squares/internal/core"
	"github.com/vovakirdan/quantum-squares/internal/match"
	"github.com/vovakirdan/quantum-squares/internal/squares"
)

// sinkSize is the event buffer between a match and its view.
const sinkSize = 256

// MatchFactory builds a fresh, unstarted match for cfg. The caller decides
// persistence, metrics and AI timing.
type MatchFactory func(cfg squares.Config) (*match.Match, error)

// GameModel is the Bubble Tea model for one board. Every human seat shares
// the keyboard; a placement is always made for the player whose turn it is.
type GameModel struct {
	factory    MatchFactory
	cfg        squares.Config
	match      *match.Match
	sink       *match.ChannelSink
	screen     *core.Screen
	keyMapper  *KeyMapper
	view       BoardView
	quitting   bool
	backToMenu bool
}

// NewGameModel creates the first match for cfg. The match starts in Init.
func NewGameModel(factory MatchFactory, cfg squares.Config, rc core.RuntimeConfig) (GameModel, error) {
	m := GameModel{
		factory:   factory,
		cfg:       cfg,
		screen:    core.NewScreen(rc.ScreenW, rc.ScreenH),
		keyMapper: NewKeyMapper(),
	}
	if err := m.newMatch(); err != nil {
		return GameModel{}, err
	}
	return m, nil
}

func (m *GameModel) newMatch() error {
	mt, err := m.factory(m.cfg)
	if err != nil {
		return err
	}
	m.match = mt
	m.sink = match.NewChannelSink(sinkSize)
	mt.Subscribe(m.sink)

	st := mt.Snapshot()
	m.view = BoardView{
		State:  st,
		Cursor: squares.Pos{Row: st.Size / 2, Col: st.Size / 2},
	}
	return nil
}

// Init starts the match and begins listening for its events.
func (m GameModel) Init() tea.Cmd {
	if err := m.match.Start(); err != nil {
		return nil
	}
	return waitForEvent(m.sink)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case EventMsg:
		if msg.sink != m.sink {
			return m, nil
		}
		m.handleEvent(msg.Event)
		return m, waitForEvent(m.sink)

	case sinkClosedMsg:
		return m, nil
	}
	return m, nil
}

func (m *GameModel) handleEvent(evt squares.Event) {
	m.view.State = m.match.Snapshot()
	m.view.Thinking = m.match.AIPending()

	switch e := evt.(type) {
	case squares.ClockTicked:
		m.view.Timed = true
		m.view.Remaining = e.Remaining
	case squares.TurnChanged:
		m.view.Message = ""
	default:
		if text := describe(evt); text != "" {
			m.view.Message = text
		}
	}
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	if isQuit {
		m.stop()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		dr, dc := action.Delta()
		row, col := m.view.Cursor.Row+dr, m.view.Cursor.Col+dc
		board := core.NewRect(0, 0, m.view.State.Size, m.view.State.Size)
		if board.Contains(col, row) {
			m.view.Cursor = squares.Pos{Row: row, Col: col}
		}

	case core.ActionPlace:
		m.place()

	case core.ActionRestart:
		if m.view.State.Over() {
			m.stop()
			if err := m.newMatch(); err != nil {
				m.view.Message = err.Error()
				return m, nil
			}
			return m, m.Init()
		}

	case core.ActionBack:
		m.stop()
		m.backToMenu = true
		return m, nil
	}
	return m, nil
}

// stop abandons the match and releases the pending event listener.
func (m *GameModel) stop() {
	m.match.Stop()
	m.sink.Close()
}

// place submits a move at the cursor for the player to move.
func (m *GameModel) place() {
	st := m.match.Snapshot()
	if st.Over() {
		return
	}
	_, err := m.match.Submit(st.Current(), m.view.Cursor.Row, m.view.Cursor.Col)
	m.view.Message = moveMessage(err)
}

func moveMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, match.ErrTurnLocked):
		return "Wait for the AI to move"
	case errors.Is(err, squares.ErrCellOwned):
		return "That square belongs to another player"
	case errors.Is(err, squares.ErrOutOfBounds):
		return "Outside the board"
	case errors.Is(err, squares.ErrGameOver):
		return "The game is over"
	default:
		return err.Error()
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if rem, ok := m.match.Remaining(); ok {
		m.view.Remaining = rem.Truncate(time.Second)
	}
	DrawBoard(m.screen, m.view)
	return RenderScreen(m.screen)
}

// BackToMenu returns true if the player left the board.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if the player asked to exit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// Run plays cfg in the local terminal until the player quits or goes back.
// Returns true when the player asked for the menu.
func Run(factory MatchFactory, cfg squares.Config, rc core.RuntimeConfig) (backToMenu bool, err error) {
	model, err := NewGameModel(factory, cfg, rc)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if gm, ok := final.(GameModel); ok {
		return gm.BackToMenu(), nil
	}
	return false, nil
}
