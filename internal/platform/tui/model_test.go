package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/quantum-squares/internal/core"
	"github.com/vovakirdan/quantum-squares/internal/match"
	"github.com/vovakirdan/quantum-squares/internal/squares"
)

func testFactory(cfg squares.Config) (*match.Match, error) {
	return match.New(cfg, match.Options{})
}

func classicConfig() squares.Config {
	return squares.Config{Size: 5, Mode: squares.ModeHeadToHead, Players: []squares.PlayerID{"Red", "Blue"}}
}

// startModel creates a model and feeds it the events produced by Start.
func startModel(t *testing.T) GameModel {
	t.Helper()
	m, err := NewGameModel(testFactory, classicConfig(), core.DefaultConfig())
	if err != nil {
		t.Fatalf("NewGameModel: %v", err)
	}
	t.Cleanup(m.stop)

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init returned no command")
	}
	return update(t, m, cmd())
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

func TestGameModelStartsCentered(t *testing.T) {
	m := startModel(t)

	if m.view.Cursor != (squares.Pos{Row: 2, Col: 2}) {
		t.Errorf("cursor = %+v, want center", m.view.Cursor)
	}
	if m.view.State.Current() != "Red" {
		t.Errorf("current = %q, want Red", m.view.State.Current())
	}
}

func TestGameModelCursorStaysOnBoard(t *testing.T) {
	m := startModel(t)

	for i := 0; i < 10; i++ {
		m = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
		m = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	}
	if m.view.Cursor != (squares.Pos{}) {
		t.Errorf("cursor = %+v, want top-left", m.view.Cursor)
	}

	for j := 0; j < 10; j++ {
		m = update(t, m, runeKey('s'))
		m = update(t, m, runeKey('d'))
	}
	if m.view.Cursor != (squares.Pos{Row: 4, Col: 4}) {
		t.Errorf("cursor = %+v, want bottom-right", m.view.Cursor)
	}
}

func TestGameModelPlacesForCurrentPlayer(t *testing.T) {
	m := startModel(t)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	st := m.match.Snapshot()
	if got := st.Cells[2][2]; got.Count != 1 || got.Owner != "Red" {
		t.Fatalf("center = %+v, want one Red particle", got)
	}
	if st.Current() != "Blue" {
		t.Fatalf("current = %q, want Blue", st.Current())
	}

	// Blue cannot play on Red's square; the turn does not move.
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view.Message != "That square belongs to another player" {
		t.Errorf("message = %q", m.view.Message)
	}
	if m.match.Snapshot().Current() != "Blue" {
		t.Error("rejected move changed the turn")
	}
}

func TestGameModelEventsRefreshView(t *testing.T) {
	m := startModel(t)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Drain what the move published.
	for {
		select {
		case evt := <-m.sink.Events():
			m = update(t, m, EventMsg{Event: evt, sink: m.sink})
			continue
		default:
		}
		break
	}
	if m.view.State.Cells[2][2].Owner != "Red" {
		t.Error("view state not refreshed from events")
	}
	if !strings.Contains(m.View(), "Blue to move") {
		t.Error("view should announce Blue")
	}

	// Events from another sink are ignored.
	stale := match.NewChannelSink(1)
	before := m.view
	m = update(t, m, EventMsg{Event: squares.TurnPassed{Player: "Red"}, sink: stale})
	if m.view.Message != before.Message {
		t.Error("stale event changed the view")
	}
}

func TestGameModelBackStopsMatch(t *testing.T) {
	m := startModel(t)
	mt := m.match

	m = update(t, m, runeKey('b'))
	if !m.BackToMenu() {
		t.Fatal("BackToMenu = false")
	}
	select {
	case <-mt.Done():
	default:
		t.Error("match still running after back")
	}
	if _, err := mt.Submit("Red", 0, 0); err != match.ErrStopped {
		t.Errorf("Submit after back = %v, want ErrStopped", err)
	}
}

func TestGameModelQuit(t *testing.T) {
	m := startModel(t)

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return tea.Quit")
	}
	if !next.(GameModel).IsQuitting() {
		t.Error("IsQuitting = false")
	}
	if next.(GameModel).View() != "" {
		t.Error("View should be empty after quit")
	}
}

func TestMoveMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{match.ErrTurnLocked, "Wait for the AI to move"},
		{&squares.MoveError{Err: squares.ErrOutOfBounds}, "Outside the board"},
		{&squares.MoveError{Err: squares.ErrGameOver}, "The game is over"},
	}
	for _, tc := range tests {
		if got := moveMessage(tc.err); got != tc.want {
			t.Errorf("moveMessage(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
