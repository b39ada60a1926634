package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/quantum-squares/internal/core"
	"github.com/vovakirdan/quantum-squares/internal/squares"
)

func updateSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return sm, cmd
}

func TestSessionStartsGameWithFallbackSeats(t *testing.T) {
	var picked []squares.PlayerID
	opts := SessionOptions{
		Factory: testFactory,
		Players: []squares.PlayerID{"solo"}, // too few for classic
		ModeID:  "classic",
		Size:    6,
		OnSelect: func(_ string, _ int, players []squares.PlayerID) {
			picked = players
		},
	}

	m := NewSessionModel(opts, core.DefaultConfig())
	m, cmd := updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	t.Cleanup(m.Stop)

	if m.screen != screenGame {
		t.Fatalf("screen = %v, want game", m.screen)
	}
	if cmd == nil {
		t.Error("starting a game should listen for events")
	}
	st := m.game.match.Snapshot()
	if st.Size != 6 || len(st.Players) != 2 || st.Players[0] != "Red" {
		t.Errorf("state = size %d players %v", st.Size, st.Players)
	}
	if len(picked) != 2 {
		t.Errorf("OnSelect players = %v", picked)
	}
}

func TestSessionUsesConfiguredPlayers(t *testing.T) {
	opts := SessionOptions{
		Factory: testFactory,
		Players: []squares.PlayerID{"ann"},
		ModeID:  "ai",
		Size:    5,
	}

	m := NewSessionModel(opts, core.DefaultConfig())
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	t.Cleanup(m.Stop)

	st := m.game.match.Snapshot()
	if len(st.Players) != 2 || st.Players[0] != "ann" || st.Players[1] != squares.AIPlayer {
		t.Errorf("players = %v, want [ann AI]", st.Players)
	}
}

func TestSessionHistoryRoundTrip(t *testing.T) {
	m := NewSessionModel(SessionOptions{Factory: testFactory, ModeID: "rotation", Size: 7}, core.DefaultConfig())

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.screen != screenHistory {
		t.Fatalf("screen = %v, want history", m.screen)
	}

	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}
	if m.menu.Size() != 7 || m.menu.items[m.menu.cursor].ModeID != "rotation" {
		t.Error("menu lost the previous selection")
	}
}

func TestSessionBackFromGame(t *testing.T) {
	m := NewSessionModel(SessionOptions{Factory: testFactory, ModeID: "classic", Size: 5}, core.DefaultConfig())
	m, _ = updateSession(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	mt := m.game.match

	m, _ = updateSession(t, m, runeKey('b'))
	if m.screen != screenMenu {
		t.Fatalf("screen = %v, want menu", m.screen)
	}
	select {
	case <-mt.Done():
	default:
		t.Error("match not stopped when leaving the board")
	}
}

func TestMenuAdjustsSize(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), "classic", 5)

	next, _ := m.Update(runeKey('-'))
	m = next.(MenuModel)
	if m.Size() != squares.MinSize {
		t.Errorf("size = %d, want clamp at %d", m.Size(), squares.MinSize)
	}

	for i := 0; i < 10; i++ {
		next, _ = m.Update(runeKey('+'))
		m = next.(MenuModel)
	}
	if m.Size() != squares.MaxSize {
		t.Errorf("size = %d, want clamp at %d", m.Size(), squares.MaxSize)
	}
}
