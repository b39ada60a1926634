package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/quantum-squares/internal/match"
	"github.com/vovakirdan/quantum-squares/internal/squares"
)

func TestHistoryRows(t *testing.T) {
	ledger := match.NewLedger(0)
	ledger.SaveMatchResult(match.Result{
		Mode:      squares.ModeRapid,
		Size:      6,
		Players:   []squares.PlayerID{"Red", "Blue"},
		Scores:    map[squares.PlayerID]int{"Red": 4, "Blue": 10},
		Winner:    "Blue",
		Reason:    squares.ReasonScoreThreshold,
		StartedAt: time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local),
	})

	m := NewHistoryModel(ledger, 120, 30)
	if len(m.rows) != 1 {
		t.Fatalf("match rows = %d, want 1", len(m.rows))
	}
	want := []string{"14:05:07", "rapid", "6x6", "Blue", "Red 4, Blue 10", "score"}
	for i, cell := range want {
		if m.rows[0][i] != cell {
			t.Errorf("match column %d = %q, want %q", i, m.rows[0][i], cell)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if m.tab != tabLeaders {
		t.Fatal("tab did not switch")
	}
	if len(m.rows) != 2 {
		t.Fatalf("standing rows = %d, want 2", len(m.rows))
	}
	if got := strings.Join(m.rows[0], "|"); got != "#1|Blue|1|1|10" {
		t.Errorf("first standing = %q", got)
	}
	if got := strings.Join(m.rows[1], "|"); got != "#2|Red|0|1|4" {
		t.Errorf("second standing = %q", got)
	}
}

func TestHistoryEmpty(t *testing.T) {
	tests := []struct {
		name string
		src  HistorySource
	}{
		{"no source", nil},
		{"empty ledger", match.NewLedger(0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewHistoryModel(tc.src, 100, 30)
			if !strings.Contains(m.View(), "No matches finished yet") {
				t.Errorf("View() missing empty message:\n%s", m.View())
			}
		})
	}
}

func TestHistoryBackAndQuit(t *testing.T) {
	m := NewHistoryModel(match.NewLedger(0), 80, 24)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(HistoryModel).IsGoingBack() || cmd != nil {
		t.Error("esc should go back without quitting the program")
	}

	next, cmd = m.Update(runeKey('q'))
	if !next.(HistoryModel).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}
}
