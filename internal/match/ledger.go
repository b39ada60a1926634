package match

import (
	"sort"
	"sync"

	"github.com/vovakirdan/quantum-squares/internal/squares"
)

// DefaultLedgerSize is how many results a ledger keeps when none is given.
const DefaultLedgerSize = 200

// Standing aggregates one player's finished matches.
type Standing struct {
	Player squares.PlayerID
	Wins   int
	Played int
	Points int
}

// Ledger keeps the results of matches finished since the process started.
// Nothing is written to disk. It is safe for concurrent use and can be shared
// by many matches as their ResultSaver.
type Ledger struct {
	mu      sync.RWMutex
	results []Result // oldest first
	size    int
}

// NewLedger creates a ledger holding at most size results; older results
// are forgotten first.
func NewLedger(size int) *Ledger {
	if size < 1 {
		size = DefaultLedgerSize
	}
	return &Ledger{size: size}
}

var _ ResultSaver = (*Ledger)(nil)

// SaveMatchResult records a finished match.
func (l *Ledger) SaveMatchResult(r Result) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.results = append(l.results, r)
	if over := len(l.results) - l.size; over > 0 {
		l.results = append([]Result(nil), l.results[over:]...)
	}
	return nil
}

// Recent returns up to limit results, newest first. limit <= 0 means all.
func (l *Ledger) Recent(limit int) []Result {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := len(l.results)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Result, 0, n)
	for i := len(l.results) - 1; len(out) < n; i-- {
		out = append(out, l.results[i])
	}
	return out
}

// Standings ranks every player seen by wins, then points, then name.
// limit <= 0 means all.
func (l *Ledger) Standings(limit int) []Standing {
	l.mu.RLock()
	byPlayer := make(map[squares.PlayerID]*Standing)
	for _, r := range l.results {
		for _, p := range r.Players {
			s, ok := byPlayer[p]
			if !ok {
				s = &Standing{Player: p}
				byPlayer[p] = s
			}
			s.Played++
			s.Points += r.Scores[p]
			if r.Winner == p {
				s.Wins++
			}
		}
	}
	l.mu.RUnlock()

	out := make([]Standing, 0, len(byPlayer))
	for _, s := range byPlayer {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		return a.Player < b.Player
	})

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// Len returns the number of results held.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.results)
}
