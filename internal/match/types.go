// Package match drives a squares.Game in real time: it owns the rapid-mode
// clock, schedules AI turns, fans events out to subscribers and reports the
// final result.
package match

import (
	"errors"
	"time"

	"github.com/vovakirdan/quantum-squares/internal/squares"
)

// ID uniquely identifies a match.
type ID string

// Controller errors.
var (
	ErrTurnLocked = errors.New("match: AI move pending")
	ErrStopped    = errors.New("match: stopped")
	ErrNotStarted = errors.New("match: not started")
)

// Result contains the outcome of a finished match.
type Result struct {
	MatchID   ID
	Mode      squares.Mode
	Size      int
	Players   []squares.PlayerID
	Scores    map[squares.PlayerID]int
	Winner    squares.PlayerID
	Reason    squares.EndReason
	Moves     int
	StartedAt time.Time
	Duration  time.Duration
}

// ResultSaver persists finished matches.
// This lets the controller save results without depending on the storage package.
type ResultSaver interface {
	SaveMatchResult(result Result) error
}

// Observer receives lifecycle notifications. Implementations must not call
// back into the match.
type Observer interface {
	MatchStarted(mode squares.Mode)
	MoveAccepted(result squares.MoveResult)
	MoveRejected(err error)
	MatchFinished(result Result)
	MatchAbandoned()
}

type nopObserver struct{}

func (nopObserver) MatchStarted(squares.Mode)       {}
func (nopObserver) MoveAccepted(squares.MoveResult) {}
func (nopObserver) MoveRejected(error)              {}
func (nopObserver) MatchFinished(Result)            {}
func (nopObserver) MatchAbandoned()                 {}
