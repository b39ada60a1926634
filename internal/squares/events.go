package squares

import "time"

// Event is emitted by the engine in resolution order. Renderers and sound
// layers consume these; the engine never reads them back.
type Event interface {
	squaresEvent()
}

// CellUpdated is sent whenever a cell's count or owner changes.
type CellUpdated struct {
	Row, Col int
	Count    int
	Owner    PlayerID
}

func (CellUpdated) squaresEvent() {}

// SquareCollapsed is sent once per collapsing cell.
type SquareCollapsed struct {
	Owner    PlayerID
	Row, Col int
}

func (SquareCollapsed) squaresEvent() {}

// ScoreChanged carries a player's new total.
type ScoreChanged struct {
	Player PlayerID
	Score  int
}

func (ScoreChanged) squaresEvent() {}

// TurnChanged names the player who acts next.
type TurnChanged struct {
	Player PlayerID
}

func (TurnChanged) squaresEvent() {}

// TurnPassed is sent when a player is skipped for lack of a legal cell.
type TurnPassed struct {
	Player PlayerID
}

func (TurnPassed) squaresEvent() {}

// ClockTicked reports the time left for the current turn in rapid mode.
type ClockTicked struct {
	Player    PlayerID
	Remaining time.Duration
}

func (ClockTicked) squaresEvent() {}

// GameOver is sent exactly once per match.
type GameOver struct {
	Winner PlayerID
	Reason EndReason
}

func (GameOver) squaresEvent() {}

// EndReason describes why a game finished.
type EndReason int

const (
	ReasonNone           EndReason = iota
	ReasonScoreThreshold           // a player reached TargetScore
	ReasonTimeout                  // rapid-mode clock expired
)

func (r EndReason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonScoreThreshold:
		return "score"
	case ReasonTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// recorder collects events for a single transaction.
type recorder struct {
	events []Event
}

func (r *recorder) emit(e Event) {
	r.events = append(r.events, e)
}
