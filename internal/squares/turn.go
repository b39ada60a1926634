package squares

import "time"

// Default per-turn limit for rapid games.
const DefaultTurnLimit = 10 * time.Second

// Controller says who drives a seat.
type Controller int

const (
	ControllerHuman Controller = iota
	ControllerAutomated
)

// TurnOrder decides who acts after a move and how each seat is driven.
type TurnOrder interface {
	// Next returns the seat that acts after current.
	Next(current int) int

	// Controller reports whether the seat is a person or the AI.
	Controller(seat int) Controller

	// TurnLimit is the countdown armed at each turn start; zero when untimed.
	TurnLimit() time.Duration
}

// alternating swaps between two seats.
type alternating struct{}

func (alternating) Next(current int) int      { return 1 - current }
func (alternating) Controller(int) Controller { return ControllerHuman }
func (alternating) TurnLimit() time.Duration  { return 0 }

// rotation cycles through n seats and wraps around.
type rotation struct {
	n int
}

func (r rotation) Next(current int) int    { return (current + 1) % r.n }
func (rotation) Controller(int) Controller { return ControllerHuman }
func (rotation) TurnLimit() time.Duration  { return 0 }

// versusAI alternates a human seat with an automated one.
type versusAI struct {
	alternating
	aiSeat int
}

func (v versusAI) Controller(seat int) Controller {
	if seat == v.aiSeat {
		return ControllerAutomated
	}
	return ControllerHuman
}

// timed is alternating play with a per-turn countdown.
type timed struct {
	alternating
	limit time.Duration
}

func (t timed) TurnLimit() time.Duration { return t.limit }

// NewTurnOrder builds the strategy for a validated configuration.
func NewTurnOrder(cfg Config) TurnOrder {
	switch cfg.Mode {
	case ModeRotation:
		return rotation{n: len(cfg.Players)}
	case ModeVsAI:
		seat := 1
		for i, p := range cfg.Players {
			if p == AIPlayer {
				seat = i
			}
		}
		return versusAI{aiSeat: seat}
	case ModeRapid:
		limit := cfg.TurnLimit
		if limit <= 0 {
			limit = DefaultTurnLimit
		}
		return timed{limit: limit}
	default:
		return alternating{}
	}
}
