package squares

import (
	"errors"
	"fmt"
)

// Move rejection reasons.
var (
	ErrOutOfBounds = errors.New("cell out of bounds")
	ErrCellOwned   = errors.New("cell owned by another player")
	ErrGameOver    = errors.New("game already over")
	ErrNotYourTurn = errors.New("not your turn")
)

// Configuration rejection reasons.
var (
	ErrGridSize    = errors.New("unsupported grid size")
	ErrPlayerCount = errors.New("unsupported player count")
	ErrPlayerID    = errors.New("invalid player id")
	ErrUnknownMode = errors.New("unknown mode")
)

// MoveError describes an illegal placement. The game state is unchanged when
// one is returned.
type MoveError struct {
	Player   PlayerID
	Row, Col int
	Err      error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("illegal move by %q at (%d,%d): %v", e.Player, e.Row, e.Col, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// ConfigError describes a match configuration that cannot start.
type ConfigError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
