package squares

import (
	"fmt"
	"strings"
	"time"
)

// AIPlayer is the identifier of the synthetic opponent in ModeVsAI.
const AIPlayer PlayerID = "AI"

// Mode selects the turn-order strategy.
type Mode int

const (
	ModeHeadToHead Mode = iota // two fixed players alternate
	ModeRotation               // 2-4 players in a cycle
	ModeVsAI                   // one human against the AI
	ModeRapid                  // head-to-head with a per-turn clock
)

func (m Mode) String() string {
	switch m {
	case ModeHeadToHead:
		return "classic"
	case ModeRotation:
		return "rotation"
	case ModeVsAI:
		return "ai"
	case ModeRapid:
		return "rapid"
	default:
		return "unknown"
	}
}

// ParseMode accepts the names produced by Mode.String plus a few aliases.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classic", "head-to-head", "headtohead", "pvp", "":
		return ModeHeadToHead, nil
	case "rotation", "party":
		return ModeRotation, nil
	case "ai", "vs-ai", "cpu":
		return ModeVsAI, nil
	case "rapid", "timed":
		return ModeRapid, nil
	default:
		return 0, &ConfigError{Field: "mode", Reason: fmt.Sprintf("unknown mode %q", s), Err: ErrUnknownMode}
	}
}

// Config describes a match before it starts.
type Config struct {
	Size      int
	Mode      Mode
	Players   []PlayerID
	TurnLimit time.Duration // rapid only; zero means DefaultTurnLimit
}

// Normalize validates the configuration and returns it in canonical form:
// identifiers trimmed, the AI seat appended for ModeVsAI, and the turn limit
// defaulted for ModeRapid.
func (c Config) Normalize() (Config, error) {
	if c.Size < MinSize || c.Size > MaxSize {
		return c, &ConfigError{
			Field:  "size",
			Reason: fmt.Sprintf("%d not in [%d, %d]", c.Size, MinSize, MaxSize),
			Err:    ErrGridSize,
		}
	}

	players := make([]PlayerID, 0, len(c.Players)+1)
	for _, p := range c.Players {
		players = append(players, PlayerID(strings.TrimSpace(string(p))))
	}

	switch c.Mode {
	case ModeHeadToHead, ModeRapid:
		if len(players) != 2 {
			return c, countError(c.Mode, len(players), "exactly 2")
		}
	case ModeRotation:
		if len(players) < 2 || len(players) > 4 {
			return c, countError(c.Mode, len(players), "2 to 4")
		}
	case ModeVsAI:
		if len(players) == 1 {
			players = append(players, AIPlayer)
		}
		if len(players) != 2 {
			return c, countError(c.Mode, len(players), "1 human")
		}
		if players[1] != AIPlayer {
			return c, &ConfigError{Field: "players", Reason: "second seat must be the AI", Err: ErrPlayerID}
		}
	default:
		return c, &ConfigError{Field: "mode", Reason: fmt.Sprintf("unknown mode %d", int(c.Mode)), Err: ErrUnknownMode}
	}

	seen := make(map[PlayerID]bool, len(players))
	for _, p := range players {
		if p == NoPlayer {
			return c, &ConfigError{Field: "players", Reason: "empty identifier", Err: ErrPlayerID}
		}
		if seen[p] {
			return c, &ConfigError{Field: "players", Reason: fmt.Sprintf("duplicate identifier %q", p), Err: ErrPlayerID}
		}
		seen[p] = true
	}

	c.Players = players
	if c.Mode == ModeRapid && c.TurnLimit <= 0 {
		c.TurnLimit = DefaultTurnLimit
	}
	if c.Mode != ModeRapid {
		c.TurnLimit = 0
	}
	return c, nil
}

func countError(m Mode, got int, want string) error {
	return &ConfigError{
		Field:  "players",
		Reason: fmt.Sprintf("%s mode needs %s players, got %d", m, want, got),
		Err:    ErrPlayerCount,
	}
}
