package registry

import "github.com/vovakirdan/quantum-squares/internal/squares"

// Seat names used when a preset is started without explicit players.
var (
	DefaultPair     = []squares.PlayerID{"Red", "Blue"}
	DefaultRotation = []squares.PlayerID{"Red", "Blue", "Green", "Yellow"}
	DefaultHuman    = squares.PlayerID("You")
)

func init() {
	Register(Info{
		ID:          "classic",
		Title:       "Head to Head",
		Description: "Two players alternate, first to 10 points wins",
		Mode:        squares.ModeHeadToHead,
	}, fixed(squares.ModeHeadToHead, DefaultPair))

	Register(Info{
		ID:          "rotation",
		Title:       "Rotation",
		Description: "Two to four players take turns in a cycle",
		Mode:        squares.ModeRotation,
	}, fixed(squares.ModeRotation, DefaultRotation))

	Register(Info{
		ID:          "ai",
		Title:       "Versus AI",
		Description: "Play against a computer opponent",
		Mode:        squares.ModeVsAI,
	}, func(size int, players []squares.PlayerID) squares.Config {
		human := DefaultHuman
		if len(players) > 0 {
			human = players[0]
		}
		return squares.Config{Size: size, Mode: squares.ModeVsAI, Players: []squares.PlayerID{human}}
	})

	Register(Info{
		ID:          "rapid",
		Title:       "Rapid",
		Description: "Head to head with 10 seconds per turn",
		Mode:        squares.ModeRapid,
	}, fixed(squares.ModeRapid, DefaultPair))
}

func fixed(mode squares.Mode, defaults []squares.PlayerID) Factory {
	return func(size int, players []squares.PlayerID) squares.Config {
		if len(players) == 0 {
			players = defaults
		}
		return squares.Config{
			Size:    size,
			Mode:    mode,
			Players: append([]squares.PlayerID(nil), players...),
		}
	}
}
