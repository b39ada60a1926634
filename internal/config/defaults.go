package config

import (
	_ "embed"
)

//go:embed defaults/squares.yaml
var defaultSquaresYAML []byte

// DefaultSquaresConfig returns the built-in configuration.
func DefaultSquaresConfig() SquaresConfig {
	return SquaresConfig{
		Game: GameConfig{
			Size:    5,
			Mode:    "classic",
			Players: []string{"Red", "Blue"},
		},
		Rapid: RapidConfig{
			TurnSeconds: 10,
		},
		AI: AIConfig{
			ThinkMillis: 1000,
		},
		Server: ServerConfig{
			Addr:              ":23234",
			HostKey:           ".ssh/squares_ed25519",
			SessionsPerMinute: 30,
		},
	}
}

// DefaultYAML returns the embedded default file.
func DefaultYAML() []byte {
	return defaultSquaresYAML
}
