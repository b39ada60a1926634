// Package config provides YAML-based configuration loading for Quantum
// Squares, with embedded defaults and environment overrides.
package config

import (
	"time"

	"github.com/vovakirdan/quantum-squares/internal/squares"
)

// SquaresConfig contains all configuration for the game and its servers.
type SquaresConfig struct {
	Game    GameConfig    `yaml:"game"`
	Rapid   RapidConfig   `yaml:"rapid"`
	AI      AIConfig      `yaml:"ai"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

// GameConfig defines the board and the seats.
type GameConfig struct {
	Size    int      `yaml:"size"`
	Mode    string   `yaml:"mode"`    // classic, rotation, ai or rapid
	Players []string `yaml:"players"` // turn order; one name for ai mode
}

// RapidConfig defines the per-turn countdown.
type RapidConfig struct {
	TurnSeconds int `yaml:"turn_seconds"`
}

// AIConfig defines the synthetic opponent.
type AIConfig struct {
	ThinkMillis int   `yaml:"think_millis"`
	Seed        int64 `yaml:"seed"` // 0 = random
}

// StorageConfig defines where results are kept.
type StorageConfig struct {
	DBPath string `yaml:"db_path"` // empty = ~/.squares/squares.db
}

// ServerConfig defines the SSH and metrics listeners used by `serve`.
type ServerConfig struct {
	Addr              string `yaml:"addr"`
	HostKey           string `yaml:"host_key"`
	MetricsAddr       string `yaml:"metrics_addr"` // empty disables /metrics
	SessionsPerMinute int    `yaml:"sessions_per_minute"`
}

// TurnLimit returns the rapid countdown length.
func (c SquaresConfig) TurnLimit() time.Duration {
	return time.Duration(c.Rapid.TurnSeconds) * time.Second
}

// AIDelay returns the AI thinking time.
func (c SquaresConfig) AIDelay() time.Duration {
	return time.Duration(c.AI.ThinkMillis) * time.Millisecond
}

// GameConfig converts the file settings into a validated engine config.
func (c SquaresConfig) GameConfig() (squares.Config, error) {
	mode, err := squares.ParseMode(c.Game.Mode)
	if err != nil {
		return squares.Config{}, err
	}

	players := make([]squares.PlayerID, 0, len(c.Game.Players))
	for _, p := range c.Game.Players {
		players = append(players, squares.PlayerID(p))
	}
	if mode == squares.ModeVsAI && len(players) > 1 {
		players = players[:1]
	}

	return squares.Config{
		Size:      c.Game.Size,
		Mode:      mode,
		Players:   players,
		TurnLimit: c.TurnLimit(),
	}.Normalize()
}
