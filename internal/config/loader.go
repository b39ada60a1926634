package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvSize        = "SQUARES_SIZE"
	EnvMode        = "SQUARES_MODE"
	EnvPlayers     = "SQUARES_PLAYERS" // comma separated
	EnvTurnSeconds = "SQUARES_TURN_SECONDS"
	EnvAIDelay     = "SQUARES_AI_DELAY_MS"
	EnvDB          = "SQUARES_DB"
	EnvSSHAddr     = "SQUARES_SSH_ADDR"
	EnvMetricsAddr = "SQUARES_METRICS_ADDR"
)

// Load reads the configuration and applies environment overrides.
// Search order: customPath -> ~/.squares/config.yaml -> ./configs/squares.yaml -> embedded default
func Load(customPath string) (SquaresConfig, error) {
	cfg, err := loadFile(customPath)
	if err != nil {
		return cfg, err
	}
	if err := LoadDotEnv(); err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(customPath string) (SquaresConfig, error) {
	cfg := DefaultSquaresConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultSquaresConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "squares.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultSquaresConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultSquaresYAML, &cfg); err != nil {
		return DefaultSquaresConfig(), nil
	}
	return cfg, nil
}

// LoadDotEnv loads variables from the given files, or ./.env when none are
// named. Missing files are ignored; existing variables are never replaced.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides cfg with any SQUARES_* variables that are set.
func ApplyEnv(cfg *SquaresConfig) error {
	if err := envInt(EnvSize, &cfg.Game.Size); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvMode); ok {
		cfg.Game.Mode = v
	}
	if v, ok := os.LookupEnv(EnvPlayers); ok {
		cfg.Game.Players = splitList(v)
	}
	if err := envInt(EnvTurnSeconds, &cfg.Rapid.TurnSeconds); err != nil {
		return err
	}
	if err := envInt(EnvAIDelay, &cfg.AI.ThinkMillis); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(EnvDB); ok {
		cfg.Storage.DBPath = v
	}
	if v, ok := os.LookupEnv(EnvSSHAddr); ok {
		cfg.Server.Addr = v
	}
	if v, ok := os.LookupEnv(EnvMetricsAddr); ok {
		cfg.Server.MetricsAddr = v
	}
	return nil
}

func envInt(key string, dst *int) error {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".squares", filename)
}

// DataDir returns ~/.squares, or the working directory if home is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".squares")
}
