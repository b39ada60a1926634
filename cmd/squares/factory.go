package main

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/quantum-squares/internal/config"
	"github.com/vovakirdan/quantum-squares/internal/match"
	"github.com/vovakirdan/quantum-squares/internal/platform/tui"
	"github.com/vovakirdan/quantum-squares/internal/squares"
	"github.com/vovakirdan/quantum-squares/internal/storage"
)

// localFactory builds matches for the local terminal. Finished matches are
// kept in ledger. Seeds advance per match so a fixed --seed replays the same
// sequence of games.
func localFactory(ledger *match.Ledger) tui.MatchFactory {
	seed := appConfig.AI.Seed
	mlog := matchLogger()
	return func(cfg squares.Config) (*match.Match, error) {
		if cfg.Mode == squares.ModeRapid && appConfig.TurnLimit() > 0 {
			cfg.TurnLimit = appConfig.TurnLimit()
		}
		opts := match.Options{
			AIDelay: appConfig.AIDelay(),
			Seed:    seed,
			Logger:  mlog,
			Saver:   ledger,
		}
		if seed != 0 {
			seed++
		}
		return match.New(cfg, opts)
	}
}

// rememberSettings stores the last choice for the next session.
func rememberSettings(store *storage.Store, modeID string, size int, players []squares.PlayerID) {
	if store == nil {
		return
	}
	names := make([]string, 0, len(players))
	for _, p := range players {
		if p != squares.AIPlayer {
			names = append(names, string(p))
		}
	}
	if err := store.SaveSettings(storage.Settings{Size: size, Mode: modeID, Players: names}); err != nil {
		logger.Warn("could not save settings", "err", err)
	}
}

func playerIDs(names []string) []squares.PlayerID {
	ids := make([]squares.PlayerID, 0, len(names))
	for _, n := range names {
		ids = append(ids, squares.PlayerID(n))
	}
	return ids
}

// matchLogger keeps match logs off the screen while a TUI is running. With
// --verbose they go to squares.log in the data directory.
func matchLogger() *log.Logger {
	if !flagVerbose {
		return nil
	}
	path := filepath.Join(config.DataDir(), "squares.log")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil
	}
	l := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "match"})
	l.SetLevel(log.DebugLevel)
	return l
}
