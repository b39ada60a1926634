package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/quantum-squares/internal/core"
	"github.com/vovakirdan/quantum-squares/internal/match"
	"github.com/vovakirdan/quantum-squares/internal/platform/tui"
	"github.com/vovakirdan/quantum-squares/internal/registry"
	"github.com/vovakirdan/quantum-squares/internal/squares"
	"github.com/vovakirdan/quantum-squares/internal/storage"
)

var (
	flagSize        int
	flagPlayers     string
	flagTurnSeconds int
	flagAIDelay     int
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a match",
	Long: `Start a match in the given mode. Without a mode the last one played
is used, falling back to the configured default.

All human players share the keyboard; a placement is made for whoever
is to move.

Controls:
  Arrows/hjkl/wasd - Move the cursor
  Enter/Space      - Place a particle
  R                - Play again (after game over)
  B/Esc            - Back to the menu
  Q/Ctrl+C         - Quit

Examples:
  squares play
  squares play ai --size 7
  squares play rapid --turn-seconds 5
  squares play rotation --players Ann,Bo,Cy,Di`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagSize, "size", 0, "Board size (5-10)")
	playCmd.Flags().StringVar(&flagPlayers, "players", "", "Comma separated player names in turn order")
	playCmd.Flags().IntVar(&flagTurnSeconds, "turn-seconds", 0, "Seconds per turn in rapid mode")
	playCmd.Flags().IntVar(&flagAIDelay, "ai-delay", 0, "AI thinking time in milliseconds")
}

// selection is the mode, size and seats a session starts with.
type selection struct {
	modeID  string
	size    int
	players []squares.PlayerID
}

// defaultSelection merges config, remembered settings and flags, in that
// order of increasing priority.
func defaultSelection(cmd *cobra.Command, store *storage.Store) selection {
	sel := selection{
		modeID:  appConfig.Game.Mode,
		size:    appConfig.Game.Size,
		players: playerIDs(appConfig.Game.Players),
	}
	if mode, err := squares.ParseMode(sel.modeID); err == nil {
		sel.modeID = mode.String()
	}

	if store != nil {
		if st, ok, err := store.LoadSettings(); err != nil {
			logger.Warn("could not load settings", "err", err)
		} else if ok {
			if registry.Exists(st.Mode) {
				sel.modeID = st.Mode
			}
			if st.Size != 0 {
				sel.size = st.Size
			}
			if len(st.Players) > 0 {
				sel.players = playerIDs(st.Players)
			}
		}
	}

	if cmd.Flags().Changed("size") {
		sel.size = flagSize
	}
	if cmd.Flags().Changed("players") {
		sel.players = playerIDs(strings.Split(flagPlayers, ","))
	}
	if cmd.Flags().Changed("turn-seconds") {
		appConfig.Rapid.TurnSeconds = flagTurnSeconds
	}
	if cmd.Flags().Changed("ai-delay") {
		appConfig.AI.ThinkMillis = flagAIDelay
	}
	return sel
}

func runtimeConfig() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		rc.ScreenW, rc.ScreenH = w, h
	}
	return rc
}

func runPlay(cmd *cobra.Command, args []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	sel := defaultSelection(cmd, store)
	if len(args) == 1 {
		sel.modeID = args[0]
	}
	if !registry.Exists(sel.modeID) {
		return fmt.Errorf("unknown mode %q, run 'squares modes' to see available modes", sel.modeID)
	}

	cfg, err := registry.Create(sel.modeID, sel.size, sel.players)
	if err != nil {
		return err
	}
	rememberSettings(store, sel.modeID, cfg.Size, cfg.Players)

	ledger := match.NewLedger(match.DefaultLedgerSize)
	back, err := tui.Run(localFactory(ledger), cfg, runtimeConfig())
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	if back {
		sel.size = cfg.Size
		return runSessionLoop(store, ledger, sel)
	}
	return nil
}
