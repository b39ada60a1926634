package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/quantum-squares/internal/match"
	"github.com/vovakirdan/quantum-squares/internal/platform/tui"
	"github.com/vovakirdan/quantum-squares/internal/squares"
	"github.com/vovakirdan/quantum-squares/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a mode interactively",
	Long: `Start in interactive menu mode.

After a match you return to the menu to play again. The last mode and
board size are remembered between sessions. The history screen lists the
matches finished since the menu was opened.

Controls:
  Up/Down/j/k     - Choose mode
  Left/Right/+/-  - Board size
  Enter/Space     - Play
  Tab/T           - Match history
  Q               - Quit

Examples:
  squares menu
  squares menu --db ./settings.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}
	ledger := match.NewLedger(match.DefaultLedgerSize)
	return runSessionLoop(store, ledger, defaultSelection(cmd, store))
}

// runSessionLoop runs menu, board and history in one program. store may be
// nil, in which case settings are not remembered.
func runSessionLoop(store *storage.Store, ledger *match.Ledger, sel selection) error {
	opts := tui.SessionOptions{
		Factory: localFactory(ledger),
		History: ledger,
		Players: sel.players,
		ModeID:  sel.modeID,
		Size:    sel.size,
		OnSelect: func(modeID string, size int, players []squares.PlayerID) {
			rememberSettings(store, modeID, size, players)
		},
	}
	return tui.RunSession(opts, runtimeConfig())
}
