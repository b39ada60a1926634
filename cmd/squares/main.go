// squares is Quantum Squares, a territory game played in the terminal.
//
// Usage:
//
//	squares modes            - List playable modes
//	squares play [mode]      - Play a match
//	squares menu             - Pick modes interactively
//	squares serve            - Start SSH server for remote play
//
// Global flags:
//
//	--config <path> - Config file (default: search ~/.squares, ./configs)
//	--seed <value>  - AI seed for reproducible games
//	--db <path>     - Settings database (default: ~/.squares/squares.db)
//	--verbose       - Debug logging
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/quantum-squares/internal/config"
	"github.com/vovakirdan/quantum-squares/internal/storage"
)

var (
	// Global flags
	flagConfig  string
	flagSeed    int64
	flagDBPath  string
	flagVerbose bool

	// Loaded in PersistentPreRunE
	appConfig config.SquaresConfig
	logger    = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "squares",
	})
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "squares",
	Short: "Quantum Squares - a chain reaction territory game",
	Long: `Quantum Squares is played on a square grid. Drop particles on empty
squares or on your own; a square holding 4 particles collapses, scores a
point for its owner and spills into its neighbours. First to 10 points wins.

Available commands:
  modes    - Show all playable modes
  play     - Play a match directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play

Examples:
  squares modes
  squares play
  squares play ai --size 7
  squares play rotation --players Ann,Bo,Cy
  squares serve --ssh :2222`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "AI seed (0 = config or time based)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to settings database")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
}

func loadConfig(_ *cobra.Command, _ []string) error {
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagSeed != 0 {
		cfg.AI.Seed = flagSeed
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if cfg.Storage.DBPath == "" {
		cfg.Storage.DBPath = filepath.Join(config.DataDir(), "squares.db")
	}
	appConfig = cfg
	return nil
}

// openStore opens the settings database. Games still work without one, so a
// failure is only logged.
func openStore() *storage.Store {
	store, err := storage.Open(appConfig.Storage.DBPath)
	if err != nil {
		logger.Warn("could not open settings database", "path", appConfig.Storage.DBPath, "err", err)
		return nil
	}
	return store
}
