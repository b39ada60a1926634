package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/quantum-squares/internal/metrics"
	"github.com/vovakirdan/quantum-squares/internal/platform/tui"
	"github.com/vovakirdan/quantum-squares/internal/squares"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagMetricsAddr string
	flagIdleTimeout int
	flagSessionRate int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Quantum Squares SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the mode menu. Matches are
played locally on that terminal, hot seat or against the AI. Results are
kept in memory while the server runs, so all users share the history and
leaderboard.

With --metrics-addr, Prometheus metrics are served at /metrics and a
liveness probe at /healthz.

Examples:
  squares serve                          # Listen on :23234
  squares serve --ssh :2222              # Listen on port 2222
  squares serve --host-key ./host_key    # Use specific host key
  squares serve --metrics-addr :9090     # Expose /metrics

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (generated if missing)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Address for /metrics and /healthz (empty = disabled)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().IntVar(&flagSessionRate, "sessions-per-minute", 0, "New sessions allowed per host and minute (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	srvCfg := appConfig.Server
	if cmd.Flags().Changed("ssh") {
		srvCfg.Addr = flagSSHAddr
	}
	if cmd.Flags().Changed("host-key") {
		srvCfg.HostKey = flagHostKey
	}
	if cmd.Flags().Changed("metrics-addr") {
		srvCfg.MetricsAddr = flagMetricsAddr
	}
	if cmd.Flags().Changed("sessions-per-minute") {
		srvCfg.SessionsPerMinute = flagSessionRate
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = srvCfg.Addr
	if srvCfg.HostKey != "" {
		cfg.HostKeyPath = srvCfg.HostKey
	}
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.SessionsPerMinute = srvCfg.SessionsPerMinute
	cfg.AIDelay = appConfig.AIDelay()
	cfg.TurnLimit = appConfig.TurnLimit()
	cfg.Size = appConfig.Game.Size
	if mode, err := squares.ParseMode(appConfig.Game.Mode); err == nil {
		cfg.ModeID = mode.String()
	}

	recorder := metrics.NewRecorder()

	server, err := tui.NewSSHServer(cfg, recorder, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	if srvCfg.MetricsAddr != "" {
		httpSrv := &http.Server{
			Addr:              srvCfg.MetricsAddr,
			Handler:           metrics.NewRouter(recorder),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("serving metrics", "address", srvCfg.MetricsAddr)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server error", "err", err)
			}
		}()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			//nolint:errcheck // Best-effort shutdown on exit
			httpSrv.Shutdown(ctx)
		}()
	}

	fmt.Printf("Starting Quantum Squares SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
