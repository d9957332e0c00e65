package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/funrun/internal/api"
	"github.com/vovakirdan/funrun/internal/storage"
)

var flagAddr string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Serve the leaderboard over HTTP",
	Long: `Serve the leaderboard stored in the SQLite database.

Endpoints:
  POST /api/scores          {"user": "Ash", "score": 120}
  GET  /api/scores?limit=N  best first; no limit returns every row
  GET  /health

Examples:
  funrun api
  funrun api --addr :9000 --db ./funrun.db`,
	Args: cobra.NoArgs,
	Run:  runAPI,
}

func init() {
	apiCmd.Flags().StringVar(&flagAddr, "addr", ":8080", "HTTP listen address (env FUNRUN_ADDR)")
}

func runAPI(_ *cobra.Command, _ []string) {
	logger := newLogger(os.Stderr, "funrun-api")

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Fatal("cannot open scores database", "err", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("starting leaderboard API", "address", flagAddr, "db", flagDBPath)
	if err := api.NewServer(store, logger).ListenAndServe(ctx, flagAddr); err != nil {
		logger.Error("server error", "err", err)
		stop()
		store.Close()
		os.Exit(1)
	}
	logger.Info("stopped")
}
