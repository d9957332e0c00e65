package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/funrun/internal/api"
	"github.com/vovakirdan/funrun/internal/assets"
	"github.com/vovakirdan/funrun/internal/bridge"
	"github.com/vovakirdan/funrun/internal/config"
	"github.com/vovakirdan/funrun/internal/storage"
)

// newLogger builds the structured logger used by every command.
func newLogger(w io.Writer, prefix string) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
}

// openLogFile opens ~/.funrun/funrun.log for appending. The TUI owns
// stdout, so play logs go there.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".funrun")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create %s: %w", dir, err)
	}
	return os.OpenFile(filepath.Join(dir, "funrun.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}

// loadRunnerConfig resolves and validates the runner tuning.
func loadRunnerConfig() (config.RunnerConfig, error) {
	rc, err := config.LoadRunner(flagConfig)
	if err != nil {
		return rc, err
	}
	if err := rc.Validate(); err != nil {
		return rc, fmt.Errorf("config: invalid runner tuning: %w", err)
	}
	return rc, nil
}

// loadSprites loads the sprite set, logging but not failing on bad art.
func loadSprites(rc config.RunnerConfig, logger *log.Logger) assets.Set {
	set, err := assets.Load(rc.Assets)
	if err != nil {
		logger.Warn("sprites not ready, using fallback blocks", "err", err)
	}
	return set
}

// leaderboard returns the remote API when apiURL is set, else the store.
// The result is nil when neither is available.
func leaderboard(apiURL string, store *storage.Store) bridge.Leaderboard {
	if apiURL != "" {
		return api.NewClient(apiURL, nil)
	}
	if store != nil {
		return store
	}
	return nil
}

// loadHighScore reads the persisted best. A missing store reads as 0.
func loadHighScore(store *storage.Store, key string, logger *log.Logger) int {
	if store == nil {
		return 0
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	hs, err := store.LoadHighScore(ctx, key)
	if err != nil {
		logger.Warn("could not load high score", "err", err)
	}
	return hs
}
