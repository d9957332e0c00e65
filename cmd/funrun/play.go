package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/funrun/internal/bridge"
	"github.com/vovakirdan/funrun/internal/core"
	"github.com/vovakirdan/funrun/internal/platform/tui"
	"github.com/vovakirdan/funrun/internal/storage"
)

var (
	flagName    string
	flagPlayAPI string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a run in the current terminal.

Controls:
  Enter        - Confirm your name
  Space/Up     - Start, jump, restart
  Mouse click  - Same as space
  Tab          - Leaderboard (between runs)
  Q/Ctrl+C     - Quit

Scores go to the local database unless --api points at a leaderboard server.
Logs are written to ~/.funrun/funrun.log.

Examples:
  funrun play
  funrun play --name Ash
  funrun play --api http://localhost:8080
  funrun play --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name (skips the name prompt)")
	playCmd.Flags().StringVar(&flagPlayAPI, "api", "", "Leaderboard API base URL (env FUNRUN_API)")
}

func runPlay(_ *cobra.Command, _ []string) {
	var logOut io.Writer = io.Discard
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, "funrun")

	rc, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	sprites := loadSprites(rc, logger)

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	var local bridge.HighScoreStore
	if store != nil {
		local = store
	}
	board := leaderboard(flagPlayAPI, store)

	bcfg := bridge.DefaultConfig()
	bcfg.HighScoreKey = rc.Scoring.HighScoreKey
	br := bridge.New(bcfg, local, board, logger)

	var lister tui.ScoreLister
	if board != nil {
		lister = br
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	runErr := tui.Run(tui.Options{
		Runner: rc,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Sprites:   sprites,
		Persister: br,
		Scores:    lister,
		HighScore: loadHighScore(store, rc.Scoring.HighScoreKey, logger),
		Name:      flagName,
		SkipGate:  flagName != "",
		Logger:    logger,
	})

	// Drain pending writes before the store goes away.
	br.Close()
	st := br.Stats()
	logger.Info("session closed", "delivered", st.Delivered, "failed", st.Failed, "dropped", st.Dropped)
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
