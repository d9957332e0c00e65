package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/funrun/internal/storage"
)

var (
	flagLimit     int
	flagScoresAPI string
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the best runs, highest first.

Reads the local database unless --api points at a leaderboard server.

Examples:
  funrun scores
  funrun scores --limit 0
  funrun scores --api http://localhost:8080`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows (0 = all)")
	scoresCmd.Flags().StringVar(&flagScoresAPI, "api", "", "Leaderboard API base URL (env FUNRUN_API)")
}

func runScores(_ *cobra.Command, _ []string) {
	var store *storage.Store
	if flagScoresAPI == "" {
		s, err := storage.Open(flagDBPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()
		store = s
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	scores, err := leaderboard(flagScoresAPI, store).ListScores(ctx, flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}
	printScores(os.Stdout, scores)
}

func printScores(w io.Writer, scores []storage.Score) {
	fmt.Fprintln(w, "Leaderboard")
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Play 'funrun play' to set the first score!")
		return
	}

	fmt.Fprintf(w, "  %-4s  %-32s  %-8s  %s\n", "Rank", "Player", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-32s  %-8s  %s\n", "----", "------", "-----", "----")
	for i, s := range scores {
		fmt.Fprintf(w, "  %-4d  %-32s  %-8d  %s\n", i+1, s.User, s.Score, s.Timestamp.Local().Format("2006-01-02 15:04"))
	}
}
