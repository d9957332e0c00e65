// funrun is a terminal endless runner with a shared leaderboard.
//
// Usage:
//
//	funrun play              - Play in this terminal
//	funrun serve             - Start SSH server for remote play
//	funrun api               - Serve the leaderboard over HTTP
//	funrun scores            - Show the leaderboard
//	funrun config            - Print the runner tuning as YAML
//
// Global flags:
//
//	--fps <rate>     - Set tick rate (default: 60)
//	--seed <value>   - Set RNG seed for reproducible gameplay
//	--db <path>      - Set database path (default: ~/.funrun/funrun.db, env FUNRUN_DB)
//	--config <path>  - Load runner tuning from a YAML file
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
	flagConfig string
)

// envFlags maps flag names to the environment variables that default them.
var envFlags = map[string]string{
	"db":   "FUNRUN_DB",
	"api":  "FUNRUN_API",
	"addr": "FUNRUN_ADDR",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "funrun",
	Short: "Promon FunRun - an endless runner in your terminal",
	Long: `Promon FunRun is a side-scrolling endless runner. Jump the rocks,
push the balloons around for bonus points and climb the leaderboard.

Available commands:
  play     - Play in this terminal
  serve    - Start SSH server for remote play
  api      - Serve the leaderboard over HTTP
  scores   - View the leaderboard
  config   - Print the runner tuning

Examples:
  funrun play --name Ash
  funrun serve --ssh :2222
  funrun api --addr :8080
  funrun scores --limit 10 --api http://localhost:8080`,
	SilenceUsage:      true,
	PersistentPreRunE: applyEnv,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.funrun/funrun.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to runner tuning YAML")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// applyEnv loads an optional .env file and fills every flag the user did
// not set from its environment variable.
func applyEnv(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot load .env: %w", err)
	}
	return setFromEnv(cmd.Flags(), envFlags, os.LookupEnv)
}

func setFromEnv(flags *pflag.FlagSet, vars map[string]string, lookup func(string) (string, bool)) error {
	for name, env := range vars {
		f := flags.Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		v, ok := lookup(env)
		if !ok || v == "" {
			continue
		}
		if err := flags.Set(name, v); err != nil {
			return fmt.Errorf("invalid %s: %w", env, err)
		}
	}
	return nil
}
