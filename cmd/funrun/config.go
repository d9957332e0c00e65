package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/funrun/internal/config"
)

var flagResolved bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the runner tuning as YAML",
	Long: `Print the built-in runner tuning. Save it to
~/.funrun/configs/runner.yaml or ./configs/runner.yaml and edit to override.

With --resolved, print the tuning after the search path and --config are
applied.

Examples:
  funrun config > ~/.funrun/configs/runner.yaml
  funrun config --resolved --config ./my-runner.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagResolved, "resolved", false, "Print the effective tuning instead of the defaults")
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagResolved {
		os.Stdout.Write(config.DefaultRunnerYAML()) //nolint:errcheck // stdout
		return
	}

	rc, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	out, err := yaml.Marshal(rc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding config: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out) //nolint:errcheck // stdout
}
