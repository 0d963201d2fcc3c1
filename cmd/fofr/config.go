package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fofr-runner/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default config",
	Long: `Print the built-in runner configuration as YAML. Save it as
~/.fofr/configs/runner.yaml (or pass it with --config) and edit to taste.

Examples:
  fofr config > ~/.fofr/configs/runner.yaml`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		os.Stdout.Write(config.DefaultYAML())
	},
}
