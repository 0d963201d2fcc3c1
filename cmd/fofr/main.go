// fofr is a three-lane endless runner for the terminal.
//
// Usage:
//
//	fofr play                - Run through the streets (menu, daily challenge, scores)
//	fofr serve               - Start SSH server for remote play
//	fofr scores              - Show the run history
//	fofr profile <cmd>       - Show, export, import or reset the profile
//	fofr challenge           - Show today's challenge
//	fofr config              - Print the default game config
//	fofr sim                 - Run a headless session with a random bot
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.fofr/runs.db)
//	--config <path>       - Custom runner config (.yaml or .toml)
//	--difficulty <preset> - easy, normal, hard or fixed
//	--player <name>       - Name recorded with runs and on the leaderboard
//
// Every global flag may also come from a FOFR_* environment variable or a
// .env file in the working directory. Explicit flags win.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
	flagLogFile    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fofr",
	Short: "Fofr Pedro - a Czech endless runner in your terminal",
	Long: `Fofr Pedro is a three-lane endless runner. Dodge police, cars and
pigeons, slide under cards, jump over syringes and grab power-ups while
the street speeds up.

Available commands:
  play       - Start the game
  serve      - Start SSH server for remote play
  scores     - View the run history
  profile    - Manage the saved profile
  challenge  - Show the daily challenge
  config     - Print the default config
  sim        - Headless bot run

Examples:
  fofr play
  fofr play --difficulty hard --hud :8081
  fofr serve --ssh :2222
  fofr scores --limit 5
  fofr profile export > pedro.json`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadEnv(cmd, ".env")
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fofr/runs.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom runner config (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name for runs and the leaderboard")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log", "", "Write a debug log to this file")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(challengeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(simCmd)
}
