package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fofr-runner/internal/games/runner"
)

var flagAllChallenges bool

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Show the daily challenge",
	Long: `Show today's challenge. The challenge rotates once a day and is the same
for everyone on the same date. Start it from the game menu.

Examples:
  fofr challenge
  fofr challenge --all`,
	Args: cobra.NoArgs,
	Run:  runChallenge,
}

func init() {
	challengeCmd.Flags().BoolVar(&flagAllChallenges, "all", false, "List every challenge in the rotation")
}

func runChallenge(_ *cobra.Command, _ []string) {
	today := runner.DailyChallenge(time.Now())

	if !flagAllChallenges {
		fmt.Printf("Daily challenge: %s\n", today.Name)
		fmt.Printf("  %s\n", today.Desc)
		return
	}

	fmt.Println("Challenges:")
	fmt.Println()
	for _, c := range runner.Challenges() {
		marker := " "
		if c.ID == today.ID {
			marker = "*"
		}
		fmt.Printf(" %s %-16s %-18s %s\n", marker, c.ID, c.Name, c.Desc)
	}
	fmt.Println()
	fmt.Println("* today")
}
