package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fofr-runner/internal/platform/tui"
	"github.com/vovakirdan/fofr-runner/internal/storage"
)

var (
	flagScoresLimit int
	flagRecent      bool
	flagClear       bool
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history",
	Long: `Display the best runs recorded in the runs database.

Examples:
  fofr scores
  fofr scores --limit 5
  fofr scores --recent
  fofr scores -i          # browse top runs, recent runs and the leaderboard
  fofr scores --clear     # forget every recorded run`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the latest runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded runs")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the scoreboard browser")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing runs: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("All runs deleted.")
		return
	}

	if flagInteractive {
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width = w
			height = h
		}
		if _, err := tui.RunScoreboard(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", err)
			os.Exit(1)
		}
		return
	}

	title := "Top runs"
	runs, err := store.TopRuns(flagScoresLimit)
	if flagRecent {
		title = "Recent runs"
		runs, err = store.RecentRuns(flagScoresLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s - Fofr Pedro\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'fofr play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-12s  %-8s  %-8s  %-10s  %s\n", "Rank", "Player", "Score", "Dist", "Cause", "Date")
	fmt.Printf("  %-4s  %-12s  %-8s  %-8s  %-10s  %s\n", "----", "------", "-----", "----", "-----", "----")

	for i, run := range runs {
		dateStr := run.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-12s  %-8d  %-8s  %-10s  %s\n",
			i+1, truncate(run.Player, 12), run.Score, fmt.Sprintf("%.0fm", run.Distance), run.Cause, dateStr)
	}

	fmt.Println()
	if stats, err := store.Stats(); err == nil {
		fmt.Printf("Best: %d  |  Runs: %d  |  Avg: %.0f  |  Longest: %.0fm  |  Flips: %d\n",
			stats.HighScore, stats.Runs, stats.AvgScore, stats.BestDistance, stats.TotalFlips)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
