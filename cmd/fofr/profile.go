package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fofr-runner/internal/storage"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage the saved profile",
	Long: `Show, back up, restore or reset the profile. The profile holds the
settings, the high score, the leaderboard and unlocked achievements.

Examples:
  fofr profile show
  fofr profile export > pedro.json
  fofr profile export pedro.json
  fofr profile import pedro.json
  fofr profile reset`,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the profile",
	Args:  cobra.NoArgs,
	Run:   runProfileShow,
}

var profileExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the profile as JSON",
	Args:  cobra.MaximumNArgs(1),
	Run:   runProfileExport,
}

var profileImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a profile exported earlier (- reads stdin)",
	Args:  cobra.ExactArgs(1),
	Run:   runProfileImport,
}

var profileResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset settings and game data to defaults",
	Args:  cobra.NoArgs,
	Run:   runProfileReset,
}

func init() {
	profileCmd.AddCommand(profileShowCmd, profileExportCmd, profileImportCmd, profileResetCmd)
}

func mustOpenStore() *storage.Store {
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	return store
}

func runProfileShow(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	p, err := store.LoadProfile()
	if errors.Is(err, storage.ErrMalformedProfile) {
		fmt.Fprintln(os.Stderr, "Warning: saved profile is damaged, showing defaults")
	} else if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading profile: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Profile")
	fmt.Println()
	fmt.Printf("  High score:   %d\n", p.Game.HighScore)
	fmt.Printf("  Best speed:   %d\n", p.Game.BestSpeed)
	lastPlayed := p.Game.LastPlayDate
	if lastPlayed == "" {
		lastPlayed = "never"
	}
	fmt.Printf("  Last played:  %s\n", lastPlayed)
	fmt.Printf("  Sound: %s  Music: %s  Haptics: %s  Theme: %s  Spice: %s\n",
		onOff(p.Settings.Sound), onOff(p.Settings.Music), onOff(p.Settings.Haptics), p.Settings.Theme, p.Settings.Spice)

	fmt.Println()
	fmt.Println("Leaderboard")
	if len(p.Game.Leaderboard) == 0 {
		fmt.Println("  (empty)")
	}
	for i, e := range p.Game.Leaderboard {
		fmt.Printf("  %d. %-12s %8d  %s\n", i+1, truncate(e.Name, 12), e.Score, e.Date)
	}

	fmt.Println()
	if len(p.Game.Achievements) == 0 {
		fmt.Println("Achievements: none yet")
		return
	}
	fmt.Printf("Achievements: %s\n", strings.Join(p.Game.Achievements, ", "))
}

func runProfileExport(_ *cobra.Command, args []string) {
	store := mustOpenStore()
	defer store.Close()

	data, err := store.ExportProfile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error exporting profile: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')

	if len(args) == 0 || args[0] == "-" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", args[0], err)
		os.Exit(1)
	}
	fmt.Printf("Profile exported to %s\n", args[0])
}

func runProfileImport(_ *cobra.Command, args []string) {
	var (
		data []byte
		err  error
	)
	if args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading profile: %v\n", err)
		os.Exit(1)
	}

	store := mustOpenStore()
	defer store.Close()

	if err := store.ImportProfile(data); err != nil {
		if errors.Is(err, storage.ErrMalformedProfile) {
			fmt.Fprintln(os.Stderr, "Error: not a fofr profile export (need version, settings and gameData)")
		} else {
			fmt.Fprintf(os.Stderr, "Error importing profile: %v\n", err)
		}
		os.Exit(1)
	}
	fmt.Println("Profile imported.")
}

func runProfileReset(_ *cobra.Command, _ []string) {
	store := mustOpenStore()
	defer store.Close()

	if err := store.ResetProfile(); err != nil {
		fmt.Fprintf(os.Stderr, "Error resetting profile: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Profile reset to defaults.")
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
