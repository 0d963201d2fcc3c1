package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/fofr-runner/internal/core"
	"github.com/vovakirdan/fofr-runner/internal/platform/tui"
	"github.com/vovakirdan/fofr-runner/internal/platform/web"
	"github.com/vovakirdan/fofr-runner/internal/storage"
)

var (
	flagHUDAddr string
	flagDebug   bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the game",
	Long: `Start the runner with its menu, daily challenge and scoreboard.

Controls:
  A/D, Left/Right  - Change lane
  W/Up/Space       - Jump (double tap = flip)
  S/Down           - Slide
  P/Esc            - Pause
  R                - Retry (after game over)
  B                - Back to menu
  Ctrl+S           - Save a screenshot
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Start slow with 5 lives
  normal - Start at 30% difficulty
  hard   - Start at 70% difficulty with 2 lives
  fixed  - No progression, stays at base speed

Examples:
  fofr play
  fofr play --difficulty easy
  fofr play --config ./my-runner.toml
  fofr play --hud :8081          # spectators connect to ws://host:8081/hud
  fofr play --debug              # number keys spawn obstacles`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagHUDAddr, "hud", "", "Serve a WebSocket HUD feed on this address")
	playCmd.Flags().BoolVar(&flagDebug, "debug", false, "Enable debug spawn keys (1-8 obstacles, 9 0 - = power-ups)")
}

func runPlay(_ *cobra.Command, _ []string) {
	runnerCfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, logFile, err := newLogger("fofr")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	rt := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rt.ScreenW = w
		rt.ScreenH = h
	}
	rt.TickRate = flagFPS
	rt.Seed = flagSeed

	// Open run storage
	store, err := openStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - game still works
	}

	opts := tui.Options{
		Runtime: rt,
		Runner:  runnerCfg,
		Store:   store,
		Player:  flagPlayer,
		Logger:  logger,
		Debug:   flagDebug,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if flagHUDAddr != "" {
		hub := web.NewHub(logger.WithPrefix("fofr-hud"))
		opts.Publisher = hub
		go func() {
			if err := hub.ListenAndServe(ctx, flagHUDAddr); err != nil {
				logger.Error("HUD feed stopped", "error", err)
			}
		}()
	}

	runErr := tui.Run(opts)

	closeStore(store)

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

func closeStore(store *storage.Store) {
	if store != nil {
		store.Close()
	}
}
