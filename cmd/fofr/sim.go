package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fofr-runner/internal/config"
	"github.com/vovakirdan/fofr-runner/internal/core"
	"github.com/vovakirdan/fofr-runner/internal/games/runner"
)

var (
	flagSimSeconds   float64
	flagSimChallenge string
	flagSimSave      bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless session with a random bot",
	Long: `Run one session without a terminal UI. A bot presses random keys
and the summary of the run is printed as JSON. With the same --seed the
result is the same on every machine.

Examples:
  fofr sim --seed 42
  fofr sim --seconds 120 --difficulty hard
  fofr sim --challenge slide-master --save`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().Float64Var(&flagSimSeconds, "seconds", 60, "Simulated seconds before the run is ended")
	simCmd.Flags().StringVar(&flagSimChallenge, "challenge", "", "Track this challenge id during the run")
	simCmd.Flags().BoolVar(&flagSimSave, "save", false, "Record the run in the runs database")
}

// simClock advances with the simulation so double taps are measured in
// simulated time.
type simClock struct{ now time.Time }

func (c *simClock) Now() time.Time { return c.now }

// simOptions describes one headless run.
type simOptions struct {
	Config    config.RunnerConfig
	Seed      int64
	Seconds   float64
	FPS       int
	Challenge string
	Store     runner.Persistence
}

var botActions = []core.Action{
	core.ActionNone, core.ActionNone,
	core.ActionLeft, core.ActionRight,
	core.ActionJump, core.ActionSlide,
}

// simulate plays one session with a random bot until game over or the
// time limit and returns its summary.
func simulate(opts simOptions) (runner.Summary, error) {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	clock := &simClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	ctrlOpts := []runner.Option{runner.WithSeed(opts.Seed), runner.WithClock(clock)}
	if opts.Store != nil {
		ctrlOpts = append(ctrlOpts, runner.WithPersistence(opts.Store))
	}
	ctrl, err := runner.New(opts.Config, ctrlOpts...)
	if err != nil {
		return runner.Summary{}, err
	}
	ctrl.MarkReady()

	if opts.Challenge != "" {
		ch, ok := runner.ChallengeByID(opts.Challenge)
		if !ok {
			return runner.Summary{}, fmt.Errorf("unknown challenge %q", opts.Challenge)
		}
		err = ctrl.StartChallenge(ch)
	} else {
		err = ctrl.StartSession()
	}
	if err != nil {
		return runner.Summary{}, err
	}

	dt := 1 / float64(opts.FPS)
	step := time.Duration(float64(time.Second) * dt)
	bot := rand.New(rand.NewSource(opts.Seed))
	frames := int(opts.Seconds * float64(opts.FPS))

	for frame := range frames {
		if ctrl.Status() != runner.StatusPlaying {
			break
		}
		// Roughly four decisions per second.
		if frame%(max(opts.FPS/4, 1)) == 0 {
			if a := botActions[bot.Intn(len(botActions))]; a != core.ActionNone {
				ctrl.HandleInput(a)
			}
		}
		clock.now = clock.now.Add(step)
		ctrl.Tick(dt)
	}

	return ctrl.EndSession()
}

func runSim(_ *cobra.Command, _ []string) {
	cfg, err := loadRunnerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts := simOptions{
		Config:    cfg,
		Seed:      seed,
		Seconds:   flagSimSeconds,
		FPS:       flagFPS,
		Challenge: flagSimChallenge,
	}

	if flagSimSave {
		store := mustOpenStore()
		defer store.Close()
		opts.Store = store
	}

	sum, err := simulate(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	out := struct {
		Seed int64 `json:"seed"`
		runner.Summary
	}{seed, sum}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
