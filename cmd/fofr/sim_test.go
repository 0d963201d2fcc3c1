package main

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/fofr-runner/internal/config"
	"github.com/vovakirdan/fofr-runner/internal/storage"
)

func TestSimulateDeterministic(t *testing.T) {
	opts := simOptions{
		Config:  config.DefaultRunnerConfig(),
		Seed:    7,
		Seconds: 5,
		FPS:     30,
	}

	first, err := simulate(opts)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	second, err := simulate(opts)
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different runs:\n%+v\n%+v", first, second)
	}
	if first.Duration > opts.Seconds+1e-9 {
		t.Errorf("Duration = %f, want <= %f", first.Duration, opts.Seconds)
	}
	if first.Epoch != 1 {
		t.Errorf("Epoch = %d, want 1", first.Epoch)
	}
}

func TestSimulateChallenge(t *testing.T) {
	sum, err := simulate(simOptions{
		Config:    config.DefaultRunnerConfig(),
		Seed:      3,
		Seconds:   2,
		Challenge: "slide-master",
	})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}
	if sum.Challenge == nil || sum.Challenge.ID != "slide-master" {
		t.Errorf("Challenge = %+v, want slide-master result", sum.Challenge)
	}

	_, err = simulate(simOptions{
		Config:    config.DefaultRunnerConfig(),
		Seconds:   1,
		Challenge: "no-such-challenge",
	})
	if err == nil {
		t.Error("expected error for unknown challenge")
	}
}

func TestSimulateSave(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	sum, err := simulate(simOptions{
		Config:  config.DefaultRunnerConfig(),
		Seed:    11,
		Seconds: 3,
		Store:   store,
	})
	if err != nil {
		t.Fatalf("simulate: %v", err)
	}

	runs, err := store.RecentRuns(5)
	if err != nil {
		t.Fatalf("RecentRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].Score != sum.Score {
		t.Errorf("saved score = %d, want %d", runs[0].Score, sum.Score)
	}
}
