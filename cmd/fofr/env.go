package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fofr-runner/internal/config"
	"github.com/vovakirdan/fofr-runner/internal/storage"
)

// envFlags maps persistent flags to their environment variables.
var envFlags = map[string]string{
	"fps":        "FOFR_FPS",
	"seed":       "FOFR_SEED",
	"db":         "FOFR_DB",
	"config":     "FOFR_CONFIG",
	"difficulty": "FOFR_DIFFICULTY",
	"player":     "FOFR_PLAYER",
	"log":        "FOFR_LOG",
}

// loadEnv reads an optional .env file into the process environment and
// then fills every flag the user did not set from its FOFR_* variable.
// Variables already in the environment are not overridden by the file.
func loadEnv(cmd *cobra.Command, envFile string) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("cannot read %s: %w", envFile, err)
	}
	return applyEnv(cmd, os.LookupEnv)
}

func applyEnv(cmd *cobra.Command, lookup func(string) (string, bool)) error {
	for name, env := range envFlags {
		f := cmd.Flags().Lookup(name)
		if f == nil || f.Changed {
			continue
		}
		value, ok := lookup(env)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		if err := f.Value.Set(strings.TrimSpace(value)); err != nil {
			return fmt.Errorf("invalid %s=%q: %w", env, value, err)
		}
	}
	return nil
}

// loadRunnerConfig resolves the runner config and applies the preset.
func loadRunnerConfig() (config.RunnerConfig, error) {
	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyRunnerPreset(&cfg, preset)
	}
	return cfg, nil
}

// openStore opens the runs database and binds the player name.
func openStore() (*storage.Store, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return nil, err
	}
	if flagPlayer != "" {
		store.SetPlayer(flagPlayer)
	}
	return store, nil
}

// newLogger writes to the --log file, or nowhere. The terminal belongs
// to the game while it runs. The returned closer is never nil.
func newLogger(prefix string) (*log.Logger, io.Closer, error) {
	if flagLogFile == "" {
		return log.New(io.Discard), io.NopCloser(nil), nil
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          prefix,
	})
	return logger, f, nil
}
