package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/fofr-runner/internal/config"
	"github.com/vovakirdan/fofr-runner/internal/core"
	"github.com/vovakirdan/fofr-runner/internal/games/runner"
)

func TestDrawSnapshot(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	screen := core.NewScreen(60, 30)

	snap := runner.Snapshot{
		Status: runner.StatusPlaying,
		Score:  42,
		Speed:  3,
		Lives:  3,
		Lane:   1,
		Combo:  1,
		Entities: []runner.EntityView{
			{ID: 1, Kind: runner.KindObstacle, Type: "car", Lane: 0, X: 130, Y: 300, W: 40, H: 40},
			{ID: 2, Kind: runner.KindPowerup, Type: "shield", Lane: 2, X: 390, Y: 100, W: 30, H: 30},
		},
	}
	DrawSnapshot(screen, snap, cfg)
	out := screen.String()

	for _, want := range []string{"Score: 42", "♥♥♥", string(PlayerChar), "C", "O", "best 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("screen missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(screen.Row(0), "Score: 42") {
		t.Errorf("HUD should be on row 0, got %q", screen.Row(0))
	}
}

func TestDrawSnapshotPoses(t *testing.T) {
	cfg := config.DefaultRunnerConfig()

	tests := []struct {
		pose runner.Pose
		want rune
	}{
		{runner.PoseGrounded, PlayerChar},
		{runner.PoseSliding, '_'},
		{runner.PoseFlipping, '%'},
	}
	for _, tt := range tests {
		t.Run(tt.pose.String(), func(t *testing.T) {
			screen := core.NewScreen(60, 30)
			DrawSnapshot(screen, runner.Snapshot{Status: runner.StatusPlaying, Lane: 0, Pose: tt.pose, Offset: 50}, cfg)
			if !strings.ContainsRune(screen.String(), tt.want) {
				t.Errorf("pose %s: glyph %q not drawn", tt.pose, tt.want)
			}
		})
	}
}

func TestDrawSnapshotChallenge(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	screen := core.NewScreen(80, 24)
	ch, ok := runner.ChallengeByID("fast-pedro")
	if !ok {
		t.Fatal("fast-pedro challenge missing")
	}

	DrawSnapshot(screen, runner.Snapshot{
		Status:    runner.StatusPlaying,
		Lane:      1,
		Challenge: &runner.ChallengeProgress{Challenge: ch, Value: 5},
	}, cfg)

	if bottom := screen.Row(23); !strings.Contains(bottom, ch.Name+" 5/7") {
		t.Errorf("status line = %q, want challenge progress", bottom)
	}
}

func TestDrawCenteredMessage(t *testing.T) {
	screen := core.NewScreen(40, 12)
	drawCenteredMessage(screen, "PAUSED", "P: resume")

	out := screen.String()
	if !strings.Contains(out, "PAUSED") || !strings.Contains(out, "P: resume") {
		t.Errorf("message not drawn:\n%s", out)
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	screen := core.NewScreen(10, 2)
	screen.DrawText(0, 0, "hello")
	screen.DrawTextColored(0, 1, "red", core.ColorRed)

	out := RenderScreen(screen)
	if !strings.Contains(out, "hello") || !strings.Contains(out, "red") {
		t.Errorf("RenderScreen() lost text: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("RenderScreen() has %d newlines, want 1", got)
	}
}
