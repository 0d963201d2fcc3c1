package runner

import (
	"testing"

	"github.com/vovakirdan/fofr-runner/internal/config"
)

func TestPowerupStacking(t *testing.T) {
	tests := []struct {
		mode string
		want float64
	}{
		{StackRefresh, 3},
		{StackExtend, 4},
	}
	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cfg := config.DefaultRunnerConfig().Powerups
			cfg.Stacking = tt.mode
			s := newSession(3, 3)
			p := testPlayer()

			s.Collect(PowerupInvulnerability, &p, cfg, 8)
			s.DecayPowerups(2)
			s.Collect(PowerupInvulnerability, &p, cfg, 8)

			if got := s.Powerups[PowerupInvulnerability]; got != tt.want {
				t.Errorf("timer = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPowerupDecay(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Powerups
	s := newSession(3, 3)
	p := testPlayer()
	s.Collect(PowerupSpeedBoost, &p, cfg, 8)

	s.DecayPowerups(4)
	if !s.Powerups.Active(PowerupSpeedBoost) {
		t.Error("speed boost expired early")
	}
	s.DecayPowerups(2)
	if s.Powerups.Active(PowerupSpeedBoost) || s.Powerups[PowerupSpeedBoost] != 0 {
		t.Errorf("timer = %v, want 0", s.Powerups[PowerupSpeedBoost])
	}
	if s.Speed != 4.5 {
		t.Errorf("Speed = %v, boost must outlive its timer", s.Speed)
	}
}

func TestExtraLifeUncapped(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Powerups
	s := newSession(3, 3)
	p := testPlayer()
	for i := 0; i < 10; i++ {
		s.Collect(PowerupExtraLife, &p, cfg, 8)
	}
	if s.Lives != 13 {
		t.Errorf("Lives = %d, want 13", s.Lives)
	}
	if s.Stats.PowerupsCollected != 10 {
		t.Errorf("PowerupsCollected = %d", s.Stats.PowerupsCollected)
	}
}

func TestSessionAccrue(t *testing.T) {
	s := newSession(3, 3)
	for i := 0; i < 100; i++ {
		s.Accrue(0.05, 10, 1)
	}
	if s.Score < 14 || s.Score > 15 {
		t.Errorf("Score = %d, want about 15", s.Score)
	}
	if s.Distance < 149.9 || s.Distance > 150.1 {
		t.Errorf("Distance = %v, want 150", s.Distance)
	}
}

func TestSessionDamage(t *testing.T) {
	s := newSession(1, 3)
	s.Combo.Bump(3)
	if !s.Damage() {
		t.Error("last life lost not reported")
	}
	s.Damage()
	if s.Lives != 0 {
		t.Errorf("Lives = %d, want 0", s.Lives)
	}
	if s.Combo.Count != 1 {
		t.Errorf("Combo = %d, want 1", s.Combo.Count)
	}
}
