package runner

import (
	"github.com/vovakirdan/fofr-runner/internal/config"
)

// Stacking modes for duplicate timed pickups.
const (
	StackRefresh = "refresh" // reset the timer to the full duration
	StackExtend  = "extend"  // add the full duration to what is left
)

func stack(left, duration float64, mode string) float64 {
	if mode == StackExtend && left > 0 {
		return left + duration
	}
	return duration
}

// Collect applies the effect of a picked up power-up.
// Speed boosts are permanent; their timer only drives the HUD indicator.
func (s *Session) Collect(t PowerupType, p *Player, cfg config.PowerupConfig, maxSpeed float64) {
	s.Stats.PowerupsCollected++
	switch t {
	case PowerupSpeedBoost:
		s.RaiseSpeed(s.Speed*cfg.SpeedMultiplier, maxSpeed)
		s.Powerups[t] = stack(s.Powerups[t], cfg.SpeedDuration, cfg.Stacking)
	case PowerupInvulnerability:
		s.Powerups[t] = stack(s.Powerups[t], cfg.InvulnerabilityDuration, cfg.Stacking)
	case PowerupExtraLife:
		s.Lives++
	case PowerupShield:
		p.Shield = true
	}
}

// DecayPowerups runs every timed power-up down by dt.
func (s *Session) DecayPowerups(dt float64) {
	for i := range s.Powerups {
		if s.Powerups[i] <= 0 {
			continue
		}
		s.Powerups[i] -= dt
		if s.Powerups[i] < 0 {
			s.Powerups[i] = 0
		}
	}
}
