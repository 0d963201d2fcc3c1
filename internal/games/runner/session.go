package runner

import "math"

// Combo counts consecutive skill moves. Count never drops below 1.
type Combo struct {
	Count int
	Timer float64 // seconds until the combo falls back to 1
}

// Bump increments the combo and re-arms the decay timer.
func (c *Combo) Bump(timeout float64) {
	c.Count++
	c.Timer = timeout
}

// Reset drops the combo back to 1.
func (c *Combo) Reset() {
	c.Count = 1
	c.Timer = 0
}

// Decay runs the timer down by dt and resets the combo when it expires.
func (c *Combo) Decay(dt float64) {
	if c.Timer <= 0 {
		return
	}
	c.Timer -= dt
	if c.Timer <= 0 {
		c.Reset()
	}
}

// Stats are per-session counters used by challenges, achievements and the summary.
type Stats struct {
	Flips             int
	PowerupsCollected int
	Hits              int
	Absorbed          int
	JumpDodges        int
	SlideDodges       int
	Scrambles         int
	CleanDistance     float64 // metres since the last hit
}

// Session is the state of one play attempt.
type Session struct {
	Score     int
	Distance  float64 // metres
	Speed     float64
	TopSpeed  float64
	Lives     int
	Combo     Combo
	Powerups  Powerups
	Elapsed   float64 // simulated seconds of play
	Stats     Stats
	Challenge *ChallengeProgress
	Cause     string

	scoreCarry float64
}

func newSession(lives int, speed float64) Session {
	return Session{
		Speed:    speed,
		TopSpeed: speed,
		Lives:    lives,
		Combo:    Combo{Count: 1},
	}
}

// AddScore adds bonus points. Negative amounts are ignored.
func (s *Session) AddScore(points int) {
	if points > 0 {
		s.Score += points
	}
}

// RaiseSpeed sets the speed to v capped at max. Speed never goes down.
func (s *Session) RaiseSpeed(v, max float64) {
	v = math.Min(v, max)
	if v > s.Speed {
		s.Speed = v
	}
	if s.Speed > s.TopSpeed {
		s.TopSpeed = s.Speed
	}
}

// Accrue adds distance and survival score for dt seconds at the current speed.
func (s *Session) Accrue(dt, distanceFactor, scoreFactor float64) {
	d := s.Speed * dt * distanceFactor
	s.Distance += d
	s.Stats.CleanDistance += d
	s.Elapsed += dt

	s.scoreCarry += s.Speed * dt * scoreFactor
	whole := math.Floor(s.scoreCarry)
	s.Score += int(whole)
	s.scoreCarry -= whole
}

// Damage removes one life and breaks the combo.
// Returns true when the last life was lost.
func (s *Session) Damage() bool {
	if s.Lives > 0 {
		s.Lives--
	}
	s.Combo.Reset()
	s.Stats.Hits++
	s.Stats.CleanDistance = 0
	return s.Lives == 0
}
