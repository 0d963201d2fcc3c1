package runner

import (
	"errors"
	"math"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/fofr-runner/internal/config"
	"github.com/vovakirdan/fofr-runner/internal/core"
)

func noObstacles(c *Controller) func() bool {
	return func() bool { return len(c.registry.Obstacles()) == 0 }
}

func noPowerups(c *Controller) func() bool {
	return func() bool { return len(c.registry.Powerups()) == 0 }
}

func TestLoadingToMenu(t *testing.T) {
	c, err := New(quietConfig(), WithSeed(1))
	if err != nil {
		t.Fatal(err)
	}
	if c.Status() != StatusLoading {
		t.Fatalf("Status = %v, want loading", c.Status())
	}

	ticks(c, 10) // 0.5s
	if c.Status() != StatusLoading {
		t.Fatalf("left loading too early")
	}
	snap := c.Tick(1.1)
	if snap.Status != StatusMenu {
		t.Errorf("Status after 1.5s = %v, want menu", snap.Status)
	}

	c2, _ := New(quietConfig())
	c2.MarkReady()
	if c2.Status() != StatusMenu {
		t.Errorf("MarkReady: Status = %v, want menu", c2.Status())
	}
}

func TestGenericDamageHit(t *testing.T) {
	c := newPlaying(t, quietConfig())
	c.session.Combo.Count = 3

	if c.session.Speed != 3 || c.session.Lives != 3 || c.player.Lane != 1 {
		t.Fatalf("unexpected start: speed=%v lives=%d lane=%d", c.session.Speed, c.session.Lives, c.player.Lane)
	}
	if err := c.DebugSpawn("police", 1); err != nil {
		t.Fatal(err)
	}

	tickUntil(t, c, 200, noObstacles(c))

	if c.session.Lives != 2 {
		t.Errorf("Lives = %d, want 2", c.session.Lives)
	}
	if c.session.Combo.Count != 1 {
		t.Errorf("Combo = %d, want 1", c.session.Combo.Count)
	}
	if c.session.Stats.Hits != 1 {
		t.Errorf("Hits = %d, want 1", c.session.Stats.Hits)
	}

	// A removed obstacle never hits again.
	ticks(c, 100)
	if c.session.Lives != 2 {
		t.Errorf("Lives after more ticks = %d, want 2", c.session.Lives)
	}
}

func TestObstacleInOtherLaneMisses(t *testing.T) {
	c := newPlaying(t, quietConfig())
	if err := c.DebugSpawn("barrier", 0); err != nil {
		t.Fatal(err)
	}
	tickUntil(t, c, 300, noObstacles(c))
	if c.session.Lives != 3 {
		t.Errorf("Lives = %d, want 3", c.session.Lives)
	}
}

func TestSlideRequired(t *testing.T) {
	tests := []struct {
		name      string
		slide     bool
		wantLives int
	}{
		{"standing", false, 2},
		{"sliding", true, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newPlaying(t, quietConfig())
			if err := c.DebugSpawn("card", 1); err != nil {
				t.Fatal(err)
			}
			ticks(c, 35)
			if tt.slide {
				c.HandleInput(core.ActionSlide)
			}
			tickUntil(t, c, 200, noObstacles(c))

			if c.session.Lives != tt.wantLives {
				t.Errorf("Lives = %d, want %d", c.session.Lives, tt.wantLives)
			}
			if tt.slide && c.session.Stats.SlideDodges != 1 {
				t.Errorf("SlideDodges = %d, want 1", c.session.Stats.SlideDodges)
			}
		})
	}
}

func TestJumpRequired(t *testing.T) {
	c := newPlaying(t, quietConfig())
	if err := c.DebugSpawn("syringe", 1); err != nil {
		t.Fatal(err)
	}
	ticks(c, 35)
	c.HandleInput(core.ActionJump)
	tickUntil(t, c, 200, noObstacles(c))

	if c.session.Lives != 3 {
		t.Errorf("Lives = %d, want 3", c.session.Lives)
	}
	if c.session.Stats.JumpDodges != 1 {
		t.Errorf("JumpDodges = %d, want 1", c.session.Stats.JumpDodges)
	}
}

func TestLaneScramble(t *testing.T) {
	c := newPlaying(t, quietConfig())
	if err := c.DebugSpawn("straw", 1); err != nil {
		t.Fatal(err)
	}
	tickUntil(t, c, 200, func() bool { return c.session.Stats.Scrambles == 1 })

	if c.session.Lives != 3 {
		t.Errorf("Lives = %d, want 3", c.session.Lives)
	}
	if c.player.Lane < 0 || c.player.Lane >= LaneCount {
		t.Errorf("Lane = %d out of range", c.player.Lane)
	}
}

// laneBox is the standing player box in lane. Entities placed on it with
// zero velocity overlap the player on the next tick.
func laneBox(c *Controller, lane int) core.Box {
	return core.NewBox(c.cfg.Track.Lanes[lane], c.cfg.Track.PlayerY, c.cfg.Player.Width, c.cfg.Player.Height)
}

func TestLastLifeIsNotRevivedBySamePassPickup(t *testing.T) {
	c := newPlaying(t, quietConfig())
	c.session.Lives = 1
	c.registry.AddObstacle(ObstaclePolice, 1, laneBox(c, 1), 0)
	c.registry.AddPowerup(PowerupExtraLife, 1, laneBox(c, 1), 0)

	c.Tick(frame)

	if c.Status() != StatusGameOver {
		t.Fatalf("Status = %v, want gameover", c.Status())
	}
	if c.session.Lives != 0 {
		t.Errorf("Lives = %d, want 0", c.session.Lives)
	}
	if c.session.Stats.PowerupsCollected != 0 {
		t.Errorf("PowerupsCollected = %d, want 0", c.session.Stats.PowerupsCollected)
	}
	sum, ok := c.LastSummary()
	if !ok || sum.Cause != "police" {
		t.Errorf("summary = %+v ok=%v, want cause police", sum, ok)
	}
}

func TestScrambleMovesHitBox(t *testing.T) {
	c := newPlaying(t, quietConfig())
	c.registry.AddObstacle(ObstacleStraw, 1, laneBox(c, 1), 0)
	for lane := range LaneCount {
		c.registry.AddPowerup(PowerupShield, lane, laneBox(c, lane), 0)
	}

	c.Tick(frame)

	if c.session.Stats.Scrambles != 1 {
		t.Fatalf("Scrambles = %d, want 1", c.session.Stats.Scrambles)
	}
	if c.session.Stats.PowerupsCollected != 1 || !c.player.Shield {
		t.Errorf("collected=%d shield=%v, want exactly the pickup in the new lane",
			c.session.Stats.PowerupsCollected, c.player.Shield)
	}
	for _, pu := range c.registry.Powerups() {
		if pu.Lane == c.player.Lane {
			t.Errorf("pickup in lane %d left behind after scramble", pu.Lane)
		}
	}
}

func TestShieldAndInvulnerability(t *testing.T) {
	t.Run("shield is consumed", func(t *testing.T) {
		c := newPlaying(t, quietConfig())
		c.player.Shield = true
		c.DebugSpawn("police", 1)
		tickUntil(t, c, 200, noObstacles(c))
		if c.session.Lives != 3 || c.player.Shield {
			t.Errorf("lives=%d shield=%v, want 3 false", c.session.Lives, c.player.Shield)
		}

		c.DebugSpawn("car", 1)
		tickUntil(t, c, 200, noObstacles(c))
		if c.session.Lives != 2 {
			t.Errorf("second hit: Lives = %d, want 2", c.session.Lives)
		}
	})

	t.Run("invulnerability is not consumed", func(t *testing.T) {
		c := newPlaying(t, quietConfig())
		c.player.Shield = true
		c.session.Powerups[PowerupInvulnerability] = 10
		c.DebugSpawn("police", 1)
		tickUntil(t, c, 200, noObstacles(c))
		c.DebugSpawn("pigeon", 1)
		tickUntil(t, c, 200, noObstacles(c))

		if c.session.Lives != 3 {
			t.Errorf("Lives = %d, want 3", c.session.Lives)
		}
		if !c.player.Shield {
			t.Error("shield used while invulnerable")
		}
		if c.session.Stats.Absorbed != 2 {
			t.Errorf("Absorbed = %d, want 2", c.session.Stats.Absorbed)
		}
	})
}

func TestSpeedBoost(t *testing.T) {
	c := newPlaying(t, quietConfig())
	want := []float64{4.5, 6.75, 8}
	for i, w := range want {
		if err := c.DebugSpawn("speed-boost", 1); err != nil {
			t.Fatal(err)
		}
		tickUntil(t, c, 200, noPowerups(c))
		if math.Abs(c.session.Speed-w) > 1e-9 {
			t.Errorf("pickup %d: Speed = %v, want %v", i+1, c.session.Speed, w)
		}
		if c.session.Speed > c.cfg.Physics.MaxSpeed {
			t.Errorf("Speed %v above cap", c.session.Speed)
		}
	}
	if !c.session.Powerups.Active(PowerupSpeedBoost) {
		t.Error("speed boost timer not active")
	}
}

func TestPowerupPickups(t *testing.T) {
	c := newPlaying(t, quietConfig())
	sink := &recordSink{}
	c.sink = sink

	c.DebugSpawn("extra-life", 1)
	tickUntil(t, c, 200, noPowerups(c))
	c.DebugSpawn("shield", 1)
	tickUntil(t, c, 200, noPowerups(c))

	if c.session.Lives != 4 {
		t.Errorf("Lives = %d, want 4", c.session.Lives)
	}
	if !c.player.Shield {
		t.Error("shield not set")
	}
	if n := sink.count(FeedbackPowerup); n != 2 {
		t.Errorf("powerup feedback = %d, want 2", n)
	}
	if len(c.registry.Particles()) == 0 {
		t.Error("pickup spawned no particles")
	}
}

func TestDoubleTapFlip(t *testing.T) {
	clock := newFakeClock()
	sink := &recordSink{}
	c := newPlaying(t, quietConfig(), WithClock(clock), WithFeedback(sink))

	c.HandleInput(core.ActionJump)
	clock.Advance(100 * time.Millisecond)
	c.HandleInput(core.ActionJump)
	snap := c.Tick(frame)

	if snap.Pose != PoseFlipping {
		t.Fatalf("Pose = %v, want flipping", snap.Pose)
	}
	if snap.Score != 500 {
		t.Errorf("Score = %d, want 500", snap.Score)
	}
	if snap.Combo != 2 {
		t.Errorf("Combo = %d, want 2", snap.Combo)
	}
	if !reflect.DeepEqual(sink.kinds(), []FeedbackKind{FeedbackFlip}) {
		t.Errorf("feedback = %v, want [flip]", sink.kinds())
	}

	tickUntil(t, c, 100, func() bool { return c.player.Pose == PoseGrounded })

	// Second flip inside the combo window pays 500*2.
	before := c.session.Score
	c.HandleInput(core.ActionJump)
	clock.Advance(50 * time.Millisecond)
	c.HandleInput(core.ActionJump)
	c.Tick(frame)
	// The tick may also add one survival point.
	if got := c.session.Score - before; got < 1000 || got > 1001 {
		t.Errorf("second flip bonus = %d, want 1000", got)
	}
	if c.session.Stats.Flips != 2 {
		t.Errorf("Flips = %d, want 2", c.session.Stats.Flips)
	}
}

func TestSlowDoubleTapIsJump(t *testing.T) {
	clock := newFakeClock()
	c := newPlaying(t, quietConfig(), WithClock(clock))

	c.HandleInput(core.ActionJump)
	c.Tick(frame)
	clock.Advance(500 * time.Millisecond)
	c.HandleInput(core.ActionJump)
	c.Tick(frame)

	if c.player.Pose != PoseJumping {
		t.Errorf("Pose = %v, want jumping", c.player.Pose)
	}
	if c.session.Stats.Flips != 0 {
		t.Errorf("Flips = %d, want 0", c.session.Stats.Flips)
	}
}

func TestFlipDuringJumpAscent(t *testing.T) {
	clock := newFakeClock()
	c := newPlaying(t, quietConfig(), WithClock(clock))

	c.HandleInput(core.ActionJump)
	c.Tick(frame)
	if c.player.Pose != PoseJumping {
		t.Fatalf("Pose = %v, want jumping", c.player.Pose)
	}
	clock.Advance(200 * time.Millisecond)
	c.HandleInput(core.ActionJump)
	c.Tick(frame)
	if c.player.Pose != PoseFlipping {
		t.Errorf("Pose = %v, want flipping", c.player.Pose)
	}
}

func TestComboDecays(t *testing.T) {
	clock := newFakeClock()
	c := newPlaying(t, quietConfig(), WithClock(clock))
	c.HandleInput(core.ActionJump)
	c.HandleInput(core.ActionJump)
	c.Tick(frame)
	if c.session.Combo.Count != 2 {
		t.Fatalf("Combo = %d, want 2", c.session.Combo.Count)
	}
	ticks(c, 61) // > 3s
	if c.session.Combo.Count != 1 {
		t.Errorf("Combo after timeout = %d, want 1", c.session.Combo.Count)
	}
}

func TestLaneChangeClamped(t *testing.T) {
	sink := &recordSink{}
	c := newPlaying(t, quietConfig(), WithFeedback(sink))

	c.HandleInput(core.ActionLeft)
	c.Tick(frame)
	c.HandleInput(core.ActionLeft)
	c.Tick(frame)

	if c.player.Lane != 0 {
		t.Errorf("Lane = %d, want 0", c.player.Lane)
	}
	if n := sink.count(FeedbackLane); n != 1 {
		t.Errorf("lane feedback = %d, want 1", n)
	}

	// Latest direction wins inside one frame.
	c.HandleInput(core.ActionLeft)
	c.HandleInput(core.ActionRight)
	c.Tick(frame)
	if c.player.Lane != 1 {
		t.Errorf("Lane = %d, want 1", c.player.Lane)
	}
}

func TestPauseStraddle(t *testing.T) {
	c := newPlaying(t, config.DefaultRunnerConfig())
	ticks(c, 40)

	before := c.session
	entities := c.registry.Len()

	if err := c.PauseSession(); err != nil {
		t.Fatal(err)
	}
	ticks(c, 20)
	c.Tick(3.0)
	if err := c.ResumeSession(); err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(before, c.session) {
		t.Errorf("session changed while paused:\n got %+v\nwant %+v", c.session, before)
	}
	if c.registry.Len() != entities {
		t.Errorf("registry changed while paused: %d -> %d", entities, c.registry.Len())
	}
}

func TestStallAutoPauses(t *testing.T) {
	c := newPlaying(t, quietConfig())
	ticks(c, 5)
	before := c.session

	snap := c.Tick(2.0)
	if snap.Status != StatusPaused {
		t.Fatalf("Status = %v, want paused", snap.Status)
	}
	if !reflect.DeepEqual(before, c.session) {
		t.Error("stalled frame advanced the session")
	}

	c.Background() // no-op while paused
	if c.Status() != StatusPaused {
		t.Errorf("Status = %v", c.Status())
	}
	c.HandleInput(core.ActionPause)
	if c.Status() != StatusPlaying {
		t.Errorf("pause toggle: Status = %v, want playing", c.Status())
	}
	c.Background()
	if c.Status() != StatusPaused {
		t.Errorf("Background: Status = %v, want paused", c.Status())
	}
}

func TestFrameDeltaClamped(t *testing.T) {
	c := newPlaying(t, quietConfig())
	c.Tick(0.4) // below the stall threshold, above the frame cap

	want := c.session.Speed * c.cfg.Physics.MaxFrameDelta * c.cfg.Physics.DistanceFactor
	if math.Abs(c.session.Distance-want) > 1e-9 {
		t.Errorf("Distance = %v, want %v", c.session.Distance, want)
	}
}

func TestResetIsolation(t *testing.T) {
	store := &memStore{}
	c := newPlaying(t, quietConfig(), WithPersistence(store))
	c.session.Lives = 1
	c.session.Powerups[PowerupSpeedBoost] = 100
	c.DebugSpawn("shield", 0)
	c.DebugSpawn("car", 2)
	c.HandleInput(core.ActionRight)

	tickUntil(t, c, 300, func() bool { return c.Status() == StatusGameOver })
	if c.session.Lives != 0 {
		t.Errorf("Lives = %d, want 0", c.session.Lives)
	}
	if c.registry.Len() == 0 || c.player.Lane != 2 {
		t.Fatalf("expected a dirty track before restart")
	}

	epoch := c.Snapshot().Epoch
	if err := c.StartSession(); err != nil {
		t.Fatal(err)
	}
	snap := c.Snapshot()

	if len(snap.Entities) != 0 || c.registry.Len() != 0 {
		t.Errorf("registry not empty: %d entities", c.registry.Len())
	}
	if snap.Lane != 1 || snap.Pose != PoseGrounded || snap.Shield {
		t.Errorf("player not reset: lane=%d pose=%v shield=%v", snap.Lane, snap.Pose, snap.Shield)
	}
	if snap.Powerups != (Powerups{}) {
		t.Errorf("power-ups leaked: %v", snap.Powerups)
	}
	if snap.Lives != 3 || snap.Score != 0 || snap.Distance != 0 {
		t.Errorf("session not reset: %+v", snap)
	}
	if snap.Epoch != epoch+1 {
		t.Errorf("Epoch = %d, want %d", snap.Epoch, epoch+1)
	}
	if len(store.summaries) != 1 {
		t.Errorf("summaries saved = %d, want 1", len(store.summaries))
	}
}

func TestGameOverSummary(t *testing.T) {
	store := &memStore{best: 10}
	sink := &recordSink{}
	c := newPlaying(t, quietConfig(), WithPersistence(store), WithFeedback(sink))
	if c.BestScore() != 10 {
		t.Errorf("BestScore = %d, want 10", c.BestScore())
	}

	c.session.Lives = 1
	ticks(c, 100) // about 15 points
	c.DebugSpawn("police", 1)
	tickUntil(t, c, 200, func() bool { return c.Status() == StatusGameOver })

	sum, err := c.EndSession()
	if err != nil {
		t.Fatalf("EndSession after game over: %v", err)
	}
	if sum.Cause != "police" {
		t.Errorf("Cause = %q, want police", sum.Cause)
	}
	if !sum.NewRecord || c.BestScore() != sum.Score {
		t.Errorf("NewRecord=%v best=%d score=%d", sum.NewRecord, c.BestScore(), sum.Score)
	}
	if len(store.summaries) != 1 {
		t.Fatalf("summaries saved = %d, want 1", len(store.summaries))
	}
	if !reflect.DeepEqual(store.summaries[0], sum) {
		t.Errorf("saved summary differs from returned one")
	}
	if sink.count(FeedbackGameOver) != 1 {
		t.Errorf("gameover feedback = %d, want 1", sink.count(FeedbackGameOver))
	}

	// Ending again does not save twice.
	if _, err := c.EndSession(); err != nil {
		t.Fatal(err)
	}
	if len(store.summaries) != 1 {
		t.Errorf("summary saved twice")
	}
}

func TestEndSessionWhilePlaying(t *testing.T) {
	c := newPlaying(t, quietConfig())
	ticks(c, 20)
	sum, err := c.EndSession()
	if err != nil {
		t.Fatal(err)
	}
	if sum.Cause != CauseEnded {
		t.Errorf("Cause = %q, want %q", sum.Cause, CauseEnded)
	}
	if math.Abs(sum.Duration-1.0) > 1e-9 {
		t.Errorf("Duration = %v, want 1", sum.Duration)
	}
	if c.Status() != StatusGameOver {
		t.Errorf("Status = %v", c.Status())
	}
	if err := c.ExitToMenu(); err != nil {
		t.Fatal(err)
	}
	if c.Status() != StatusMenu {
		t.Errorf("Status = %v, want menu", c.Status())
	}
}

func TestInvalidTransitions(t *testing.T) {
	c, err := New(quietConfig())
	if err != nil {
		t.Fatal(err)
	}
	mustInvalid(t, c.StartSession())
	mustInvalid(t, c.PauseSession())

	c.MarkReady()
	mustInvalid(t, c.PauseSession())
	mustInvalid(t, c.ResumeSession())
	mustInvalid(t, c.ExitToMenu())
	_, err = c.EndSession()
	mustInvalid(t, err)
	mustInvalid(t, c.DebugSpawn("police", 1))

	if err := c.StartSession(); err != nil {
		t.Fatal(err)
	}
	mustInvalid(t, c.StartSession())
	mustInvalid(t, c.ResumeSession())
	if c.Status() != StatusPlaying {
		t.Errorf("Status = %v, want playing", c.Status())
	}
}

func TestHandleInputTag(t *testing.T) {
	c := newPlaying(t, quietConfig())

	before := c.Snapshot()
	err := c.HandleInputTag("moonwalk")
	if !errors.Is(err, ErrUnknownAction) {
		t.Errorf("err = %v, want ErrUnknownAction", err)
	}
	c.Tick(0)
	if !reflect.DeepEqual(before, c.Snapshot()) {
		t.Error("unknown tag changed state")
	}

	if err := c.HandleInputTag("Right"); err != nil {
		t.Fatal(err)
	}
	c.Tick(frame)
	if c.player.Lane != 2 {
		t.Errorf("Lane = %d, want 2", c.player.Lane)
	}
	if err := c.HandleInputTag("pause"); err != nil {
		t.Fatal(err)
	}
	if c.Status() != StatusPaused {
		t.Errorf("Status = %v, want paused", c.Status())
	}
}

func TestDebugSpawnUnknown(t *testing.T) {
	c := newPlaying(t, quietConfig())
	if err := c.DebugSpawn("piano", 1); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("err = %v, want ErrUnknownEntity", err)
	}
}

type panicSink struct{}

func (panicSink) Emit(Feedback) error { panic("speaker on fire") }

func TestCollaboratorFailuresAreIsolated(t *testing.T) {
	failing := PublisherFunc(func(Snapshot) error { return errors.New("display gone") })
	store := &memStore{loadErr: errors.New("disk gone")}
	c := newPlaying(t, quietConfig(),
		WithFeedback(panicSink{}),
		WithPublisher(failing),
		WithPersistence(store),
	)

	c.HandleInput(core.ActionJump)
	c.DebugSpawn("police", 1)
	tickUntil(t, c, 200, noObstacles(c))

	if c.session.Lives != 2 {
		t.Errorf("Lives = %d, want 2", c.session.Lives)
	}
	if c.BestScore() != 0 {
		t.Errorf("BestScore = %d, want 0", c.BestScore())
	}
}

func TestFeedbackCarriesEpoch(t *testing.T) {
	sink := &recordSink{}
	c := newPlaying(t, quietConfig(), WithFeedback(sink))
	c.HandleInput(core.ActionSlide)
	c.Tick(frame)
	if err := c.PauseSession(); err != nil {
		t.Fatal(err)
	}
	if err := c.StartSession(); err != nil {
		t.Fatal(err)
	}
	c.HandleInput(core.ActionSlide)
	c.Tick(frame)

	if len(sink.events) != 2 {
		t.Fatalf("events = %v", sink.events)
	}
	if sink.events[0].Epoch != 1 || sink.events[1].Epoch != 2 {
		t.Errorf("epochs = %d, %d, want 1, 2", sink.events[0].Epoch, sink.events[1].Epoch)
	}
}

func TestPublisherSeesEveryTick(t *testing.T) {
	var got []Snapshot
	pub := PublisherFunc(func(s Snapshot) error {
		got = append(got, s)
		return nil
	})
	c := newPlaying(t, quietConfig(), WithPublisher(pub))
	ticks(c, 3)
	if len(got) != 3 {
		t.Fatalf("published %d snapshots, want 3", len(got))
	}
	if got[2].Distance <= got[0].Distance {
		t.Errorf("distance did not grow: %v -> %v", got[0].Distance, got[2].Distance)
	}
}

func TestChallengeSession(t *testing.T) {
	sink := &recordSink{}
	c, err := New(quietConfig(), WithSeed(1), WithFeedback(sink))
	if err != nil {
		t.Fatal(err)
	}
	c.MarkReady()

	ch, ok := ChallengeByID("karlin-survival")
	if !ok {
		t.Fatal("challenge missing")
	}
	if err := c.StartChallenge(ch); err != nil {
		t.Fatal(err)
	}
	tickUntil(t, c, 300, func() bool { return c.session.Challenge.Completed })

	if sink.count(FeedbackChallenge) != 1 {
		t.Errorf("challenge feedback = %d, want 1", sink.count(FeedbackChallenge))
	}
	snap := c.Snapshot()
	if snap.Challenge == nil || !snap.Challenge.Completed {
		t.Errorf("snapshot challenge = %+v", snap.Challenge)
	}

	sum, err := c.EndSession()
	if err != nil {
		t.Fatal(err)
	}
	if sum.Challenge == nil || !sum.Challenge.Completed || sum.Challenge.ID != "karlin-survival" {
		t.Errorf("summary challenge = %+v", sum.Challenge)
	}

	if err := c.StartChallenge(Challenge{Kind: "juggle", Target: 1}); !errors.Is(err, ErrUnknownChallenge) {
		t.Errorf("err = %v, want ErrUnknownChallenge", err)
	}
}

func TestDeterminism(t *testing.T) {
	run := func() Snapshot {
		c := newPlaying(t, config.DefaultRunnerConfig(), WithSeed(99))
		for i := 0; i < 400; i++ {
			if i%37 == 0 {
				c.HandleInput(core.ActionLeft)
			}
			if i%53 == 0 {
				c.HandleInput(core.ActionSlide)
			}
			c.Tick(frame)
		}
		return c.Snapshot()
	}
	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs produced different snapshots")
	}
}

func TestRandomPlayKeepsStateConsistent(t *testing.T) {
	clock := newFakeClock()
	rng := rand.New(rand.NewSource(7))
	c := newPlaying(t, config.DefaultRunnerConfig(), WithSeed(7), WithClock(clock))
	actions := []core.Action{core.ActionLeft, core.ActionRight, core.ActionJump, core.ActionSlide}

	var epoch uint64
	var speed, distance float64
	var score int
	for i := 0; i < 5000; i++ {
		if rng.Intn(4) == 0 {
			c.HandleInput(actions[rng.Intn(len(actions))])
		}
		clock.Advance(50 * time.Millisecond)
		snap := c.Tick(frame)

		if snap.Lane < 0 || snap.Lane >= LaneCount {
			t.Fatalf("tick %d: lane %d out of range", i, snap.Lane)
		}
		if snap.Lives < 0 {
			t.Fatalf("tick %d: lives %d", i, snap.Lives)
		}
		if snap.Speed > c.cfg.Physics.MaxSpeed {
			t.Fatalf("tick %d: speed %v above cap", i, snap.Speed)
		}
		if snap.Epoch == epoch {
			if snap.Speed < speed || snap.Distance < distance || snap.Score < score {
				t.Fatalf("tick %d: values decreased", i)
			}
		}
		epoch, speed, distance, score = snap.Epoch, snap.Speed, snap.Distance, snap.Score

		if snap.Status == StatusGameOver {
			if err := c.StartSession(); err != nil {
				t.Fatal(err)
			}
		}
	}
}
