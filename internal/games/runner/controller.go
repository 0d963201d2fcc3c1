package runner

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fofr-runner/internal/config"
	"github.com/vovakirdan/fofr-runner/internal/core"
)

// ErrUnknownAction is wrapped by HandleInputTag for tags that name no action.
var ErrUnknownAction = core.ErrUnknownAction

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the time source used for double-tap detection.
func WithClock(clock Clock) Option {
	return func(c *Controller) { c.clock = clock }
}

// WithFeedback sets the sink for sound and haptic cues.
func WithFeedback(sink FeedbackSink) Option {
	return func(c *Controller) { c.sink = sink }
}

// WithPersistence sets the store consulted at session boundaries.
func WithPersistence(store Persistence) Option {
	return func(c *Controller) { c.store = store }
}

// WithPublisher sets the receiver of per-tick snapshots.
func WithPublisher(pub Publisher) Option {
	return func(c *Controller) { c.pub = pub }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSeed makes spawning deterministic. Session n draws from seed+n.
func WithSeed(seed int64) Option {
	return func(c *Controller) {
		c.seed = seed
		c.seeded = true
	}
}

// pendingInput is the coalesced input between two ticks.
type pendingInput struct {
	shift int // -1 left, +1 right, latest wins
	jump  bool
	slide bool
	flip  bool
}

// Controller owns the whole simulation and its state machine.
// It is not safe for concurrent use; all calls must come from the
// goroutine that drives Tick.
type Controller struct {
	cfg    config.RunnerConfig
	clock  Clock
	sink   FeedbackSink
	store  Persistence
	pub    Publisher
	logger *log.Logger
	seed   int64
	seeded bool

	difficulty *config.DifficultyManager
	director   *Director
	registry   *Registry
	resolver   *Resolver

	status    Status
	loading   float64
	epoch     uint64
	player    Player
	session   Session
	input     pendingInput
	lastJump  time.Time
	best      int
	finalized bool
	summary   Summary
}

// New creates a controller in the Loading state.
func New(cfg config.RunnerConfig, opts ...Option) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("runner: %w", err)
	}
	c := &Controller{
		cfg:       cfg,
		clock:     SystemClock{},
		logger:    log.New(io.Discard),
		status:    StatusLoading,
		finalized: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if !c.seeded {
		c.seed = time.Now().UnixNano()
	}

	c.difficulty = config.NewDifficultyManager(c.cfg.Difficulty)
	director, err := NewDirector(&c.cfg, c.difficulty, c.seed)
	if err != nil {
		return nil, err
	}
	c.director = director
	c.registry = NewRegistry(c.cfg.Track.CullY, c.cfg.Particles.Gravity)
	c.resolver = NewResolver(&c.cfg, director.Rand(), c.emit)
	c.player = NewPlayer(c.cfg.Player)
	c.session = newSession(c.cfg.Session.Lives, c.cfg.Physics.BaseSpeed)
	c.loadBest()
	return c, nil
}

// Config returns the configuration the controller runs with.
func (c *Controller) Config() config.RunnerConfig {
	return c.cfg
}

// Status returns the current state.
func (c *Controller) Status() Status {
	return c.status
}

// BestScore returns the best score known to the controller.
func (c *Controller) BestScore() int {
	return c.best
}

// LastSummary returns the summary of the most recently finished session.
func (c *Controller) LastSummary() (Summary, bool) {
	return c.summary, c.finalized && c.epoch > 0
}

// Tick advances the simulation by elapsed wall seconds and publishes the
// resulting snapshot. Outside Playing only the loading timer runs.
func (c *Controller) Tick(elapsed float64) Snapshot {
	if elapsed < 0 || math.IsNaN(elapsed) {
		elapsed = 0
	}

	switch c.status {
	case StatusLoading:
		c.loading += elapsed
		if c.loading >= c.cfg.Session.LoadingDelay {
			c.MarkReady()
		}
	case StatusPlaying:
		if elapsed > c.cfg.Physics.StallThreshold {
			// Returning from the background: pause instead of fast-forwarding.
			c.logger.Info("frame stall, pausing", "elapsed", elapsed)
			c.pause()
			break
		}
		c.step(math.Min(elapsed, c.cfg.Physics.MaxFrameDelta))
	}

	snap := c.Snapshot()
	if c.pub != nil {
		guard(c.logger, "publish", func() error { return c.pub.Publish(snap) })
	}
	return snap
}

// step runs one simulation pass of dt seconds.
func (c *Controller) step(dt float64) {
	s := &c.session
	maxSpeed := c.cfg.Physics.MaxSpeed

	s.RaiseSpeed(c.difficulty.Advance(s.Speed, dt, maxSpeed), maxSpeed)
	c.director.Step(dt, s.Speed, s.Elapsed, c.registry)
	c.registry.Advance(dt)

	c.applyInput()
	c.player.Update(dt)

	c.resolver.Resolve(s, &c.player, c.registry)

	s.Combo.Decay(dt)
	s.DecayPowerups(dt)

	s.Accrue(dt, c.cfg.Physics.DistanceFactor, c.cfg.Physics.ScoreFactor)
	if s.Challenge != nil && s.Challenge.update(s) {
		c.logger.Info("challenge completed", "id", s.Challenge.Challenge.ID)
		c.emit(Feedback{Kind: FeedbackChallenge, Detail: s.Challenge.Challenge.ID})
	}

	if s.Lives == 0 {
		c.gameOver()
	}
}

func (c *Controller) applyInput() {
	in := c.input
	c.input = pendingInput{}

	if in.shift != 0 && c.player.Shift(in.shift) {
		c.emit(Feedback{Kind: FeedbackLane, Detail: strconv.Itoa(c.player.Lane)})
	}

	switch {
	case in.flip:
		if c.player.Flip() {
			s := &c.session
			bonus := c.cfg.Scoring.FlipBonus * s.Combo.Count
			s.AddScore(bonus)
			s.Combo.Bump(c.cfg.Scoring.ComboTimeout)
			s.Stats.Flips++
			c.emit(Feedback{Kind: FeedbackFlip, Detail: strconv.Itoa(bonus)})
		}
	case in.jump:
		if c.player.Jump() {
			c.emit(Feedback{Kind: FeedbackJump})
		}
	case in.slide:
		if c.player.Slide() {
			c.emit(Feedback{Kind: FeedbackSlide})
		}
	}
}

// HandleInput buffers a gameplay action for the next tick or applies a
// lifecycle action immediately.
func (c *Controller) HandleInput(a core.Action) {
	var err error
	switch a {
	case core.ActionLeft:
		if c.status == StatusPlaying {
			c.input.shift = -1
		}
	case core.ActionRight:
		if c.status == StatusPlaying {
			c.input.shift = 1
		}
	case core.ActionJump:
		if c.status == StatusPlaying {
			c.registerJump()
		}
	case core.ActionSlide:
		if c.status == StatusPlaying {
			c.input.slide = true
		}
	case core.ActionPause:
		if c.status == StatusPaused {
			err = c.ResumeSession()
		} else {
			err = c.PauseSession()
		}
	case core.ActionConfirm:
		if c.status == StatusLoading {
			c.MarkReady()
		} else {
			err = c.StartSession()
		}
	case core.ActionRestart:
		err = c.StartSession()
	case core.ActionBack:
		err = c.ExitToMenu()
	}
	if err != nil {
		c.logger.Debug("input ignored", "action", a, "status", c.status, "error", err)
	}
}

// registerJump turns the second Jump inside the double-tap window into a flip.
func (c *Controller) registerJump() {
	now := c.clock.Now()
	window := time.Duration(c.cfg.Player.DoubleTapWindow * float64(time.Second))
	if !c.lastJump.IsZero() && now.Sub(c.lastJump) <= window {
		c.input.flip = true
		c.input.jump = false
		c.lastJump = time.Time{}
		return
	}
	c.input.jump = true
	c.lastJump = now
}

// HandleInputTag parses tag and forwards it to HandleInput.
func (c *Controller) HandleInputTag(tag string) error {
	a, err := core.ParseAction(tag)
	if err != nil {
		c.logger.Debug("unknown input tag", "tag", tag)
		return fmt.Errorf("runner: %w", err)
	}
	c.HandleInput(a)
	return nil
}

// MarkReady ends loading early.
func (c *Controller) MarkReady() {
	if c.status != StatusLoading {
		return
	}
	c.status = StatusMenu
	c.logger.Debug("loading finished", "after", c.loading)
}

// StartSession resets everything and starts a new session from Menu,
// GameOver or Paused.
func (c *Controller) StartSession() error {
	return c.start(nil)
}

// StartChallenge starts a session that tracks ch.
func (c *Controller) StartChallenge(ch Challenge) error {
	if err := ch.validate(); err != nil {
		return err
	}
	return c.start(&ch)
}

func (c *Controller) start(ch *Challenge) error {
	switch c.status {
	case StatusMenu, StatusGameOver, StatusPaused:
	default:
		return fmt.Errorf("runner: start from %s: %w", c.status, ErrInvalidTransition)
	}
	if !c.finalized {
		c.finalize(CauseRestarted)
	}
	c.loadBest()

	c.epoch++
	c.director.Reset(c.seed + int64(c.epoch))
	c.registry.Reset()
	c.player.Reset()
	speed := c.difficulty.StartSpeed(c.cfg.Physics.BaseSpeed, c.cfg.Physics.MaxSpeed)
	c.session = newSession(c.cfg.Session.Lives, speed)
	if ch != nil {
		c.session.Challenge = &ChallengeProgress{Challenge: *ch}
	}
	c.input = pendingInput{}
	c.lastJump = time.Time{}
	c.finalized = false
	c.summary = Summary{}
	c.status = StatusPlaying

	c.logger.Info("session started", "epoch", c.epoch, "speed", speed, "lives", c.session.Lives)
	return nil
}

// PauseSession suspends a running session.
func (c *Controller) PauseSession() error {
	if c.status != StatusPlaying {
		return fmt.Errorf("runner: pause from %s: %w", c.status, ErrInvalidTransition)
	}
	c.pause()
	return nil
}

func (c *Controller) pause() {
	c.status = StatusPaused
	c.input = pendingInput{}
}

// ResumeSession continues a paused session.
func (c *Controller) ResumeSession() error {
	if c.status != StatusPaused {
		return fmt.Errorf("runner: resume from %s: %w", c.status, ErrInvalidTransition)
	}
	c.status = StatusPlaying
	return nil
}

// Background pauses a running session. It is a no-op in any other state.
func (c *Controller) Background() {
	if c.status == StatusPlaying {
		c.logger.Debug("backgrounded, pausing")
		c.pause()
	}
}

// EndSession finishes the current session and returns its summary.
// Called after game over it returns the summary already recorded.
func (c *Controller) EndSession() (Summary, error) {
	switch c.status {
	case StatusPlaying, StatusPaused:
		c.status = StatusGameOver
		c.finalize(CauseEnded)
		c.emit(Feedback{Kind: FeedbackGameOver, Detail: c.summary.Cause})
	case StatusGameOver:
	default:
		return Summary{}, fmt.Errorf("runner: end from %s: %w", c.status, ErrInvalidTransition)
	}
	return c.summary, nil
}

// ExitToMenu leaves the session. An unfinished session is recorded as abandoned.
func (c *Controller) ExitToMenu() error {
	switch c.status {
	case StatusPlaying, StatusPaused, StatusGameOver:
	default:
		return fmt.Errorf("runner: exit from %s: %w", c.status, ErrInvalidTransition)
	}
	if !c.finalized {
		c.finalize(CauseAbandoned)
	}
	c.input = pendingInput{}
	c.status = StatusMenu
	return nil
}

// DebugSpawn forces an obstacle or power-up named name into lane.
// A negative lane means the player's lane.
func (c *Controller) DebugSpawn(name string, lane int) error {
	if c.status != StatusPlaying {
		return fmt.Errorf("runner: debug spawn from %s: %w", c.status, ErrInvalidTransition)
	}
	if lane < 0 {
		lane = c.player.Lane
	}
	if t, err := ParseObstacle(name); err == nil {
		c.director.SpawnObstacle(t, lane, c.session.Speed, c.registry)
		return nil
	}
	t, err := ParsePowerup(name)
	if err != nil {
		return fmt.Errorf("runner: %w: %q", ErrUnknownEntity, name)
	}
	c.director.SpawnPowerup(t, lane, c.session.Speed, c.registry)
	return nil
}

func (c *Controller) gameOver() {
	c.status = StatusGameOver
	c.finalize(CauseEnded)
	c.emit(Feedback{Kind: FeedbackGameOver, Detail: c.summary.Cause})
}

// finalize records the session summary once per epoch.
func (c *Controller) finalize(cause string) {
	s := &c.session
	if s.Cause == "" {
		s.Cause = cause
	}
	sum := Summary{
		Epoch:    c.epoch,
		Score:    s.Score,
		Distance: s.Distance,
		TopSpeed: s.TopSpeed,
		Cause:    s.Cause,
		Duration: s.Elapsed,
		Flips:    s.Stats.Flips,
		Powerups: s.Stats.PowerupsCollected,
		Hits:     s.Stats.Hits,
		EndedAt:  c.clock.Now(),
	}
	if cp := s.Challenge; cp != nil {
		sum.Challenge = &ChallengeResult{ID: cp.Challenge.ID, Value: cp.Value, Completed: cp.Completed}
	}
	sum.Achievements = Achievements(sum, c.cfg.Physics.MaxSpeed)
	sum.NewRecord = sum.Score > c.best
	if sum.NewRecord {
		c.best = sum.Score
	}

	c.summary = sum
	c.finalized = true
	c.logger.Info("session finished", "epoch", sum.Epoch, "score", sum.Score,
		"distance", int(sum.Distance), "cause", sum.Cause, "record", sum.NewRecord)

	if c.store != nil {
		guard(c.logger, "save summary", func() error { return c.store.SaveSummary(sum) })
	}
}

func (c *Controller) loadBest() {
	if c.store == nil {
		return
	}
	// A failing store may still report a usable value.
	var best int
	guard(c.logger, "load best score", func() error {
		var err error
		best, err = c.store.LoadBestScore()
		return err
	})
	if best > c.best {
		c.best = best
	}
}

// emit stamps the epoch and forwards a cue to the sink.
func (c *Controller) emit(f Feedback) {
	if c.sink == nil {
		return
	}
	f.Epoch = c.epoch
	guard(c.logger, "feedback", func() error { return c.sink.Emit(f) })
}

// Snapshot returns the current state without advancing it.
func (c *Controller) Snapshot() Snapshot {
	s := &c.session
	snap := Snapshot{
		Epoch:      c.epoch,
		Status:     c.status,
		Score:      s.Score,
		Distance:   s.Distance,
		Speed:      s.Speed,
		TopSpeed:   s.TopSpeed,
		Lives:      s.Lives,
		Combo:      s.Combo.Count,
		ComboTimer: s.Combo.Timer,
		Powerups:   s.Powerups,
		Shield:     c.player.Shield,
		Lane:       c.player.Lane,
		Pose:       c.player.Pose,
		Offset:     c.player.Offset,
		BestScore:  c.best,
	}
	if c.status == StatusLoading && c.cfg.Session.LoadingDelay > 0 {
		snap.Loading = core.ClampF(c.loading/c.cfg.Session.LoadingDelay, 0, 1)
	}
	if s.Challenge != nil {
		cp := *s.Challenge
		snap.Challenge = &cp
	}

	reg := c.registry
	snap.Entities = make([]EntityView, 0, reg.Len())
	for _, list := range [][]Entity{reg.Obstacles(), reg.Powerups(), reg.Particles()} {
		for _, e := range list {
			snap.Entities = append(snap.Entities, viewOf(e))
		}
	}
	return snap
}
