package tui

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fofr-runner/internal/config"
	"github.com/vovakirdan/fofr-runner/internal/core"
	"github.com/vovakirdan/fofr-runner/internal/games/runner"
	"github.com/vovakirdan/fofr-runner/internal/storage"
)

// Options configure a Model.
type Options struct {
	Runtime   core.RuntimeConfig
	Runner    config.RunnerConfig
	Store     *storage.Store   // nil runs without persistence
	Player    string           // leaderboard name, empty uses the store's
	Publisher runner.Publisher // extra snapshot consumer, e.g. the HUD feed
	Logger    *log.Logger
	Bell      io.Writer // target for the terminal bell

	// Debug enables the number-row spawn keys.
	Debug bool
	// SharedProfile keeps settings changes in memory so one SSH user
	// cannot flip another user's sound.
	SharedProfile bool
}

// debugKeys force spawns in the player's lane.
var debugKeys = map[string]string{
	"1": "police", "2": "car", "3": "barrier", "4": "pigeon",
	"5": "syringe", "6": "bag", "7": "card", "8": "straw",
	"9": "speed-boost", "0": "invulnerability", "-": "extra-life", "=": "shield",
}

// Model is the Bubble Tea model driving one runner controller.
type Model struct {
	ctrl     *runner.Controller
	cfg      config.RunnerConfig
	runtime  core.RuntimeConfig
	store    *storage.Store
	screen   *core.Screen
	keys     *KeyMapper
	toasts   *Toasts
	menu     *Menu
	scores   *ScoreboardModel // non-nil while the scoreboard is open
	settings storage.Settings
	daily    runner.Challenge
	rng      *rand.Rand
	logger   *log.Logger
	lastTick time.Time
	debug    bool
	shared   bool
	quitting bool
}

// NewModel creates a model and its controller.
func NewModel(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	rt := opts.Runtime
	if rt.TickRate <= 0 {
		rt.TickRate = 60
	}
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	settings := storage.DefaultProfile().Settings
	if opts.Store != nil {
		p, err := opts.Store.LoadProfile()
		if err != nil {
			logger.Warn("profile unreadable, using defaults", "error", err)
		}
		settings = p.Settings
	}
	toasts := NewToasts(settings.Sound, opts.Bell)

	ctrlOpts := []runner.Option{
		runner.WithSeed(rt.Seed),
		runner.WithFeedback(toasts),
		runner.WithLogger(logger),
	}
	if opts.Store != nil {
		name := opts.Player
		if name == "" {
			name = opts.Store.Player()
		}
		ctrlOpts = append(ctrlOpts, runner.WithPersistence(opts.Store.For(name)))
	}
	if opts.Publisher != nil {
		ctrlOpts = append(ctrlOpts, runner.WithPublisher(opts.Publisher))
	}

	ctrl, err := runner.New(opts.Runner, ctrlOpts...)
	if err != nil {
		return Model{}, fmt.Errorf("tui: %w", err)
	}

	return Model{
		ctrl:     ctrl,
		cfg:      ctrl.Config(),
		runtime:  rt,
		store:    opts.Store,
		screen:   core.NewScreen(rt.ScreenW, rt.ScreenH),
		keys:     NewKeyMapper(settings.AltControls),
		toasts:   toasts,
		menu:     &Menu{},
		settings: settings,
		daily:    runner.DailyChallenge(time.Now()),
		rng:      rand.New(rand.NewSource(rt.Seed)),
		logger:   logger,
		debug:    opts.Debug,
		shared:   opts.SharedProfile,
	}, nil
}

// Controller exposes the underlying simulation.
func (m Model) Controller() *runner.Controller {
	return m.ctrl
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		if m.scores != nil {
			next, _ := m.scores.Update(msg)
			sb := next.(ScoreboardModel)
			m.scores = &sb
		}
		return m, nil

	case tea.BlurMsg:
		// The terminal lost focus: pause instead of running unattended.
		m.ctrl.Background()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleTick advances the simulation by the wall time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	elapsed := 1 / float64(m.runtime.TickRate)
	if !m.lastTick.IsZero() {
		elapsed = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now

	snap := m.ctrl.Tick(elapsed)
	m.toasts.Advance(snap.Epoch, elapsed)
	if snap.Status == runner.StatusPlaying && m.rng.Float64() < phraseChance {
		m.toasts.Say(snap.Epoch, Phrase(m.settings.Spice, m.rng))
	}

	return m, tickCmd(m.runtime)
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.scores != nil {
		return m.updateScores(msg)
	}
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	status := m.ctrl.Status()
	if status == runner.StatusMenu {
		return m.handleMenuKey(msg)
	}

	if m.debug && status == runner.StatusPlaying {
		if name, ok := debugKeys[msg.String()]; ok {
			if err := m.ctrl.DebugSpawn(name, -1); err != nil {
				m.logger.Debug("debug spawn failed", "name", name, "error", err)
			}
			return m, nil
		}
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quit()
		return m, tea.Quit
	}
	m.ctrl.HandleInput(action)
	return m, nil
}

func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.menu.Items(m.settings, m.daily)

	switch m.keys.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quit()
		return m, tea.Quit
	case MenuActionUp:
		m.menu.Move(-1, len(items))
	case MenuActionDown:
		m.menu.Move(1, len(items))
	case MenuActionScoreboard:
		m.openScores()
	case MenuActionSelect:
		return m.selectMenu(items[m.menu.Cursor()].ID)
	}
	return m, nil
}

func (m Model) selectMenu(id MenuItemID) (tea.Model, tea.Cmd) {
	switch id {
	case MenuPlay:
		if err := m.ctrl.StartSession(); err != nil {
			m.logger.Warn("cannot start session", "error", err)
		}
	case MenuChallenge:
		if err := m.ctrl.StartChallenge(m.daily); err != nil {
			m.logger.Warn("cannot start challenge", "id", m.daily.ID, "error", err)
		}
	case MenuScores:
		m.openScores()
	case MenuSound:
		m.settings.Sound = !m.settings.Sound
		m.toasts.SetSound(m.settings.Sound)
		m.saveSettings()
	case MenuControls:
		m.settings.AltControls = !m.settings.AltControls
		m.keys.SetAlt(m.settings.AltControls)
		m.saveSettings()
	case MenuQuit:
		m.quit()
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) openScores() {
	sb := NewScoreboardModel(m.store, m.screen.Width(), m.screen.Height())
	m.scores = &sb
}

func (m Model) updateScores(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	sb := next.(ScoreboardModel)
	switch {
	case sb.IsQuitting():
		m.quit()
		return m, tea.Quit
	case sb.IsGoingBack():
		// The scoreboard asks to quit its own program; stay in ours.
		m.scores = nil
		return m, nil
	}
	m.scores = &sb
	return m, cmd
}

func (m *Model) saveSettings() {
	if m.store == nil || m.shared {
		return
	}
	settings := m.settings
	if err := m.store.UpdateProfile(func(p *storage.Profile) { p.Settings = settings }); err != nil {
		m.logger.Warn("cannot save settings", "error", err)
	}
}

// quit abandons a live session so the run is still recorded.
func (m *Model) quit() {
	switch m.ctrl.Status() {
	case runner.StatusPlaying, runner.StatusPaused:
		if err := m.ctrl.ExitToMenu(); err != nil {
			m.logger.Debug("exit on quit", "error", err)
		}
	}
	m.quitting = true
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".fofr", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("cannot create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("fofr_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("cannot save screenshot", "error", err)
	}
}

// draw renders the non-menu statuses into the screen buffer.
func (m Model) draw() {
	snap := m.ctrl.Snapshot()
	switch snap.Status {
	case runner.StatusLoading, runner.StatusMenu:
		drawLoading(m.screen, snap.Loading)
	default:
		DrawSnapshot(m.screen, snap, m.cfg)
		drawToasts(m.screen, m.toasts.Active())
		switch snap.Status {
		case runner.StatusPaused:
			drawCenteredMessage(m.screen, "PAUSED", "P: resume  |  B: menu")
		case runner.StatusGameOver:
			if sum, ok := m.ctrl.LastSummary(); ok {
				drawCenteredMessage(m.screen, "GAME OVER", gameOverLines(sum)...)
			}
		}
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scores != nil {
		return m.scores.View()
	}
	if m.ctrl.Status() == runner.StatusMenu {
		return m.menu.View(m.menu.Items(m.settings, m.daily), m.daily, m.ctrl.BestScore(), m.screen.Width())
	}

	m.draw()
	return RenderScreen(m.screen)
}

func drawLoading(dst *core.Screen, progress float64) {
	dst.Clear()
	const barW = 30
	filled := int(core.ClampF(progress, 0, 1) * barW)
	bar := "[" + strings.Repeat("#", filled) + strings.Repeat(".", barW-filled) + "]"

	mid := dst.Height() / 2
	dst.DrawTextCentered(mid-2, "F O F R   P E D R O")
	dst.DrawTextCentered(mid, bar)
	dst.DrawTextCentered(mid+2, "Enter to skip")
}

func gameOverLines(sum runner.Summary) []string {
	lines := []string{
		fmt.Sprintf("Score: %d   Distance: %.0fm", sum.Score, sum.Distance),
		fmt.Sprintf("Top speed: %.1f   Flips: %d", sum.TopSpeed, sum.Flips),
	}
	if sum.Cause != "" && sum.Cause != runner.CauseEnded {
		lines = append(lines, "Taken out by: "+sum.Cause)
	}
	if sum.NewRecord {
		lines = append(lines, "NEW RECORD!")
	}
	if c := sum.Challenge; c != nil {
		result := "failed"
		if c.Completed {
			result = "completed"
		}
		lines = append(lines, fmt.Sprintf("Challenge %s: %s", c.ID, result))
	}
	if len(sum.Achievements) > 0 {
		lines = append(lines, "Unlocked: "+strings.Join(sum.Achievements, ", "))
	}
	return append(lines, "", "R: retry  |  B: menu  |  Q: quit")
}

// Run starts the Bubble Tea program with a fresh model.
func Run(opts Options) error {
	if opts.Bell == nil {
		opts.Bell = os.Stdout
	}
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
		tea.WithReportFocus(),
	)

	_, err = p.Run()
	return err
}
