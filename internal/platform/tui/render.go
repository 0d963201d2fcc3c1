package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fofr-runner/internal/config"
	"github.com/vovakirdan/fofr-runner/internal/core"
	"github.com/vovakirdan/fofr-runner/internal/games/runner"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// Sprite glyphs.
const (
	PlayerChar   = '@'
	LaneChar     = '┊'
	ParticleChar = '·'
)

type sprite struct {
	glyph rune
	color core.Color
}

var obstacleSprites = map[string]sprite{
	"police":  {'P', core.ColorBlue},
	"car":     {'C', core.ColorRed},
	"barrier": {'#', core.ColorOrange},
	"pigeon":  {'v', core.ColorGray},
	"syringe": {'!', core.ColorCyan},
	"bag":     {'b', core.ColorYellow},
	"card":    {'=', core.ColorMagenta},
	"straw":   {'~', core.ColorGreen},
}

var powerupSprites = map[string]sprite{
	"speed-boost":     {'»', core.ColorYellow},
	"invulnerability": {'*', core.ColorMagenta},
	"extra-life":      {'♥', core.ColorRed},
	"shield":          {'O', core.ColorCyan},
}

// trackView projects track pixels onto screen cells. Row 0 is the HUD;
// the track occupies rows 1..rows.
type trackView struct {
	left, cols int
	rows       int
	width      float64
	top, span  float64
}

func newTrackView(dst *core.Screen, cfg config.RunnerConfig) trackView {
	cols := min(dst.Width(), 3*dst.Height()) // keep lanes from stretching on wide terminals
	rows := max(dst.Height()-2, 1)
	bottom := cfg.Track.PlayerY + cfg.Player.Height + cfg.Player.Height/2
	return trackView{
		left:  (dst.Width() - cols) / 2,
		cols:  cols,
		rows:  rows,
		width: cfg.Track.Width,
		top:   0,
		span:  bottom,
	}
}

func (v trackView) col(x float64) int {
	return v.left + int(math.Floor(x/v.width*float64(v.cols)))
}

func (v trackView) row(y float64) int {
	return 1 + int(math.Floor((y-v.top)/v.span*float64(v.rows)))
}

// fill paints the cells covered by a track box, at least one cell.
func (v trackView) fill(dst *core.Screen, x, y, w, h float64, r rune, c core.Color) {
	x0, x1 := v.col(x), v.col(x+w)
	y0, y1 := v.row(y), v.row(y+h)
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}
	for cy := max(y0, 1); cy < min(y1, v.rows+1); cy++ {
		for cx := x0; cx < x1; cx++ {
			dst.SetColored(cx, cy, r, c)
		}
	}
}

// DrawSnapshot renders the track, entities, player and HUD of a snapshot.
func DrawSnapshot(dst *core.Screen, snap runner.Snapshot, cfg config.RunnerConfig) {
	dst.Clear()
	v := newTrackView(dst, cfg)

	// Lane dividers halfway between lane edges
	lanes := cfg.Track.Lanes
	for i := 1; i < len(lanes); i++ {
		mid := (lanes[i-1] + cfg.Player.Width + lanes[i]) / 2
		dst.DrawVLine(v.col(mid), 1, v.rows, LaneChar, core.ColorGray)
	}
	dst.DrawVLine(v.left, 1, v.rows, '│', core.ColorGray)
	dst.DrawVLine(v.left+v.cols-1, 1, v.rows, '│', core.ColorGray)

	for _, e := range snap.Entities {
		switch e.Kind {
		case runner.KindObstacle:
			sp := obstacleSprites[e.Type]
			v.fill(dst, e.X, e.Y, e.W, e.H, sp.glyph, sp.color)
		case runner.KindPowerup:
			sp := powerupSprites[e.Type]
			v.fill(dst, e.X, e.Y, e.W, e.H, sp.glyph, sp.color)
		}
	}
	for _, e := range snap.Entities {
		if e.Kind == runner.KindParticle {
			dst.SetColored(v.col(e.X), v.row(e.Y), ParticleChar, e.Color)
		}
	}

	drawPlayer(dst, v, snap, cfg)
	drawHUD(dst, snap)
}

func drawPlayer(dst *core.Screen, v trackView, snap runner.Snapshot, cfg config.RunnerConfig) {
	if snap.Lane < 0 || snap.Lane >= len(cfg.Track.Lanes) {
		return
	}
	h := cfg.Player.Height
	if snap.Pose == runner.PoseSliding {
		h = cfg.Player.SlideHeight
	}
	y := cfg.Track.PlayerY + cfg.Player.Height - h - snap.Offset

	color := core.ColorWhite
	switch {
	case snap.Powerups.Active(runner.PowerupInvulnerability):
		color = core.ColorMagenta
	case snap.Shield:
		color = core.ColorCyan
	case snap.Powerups.Active(runner.PowerupSpeedBoost):
		color = core.ColorYellow
	}

	glyph := PlayerChar
	switch snap.Pose {
	case runner.PoseSliding:
		glyph = '_'
	case runner.PoseFlipping:
		glyph = '%'
	}
	v.fill(dst, cfg.Track.Lanes[snap.Lane], y, cfg.Player.Width, h, glyph, color)
}

func drawHUD(dst *core.Screen, snap runner.Snapshot) {
	left := fmt.Sprintf(" Score: %d  Dist: %.0fm  Spd: %.1f ", snap.Score, snap.Distance, snap.Speed)
	dst.DrawText(0, 0, left)

	lives := fmt.Sprintf(" %s ", strings.Repeat("♥", snap.Lives))
	dst.DrawTextColored(dst.Width()-len([]rune(lives)), 0, lives, core.ColorRed)

	var status []string
	if snap.Combo > 1 {
		status = append(status, fmt.Sprintf("x%d combo", snap.Combo))
	}
	if snap.Shield {
		status = append(status, "shield")
	}
	for t := runner.PowerupType(0); t < runner.PowerupCount; t++ {
		if t.Timed() && snap.Powerups.Active(t) {
			status = append(status, fmt.Sprintf("%s %.1fs", t, snap.Powerups[t]))
		}
	}
	if c := snap.Challenge; c != nil {
		mark := ""
		if c.Completed {
			mark = " ✓"
		}
		status = append(status, fmt.Sprintf("%s %.0f/%.0f%s", c.Challenge.Name, c.Value, c.Challenge.Target, mark))
	}
	status = append(status, fmt.Sprintf("best %d", snap.BestScore))
	dst.DrawText(1, dst.Height()-1, strings.Join(status, "  "))
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title string, lines ...string) {
	width := len([]rune(title))
	for _, l := range lines {
		width = max(width, len([]rune(l)))
	}

	boxW := width + 4
	boxH := len(lines) + 4
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawTextColored(boxX+(boxW-len([]rune(title)))/2, boxY+1, title, core.ColorYellow)
	for i, l := range lines {
		dst.DrawText(boxX+(boxW-len([]rune(l)))/2, boxY+3+i, l)
	}
}
