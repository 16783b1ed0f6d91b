package storedash

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vovakirdan/store-dash/internal/core"
	"github.com/vovakirdan/store-dash/internal/games/storedash/sim"
)

// World units per terminal cell. Cells are roughly twice as tall as wide.
const (
	CellW = 8.0
	CellH = 16.0
)

// Visual characters for rendering
const (
	GroundChar   = '▀'
	ObstacleChar = '▓'
	PoliceChar   = '█'
	ChurchChar   = '▒'
	PlayerChar   = '@'
	StoreChar    = '░'
	EdgeChar     = '┃'
)

// view maps world coordinates to screen cells.
type view struct {
	camX   float64
	ground int // screen row of the ground line
	width  int
}

func (v view) col(x float64) int {
	return int(math.Floor((x - v.camX) / CellW))
}

func (v view) row(y float64) int {
	return v.ground - 1 - int(math.Floor(y/CellH))
}

// rect returns the cells covered by b. Every box covers at least one cell.
func (v view) rect(b core.Box) core.Rect {
	const eps = 1e-9
	x0, x1 := v.col(b.X), v.col(b.Right()-eps)
	top, bottom := v.row(b.Top()-eps), v.row(b.Y)
	return core.NewRect(x0, top, max(1, x1-x0+1), max(1, bottom-top+1))
}

// camera centers the player and stops at the level edges.
func (g *Game) camera(dst *core.Screen) view {
	viewW := float64(dst.Width()) * CellW
	center := g.world.Player().Box().Center().X
	maxCam := max(0, g.level.Spec.Width-viewW)
	return view{
		camX:   core.ClampF(center-viewW/2, 0, maxCam),
		ground: dst.Height() - 1,
		width:  dst.Width(),
	}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil || dst.Height() < 4 {
		return
	}

	v := g.camera(dst)
	dst.DrawHLine(0, v.ground, dst.Width(), GroundChar, core.ColorGray)

	if end := v.col(g.level.Spec.Width); end >= 0 && end < dst.Width() {
		for y := 1; y < v.ground; y++ {
			dst.SetColored(end, y, EdgeChar, core.ColorGray)
		}
	}

	if goal := g.world.Goal(); goal != nil {
		g.drawStore(dst, v, goal)
	}

	for _, o := range g.world.Obstacles() {
		dst.DrawRect(v.rect(o.Box()), ObstacleChar, core.ColorOrange)
	}

	for _, e := range g.world.Enemies() {
		g.drawEnemy(dst, v, e)
	}

	g.drawPlayer(dst, v)
	g.drawHUD(dst)

	switch {
	case g.world.Outcome() == sim.OutcomeCompleted:
		g.drawCenteredMessage(dst, "STORE REACHED", fmt.Sprintf("Score: %d  |  Press R to restart", g.world.Score()))
	case g.world.Outcome() == sim.OutcomeDead:
		g.drawCenteredMessage(dst, "BUSTED", fmt.Sprintf("Score: %d  |  Press R to restart", g.world.Score()))
	case g.paused:
		g.drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
}

func (g *Game) drawStore(dst *core.Screen, v view, goal *sim.Goal) {
	r := v.rect(goal.Box())
	color := core.ColorGreen
	if goal.IsLevelCompleted() {
		color = core.ColorBrightGreen
	}
	dst.DrawRect(r, StoreChar, color)

	label := "STORE"
	x := r.X + (r.W-len(label))/2
	dst.DrawTextColored(x, r.Y-1, label, core.ColorBrightGreen)
}

func (g *Game) drawEnemy(dst *core.Screen, v view, e *sim.Enemy) {
	r := v.rect(e.Box())
	switch e.Type() {
	case sim.EnemyPolice:
		dst.DrawRect(r, PoliceChar, core.ColorBlue)
		dst.SetColored(r.X+r.W/2, r.Y, '*', core.ColorBrightRed)
	default:
		dst.DrawRect(r, ChurchChar, core.ColorMagenta)
		dst.SetColored(r.X+r.W/2, r.Y, '†', core.ColorWhite)
	}
}

func (g *Game) drawPlayer(dst *core.Screen, v view) {
	p := g.world.Player()
	color := core.ColorCyan
	switch {
	case p.IsDead():
		color = core.ColorRed
	case p.IsPenalized() && (g.world.Tick()/8)%2 == 0:
		color = core.ColorYellow
	}
	dst.DrawRect(v.rect(p.Box()), PlayerChar, color)
}

// drawHUD draws the status line on the top row.
func (g *Game) drawHUD(dst *core.Screen) {
	p := g.world.Player()

	hearts := strings.Repeat("♥", p.Health()) + strings.Repeat("♡", p.MaxHealth()-p.Health())
	dst.DrawTextColored(1, 0, hearts, core.ColorBrightRed)

	x := 2 + p.MaxHealth()
	status := fmt.Sprintf(" %s  %s  KO %d  %s",
		g.level.Name, formatElapsed(g.world.Elapsed()), g.world.Defeated(), stateLabel(p))
	dst.DrawText(x, 0, status)
	x += len([]rune(status))

	if p.IsPenalized() {
		slowed := fmt.Sprintf("  SLOWED %.1fs", p.PenaltyRemaining().Seconds())
		dst.DrawTextColored(x, 0, slowed, core.ColorYellow)
		x += len([]rune(slowed))
	}
	if g.world.Goal() == nil {
		dst.DrawTextColored(x, 0, "  FREE RUN", core.ColorGray)
	}

	score := fmt.Sprintf("Score: %d ", g.world.Score())
	dst.DrawText(dst.Width()-len(score), 0, score)
}

func stateLabel(p *sim.Player) string {
	return strings.ToUpper(p.State().String())
}

func formatElapsed(d time.Duration) string {
	d = d.Truncate(100 * time.Millisecond)
	m := int(d / time.Minute)
	s := (d % time.Minute).Seconds()
	return fmt.Sprintf("%02d:%04.1f", m, s)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box)

	dst.DrawTextColored(boxX+(boxW-len(title))/2, boxY+1, title, core.ColorBrightYellow)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
