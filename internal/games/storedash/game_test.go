package storedash

import (
	"strings"
	"testing"

	"github.com/vovakirdan/store-dash/internal/config"
	"github.com/vovakirdan/store-dash/internal/core"
	"github.com/vovakirdan/store-dash/internal/games/storedash/levels"
	"github.com/vovakirdan/store-dash/internal/registry"
	"github.com/vovakirdan/store-dash/internal/replay"
)

const shortLevel = `
id: adapter-test
name: Adapter Test
width: 600
spawn: {x: 20, y: 0}
obstacles:
  - {x: 120, y: 0, w: 16, h: 24}
store: {x: 300, y: 0, w: 64, h: 48}
`

func newTestGame(t *testing.T, src string) *Game {
	t.Helper()
	lvl, err := levels.Parse([]byte(src))
	if err != nil {
		t.Fatalf("levels.Parse() failed: %v", err)
	}
	g := New(lvl, config.DefaultStoreDashConfig())
	g.Reset(core.DefaultConfig())
	return g
}

func right() core.InputFrame {
	in := core.NewInputFrame()
	in.SetAxis(1)
	return in
}

func runUntilOver(g *Game, in core.InputFrame, limit int) core.GameState {
	var state core.GameState
	for i := 0; i < limit; i++ {
		state = g.Step(in).State
		if state.GameOver {
			break
		}
	}
	return state
}

func TestEmbeddedLevelsRegistered(t *testing.T) {
	for _, id := range []string{"main-street", "church-square", "precinct"} {
		if !registry.Exists(id) {
			t.Errorf("level %q should be registered", id)
		}
	}

	g, err := registry.Create("main-street", config.DefaultStoreDashConfig())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Main Street" {
		t.Errorf("Title() = %q, expected %q", g.Title(), "Main Street")
	}
	if _, ok := g.(registry.Recorded); !ok {
		t.Error("game should implement registry.Recorded")
	}
}

func TestSimInput(t *testing.T) {
	tests := []struct {
		name    string
		actions []core.Action
		axis    float64
		want    float64
		jump    bool
	}{
		{"idle", nil, 0, 0, false},
		{"axis wins", []core.Action{core.ActionLeft}, 0.5, 0.5, false},
		{"left action", []core.Action{core.ActionLeft}, 0, -1, false},
		{"right action", []core.Action{core.ActionRight}, 0, 1, false},
		{"both cancel", []core.Action{core.ActionLeft, core.ActionRight}, 0, 0, false},
		{"jump", []core.Action{core.ActionJump}, -1, -1, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := core.NewInputFrame()
			for _, a := range tc.actions {
				in.Set(a)
			}
			in.SetAxis(tc.axis)

			got := SimInput(in)
			if got.Axis != tc.want || got.Jump != tc.jump {
				t.Errorf("SimInput() = %+v, expected axis %v jump %v", got, tc.want, tc.jump)
			}
		})
	}
}

func TestGameReachesStore(t *testing.T) {
	g := newTestGame(t, shortLevel)

	state := runUntilOver(g, right(), 1000)
	if !state.GameOver || !state.Won {
		t.Fatalf("State = %+v, expected a won run", state)
	}

	c, ok := g.Completion()
	if !ok || c.LevelID != "adapter-test" {
		t.Errorf("Completion() = %+v, %v", c, ok)
	}

	ticks := state.Ticks
	if after := g.Step(right()).State; after.Ticks != ticks {
		t.Errorf("Ticks = %d after game over, expected %d", after.Ticks, ticks)
	}

	g.Reset(core.DefaultConfig())
	if s := g.State(); s.GameOver || s.Ticks != 0 {
		t.Errorf("State after Reset = %+v", s)
	}
	if _, ok := g.Completion(); ok {
		t.Error("Reset should clear the completion")
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, shortLevel)

	g.Step(right())
	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	if !g.Step(pause).State.Paused {
		t.Fatal("pause action should pause")
	}
	before := g.State().Ticks
	for i := 0; i < 10; i++ {
		g.Step(right())
	}
	if g.State().Ticks != before {
		t.Error("paused game should not advance")
	}

	g.Step(pause)
	g.Step(right())
	if g.State().Paused || g.State().Ticks <= before {
		t.Error("unpaused game should advance")
	}
}

func TestGameDeterminism(t *testing.T) {
	lvl, err := levels.EmbeddedByID("church-square")
	if err != nil {
		t.Fatal(err)
	}

	inputs := make([]core.InputFrame, 1500)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		inputs[i].SetAxis(1)
		if i%40 == 0 {
			inputs[i].Set(core.ActionJump)
		}
	}

	run := func() core.GameState {
		g := New(lvl, config.DefaultStoreDashConfig())
		g.Reset(core.DefaultConfig())
		var s core.GameState
		for _, in := range inputs {
			s = g.Step(in).State
		}
		return s
	}

	s1, s2 := run(), run()
	if s1 != s2 {
		t.Errorf("Determinism failed: %+v vs %+v", s1, s2)
	}
}

func TestGameSummaryReplay(t *testing.T) {
	g := newTestGame(t, shortLevel)
	jump := right()
	jump.Set(core.ActionJump)

	for i := 0; i < 20; i++ {
		g.Step(right())
	}
	g.Step(jump)
	runUntilOver(g, right(), 1000)

	s, err := g.Summary()
	if err != nil {
		t.Fatalf("Summary() failed: %v", err)
	}
	if s.LevelID != "adapter-test" || s.Outcome != "completed" || s.Health != 3 {
		t.Errorf("Summary() = %+v", s)
	}
	if len(s.Replay) == 0 {
		t.Fatal("Summary() should carry a replay")
	}

	r, err := replay.Decode(s.Replay)
	if err != nil {
		t.Fatalf("replay.Decode() failed: %v", err)
	}
	if r.Frames() != s.Ticks {
		t.Errorf("replay frames = %d, expected %d", r.Frames(), s.Ticks)
	}
	res, err := replay.Verify(r)
	if err != nil {
		t.Fatalf("replay.Verify() failed: %v", err)
	}
	if res.Score != s.Score || res.Ticks != s.Ticks {
		t.Errorf("Verify() = %+v, summary %+v", res, s)
	}
}

func TestSummaryWithoutRun(t *testing.T) {
	lvl, _ := levels.Parse([]byte(shortLevel))
	if _, err := New(lvl, config.DefaultStoreDashConfig()).Summary(); err == nil {
		t.Error("Summary() before Reset should fail")
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t, shortLevel)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()

	if !strings.Contains(screen.Row(0), "Adapter Test") || !strings.Contains(screen.Row(0), "Score:") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	if strings.Trim(screen.Row(23), string(GroundChar)) != "" {
		t.Errorf("ground row = %q", screen.Row(23))
	}
	if !strings.ContainsRune(out, PlayerChar) {
		t.Error("player should be drawn")
	}
	if !strings.Contains(out, "STORE") {
		t.Error("store should be labelled")
	}
	if !strings.ContainsRune(out, ObstacleChar) {
		t.Error("obstacle should be drawn")
	}

	// Player stands on the ground: its lowest cells sit right above the line.
	if !strings.ContainsRune(screen.Row(22), PlayerChar) {
		t.Errorf("row 22 = %q, expected the player's feet", screen.Row(22))
	}

	runUntilOver(g, right(), 1000)
	g.Render(screen)
	if !strings.Contains(screen.String(), "STORE REACHED") {
		t.Error("completed run should show the banner")
	}
}

func TestRenderFreeRunAndPause(t *testing.T) {
	g := newTestGame(t, "id: lot\nwidth: 400\n")
	screen := core.NewScreen(80, 24)

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	g.Step(pause)
	g.Render(screen)

	if !strings.Contains(screen.Row(0), "FREE RUN") {
		t.Errorf("HUD row = %q, expected FREE RUN", screen.Row(0))
	}
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused game should show the banner")
	}
}

func TestViewMapping(t *testing.T) {
	v := view{camX: 0, ground: 23, width: 80}

	r := v.rect(core.Box{X: 0, Y: 0, W: 24, H: 40})
	if r != core.NewRect(0, 20, 3, 3) {
		t.Errorf("rect = %+v, expected 3x3 at (0,20)", r)
	}

	r = v.rect(core.Box{X: 4, Y: 0, W: 2, H: 2})
	if r.W != 1 || r.H != 1 || r.Y != 22 {
		t.Errorf("tiny box rect = %+v, expected one cell on row 22", r)
	}
}
