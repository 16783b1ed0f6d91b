package sim

import (
	"testing"
	"time"

	"github.com/vovakirdan/store-dash/internal/core"
)

func repeat(in Input, n int) []Input {
	out := make([]Input, n)
	for i := range out {
		out[i] = in
	}
	return out
}

func storeLevel() LevelSpec {
	return LevelSpec{
		ID:    "test",
		Name:  "Test Street",
		Width: 800,
		Spawn: core.Vec2{X: 20, Y: 0},
		Store: &core.Box{X: 300, Y: 0, W: 64, H: 48},
	}
}

func TestWorldReachesStore(t *testing.T) {
	var got []Completion
	w := NewWorld(storeLevel(), testConfig(), WithCompletionHandler(func(c Completion) {
		got = append(got, c)
	}))

	outcome := w.Run(repeat(Input{Axis: 1}, 600))

	if outcome != OutcomeCompleted {
		t.Fatalf("Run() = %v, expected completed", outcome)
	}
	if len(got) != 1 {
		t.Fatalf("completion fired %d times, expected 1", len(got))
	}
	if got[0].LevelID != "test" {
		t.Errorf("Completion.LevelID = %q, expected %q", got[0].LevelID, "test")
	}
	if got[0].Tick != w.Tick()-1 {
		t.Errorf("Completion.Tick = %d, expected %d", got[0].Tick, w.Tick()-1)
	}
	if !w.Goal().IsLevelCompleted() {
		t.Error("goal should report completion")
	}
	if w.Tick() >= 600 {
		t.Errorf("Tick() = %d, run should stop at completion", w.Tick())
	}

	tick := w.Tick()
	w.Step(Input{Axis: 1})
	if w.Tick() != tick || len(got) != 1 {
		t.Error("steps after completion should do nothing")
	}
}

func TestWorldWithoutStoreNeverCompletes(t *testing.T) {
	level := storeLevel()
	level.Store = nil
	w := NewWorld(level, testConfig())

	if outcome := w.Run(repeat(Input{Axis: 1}, 1200)); outcome != OutcomeRunning {
		t.Errorf("Run() = %v, expected running", outcome)
	}
	if w.Goal() != nil {
		t.Error("Goal() should be nil")
	}
	if got, want := w.Player().Position().X, level.Width-w.Player().Box().W; got != want {
		t.Errorf("player x = %v, expected clamp at %v", got, want)
	}
}

func TestWorldClampsLeftBound(t *testing.T) {
	level := storeLevel()
	level.Spawn = core.Vec2{X: 10, Y: 0}
	w := NewWorld(level, testConfig())

	w.Run(repeat(Input{Axis: -1}, 30))

	if x := w.Player().Position().X; x != 0 {
		t.Errorf("player x = %v, expected 0", x)
	}
}

func TestWorldJumpAndLand(t *testing.T) {
	w := NewWorld(storeLevel(), testConfig())

	w.Step(Input{Jump: true})
	p := w.Player()
	if p.IsGrounded() || p.Position().Y <= 0 {
		t.Fatalf("player should be airborne after a jump, y = %v", p.Position().Y)
	}

	peak := 0.0
	landed := -1
	for i := 0; i < 120; i++ {
		w.Step(Input{Jump: true})
		if y := p.Position().Y; y > peak {
			peak = y
		}
		if p.IsGrounded() {
			landed = i
			break
		}
	}

	if landed < 0 {
		t.Fatal("player never landed")
	}
	if p.Position().Y != 0 || p.Velocity().Y != 0 {
		t.Errorf("landed at y=%v vy=%v, expected 0/0", p.Position().Y, p.Velocity().Y)
	}
	// Holding jump must not re-trigger in the air: a single jump peaks near
	// v²/2g.
	cfg := testConfig()
	limit := cfg.Player.JumpVelocity * cfg.Player.JumpVelocity / (2 * cfg.Physics.Gravity)
	if peak > limit+1 {
		t.Errorf("peak = %v, expected at most %v", peak, limit+1)
	}
	if p.State() != StateIdle {
		t.Errorf("State() = %v, expected Idle after landing", p.State())
	}
}

func TestWorldStompFromSpawn(t *testing.T) {
	level := LevelSpec{
		ID:    "stomp",
		Width: 400,
		Spawn: core.Vec2{X: 95, Y: 100},
		Enemies: []EnemySpec{{
			Type:     EnemyChurchMember,
			Movement: MovementAcrossPath,
			X:        90,
			Lane:     &Lane{Min: 90, Max: 130},
		}},
	}
	cfg := testConfig()
	w := NewWorld(level, cfg)

	for i := 0; i < 60 && w.Defeated() == 0; i++ {
		w.Step(Input{})
	}

	if w.Defeated() != 1 {
		t.Fatalf("Defeated() = %d, expected 1", w.Defeated())
	}
	if len(w.Enemies()) != 0 {
		t.Errorf("len(Enemies()) = %d, defeated enemy should be removed", len(w.Enemies()))
	}
	if vy := w.Player().Velocity().Y; vy != cfg.Player.BounceVelocity {
		t.Errorf("vy = %v, expected bounce %v", vy, cfg.Player.BounceVelocity)
	}
	if w.LastContacts().Stomps != 1 {
		t.Errorf("LastContacts() = %+v, expected a stomp", w.LastContacts())
	}
	if w.Player().IsPenalized() || w.Player().Health() != w.Player().MaxHealth() {
		t.Error("a stomp should cost nothing")
	}
	if w.Score() != 100 {
		t.Errorf("Score() = %d, expected 100", w.Score())
	}
}

func TestWorldDeathByContact(t *testing.T) {
	level := LevelSpec{
		ID:    "chase",
		Width: 800,
		Spawn: core.Vec2{X: 100, Y: 0},
		Enemies: []EnemySpec{{
			Type:     EnemyPolice,
			Movement: MovementTowardPlayer,
			X:        300,
		}},
		Store: &core.Box{X: 700, Y: 0, W: 64, H: 48},
	}
	cfg := testConfig()
	cfg.Enemies.ContactDamage = 1
	w := NewWorld(level, cfg)

	hits := 0
	for i := 0; i < 3000 && w.Outcome() == OutcomeRunning; i++ {
		w.Step(Input{})
		if w.LastContacts().Penalized {
			hits++
		}
	}

	if w.Outcome() != OutcomeDead {
		t.Fatalf("Outcome() = %v, expected dead", w.Outcome())
	}
	if hits != 3 {
		t.Errorf("penalty windows = %d, expected 3", hits)
	}
	if w.Player().Health() != 0 {
		t.Errorf("Health() = %d, expected 0", w.Player().Health())
	}
	if w.Score() != 0 {
		t.Errorf("Score() = %d, expected 0", w.Score())
	}

	pos := w.Player().Position()
	tick := w.Tick()
	w.Step(Input{Axis: 1, Jump: true})
	if w.Tick() != tick || w.Player().Position() != pos {
		t.Error("steps after death should do nothing")
	}
}

func TestWorldScoreOnCompletion(t *testing.T) {
	w := NewWorld(storeLevel(), testConfig())
	w.Run(repeat(Input{Axis: 1}, 600))

	want := 3*250 + 6000 - w.Tick()/6
	if w.Score() != want {
		t.Errorf("Score() = %d, expected %d", w.Score(), want)
	}
	if w.Elapsed() != time.Duration(w.Tick())*step {
		t.Errorf("Elapsed() = %v", w.Elapsed())
	}
}

func TestWorldDeterminism(t *testing.T) {
	level := LevelSpec{
		ID:        "busy",
		Width:     1200,
		Spawn:     core.Vec2{X: 20, Y: 0},
		Obstacles: []core.Box{{X: 200, Y: 0, W: 16, H: 24}, {X: 520, Y: 0, W: 32, H: 16}},
		Enemies: []EnemySpec{
			{Type: EnemyPolice, Movement: MovementTowardPlayer, X: 400},
			{Type: EnemyChurchMember, Movement: MovementAcrossPath, X: 700, Direction: -1, Lane: &Lane{Min: 600, Max: 800}},
		},
		Store: &core.Box{X: 1100, Y: 0, W: 64, H: 48},
	}

	inputs := make([]Input, 0, 900)
	for i := 0; i < 900; i++ {
		in := Input{Axis: 1}
		if i%90 == 10 {
			in.Jump = true
		}
		if i%200 > 170 {
			in.Axis = -0.5
		}
		inputs = append(inputs, in)
	}

	cfg := testConfig()
	cfg.Difficulty.Enabled = true
	a := NewWorld(level, cfg)
	b := NewWorld(level, cfg)
	a.Run(inputs)
	b.Run(inputs)

	if a.Outcome() != b.Outcome() || a.Tick() != b.Tick() || a.Score() != b.Score() {
		t.Errorf("runs diverged: %v/%d/%d vs %v/%d/%d",
			a.Outcome(), a.Tick(), a.Score(), b.Outcome(), b.Tick(), b.Score())
	}
	if a.Player().Position() != b.Player().Position() || a.Player().Health() != b.Player().Health() {
		t.Error("player state diverged")
	}
	if len(a.Enemies()) != len(b.Enemies()) {
		t.Fatal("enemy sets diverged")
	}
	for i := range a.Enemies() {
		if a.Enemies()[i].Position() != b.Enemies()[i].Position() {
			t.Errorf("enemy %d diverged", i)
		}
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		o    Outcome
		want string
	}{
		{OutcomeRunning, "running"},
		{OutcomeCompleted, "completed"},
		{OutcomeDead, "dead"},
		{Outcome(9), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.o.String(); got != tc.want {
			t.Errorf("Outcome(%d).String() = %q, expected %q", tc.o, got, tc.want)
		}
	}
}
