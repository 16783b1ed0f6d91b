package replay

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/store-dash/internal/config"
	"github.com/vovakirdan/store-dash/internal/games/storedash/levels"
	"github.com/vovakirdan/store-dash/internal/games/storedash/sim"
)

const testLevel = `
id: replay-street
width: 900
spawn: {x: 20, y: 0}
obstacles:
  - {x: 240, y: 0, w: 16, h: 24}
enemies:
  - type: church_member
    x: 420
    lane: {min: 380, max: 560}
  - type: police
    x: 700
store: {x: 820, y: 0, w: 64, h: 48}
`

func testTuning() config.StoreDashConfig {
	cfg := config.DefaultStoreDashConfig()
	cfg.Player.MaxHealth = 5
	return cfg
}

// record plays inputs through a fresh world, recording every step the
// world accepts.
func record(t *testing.T, inputs []sim.Input) *Replay {
	t.Helper()

	level, err := levels.Parse([]byte(testLevel))
	if err != nil {
		t.Fatalf("levels.Parse() failed: %v", err)
	}
	tuning := testTuning()

	rec, err := NewRecorder(level, tuning)
	if err != nil {
		t.Fatalf("NewRecorder() failed: %v", err)
	}

	w := sim.NewWorld(level.Spec, tuning)
	for _, in := range inputs {
		if w.Outcome() != sim.OutcomeRunning {
			break
		}
		rec.Record(in)
		w.Step(in)
	}
	return rec.Finish(w)
}

func scriptedInputs() []sim.Input {
	inputs := make([]sim.Input, 0, 1200)
	for i := 0; i < 1200; i++ {
		in := sim.Input{Axis: 1}
		if i%45 == 5 {
			in.Jump = true
		}
		inputs = append(inputs, in)
	}
	return inputs
}

func TestRecorderCompactsRepeats(t *testing.T) {
	level, err := levels.Parse([]byte(testLevel))
	if err != nil {
		t.Fatal(err)
	}
	rec, err := NewRecorder(level, testTuning())
	if err != nil {
		t.Fatal(err)
	}

	right := sim.Input{Axis: 1}
	jump := sim.Input{Axis: 1, Jump: true}
	for _, in := range []sim.Input{right, right, right, jump, right} {
		rec.Record(in)
	}

	if rec.Frames() != 5 {
		t.Errorf("Frames() = %d, expected 5", rec.Frames())
	}

	r := rec.Finish(sim.NewWorld(level.Spec, testTuning()))
	if len(r.Segments) != 3 {
		t.Fatalf("len(Segments) = %d, expected 3", len(r.Segments))
	}
	if r.Segments[0].Count != 3 || r.Segments[1].Input != jump {
		t.Errorf("Segments = %+v", r.Segments)
	}

	inputs := r.Inputs()
	if len(inputs) != 5 || inputs[3] != jump || inputs[4] != right {
		t.Errorf("Inputs() = %+v", inputs)
	}
	if r.Duration() != 5*(time.Second/60) {
		t.Errorf("Duration() = %v", r.Duration())
	}
	if r.LevelID != "replay-street" || r.Version != Version || r.TickRate != 60 {
		t.Errorf("header = %q v%d @%d", r.LevelID, r.Version, r.TickRate)
	}
}

func TestFinishReturnsCopy(t *testing.T) {
	level, _ := levels.Parse([]byte(testLevel))
	rec, _ := NewRecorder(level, testTuning())
	rec.Record(sim.Input{Axis: 1})

	r := rec.Finish(sim.NewWorld(level.Spec, testTuning()))
	rec.Record(sim.Input{})

	if r.Frames() != 1 {
		t.Errorf("Frames() = %d, finished replay should not change", r.Frames())
	}
}

func TestVerifyRoundTrip(t *testing.T) {
	r := record(t, scriptedInputs())
	if r.Result.Outcome == "" || r.Result.Ticks != r.Frames() {
		t.Fatalf("Result = %+v, frames %d", r.Result, r.Frames())
	}

	data, err := Encode(r)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}

	got, err := Verify(decoded)
	if err != nil {
		t.Fatalf("Verify() failed: %v", err)
	}
	if got != r.Result {
		t.Errorf("Verify() = %v, expected %v", got, r.Result)
	}
}

func TestVerifyDetectsTampering(t *testing.T) {
	tests := []struct {
		name   string
		tamper func(r *Replay)
	}{
		{"score", func(r *Replay) { r.Result.Score += 10 }},
		{"outcome", func(r *Replay) { r.Result.Outcome = "abandoned" }},
		{"inputs", func(r *Replay) {
			r.Segments = append([]Segment{{Input: sim.Input{}, Count: 30}}, r.Segments...)
		}},
		{"tick rate", func(r *Replay) { r.TickRate = 30 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := record(t, scriptedInputs())
			tc.tamper(r)
			if _, err := Verify(r); !errors.Is(err, ErrMismatch) {
				t.Errorf("Verify() error = %v, expected ErrMismatch", err)
			}
		})
	}
}

func TestVerifyBadLevel(t *testing.T) {
	r := record(t, scriptedInputs()[:10])
	r.Level = []byte("id: x\nwidth: -3\n")

	_, err := Verify(r)
	if !errors.Is(err, levels.ErrInvalidLevel) {
		t.Errorf("Verify() error = %v, expected ErrInvalidLevel", err)
	}
}

func TestDecodeErrors(t *testing.T) {
	if _, err := Decode([]byte{0xc1}); err == nil {
		t.Error("Decode() of garbage should fail")
	}

	data, err := msgpack.Marshal(&Replay{Version: Version + 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(data); !errors.Is(err, ErrVersion) {
		t.Errorf("Decode() error = %v, expected ErrVersion", err)
	}
}

func TestFrameLimit(t *testing.T) {
	tests := []struct {
		name     string
		segments []Segment
		err      error
	}{
		{"at limit", []Segment{{Count: MaxFrames - 1}, {Input: sim.Input{Jump: true}, Count: 1}}, nil},
		{"one segment over", []Segment{{Count: MaxFrames + 1}}, ErrTooLong},
		{"sum over", []Segment{{Count: MaxFrames}, {Input: sim.Input{Axis: 1}, Count: 1}}, ErrTooLong},
		{"huge count", []Segment{{Count: math.MaxInt}}, ErrTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := msgpack.Marshal(&Replay{Version: Version, Segments: tt.segments})
			if err != nil {
				t.Fatal(err)
			}
			_, err = Decode(data)
			if !errors.Is(err, tt.err) {
				t.Errorf("Decode() error = %v, expected %v", err, tt.err)
			}

			_, err = Encode(&Replay{Version: Version, Segments: tt.segments})
			if !errors.Is(err, tt.err) {
				t.Errorf("Encode() error = %v, expected %v", err, tt.err)
			}
		})
	}
}

func TestDecodeRejectsNegativeCount(t *testing.T) {
	data, err := msgpack.Marshal(&Replay{Version: Version, Segments: []Segment{{Count: 5}, {Count: -3}}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(data); err == nil {
		t.Error("Decode() with a negative count should fail")
	}
}

func TestVerifyLaneNarrowerThanTunedEnemy(t *testing.T) {
	r := record(t, scriptedInputs()[:10])
	tuning := testTuning()
	tuning.Enemies.Width = 200
	data, err := config.Marshal(tuning)
	if err != nil {
		t.Fatal(err)
	}
	r.Tuning = data

	if _, err := Verify(r); !errors.Is(err, levels.ErrInvalidLevel) {
		t.Errorf("Verify() error = %v, expected ErrInvalidLevel", err)
	}
}

func TestPlayRejectsOversizedSegments(t *testing.T) {
	r := record(t, scriptedInputs()[:10])
	r.Segments = append(r.Segments, Segment{Count: MaxFrames})

	if _, err := Play(r); !errors.Is(err, ErrTooLong) {
		t.Errorf("Play() error = %v, expected ErrTooLong", err)
	}
}
