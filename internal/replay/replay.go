// Package replay records the inputs of a run and plays them back.
// A replay carries the level and tuning it was recorded with, so it can be
// re-simulated without access to the files the run was played from.
package replay

import (
	"errors"
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/store-dash/internal/config"
	"github.com/vovakirdan/store-dash/internal/games/storedash/levels"
	"github.com/vovakirdan/store-dash/internal/games/storedash/sim"
)

const (
	// Version is the current replay format.
	Version = 1

	// MaxFrames bounds the length of a replay: two hours at 60 Hz.
	MaxFrames = 2 * 60 * 60 * 60
)

var (
	// ErrMismatch is returned when a re-simulated run ends differently
	// from the recorded one.
	ErrMismatch = errors.New("replay: result mismatch")

	// ErrVersion is returned for replays written in an unknown format.
	ErrVersion = errors.New("replay: unsupported version")

	// ErrTooLong is returned for replays with more than MaxFrames steps.
	ErrTooLong = errors.New("replay: too many frames")
)

// Segment is a run of identical consecutive inputs.
type Segment struct {
	Input sim.Input `msgpack:"i"`
	Count int       `msgpack:"n"`
}

// Result is how a run ended.
type Result struct {
	Outcome string `msgpack:"outcome"`
	Ticks   int    `msgpack:"ticks"`
	Score   int    `msgpack:"score"`
}

func (r Result) String() string {
	return fmt.Sprintf("%s after %d ticks, score %d", r.Outcome, r.Ticks, r.Score)
}

// Replay is a recorded run.
type Replay struct {
	Version  int       `msgpack:"v"`
	LevelID  string    `msgpack:"level_id"`
	Level    []byte    `msgpack:"level"`
	Tuning   []byte    `msgpack:"tuning"`
	TickRate int       `msgpack:"tick_rate"`
	Segments []Segment `msgpack:"segments"`
	Result   Result    `msgpack:"result"`
}

// Frames returns the number of recorded steps.
func (r *Replay) Frames() int {
	n := 0
	for _, s := range r.Segments {
		n += s.Count
	}
	return n
}

// checkFrames rejects negative segment counts and totals above MaxFrames.
func (r *Replay) checkFrames() error {
	n := 0
	for i, s := range r.Segments {
		if s.Count < 0 {
			return fmt.Errorf("replay: segment %d: negative count %d", i, s.Count)
		}
		if s.Count > MaxFrames-n {
			return fmt.Errorf("%w: over %d", ErrTooLong, MaxFrames)
		}
		n += s.Count
	}
	return nil
}

// Inputs expands the segments into one input per step.
func (r *Replay) Inputs() []sim.Input {
	inputs := make([]sim.Input, 0, r.Frames())
	for _, s := range r.Segments {
		for i := 0; i < s.Count; i++ {
			inputs = append(inputs, s.Input)
		}
	}
	return inputs
}

// Duration returns the simulated length of the recording.
func (r *Replay) Duration() time.Duration {
	if r.TickRate <= 0 {
		return 0
	}
	return time.Duration(r.Frames()) * (time.Second / time.Duration(r.TickRate))
}

// Encode serializes a replay.
func Encode(r *Replay) ([]byte, error) {
	if err := r.checkFrames(); err != nil {
		return nil, err
	}
	data, err := msgpack.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("replay: encode: %w", err)
	}
	return data, nil
}

// Decode deserializes a replay.
func Decode(data []byte) (*Replay, error) {
	var r Replay
	if err := msgpack.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("replay: decode: %w", err)
	}
	if r.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, r.Version)
	}
	if err := r.checkFrames(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Recorder accumulates the inputs of a run.
type Recorder struct {
	r Replay
}

// NewRecorder starts a recording for level played with tuning.
func NewRecorder(level levels.Level, tuning config.StoreDashConfig) (*Recorder, error) {
	tuningYAML, err := config.Marshal(tuning)
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	return &Recorder{r: Replay{
		Version:  Version,
		LevelID:  level.ID,
		Level:    level.Source,
		Tuning:   tuningYAML,
		TickRate: tuning.Physics.TickRate,
	}}, nil
}

// Record appends the input of one step.
func (rec *Recorder) Record(in sim.Input) {
	if n := len(rec.r.Segments); n > 0 && rec.r.Segments[n-1].Input == in {
		rec.r.Segments[n-1].Count++
		return
	}
	rec.r.Segments = append(rec.r.Segments, Segment{Input: in, Count: 1})
}

// Frames returns the number of recorded steps.
func (rec *Recorder) Frames() int {
	return rec.r.Frames()
}

// Finish stamps the world's result on the recording and returns it.
// The recorder can keep recording afterwards; Finish returns a copy.
func (rec *Recorder) Finish(w *sim.World) *Replay {
	out := rec.r
	out.Segments = append([]Segment(nil), rec.r.Segments...)
	out.Result = ResultOf(w)
	return &out
}

// ResultOf reads the result of a world.
func ResultOf(w *sim.World) Result {
	return Result{
		Outcome: w.Outcome().String(),
		Ticks:   w.Tick(),
		Score:   w.Score(),
	}
}
