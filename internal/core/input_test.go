package core

import "testing"

func TestInputFrameActions(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionJump) {
		t.Error("new frame should have no actions")
	}

	f.Set(ActionJump)
	if !f.Has(ActionJump) {
		t.Error("Has(ActionJump) = false after Set")
	}

	var zero InputFrame
	if zero.Has(ActionJump) {
		t.Error("zero frame should report no actions")
	}
	zero.Set(ActionPause)
	if !zero.Has(ActionPause) {
		t.Error("Set on zero frame should allocate the action map")
	}
}

func TestInputFrameAxis(t *testing.T) {
	tests := []struct {
		in, expected float64
	}{
		{0.5, 0.5},
		{-2, -1},
		{3, 1},
		{0, 0},
	}

	for _, tc := range tests {
		f := NewInputFrame()
		f.SetAxis(tc.in)
		if f.Axis != tc.expected {
			t.Errorf("SetAxis(%v) stored %v, expected %v", tc.in, f.Axis, tc.expected)
		}
	}
}

func TestInputFrameClearAndClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionJump)
	f.SetAxis(-1)

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionJump) || f.Axis != 0 {
		t.Error("Clear should reset actions and axis")
	}
	if !clone.Has(ActionJump) || clone.Axis != -1 {
		t.Error("Clone should be independent of the original")
	}
}

func TestActionString(t *testing.T) {
	if ActionJump.String() != "Jump" {
		t.Errorf("ActionJump.String() = %q, expected Jump", ActionJump.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Action(99).String() = %q, expected Unknown", Action(99).String())
	}
}
