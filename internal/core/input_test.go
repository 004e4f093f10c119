package core

import "testing"

func TestActionString(t *testing.T) {
	tests := []struct {
		a        Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionMove, "Move"},
		{ActionEndTurn, "EndTurn"},
		{ActionQuit, "Quit"},
		{Action(999), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.a.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.a, got, tc.expected)
		}
	}
}

func TestActionCursorDelta(t *testing.T) {
	tests := []struct {
		a      Action
		dx, dy int
	}{
		{ActionCursorUp, 0, -1},
		{ActionCursorDown, 0, 1},
		{ActionCursorLeft, -1, 0},
		{ActionCursorRight, 1, 0},
		{ActionHold, 0, 0},
	}

	for _, tc := range tests {
		dx, dy := tc.a.CursorDelta()
		if dx != tc.dx || dy != tc.dy {
			t.Errorf("%v.CursorDelta() = (%d, %d), expected (%d, %d)", tc.a, dx, dy, tc.dx, tc.dy)
		}
	}
}

func TestInputFrame(t *testing.T) {
	f := NewInputFrame()

	f.Push(ActionMove)
	f.Push(ActionNone)
	f.Push(ActionConfirm)

	if !f.Has(ActionMove) || !f.Has(ActionConfirm) {
		t.Error("Has should report pushed actions")
	}
	if f.Has(ActionNone) {
		t.Error("ActionNone should be dropped")
	}

	got := f.Drain()
	if len(got) != 2 || got[0] != ActionMove || got[1] != ActionConfirm {
		t.Errorf("Drain() = %v, expected [Move Confirm]", got)
	}
	if len(f.Actions) != 0 {
		t.Error("Drain should clear the frame")
	}
}
