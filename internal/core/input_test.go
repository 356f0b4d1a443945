package core

import "testing"

func TestInputFrameActionsAndHeld(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)
	f.Hold(ActionUp)

	if !f.Has(ActionPause) {
		t.Error("Has(Pause) should be true after Set")
	}
	if f.Has(ActionUp) {
		t.Error("held keys should not count as triggered actions")
	}
	if !f.IsHeld(ActionUp) {
		t.Error("IsHeld(Up) should be true after Hold")
	}
	if f.IsHeld(ActionDown) {
		t.Error("IsHeld(Down) should be false")
	}

	saved := f
	f.Clear()

	if f.Has(ActionPause) || f.IsHeld(ActionUp) {
		t.Error("Clear should reset actions and held keys")
	}
	if !saved.Has(ActionPause) || !saved.IsHeld(ActionUp) {
		t.Error("a copied frame should not share state")
	}
}

func TestInputFrameIgnoresUnknownActions(t *testing.T) {
	var f InputFrame
	f.Set(Action(40))
	f.Hold(Action(200))
	if f != (InputFrame{}) {
		t.Errorf("out of range actions should be dropped, got %+v", f)
	}
	if f.Has(Action(40)) {
		t.Error("Has should be false for unknown actions")
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionUp:    "Up",
		ActionPause: "Pause",
		ActionQuit:  "Quit",
		Action(99):  "Unknown",
	}
	for a, want := range tests {
		if got := a.String(); got != want {
			t.Errorf("Action(%d).String() = %q, expected %q", int(a), got, want)
		}
	}
}
