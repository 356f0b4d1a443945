package core

// Action is a key intent, independent of which physical key produced it.
type Action uint8

const (
	ActionNone    Action = iota
	ActionUp             // held: paddle up
	ActionDown           // held: paddle down
	ActionConfirm        // menu selection
	ActionBack           // leave to the menu
	ActionRestart        // fresh rally
	ActionQuit           // Esc
	ActionPause          // Space toggles
	actionCount
)

var actionNames = [actionCount]string{
	"None", "Up", "Down", "Confirm", "Back", "Restart", "Quit", "Pause",
}

func (a Action) String() string {
	if a >= actionCount {
		return "Unknown"
	}
	return actionNames[a]
}

// ActionSet is a bitset of actions.
type ActionSet uint16

func (s ActionSet) has(a Action) bool { return a < actionCount && s&(1<<a) != 0 }

func (s *ActionSet) add(a Action) {
	if a < actionCount {
		*s |= 1 << a
	}
}

// InputFrame is the input for one frame. Actions are edge events since
// the previous frame; Held is the key state sampled at frame time.
// The zero value is an empty frame and copies are independent.
type InputFrame struct {
	Actions ActionSet
	Held    ActionSet
}

// NewInputFrame returns an empty frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set records a as triggered this frame.
func (f *InputFrame) Set(a Action) { f.Actions.add(a) }

// Has reports whether a was triggered this frame.
func (f InputFrame) Has(a Action) bool { return f.Actions.has(a) }

// Hold records the key for a as down.
func (f *InputFrame) Hold(a Action) { f.Held.add(a) }

// IsHeld reports whether the key for a is down.
func (f InputFrame) IsHeld(a Action) bool { return f.Held.has(a) }

// Clear empties the frame for reuse.
func (f *InputFrame) Clear() { *f = InputFrame{} }
