package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games react to intents; the platform decides which keys produce them.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A, H - shift piece left
	ActionRight          // Right arrow, D, L - shift piece right
	ActionDown           // Down arrow, S, J - soft drop
	ActionRotate         // Up arrow, W, K, Space - rotate clockwise
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R - restart after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionDown:
		return "Down"
	case ActionRotate:
		return "Rotate"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two simulation ticks.
// Repeated presses of the same key within a tick are counted so a fast
// typist does not lose moves at low tick rates.
type InputFrame struct {
	counts map[Action]int
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{counts: make(map[Action]int)}
}

// Set records one occurrence of an action for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	if f.counts == nil {
		f.counts = make(map[Action]int)
	}
	f.counts[a]++
}

// Has returns true if the action was triggered at least once this frame.
func (f InputFrame) Has(a Action) bool {
	return f.counts[a] > 0
}

// Count returns how many times the action was triggered this frame.
func (f InputFrame) Count(a Action) int {
	return f.counts[a]
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.counts {
		delete(f.counts, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.counts {
		clone.counts[k] = v
	}
	return clone
}
