package core

// Action is a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionPrimary // Space/Enter - the game's main verb (drop, lock, answer)
	ActionPick1   // 1..4 - answer selection for choice games
	ActionPick2
	ActionPick3
	ActionPick4
	ActionRune // Free-text letter input (anagram typing); see InputFrame.Runes
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPrimary:
		return "Primary"
	case ActionPick1:
		return "Pick1"
	case ActionPick2:
		return "Pick2"
	case ActionPick3:
		return "Pick3"
	case ActionPick4:
		return "Pick4"
	case ActionRune:
		return "Rune"
	default:
		return "Unknown"
	}
}

// InputFrame is the input state for one simulation tick.
type InputFrame struct {
	actions map[Action]bool

	// Runes carries literal typed characters for games that consume text.
	Runes []rune
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{actions: make(map[Action]bool)}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.actions == nil {
		f.actions = make(map[Action]bool)
	}
	f.actions[a] = true
}

// AddRune records a typed character and marks ActionRune.
func (f *InputFrame) AddRune(r rune) {
	f.Runes = append(f.Runes, r)
	f.Set(ActionRune)
}

// Has reports whether the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.actions[a]
}

// Clear resets the frame for the next tick.
func (f *InputFrame) Clear() {
	for k := range f.actions {
		delete(f.actions, k)
	}
	f.Runes = f.Runes[:0]
}
