package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"gauntlet-arcade/internal/core"
)

// KeyMapper translates Bubble Tea key messages to game actions. This
// centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKeyToFrame updates an input frame based on a key message. Letter
// keys both drive movement (WASD) and feed the rune stream, so quiz and
// typing games see them too.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) {
	switch msg.String() {
	case "up", "w":
		frame.Set(core.ActionUp)
	case "down", "s":
		frame.Set(core.ActionDown)
	case "left", "a":
		frame.Set(core.ActionLeft)
	case "right", "d":
		frame.Set(core.ActionRight)
	case "backspace":
		frame.Set(core.ActionLeft)
	case " ", "enter":
		frame.Set(core.ActionPrimary)
	case "1":
		frame.Set(core.ActionPick1)
	case "2":
		frame.Set(core.ActionPick2)
	case "3":
		frame.Set(core.ActionPick3)
	case "4":
		frame.Set(core.ActionPick4)
	}

	if msg.Type == tea.KeyRunes {
		for _, r := range msg.Runes {
			if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
				frame.AddRune(r)
			}
		}
	}
}
