package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/funrun/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to actions.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case " ", "up", "w":
		return core.ActionActivate, false
	case "enter":
		return core.ActionConfirm, false
	case "tab":
		return core.ActionScores, false
	}
	return core.ActionNone, false
}

// MapGateKey handles keys while the name prompt has focus. Printable keys
// belong to the text field, so only enter, esc and ctrl+c map to actions.
func (km *KeyMapper) MapGateKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return core.ActionQuit, true
	case "enter":
		return core.ActionConfirm, false
	}
	return core.ActionNone, false
}

// MapMouse turns a left-button press into ActionActivate.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) core.Action {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		return core.ActionActivate
	}
	return core.ActionNone
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if action != core.ActionNone {
		frame.Set(action)
	}
	return isQuit
}
