package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/funrun/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionActivate, false},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionActivate, false},
		{"w", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}}, core.ActionActivate, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, core.ActionScores, false},
		{"q", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}, core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"x", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, core.ActionNone, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			action, quit := km.MapKey(tc.msg)
			if action != tc.action {
				t.Errorf("MapKey(%q) action = %v, expected %v", tc.name, action, tc.action)
			}
			if quit != tc.quit {
				t.Errorf("MapKey(%q) quit = %v, expected %v", tc.name, quit, tc.quit)
			}
		})
	}
}

func TestMapGateKeyLeavesLettersToInput(t *testing.T) {
	km := NewKeyMapper()

	for _, r := range []rune{'q', 'w', ' '} {
		msg := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
		if action, quit := km.MapGateKey(msg); action != core.ActionNone || quit {
			t.Errorf("MapGateKey(%q) = %v, %v; expected none", r, action, quit)
		}
	}

	if action, _ := km.MapGateKey(tea.KeyMsg{Type: tea.KeyEnter}); action != core.ActionConfirm {
		t.Errorf("enter should confirm, got %v", action)
	}
	if _, quit := km.MapGateKey(tea.KeyMsg{Type: tea.KeyEsc}); !quit {
		t.Error("esc should quit at the name prompt")
	}
}

func TestMapMouse(t *testing.T) {
	km := NewKeyMapper()

	press := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	if got := km.MapMouse(press); got != core.ActionActivate {
		t.Errorf("left press = %v, expected Activate", got)
	}

	release := tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	if got := km.MapMouse(release); got != core.ActionNone {
		t.Errorf("release = %v, expected None", got)
	}

	right := tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight}
	if got := km.MapMouse(right); got != core.ActionNone {
		t.Errorf("right press = %v, expected None", got)
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, &frame) {
		t.Error("space is not a quit key")
	}
	if !frame.Has(core.ActionActivate) {
		t.Error("expected Activate in frame")
	}
}
