package runner

import (
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/funrun/internal/core"
)

// HandleInput maps a frame's actions onto game commands. Only
// ActionActivate reaches the simulation; the name is confirmed through
// ConfirmName because it carries text.
func (g *Game) HandleInput(in core.InputFrame) {
	if in.Has(core.ActionActivate) {
		g.Jump()
	}
}

// Jump is the activate command. It is absorbed while the name gate is
// open, starts a run from idle or over, and otherwise jumps if the player
// is on the ground.
func (g *Game) Jump() {
	if g.gateOpen {
		return
	}
	if g.state.Phase != PhaseRunning {
		g.StartGame()
		return
	}
	p := &g.state.Player
	if !p.Jumping {
		p.VelocityY = g.cfg.Physics.JumpImpulse
		p.Jumping = true
	}
}

// ConfirmName closes the name gate. Later calls are ignored: the name is
// fixed for the session.
func (g *Game) ConfirmName(text string) {
	if !g.gateOpen {
		return
	}
	g.name = NormalizeName(text, g.cfg.Scoring.DefaultName, g.cfg.Scoring.MaxNameLength)
	g.gateOpen = false
}

// GateOpen reports whether the name gate still blocks input.
func (g *Game) GateOpen() bool {
	return g.gateOpen
}

// PlayerName returns the confirmed name, or the default if the gate is
// still open.
func (g *Game) PlayerName() string {
	if g.gateOpen {
		return g.cfg.Scoring.DefaultName
	}
	return g.name
}

// NormalizeName trims text and caps it at maxRunes runes. Blank input
// becomes def.
func NormalizeName(text, def string, maxRunes int) string {
	name := strings.TrimSpace(text)
	if name == "" {
		return def
	}
	if maxRunes > 0 && utf8.RuneCountInString(name) > maxRunes {
		name = strings.TrimSpace(string([]rune(name)[:maxRunes]))
	}
	return name
}
