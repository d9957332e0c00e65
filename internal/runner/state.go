// Package runner implements the endless-runner simulation: player physics,
// procedurally generated obstacles and balloons, collisions and scoring.
//
// A Game is driven one tick at a time by a single goroutine and never logs or
// performs I/O; persistence goes through the Persister collaborator.
package runner

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/funrun/internal/geom"
)

// Phase is the run lifecycle stage.
type Phase int

const (
	PhaseIdle    Phase = iota // before the first run
	PhaseRunning              // a run is in progress
	PhaseOver                 // the last run ended on an obstacle
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// Player is the runner's box. X never changes; Y grows downwards.
type Player struct {
	X, Y          float64
	Width, Height float64
	VelocityY     float64
	Jumping       bool

	HitboxX float64 // ellipse rx as a fraction of Width
	HitboxY float64 // ellipse ry as a fraction of Height
}

// Rect returns the player's bounding box.
func (p Player) Rect() geom.Rect {
	return geom.Rect{X: p.X, Y: p.Y, W: p.Width, H: p.Height}
}

// Ellipse returns the player's collision ellipse.
func (p Player) Ellipse() geom.Ellipse {
	return geom.ScaledEllipse(p.Rect(), p.HitboxX, p.HitboxY)
}

// Obstacle is a ground block scrolling towards the player.
type Obstacle struct {
	X, Y          float64
	Width, Height float64
	Passed        bool // right edge has scrolled behind the player
	Pattern       int  // index into the pattern table
}

// Rect returns the obstacle's collision box.
func (o Obstacle) Rect() geom.Rect {
	return geom.Rect{X: o.X, Y: o.Y, W: o.Width, H: o.Height}
}

// Balloon is a collectible floating above the ground.
type Balloon struct {
	X, Y      float64
	OriginalY float64 // spawn height the spring pulls back towards
	Radius    float64
	Hue       float64
	Color     colorful.Color
	Hit       bool
	VelocityX float64
	VelocityY float64
}

// Ellipse returns the balloon's collision ellipse; it is taller than wide
// by scaleY.
func (b Balloon) Ellipse(scaleY float64) geom.Ellipse {
	return geom.Ellipse{CX: b.X, CY: b.Y, RX: b.Radius, RY: b.Radius * scaleY}
}

// RunState is everything a run mutates. HighScore survives restarts;
// every other field is reset by StartGame.
type RunState struct {
	Phase         Phase
	FrameCount    int
	GameSpeed     float64
	Score         int
	BonusScore    int
	HighScore     int
	Obstacles     []Obstacle
	Balloons      []Balloon
	PatternCursor int
	Player        Player
}

// Running reports whether a run is in progress.
func (s *RunState) Running() bool { return s.Phase == PhaseRunning }

// Over reports whether the last run has ended.
func (s *RunState) Over() bool { return s.Phase == PhaseOver }
