package runner

import (
	"github.com/vovakirdan/funrun/internal/config"
	"github.com/vovakirdan/funrun/internal/geom"
)

// GameSpeed returns the scroll speed after frame ticks. The ramp is linear
// and uncapped.
func GameSpeed(frame int, phys config.PhysicsConfig) float64 {
	return phys.BaseSpeed + float64(frame)*phys.SpeedIncrement
}

// IntegratePlayer applies gravity with semi-implicit Euler: velocity first,
// then position.
func IntegratePlayer(p *Player, gravity float64) {
	p.VelocityY += gravity
	p.Y += p.VelocityY
}

// ResolveGround clamps the player onto the ground line. Landing zeroes the
// vertical velocity and clears the jumping flag. Reports whether the clamp
// was applied.
func ResolveGround(p *Player, groundY float64) bool {
	floor := groundY - p.Height
	if p.Y < floor {
		return false
	}
	p.Y = floor
	p.VelocityY = 0
	p.Jumping = false
	return true
}

// MoveObstacles scrolls obstacles left by speed and drops those whose right
// edge reached the left boundary. The slice is filtered in place.
func MoveObstacles(obs []Obstacle, speed, playerX float64) []Obstacle {
	kept := obs[:0]
	for _, o := range obs {
		o.X -= speed
		if o.X+o.Width <= 0 {
			continue
		}
		if o.X+o.Width < playerX {
			o.Passed = true
		}
		kept = append(kept, o)
	}
	return kept
}

// MoveBalloons applies knockback velocity plus scroll, friction, and the
// spring pulling each balloon back to its spawn height, then drops balloons
// that are fully off-screen.
func MoveBalloons(bs []Balloon, speed float64, cfg config.BalloonConfig) []Balloon {
	kept := bs[:0]
	for _, b := range bs {
		b.X += b.VelocityX - speed
		b.Y += b.VelocityY

		b.VelocityX *= cfg.Friction
		b.VelocityY *= cfg.Friction
		b.VelocityY += (b.OriginalY - b.Y) * cfg.Spring

		if b.X+b.Radius <= -cfg.CullMargin {
			continue
		}
		kept = append(kept, b)
	}
	return kept
}

// HitsObstacle reports whether the player's ellipse touches any obstacle.
func HitsObstacle(p Player, obs []Obstacle) bool {
	e := p.Ellipse()
	for _, o := range obs {
		if geom.EllipseIntersectsRect(e, o.Rect()) {
			return true
		}
	}
	return false
}

// HandleBalloonCollision scores b on its first contact with the player and
// knocks it away from the player's centre. A balloon that was already hit
// is ignored. Reports whether the balloon scored.
func HandleBalloonCollision(s *RunState, b *Balloon, cfg config.BalloonConfig) bool {
	if b.Hit {
		return false
	}

	pe := s.Player.Ellipse()
	if !geom.EllipseIntersectsEllipse(pe, b.Ellipse(cfg.HitboxY)) {
		return false
	}

	b.Hit = true
	s.BonusScore += cfg.Bonus

	d := b.Ellipse(cfg.HitboxY).Center().Sub(pe.Center())
	dist := d.Len()
	if dist == 0 {
		dist = 1
	}
	b.VelocityX += d.X / dist * cfg.PushStrength
	b.VelocityY += d.Y / dist * cfg.PushStrength
	return true
}
