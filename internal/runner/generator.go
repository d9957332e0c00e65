package runner

import (
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/vovakirdan/funrun/internal/config"
)

// RandSource supplies uniform draws in [0, 1).
// *rand.Rand satisfies it; tests inject scripted sources.
type RandSource interface {
	Float64() float64
}

// NewRand returns a seeded RandSource.
func NewRand(seed int64) RandSource {
	return rand.New(rand.NewSource(seed))
}

// NextObstacle returns the pattern at cursor and the advanced cursor.
// The sequence is periodic in len(patterns) and depends only on cursor.
func NextObstacle(patterns []config.Pattern, cursor int) (config.Pattern, int) {
	n := len(patterns)
	if n == 0 {
		return config.Pattern{}, cursor + 1
	}
	idx := ((cursor % n) + n) % n
	return patterns[idx], cursor + 1
}

// Generator spawns obstacles and balloons into a RunState.
type Generator struct {
	world    config.WorldConfig
	player   config.PlayerConfig
	obstacle config.ObstacleConfig
	balloon  config.BalloonConfig
	rng      RandSource
}

// NewGenerator creates a generator drawing randomness from rng.
func NewGenerator(cfg config.RunnerConfig, rng RandSource) *Generator {
	return &Generator{
		world:    cfg.World,
		player:   cfg.Player,
		obstacle: cfg.Obstacles,
		balloon:  cfg.Balloons,
		rng:      rng,
	}
}

// SpawnObstacle appends the next pattern at the right edge when the trailing
// obstacle has scrolled past the fixed spacing. Reports whether it spawned.
func (g *Generator) SpawnObstacle(s *RunState) bool {
	if n := len(s.Obstacles); n > 0 && s.Obstacles[n-1].X >= g.world.Width-g.obstacle.Spacing {
		return false
	}

	idx := s.PatternCursor
	pattern, next := NextObstacle(g.obstacle.Patterns, s.PatternCursor)
	s.PatternCursor = next

	s.Obstacles = append(s.Obstacles, Obstacle{
		X:       g.world.Width,
		Y:       g.world.GroundY() - pattern.Height,
		Width:   pattern.Width,
		Height:  pattern.Height,
		Pattern: idx % max(len(g.obstacle.Patterns), 1),
	})
	return true
}

// SpawnBalloon rolls a fresh minimum distance every call; when the trailing
// balloon is far enough away a second roll decides whether one appears.
func (g *Generator) SpawnBalloon(s *RunState) bool {
	minDistance := g.balloon.MinDistance + g.rng.Float64()*g.balloon.DistanceRange

	if n := len(s.Balloons); n > 0 && s.Balloons[n-1].X >= g.world.Width-minDistance {
		return false
	}
	if g.rng.Float64() >= g.balloon.SpawnChance {
		return false
	}

	s.Balloons = append(s.Balloons, g.NewBalloon())
	return true
}

// NewBalloon builds a balloon just beyond the right edge. Its height is
// drawn within the band the player's jump can reach.
func (g *Generator) NewBalloon() Balloon {
	radius := g.balloon.MinRadius + g.rng.Float64()*g.balloon.RadiusRange

	minY := g.balloon.MinY
	maxY := g.world.GroundY() - g.player.Height - radius*2
	y := minY + g.rng.Float64()*(maxY-minY)

	hue := g.rng.Float64() * 360

	return Balloon{
		X:         g.world.Width + radius,
		Y:         y,
		OriginalY: y,
		Radius:    radius,
		Hue:       hue,
		Color:     colorful.Hsl(hue, g.balloon.Saturation, g.balloon.Lightness),
	}
}
