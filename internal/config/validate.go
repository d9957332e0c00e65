package config

import (
	"errors"
	"fmt"
)

// Validate reports every field that would break the simulation.
// The returned error joins one error per invalid field.
func (c RunnerConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %v", name, v))
		}
	}
	unit := func(name string, v float64) {
		if v < 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be within [0, 1], got %v", name, v))
		}
	}

	positive("world.width", c.World.Width)
	positive("world.height", c.World.Height)
	nonNegative("world.ground_height", c.World.GroundHeight)
	if c.World.GroundHeight >= c.World.Height {
		errs = append(errs, fmt.Errorf("world.ground_height (%v) must be below world.height (%v)",
			c.World.GroundHeight, c.World.Height))
	}

	positive("player.width", c.Player.Width)
	positive("player.height", c.Player.Height)
	nonNegative("player.x", c.Player.X)
	positive("player.hitbox_x", c.Player.HitboxX)
	positive("player.hitbox_y", c.Player.HitboxY)

	nonNegative("physics.gravity", c.Physics.Gravity)
	if c.Physics.JumpImpulse >= 0 {
		errs = append(errs, fmt.Errorf("physics.jump_impulse must be negative (upwards), got %v", c.Physics.JumpImpulse))
	}
	positive("physics.base_speed", c.Physics.BaseSpeed)
	positive("physics.speed_increment", c.Physics.SpeedIncrement)

	positive("obstacles.spacing", c.Obstacles.Spacing)
	if len(c.Obstacles.Patterns) == 0 {
		errs = append(errs, errors.New("obstacles.patterns must not be empty"))
	}
	for i, p := range c.Obstacles.Patterns {
		positive(fmt.Sprintf("obstacles.patterns[%d].height", i), p.Height)
		positive(fmt.Sprintf("obstacles.patterns[%d].width", i), p.Width)
	}

	positive("balloons.min_radius", c.Balloons.MinRadius)
	nonNegative("balloons.radius_range", c.Balloons.RadiusRange)
	nonNegative("balloons.min_y", c.Balloons.MinY)
	nonNegative("balloons.min_distance", c.Balloons.MinDistance)
	nonNegative("balloons.distance_range", c.Balloons.DistanceRange)
	unit("balloons.spawn_chance", c.Balloons.SpawnChance)
	unit("balloons.saturation", c.Balloons.Saturation)
	unit("balloons.lightness", c.Balloons.Lightness)
	unit("balloons.friction", c.Balloons.Friction)
	nonNegative("balloons.spring", c.Balloons.Spring)
	nonNegative("balloons.push_strength", c.Balloons.PushStrength)
	positive("balloons.hitbox_y", c.Balloons.HitboxY)
	nonNegative("balloons.cull_margin", c.Balloons.CullMargin)
	if c.Balloons.Bonus < 0 {
		errs = append(errs, fmt.Errorf("balloons.bonus must not be negative, got %d", c.Balloons.Bonus))
	}

	if c.Scoring.TicksPerPoint <= 0 {
		errs = append(errs, fmt.Errorf("scoring.ticks_per_point must be positive, got %d", c.Scoring.TicksPerPoint))
	}
	if c.Scoring.HighScoreKey == "" {
		errs = append(errs, errors.New("scoring.high_score_key must not be empty"))
	}
	if c.Scoring.DefaultName == "" {
		errs = append(errs, errors.New("scoring.default_name must not be empty"))
	}
	if c.Scoring.MaxNameLength <= 0 {
		errs = append(errs, fmt.Errorf("scoring.max_name_length must be positive, got %d", c.Scoring.MaxNameLength))
	}

	return errors.Join(errs...)
}
