package config

import (
	_ "embed"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultRunnerConfig returns the built-in runner tuning.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		World: WorldConfig{
			Width:        800,
			Height:       400,
			GroundHeight: 50,
		},
		Player: PlayerConfig{
			X:       80,
			Width:   100,
			Height:  100,
			HitboxX: 0.35,
			HitboxY: 0.45,
		},
		Physics: PhysicsConfig{
			Gravity:        0.4,
			JumpImpulse:    -12,
			BaseSpeed:      4,
			SpeedIncrement: 0.0005,
		},
		Obstacles: ObstacleConfig{
			Spacing: 400,
			Patterns: []Pattern{
				{Height: 40, Width: 30},
				{Height: 50, Width: 25},
				{Height: 35, Width: 35},
				{Height: 55, Width: 28},
				{Height: 45, Width: 32},
				{Height: 60, Width: 25},
				{Height: 38, Width: 30},
				{Height: 52, Width: 27},
			},
		},
		Balloons: BalloonConfig{
			MinRadius:     20,
			RadiusRange:   10,
			MinY:          60,
			MinDistance:   200,
			DistanceRange: 150,
			SpawnChance:   0.015,
			Saturation:    0.7,
			Lightness:     0.6,
			Friction:      0.95,
			Spring:        0.02,
			PushStrength:  8,
			HitboxY:       1.2,
			CullMargin:    50,
			Bonus:         25,
		},
		Scoring: ScoringConfig{
			TicksPerPoint: 10,
			HighScoreKey:  "runnerHighScore",
			DefaultName:   "Player",
			MaxNameLength: 32,
		},
	}
}

// DefaultRunnerYAML returns the embedded default YAML as a template for
// user config files.
func DefaultRunnerYAML() []byte {
	return defaultRunnerYAML
}
