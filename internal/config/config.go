// Package config provides YAML-based tuning for the runner simulation.
// Every value has an embedded default; a user file only needs to override
// the fields it changes.
package config

// RunnerConfig contains all tuning for one runner session.
type RunnerConfig struct {
	World     WorldConfig    `yaml:"world"`
	Player    PlayerConfig   `yaml:"player"`
	Physics   PhysicsConfig  `yaml:"physics"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Balloons  BalloonConfig  `yaml:"balloons"`
	Scoring   ScoringConfig  `yaml:"scoring"`
	Assets    AssetsConfig   `yaml:"assets"`
}

// WorldConfig defines the logical canvas, in world pixels.
type WorldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
}

// GroundY returns the y coordinate of the ground line.
func (w WorldConfig) GroundY() float64 {
	return w.Height - w.GroundHeight
}

// PlayerConfig defines the player's box and collision ellipse scale.
type PlayerConfig struct {
	X       float64 `yaml:"x"`
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	HitboxX float64 `yaml:"hitbox_x"` // ellipse rx as a fraction of width
	HitboxY float64 `yaml:"hitbox_y"` // ellipse ry as a fraction of height
}

// PhysicsConfig defines gravity, jump and scroll speed.
type PhysicsConfig struct {
	Gravity        float64 `yaml:"gravity"`
	JumpImpulse    float64 `yaml:"jump_impulse"`
	BaseSpeed      float64 `yaml:"base_speed"`
	SpeedIncrement float64 `yaml:"speed_increment"` // added per elapsed tick, uncapped
}

// Pattern is one obstacle shape in the deterministic sequence.
type Pattern struct {
	Height float64 `yaml:"height"`
	Width  float64 `yaml:"width"`
}

// ObstacleConfig defines the obstacle cadence and shape sequence.
type ObstacleConfig struct {
	Spacing  float64   `yaml:"spacing"`
	Patterns []Pattern `yaml:"patterns"`
}

// BalloonConfig defines balloon spawning, motion and scoring.
type BalloonConfig struct {
	MinRadius     float64 `yaml:"min_radius"`
	RadiusRange   float64 `yaml:"radius_range"`
	MinY          float64 `yaml:"min_y"`
	MinDistance   float64 `yaml:"min_distance"`
	DistanceRange float64 `yaml:"distance_range"`
	SpawnChance   float64 `yaml:"spawn_chance"`
	Saturation    float64 `yaml:"saturation"`
	Lightness     float64 `yaml:"lightness"`
	Friction      float64 `yaml:"friction"`
	Spring        float64 `yaml:"spring"`
	PushStrength  float64 `yaml:"push_strength"`
	HitboxY       float64 `yaml:"hitbox_y"` // ellipse ry as a multiple of radius
	CullMargin    float64 `yaml:"cull_margin"`
	Bonus         int     `yaml:"bonus"`
}

// ScoringConfig defines score accrual and session identity.
type ScoringConfig struct {
	TicksPerPoint int    `yaml:"ticks_per_point"`
	HighScoreKey  string `yaml:"high_score_key"`
	DefaultName   string `yaml:"default_name"`
	MaxNameLength int    `yaml:"max_name_length"`
}

// AssetsConfig points at optional sprite files. Empty paths use the
// built-in sprites.
type AssetsConfig struct {
	PlayerSprite   string `yaml:"player_sprite"`
	ObstacleSprite string `yaml:"obstacle_sprite"`
}
