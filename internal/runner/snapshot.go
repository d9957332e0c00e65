package runner

import (
	"slices"

	"github.com/vovakirdan/funrun/internal/config"
)

// Snapshot is a read-only copy of the game handed to the renderer.
// It shares no memory with the Game.
type Snapshot struct {
	Phase      Phase
	GateOpen   bool
	PlayerName string
	Player     Player
	Obstacles  []Obstacle
	Balloons   []Balloon
	Score      int
	HighScore  int
	FrameCount int
	GameSpeed  float64
	World      config.WorldConfig
	BalloonRY  float64 // balloon ellipse ry as a multiple of radius
}

// Snapshot deep-copies the current state.
func (g *Game) Snapshot() Snapshot {
	s := &g.state
	return Snapshot{
		Phase:      s.Phase,
		GateOpen:   g.gateOpen,
		PlayerName: g.PlayerName(),
		Player:     s.Player,
		Obstacles:  slices.Clone(s.Obstacles),
		Balloons:   slices.Clone(s.Balloons),
		Score:      s.Score,
		HighScore:  s.HighScore,
		FrameCount: s.FrameCount,
		GameSpeed:  s.GameSpeed,
		World:      g.cfg.World,
		BalloonRY:  g.cfg.Balloons.HitboxY,
	}
}
