package runner

import (
	"github.com/vovakirdan/funrun/internal/config"
	"github.com/vovakirdan/funrun/internal/core"
)

// Persister receives score writes. Implementations must not block: the
// calls happen on the tick path.
type Persister interface {
	// PersistHighScore records a new personal best.
	PersistHighScore(score int)
	// SubmitScore posts a finished run to the leaderboard.
	SubmitScore(name string, score int)
}

// Game owns one session's RunState, the name gate and the generator.
// It is not safe for concurrent use.
type Game struct {
	cfg       config.RunnerConfig
	gen       *Generator
	persister Persister

	state    RunState
	name     string
	gateOpen bool
	events   core.Events
}

// New creates an idle game with the name gate open.
func New(cfg config.RunnerConfig, rng RandSource) *Game {
	g := &Game{
		cfg:      cfg,
		gen:      NewGenerator(cfg, rng),
		gateOpen: true,
	}
	g.resetRun()
	g.state.Phase = PhaseIdle
	return g
}

// SetPersister attaches the score sink. A nil persister disables writes.
func (g *Game) SetPersister(p Persister) {
	g.persister = p
}

// SetHighScore seeds the persisted high score. Call once at load.
func (g *Game) SetHighScore(score int) {
	g.state.HighScore = max(score, 0)
}

// Config returns the tuning the game was created with.
func (g *Game) Config() config.RunnerConfig {
	return g.cfg
}

// StartGame begins a fresh run from idle or over. HighScore and the player
// name are kept.
func (g *Game) StartGame() {
	g.resetRun()
	g.state.Phase = PhaseRunning
	g.events.RunStarted = true
}

func (g *Game) resetRun() {
	pc := g.cfg.Player
	g.state = RunState{
		HighScore: g.state.HighScore,
		GameSpeed: g.cfg.Physics.BaseSpeed,
		Obstacles: g.state.Obstacles[:0],
		Balloons:  g.state.Balloons[:0],
		Player: Player{
			X:       pc.X,
			Y:       g.cfg.World.GroundY() - pc.Height,
			Width:   pc.Width,
			Height:  pc.Height,
			HitboxX: pc.HitboxX,
			HitboxY: pc.HitboxY,
		},
	}
}

// EndGame freezes the current run. A score above the high score is
// committed and persisted once; any positive score is submitted to the
// leaderboard.
func (g *Game) EndGame() {
	if g.state.Phase != PhaseRunning {
		return
	}
	g.state.Phase = PhaseOver
	g.events.RunEnded = true

	score := g.state.Score
	if score > g.state.HighScore {
		g.state.HighScore = score
		g.events.NewHighScore = true
		if g.persister != nil {
			g.persister.PersistHighScore(score)
		}
	}
	if score > 0 && g.persister != nil {
		g.persister.SubmitScore(g.PlayerName(), score)
	}
}

// Update advances a running game by one tick. The order of the steps is
// fixed: an obstacle hit ends the run before any balloon is scored.
func (g *Game) Update() {
	s := &g.state
	if s.Phase != PhaseRunning {
		return
	}

	s.FrameCount++
	s.GameSpeed = GameSpeed(s.FrameCount, g.cfg.Physics)
	g.recomputeScore()

	IntegratePlayer(&s.Player, g.cfg.Physics.Gravity)
	ResolveGround(&s.Player, g.cfg.World.GroundY())

	s.Obstacles = MoveObstacles(s.Obstacles, s.GameSpeed, s.Player.X)
	g.gen.SpawnObstacle(s)

	s.Balloons = MoveBalloons(s.Balloons, s.GameSpeed, g.cfg.Balloons)
	g.gen.SpawnBalloon(s)

	if HitsObstacle(s.Player, s.Obstacles) {
		g.EndGame()
		return
	}

	popped := 0
	for i := range s.Balloons {
		if HandleBalloonCollision(s, &s.Balloons[i], g.cfg.Balloons) {
			popped++
		}
	}
	if popped > 0 {
		g.events.BalloonsPopped += popped
		g.recomputeScore()
	}
}

func (g *Game) recomputeScore() {
	g.state.Score = g.state.FrameCount/g.cfg.Scoring.TicksPerPoint + g.state.BonusScore
}

// Step applies one frame of input and then advances the simulation.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = core.Events{}
	g.HandleInput(in)
	g.Update()
	return core.StepResult{State: g.State(), Events: g.events}
}

// State returns the summary the platform needs after a tick.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:     g.state.Score,
		HighScore: g.state.HighScore,
		Running:   g.state.Running(),
		Over:      g.state.Over(),
	}
}

// Phase returns the current lifecycle stage.
func (g *Game) Phase() Phase {
	return g.state.Phase
}
