package runner

import (
	"math"
	"testing"

	"github.com/vovakirdan/funrun/internal/config"
)

func TestGameSpeedStrictlyIncreases(t *testing.T) {
	phys := config.DefaultRunnerConfig().Physics

	if GameSpeed(0, phys) != 4 {
		t.Errorf("speed at frame 0 = %v, expected 4", GameSpeed(0, phys))
	}
	prev := GameSpeed(0, phys)
	for frame := 1; frame <= 100000; frame++ {
		cur := GameSpeed(frame, phys)
		if cur <= prev {
			t.Fatalf("speed did not increase at frame %d: %v -> %v", frame, prev, cur)
		}
		prev = cur
	}
}

func TestIntegratePlayerAndGround(t *testing.T) {
	p := Player{Y: 250, Height: 100, VelocityY: -12, Jumping: true}

	IntegratePlayer(&p, 0.4)
	if math.Abs(p.VelocityY-(-11.6)) > 1e-9 || math.Abs(p.Y-238.4) > 1e-9 {
		t.Errorf("after one step: y=%v vy=%v", p.Y, p.VelocityY)
	}
	if ResolveGround(&p, 350) {
		t.Error("player in the air should not be clamped")
	}

	p.Y = 260
	p.VelocityY = 5
	if !ResolveGround(&p, 350) {
		t.Fatal("expected ground clamp")
	}
	if p.Y != 250 || p.VelocityY != 0 || p.Jumping {
		t.Errorf("after landing: %+v", p)
	}
}

func TestMoveObstaclesCullsOffscreen(t *testing.T) {
	obs := []Obstacle{{X: 800, Y: 310, Width: 30, Height: 40}}

	ticks := 0
	for len(obs) > 0 {
		obs = MoveObstacles(obs, 4, 80)
		ticks++
		if ticks > 1000 {
			t.Fatal("obstacle never culled")
		}
	}
	// 800 + 30 = 830 px to cover at 4 px/tick.
	if ticks != 208 {
		t.Errorf("culled after %d ticks, expected 208", ticks)
	}
}

func TestMoveObstaclesMarksPassed(t *testing.T) {
	obs := MoveObstacles([]Obstacle{{X: 100, Width: 30}, {X: 40, Width: 30}}, 10, 80)
	if obs[0].Passed {
		t.Error("obstacle still overlapping the player x should not be passed")
	}
	if !obs[1].Passed {
		t.Error("obstacle behind the player should be passed")
	}
}

func TestMoveBalloonsSpring(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Balloons
	bs := []Balloon{{X: 500, Y: 100, OriginalY: 100, Radius: 20, VelocityY: 8}}

	bs = MoveBalloons(bs, 4, cfg)
	b := bs[0]
	if b.X != 496 {
		t.Errorf("x = %v, expected 496", b.X)
	}
	if b.Y != 108 {
		t.Errorf("y = %v, expected 108", b.Y)
	}
	// 8*0.95 + (100-108)*0.02
	if math.Abs(b.VelocityY-7.44) > 1e-9 {
		t.Errorf("vy = %v, expected 7.44", b.VelocityY)
	}

	// The spring eventually pulls the balloon back towards its spawn height.
	for i := 0; i < 400; i++ {
		bs[0].X = 500
		bs = MoveBalloons(bs, 0, cfg)
	}
	if math.Abs(bs[0].Y-100) > 0.5 {
		t.Errorf("balloon should settle near 100, got %v", bs[0].Y)
	}
}

func TestMoveBalloonsCull(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Balloons
	bs := []Balloon{
		{X: -69, Radius: 20}, // -73 + 20 = -53 after the move
		{X: -60, Radius: 20}, // -64 + 20 = -44
	}

	bs = MoveBalloons(bs, 4, cfg)
	if len(bs) != 1 || bs[0].X != -64 {
		t.Errorf("expected only the second balloon to survive, got %+v", bs)
	}
}

func groundedState() *RunState {
	return &RunState{
		Phase: PhaseRunning,
		Player: Player{
			X: 80, Y: 250, Width: 100, Height: 100,
			HitboxX: 0.35, HitboxY: 0.45,
		},
	}
}

func TestHandleBalloonCollisionScoresOnce(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Balloons
	s := groundedState()
	b := Balloon{X: 150, Y: 290, OriginalY: 290, Radius: 20}

	if !HandleBalloonCollision(s, &b, cfg) {
		t.Fatal("expected overlapping balloon to score")
	}
	if !b.Hit || s.BonusScore != 25 {
		t.Errorf("hit=%v bonus=%d, expected true/25", b.Hit, s.BonusScore)
	}

	// Away from the player centre (130, 300): d = (20, -10).
	if b.VelocityX <= 0 || b.VelocityY >= 0 {
		t.Errorf("velocity (%v, %v) should point away from the player", b.VelocityX, b.VelocityY)
	}
	speed := math.Hypot(b.VelocityX, b.VelocityY)
	if math.Abs(speed-8) > 1e-9 {
		t.Errorf("push magnitude = %v, expected 8", speed)
	}

	if HandleBalloonCollision(s, &b, cfg) {
		t.Error("a hit balloon must not score again")
	}
	if s.BonusScore != 25 {
		t.Errorf("bonus = %d after second pass, expected 25", s.BonusScore)
	}
}

func TestHandleBalloonCollisionMiss(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Balloons
	s := groundedState()
	b := Balloon{X: 600, Y: 100, Radius: 20}

	if HandleBalloonCollision(s, &b, cfg) || b.Hit || s.BonusScore != 0 {
		t.Errorf("distant balloon should not score: %+v bonus=%d", b, s.BonusScore)
	}
}

func TestHandleBalloonCollisionCoincidentCentres(t *testing.T) {
	cfg := config.DefaultRunnerConfig().Balloons
	s := groundedState()
	b := Balloon{X: 130, Y: 300, Radius: 20}

	if !HandleBalloonCollision(s, &b, cfg) {
		t.Fatal("expected hit")
	}
	if math.IsNaN(b.VelocityX) || math.IsNaN(b.VelocityY) {
		t.Errorf("coincident centres produced NaN velocity (%v, %v)", b.VelocityX, b.VelocityY)
	}
}

func TestHitsObstacle(t *testing.T) {
	p := groundedState().Player

	if !HitsObstacle(p, []Obstacle{{X: 120, Y: 310, Width: 30, Height: 40}}) {
		t.Error("obstacle under the player should collide")
	}
	if HitsObstacle(p, []Obstacle{{X: 170, Y: 310, Width: 30, Height: 40}}) {
		t.Error("obstacle past the ellipse should not collide")
	}
	if HitsObstacle(p, nil) {
		t.Error("no obstacles, no collision")
	}
}
