package runner

import (
	"reflect"
	"strings"
	"testing"

	"github.com/vovakirdan/funrun/internal/config"
	"github.com/vovakirdan/funrun/internal/core"
)

func activate() core.InputFrame {
	f := core.NewInputFrame()
	f.Set(core.ActionActivate)
	return f
}

func TestNewGameStartsIdleWithGateOpen(t *testing.T) {
	g := New(config.DefaultRunnerConfig(), noBalloons())

	if g.Phase() != PhaseIdle {
		t.Errorf("phase = %v, expected idle", g.Phase())
	}
	if !g.GateOpen() {
		t.Error("name gate should start open")
	}
	if p := g.state.Player; p.Y != 250 || p.X != 80 {
		t.Errorf("player should start on the ground at (80, 250), got (%v, %v)", p.X, p.Y)
	}
}

func TestTenTicksScoreOne(t *testing.T) {
	g := newRunningGame(noBalloons())

	for i := 0; i < 10; i++ {
		g.Update()
	}

	if g.state.FrameCount != 10 {
		t.Errorf("frameCount = %d, expected 10", g.state.FrameCount)
	}
	if g.state.BonusScore != 0 {
		t.Errorf("bonusScore = %d, expected 0", g.state.BonusScore)
	}
	if g.state.Score != 1 {
		t.Errorf("score = %d, expected 1", g.state.Score)
	}
	if !g.state.Running() {
		t.Error("run should still be going")
	}
}

func TestJumpFromGround(t *testing.T) {
	g := newRunningGame(noBalloons())
	g.Update() // settle on the ground

	g.Jump()
	p := g.state.Player
	if p.VelocityY != -12 || !p.Jumping {
		t.Fatalf("after jump: vy=%v jumping=%v, expected -12/true", p.VelocityY, p.Jumping)
	}

	g.Jump()
	if g.state.Player.VelocityY != -12 {
		t.Errorf("second jump before landing changed vy to %v", g.state.Player.VelocityY)
	}

	g.Update()
	vy := g.state.Player.VelocityY
	g.Jump()
	if g.state.Player.VelocityY != vy {
		t.Error("jumping mid-air should have no effect")
	}
}

func TestJumpLandsAgain(t *testing.T) {
	g := newRunningGame(noBalloons())
	g.Jump()

	for i := 0; i < 200 && g.state.Player.Jumping; i++ {
		g.Update()
	}
	p := g.state.Player
	if p.Jumping || p.Y != 250 || p.VelocityY != 0 {
		t.Errorf("player should have landed, got %+v", p)
	}
}

func TestNameGateAbsorbsInput(t *testing.T) {
	g := New(config.DefaultRunnerConfig(), noBalloons())

	res := g.Step(activate())
	if g.Phase() != PhaseIdle || res.State.Running || res.Events.RunStarted {
		t.Fatal("activate with the gate open must not start a run")
	}
	if g.state.FrameCount != 0 {
		t.Errorf("frameCount = %d, expected 0", g.state.FrameCount)
	}

	g.ConfirmName("  Misty  ")
	if g.GateOpen() {
		t.Fatal("gate should close after ConfirmName")
	}
	if g.PlayerName() != "Misty" {
		t.Errorf("name = %q, expected Misty", g.PlayerName())
	}

	g.ConfirmName("Brock")
	if g.PlayerName() != "Misty" {
		t.Errorf("name changed after the gate closed: %q", g.PlayerName())
	}

	res = g.Step(activate())
	if !res.Events.RunStarted || !res.State.Running {
		t.Error("activate after the gate should start a run")
	}
	if g.state.FrameCount != 1 {
		t.Errorf("the starting step should tick once, got frame %d", g.state.FrameCount)
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected string
	}{
		{"blank", "   ", "Player"},
		{"empty", "", "Player"},
		{"trimmed", "\tAsh \n", "Ash"},
		{"capped", strings.Repeat("a", 40), strings.Repeat("a", 32)},
		{"multibyte capped by rune", strings.Repeat("é", 33), strings.Repeat("é", 32)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeName(tc.in, "Player", 32); got != tc.expected {
				t.Errorf("NormalizeName(%q) = %q, expected %q", tc.in, got, tc.expected)
			}
		})
	}
}

func TestObstacleEndsRunAndPersistsOnce(t *testing.T) {
	g := newRunningGame(noBalloons())
	p := &fakePersister{}
	g.SetPersister(p)

	runUntilOver(g, 10000)

	if !g.state.Over() || g.state.Running() {
		t.Fatalf("expected over, got phase %v", g.Phase())
	}
	score := g.state.Score
	if score <= 0 {
		t.Fatalf("expected a positive score, got %d", score)
	}
	if g.state.HighScore != score {
		t.Errorf("highScore = %d, expected %d", g.state.HighScore, score)
	}
	if len(p.highScores) != 1 || p.highScores[0] != score {
		t.Errorf("expected one PersistHighScore(%d), got %v", score, p.highScores)
	}
	if len(p.submitted) != 1 || p.submitted[0] != (submission{"Ash", score}) {
		t.Errorf("expected one submission, got %v", p.submitted)
	}

	// An over game ignores further ticks.
	frame := g.state.FrameCount
	for i := 0; i < 10; i++ {
		g.Update()
	}
	if g.state.FrameCount != frame || len(p.highScores) != 1 {
		t.Error("updates after game over should do nothing")
	}
}

func TestRestartKeepsHighScoreAndName(t *testing.T) {
	g := newRunningGame(noBalloons())
	p := &fakePersister{}
	g.SetPersister(p)

	runUntilOver(g, 10000)
	first := g.state.HighScore

	res := g.Step(activate())
	if !res.Events.RunStarted {
		t.Fatal("activate while over should restart")
	}
	if g.state.HighScore != first {
		t.Errorf("highScore = %d after restart, expected %d", g.state.HighScore, first)
	}
	if g.PlayerName() != "Ash" {
		t.Errorf("name = %q after restart", g.PlayerName())
	}
	if g.state.FrameCount != 1 || g.state.BonusScore != 0 || g.state.PatternCursor != 1 {
		t.Errorf("transient state not reset: %+v", g.state)
	}

	// The replay runs into the same obstacle for the same score: no new record.
	runUntilOver(g, 10000)
	if g.state.Score != first {
		t.Errorf("replayed run scored %d, expected %d", g.state.Score, first)
	}
	if len(p.highScores) != 1 {
		t.Errorf("equal score must not persist again, got %v", p.highScores)
	}
	if len(p.submitted) != 2 {
		t.Errorf("every finished run is submitted, got %v", p.submitted)
	}
}

func TestEndGameBelowHighScore(t *testing.T) {
	g := newRunningGame(noBalloons())
	p := &fakePersister{}
	g.SetPersister(p)
	g.SetHighScore(1000)

	runUntilOver(g, 10000)
	if g.state.HighScore != 1000 {
		t.Errorf("highScore = %d, expected 1000", g.state.HighScore)
	}
	if len(p.highScores) != 0 {
		t.Errorf("no record expected, got %v", p.highScores)
	}
}

func TestBalloonHitThroughUpdate(t *testing.T) {
	g := newRunningGame(noBalloons())
	g.state.Balloons = append(g.state.Balloons, Balloon{
		X: 154, Y: 290, OriginalY: 290, Radius: 20,
	})

	res := g.Step(core.InputFrame{})
	if res.Events.BalloonsPopped != 1 {
		t.Fatalf("expected one pop, got %d", res.Events.BalloonsPopped)
	}
	b := g.state.Balloons[0]
	if !b.Hit || g.state.BonusScore != 25 {
		t.Errorf("hit=%v bonus=%d", b.Hit, g.state.BonusScore)
	}
	if res.State.Score != 25 {
		t.Errorf("score = %d, expected 25 including the bonus", res.State.Score)
	}
	if b.VelocityX <= 0 {
		t.Errorf("balloon right of the player should be pushed right, vx=%v", b.VelocityX)
	}

	for i := 0; i < 5; i++ {
		res = g.Step(core.InputFrame{})
		if res.Events.BalloonsPopped != 0 {
			t.Fatal("a hit balloon popped again")
		}
	}
	if g.state.BonusScore != 25 {
		t.Errorf("bonus = %d, expected 25", g.state.BonusScore)
	}
}

func TestObstacleHitPreemptsBalloonBonus(t *testing.T) {
	g := newRunningGame(noBalloons())
	g.state.Obstacles = []Obstacle{{X: 124, Y: 310, Width: 30, Height: 40}}
	g.state.Balloons = []Balloon{{X: 154, Y: 290, OriginalY: 290, Radius: 20}}

	res := g.Step(core.InputFrame{})
	if !res.Events.RunEnded {
		t.Fatal("expected the obstacle to end the run")
	}
	if res.Events.BalloonsPopped != 0 || g.state.BonusScore != 0 || g.state.Balloons[0].Hit {
		t.Error("a balloon must not score on the tick an obstacle ends the run")
	}
}

func TestScoreInvariantWhileRunning(t *testing.T) {
	g := newRunningGame(NewRand(7))

	for i := 0; i < 5000 && g.state.Running(); i++ {
		in := core.InputFrame{}
		if i%45 == 0 {
			in = activate()
		}
		g.Step(in)
		if !g.state.Running() {
			break
		}
		want := g.state.FrameCount/10 + g.state.BonusScore
		if g.state.Score != want {
			t.Fatalf("tick %d: score = %d, expected %d", i, g.state.Score, want)
		}
	}
}

func TestDeterministicReplay(t *testing.T) {
	play := func() Snapshot {
		g := newRunningGame(NewRand(42))
		for i := 0; i < 3000; i++ {
			in := core.InputFrame{}
			if i%37 == 0 {
				in = activate()
			}
			g.Step(in)
		}
		return g.Snapshot()
	}

	a, b := play(), play()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs should produce identical snapshots")
	}
}

func TestSnapshotIsDeepCopy(t *testing.T) {
	g := newRunningGame(noBalloons())
	g.Update()

	snap := g.Snapshot()
	if len(snap.Obstacles) == 0 {
		t.Fatal("expected an obstacle after the first tick")
	}
	snap.Obstacles[0].X = -999
	snap.Player.Y = 0

	if g.state.Obstacles[0].X == -999 || g.state.Player.Y == 0 {
		t.Error("mutating the snapshot leaked into the game")
	}
	if snap.PlayerName != "Ash" || snap.World.Width != 800 {
		t.Errorf("unexpected snapshot metadata %q %v", snap.PlayerName, snap.World.Width)
	}
}
