package runner

import (
	"github.com/vovakirdan/funrun/internal/config"
)

// scriptedRand replays a fixed sequence of draws, cycling when exhausted.
type scriptedRand struct {
	vals  []float64
	calls int
}

func (r *scriptedRand) Float64() float64 {
	if len(r.vals) == 0 {
		return 0.99
	}
	v := r.vals[r.calls%len(r.vals)]
	r.calls++
	return v
}

// noBalloons never passes the spawn chance roll.
func noBalloons() *scriptedRand {
	return &scriptedRand{vals: []float64{0.99}}
}

type fakePersister struct {
	highScores []int
	submitted  []submission
}

type submission struct {
	name  string
	score int
}

func (f *fakePersister) PersistHighScore(score int) {
	f.highScores = append(f.highScores, score)
}

func (f *fakePersister) SubmitScore(name string, score int) {
	f.submitted = append(f.submitted, submission{name: name, score: score})
}

// newRunningGame returns a game past the name gate with a run in progress.
func newRunningGame(rng RandSource) *Game {
	g := New(config.DefaultRunnerConfig(), rng)
	g.ConfirmName("Ash")
	g.StartGame()
	return g
}

// runUntilOver ticks until the run ends or limit ticks pass.
func runUntilOver(g *Game, limit int) int {
	for i := 0; i < limit; i++ {
		if g.Phase() != PhaseRunning {
			return i
		}
		g.Update()
	}
	return limit
}
