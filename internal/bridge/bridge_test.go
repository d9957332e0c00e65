package bridge

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vovakirdan/funrun/internal/storage"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Backoff = 0
	return cfg
}

// flakyStore fails the first failures calls.
type flakyStore struct {
	mu       sync.Mutex
	failures int
	calls    int
	saved    []int
}

func (f *flakyStore) SaveHighScore(_ context.Context, _ string, value int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return errors.New("disk on fire")
	}
	f.saved = append(f.saved, value)
	return nil
}

// gatedBoard blocks every submission until release is closed.
type gatedBoard struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once

	mu    sync.Mutex
	users []string
}

func newGatedBoard() *gatedBoard {
	return &gatedBoard{started: make(chan struct{}), release: make(chan struct{})}
}

func (g *gatedBoard) SubmitScore(_ context.Context, user string, score int) (storage.Score, error) {
	g.once.Do(func() { close(g.started) })
	<-g.release
	g.mu.Lock()
	g.users = append(g.users, user)
	g.mu.Unlock()
	return storage.Score{User: user, Score: score}, nil
}

func (g *gatedBoard) ListScores(context.Context, int) ([]storage.Score, error) {
	return nil, nil
}

func TestBridgeDeliversToStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	b := New(testConfig(), store, store, nil)
	b.PersistHighScore(50)
	b.SubmitScore("ash", 50)
	b.Close()

	ctx := context.Background()
	if v, _ := store.LoadHighScore(ctx, "runnerHighScore"); v != 50 {
		t.Errorf("expected persisted high score 50, got %d", v)
	}
	scores, err := b.ListScores(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(scores) != 1 || scores[0].User != "ash" || scores[0].Score != 50 {
		t.Errorf("unexpected leaderboard %+v", scores)
	}
	if st := b.Stats(); st.Delivered != 2 || st.Failed != 0 || st.Dropped != 0 {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestBridgeRetries(t *testing.T) {
	local := &flakyStore{failures: 2}
	b := New(testConfig(), local, nil, nil)

	b.PersistHighScore(99)
	b.Close()

	if local.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", local.calls)
	}
	if len(local.saved) != 1 || local.saved[0] != 99 {
		t.Errorf("expected 99 saved once, got %v", local.saved)
	}
	if st := b.Stats(); st.Delivered != 1 || st.Failed != 0 {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestBridgeGivesUp(t *testing.T) {
	local := &flakyStore{failures: 100}
	b := New(testConfig(), local, nil, nil)

	b.PersistHighScore(10)
	b.Close()

	if local.calls != 3 {
		t.Errorf("expected 3 attempts, got %d", local.calls)
	}
	if st := b.Stats(); st.Failed != 1 || st.Delivered != 0 {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestBridgeDropsWhenFull(t *testing.T) {
	board := newGatedBoard()
	cfg := testConfig()
	cfg.QueueSize = 1
	b := New(cfg, nil, board, nil)

	b.SubmitScore("first", 1)
	<-board.started // worker holds the first job

	b.SubmitScore("second", 2) // fills the queue
	b.SubmitScore("third", 3)  // dropped

	close(board.release)
	b.Close()

	if st := b.Stats(); st.Dropped != 1 || st.Delivered != 2 {
		t.Errorf("unexpected stats %+v", st)
	}
	if len(board.users) != 2 || board.users[0] != "first" || board.users[1] != "second" {
		t.Errorf("unexpected deliveries %v", board.users)
	}
}

func TestBridgeAfterClose(t *testing.T) {
	local := &flakyStore{}
	b := New(testConfig(), local, nil, nil)
	b.Close()
	b.Close() // idempotent

	b.PersistHighScore(5)
	if local.calls != 0 {
		t.Error("writes after Close must not be delivered")
	}
	if b.Stats().Dropped != 1 {
		t.Errorf("expected one drop, got %+v", b.Stats())
	}
}

func TestBridgeWithoutSinks(t *testing.T) {
	b := New(testConfig(), nil, nil, nil)
	b.PersistHighScore(1)
	b.SubmitScore("ash", 1)
	b.Close()

	if st := b.Stats(); st != (Stats{}) {
		t.Errorf("writes with no sink should be skipped, got %+v", st)
	}
	if _, err := b.ListScores(context.Background(), 5); err == nil {
		t.Error("expected error listing without a leaderboard")
	}
}
