// Package bridge moves score writes off the simulation tick. The game calls
// PersistHighScore and SubmitScore with plain values; a background goroutine
// performs the I/O, retrying and logging failures.
package bridge

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/funrun/internal/runner"
	"github.com/vovakirdan/funrun/internal/storage"
)

var (
	_ runner.Persister = (*Bridge)(nil)
	_ HighScoreStore   = (*storage.Store)(nil)
	_ Leaderboard      = (*storage.Store)(nil)
)

// HighScoreStore persists the local high score.
type HighScoreStore interface {
	SaveHighScore(ctx context.Context, key string, value int) error
}

// Leaderboard accepts finished runs and lists the best ones.
// Implemented by storage.Store (local) and api.Client (remote).
type Leaderboard interface {
	SubmitScore(ctx context.Context, user string, score int) (storage.Score, error)
	ListScores(ctx context.Context, limit int) ([]storage.Score, error)
}

// Config holds configuration for the bridge.
type Config struct {
	HighScoreKey string        // settings key for the local high score
	QueueSize    int           // pending writes before new ones are dropped
	Attempts     int           // tries per write, including the first
	Backoff      time.Duration // wait before retry n is n*Backoff
	Timeout      time.Duration // per-attempt deadline
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		HighScoreKey: "runnerHighScore",
		QueueSize:    64,
		Attempts:     3,
		Backoff:      200 * time.Millisecond,
		Timeout:      5 * time.Second,
	}
}

type jobKind int

const (
	jobHighScore jobKind = iota
	jobSubmit
)

func (k jobKind) String() string {
	if k == jobHighScore {
		return "high score"
	}
	return "submit"
}

type job struct {
	kind  jobKind
	name  string
	score int
}

// Stats counts what happened to queued writes.
type Stats struct {
	Delivered int64
	Failed    int64
	Dropped   int64
}

// Bridge implements runner.Persister over a local store and a leaderboard.
// Either side may be nil, in which case its writes are skipped.
type Bridge struct {
	cfg    Config
	local  HighScoreStore
	board  Leaderboard
	logger *log.Logger

	mu     sync.Mutex // guards closed and sends on jobs
	closed bool
	jobs   chan job
	done   chan struct{}

	delivered atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64
}

// New creates a bridge and starts its worker. Call Close to drain it.
func New(cfg Config, local HighScoreStore, board Leaderboard, logger *log.Logger) *Bridge {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultConfig().QueueSize
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = 1
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}

	b := &Bridge{
		cfg:    cfg,
		local:  local,
		board:  board,
		logger: logger,
		jobs:   make(chan job, cfg.QueueSize),
		done:   make(chan struct{}),
	}
	go b.run()
	return b
}

// PersistHighScore queues a write of the local high score.
func (b *Bridge) PersistHighScore(score int) {
	if b.local == nil {
		return
	}
	b.enqueue(job{kind: jobHighScore, score: score})
}

// SubmitScore queues a leaderboard submission.
func (b *Bridge) SubmitScore(name string, score int) {
	if b.board == nil {
		return
	}
	b.enqueue(job{kind: jobSubmit, name: name, score: score})
}

// enqueue never blocks: a full or closed queue drops the write.
func (b *Bridge) enqueue(j job) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		b.dropped.Add(1)
		b.logger.Warn("bridge closed, dropping write", "kind", j.kind, "score", j.score)
		return
	}

	select {
	case b.jobs <- j:
	default:
		b.dropped.Add(1)
		b.logger.Warn("write queue full, dropping", "kind", j.kind, "score", j.score)
	}
}

// ListScores reads the leaderboard directly. Call it off the tick path.
func (b *Bridge) ListScores(ctx context.Context, limit int) ([]storage.Score, error) {
	if b.board == nil {
		return nil, fmt.Errorf("bridge: no leaderboard configured")
	}
	return b.board.ListScores(ctx, limit)
}

// Stats returns a snapshot of the write counters.
func (b *Bridge) Stats() Stats {
	return Stats{
		Delivered: b.delivered.Load(),
		Failed:    b.failed.Load(),
		Dropped:   b.dropped.Load(),
	}
}

// Close stops accepting writes and waits until queued ones are done.
func (b *Bridge) Close() {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		close(b.jobs)
	}
	b.mu.Unlock()
	<-b.done
}

func (b *Bridge) run() {
	defer close(b.done)
	for j := range b.jobs {
		b.process(j)
	}
}

func (b *Bridge) process(j job) {
	var err error
	for attempt := 1; attempt <= b.cfg.Attempts; attempt++ {
		if attempt > 1 {
			time.Sleep(time.Duration(attempt-1) * b.cfg.Backoff)
		}

		err = b.deliver(j)
		if err == nil {
			b.delivered.Add(1)
			b.logger.Debug("write delivered", "kind", j.kind, "score", j.score, "attempt", attempt)
			return
		}
		b.logger.Warn("write failed", "kind", j.kind, "score", j.score, "attempt", attempt, "err", err)
	}

	b.failed.Add(1)
	b.logger.Error("giving up on write", "kind", j.kind, "name", j.name, "score", j.score, "err", err)
}

func (b *Bridge) deliver(j job) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.cfg.Timeout)
	defer cancel()

	switch j.kind {
	case jobHighScore:
		return b.local.SaveHighScore(ctx, b.cfg.HighScoreKey, j.score)
	case jobSubmit:
		_, err := b.board.SubmitScore(ctx, j.name, j.score)
		return err
	default:
		return fmt.Errorf("bridge: unknown job kind %d", j.kind)
	}
}
