package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fairsettle/fairsettle-go/internal/games"
)

// DefaultBatchSize bounds how many games one tick resolves.
const DefaultBatchSize = 10

// Tick resolves the next batch of unresolved indices and returns the
// advanced session plus the results produced by this batch.
//
// Tick is pure apart from the resolver calls, which are themselves pure:
// given completed = N the batch always covers indices [N, N+batch), so
// re-running a tick after a restart reproduces identical outcomes.
func Tick(s Session, batchSize int) (Session, []games.GameResult, error) {
	if s.State == StateComplete {
		return s, nil, ErrSessionComplete
	}
	game, ok := games.Get(s.GameID)
	if !ok {
		return s, nil, fmt.Errorf("%w: %s", ErrGameNotFound, s.GameID)
	}

	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	remaining := s.Target - s.Completed
	if batchSize > remaining {
		batchSize = remaining
	}

	m := s.Matchup()
	batch := make([]games.GameResult, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		res, err := game.Resolve(m, uint64(s.Completed+i))
		if err != nil {
			return s, nil, fmt.Errorf("resolve index %d: %w", s.Completed+i, err)
		}
		batch = append(batch, res)
	}

	s.Results = append(s.Results, batch...)
	s.Completed += len(batch)
	if s.Completed >= s.Target {
		s.State = StateComplete
		s.Winner = s.finalWinner()
	} else {
		s.State = StateRunning
	}
	return s, batch, nil
}

// Runner drives Tick on a timer for one session. The session value is only
// ever mutated by the runner's own loop goroutine, so ticks for a session
// never overlap; the mutex exists solely for snapshot reads.
type Runner struct {
	mu       sync.RWMutex
	session  Session
	interval time.Duration
	batch    int

	cancel context.CancelFunc
	done   chan struct{}

	// OnComplete, if set, is invoked once with the final session value
	// when the run reaches its target.
	OnComplete func(Session)
}

// NewRunner wraps a session for timer-driven execution.
func NewRunner(s Session, interval time.Duration, batchSize int) *Runner {
	if interval <= 0 {
		interval = 50 * time.Millisecond
	}
	if batchSize < 1 {
		batchSize = DefaultBatchSize
	}
	return &Runner{
		session:  s,
		interval: interval,
		batch:    batchSize,
	}
}

// Session returns a snapshot of the current session value.
func (r *Runner) Session() Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := r.session
	s.Results = append([]games.GameResult(nil), r.session.Results...)
	return s
}

// Start begins (or resumes) the batch loop. Starting an already running or
// completed session is a no-op.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil || r.session.State == StateComplete {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.done = make(chan struct{})
	r.session.State = StateRunning
	go r.loop(ctx, r.done)
}

// Pause stops the batch loop; the session keeps its progress and Start
// resumes exactly at the completed index.
func (r *Runner) Pause() {
	r.mu.Lock()
	cancel := r.cancel
	done := r.done
	r.cancel = nil
	r.done = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Reset stops the loop and replaces the session with a fresh one: new id,
// new seed, empty results. The old session's outcomes are discarded.
func (r *Runner) Reset() (Session, error) {
	r.Pause()

	r.mu.Lock()
	defer r.mu.Unlock()
	fresh, err := New(r.session.GameID, r.session.Player1, r.session.Player2, r.session.Target)
	if err != nil {
		return Session{}, err
	}
	r.session = fresh
	return fresh, nil
}

func (r *Runner) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.mu.Lock()
			if r.session.State == StateRunning {
				r.session.State = StateIdle
			}
			r.mu.Unlock()
			return
		case <-ticker.C:
			r.mu.Lock()
			next, _, err := Tick(r.session, r.batch)
			if err != nil {
				r.mu.Unlock()
				return
			}
			r.session = next
			complete := next.State == StateComplete
			onComplete := r.OnComplete
			r.mu.Unlock()

			if complete {
				if onComplete != nil {
					onComplete(next)
				}
				// Clear the loop handle directly: calling Pause here
				// would wait on this goroutine's own done channel.
				r.mu.Lock()
				if r.cancel != nil {
					r.cancel()
					r.cancel = nil
					r.done = nil
				}
				r.mu.Unlock()
				return
			}
		}
	}
}
