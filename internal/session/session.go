// Package session holds per-run settlement state and the batch scheduler
// that drives resolvers across an index range.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fairsettle/fairsettle-go/internal/engine"
	"github.com/fairsettle/fairsettle-go/internal/games"
)

// State is the lifecycle phase of a session.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateComplete State = "complete"
)

var (
	ErrGameNotFound    = errors.New("game not found")
	ErrSessionComplete = errors.New("session already complete")
)

// Session is one batch run of a chosen game. Results are append-only in
// index order; Completed always equals len(Results). The value is mutated
// only by Tick, which makes restarts and replays trivially resumable.
type Session struct {
	ID        string             `json:"id"`
	Seed      string             `json:"seed"`
	GameID    string             `json:"game_id"`
	Player1   string             `json:"player1"`
	Player2   string             `json:"player2"`
	Target    int                `json:"target"`
	Completed int                `json:"completed"`
	Results   []games.GameResult `json:"results"`
	State     State              `json:"state"`
	Winner    string             `json:"winner,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
}

// New creates an idle session with a fresh id and master seed.
func New(gameID, player1, player2 string, target int) (Session, error) {
	if _, ok := games.Get(gameID); !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	if target < 1 {
		target = 1
	}

	seed, err := engine.NewSeed()
	if err != nil {
		return Session{}, fmt.Errorf("generate session seed: %w", err)
	}

	return Session{
		ID:        uuid.NewString(),
		Seed:      seed,
		GameID:    gameID,
		Player1:   player1,
		Player2:   player2,
		Target:    target,
		State:     StateIdle,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Matchup returns the derivation inputs for this session's resolver calls.
func (s Session) Matchup() games.Matchup {
	return games.Matchup{
		Seed:      s.Seed,
		SessionID: s.ID,
		Player1:   s.Player1,
		Player2:   s.Player2,
	}
}

// Progress reports completion as a fraction in [0, 1]. The denominator is
// clamped so a degenerate target never divides by zero.
func (s Session) Progress() float64 {
	target := s.Target
	if target < 1 {
		target = 1
	}
	return float64(s.Completed) / float64(target)
}

// Tally counts wins per label across the accumulated results.
func (s Session) Tally() map[string]int {
	tally := make(map[string]int)
	for _, r := range s.Results {
		tally[r.Winner]++
	}
	return tally
}

// finalWinner picks the majority winner label, or the tie marker when both
// parties won equally often.
func (s Session) finalWinner() string {
	wins1 := 0
	wins2 := 0
	for _, r := range s.Results {
		switch r.Winner {
		case s.Player1:
			wins1++
		case s.Player2:
			wins2++
		}
	}
	switch {
	case wins1 > wins2:
		return s.Player1
	case wins2 > wins1:
		return s.Player2
	default:
		return games.TieWinner
	}
}
