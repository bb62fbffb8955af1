package api

import (
	"github.com/fairsettle/fairsettle-go/internal/games"
	"github.com/fairsettle/fairsettle-go/internal/stats"
)

// EngineError is a structured error response with context.
type EngineError struct {
	Type      string         `json:"type"`
	Message   string         `json:"message"`
	Context   map[string]any `json:"context,omitempty"`
	RequestID string         `json:"request_id,omitempty"`
}

// Error implements the error interface.
func (e EngineError) Error() string {
	return e.Message
}

// Error types.
const (
	ErrTypeValidation   = "validation_error"
	ErrTypeGameNotFound = "game_not_found"
	ErrTypeNotFound     = "not_found"
	ErrTypeInternal     = "internal_error"
)

// DeriveRequest asks for one derived value.
type DeriveRequest struct {
	Seed    string `json:"seed"`
	Context string `json:"context"`
	Index   int    `json:"index"`
}

// DeriveResponse carries the derived value.
type DeriveResponse struct {
	Value float64 `json:"value"`
}

// SeedResponse carries a freshly generated master seed.
type SeedResponse struct {
	Seed string `json:"seed"`
}

// ResolveRequest settles a single game index.
type ResolveRequest struct {
	Game      string `json:"game"`
	Seed      string `json:"seed"`
	SessionID string `json:"session_id"`
	Index     uint64 `json:"index"`
	Player1   string `json:"player1"`
	Player2   string `json:"player2"`
}

// VerifyRequest replays a contiguous index range so any party can audit a
// settled run from the seed alone.
type VerifyRequest struct {
	Game      string `json:"game"`
	Seed      string `json:"seed"`
	SessionID string `json:"session_id"`
	Start     uint64 `json:"start"`
	Count     int    `json:"count"`
	Player1   string `json:"player1"`
	Player2   string `json:"player2"`
}

// VerifyResponse is the replayed outcome sequence plus telemetry.
type VerifyResponse struct {
	Results  []games.GameResult `json:"results"`
	Tally    map[string]int     `json:"tally"`
	Fairness stats.Fairness     `json:"fairness"`
}

// StartSessionRequest creates and starts a new settlement session.
type StartSessionRequest struct {
	Game    string `json:"game"`
	Player1 string `json:"player1"`
	Player2 string `json:"player2"`
	Target  int    `json:"target"`
}

// SessionResponse is a progress snapshot of a live session.
type SessionResponse struct {
	ID        string         `json:"id"`
	Seed      string         `json:"seed"`
	Game      string         `json:"game"`
	Player1   string         `json:"player1"`
	Player2   string         `json:"player2"`
	Target    int            `json:"target"`
	Completed int            `json:"completed"`
	Progress  float64        `json:"progress"`
	State     string         `json:"state"`
	Winner    string         `json:"winner,omitempty"`
	Tally     map[string]int `json:"tally"`
}
