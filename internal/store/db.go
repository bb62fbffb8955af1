// Package store persists settled session history. The settlement core never
// touches it; completed sessions are handed over at the outer layer for
// later auditing.
package store

import "time"

// DB is the session history interface.
type DB interface {
	Close() error
	Migrate() error
	SaveSession(rec *SessionRecord, results []ResultRecord) error
	GetSession(id string) (*SessionRecord, error)
	GetResults(sessionID string, limit, offset int) ([]ResultRecord, error)
	ListSessions(query SessionsQuery) (*SessionsList, error)
}

// SessionRecord is one settled session run.
type SessionRecord struct {
	ID        string    `json:"id" db:"id"`
	Game      string    `json:"game" db:"game"`
	Seed      string    `json:"seed" db:"seed"`
	Player1   string    `json:"player1" db:"player1"`
	Player2   string    `json:"player2" db:"player2"`
	Target    int       `json:"target" db:"target"`
	Completed int       `json:"completed" db:"completed"`
	Winner    string    `json:"winner" db:"winner"`
	Wins1     int       `json:"wins1" db:"wins1"`
	Wins2     int       `json:"wins2" db:"wins2"`
	Ties      int       `json:"ties" db:"ties"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	SettledAt time.Time `json:"settled_at" db:"settled_at"`
}

// ResultRecord is one game outcome within a session.
type ResultRecord struct {
	ID        int64  `json:"id" db:"id"`
	SessionID string `json:"session_id" db:"session_id"`
	GameIndex uint64 `json:"game_index" db:"game_index"`
	Winner    string `json:"winner" db:"winner"`
	Details   string `json:"details" db:"details"` // JSON payload
}

// SessionsQuery filters and paginates the history listing.
type SessionsQuery struct {
	Game    string `json:"game,omitempty"`
	Page    int    `json:"page"`
	PerPage int    `json:"perPage"`
}

// SessionsList is a paginated history response.
type SessionsList struct {
	Sessions   []SessionRecord `json:"sessions"`
	TotalCount int             `json:"totalCount"`
	Page       int             `json:"page"`
	PerPage    int             `json:"perPage"`
	TotalPages int             `json:"totalPages"`
}
