package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements the DB interface using SQLite.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (or creates) the history database at path.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WAL mode for better concurrency between writers and history reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate creates the schema.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			game TEXT NOT NULL,
			seed TEXT NOT NULL,
			player1 TEXT NOT NULL,
			player2 TEXT NOT NULL,
			target INTEGER NOT NULL,
			completed INTEGER NOT NULL DEFAULT 0,
			winner TEXT NOT NULL DEFAULT '',
			wins1 INTEGER NOT NULL DEFAULT 0,
			wins2 INTEGER NOT NULL DEFAULT 0,
			ties INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL,
			settled_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			game_index INTEGER NOT NULL,
			winner TEXT NOT NULL,
			details TEXT,
			FOREIGN KEY (session_id) REFERENCES sessions(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_results_session ON results(session_id, game_index)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_settled_at ON sessions(settled_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_game ON sessions(game)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SaveSession writes one settled session and its results in a transaction.
func (s *SQLiteDB) SaveSession(rec *SessionRecord, results []ResultRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.SettledAt.IsZero() {
		rec.SettledAt = time.Now().UTC()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO sessions (
		id, game, seed, player1, player2, target, completed, winner,
		wins1, wins2, ties, created_at, settled_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Game, rec.Seed, rec.Player1, rec.Player2, rec.Target,
		rec.Completed, rec.Winner, rec.Wins1, rec.Wins2, rec.Ties,
		rec.CreatedAt, rec.SettledAt,
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	if len(results) > 0 {
		stmt, err := tx.Prepare("INSERT INTO results (session_id, game_index, winner, details) VALUES (?, ?, ?, ?)")
		if err != nil {
			return err
		}
		defer stmt.Close()

		for _, r := range results {
			if _, err := stmt.Exec(rec.ID, r.GameIndex, r.Winner, r.Details); err != nil {
				return fmt.Errorf("insert result %d: %w", r.GameIndex, err)
			}
		}
	}

	return tx.Commit()
}

// GetSession retrieves one session by id.
func (s *SQLiteDB) GetSession(id string) (*SessionRecord, error) {
	row := s.db.QueryRow(`SELECT id, game, seed, player1, player2, target, completed,
		winner, wins1, wins2, ties, created_at, settled_at
		FROM sessions WHERE id = ?`, id)

	var rec SessionRecord
	err := row.Scan(&rec.ID, &rec.Game, &rec.Seed, &rec.Player1, &rec.Player2,
		&rec.Target, &rec.Completed, &rec.Winner, &rec.Wins1, &rec.Wins2,
		&rec.Ties, &rec.CreatedAt, &rec.SettledAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("session not found: %s", id)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// GetResults retrieves a page of results for one session, in index order.
func (s *SQLiteDB) GetResults(sessionID string, limit, offset int) ([]ResultRecord, error) {
	if limit < 1 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.db.Query(`SELECT id, session_id, game_index, winner, details
		FROM results WHERE session_id = ?
		ORDER BY game_index ASC LIMIT ? OFFSET ?`, sessionID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []ResultRecord
	for rows.Next() {
		var r ResultRecord
		var details sql.NullString
		if err := rows.Scan(&r.ID, &r.SessionID, &r.GameIndex, &r.Winner, &details); err != nil {
			return nil, err
		}
		r.Details = details.String
		results = append(results, r)
	}
	return results, rows.Err()
}

// ListSessions returns a filtered, paginated history listing, newest first.
func (s *SQLiteDB) ListSessions(query SessionsQuery) (*SessionsList, error) {
	if query.Page < 1 {
		query.Page = 1
	}
	if query.PerPage < 1 || query.PerPage > 100 {
		query.PerPage = 20
	}

	where := ""
	args := []any{}
	if query.Game != "" {
		where = " WHERE game = ?"
		args = append(args, query.Game)
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM sessions"+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	offset := (query.Page - 1) * query.PerPage
	listArgs := append(args, query.PerPage, offset)
	rows, err := s.db.Query(`SELECT id, game, seed, player1, player2, target, completed,
		winner, wins1, wins2, ties, created_at, settled_at
		FROM sessions`+where+` ORDER BY settled_at DESC LIMIT ? OFFSET ?`, listArgs...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := []SessionRecord{}
	for rows.Next() {
		var rec SessionRecord
		if err := rows.Scan(&rec.ID, &rec.Game, &rec.Seed, &rec.Player1, &rec.Player2,
			&rec.Target, &rec.Completed, &rec.Winner, &rec.Wins1, &rec.Wins2,
			&rec.Ties, &rec.CreatedAt, &rec.SettledAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	totalPages := (total + query.PerPage - 1) / query.PerPage
	if totalPages < 1 {
		totalPages = 1
	}

	return &SessionsList{
		Sessions:   sessions,
		TotalCount: total,
		Page:       query.Page,
		PerPage:    query.PerPage,
		TotalPages: totalPages,
	}, nil
}
