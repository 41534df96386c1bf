package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/sweeper/pkg/sweeper/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite session store with WAL mode enabled, creating
// the schema if needed.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS sessions (
	id TEXT PRIMARY KEY,
	played_at TEXT NOT NULL,
	height INTEGER NOT NULL,
	width INTEGER NOT NULL,
	mines INTEGER NOT NULL,
	won INTEGER NOT NULL,
	guesses INTEGER NOT NULL,
	flagged INTEGER NOT NULL,
	move_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS session_moves (
	session_id TEXT NOT NULL,
	idx INTEGER NOT NULL,
	row INTEGER NOT NULL,
	col INTEGER NOT NULL,
	clue INTEGER NOT NULL,
	guess INTEGER NOT NULL,
	mine INTEGER NOT NULL,
	PRIMARY KEY(session_id, idx),
	FOREIGN KEY(session_id) REFERENCES sessions(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_sessions_played_at ON sessions(played_at);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// SaveSession inserts or replaces a session and its move transcript.
func (s *sqliteStore) SaveSession(ctx context.Context, sess store.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO sessions
			(id, played_at, height, width, mines, won, guesses, flagged, move_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sess.ID, sess.PlayedAt.UTC().Format(time.RFC3339Nano),
		sess.Height, sess.Width, sess.Mines,
		boolToInt(sess.Won), sess.Guesses, sess.Flagged, len(sess.Moves))
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM session_moves WHERE session_id = ?", sess.ID); err != nil {
		return err
	}
	for _, m := range sess.Moves {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO session_moves (session_id, idx, row, col, clue, guess, mine)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			sess.ID, m.Index, m.Row, m.Col, m.Clue, boolToInt(m.Guess), boolToInt(m.Mine))
		if err != nil {
			return fmt.Errorf("insert move %d: %w", m.Index, err)
		}
	}

	return tx.Commit()
}

// GetSession returns a session with its transcript by ID.
func (s *sqliteStore) GetSession(ctx context.Context, id string) (store.Session, bool, error) {
	var (
		sess     store.Session
		playedAt string
		won      int
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, played_at, height, width, mines, won, guesses, flagged
		FROM sessions WHERE id = ?`, id).Scan(
		&sess.ID, &playedAt, &sess.Height, &sess.Width, &sess.Mines,
		&won, &sess.Guesses, &sess.Flagged)
	if err == sql.ErrNoRows {
		return store.Session{}, false, nil
	}
	if err != nil {
		return store.Session{}, false, err
	}
	sess.Won = won != 0
	if t, perr := time.Parse(time.RFC3339Nano, playedAt); perr == nil {
		sess.PlayedAt = t
	}

	moves, err := s.loadMoves(ctx, id)
	if err != nil {
		return store.Session{}, false, err
	}
	sess.Moves = moves
	return sess, true, nil
}

// ListSessions returns up to limit sessions, most recent first.
func (s *sqliteStore) ListSessions(ctx context.Context, limit int) ([]store.Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, played_at, height, width, mines, won, guesses, flagged
		FROM sessions ORDER BY played_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Session
	for rows.Next() {
		var (
			sess     store.Session
			playedAt string
			won      int
		)
		if err := rows.Scan(&sess.ID, &playedAt, &sess.Height, &sess.Width,
			&sess.Mines, &won, &sess.Guesses, &sess.Flagged); err != nil {
			return nil, err
		}
		sess.Won = won != 0
		if t, perr := time.Parse(time.RFC3339Nano, playedAt); perr == nil {
			sess.PlayedAt = t
		}
		out = append(out, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		moves, err := s.loadMoves(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Moves = moves
	}
	return out, nil
}

// Stats aggregates over all stored sessions.
func (s *sqliteStore) Stats(ctx context.Context) (store.Stats, error) {
	var (
		st      store.Stats
		moves   sql.NullInt64
		guesses sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(won), 0),
		       SUM(move_count), SUM(guesses)
		FROM sessions`).Scan(&st.Sessions, &st.Wins, &moves, &guesses)
	if err != nil {
		return store.Stats{}, err
	}
	if st.Sessions > 0 {
		st.WinRate = float64(st.Wins) / float64(st.Sessions)
		st.AvgMoves = float64(moves.Int64) / float64(st.Sessions)
	}
	if moves.Int64 > 0 {
		st.GuessRate = float64(guesses.Int64) / float64(moves.Int64)
	}
	return st, nil
}

func (s *sqliteStore) loadMoves(ctx context.Context, id string) ([]store.Move, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT idx, row, col, clue, guess, mine
		FROM session_moves WHERE session_id = ? ORDER BY idx`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var moves []store.Move
	for rows.Next() {
		var (
			m     store.Move
			guess int
			mine  int
		)
		if err := rows.Scan(&m.Index, &m.Row, &m.Col, &m.Clue, &guess, &mine); err != nil {
			return nil, err
		}
		m.Guess = guess != 0
		m.Mine = mine != 0
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
