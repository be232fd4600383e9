// Package store persists per-browser working state (the three scenario
// inputs and the selected case) in SQLite, keyed by session id. It is a
// scratchpad for the current interactive session, not a document archive:
// stale sessions are swept out by DeleteIdle.
package store

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/cupnomics/breakeven/internal/breakeven"
)

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// ErrSessionNotFound is returned when no state exists for a session id.
var ErrSessionNotFound = errors.New("session not found")

// Store wraps the SQLite database holding session state.
type Store struct {
	db *sql.DB
}

// Open opens the SQLite database at dbPath, sets recommended pragmas, and
// validates connectivity.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA foreign_keys = ON;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set sqlite pragmas: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate runs all pending embedded SQL migrations.
func (s *Store) Migrate() error {
	goose.SetBaseFS(embeddedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}
	return nil
}

// SaveSession upserts the full case set and active case for a session.
func (s *Store) SaveSession(id string, cases breakeven.CaseSet, active breakeven.CaseID) error {
	casesJSON, err := json.Marshal(cases)
	if err != nil {
		return fmt.Errorf("marshal session cases: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO sessions (id, active_case, cases_json)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			active_case = excluded.active_case,
			cases_json = excluded.cases_json,
			updated_at = CURRENT_TIMESTAMP
	`, id, string(active), string(casesJSON))
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// LoadSession returns the stored case set and active case for a session.
// Cases missing from the stored state are filled in with the defaults, so
// callers always get all three. Returns ErrSessionNotFound when the id is
// unknown.
func (s *Store) LoadSession(id string) (breakeven.CaseSet, breakeven.CaseID, error) {
	var activeRaw, casesJSON string
	err := s.db.QueryRow(`
		SELECT active_case, cases_json
		FROM sessions
		WHERE id = ?
	`, id).Scan(&activeRaw, &casesJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrSessionNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("query session: %w", err)
	}

	cases := make(breakeven.CaseSet)
	if err := json.Unmarshal([]byte(casesJSON), &cases); err != nil {
		return nil, "", fmt.Errorf("unmarshal session cases: %w", err)
	}
	for _, cid := range breakeven.CaseIDs {
		if _, ok := cases[cid]; !ok {
			cases[cid] = breakeven.DefaultInput()
		}
	}

	active, ok := breakeven.ValidCaseID(activeRaw)
	if !ok {
		active = breakeven.CaseA
	}
	return cases, active, nil
}

// DeleteIdle removes sessions not touched within the given duration and
// returns how many were removed.
func (s *Store) DeleteIdle(olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan).Format("2006-01-02 15:04:05")
	result, err := s.db.Exec(`DELETE FROM sessions WHERE updated_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete idle sessions: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted sessions: %w", err)
	}
	return removed, nil
}
