// Package sqlite provides a SQLite-backed session store for single-node
// servers that want sessions to survive restarts without running Redis.
//
// One row per scope; timestamps are stored as Unix milliseconds.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/matzehuels/bloom/pkg/errors"
	"github.com/matzehuels/bloom/pkg/session"
)

//go:embed schema.sql
var schemaFS embed.FS

// Store implements session.Store on SQLite.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path and applies the schema.
// Use ":memory:" for a throwaway database.
func NewStore(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		dsn = fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", path)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "opening database at %s", path)
	}

	// SQLite only supports one writer at a time; a single connection also
	// keeps ":memory:" databases alive across calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	if _, err := db.Exec(string(schema)); err != nil {
		db.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "executing schema")
	}
	return &Store{db: db}, nil
}

func (s *Store) Get(ctx context.Context, sessionID string) (*session.Session, error) {
	if err := errors.ValidateSessionID(sessionID); err != nil {
		return nil, err
	}

	var (
		sess                 session.Session
		doc                  []byte
		created, updated, ex int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, document, selected_id, created_at, updated_at, expires_at FROM sessions WHERE id = ?`,
		sessionID,
	).Scan(&sess.ID, &doc, &sess.SelectedID, &created, &updated, &ex)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "querying session %s", sessionID)
	}

	sess.Document = doc
	sess.CreatedAt = time.UnixMilli(created)
	sess.UpdatedAt = time.UnixMilli(updated)
	sess.ExpiresAt = time.UnixMilli(ex)
	if sess.IsExpired() {
		return nil, nil
	}
	return &sess, nil
}

func (s *Store) Set(ctx context.Context, sess *session.Session) error {
	if err := errors.ValidateSessionID(sess.ID); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, document, selected_id, created_at, updated_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			document = excluded.document,
			selected_id = excluded.selected_id,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			expires_at = excluded.expires_at`,
		sess.ID, []byte(sess.Document), sess.SelectedID,
		sess.CreatedAt.UnixMilli(), sess.UpdatedAt.UnixMilli(), sess.ExpiresAt.UnixMilli(),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "writing session %s", sess.ID)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := errors.ValidateSessionID(sessionID); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, sessionID); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "deleting session %s", sessionID)
	}
	return nil
}

func (s *Store) Cleanup(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < ?`, time.Now().UnixMilli())
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "cleaning up sessions")
	}
	return nil
}

// Count returns the number of stored rows, expired ones included.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&n); err != nil {
		return 0, errors.Wrap(errors.ErrCodeStorage, err, "counting sessions")
	}
	return n, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

var _ session.Store = (*Store)(nil)
