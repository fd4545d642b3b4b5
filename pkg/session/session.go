// Package session persists the editor's working document per session scope.
//
// A scope is one editing session: a browser tab talking to the server, or
// the local CLI. Each scope holds at most one serialized document plus the
// current selection. Writes always replace the whole entry; there is no
// partial update and the last writer wins.
//
// Backends:
//   - [MemoryStore]: in-process map for the server and tests
//   - [FileStore]: JSON files, the CLI default
//   - session/redis: Redis-backed storage for multi-instance deployments
//   - session/mongo: one MongoDB document per scope
//   - session/sqlite: one SQLite row per scope
//
// # Usage
//
//	store, err := session.NewFileStore("")  // ~/.config/bloom/sessions/
//	if err != nil {
//	    return err
//	}
//
//	sess, err := store.Get(ctx, scope)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    sess = session.New(scope, session.DefaultTTL)
//	}
//	sess.Document = data
//	err = store.Set(ctx, sess)
package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long an untouched session survives.
const DefaultTTL = 24 * time.Hour

// LocalScope is the fixed scope the CLI edits in.
const LocalScope = "00000000-0000-0000-0000-000000000001"

// Session is the persisted state of one editing scope.
type Session struct {
	ID         string          `json:"id" bson:"_id"`
	Document   json.RawMessage `json:"document,omitempty" bson:"document,omitempty"`
	SelectedID string          `json:"selected_id,omitempty" bson:"selected_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at" bson:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at" bson:"updated_at"`
	ExpiresAt  time.Time       `json:"expires_at" bson:"expires_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// HasDocument reports whether a document has been imported into the scope.
func (s *Session) HasDocument() bool {
	return s != nil && len(s.Document) > 0
}

// Touch records a write at the current time and extends the expiry by ttl.
func (s *Session) Touch(ttl time.Duration) {
	now := time.Now()
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(ttl)
}

// TTL returns the remaining lifetime, never negative.
func (s *Session) TTL() time.Duration {
	d := time.Until(s.ExpiresAt)
	if d < 0 {
		return 0
	}
	return d
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session, replacing any previous entry with the same ID.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions (optional, may be no-op for Redis).
	Cleanup(ctx context.Context) error
}

// NewID returns a fresh random scope identifier.
func NewID() string {
	return uuid.NewString()
}

// New creates an empty session for scope that expires after ttl.
func New(scope string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        scope,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}
