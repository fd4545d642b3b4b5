// Package redis provides a Redis-backed session store for deployments where
// several server instances share editing sessions.
//
// Sessions are stored as JSON under "bloom:session:<id>" and expire through
// Redis key TTLs, so [Store.Cleanup] has nothing to do.
package redis

import (
	"context"
	"encoding/json"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/matzehuels/bloom/pkg/errors"
	"github.com/matzehuels/bloom/pkg/session"
)

// KeyPrefix namespaces session keys.
const KeyPrefix = "bloom:session:"

// Config holds connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Store implements session.Store on Redis.
type Store struct {
	client *goredis.Client
}

// NewStore connects to Redis and verifies the connection with a PING.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to redis at %s", cfg.Addr)
	}
	return &Store{client: client}, nil
}

// NewStoreFromClient wraps an existing client. The caller keeps ownership.
func NewStoreFromClient(client *goredis.Client) *Store {
	return &Store{client: client}
}

// Key returns the Redis key for a session.
func Key(sessionID string) string {
	return KeyPrefix + sessionID
}

func (s *Store) Get(ctx context.Context, sessionID string) (*session.Session, error) {
	if err := errors.ValidateSessionID(sessionID); err != nil {
		return nil, err
	}

	data, err := s.client.Get(ctx, Key(sessionID)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "redis get")
	}

	var sess session.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "parse session")
	}
	if sess.IsExpired() {
		return nil, nil
	}
	return &sess, nil
}

func (s *Store) Set(ctx context.Context, sess *session.Session) error {
	if err := errors.ValidateSessionID(sess.ID); err != nil {
		return err
	}

	ttl := expiration(sess)
	if ttl <= 0 {
		return s.Delete(ctx, sess.ID)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal session")
	}
	if err := s.client.Set(ctx, Key(sess.ID), data, ttl).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "redis set")
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := errors.ValidateSessionID(sessionID); err != nil {
		return err
	}
	if err := s.client.Del(ctx, Key(sessionID)).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "redis del")
	}
	return nil
}

// Cleanup is a no-op; Redis expires keys on its own.
func (s *Store) Cleanup(ctx context.Context) error { return nil }

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

// expiration returns the key TTL for sess, rounded up to whole milliseconds
// because Redis rejects sub-millisecond expirations.
func expiration(sess *session.Session) time.Duration {
	d := time.Until(sess.ExpiresAt)
	if d <= 0 {
		return 0
	}
	return d.Truncate(time.Millisecond) + time.Millisecond
}

var _ session.Store = (*Store)(nil)
