// Package mongo provides a MongoDB-backed session store.
//
// Each scope is one document keyed by its id in the configured collection.
// A TTL index on expires_at lets MongoDB purge stale sessions; [Store.Cleanup]
// also deletes them explicitly for deployments without the index.
package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/bloom/pkg/errors"
	"github.com/matzehuels/bloom/pkg/session"
)

// Defaults for [Config].
const (
	DefaultDatabase   = "bloom"
	DefaultCollection = "sessions"
)

// Config holds connection settings.
type Config struct {
	URI        string
	Database   string
	Collection string
}

// Store implements session.Store on MongoDB.
type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewStore connects, pings the primary and ensures the TTL index exists.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongodb")
	}

	s := &Store{
		client: client,
		coll:   client.Database(cfg.Database).Collection(cfg.Collection),
	}
	if _, err := s.coll.Indexes().CreateOne(ctx, ttlIndex()); err != nil {
		client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "create ttl index")
	}
	return s, nil
}

// NewStoreFromCollection wraps an existing collection. The caller keeps
// ownership of the client and is responsible for the TTL index.
func NewStoreFromCollection(coll *mongo.Collection) *Store {
	return &Store{coll: coll}
}

func ttlIndex() mongo.IndexModel {
	return mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	}
}

func idFilter(sessionID string) bson.D {
	return bson.D{{Key: "_id", Value: sessionID}}
}

func expiredFilter(now time.Time) bson.D {
	return bson.D{{Key: "expires_at", Value: bson.D{{Key: "$lt", Value: now}}}}
}

func (s *Store) Get(ctx context.Context, sessionID string) (*session.Session, error) {
	if err := errors.ValidateSessionID(sessionID); err != nil {
		return nil, err
	}

	var sess session.Session
	err := s.coll.FindOne(ctx, idFilter(sessionID)).Decode(&sess)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "mongodb find")
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

	opts := options.Replace().SetUpsert(true)
	if _, err := s.coll.ReplaceOne(ctx, idFilter(sess.ID), sess, opts); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "mongodb replace")
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := errors.ValidateSessionID(sessionID); err != nil {
		return err
	}
	if _, err := s.coll.DeleteOne(ctx, idFilter(sessionID)); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "mongodb delete")
	}
	return nil
}

func (s *Store) Cleanup(ctx context.Context) error {
	if _, err := s.coll.DeleteMany(ctx, expiredFilter(time.Now())); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "mongodb cleanup")
	}
	return nil
}

// Close disconnects the client. Stores built with [NewStoreFromCollection]
// leave the client alone.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

var _ session.Store = (*Store)(nil)
