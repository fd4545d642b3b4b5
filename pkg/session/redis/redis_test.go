package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/matzehuels/bloom/pkg/errors"
	"github.com/matzehuels/bloom/pkg/session"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s, err := NewStore(context.Background(), Config{Addr: mr.Addr()})
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func TestKey(t *testing.T) {
	got := Key("0b4d7f0e-6a51-4c5e-9a53-9a3f4a1e2b10")
	want := "bloom:session:0b4d7f0e-6a51-4c5e-9a53-9a3f4a1e2b10"
	if got != want {
		t.Errorf("Key = %q, want %q", got, want)
	}
}

func TestExpiration(t *testing.T) {
	live := session.New(session.LocalScope, time.Hour)
	if d := expiration(live); d <= 59*time.Minute || d > time.Hour+time.Millisecond {
		t.Errorf("expiration(live) = %v", d)
	}

	dead := session.New(session.LocalScope, -time.Second)
	if d := expiration(dead); d != 0 {
		t.Errorf("expiration(dead) = %v, want 0", d)
	}
}

// Scope validation happens before any network call, so a store without a
// reachable server is enough.
func TestStoreRejectsBadID(t *testing.T) {
	s := &Store{}
	ctx := context.Background()

	if _, err := s.Get(ctx, "session:*"); !errors.Is(err, errors.ErrCodeInvalidSession) {
		t.Errorf("Get error = %v, want %s", err, errors.ErrCodeInvalidSession)
	}
	if err := s.Delete(ctx, ""); !errors.Is(err, errors.ErrCodeInvalidSession) {
		t.Errorf("Delete error = %v, want %s", err, errors.ErrCodeInvalidSession)
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)
	scope := session.NewID()

	got, err := s.Get(ctx, scope)
	if err != nil || got != nil {
		t.Fatalf("Get on empty = %v, %v", got, err)
	}

	sess := session.New(scope, time.Hour)
	sess.Document = json.RawMessage(`{"id":"s","name":"n","components":[]}`)
	sess.SelectedID = "title"
	if err := s.Set(ctx, sess); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if !mr.Exists(Key(scope)) {
		t.Fatalf("key %s not written", Key(scope))
	}

	got, err = s.Get(ctx, scope)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("Get returned nil after Set")
	}
	if string(got.Document) != string(sess.Document) || got.SelectedID != "title" {
		t.Errorf("got %+v", got)
	}
	if got.ExpiresAt.UnixMilli() != sess.ExpiresAt.UnixMilli() {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, sess.ExpiresAt)
	}

	// Overwrite
	sess.SelectedID = ""
	sess.Document = nil
	if err := s.Set(ctx, sess); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	got, _ = s.Get(ctx, scope)
	if got.HasDocument() || got.SelectedID != "" {
		t.Errorf("overwrite not applied: %+v", got)
	}

	if err := s.Delete(ctx, scope); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got, _ := s.Get(ctx, scope); got != nil {
		t.Error("Get after Delete should return nil")
	}
	if err := s.Delete(ctx, scope); err != nil {
		t.Errorf("Delete of missing session: %v", err)
	}
}

func TestStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	live := session.New(session.NewID(), time.Hour)
	if err := s.Set(ctx, live); err != nil {
		t.Fatal(err)
	}
	if ttl := mr.TTL(Key(live.ID)); ttl <= 59*time.Minute || ttl > time.Hour+time.Millisecond {
		t.Errorf("TTL = %v, want about an hour", ttl)
	}

	// Writing an already expired session removes the stored one.
	dead := session.New(live.ID, -time.Second)
	if err := s.Set(ctx, dead); err != nil {
		t.Fatal(err)
	}
	if mr.Exists(Key(live.ID)) {
		t.Error("expired Set should delete the key")
	}

	s.Set(ctx, live)
	mr.FastForward(2 * time.Hour)
	if got, err := s.Get(ctx, live.ID); err != nil || got != nil {
		t.Errorf("Get after TTL = %v, %v; want nil, nil", got, err)
	}

	if err := s.Cleanup(ctx); err != nil {
		t.Errorf("Cleanup = %v", err)
	}
}

func TestStoreCorruptEntry(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t)

	mr.Set(Key(session.LocalScope), "not json")
	if _, err := s.Get(ctx, session.LocalScope); !errors.Is(err, errors.ErrCodeStorage) {
		t.Errorf("Get corrupt error = %v, want %s", err, errors.ErrCodeStorage)
	}
}

func TestNewStoreUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewStore(context.Background(), Config{Addr: addr})
	if !errors.Is(err, errors.ErrCodeStorage) {
		t.Errorf("NewStore error = %v, want %s", err, errors.ErrCodeStorage)
	}
}
