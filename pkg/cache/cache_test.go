package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	p1 := k.PreviewKey("doc1", PreviewKeyOpts{SelectedID: "a"})
	p2 := k.PreviewKey("doc1", PreviewKeyOpts{SelectedID: "b"})
	p3 := k.PreviewKey("doc2", PreviewKeyOpts{SelectedID: "a"})
	if p1 == p2 || p1 == p3 {
		t.Error("Different preview inputs should produce different keys")
	}
	if p1 != k.PreviewKey("doc1", PreviewKeyOpts{SelectedID: "a"}) {
		t.Error("PreviewKey should be deterministic")
	}
	if !strings.HasPrefix(p1, "preview:") {
		t.Errorf("PreviewKey unexpected: %s", p1)
	}

	o1 := k.OutlineKey("doc1", OutlineKeyOpts{Format: "svg"})
	o2 := k.OutlineKey("doc1", OutlineKeyOpts{Format: "dot"})
	if o1 == o2 {
		t.Error("Different OutlineKeyOpts should produce different keys")
	}
	if !strings.HasPrefix(o1, "outline:") {
		t.Errorf("OutlineKey unexpected: %s", o1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:123:")

	want := "tenant:123:" + inner.PreviewKey("h", PreviewKeyOpts{})
	if got := scoped.PreviewKey("h", PreviewKeyOpts{}); got != want {
		t.Errorf("ScopedKeyer PreviewKey = %s, want %s", got, want)
	}

	outlineKey := scoped.OutlineKey("h", OutlineKeyOpts{Format: "svg"})
	if !strings.HasPrefix(outlineKey, "tenant:123:outline:") {
		t.Errorf("ScopedKeyer OutlineKey should be prefixed: %s", outlineKey)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.PreviewKey("h", PreviewKeyOpts{})
	if key != "prefix:"+NewDefaultKeyer().PreviewKey("h", PreviewKeyOpts{}) {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}

// testCache runs the behaviour every storing backend shares.
func testCache(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("v1"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "v1" {
		t.Fatalf("Get(k) = %q, %v, %v", data, hit, err)
	}

	// Overwrite
	c.Set(ctx, "k", []byte("v2"), 0)
	data, _, _ = c.Get(ctx, "k")
	if string(data) != "v2" {
		t.Errorf("Get after overwrite = %q", data)
	}

	// Expired entries are misses
	c.Set(ctx, "old", []byte("x"), time.Nanosecond)
	time.Sleep(2 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "old"); hit {
		t.Error("expired entry should miss")
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted entry should miss")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(0)
	defer c.Close()
	testCache(t, c)
}

func TestMemoryCacheEviction(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(2)

	c.Set(ctx, "a", []byte("1"), 0)
	c.Set(ctx, "b", []byte("2"), 0)
	c.Get(ctx, "a") // a is now most recent
	c.Set(ctx, "c", []byte("3"), 0)

	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("least recently used entry should be evicted")
	}
	if _, hit, _ := c.Get(ctx, "a"); !hit {
		t.Error("recently used entry should survive")
	}
}

func TestMemoryCacheCopiesInput(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(1)
	buf := []byte("abc")
	c.Set(ctx, "k", buf, 0)
	buf[0] = 'x'
	data, _, _ := c.Get(ctx, "k")
	if string(data) != "abc" {
		t.Errorf("cache shares caller buffer: %q", data)
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	testCache(t, c)
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c.Set(ctx, "a", []byte("1"), 0)
	c.Set(ctx, "b", []byte("2"), 0)

	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b"} {
		if _, hit, _ := c.Get(ctx, k); hit {
			t.Errorf("%s survived Clear", k)
		}
	}
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	c, err := DialRedisCache(ctx, mr.Addr(), "", 0)
	if err != nil {
		t.Fatalf("DialRedisCache: %v", err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "missing"); err != nil || hit {
		t.Fatalf("Get(missing) = hit %v, err %v", hit, err)
	}

	key := DefaultKeyer{}.PreviewKey(Hash([]byte(`{"id":"shop"}`)), PreviewKeyOpts{SelectedID: "cta"})
	if err := c.Set(ctx, key, []byte("<tree>"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, key)
	if err != nil || !hit || string(data) != "<tree>" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}
	if ttl := mr.TTL(key); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}

	// Zero TTL stores without expiry.
	c.Set(ctx, "forever", []byte("x"), 0)
	if ttl := mr.TTL("forever"); ttl != 0 {
		t.Errorf("TTL for zero ttl = %v, want none", ttl)
	}

	mr.FastForward(2 * time.Hour)
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("expired entry should miss")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("entry without ttl should survive")
	}

	if err := c.Delete(ctx, "forever"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "forever"); hit {
		t.Error("deleted entry should miss")
	}
}

func TestRedisCacheBorrowedClient(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisCache(client)
	c.Set(ctx, "k", []byte("v"), time.Minute)
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	// Close leaves a borrowed client usable.
	if got, err := client.Get(ctx, "k").Result(); err != nil || got != "v" {
		t.Errorf("client after Close = %q, %v", got, err)
	}
}

func TestDialRedisCacheUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	if _, err := DialRedisCache(context.Background(), addr, "", 0); err == nil {
		t.Error("DialRedisCache should fail without a server")
	}
}
