// Package cache stores derived artifacts (resolved previews, outline SVGs)
// keyed by a hash of the document they were derived from.
//
// Entries are immutable: a changed document hashes to a new key, so nothing
// is ever invalidated explicitly and stale entries simply age out.
//
// Backends:
//   - [NullCache]: caching disabled
//   - [MemoryCache]: bounded in-process map, the server default
//   - [FileCache]: one file per entry, for the CLI
//   - [RedisCache]: shared between server instances
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the lifetime of derived artifacts.
const DefaultTTL = time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. The second result is false on a miss,
	// including an expired entry.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Keyer derives cache keys for the artifacts bloom caches.
type Keyer interface {
	// PreviewKey identifies a resolved preview tree.
	PreviewKey(docHash string, opts PreviewKeyOpts) string

	// OutlineKey identifies a rendered outline diagram.
	OutlineKey(docHash string, opts OutlineKeyOpts) string
}

// PreviewKeyOpts are the inputs besides the document that change a preview.
type PreviewKeyOpts struct {
	SelectedID string `json:"selected_id"`
	Cursor     string `json:"cursor"`
	Transition string `json:"transition"`
}

// OutlineKeyOpts are the inputs besides the document that change an outline.
type OutlineKeyOpts struct {
	Format     string `json:"format"`
	SelectedID string `json:"selected_id"`
	Direction  string `json:"direction"`
	Detailed   bool   `json:"detailed"`
}

// DefaultKeyer produces "preview:<hash>" and "outline:<hash>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

func (DefaultKeyer) PreviewKey(docHash string, opts PreviewKeyOpts) string {
	return hashKey("preview", docHash, opts)
}

func (DefaultKeyer) OutlineKey(docHash string, opts OutlineKeyOpts) string {
	return hashKey("outline", docHash, opts)
}
