// Package cache defines the TTL key-value store backing the search-result
// and video-metadata caches, with in-memory, Redis, and Postgres backends.
// Reads happen before every fetch; writes are best-effort and never block
// or fail the read path.
package cache

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"strings"
	"time"
)

// ErrMiss is returned when a key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Store is a TTL key-value store. Entries are immutable once written:
// a duplicate concurrent write is an idempotent overwrite, so backends
// need no locking beyond their own internals.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Default TTLs for the two pipeline caches.
const (
	SearchTTL    = 48 * time.Hour
	VideoMetaTTL = 168 * time.Hour
)

// Key builds a stable cache key from a namespace and the normalized
// payload text.
func Key(namespace, text string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(namespace))
	_, _ = h.Write([]byte{'|'})
	_, _ = h.Write([]byte(strings.ToLower(strings.TrimSpace(text))))
	return fmt.Sprintf("%s:%x", namespace, h.Sum64())
}

// WriteAsync fires a best-effort cache write on a detached goroutine. A
// failed write is logged and dropped; callers must never depend on it
// having happened.
func WriteAsync(store Store, key string, value []byte, ttl time.Duration) {
	if store == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := store.Set(ctx, key, value, ttl); err != nil {
			slog.Debug("cache write dropped", "key", key, "error", err)
		}
	}()
}
