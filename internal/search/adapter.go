package search

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/pathforge/roadmap/internal/cache"
)

const (
	retryBackoff = 500 * time.Millisecond
	callTimeout  = 8 * time.Second
)

// Stats counts what the adapter did during one pipeline run.
type Stats struct {
	CacheHits   int
	CacheMisses int
	Errors      int
}

// Adapter wraps a Provider with a read-through TTL cache, one fixed-backoff
// retry on transient failures, and quota-failure short-circuiting. All
// failures degrade to an empty result: the pipeline runs with fewer
// candidates rather than not at all. Safe for concurrent use; the pipeline
// fans queries out in parallel.
type Adapter struct {
	provider Provider
	store    cache.Store

	mu sync.Mutex
	// quotaExhausted sticks for the adapter's lifetime (one pipeline run):
	// once the provider says 401/402/403, further calls are pointless.
	quotaExhausted bool
	stats          Stats
}

func NewAdapter(provider Provider, store cache.Store) *Adapter {
	return &Adapter{provider: provider, store: store}
}

// Stats returns the counters accumulated so far.
func (a *Adapter) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Search resolves a query through cache then provider. It never reports an
// error; degraded outcomes surface in Stats.
func (a *Adapter) Search(ctx context.Context, query string, kind Kind, count int) []Hit {
	key := cache.Key("search-"+string(kind), query)

	if a.store != nil {
		if raw, err := a.store.Get(ctx, key); err == nil {
			var hits []Hit
			if err := json.Unmarshal(raw, &hits); err == nil {
				a.count(func(s *Stats) { s.CacheHits++ })
				return hits
			}
			slog.Debug("discarding malformed cache payload", "key", key)
		}
	}
	a.count(func(s *Stats) { s.CacheMisses++ })

	if a.exhausted() {
		return nil
	}

	hits, err := a.callWithRetry(ctx, query, kind, count)
	if err != nil {
		a.count(func(s *Stats) { s.Errors++ })
		slog.Warn("search degraded to empty result", "query", query, "kind", kind, "error", err)
		return nil
	}

	if raw, err := json.Marshal(hits); err == nil {
		cache.WriteAsync(a.store, key, raw, cache.SearchTTL)
	}
	return hits
}

func (a *Adapter) callWithRetry(ctx context.Context, query string, kind Kind, count int) ([]Hit, error) {
	hits, err := a.call(ctx, query, kind, count)
	if err == nil {
		return hits, nil
	}
	if isQuotaError(err) {
		a.mu.Lock()
		a.quotaExhausted = true
		a.mu.Unlock()
		slog.Warn("search provider quota/auth failure, disabling provider for this run", "error", err)
		return nil, err
	}
	if !isTransient(err) {
		return nil, err
	}

	select {
	case <-time.After(retryBackoff):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return a.call(ctx, query, kind, count)
}

func (a *Adapter) count(fn func(*Stats)) {
	a.mu.Lock()
	fn(&a.stats)
	a.mu.Unlock()
}

func (a *Adapter) exhausted() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.quotaExhausted
}

func (a *Adapter) call(ctx context.Context, query string, kind Kind, count int) ([]Hit, error) {
	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()
	return a.provider.Search(callCtx, query, kind, count)
}

func isQuotaError(err error) bool {
	var se *StatusError
	if !errors.As(err, &se) {
		return false
	}
	switch se.Status {
	case http.StatusUnauthorized, http.StatusPaymentRequired, http.StatusForbidden:
		return true
	}
	return false
}

// isTransient treats timeouts, network errors, and 5xx as retryable.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status >= 500
	}
	// Anything else reaching here is a transport-level failure.
	return true
}
