// Package videometa enriches video candidates with duration, channel, and
// popularity metadata fetched in batches, and filters videos that are
// likely off-topic for their module despite matching the query.
package videometa

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pathforge/roadmap/internal/cache"
	"golang.org/x/sync/errgroup"
)

const (
	batchSize    = 50
	fetchTimeout = 4 * time.Second
)

// Metadata is what the provider knows about one video.
type Metadata struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Channel         string `json:"channel"`
	Duration        string `json:"duration"`
	DurationMinutes int    `json:"duration_minutes"`
	ViewCount       int64  `json:"view_count"`
	LikeCount       int64  `json:"like_count"`
}

// Provider is the external video-metadata collaborator.
type Provider interface {
	GetVideos(ctx context.Context, ids []string) ([]Metadata, error)
}

// QuotaError marks a quota/auth failure the enricher treats as "skip
// enrichment", not as a pipeline failure.
type QuotaError struct{ Status int }

func (e *QuotaError) Error() string { return "video metadata quota/auth failure" }

// Enricher batches video-ID lookups with a per-ID cache in front.
type Enricher struct {
	provider Provider
	store    cache.Store
}

func NewEnricher(provider Provider, store cache.Store) *Enricher {
	return &Enricher{provider: provider, store: store}
}

// Enrich resolves metadata for the given video IDs, cache-first. Provider
// failure for a batch drops that batch's metadata; the videos keep their
// search-provided estimates and stay in the pipeline.
func (e *Enricher) Enrich(ctx context.Context, ids []string) map[string]Metadata {
	out := make(map[string]Metadata, len(ids))
	var missing []string

	for _, id := range ids {
		if id == "" {
			continue
		}
		if meta, ok := e.fromCache(ctx, id); ok {
			out[id] = meta
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) == 0 || e.provider == nil {
		return out
	}

	results := make([][]Metadata, (len(missing)+batchSize-1)/batchSize)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < len(missing); i += batchSize {
		batchIdx := i / batchSize
		batch := missing[i:min(i+batchSize, len(missing))]
		g.Go(func() error {
			fetchCtx, cancel := context.WithTimeout(gctx, fetchTimeout)
			defer cancel()

			metas, err := e.provider.GetVideos(fetchCtx, batch)
			if err != nil {
				// Quota errors and timeouts alike: the batch simply goes
				// unenriched. Returning the error would cancel sibling
				// batches, which is the opposite of what degradation wants.
				slog.Warn("video metadata batch skipped", "size", len(batch), "error", err)
				return nil
			}
			results[batchIdx] = metas
			return nil
		})
	}
	_ = g.Wait()

	for _, metas := range results {
		for _, meta := range metas {
			if meta.DurationMinutes == 0 {
				meta.DurationMinutes = ParseMinutes(meta.Duration)
			}
			out[meta.ID] = meta
			e.toCache(meta)
		}
	}
	return out
}

func (e *Enricher) fromCache(ctx context.Context, id string) (Metadata, bool) {
	if e.store == nil {
		return Metadata{}, false
	}
	raw, err := e.store.Get(ctx, cache.Key("videometa", id))
	if err != nil {
		return Metadata{}, false
	}
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return Metadata{}, false
	}
	return meta, true
}

func (e *Enricher) toCache(meta Metadata) {
	raw, err := json.Marshal(meta)
	if err != nil {
		return
	}
	cache.WriteAsync(e.store, cache.Key("videometa", meta.ID), raw, cache.VideoMetaTTL)
}
