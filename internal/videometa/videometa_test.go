package videometa

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pathforge/roadmap/internal/cache"
	"github.com/pathforge/roadmap/internal/types/roadmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMinutes(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"PT1H30M15S", 91},
		{"PT45M", 45},
		{"PT59S", 1},
		{"1:30:15", 91},
		{"12:45", 13},
		{"2h 15m", 135},
		{"3h", 180},
		{"45 min", 45},
		{"", DefaultMinutes},
		{"soon", DefaultMinutes},
		{"PT", DefaultMinutes},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseMinutes(tt.in))
		})
	}
}

type fakeVideoProvider struct {
	metas []Metadata
	err   error
	calls int
}

func (f *fakeVideoProvider) GetVideos(_ context.Context, ids []string) ([]Metadata, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	var out []Metadata
	for _, meta := range f.metas {
		for _, id := range ids {
			if meta.ID == id {
				out = append(out, meta)
			}
		}
	}
	return out, nil
}

func TestEnrichFetchesAndParses(t *testing.T) {
	provider := &fakeVideoProvider{metas: []Metadata{
		{ID: "a", Title: "Go in depth", Channel: "someone", Duration: "PT1H2M1S", ViewCount: 1000},
	}}
	e := NewEnricher(provider, cache.NewMemory())

	got := e.Enrich(context.Background(), []string{"a", ""})
	require.Contains(t, got, "a")
	assert.Equal(t, 63, got["a"].DurationMinutes)
	assert.Equal(t, 1, provider.calls)
}

func TestEnrichCacheFirst(t *testing.T) {
	ctx := context.Background()
	store := cache.NewMemory()
	provider := &fakeVideoProvider{metas: []Metadata{{ID: "a", Duration: "PT10M"}}}
	e := NewEnricher(provider, store)

	e.Enrich(ctx, []string{"a"})
	time.Sleep(50 * time.Millisecond) // cache write is fire-and-forget

	e2 := NewEnricher(provider, store)
	got := e2.Enrich(ctx, []string{"a"})
	require.Contains(t, got, "a")
	assert.Equal(t, 1, provider.calls, "second enricher must hit the cache")
}

func TestEnrichQuotaFailureSkipsQuietly(t *testing.T) {
	provider := &fakeVideoProvider{err: &QuotaError{Status: 403}}
	e := NewEnricher(provider, nil)

	got := e.Enrich(context.Background(), []string{"a", "b"})
	assert.Empty(t, got, "quota failure means unenriched, not failed")
}

func TestEnrichProviderErrorSkipsQuietly(t *testing.T) {
	provider := &fakeVideoProvider{err: errors.New("network down")}
	e := NewEnricher(provider, nil)
	assert.Empty(t, e.Enrich(context.Background(), []string{"a"}))
}

func TestIsLikelyOffTopic(t *testing.T) {
	mc := &roadmap.ModuleContext{
		Topic:       "Go",
		Title:       "Goroutines and Channels",
		Description: "concurrency primitives goroutines channels select",
		AnchorTerms: []string{"goroutine", "channel"},
	}

	tests := []struct {
		name    string
		title   string
		channel string
		want    bool
	}{
		{
			name:  "anchor match always keeps",
			title: "Goroutine scheduling masterclass",
			want:  false,
		},
		{
			name:  "unrelated content rejected",
			title: "My morning routine vlog #life #daily #fun",
			want:  true,
		},
		{
			name:  "shorts vocabulary with weak similarity rejected",
			title: "viral shorts compilation",
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLikelyOffTopic(mc, tt.title, tt.channel))
		})
	}
}
