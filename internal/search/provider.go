// Package search builds the goal- and level-shaped queries the pipeline
// issues, and wraps pluggable search providers with caching, retry, and
// quota-failure degradation. Provider failures degrade to fewer candidates,
// never to a failed roadmap.
package search

import "context"

// Kind distinguishes the two search surfaces a provider must expose.
type Kind string

const (
	KindWeb    Kind = "web"
	KindVideos Kind = "videos"
)

// Hit is one raw search result. Duration is only populated by video search
// and only when the provider reports it.
type Hit struct {
	Title    string `json:"title"`
	Link     string `json:"link"`
	Snippet  string `json:"snippet,omitempty"`
	Duration string `json:"duration,omitempty"`
	Channel  string `json:"channel,omitempty"`
}

// Provider is the external search collaborator. Implementations must honor
// ctx cancellation and return provider-level failures as errors; the
// adapter decides which failures are retryable.
type Provider interface {
	Search(ctx context.Context, query string, kind Kind, count int) ([]Hit, error)
}
