package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/operator"
)

// ESConfig configures the self-hosted provider.
type ESConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
}

// ESProvider implements Provider over a self-hosted Elasticsearch index of
// pre-crawled learning resources. Deployments without web-search API access
// run entirely against this backend; others use it as a supplementary
// candidate source.
type ESProvider struct {
	client    *elasticsearch.TypedClient
	indexName string
}

// esResource is the indexed document shape.
type esResource struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Kind        string `json:"kind"`
	Duration    string `json:"duration,omitempty"`
	Channel     string `json:"channel,omitempty"`
}

func NewESProvider(config ESConfig) (*ESProvider, error) {
	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
	}
	if config.Username != "" && config.Password != "" {
		cfg.Username = config.Username
		cfg.Password = config.Password
	}

	client, err := elasticsearch.NewTypedClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}
	return &ESProvider{client: client, indexName: config.IndexName}, nil
}

func (p *ESProvider) Search(ctx context.Context, query string, kind Kind, count int) ([]Hit, error) {
	or := operator.Or
	multiMatch := &types.MultiMatchQuery{
		Query:    query,
		Fields:   []string{"title^2.0", "description"},
		Operator: &or,
	}

	kindFilter := "web"
	if kind == KindVideos {
		kindFilter = "video"
	}

	res, err := p.client.Search().
		Index(p.indexName).
		Query(&types.Query{
			Bool: &types.BoolQuery{
				Must: []types.Query{{MultiMatch: multiMatch}},
				Filter: []types.Query{{
					Term: map[string]types.TermQuery{
						"kind": {Value: kindFilter},
					},
				}},
			},
		}).
		Size(count).
		Do(ctx)
	if err != nil {
		return nil, fmt.Errorf("execute resource search: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits.Hits))
	for _, h := range res.Hits.Hits {
		var doc esResource
		if err := json.Unmarshal(h.Source_, &doc); err != nil {
			slog.Debug("skipping unmappable resource document", "error", err)
			continue
		}
		hits = append(hits, Hit{
			Title:    doc.Title,
			Link:     doc.URL,
			Snippet:  doc.Description,
			Duration: doc.Duration,
			Channel:  doc.Channel,
		})
	}

	slog.Debug("es resource search done", "query", query, "kind", kind, "hits", len(hits))
	return hits, nil
}
