package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	braveBaseURL   = "https://api.search.brave.com/res/v1"
	defaultTimeout = 8 * time.Second
)

// BraveClient implements Provider against the Brave Search API, which
// exposes both web and video search with duration/creator metadata.
type BraveClient struct {
	base   string
	apiKey string
	http   *http.Client
}

type BraveOption func(*BraveClient)

func NewBraveClient(apiKey string, opts ...BraveOption) *BraveClient {
	c := &BraveClient{
		base:   braveBaseURL,
		apiKey: apiKey,
		http:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithBraveBaseURL(base string) BraveOption {
	return func(c *BraveClient) { c.base = base }
}

func WithBraveHTTPClient(client *http.Client) BraveOption {
	return func(c *BraveClient) { c.http = client }
}

type braveWebResponse struct {
	Web struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"results"`
	} `json:"web"`
}

type braveVideoResponse struct {
	Results []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
		Video struct {
			Duration string `json:"duration"`
			Creator  string `json:"creator"`
		} `json:"video"`
	} `json:"results"`
}

// StatusError carries the HTTP status of a failed provider call so the
// adapter can tell quota/auth failures from transient ones.
type StatusError struct {
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("search provider returned status %d", e.Status)
}

func (c *BraveClient) Search(ctx context.Context, query string, kind Kind, count int) ([]Hit, error) {
	path := "/web/search"
	if kind == KindVideos {
		path = "/videos/search"
	}

	endpoint := c.base + path + "?q=" + url.QueryEscape(query) + "&count=" + strconv.Itoa(count)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Status: resp.StatusCode}
	}

	if kind == KindVideos {
		var parsed braveVideoResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("unmarshal video response: %w", err)
		}
		hits := make([]Hit, 0, len(parsed.Results))
		for _, r := range parsed.Results {
			hits = append(hits, Hit{
				Title:    r.Title,
				Link:     r.URL,
				Duration: r.Video.Duration,
				Channel:  r.Video.Creator,
			})
		}
		return hits, nil
	}

	var parsed braveWebResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal web response: %w", err)
	}
	hits := make([]Hit, 0, len(parsed.Web.Results))
	for _, r := range parsed.Web.Results {
		hits = append(hits, Hit{
			Title:   r.Title,
			Link:    r.URL,
			Snippet: r.Description,
		})
	}
	return hits, nil
}
