package videometa

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	youtubeBaseURL        = "https://www.googleapis.com/youtube/v3"
	youtubeRequestTimeout = 10 * time.Second
)

// YouTubeClient implements Provider against the YouTube Data API videos
// endpoint. A 403 means the daily quota is gone; the client reports it as a
// QuotaError so the enricher skips enrichment instead of failing the run.
type YouTubeClient struct {
	base   string
	apiKey string
	http   *http.Client
}

type YouTubeOption func(*YouTubeClient)

func NewYouTubeClient(apiKey string, opts ...YouTubeOption) *YouTubeClient {
	c := &YouTubeClient{
		base:   youtubeBaseURL,
		apiKey: apiKey,
		http:   &http.Client{Timeout: youtubeRequestTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func WithYouTubeBaseURL(base string) YouTubeOption {
	return func(c *YouTubeClient) { c.base = base }
}

func WithYouTubeHTTPClient(client *http.Client) YouTubeOption {
	return func(c *YouTubeClient) { c.http = client }
}

type youtubeListResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
			LikeCount string `json:"likeCount"`
		} `json:"statistics"`
	} `json:"items"`
}

func (c *YouTubeClient) GetVideos(ctx context.Context, ids []string) ([]Metadata, error) {
	params := url.Values{}
	params.Set("part", "snippet,contentDetails,statistics")
	params.Set("id", strings.Join(ids, ","))
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/videos?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnauthorized {
		return nil, &QuotaError{Status: resp.StatusCode}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("video metadata endpoint returned status %d", resp.StatusCode)
	}

	var body youtubeListResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding video metadata response: %w", err)
	}

	metas := make([]Metadata, 0, len(body.Items))
	for _, item := range body.Items {
		metas = append(metas, Metadata{
			ID:              item.ID,
			Title:           item.Snippet.Title,
			Channel:         item.Snippet.ChannelTitle,
			Duration:        item.ContentDetails.Duration,
			DurationMinutes: ParseMinutes(item.ContentDetails.Duration),
			ViewCount:       parseCount(item.Statistics.ViewCount),
			LikeCount:       parseCount(item.Statistics.LikeCount),
		})
	}
	return metas, nil
}

func parseCount(s string) int64 {
	if s == "" {
		return 0
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
