package allocate

import (
	"net/url"
	"strings"

	"github.com/pathforge/roadmap/internal/classify"
	"github.com/pathforge/roadmap/internal/search"
	"github.com/pathforge/roadmap/internal/types/roadmap"
	"github.com/pathforge/roadmap/internal/urlnorm"
	"github.com/pathforge/roadmap/internal/videometa"
)

// Starting estimates for non-video resources. Videos carry a parsed
// duration or get refined by metadata enrichment later.
var defaultMinutesByType = map[roadmap.ResourceType]int{
	roadmap.TypeArticle:       15,
	roadmap.TypeDocumentation: 25,
	roadmap.TypeTutorial:      30,
	roadmap.TypePractice:      40,
}

// Merger turns raw search hits into deduplicated candidates. Hits sharing a
// normalized URL collapse into one candidate whose Appearances climbs with
// each sighting. Gating happens here, at ingestion, so nothing downstream
// ever sees a disallowed or excluded URL.
type Merger struct {
	classifier      *classify.Classifier
	excludedURLs    map[string]struct{}
	excludedDomains []string

	byURL map[string]*roadmap.Candidate
	order []*roadmap.Candidate

	// Seen and Gated feed diagnostics.
	Seen  int
	Gated int
}

func NewMerger(c *classify.Classifier, excludedURLs, excludedDomains []string) *Merger {
	m := &Merger{
		classifier:      c,
		excludedURLs:    make(map[string]struct{}, len(excludedURLs)),
		excludedDomains: excludedDomains,
		byURL:           make(map[string]*roadmap.Candidate),
	}
	for _, raw := range excludedURLs {
		m.excludedURLs[urlnorm.Normalize(raw)] = struct{}{}
	}
	return m
}

// Add ingests one hit. Disallowed and excluded hits are counted and dropped;
// repeat sightings of a URL bump the existing candidate instead of creating
// a second one.
func (m *Merger) Add(hit search.Hit, kind search.Kind) {
	m.Seen++
	if hit.Link == "" || strings.TrimSpace(hit.Title) == "" {
		m.Gated++
		return
	}
	if !urlnorm.IsAllowed(hit.Link) || m.excluded(hit.Link) {
		m.Gated++
		return
	}

	normalized := urlnorm.Normalize(hit.Link)
	if existing, ok := m.byURL[normalized]; ok {
		existing.Appearances++
		if existing.Description == "" {
			existing.Description = hit.Snippet
		}
		return
	}

	cand := &roadmap.Candidate{
		Title:         strings.TrimSpace(hit.Title),
		URL:           hit.Link,
		NormalizedURL: normalized,
		Description:   hit.Snippet,
		Channel:       hit.Channel,
		Appearances:   1,
	}
	m.annotate(cand, hit, kind)

	m.byURL[normalized] = cand
	m.order = append(m.order, cand)
}

func (m *Merger) annotate(cand *roadmap.Candidate, hit search.Hit, kind search.Kind) {
	cand.Type = m.classifier.ResourceType(cand.URL)
	if kind == search.KindVideos {
		cand.Type = roadmap.TypeVideo
	}

	if cand.Type == roadmap.TypeVideo {
		if u, err := url.Parse(cand.URL); err == nil {
			cand.VideoID = urlnorm.YouTubeVideoID(u)
		}
		cand.EstimatedMinutes = videometa.DefaultMinutes
		if hit.Duration != "" {
			cand.EstimatedMinutes = videometa.ParseMinutes(hit.Duration)
		}
	} else if minutes, ok := defaultMinutesByType[cand.Type]; ok {
		cand.EstimatedMinutes = minutes
	} else {
		cand.EstimatedMinutes = videometa.DefaultMinutes
	}

	if m.classifier.IsListingPage(cand.URL, cand.Title, cand.Description) {
		cand.Flag(classify.FlagListingPage)
	}
	if m.classifier.IsDiscussion(cand.URL, cand.Title, cand.Description) {
		cand.Flag(classify.FlagDiscussion)
	}
	m.classifier.TagLanguage(cand)
}

func (m *Merger) excluded(rawURL string) bool {
	if _, ok := m.excludedURLs[urlnorm.Normalize(rawURL)]; ok {
		return true
	}
	for _, pattern := range m.excludedDomains {
		if urlnorm.MatchesDomain(rawURL, pattern) {
			return true
		}
	}
	return false
}

// Candidates returns the merged pool in first-seen order.
func (m *Merger) Candidates() []*roadmap.Candidate {
	return m.order
}
