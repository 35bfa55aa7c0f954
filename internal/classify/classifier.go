// Package classify holds the per-candidate heuristics: resource typing,
// listing-page and discussion detection, authority tiering, and the hard
// garbage predicate. All classifiers are pure rule cascades over URL shape
// and text; there is no learned model here, so results are reproducible.
package classify

import (
	"strings"

	"github.com/pathforge/roadmap/internal/curated"
	"github.com/pathforge/roadmap/internal/types/roadmap"
	"github.com/pathforge/roadmap/internal/urlnorm"
)

// Classifier bundles the curated lists all detectors read.
type Classifier struct {
	lists *curated.Lists
}

func New(lists *curated.Lists) *Classifier {
	if lists == nil {
		lists = curated.Default()
	}
	return &Classifier{lists: lists}
}

// ResourceType infers a non-video candidate's type from its URL shape.
// Videos are typed at ingestion and never pass through here.
func (c *Classifier) ResourceType(rawURL string) roadmap.ResourceType {
	host := urlnorm.Host(rawURL)
	if host == "" {
		return roadmap.TypeArticle
	}

	if curated.HostMatches(host, c.lists.PracticeDomains) {
		return roadmap.TypePractice
	}
	if curated.HostMatches(host, c.lists.DocDomains) {
		return roadmap.TypeDocumentation
	}
	lower := strings.ToLower(rawURL)
	for _, marker := range c.lists.DocPathMarkers {
		if strings.Contains(lower, marker) {
			return roadmap.TypeDocumentation
		}
	}
	if curated.HostMatches(host, c.lists.TutorialDomains) {
		return roadmap.TypeTutorial
	}
	return roadmap.TypeArticle
}

var listingKeywords = []string{
	"search", "results", "catalog", "directory", "category", "browse",
	"learning path", "course list", "all courses", "top 10", "top 20",
	"best courses", "roundup",
}

var listingQueryMarkers = []string{"search", "q=", "query="}

// IsListingPage flags pages that list other resources instead of teaching
// anything themselves: course catalogs, search results, link roundups.
// Fires on keyword co-occurrence (two or more signals in the text) or on
// structural URL evidence alone.
func (c *Classifier) IsListingPage(rawURL, title, description string) bool {
	text := strings.ToLower(title + " " + description)
	hits := 0
	for _, kw := range listingKeywords {
		if strings.Contains(text, kw) {
			hits++
		}
	}
	if hits >= 2 {
		return true
	}

	lower := strings.ToLower(rawURL)
	host := urlnorm.Host(rawURL)
	if (host == "youtube.com" || host == "m.youtube.com") && strings.Contains(lower, "/results") {
		return true
	}
	if strings.Contains(lower, "/search") {
		return true
	}
	if i := strings.IndexByte(lower, '?'); i >= 0 {
		query := lower[i+1:]
		for _, marker := range listingQueryMarkers {
			if strings.Contains(query, marker) {
				return true
			}
		}
	}
	return false
}

var discussionSignals = []string{
	"best resources", "where to start", "where do i start", "recommend me",
	"recommendations for", "which course", "is it worth", "how do i learn",
	"what should i", "any suggestions", "vs reddit",
}

var educationalSignals = []string{
	"tutorial", "guide", "lesson", "docs", "documentation",
	"walkthrough", "introduction to", "explained", "deep dive",
	"reference", "handbook",
}

// IsDiscussion flags community Q&A and meta-content ("what should I use to
// learn X") that talks about resources rather than being one. Strong
// educational signals in the same text veto the flag.
func (c *Classifier) IsDiscussion(rawURL, title, description string) bool {
	text := strings.ToLower(title + " " + description)

	educational := false
	for _, sig := range educationalSignals {
		if strings.Contains(text, sig) {
			educational = true
			break
		}
	}

	for _, sig := range discussionSignals {
		if strings.Contains(text, sig) && !educational {
			return true
		}
	}

	// Question-form titles on community hosts are meta by default.
	titleLower := strings.ToLower(strings.TrimSpace(title))
	questionForm := strings.HasSuffix(titleLower, "?") &&
		(strings.HasPrefix(titleLower, "how ") || strings.HasPrefix(titleLower, "what ") ||
			strings.HasPrefix(titleLower, "which ") || strings.HasPrefix(titleLower, "should "))
	if questionForm && !educational {
		return true
	}

	host := urlnorm.Host(rawURL)
	if curated.HostMatches(host, c.lists.CommunityDomains) && !educational {
		return true
	}
	return false
}
