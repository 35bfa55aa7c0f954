package classify

import (
	"testing"

	"github.com/pathforge/roadmap/internal/types/roadmap"
	"github.com/stretchr/testify/assert"
)

func TestResourceType(t *testing.T) {
	c := New(nil)

	tests := []struct {
		name string
		url  string
		want roadmap.ResourceType
	}{
		{"practice site", "https://leetcode.com/problems/two-sum", roadmap.TypePractice},
		{"doc domain", "https://docs.python.org/3/library/asyncio.html", roadmap.TypeDocumentation},
		{"doc path marker", "https://example.com/docs/getting-started", roadmap.TypeDocumentation},
		{"tutorial site", "https://realpython.com/python-sockets", roadmap.TypeTutorial},
		{"fallback article", "https://somewhere.io/posts/why-monads", roadmap.TypeArticle},
		{"unparseable", "%%%", roadmap.TypeArticle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ResourceType(tt.url))
		})
	}
}

func TestIsListingPage(t *testing.T) {
	c := New(nil)

	tests := []struct {
		name        string
		url         string
		title       string
		description string
		want        bool
	}{
		{
			name:  "keyword co-occurrence",
			url:   "https://example.com/go",
			title: "Course catalog: browse our directory of Go classes",
			want:  true,
		},
		{
			name:  "single keyword is not enough",
			url:   "https://example.com/go",
			title: "Go category theory for programmers",
			want:  false,
		},
		{
			name:  "search path",
			url:   "https://example.com/search?q=golang",
			title: "Golang",
			want:  true,
		},
		{
			name:  "query marker",
			url:   "https://example.com/find?query=golang",
			title: "Golang",
			want:  true,
		},
		{
			name:  "youtube results",
			url:   "https://youtube.com/results?search_query=go",
			title: "go - YouTube",
			want:  true,
		},
		{
			name:  "plain article",
			url:   "https://example.com/posts/errors-in-go",
			title: "Error handling in Go",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsListingPage(tt.url, tt.title, tt.description))
		})
	}
}

func TestIsDiscussion(t *testing.T) {
	c := New(nil)

	tests := []struct {
		name  string
		url   string
		title string
		want  bool
	}{
		{
			name:  "meta question",
			url:   "https://reddit.com/r/golang/comments/abc",
			title: "Best resources to learn Go in 2025?",
			want:  true,
		},
		{
			name:  "question form title",
			url:   "https://example.com/thread/1",
			title: "How hard is concurrency really?",
			want:  true,
		},
		{
			name:  "community host without educational signal",
			url:   "https://stackoverflow.com/questions/123",
			title: "Goroutine leak in my worker pool",
			want:  true,
		},
		{
			name:  "educational signal vetoes",
			url:   "https://reddit.com/r/golang/wiki/index",
			title: "A community-maintained Go tutorial and guide",
			want:  false,
		},
		{
			name:  "ordinary article",
			url:   "https://example.com/blog/generics",
			title: "Generics under the hood",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsDiscussion(tt.url, tt.title, ""))
		})
	}
}

func TestAuthorityTier(t *testing.T) {
	c := New(nil)

	tests := []struct {
		name    string
		url     string
		typ     roadmap.ResourceType
		channel string
		want    roadmap.AuthorityTier
	}{
		{"official docs", "https://docs.python.org/3/", roadmap.TypeDocumentation, "", roadmap.TierOfficialDocs},
		{"vendor docs", "https://learn.microsoft.com/azure", roadmap.TypeDocumentation, "", roadmap.TierVendorDocs},
		{"university", "https://ocw.mit.edu/courses/6-006", roadmap.TypeArticle, "", roadmap.TierUniversityDirect},
		{"edu tld", "https://cs.unknowncollege.edu/notes", roadmap.TypeArticle, "", roadmap.TierEducationDomain},
		{"mooc", "https://coursera.org/learn/algorithms", roadmap.TypeArticle, "", roadmap.TierEducationDomain},
		{"trusted channel", "https://youtube.com/watch?v=x", roadmap.TypeVideo, "freeCodeCamp.org", roadmap.TierYoutubeTrusted},
		{"unknown channel", "https://youtube.com/watch?v=x", roadmap.TypeVideo, "random dude", roadmap.TierYoutubeUnknown},
		{"blog", "https://dev.to/someone/why-zig", roadmap.TypeArticle, "", roadmap.TierBlog},
		{"community", "https://quora.com/What-is-Go", roadmap.TypeArticle, "", roadmap.TierCommunity},
		{"unknown", "https://mystery-site.io/page", roadmap.TypeArticle, "", roadmap.TierUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.AuthorityTier(tt.url, tt.typ, tt.channel))
		})
	}
}

func TestAuthorityScoreTable(t *testing.T) {
	// The tier -> bump mapping is a scoring contract; a drift here changes
	// every allocation downstream.
	want := map[roadmap.AuthorityTier]int{
		roadmap.TierOfficialDocs:     5,
		roadmap.TierVendorDocs:       4,
		roadmap.TierUniversityDirect: 3,
		roadmap.TierYoutubeTrusted:   2,
		roadmap.TierEducationDomain:  2,
		roadmap.TierBlog:             2,
		roadmap.TierYoutubeUnknown:   1,
		roadmap.TierCommunity:        1,
		roadmap.TierUnknown:          0,
	}
	for tier, bump := range want {
		assert.Equal(t, bump, AuthorityScore(tier), "tier %s", tier)
	}
}

func TestIsGarbage(t *testing.T) {
	c := New(nil)

	tests := []struct {
		name string
		cand roadmap.Candidate
		want bool
		flag string
	}{
		{
			name: "listing page",
			cand: roadmap.Candidate{
				URL:         "https://example.com/search?q=go",
				Title:       "go",
				Description: "a long enough description of something",
			},
			want: true,
			flag: FlagListingPage,
		},
		{
			name: "garbage domain substring",
			cand: roadmap.Candidate{
				URL:         "https://www.chegg.com/homework-help/go",
				Title:       "Go homework answers",
				Description: "solutions for chapter three exercises",
			},
			want: true,
			flag: FlagGarbageDomain,
		},
		{
			name: "suspicious tld",
			cand: roadmap.Candidate{
				URL:         "https://free-courses.xyz/go",
				Title:       "Totally legit Go lessons",
				Description: "download all premium content free",
			},
			want: true,
			flag: FlagSuspiciousTLD,
		},
		{
			name: "thin description with no channel",
			cand: roadmap.Candidate{
				URL:         "https://example.com/x",
				Title:       "Go",
				Description: "go stuff",
				Type:        roadmap.TypeArticle,
			},
			want: true,
			flag: FlagThinContent,
		},
		{
			name: "healthy candidate",
			cand: roadmap.Candidate{
				URL:         "https://example.com/posts/profiling-go",
				Title:       "Profiling Go programs in production",
				Description: "a practical walkthrough of pprof and trace tooling",
				Type:        roadmap.TypeArticle,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := tt.cand
			got := c.IsGarbage(&cand)
			assert.Equal(t, tt.want, got)
			if tt.flag != "" {
				assert.True(t, cand.HasFlag(tt.flag))
			}
		})
	}
}
