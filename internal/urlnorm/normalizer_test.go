package urlnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "lowercases scheme and host, strips www",
			in:   "HTTPS://WWW.Example.COM/Guide",
			want: "https://example.com/Guide",
		},
		{
			name: "strips trailing slash except root",
			in:   "https://example.com/docs/",
			want: "https://example.com/docs",
		},
		{
			name: "strips tracking params",
			in:   "https://example.com/post?utm_source=x&utm_medium=y&id=7",
			want: "https://example.com/post?id=7",
		},
		{
			name: "youtube watch form",
			in:   "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42",
			want: "https://youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name: "youtu.be short form",
			in:   "https://youtu.be/dQw4w9WgXcQ",
			want: "https://youtube.com/watch?v=dQw4w9WgXcQ",
		},
		{
			name: "unwraps redirect wrapper",
			in:   "https://google.com/url?q=https://example.com/article",
			want: "https://example.com/article",
		},
		{
			name: "unwraps amp path",
			in:   "https://google.com/amp/s/example.com/amp/story",
			want: "https://example.com/amp/story",
		},
		{
			name: "search page collapses to sentinel",
			in:   "https://www.google.com/search?q=learn+go",
			want: "search://google.com",
		},
		{
			name: "scholar subdomain collapses too",
			in:   "https://scholar.google.com/search?q=raft",
			want: "search://scholar.google.com",
		},
		{
			name: "youtube results page collapses",
			in:   "https://youtube.com/results?search_query=go",
			want: "search://youtube.com",
		},
		{
			name: "malformed url truncates at ampersand",
			in:   "ht!tp://%%bad&utm_source=x",
			want: "ht!tp://%%bad",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"https://www.youtube.com/watch?v=abc123XYZ",
		"https://youtu.be/abc123XYZ",
		"https://Example.com/a/b/?utm_source=mail",
		"https://google.com/search?q=x",
		"not a url at all",
		"https://example.com/page?b=2&a=1",
	}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalizeYouTubeFormsCollapse(t *testing.T) {
	a := Normalize("https://www.youtube.com/watch?v=Ks-_Mh1QhMc")
	b := Normalize("https://youtu.be/Ks-_Mh1QhMc")
	assert.Equal(t, a, b)
}

func TestIsAllowed(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"plain article", "https://example.com/intro-to-go", true},
		{"youtube video", "https://youtube.com/watch?v=abc", true},
		{"ftp scheme", "ftp://example.com/file", false},
		{"javascript scheme", "javascript:alert(1)", false},
		{"search engine root", "https://google.com/", false},
		{"search results path", "https://duckduckgo.com/search?q=go", false},
		{"youtube results page", "https://youtube.com/results?search_query=go", false},
		{"course aggregator", "https://classcentral.com/course/golang-101", false},
		{"aggregator subdomain", "https://www.classcentral.com/x", false},
		{"short form video", "https://tiktok.com/@someone/video/123", false},
		{"generic search path on normal site", "https://docs.python.org/search?q=dict", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAllowed(tt.in))
		})
	}
}

func TestMatchesDomain(t *testing.T) {
	assert.True(t, MatchesDomain("https://blog.example.com/p", "*.example.com"))
	assert.True(t, MatchesDomain("https://example.com/p", "*.example.com"))
	assert.True(t, MatchesDomain("https://www.example.com/p", "example.com"))
	assert.False(t, MatchesDomain("https://example.com.evil.io/p", "example.com"))
	assert.False(t, MatchesDomain("https://other.org", "*.example.com"))
}
