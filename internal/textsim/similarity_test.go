package textsim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "lowercases and strips punctuation",
			input: "Learn Go, Fast!",
			want:  []string{"learn", "fast"},
		},
		{
			name:  "keeps technical characters",
			input: "C++ and C# vs node.js",
			want:  []string{"c++", "and", "node.j"},
		},
		{
			name:  "drops short tokens",
			input: "go is a ok language",
			want:  []string{"language"},
		},
		{
			name:  "stems common suffixes",
			input: "building builders tested caches",
			want:  []string{"build", "builder", "test", "cach"},
		},
		{
			name:  "empty input",
			input: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestLexicalContainment(t *testing.T) {
	// Title fully contained in a longer description scores 1 despite the
	// length gap; symmetric Jaccard would punish it.
	desc := "goroutines channels select statements and concurrency patterns in go"
	title := "concurrency patterns"
	assert.Equal(t, 1.0, Lexical(desc, title))
	assert.Equal(t, Lexical(desc, title), Lexical(title, desc))
}

func TestHybridBounds(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"identical", "kubernetes networking deep dive", "kubernetes networking deep dive"},
		{"disjoint", "baroque music history", "rust memory safety"},
		{"partial", "intro to sql joins", "sql joins explained with examples"},
		{"one empty", "anything", ""},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Hybrid(tt.a, tt.b)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0)
		})
	}
}

func TestHybridIdentity(t *testing.T) {
	text := "distributed systems consensus raft"
	assert.InDelta(t, 1.0, Hybrid(text, text), 1e-9)
}

func TestHybridIdentityShortTokens(t *testing.T) {
	// "Go" and "C#" fall below the minimum token length and tokenize to
	// nothing; equal inputs must still score 1.0, different ones 0.
	assert.InDelta(t, 1.0, Hybrid("Go", "Go"), 1e-9)
	assert.InDelta(t, 1.0, Hybrid("go", " Go "), 1e-9)
	assert.Zero(t, Hybrid("Go", "C#"))
}

func TestHybridDeterministic(t *testing.T) {
	a := "machine learning gradient descent"
	b := "gradient descent from scratch video"
	first := Hybrid(a, b)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Hybrid(a, b))
	}
}

func TestHybridRanksRelatedAboveUnrelated(t *testing.T) {
	module := "http servers routing middleware in go"
	related := "building an http server in go with middleware"
	unrelated := "watercolor painting for beginners"
	assert.Greater(t, Hybrid(module, related), Hybrid(module, unrelated))
}

func TestEmbedZeroForEmpty(t *testing.T) {
	vec := Embed("")
	for _, v := range vec {
		assert.Zero(t, v)
	}
	assert.Zero(t, Cosine(vec, Embed("something")))
}
