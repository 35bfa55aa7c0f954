package score

import (
	"context"
	"errors"
	"testing"

	"github.com/pathforge/roadmap/internal/classify"
	"github.com/pathforge/roadmap/internal/types/roadmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handsOnModule() *roadmap.ModuleContext {
	return &roadmap.ModuleContext{
		Topic:         "Go",
		Title:         "Goroutines and Channels",
		Description:   "concurrency primitives goroutines channels select statements",
		Goal:          roadmap.GoalHandsOn,
		SkillLevel:    roadmap.LevelIntermediate,
		BudgetMinutes: 180,
	}
}

func TestContextFitBounds(t *testing.T) {
	mc := handsOnModule()
	cands := []*roadmap.Candidate{
		{Title: "Goroutines hands-on project tutorial", Description: "build a worker pool with channels", Type: roadmap.TypeTutorial, EstimatedMinutes: 60},
		{Title: "Unrelated gardening", Description: "tomato varieties", Type: roadmap.TypeArticle, EstimatedMinutes: 900},
		{Title: "", Description: "", Type: roadmap.TypeDocumentation, ScopePenalty: 15},
	}
	for _, cand := range cands {
		fit := ContextFit(mc, cand)
		assert.GreaterOrEqual(t, fit, 0)
		assert.LessOrEqual(t, fit, 100)
	}
}

func TestContextFitPrefersOnTopic(t *testing.T) {
	mc := handsOnModule()
	onTopic := &roadmap.Candidate{
		Title:       "Build a concurrent pipeline with goroutines and channels",
		Description: "hands-on project using select statements",
		Type:        roadmap.TypeTutorial, EstimatedMinutes: 60,
	}
	offTopic := &roadmap.Candidate{
		Title:       "Medieval castle architecture",
		Description: "moats and murder holes",
		Type:        roadmap.TypeArticle, EstimatedMinutes: 60,
	}
	assert.Greater(t, ContextFit(mc, onTopic), ContextFit(mc, offTopic))
}

func TestGoalFit(t *testing.T) {
	tests := []struct {
		name string
		goal roadmap.LearningGoal
		cand roadmap.Candidate
		want int
	}{
		{"hands_on favors tutorial", roadmap.GoalHandsOn, roadmap.Candidate{Type: roadmap.TypeTutorial}, goalFitFull},
		{"hands_on partial for article", roadmap.GoalHandsOn, roadmap.Candidate{Type: roadmap.TypeArticle}, goalFitPartial},
		{"hands_on zero for docs", roadmap.GoalHandsOn, roadmap.Candidate{Type: roadmap.TypeDocumentation}, 0},
		{"conceptual favors docs", roadmap.GoalConceptual, roadmap.Candidate{Type: roadmap.TypeDocumentation}, goalFitFull},
		{"quick overview favors short", roadmap.GoalQuickOverview, roadmap.Candidate{Type: roadmap.TypePractice, EstimatedMinutes: 30}, goalFitFull},
		{"quick overview partial for long", roadmap.GoalQuickOverview, roadmap.Candidate{Type: roadmap.TypeVideo, EstimatedMinutes: 120}, goalFitPartial},
		{"deep mastery favors long video", roadmap.GoalDeepMastery, roadmap.Candidate{Type: roadmap.TypeVideo, EstimatedMinutes: 90}, goalFitFull},
		{"deep mastery partial for short video", roadmap.GoalDeepMastery, roadmap.Candidate{Type: roadmap.TypeVideo, EstimatedMinutes: 10}, goalFitPartial},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand := tt.cand
			assert.Equal(t, tt.want, goalFit(tt.goal, &cand))
		})
	}
}

func TestTimeFit(t *testing.T) {
	assert.Equal(t, timeFitBase, timeFit(180, 100))
	assert.Equal(t, timeFitOversize, timeFit(180, 250))
	assert.Equal(t, 0, timeFit(180, 400))
	assert.Equal(t, timeFitBase, timeFit(0, 400), "no budget means no time judgment")
}

func TestHeuristicRankAuthorityBreaksTies(t *testing.T) {
	// Same title and type: identical context fit, so the official-docs
	// candidate must outrank the unknown blog on authority alone.
	mc := handsOnModule()
	official := &roadmap.Candidate{
		Title: "Goroutines and channels tutorial", Description: "concurrency in go",
		URL: "https://docs.python.org/3/library/threading.html", Type: roadmap.TypeTutorial,
		EstimatedMinutes: 60,
	}
	unknown := &roadmap.Candidate{
		Title: "Goroutines and channels tutorial", Description: "concurrency in go",
		URL: "https://random-unknown-blog.io/post", Type: roadmap.TypeTutorial,
		EstimatedMinutes: 60,
	}

	ranked := NewHeuristic(classify.New(nil)).Rank(context.Background(), mc, []*roadmap.Candidate{unknown, official})
	require.Len(t, ranked, 2)
	assert.Same(t, official, ranked[0])
	assert.Equal(t, roadmap.TierOfficialDocs, official.AuthorityTier)
	assert.Equal(t, 5, official.AuthorityScore)
}

func TestHeuristicRankStable(t *testing.T) {
	mc := handsOnModule()
	a := &roadmap.Candidate{Title: "Goroutines tutorial", Description: "channels", URL: "https://a.example/x", Type: roadmap.TypeTutorial, EstimatedMinutes: 60}
	b := &roadmap.Candidate{Title: "Goroutines tutorial", Description: "channels", URL: "https://b.example/x", Type: roadmap.TypeTutorial, EstimatedMinutes: 60}

	ranked := NewHeuristic(classify.New(nil)).Rank(context.Background(), mc, []*roadmap.Candidate{a, b})
	assert.Same(t, a, ranked[0], "equal scores keep pool order")
}

type fakeChat struct {
	reply string
	err   error
}

func (f *fakeChat) Complete(context.Context, string, string) (string, error) {
	return f.reply, f.err
}

func llmCandidates() []*roadmap.Candidate {
	return []*roadmap.Candidate{
		{Title: "Goroutines tutorial", Description: "channels select", URL: "https://a.example/1", Type: roadmap.TypeTutorial, EstimatedMinutes: 60},
		{Title: "Channels deep dive", Description: "goroutines channels", URL: "https://b.example/2", Type: roadmap.TypeVideo, EstimatedMinutes: 45},
		{Title: "Select statement patterns", Description: "goroutines select", URL: "https://c.example/3", Type: roadmap.TypeArticle, EstimatedMinutes: 20},
	}
}

func TestLLMRankerReordersFromReply(t *testing.T) {
	chat := &fakeChat{reply: "Sure! ```json\n{\"selections\": [\"https://c.example/3\", \"https://a.example/1\"]}\n```"}
	ranker := NewLLMRanker(chat, NewHeuristic(classify.New(nil)))

	ranked := ranker.Rank(context.Background(), handsOnModule(), llmCandidates())
	require.Len(t, ranked, 3)
	assert.Equal(t, "https://c.example/3", ranked[0].URL)
	assert.Equal(t, "https://a.example/1", ranked[1].URL)
	assert.Equal(t, "https://b.example/2", ranked[2].URL, "unselected candidates trail in heuristic order")
}

func TestLLMRankerFallsBackOnError(t *testing.T) {
	chat := &fakeChat{err: errors.New("rate limited")}
	fallback := NewHeuristic(classify.New(nil))
	ranker := NewLLMRanker(chat, fallback)

	mc := handsOnModule()
	cands := llmCandidates()
	got := ranker.Rank(context.Background(), mc, cands)
	want := fallback.Rank(context.Background(), mc, cands)

	require.Equal(t, len(want), len(got))
	for i := range want {
		assert.Equal(t, want[i].URL, got[i].URL)
	}
}

func TestLLMRankerFallsBackOnGarbageReply(t *testing.T) {
	for _, reply := range []string{"not json", "{\"selections\": []}", "{\"selections\": [\"https://nowhere.example\"]}"} {
		ranker := NewLLMRanker(&fakeChat{reply: reply}, NewHeuristic(classify.New(nil)))
		got := ranker.Rank(context.Background(), handsOnModule(), llmCandidates())
		assert.Len(t, got, 3, "reply %q", reply)
	}
}
