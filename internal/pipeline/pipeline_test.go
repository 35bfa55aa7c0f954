package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/pathforge/roadmap/internal/apperr"
	"github.com/pathforge/roadmap/internal/cache"
	"github.com/pathforge/roadmap/internal/search"
	"github.com/pathforge/roadmap/internal/types/roadmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cannedProvider struct {
	web    []search.Hit
	videos []search.Hit
}

func (p *cannedProvider) Search(_ context.Context, _ string, kind search.Kind, _ int) ([]search.Hit, error) {
	if kind == search.KindVideos {
		return p.videos, nil
	}
	return p.web, nil
}

func testProvider() *cannedProvider {
	return &cannedProvider{
		web: []search.Hit{
			{
				Title:   "Goroutines and channels tutorial",
				Link:    "https://gobyexample.com/goroutines",
				Snippet: "worked examples of goroutines channels and select statements",
			},
			{
				Title:   "Concurrency patterns with goroutines and channels",
				Link:    "https://go.dev/blog/pipelines",
				Snippet: "goroutines channels select fan-out fan-in pipeline patterns",
			},
		},
		videos: []search.Hit{
			{
				Title:    "Goroutines and channels explained",
				Link:     "https://www.youtube.com/watch?v=abc123def45",
				Duration: "12:00",
				Channel:  "GopherCon",
			},
		},
	}
}

func testPipeline(provider search.Provider) *Pipeline {
	adapter := search.NewAdapter(provider, cache.NewMemory())
	return New(adapter, nil, nil, nil)
}

func concurrencyModule(id string) *roadmap.Module {
	return &roadmap.Module{
		ID:             id,
		Title:          "Goroutines and Channels",
		Description:    "concurrency with goroutines channels and select statements",
		EstimatedHours: 2,
	}
}

func validRequest() *Request {
	return &Request{
		Topic:        "Go",
		SkillLevel:   roadmap.LevelIntermediate,
		LearningGoal: roadmap.GoalHandsOn,
		TotalHours:   2,
		Modules:      []*roadmap.Module{concurrencyModule("m1")},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing topic", func(r *Request) { r.Topic = " " }},
		{"no modules", func(r *Request) { r.Modules = nil }},
		{"module without id", func(r *Request) { r.Modules[0].ID = "" }},
		{"module without title", func(r *Request) { r.Modules[0].Title = "" }},
		{"negative hours", func(r *Request) { r.TotalHours = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			err := req.Validate()
			require.Error(t, err)
			var verr *apperr.ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}

	assert.NoError(t, validRequest().Validate())
}

func TestProfileDefaults(t *testing.T) {
	req := &Request{
		Topic: "Go",
		Modules: []*roadmap.Module{
			{ID: "a", Title: "A", EstimatedHours: 2},
			{ID: "b", Title: "B", EstimatedHours: 3},
		},
	}
	p := req.Profile()
	assert.Equal(t, roadmap.LevelBeginner, p.SkillLevel)
	assert.Equal(t, roadmap.GoalConceptual, p.Goal)
	assert.Equal(t, 5.0, p.TotalHours)
}

func TestGeneratePopulatesModules(t *testing.T) {
	req := validRequest()
	resp, err := testPipeline(testProvider()).Generate(context.Background(), req)
	require.NoError(t, err)

	mod := resp.Modules[0]
	require.NotEmpty(t, mod.Resources)
	assert.NotEmpty(t, mod.AnchorTerms)

	assert.NotEmpty(t, resp.Diagnostics.RunID)
	assert.Equal(t, len(mod.Resources), resp.Diagnostics.ResourcesAssigned)
	assert.Equal(t, len(mod.Resources), resp.Diagnostics.PerModule["m1"])
	assert.Greater(t, resp.Diagnostics.CandidatesFound, 0)
	assert.Empty(t, resp.Diagnostics.ZeroResourceModules)
}

func TestGenerateRejectsInvalidInput(t *testing.T) {
	req := validRequest()
	req.Topic = ""
	_, err := testPipeline(testProvider()).Generate(context.Background(), req)
	require.Error(t, err)
	var verr *apperr.ValidationError
	assert.True(t, errors.As(err, &verr))
}

func TestGenerateSurvivesProviderFailure(t *testing.T) {
	failing := &cannedProvider{}
	req := validRequest()
	resp, err := testPipeline(failing).Generate(context.Background(), req)
	require.NoError(t, err)

	// No candidates means a degraded roadmap, never an error.
	assert.Equal(t, []string{"m1"}, resp.Diagnostics.ZeroResourceModules)
	assert.Empty(t, resp.Modules[0].Resources)
}

func TestAdaptLeavesCompletedModulesAlone(t *testing.T) {
	done := concurrencyModule("done")
	done.Resources = []roadmap.Resource{{
		Title: "already read", URL: "https://gobyexample.com/goroutines",
		Type: roadmap.TypeTutorial, EstimatedMinutes: 30,
	}}

	req := validRequest()
	req.Modules = []*roadmap.Module{done, concurrencyModule("m1")}
	req.CompletedModuleIDs = []string{"done"}

	resp, err := testPipeline(testProvider()).Adapt(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, done.Resources, 1)
	assert.Equal(t, "already read", done.Resources[0].Title)

	// The completed module's resource never repeats in the open module.
	for _, res := range resp.Modules[1].Resources {
		assert.NotEqual(t, "https://gobyexample.com/goroutines", res.URL)
	}
}

func TestBackfillOnlyTouchesEmptyModules(t *testing.T) {
	filled := concurrencyModule("filled")
	filled.Resources = []roadmap.Resource{{
		Title: "kept", URL: "https://go.dev/blog/pipelines",
		Type: roadmap.TypeArticle, EstimatedMinutes: 15,
	}}
	empty := concurrencyModule("empty")

	req := validRequest()
	req.Modules = []*roadmap.Module{filled, empty}

	_, err := testPipeline(testProvider()).Backfill(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, filled.Resources, 1)
	assert.Equal(t, "kept", filled.Resources[0].Title)

	for _, res := range empty.Resources {
		assert.NotEqual(t, "https://go.dev/blog/pipelines", res.URL)
	}
}

func TestGenerateEmptyScope(t *testing.T) {
	req := validRequest()
	req.CompletedModuleIDs = []string{"m1"}

	resp, err := testPipeline(testProvider()).Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Zero(t, resp.Diagnostics.ResourcesAssigned)
	assert.Empty(t, resp.Modules[0].Resources)
}
