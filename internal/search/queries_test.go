package search

import (
	"strings"
	"testing"

	"github.com/pathforge/roadmap/internal/types/roadmap"
	"github.com/stretchr/testify/assert"
)

func testProfile() roadmap.Profile {
	return roadmap.Profile{
		Topic:      "PostgreSQL",
		SkillLevel: roadmap.LevelIntermediate,
		Goal:       roadmap.GoalHandsOn,
		TotalHours: 20,
	}
}

func TestTopicQueries(t *testing.T) {
	qs := TopicQueries(testProfile(), false)

	assert.Len(t, qs.Precision, 2)
	assert.Len(t, qs.Expansion, 2)
	for _, q := range qs.All() {
		assert.Contains(t, strings.ToLower(q), "postgresql")
	}
}

func TestTopicQueriesFastMode(t *testing.T) {
	qs := TopicQueries(testProfile(), true)
	assert.Len(t, qs.Precision, 1)
	assert.Empty(t, qs.Expansion)
}

func TestModuleQueriesInjectAnchors(t *testing.T) {
	mc := &roadmap.ModuleContext{
		Topic:         "PostgreSQL",
		Title:         "Query Planning and Indexes",
		Description:   "btree gin indexes explain analyze query planner",
		BudgetMinutes: 300,
		AnchorTerms:   []string{"explain analyze", "btree", "gin"},
	}

	qs := ModuleQueries(testProfile(), mc, false)
	assert.Len(t, qs.Precision, 2)
	assert.Len(t, qs.Expansion, 2)

	joined := strings.ToLower(strings.Join(qs.All(), " | "))
	assert.Contains(t, joined, "explain analyze")
	assert.Contains(t, joined, "query planning")
}

func TestModuleQueriesShortModuleSkipsExpansion(t *testing.T) {
	mc := &roadmap.ModuleContext{
		Topic:         "PostgreSQL",
		Title:         "Installing PostgreSQL",
		BudgetMinutes: 60,
	}
	qs := ModuleQueries(testProfile(), mc, false)
	assert.Len(t, qs.Precision, 2)
	assert.Empty(t, qs.Expansion)
}

func TestModuleQueriesPrependTopicWhenMissing(t *testing.T) {
	mc := &roadmap.ModuleContext{
		Topic:         "PostgreSQL",
		Title:         "Window Functions",
		BudgetMinutes: 300,
	}
	qs := ModuleQueries(testProfile(), mc, false)
	assert.Contains(t, strings.ToLower(qs.Precision[0]), "postgresql window functions")
}
