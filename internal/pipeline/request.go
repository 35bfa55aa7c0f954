package pipeline

import (
	"strings"

	"github.com/pathforge/roadmap/internal/apperr"
	"github.com/pathforge/roadmap/internal/types/roadmap"
)

// Request is the contract for one pipeline invocation. The module list is
// mutated in place: non-completed modules get their Resources replaced and
// AnchorTerms written back.
type Request struct {
	Topic              string               `json:"topic"`
	SkillLevel         roadmap.SkillLevel   `json:"skill_level"`
	LearningGoal       roadmap.LearningGoal `json:"learning_goal"`
	TotalHours         float64              `json:"total_hours"`
	HoursPerDay        float64              `json:"hours_per_day"`
	Modules            []*roadmap.Module    `json:"modules"`
	CompletedModuleIDs []string             `json:"completed_module_ids,omitempty"`
	ExcludedURLs       []string             `json:"excluded_urls,omitempty"`
	ExcludedDomains    []string             `json:"excluded_domains,omitempty"`
	FastMode           bool                 `json:"fast_mode,omitempty"`
}

// Validate rejects input the pipeline cannot recover from. Everything past
// this point degrades instead of failing.
func (r *Request) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return apperr.NewValidation("topic is required")
	}
	if len(r.Modules) == 0 {
		return apperr.NewValidation("at least one module is required")
	}
	for i, m := range r.Modules {
		if m == nil || m.ID == "" || strings.TrimSpace(m.Title) == "" {
			return apperr.NewValidationf("module %d needs an id and a title", i)
		}
	}
	if r.TotalHours < 0 {
		return apperr.NewValidation("total_hours must not be negative")
	}
	return nil
}

// Profile returns the learner tuple with conservative defaults filled in.
func (r *Request) Profile() roadmap.Profile {
	p := roadmap.Profile{
		Topic:       strings.TrimSpace(r.Topic),
		SkillLevel:  r.SkillLevel,
		Goal:        r.LearningGoal,
		TotalHours:  r.TotalHours,
		HoursPerDay: r.HoursPerDay,
	}
	if p.SkillLevel == "" {
		p.SkillLevel = roadmap.LevelBeginner
	}
	if p.Goal == "" {
		p.Goal = roadmap.GoalConceptual
	}
	if p.TotalHours <= 0 {
		for _, m := range r.Modules {
			p.TotalHours += m.EstimatedHours
		}
	}
	return p
}

func (r *Request) completedSet() map[string]struct{} {
	set := make(map[string]struct{}, len(r.CompletedModuleIDs))
	for _, id := range r.CompletedModuleIDs {
		set[id] = struct{}{}
	}
	return set
}

// openModules returns the modules the pipeline may mutate, in input order.
func (r *Request) openModules() []*roadmap.Module {
	completed := r.completedSet()
	open := make([]*roadmap.Module, 0, len(r.Modules))
	for _, m := range r.Modules {
		if _, done := completed[m.ID]; done {
			continue
		}
		open = append(open, m)
	}
	return open
}

// assignedURLs collects resource URLs already present on the given modules,
// for seeding exclusion sets on adapt and backfill runs.
func assignedURLs(modules []*roadmap.Module) []string {
	var urls []string
	for _, m := range modules {
		for _, res := range m.Resources {
			urls = append(urls, res.URL)
		}
	}
	return urls
}

func moduleContext(profile roadmap.Profile, m *roadmap.Module) *roadmap.ModuleContext {
	return &roadmap.ModuleContext{
		Topic:              profile.Topic,
		Title:              m.Title,
		Description:        m.Description,
		LearningObjectives: m.LearningObjectives,
		Goal:               profile.Goal,
		SkillLevel:         profile.SkillLevel,
		BudgetMinutes:      m.BudgetMinutes(),
		AnchorTerms:        m.AnchorTerms,
	}
}
