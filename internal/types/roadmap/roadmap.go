package roadmap

// SkillLevel is the learner's self-reported starting point.
type SkillLevel string

const (
	LevelBeginner     SkillLevel = "beginner"
	LevelIntermediate SkillLevel = "intermediate"
	LevelAdvanced     SkillLevel = "advanced"
)

// LearningGoal shapes query construction, scoring, and the diversity mix.
type LearningGoal string

const (
	GoalConceptual    LearningGoal = "conceptual"
	GoalHandsOn       LearningGoal = "hands_on"
	GoalQuickOverview LearningGoal = "quick_overview"
	GoalDeepMastery   LearningGoal = "deep_mastery"
)

// ResourceType classifies what kind of learning material a URL points at.
type ResourceType string

const (
	TypeVideo         ResourceType = "video"
	TypeArticle       ResourceType = "article"
	TypeDocumentation ResourceType = "documentation"
	TypeTutorial      ResourceType = "tutorial"
	TypePractice      ResourceType = "practice"
)

// Resource is the persisted, user-facing record attached to a module.
// The span/continuation fields are declared for forward compatibility with
// splitting one long resource across modules; nothing populates them yet.
type Resource struct {
	Title            string       `json:"title"`
	URL              string       `json:"url"`
	Type             ResourceType `json:"type"`
	EstimatedMinutes int          `json:"estimated_minutes"`
	Description      string       `json:"description,omitempty"`

	Source        string `json:"source,omitempty"`
	Channel       string `json:"channel,omitempty"`
	ViewCount     int64  `json:"view_count,omitempty"`
	LikeCount     int64  `json:"like_count,omitempty"`
	QualitySignal string `json:"quality_signal,omitempty"`

	SpanPlan       []string `json:"span_plan,omitempty"`
	IsContinuation bool     `json:"is_continuation,omitempty"`
	ContinuationOf string   `json:"continuation_of,omitempty"`
}

// Module is one unit of the generated curriculum. The pipeline reads its
// descriptive fields and writes Resources and AnchorTerms; everything else
// belongs to upstream curriculum structuring.
type Module struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	EstimatedHours     float64    `json:"estimated_hours"`
	DayStart           int        `json:"day_start,omitempty"`
	DayEnd             int        `json:"day_end,omitempty"`
	Week               int        `json:"week,omitempty"`
	Prerequisites      []string   `json:"prerequisites,omitempty"`
	LearningObjectives []string   `json:"learning_objectives,omitempty"`
	Resources          []Resource `json:"resources"`
	AnchorTerms        []string   `json:"anchor_terms,omitempty"`
}

// BudgetMinutes is the module's time budget in whole minutes.
func (m *Module) BudgetMinutes() int {
	return int(m.EstimatedHours * 60)
}

// Profile is the learner tuple the whole pipeline keys off.
type Profile struct {
	Topic       string       `json:"topic"`
	SkillLevel  SkillLevel   `json:"skill_level"`
	Goal        LearningGoal `json:"learning_goal"`
	TotalHours  float64      `json:"total_hours"`
	HoursPerDay float64      `json:"hours_per_day"`
}

// ModuleContext is the ephemeral per-module view handed to scoring and
// filtering stages. It lives for one pipeline invocation.
type ModuleContext struct {
	Topic              string
	Title              string
	Description        string
	LearningObjectives []string
	Goal               LearningGoal
	SkillLevel         SkillLevel
	BudgetMinutes      int
	AnchorTerms        []string
}

// CompositeText joins the module's descriptive fields into the text blob
// similarity is computed against.
func (mc *ModuleContext) CompositeText() string {
	text := mc.Title + " " + mc.Description
	for _, obj := range mc.LearningObjectives {
		text += " " + obj
	}
	return text
}
