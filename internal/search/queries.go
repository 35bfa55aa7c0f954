package search

import (
	"strings"

	"github.com/pathforge/roadmap/internal/anchor"
	"github.com/pathforge/roadmap/internal/types/roadmap"
)

// goalModifiers are the query fragments that steer results toward the
// learner's stated goal.
var goalModifiers = map[roadmap.LearningGoal][]string{
	roadmap.GoalConceptual:    {"explained", "concepts", "theory", "how it works", "mental model"},
	roadmap.GoalHandsOn:       {"tutorial", "build", "project", "practice", "hands-on", "step by step", "code along"},
	roadmap.GoalQuickOverview: {"overview", "in 10 minutes", "summary", "quick introduction", "cheat sheet"},
	roadmap.GoalDeepMastery:   {"in depth", "internals", "advanced", "deep dive", "from first principles"},
}

var levelModifiers = map[roadmap.SkillLevel][]string{
	roadmap.LevelBeginner:     {"for beginners", "introduction", "basics"},
	roadmap.LevelIntermediate: {"intermediate", "beyond the basics", "practical"},
	roadmap.LevelAdvanced:     {"advanced", "expert", "internals"},
}

var intentTokens = []string{"learn", "course", "guide"}

var outcomeTokens = map[roadmap.LearningGoal]string{
	roadmap.GoalConceptual:    "understand",
	roadmap.GoalHandsOn:       "build",
	roadmap.GoalQuickOverview: "overview",
	roadmap.GoalDeepMastery:   "master",
}

// QuerySet is the queries issued for one scope (topic-wide or one module).
// Precision queries chase exact fit; expansion queries widen recall.
type QuerySet struct {
	Precision []string
	Expansion []string
}

// All returns precision then expansion queries in issue order.
func (qs QuerySet) All() []string {
	return append(append([]string{}, qs.Precision...), qs.Expansion...)
}

// TopicQueries builds the topic-wide query set used for the one roadmap-level
// anchor search. fastMode trims precision to a single query to save quota.
func TopicQueries(profile roadmap.Profile, fastMode bool) QuerySet {
	goalMods := goalModifiers[profile.Goal]
	levelMods := levelModifiers[profile.SkillLevel]

	qs := QuerySet{
		Precision: []string{
			join(profile.Topic, pick(goalMods, 0), pick(levelMods, 0)),
			join(profile.Topic, pick(goalMods, 1), outcomeTokens[profile.Goal]),
		},
		Expansion: []string{
			join(intentTokens[0], profile.Topic, pick(goalMods, 2)),
			join("best", profile.Topic, pick(goalMods, 3), pick(levelMods, 1)),
		},
	}
	if fastMode {
		qs.Precision = qs.Precision[:1]
		qs.Expansion = nil
	}
	return qs
}

// ModuleQueries builds the per-module query set. The module's most specific
// anchors (top 3) are injected into precision queries when present.
// Expansion queries are skipped in fast mode and for short modules, where
// the extra quota buys little.
func ModuleQueries(profile roadmap.Profile, mc *roadmap.ModuleContext, fastMode bool) QuerySet {
	goalMods := goalModifiers[profile.Goal]

	anchors := anchor.TopBySpecificity(anchor.Derive(mc), 3)
	anchorText := strings.Join(anchors, " ")

	base := mc.Title
	if !strings.Contains(strings.ToLower(base), strings.ToLower(profile.Topic)) {
		base = profile.Topic + " " + base
	}

	qs := QuerySet{
		Precision: []string{
			join(base, pick(goalMods, 0)),
			join(base, anchorText, pick(goalMods, 1)),
		},
		Expansion: []string{
			join(profile.Topic, anchorText, pick(goalMods, 2)),
			join(base, outcomeTokens[profile.Goal], pick(goalMods, 3)),
		},
	}

	const shortModuleHours = 2.0
	if fastMode || mc.BudgetMinutes <= int(shortModuleHours*60) {
		qs.Expansion = nil
	}
	if fastMode {
		qs.Precision = qs.Precision[:1]
	}
	return qs
}

func pick(mods []string, i int) string {
	if len(mods) == 0 {
		return ""
	}
	return mods[i%len(mods)]
}

// join concatenates non-empty parts with single spaces.
func join(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}
