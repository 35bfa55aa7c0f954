package anchor

import (
	"regexp"
	"strings"

	"github.com/pathforge/roadmap/internal/types/roadmap"
)

// Broad-scope signals: content that promises to cover everything is usually
// wrong for a narrow module. Regex where word boundaries matter, plain
// substrings otherwise.
var broadScopeRegexps = []*regexp.Regexp{
	regexp.MustCompile(`\broadmap\b`),
	regexp.MustCompile(`\bfull course\b`),
	regexp.MustCompile(`\bcomplete (guide|course|tutorial|bootcamp)\b`),
	regexp.MustCompile(`\bcrash course\b`),
	regexp.MustCompile(`\bin one (video|article|page)\b`),
	regexp.MustCompile(`\ball[- ]in[- ]one\b`),
}

var broadScopeSubstrings = []string{
	"zero to hero",
	"from scratch to",
	"everything you need to know",
	"masterclass",
	"a to z",
	"for beginners to advanced",
}

var introTitleMarkers = []string{
	"introduction", "intro ", "overview", "getting started", "foundations",
	"first steps", "orientation",
}

const (
	penaltyHeavy = 15
	penaltyLight = 10
)

// HasBroadScope reports whether the candidate text carries a broad-scope
// signal phrase.
func HasBroadScope(text string) bool {
	lower := strings.ToLower(text)
	for _, re := range broadScopeRegexps {
		if re.MatchString(lower) {
			return true
		}
	}
	for _, sub := range broadScopeSubstrings {
		if strings.Contains(lower, sub) {
			return true
		}
	}
	return false
}

// ScopePenalty computes the deduction for resources broader than the module
// wants. Intro/overview modules and quick-overview learners tolerate broad
// content; everyone else pays 10, and learners past beginner level or after
// deep mastery pay 15. A penalty, not a filter: broad content still ranks
// when nothing narrower exists.
func ScopePenalty(mc *roadmap.ModuleContext, candidateText string) int {
	if !HasBroadScope(candidateText) {
		return 0
	}
	if isIntroModule(mc.Title) || mc.Goal == roadmap.GoalQuickOverview {
		return 0
	}
	if mc.SkillLevel == roadmap.LevelIntermediate ||
		mc.SkillLevel == roadmap.LevelAdvanced ||
		mc.Goal == roadmap.GoalDeepMastery {
		return penaltyHeavy
	}
	return penaltyLight
}

func isIntroModule(title string) bool {
	lower := strings.ToLower(title)
	for _, marker := range introTitleMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
