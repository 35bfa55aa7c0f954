// Package score computes per-candidate scores: the tier-based authority
// bump and the 0-100 context-fit heuristic, plus the pluggable ranking
// strategy an LLM re-ranker can layer on top. The heuristic must stand on
// its own: with no LLM configured the pipeline ranks entirely from here.
package score

import (
	"math"
	"regexp"
	"strings"

	"github.com/pathforge/roadmap/internal/classify"
	"github.com/pathforge/roadmap/internal/textsim"
	"github.com/pathforge/roadmap/internal/types/roadmap"
)

const (
	topicFitWeight = 35

	goalFitFull    = 20
	goalFitPartial = 10

	levelFitBase    = 8
	levelFitMatched = 15

	timeFitBase     = 15
	timeFitOversize = 6

	qualityBase      = 8
	qualityMid       = 12
	qualityHigh      = 15
	listingPenalty   = 8
	quickOverviewMax = 45
	deepMasteryMin   = 25
)

var levelPatterns = map[roadmap.SkillLevel]*regexp.Regexp{
	roadmap.LevelBeginner:     regexp.MustCompile(`(?i)\b(beginner|introduction|intro|basics|first steps|getting started)\b`),
	roadmap.LevelIntermediate: regexp.MustCompile(`(?i)\b(intermediate|practical|in practice|beyond the basics|patterns)\b`),
	roadmap.LevelAdvanced:     regexp.MustCompile(`(?i)\b(advanced|internals|deep dive|under the hood|expert)\b`),
}

var certificationRe = regexp.MustCompile(`(?i)\b(certification|certificate|exam prep|study guide)\b`)

var practicalSignals = []string{"build", "project", "exercise", "workshop", "code along", "from scratch", "implement"}
var passiveSignals = []string{"lecture", "overview", "history of", "opinion", "keynote"}

// ContextFit computes the 0-100 heuristic fit of one candidate for one
// module as an additive sum of topic, goal, level, time, quality, and
// practicality sub-scores, minus the candidate's scope penalty.
func ContextFit(mc *roadmap.ModuleContext, cand *roadmap.Candidate) int {
	sim := textsim.Hybrid(mc.CompositeText(), cand.CompositeText())

	total := int(math.Round(sim * topicFitWeight))
	total += goalFit(mc.Goal, cand)
	total += levelFit(mc.SkillLevel, cand.Title)
	total += timeFit(mc.BudgetMinutes, cand.EstimatedMinutes)
	total += qualityFit(cand)
	total += practicalityFit(mc.Goal, cand)
	total -= cand.ScopePenalty

	if total < 0 {
		return 0
	}
	if total > 100 {
		return 100
	}
	return total
}

// goalFit rewards type/duration alignment with the learner's goal.
func goalFit(goal roadmap.LearningGoal, cand *roadmap.Candidate) int {
	switch goal {
	case roadmap.GoalConceptual:
		switch cand.Type {
		case roadmap.TypeVideo, roadmap.TypeDocumentation, roadmap.TypeArticle:
			return goalFitFull
		case roadmap.TypeTutorial:
			return goalFitPartial
		}
	case roadmap.GoalHandsOn:
		switch cand.Type {
		case roadmap.TypeTutorial, roadmap.TypePractice, roadmap.TypeVideo:
			return goalFitFull
		case roadmap.TypeArticle:
			return goalFitPartial
		}
	case roadmap.GoalQuickOverview:
		if cand.EstimatedMinutes > 0 && cand.EstimatedMinutes <= quickOverviewMax {
			return goalFitFull
		}
		return goalFitPartial
	case roadmap.GoalDeepMastery:
		switch cand.Type {
		case roadmap.TypeVideo, roadmap.TypeDocumentation, roadmap.TypeArticle:
			if cand.EstimatedMinutes >= deepMasteryMin {
				return goalFitFull
			}
			return goalFitPartial
		case roadmap.TypeTutorial:
			return goalFitPartial
		}
	}
	return 0
}

func levelFit(level roadmap.SkillLevel, title string) int {
	if re, ok := levelPatterns[level]; ok && re.MatchString(title) {
		return levelFitMatched
	}
	return levelFitBase
}

// timeFit penalizes candidates that dwarf the module's budget. Slightly
// over is tolerable, double the budget is not.
func timeFit(budgetMinutes, candidateMinutes int) int {
	if budgetMinutes <= 0 || candidateMinutes <= 0 {
		return timeFitBase
	}
	ratio := float64(candidateMinutes) / float64(budgetMinutes)
	switch {
	case ratio > 2.0:
		return 0
	case ratio > 1.2:
		return timeFitOversize
	}
	return timeFitBase
}

func qualityFit(cand *roadmap.Candidate) int {
	fit := qualityBase
	switch {
	case cand.AuthorityNorm >= 0.85:
		fit = qualityHigh
	case cand.AuthorityNorm >= 0.6:
		fit = qualityMid
	}

	if cand.HasFlag(classify.FlagListingPage) {
		fit -= listingPenalty
	}

	if cand.Type == roadmap.TypeVideo {
		switch {
		case cand.ViewCount >= 1_000_000:
			fit += 4
		case cand.ViewCount >= 100_000:
			fit += 2
		}
	}
	if certificationRe.MatchString(cand.Title) {
		fit += 2
	}
	return fit
}

// practicalityFit only applies when the learner wants hands-on learning:
// doing beats reading about doing.
func practicalityFit(goal roadmap.LearningGoal, cand *roadmap.Candidate) int {
	if goal != roadmap.GoalHandsOn {
		return 0
	}

	fit := 0
	switch cand.Type {
	case roadmap.TypePractice, roadmap.TypeTutorial, roadmap.TypeVideo:
		fit += 8
	case roadmap.TypeDocumentation:
		fit -= 8
	}

	text := strings.ToLower(cand.CompositeText())
	for _, sig := range practicalSignals {
		if strings.Contains(text, sig) {
			fit += 6
			break
		}
	}
	for _, sig := range passiveSignals {
		if strings.Contains(text, sig) {
			fit -= 4
			break
		}
	}
	return fit
}

// Authority stamps the candidate's tier, bump, and normalized prior.
func Authority(c *classify.Classifier, cand *roadmap.Candidate) {
	cand.AuthorityTier = c.AuthorityTier(cand.URL, cand.Type, cand.Channel)
	cand.AuthorityScore = classify.AuthorityScore(cand.AuthorityTier)
	cand.AuthorityNorm = classify.Prior(cand.AuthorityTier).Norm
}
