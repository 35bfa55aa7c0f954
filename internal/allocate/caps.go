package allocate

import (
	"github.com/pathforge/roadmap/internal/types/roadmap"
)

// MaxResourcesForModule bounds how many resources a module may hold, by its
// estimated hours. Short modules get a short list.
func MaxResourcesForModule(hours float64) int {
	switch {
	case hours <= 1.5:
		return 3
	case hours <= 3:
		return 4
	case hours <= 5:
		return 5
	case hours <= 10:
		return 6
	default:
		return 6
	}
}

// typeShare is a diversity target: the fraction of slots a resource type
// may occupy in a module's short-list before capping kicks in.
type typeShare map[roadmap.ResourceType]float64

// Hands-on learners want mostly videos and exercises, with documentation
// squeezed hard; other goals balance video, documentation, and text.
var handsOnShares = typeShare{
	roadmap.TypeVideo:         0.55,
	roadmap.TypeTutorial:      0.40,
	roadmap.TypePractice:      0.40,
	roadmap.TypeDocumentation: 0.15,
	roadmap.TypeArticle:       0.30,
}

var balancedShares = typeShare{
	roadmap.TypeVideo:         0.40,
	roadmap.TypeTutorial:      0.35,
	roadmap.TypePractice:      0.30,
	roadmap.TypeDocumentation: 0.35,
	roadmap.TypeArticle:       0.35,
}

// ApplyDiversityCaps trims an oversupplied, ranked candidate pool so no
// single type dominates the short-list handed to ranking or allocation.
// The pool must already be sorted best-first; within a type the best
// survive. Pools at or under the slot count pass through untouched.
func ApplyDiversityCaps(goal roadmap.LearningGoal, ranked []*roadmap.Candidate, slots int) []*roadmap.Candidate {
	if len(ranked) <= slots || slots <= 0 {
		return ranked
	}

	shares := balancedShares
	if goal == roadmap.GoalHandsOn {
		shares = handsOnShares
	}

	// Cap per type over a working list twice the slot count: wide enough
	// for allocation-time skips, narrow enough that caps matter.
	limit := slots * 2
	caps := make(map[roadmap.ResourceType]int, len(shares))
	for typ, share := range shares {
		c := int(share*float64(limit) + 0.5)
		if c < 1 {
			c = 1
		}
		caps[typ] = c
	}

	counts := make(map[roadmap.ResourceType]int)
	kept := make([]*roadmap.Candidate, 0, limit)
	var overflow []*roadmap.Candidate
	for _, cand := range ranked {
		if len(kept) >= limit {
			break
		}
		maxForType, known := caps[cand.Type]
		if known && counts[cand.Type] >= maxForType {
			overflow = append(overflow, cand)
			continue
		}
		counts[cand.Type]++
		kept = append(kept, cand)
	}

	// Backfill from overflow when capping left slots empty; a capped pool
	// smaller than the slot count would defeat its purpose.
	for _, cand := range overflow {
		if len(kept) >= limit {
			break
		}
		kept = append(kept, cand)
	}
	return kept
}
