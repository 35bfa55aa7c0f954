package anchor

import (
	"github.com/pathforge/roadmap/internal/textsim"
	"github.com/pathforge/roadmap/internal/types/roadmap"
)

// similarityFloor is the stage-two cutoff: below this hybrid similarity a
// candidate is considered off-topic for the module outright.
const similarityFloor = 0.14

// FilterResult reports what the four-stage filter kept and why.
type FilterResult struct {
	Kept          []*roadmap.Candidate
	RejectedSpam  int
	RejectedSim   int
	DemotedAnchor int
	Backfilled    int
}

// Filter runs the four-stage candidate filter for one module:
//
//  1. drop disqualified/spam candidates
//  2. drop candidates under the similarity floor
//  3. stash the scope penalty on the survivors
//  4. gate on anchor terms, demoting misses to a relaxed pool
//
// Anchor misses are demoted rather than discarded: if the strict set is big
// enough the relaxed pool is thrown away, otherwise it backfills the strict
// set up to the minimum target so anchor gating cannot starve a module that
// had few candidates to begin with.
func Filter(mc *roadmap.ModuleContext, candidates []*roadmap.Candidate, isGarbage func(*roadmap.Candidate) bool) FilterResult {
	anchors := Derive(mc)
	moduleText := mc.CompositeText()

	var res FilterResult
	var strict, relaxed []*roadmap.Candidate

	for _, cand := range candidates {
		if cand.Disqualified || isGarbage(cand) {
			cand.Disqualified = true
			res.RejectedSpam++
			continue
		}

		if textsim.Hybrid(moduleText, cand.CompositeText()) < similarityFloor {
			res.RejectedSim++
			continue
		}

		cand.ScopePenalty = ScopePenalty(mc, cand.CompositeText())

		if Matches(anchors, cand.CompositeText()) {
			strict = append(strict, cand)
		} else {
			relaxed = append(relaxed, cand)
			res.DemotedAnchor++
		}
	}

	target := minTargetSize(mc.BudgetMinutes)
	if len(strict) >= target || len(relaxed) <= len(strict)/2 {
		res.Kept = strict
		return res
	}

	for _, cand := range relaxed {
		if len(strict) >= target {
			break
		}
		strict = append(strict, cand)
		res.Backfilled++
	}
	res.Kept = strict
	return res
}

// minTargetSize is the per-module floor the filter tries to keep:
// min(8, max(4, moduleMinutes/35)).
func minTargetSize(budgetMinutes int) int {
	target := budgetMinutes / 35
	if target < 4 {
		target = 4
	}
	if target > 8 {
		target = 8
	}
	return target
}
