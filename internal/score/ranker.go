package score

import (
	"context"
	"sort"

	"github.com/pathforge/roadmap/internal/classify"
	"github.com/pathforge/roadmap/internal/types/roadmap"
)

// Ranker orders a module's candidate short-list, best first. Implementations
// must not mutate candidate scores other than ContextFitScore and must
// return a permutation of a subset of the input.
type Ranker interface {
	Rank(ctx context.Context, mc *roadmap.ModuleContext, candidates []*roadmap.Candidate) []*roadmap.Candidate
}

// Heuristic ranks purely from the deterministic scores. It is the default
// strategy and the fallback behind any LLM-backed one.
type Heuristic struct {
	classifier *classify.Classifier
}

func NewHeuristic(classifier *classify.Classifier) *Heuristic {
	return &Heuristic{classifier: classifier}
}

// Rank scores every candidate against the module and returns them sorted by
// combined fit+authority, descending. The sort is stable so equal scores
// keep pool order, which keeps runs reproducible.
func (h *Heuristic) Rank(_ context.Context, mc *roadmap.ModuleContext, candidates []*roadmap.Candidate) []*roadmap.Candidate {
	for _, cand := range candidates {
		Authority(h.classifier, cand)
		cand.ContextFitScore = ContextFit(mc, cand)
	}

	ranked := make([]*roadmap.Candidate, len(candidates))
	copy(ranked, candidates)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].ContextFitScore+ranked[i].AuthorityScore >
			ranked[j].ContextFitScore+ranked[j].AuthorityScore
	})
	return ranked
}
