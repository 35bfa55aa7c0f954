// Package allocate performs the cross-module assignment of scored
// candidates under per-module and whole-roadmap time budgets. No step here
// may fail on empty input: a module with zero candidates is a degraded
// outcome reported through diagnostics, never an error.
package allocate

import (
	"log/slog"
	"net/url"
	"sort"

	"github.com/pathforge/roadmap/internal/types/roadmap"
	"github.com/pathforge/roadmap/internal/urlnorm"
)

const (
	// moduleBudgetSlack lets a module run slightly over its stated budget;
	// globalBudgetFactor keeps the greedy pass under the roadmap's total
	// hours with headroom the repair passes are allowed to reclaim.
	moduleBudgetSlack  = 1.05
	globalBudgetFactor = 0.85

	// repairFillRatio is the floor the repair pass fills modules up to.
	repairFillRatio = 0.60

	rescueLimit = 2
)

// ModulePool is one module's filtered, ranked candidates plus the raw pool
// the rescue pass may fall back to.
type ModulePool struct {
	Module *roadmap.Module
	Ctx    *roadmap.ModuleContext

	// Ranked is best-first after filtering, scoring, and diversity caps.
	Ranked []*roadmap.Candidate

	// Raw is the pre-filter pool (already allow-gated and de-spammed at
	// ingestion) for last-resort rescue.
	Raw []*roadmap.Candidate
}

// Result reports what allocation did, for diagnostics.
type Result struct {
	Assigned     int
	AssignedByID map[string]int
	ZeroResource []string
	Rescued      []string
	MinutesTotal int
}

// assignOpts relax individual constraints for the repair passes. The greedy
// pass always runs with the zero value.
type assignOpts struct {
	ignoreModuleBudget bool
	useHardGlobal      bool
}

type pair struct {
	cand     *roadmap.Candidate
	poolIdx  int
	combined int
}

type allocation struct {
	pools      []*ModulePool
	softGlobal int
	hardGlobal int
	usedGlobal int
	usedKeys   map[string]struct{}
	assigned   [][]*roadmap.Candidate
	minutes    []int
}

// Allocate runs the two-pass global assignment: a greedy best-fit-first
// walk over every (candidate, module) pair, then coverage repair. Completed
// modules must be excluded by the caller before building pools; this
// function writes Resources on every pool's module.
func Allocate(pools []*ModulePool, totalHours float64) Result {
	a := &allocation{
		pools:      pools,
		softGlobal: int(totalHours * 60 * globalBudgetFactor),
		hardGlobal: int(totalHours * 60),
		usedKeys:   make(map[string]struct{}),
		assigned:   make([][]*roadmap.Candidate, len(pools)),
		minutes:    make([]int, len(pools)),
	}

	a.greedy()

	res := Result{AssignedByID: make(map[string]int, len(pools))}
	for i, pool := range pools {
		a.repairVideoCoverage(i)
		a.repairUnderfill(i)

		if len(a.assigned[i]) == 0 && a.rescue(i) > 0 {
			res.Rescued = append(res.Rescued, pool.Module.ID)
		}
	}

	for i, pool := range pools {
		resources := make([]roadmap.Resource, 0, len(a.assigned[i]))
		for _, cand := range a.assigned[i] {
			resources = append(resources, cand.Resource())
		}
		pool.Module.Resources = resources

		res.Assigned += len(resources)
		res.AssignedByID[pool.Module.ID] = len(resources)
		res.MinutesTotal += a.minutes[i]
		if len(resources) == 0 {
			res.ZeroResource = append(res.ZeroResource, pool.Module.ID)
			slog.Warn("module shipped with zero resources", "module", pool.Module.Title)
		}
	}
	return res
}

// greedy flattens every (candidate, module) pairing and walks them once,
// best combined score first. The stable sort keeps pool order on ties, so
// a fixed input always allocates identically.
func (a *allocation) greedy() {
	var pairs []pair
	for i, pool := range a.pools {
		for _, cand := range pool.Ranked {
			pairs = append(pairs, pair{
				cand:     cand,
				poolIdx:  i,
				combined: cand.ContextFitScore + cand.AuthorityScore,
			})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].combined > pairs[j].combined })

	for _, p := range pairs {
		a.tryAssign(p.poolIdx, p.cand, assignOpts{})
	}
}

func (a *allocation) tryAssign(idx int, cand *roadmap.Candidate, opts assignOpts) bool {
	key := dedupKey(cand)
	if _, taken := a.usedKeys[key]; taken {
		return false
	}
	pool := a.pools[idx]
	if len(a.assigned[idx]) >= MaxResourcesForModule(pool.Module.EstimatedHours) {
		return false
	}
	if !opts.ignoreModuleBudget {
		moduleBudget := int(float64(pool.Ctx.BudgetMinutes) * moduleBudgetSlack)
		if a.minutes[idx]+cand.EstimatedMinutes > moduleBudget {
			return false
		}
	}
	globalBudget := a.softGlobal
	if opts.useHardGlobal {
		globalBudget = a.hardGlobal
	}
	if a.usedGlobal+cand.EstimatedMinutes > globalBudget {
		return false
	}

	a.usedKeys[key] = struct{}{}
	a.assigned[idx] = append(a.assigned[idx], cand)
	a.minutes[idx] += cand.EstimatedMinutes
	a.usedGlobal += cand.EstimatedMinutes
	return true
}

func (a *allocation) unassign(idx int, pos int) *roadmap.Candidate {
	cand := a.assigned[idx][pos]
	a.assigned[idx] = append(a.assigned[idx][:pos], a.assigned[idx][pos+1:]...)
	a.minutes[idx] -= cand.EstimatedMinutes
	a.usedGlobal -= cand.EstimatedMinutes
	delete(a.usedKeys, dedupKey(cand))
	return cand
}

// repairVideoCoverage forces the module's best unassigned video in when the
// greedy pass left it without one: first inside the module's budget using
// the global headroom, then in place of the weakest non-video. The module
// budget cap holds throughout; only the global 0.85 factor is relaxed.
func (a *allocation) repairVideoCoverage(idx int) {
	for _, cand := range a.assigned[idx] {
		if cand.Type == roadmap.TypeVideo {
			return
		}
	}

	hasVideo := false
	for _, cand := range a.pools[idx].Ranked {
		if cand.Type == roadmap.TypeVideo {
			hasVideo = true
			break
		}
	}
	if !hasVideo {
		return
	}

	relaxed := assignOpts{useHardGlobal: true}
	for _, cand := range a.pools[idx].Ranked {
		if cand.Type != roadmap.TypeVideo {
			continue
		}
		if a.tryAssign(idx, cand, relaxed) {
			return
		}
	}

	evictPos := a.weakestNonVideo(idx)
	if evictPos < 0 {
		return
	}
	evicted := a.unassign(idx, evictPos)
	for _, cand := range a.pools[idx].Ranked {
		if cand.Type != roadmap.TypeVideo {
			continue
		}
		if a.tryAssign(idx, cand, relaxed) {
			return
		}
	}
	// No video would fit even after eviction; put the evicted item back.
	a.tryAssign(idx, evicted, relaxed)
}

func (a *allocation) weakestNonVideo(idx int) int {
	pos, worst := -1, 0
	for i, cand := range a.assigned[idx] {
		if cand.Type == roadmap.TypeVideo {
			continue
		}
		combined := cand.ContextFitScore + cand.AuthorityScore
		if pos < 0 || combined < worst {
			pos, worst = i, combined
		}
	}
	return pos
}

// repairUnderfill pulls a module's next-best candidates, reclaiming the
// global headroom the greedy pass reserved, until the module reaches the
// fill floor or runs out of slots. Module budgets stay enforced.
func (a *allocation) repairUnderfill(idx int) {
	floor := int(float64(a.pools[idx].Ctx.BudgetMinutes) * repairFillRatio)
	for _, cand := range a.pools[idx].Ranked {
		if a.minutes[idx] >= floor {
			return
		}
		a.tryAssign(idx, cand, assignOpts{useHardGlobal: true})
	}
}

// rescue is the last resort for a starved module: take up to two items from
// the raw pool, ignoring the similarity and anchor gates, honoring only the
// module's slot bound and the hard global budget. Shipping something
// plausible beats shipping nothing.
func (a *allocation) rescue(idx int) int {
	rescued := 0
	for _, cand := range a.pools[idx].Raw {
		if rescued >= rescueLimit {
			break
		}
		if cand.Disqualified {
			continue
		}
		if a.tryAssign(idx, cand, assignOpts{ignoreModuleBudget: true, useHardGlobal: true}) {
			rescued++
		}
	}
	return rescued
}

// dedupKey is the global-uniqueness key: the YouTube video ID when one can
// be found, otherwise the normalized URL. The video ID is re-derived from
// the normalized URL because the same video can arrive once through video
// search (VideoID set) and once through web search (typed by URL shape,
// VideoID empty); both sightings must share one key. The same resource
// must never appear in two modules of one roadmap.
func dedupKey(cand *roadmap.Candidate) string {
	if cand.VideoID != "" {
		return "video:" + cand.VideoID
	}
	norm := cand.NormalizedURL
	if norm == "" {
		norm = urlnorm.Normalize(cand.URL)
	}
	if u, err := url.Parse(norm); err == nil && u.Host != "" {
		if id := urlnorm.YouTubeVideoID(u); id != "" {
			return "video:" + id
		}
	}
	return norm
}
