// Package pipeline orchestrates one roadmap-generation run: search fan-out,
// per-module merge, video enrichment, filtering, ranking, and allocation.
// Past input validation there is no fatal error path; every degraded stage
// shows up in the returned diagnostics instead.
package pipeline

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pathforge/roadmap/internal/allocate"
	"github.com/pathforge/roadmap/internal/anchor"
	"github.com/pathforge/roadmap/internal/classify"
	"github.com/pathforge/roadmap/internal/score"
	"github.com/pathforge/roadmap/internal/search"
	"github.com/pathforge/roadmap/internal/types/roadmap"
	"github.com/pathforge/roadmap/internal/videometa"
)

const (
	maxConcurrentSearches = 8
	webResultCount        = 10
	videoResultCount      = 8
)

// Pipeline bundles the run's collaborators. The video enricher is optional;
// without one, video candidates keep their search-provided estimates.
type Pipeline struct {
	searcher   *search.Adapter
	videos     *videometa.Enricher
	ranker     score.Ranker
	classifier *classify.Classifier
}

func New(searcher *search.Adapter, videos *videometa.Enricher, ranker score.Ranker, classifier *classify.Classifier) *Pipeline {
	if classifier == nil {
		classifier = classify.New(nil)
	}
	if ranker == nil {
		ranker = score.NewHeuristic(classifier)
	}
	return &Pipeline{
		searcher:   searcher,
		videos:     videos,
		ranker:     ranker,
		classifier: classifier,
	}
}

// Response pairs the mutated module list with the run's diagnostics.
type Response struct {
	Modules     []*roadmap.Module   `json:"modules"`
	Diagnostics roadmap.Diagnostics `json:"diagnostics"`
}

// Generate populates resources for every non-completed module.
func (p *Pipeline) Generate(ctx context.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return p.run(ctx, req, req.openModules(), req.ExcludedURLs)
}

// Adapt regenerates the non-completed modules, additionally excluding every
// resource the learner already has on a completed module so nothing repeats.
func (p *Pipeline) Adapt(ctx context.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	completed := req.completedSet()
	var done []*roadmap.Module
	for _, m := range req.Modules {
		if _, ok := completed[m.ID]; ok {
			done = append(done, m)
		}
	}
	excluded := append(assignedURLs(done), req.ExcludedURLs...)
	return p.run(ctx, req, req.openModules(), excluded)
}

// Backfill fills only the non-completed modules that currently have no
// resources, excluding everything assigned anywhere in the roadmap.
func (p *Pipeline) Backfill(ctx context.Context, req *Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	var scope []*roadmap.Module
	for _, m := range req.openModules() {
		if len(m.Resources) == 0 {
			scope = append(scope, m)
		}
	}
	excluded := append(assignedURLs(req.Modules), req.ExcludedURLs...)
	return p.run(ctx, req, scope, excluded)
}

type searchJob struct {
	query     string
	kind      search.Kind
	count     int
	moduleIdx int // -1 for topic-wide queries
}

func (p *Pipeline) run(ctx context.Context, req *Request, scope []*roadmap.Module, excludedURLs []string) (*Response, error) {
	runID := uuid.NewString()
	profile := req.Profile()
	log := slog.With("run_id", runID, "topic", profile.Topic)
	log.Info("starting roadmap run", "modules_in_scope", len(scope), "total_hours", profile.TotalHours)

	diag := roadmap.Diagnostics{RunID: runID, PerModule: map[string]int{}}
	if len(scope) == 0 {
		log.Info("no modules in scope, nothing to do")
		return &Response{Modules: req.Modules, Diagnostics: diag}, nil
	}

	mcs := make([]*roadmap.ModuleContext, len(scope))
	for i, m := range scope {
		mc := moduleContext(profile, m)
		mc.AnchorTerms = anchor.Derive(mc)
		m.AnchorTerms = mc.AnchorTerms
		mcs[i] = mc
	}

	jobs := buildJobs(profile, mcs, req.FastMode)
	results := p.fanOut(ctx, jobs)

	mergers := make([]*allocate.Merger, len(scope))
	for i := range scope {
		mergers[i] = allocate.NewMerger(p.classifier, excludedURLs, req.ExcludedDomains)
	}
	for j, job := range jobs {
		if job.moduleIdx >= 0 {
			for _, hit := range results[j] {
				mergers[job.moduleIdx].Add(hit, job.kind)
			}
			continue
		}
		// Topic-wide hits are shared: each module gets its own candidate
		// entity so per-module scores never bleed across modules.
		for _, merger := range mergers {
			for _, hit := range results[j] {
				merger.Add(hit, job.kind)
			}
		}
	}

	p.enrichVideos(ctx, mergers)

	pools := make([]*allocate.ModulePool, len(scope))
	for i, m := range scope {
		mc := mcs[i]
		cands := mergers[i].Candidates()

		for _, cand := range cands {
			if cand.Type == roadmap.TypeVideo && videometa.IsLikelyOffTopic(mc, cand.Title, cand.Channel) {
				cand.Disqualified = true
				cand.Flag("video_off_topic")
			}
		}

		fr := anchor.Filter(mc, cands, p.classifier.IsGarbage)
		ranked := p.ranker.Rank(ctx, mc, fr.Kept)
		capped := allocate.ApplyDiversityCaps(profile.Goal, ranked, allocate.MaxResourcesForModule(m.EstimatedHours))

		pools[i] = &allocate.ModulePool{
			Module: m,
			Ctx:    mc,
			Ranked: capped,
			Raw:    rescuePool(cands),
		}

		diag.CandidatesFound += mergers[i].Seen
		diag.AfterGate += len(cands)
		diag.AfterSimilarity += len(cands) - fr.RejectedSpam - fr.RejectedSim
		diag.AfterAnchor += len(fr.Kept)
	}

	alloc := allocate.Allocate(pools, profile.TotalHours)

	diag.ResourcesAssigned = alloc.Assigned
	diag.PerModule = alloc.AssignedByID
	diag.ZeroResourceModules = alloc.ZeroResource
	diag.RescuedModules = alloc.Rescued
	diag.TotalMinutesAssigned = alloc.MinutesTotal

	stats := p.searcher.Stats()
	diag.SearchErrors = stats.Errors
	diag.CacheHits = stats.CacheHits
	diag.CacheMisses = stats.CacheMisses

	log.Info("roadmap run finished",
		"resources_assigned", alloc.Assigned,
		"minutes_assigned", alloc.MinutesTotal,
		"zero_resource_modules", len(alloc.ZeroResource),
		"search_errors", stats.Errors)

	return &Response{Modules: req.Modules, Diagnostics: diag}, nil
}

// buildJobs lays out every search call for the run in a fixed order so the
// merge after the fan-out is deterministic.
func buildJobs(profile roadmap.Profile, mcs []*roadmap.ModuleContext, fastMode bool) []searchJob {
	var jobs []searchJob

	topic := search.TopicQueries(profile, fastMode)
	for _, q := range topic.All() {
		jobs = append(jobs, searchJob{query: q, kind: search.KindWeb, count: webResultCount, moduleIdx: -1})
	}
	for _, q := range topic.Precision {
		jobs = append(jobs, searchJob{query: q, kind: search.KindVideos, count: videoResultCount, moduleIdx: -1})
	}

	for i, mc := range mcs {
		qs := search.ModuleQueries(profile, mc, fastMode)
		for _, q := range qs.All() {
			jobs = append(jobs, searchJob{query: q, kind: search.KindWeb, count: webResultCount, moduleIdx: i})
		}
		for _, q := range qs.Precision {
			jobs = append(jobs, searchJob{query: q, kind: search.KindVideos, count: videoResultCount, moduleIdx: i})
		}
	}
	return jobs
}

// fanOut issues every job concurrently and collects results by job index.
// The adapter swallows provider failures, so the group never errors.
func (p *Pipeline) fanOut(ctx context.Context, jobs []searchJob) [][]search.Hit {
	results := make([][]search.Hit, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentSearches)
	for i, job := range jobs {
		g.Go(func() error {
			results[i] = p.searcher.Search(gctx, job.query, job.kind, job.count)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// enrichVideos resolves metadata for every distinct video ID across all
// module pools and applies it to each sighting.
func (p *Pipeline) enrichVideos(ctx context.Context, mergers []*allocate.Merger) {
	if p.videos == nil {
		return
	}

	idSet := make(map[string]struct{})
	for _, merger := range mergers {
		for _, cand := range merger.Candidates() {
			if cand.VideoID != "" {
				idSet[cand.VideoID] = struct{}{}
			}
		}
	}
	if len(idSet) == 0 {
		return
	}
	ids := make([]string, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	metas := p.videos.Enrich(ctx, ids)

	for _, merger := range mergers {
		for _, cand := range merger.Candidates() {
			meta, ok := metas[cand.VideoID]
			if !ok {
				continue
			}
			if meta.DurationMinutes > 0 {
				cand.EstimatedMinutes = meta.DurationMinutes
			}
			cand.ViewCount = meta.ViewCount
			cand.LikeCount = meta.LikeCount
			if cand.Channel == "" {
				cand.Channel = meta.Channel
			}
		}
	}
}

// rescuePool strips listing and discussion hits out of the raw candidate
// pool; the rescue pass may ignore similarity and anchors, never those.
func rescuePool(cands []*roadmap.Candidate) []*roadmap.Candidate {
	pool := make([]*roadmap.Candidate, 0, len(cands))
	for _, cand := range cands {
		if cand.HasFlag(classify.FlagListingPage) || cand.HasFlag(classify.FlagDiscussion) {
			continue
		}
		pool = append(pool, cand)
	}
	return pool
}
