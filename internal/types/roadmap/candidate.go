package roadmap

// AuthorityTier is a coarse trust classification of a resource's origin.
// Each tier carries a fixed prior; the mapping is part of the scoring
// contract and must not drift.
type AuthorityTier string

const (
	TierOfficialDocs     AuthorityTier = "OFFICIAL_DOCS"
	TierVendorDocs       AuthorityTier = "VENDOR_DOCS"
	TierUniversityDirect AuthorityTier = "UNIVERSITY_DIRECT"
	TierYoutubeTrusted   AuthorityTier = "YOUTUBE_TRUSTED"
	TierEducationDomain  AuthorityTier = "EDUCATION_DOMAIN"
	TierBlog             AuthorityTier = "BLOG"
	TierYoutubeUnknown   AuthorityTier = "YOUTUBE_UNKNOWN"
	TierCommunity        AuthorityTier = "COMMUNITY"
	TierUnknown          AuthorityTier = "UNKNOWN"
)

// Candidate is a search hit moving through the pipeline. It is created when
// a URL is first seen, deduplicated by normalized URL (repeat sightings bump
// Appearances), annotated by enrichment and scoring stages, and discarded
// after allocation; only selected candidates become Resources.
type Candidate struct {
	Title            string
	URL              string
	NormalizedURL    string
	Type             ResourceType
	EstimatedMinutes int
	Description      string

	Source        string
	Channel       string
	VideoID       string
	ViewCount     int64
	LikeCount     int64
	QualitySignal string

	// Appearances counts how many distinct queries surfaced this URL,
	// a weak relevance signal.
	Appearances int

	AuthorityTier   AuthorityTier
	AuthorityScore  int
	AuthorityNorm   float64
	ScopePenalty    int
	ContextFitScore int
	ReasonFlags     []string
	Disqualified    bool
}

// Flag records why a classifier marked this candidate.
func (c *Candidate) Flag(reason string) {
	for _, r := range c.ReasonFlags {
		if r == reason {
			return
		}
	}
	c.ReasonFlags = append(c.ReasonFlags, reason)
}

// HasFlag reports whether a classifier already recorded the reason.
func (c *Candidate) HasFlag(reason string) bool {
	for _, r := range c.ReasonFlags {
		if r == reason {
			return true
		}
	}
	return false
}

// CompositeText is the candidate-side text blob used for similarity.
func (c *Candidate) CompositeText() string {
	return c.Title + " " + c.Description
}

// Resource converts a selected candidate into the persisted shape.
func (c *Candidate) Resource() Resource {
	return Resource{
		Title:            c.Title,
		URL:              c.URL,
		Type:             c.Type,
		EstimatedMinutes: c.EstimatedMinutes,
		Description:      c.Description,
		Source:           c.Source,
		Channel:          c.Channel,
		ViewCount:        c.ViewCount,
		LikeCount:        c.LikeCount,
		QualitySignal:    c.QualitySignal,
	}
}

// Diagnostics is the per-run observability payload returned alongside the
// populated modules. Degraded outcomes (starved modules, provider failures)
// show up here instead of as errors.
type Diagnostics struct {
	RunID                string         `json:"run_id"`
	CandidatesFound      int            `json:"candidates_found"`
	AfterGate            int            `json:"after_gate"`
	AfterSimilarity      int            `json:"after_similarity"`
	AfterAnchor          int            `json:"after_anchor"`
	ResourcesAssigned    int            `json:"resources_assigned"`
	PerModule            map[string]int `json:"per_module"`
	ZeroResourceModules  []string       `json:"zero_resource_modules,omitempty"`
	RescuedModules       []string       `json:"rescued_modules,omitempty"`
	SearchErrors         int            `json:"search_errors"`
	CacheHits            int            `json:"cache_hits"`
	CacheMisses          int            `json:"cache_misses"`
	TotalMinutesAssigned int            `json:"total_minutes_assigned"`
}
