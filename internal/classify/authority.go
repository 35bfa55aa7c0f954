package classify

import (
	"math"
	"strings"

	"github.com/pathforge/roadmap/internal/curated"
	"github.com/pathforge/roadmap/internal/types/roadmap"
	"github.com/pathforge/roadmap/internal/urlnorm"
)

// TierPrior is the fixed prior attached to an authority tier. Norm feeds
// the quality sub-score; the bump is round(Norm*MaxImpact) capped at
// MaxImpact. The table is part of the scoring contract.
type TierPrior struct {
	Norm      float64
	MaxImpact int
}

var tierPriors = map[roadmap.AuthorityTier]TierPrior{
	roadmap.TierOfficialDocs:     {Norm: 1.00, MaxImpact: 5},
	roadmap.TierVendorDocs:       {Norm: 0.90, MaxImpact: 4},
	roadmap.TierUniversityDirect: {Norm: 0.85, MaxImpact: 4},
	roadmap.TierYoutubeTrusted:   {Norm: 0.80, MaxImpact: 3},
	roadmap.TierEducationDomain:  {Norm: 0.75, MaxImpact: 3},
	roadmap.TierBlog:             {Norm: 0.60, MaxImpact: 3},
	roadmap.TierYoutubeUnknown:   {Norm: 0.50, MaxImpact: 2},
	roadmap.TierCommunity:        {Norm: 0.42, MaxImpact: 2},
	roadmap.TierUnknown:          {Norm: 0.25, MaxImpact: 1},
}

// Prior looks up the fixed prior for a tier; unknown tiers get the UNKNOWN prior.
func Prior(tier roadmap.AuthorityTier) TierPrior {
	if p, ok := tierPriors[tier]; ok {
		return p
	}
	return tierPriors[roadmap.TierUnknown]
}

// AuthorityScore turns a tier into its bounded score bump.
func AuthorityScore(tier roadmap.AuthorityTier) int {
	p := Prior(tier)
	bump := int(math.Round(p.Norm * float64(p.MaxImpact)))
	if bump > p.MaxImpact {
		bump = p.MaxImpact
	}
	return bump
}

// AuthorityTier classifies a candidate's origin through an ordered rule
// cascade: most specific and most trusted rules win first.
func (c *Classifier) AuthorityTier(rawURL string, typ roadmap.ResourceType, channel string) roadmap.AuthorityTier {
	host := urlnorm.Host(rawURL)
	if host == "" {
		return roadmap.TierUnknown
	}

	switch {
	case curated.HostMatches(host, c.lists.OfficialDocs):
		return roadmap.TierOfficialDocs
	case curated.HostMatches(host, c.lists.VendorDocs):
		return roadmap.TierVendorDocs
	case curated.HostMatches(host, c.lists.Universities):
		return roadmap.TierUniversityDirect
	case curated.HostMatches(host, c.lists.MOOCPlatforms), strings.HasSuffix(host, ".edu"):
		return roadmap.TierEducationDomain
	}

	if typ == roadmap.TypeVideo {
		if c.lists.ChannelTrusted(channel) {
			return roadmap.TierYoutubeTrusted
		}
		return roadmap.TierYoutubeUnknown
	}

	switch {
	case curated.HostMatches(host, c.lists.BlogDomains):
		return roadmap.TierBlog
	case curated.HostMatches(host, c.lists.CommunityDomains):
		return roadmap.TierCommunity
	}
	return roadmap.TierUnknown
}
