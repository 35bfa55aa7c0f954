package videometa

import (
	"strings"

	"github.com/pathforge/roadmap/internal/anchor"
	"github.com/pathforge/roadmap/internal/textsim"
	"github.com/pathforge/roadmap/internal/types/roadmap"
)

var shortsSignals = []string{"tiktok", "reels", "shorts", "vlog", "viral"}

// Off-topic similarity floors. Videos with spam markers (hashtag walls,
// social-shorts vocabulary) must clear a higher bar.
const (
	baseFloor    = 0.10
	hashtagFloor = 0.16
	shortsFloor  = 0.20
	hashtagCount = 3
)

// IsLikelyOffTopic decides, post-enrichment, whether a video belongs to the
// module at all. Anchor matches always keep the video: channel vocabulary
// often diverges from module vocabulary even for perfectly on-topic content.
func IsLikelyOffTopic(mc *roadmap.ModuleContext, title, channel string) bool {
	anchors := anchor.Derive(mc)
	videoText := title + " " + channel
	if len(anchors) > 0 && anchor.Matches(anchors, videoText) {
		return false
	}

	sim := textsim.Hybrid(mc.CompositeText(), videoText)
	if sim < baseFloor {
		return true
	}
	if strings.Count(title, "#") >= hashtagCount && sim < hashtagFloor {
		return true
	}
	lower := strings.ToLower(videoText)
	for _, sig := range shortsSignals {
		if strings.Contains(lower, sig) && sim < shortsFloor {
			return true
		}
	}
	return false
}
