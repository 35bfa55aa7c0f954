package classify

import (
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
	"github.com/pathforge/roadmap/internal/types/roadmap"
	"github.com/pathforge/roadmap/internal/urlnorm"
)

var suspiciousTLDs = []string{".xyz", ".tk", ".ml", ".ga", ".cf"}

const minLanguageConfidence = 0.85

// Reason flags set by the garbage predicate and its helpers.
const (
	FlagListingPage    = "listing_page"
	FlagDiscussion     = "discussion_meta"
	FlagGarbageDomain  = "garbage_domain"
	FlagSuspiciousTLD  = "suspicious_tld"
	FlagThinContent    = "thin_content"
	FlagNonLatinScript = "non_latin_script"
)

// IsGarbage is the hard-reject predicate applied after scoring: a flagged
// candidate never reaches the allocator no matter how well it scored.
// Reasons are recorded on the candidate for diagnostics.
func (c *Classifier) IsGarbage(cand *roadmap.Candidate) bool {
	garbage := false

	if c.IsListingPage(cand.URL, cand.Title, cand.Description) {
		cand.Flag(FlagListingPage)
		garbage = true
	}
	if c.IsDiscussion(cand.URL, cand.Title, cand.Description) {
		cand.Flag(FlagDiscussion)
		garbage = true
	}

	host := urlnorm.Host(cand.URL)
	lowerHost := strings.ToLower(host)
	for _, sub := range c.lists.GarbageDomains {
		if strings.Contains(lowerHost, sub) {
			cand.Flag(FlagGarbageDomain)
			garbage = true
		}
	}
	for _, tld := range suspiciousTLDs {
		if strings.HasSuffix(lowerHost, tld) {
			cand.Flag(FlagSuspiciousTLD)
			garbage = true
		}
	}

	if len(strings.TrimSpace(cand.Description)) < 15 && cand.Channel == "" && cand.Type != roadmap.TypeVideo {
		cand.Flag(FlagThinContent)
		garbage = true
	}

	if c.isNonLatin(cand) {
		cand.Flag(FlagNonLatinScript)
		garbage = true
	}

	return garbage
}

// TagLanguage records the detected title language as a quality signal when
// detection is confident. It never rejects on its own; isNonLatin narrows
// the rejection to confident non-Latin hits with nothing else to go on.
func (c *Classifier) TagLanguage(cand *roadmap.Candidate) {
	info := whatlanggo.Detect(cand.Title + " " + cand.Description)
	if info.Confidence < minLanguageConfidence {
		return
	}
	if cand.QualitySignal == "" {
		cand.QualitySignal = "lang:" + info.Lang.Iso6393()
	}
}

func (c *Classifier) isNonLatin(cand *roadmap.Candidate) bool {
	text := cand.Title
	if text == "" {
		return false
	}
	info := whatlanggo.Detect(text)
	if info.Confidence < minLanguageConfidence {
		return false
	}

	latin := 0
	letters := 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.Is(unicode.Latin, r) {
			latin++
		}
	}
	if letters == 0 {
		return false
	}
	return float64(latin)/float64(letters) < 0.5
}
