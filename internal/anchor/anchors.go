// Package anchor derives per-module anchor terms, gates candidates on them,
// and computes the scope penalty for resources broader than the module they
// are considered for. Anchors narrow, never broaden: a module with no
// anchors gates nothing out.
package anchor

import (
	"strings"

	"github.com/pathforge/roadmap/internal/types/roadmap"
)

const maxAnchorTerms = 8

// stopWords mixes generic English filler with curriculum boilerplate that
// shows up in almost every module title and therefore discriminates nothing.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "your": {}, "from": {},
	"into": {}, "what": {}, "when": {}, "how": {}, "why": {}, "that": {},
	"this": {}, "will": {}, "you": {}, "are": {}, "can": {}, "using": {},
	"introduction": {}, "intro": {}, "module": {}, "basics": {}, "basic": {},
	"advanced": {}, "fundamentals": {}, "fundamental": {}, "overview": {},
	"getting": {}, "started": {}, "learn": {}, "learning": {}, "understanding": {},
	"understand": {}, "part": {}, "week": {}, "chapter": {}, "section": {},
	"concepts": {}, "concept": {}, "skills": {}, "practice": {},
}

// Derive returns the module's anchor terms. Upstream-supplied terms win
// verbatim (lowercased); otherwise terms are extracted from the module's
// own text. The exact topic string is dropped because inside a roadmap
// about the topic it discriminates nothing.
func Derive(mc *roadmap.ModuleContext) []string {
	if len(mc.AnchorTerms) > 0 {
		terms := make([]string, 0, len(mc.AnchorTerms))
		for _, t := range mc.AnchorTerms {
			t = strings.ToLower(strings.TrimSpace(t))
			if t != "" {
				terms = append(terms, t)
			}
		}
		return terms
	}
	return extract(mc)
}

func extract(mc *roadmap.ModuleContext) []string {
	topic := strings.ToLower(strings.TrimSpace(mc.Topic))

	text := mc.Title + " " + mc.Description
	for _, obj := range mc.LearningObjectives {
		text += " " + obj
	}

	seen := make(map[string]struct{})
	var terms []string
	add := func(term string) {
		if len(terms) >= maxAnchorTerms {
			return
		}
		if term == "" || term == topic {
			return
		}
		if _, dup := seen[term]; dup {
			return
		}
		seen[term] = struct{}{}
		terms = append(terms, term)
	}

	// Title bigrams first: adjacent word pairs from the title are the most
	// discriminating phrases a module has.
	titleWords := contentWords(mc.Title)
	for i := 0; i+1 < len(titleWords); i++ {
		add(titleWords[i] + " " + titleWords[i+1])
	}
	for _, w := range contentWords(text) {
		add(w)
	}
	return terms
}

// contentWords lowercases, splits on non-token characters, and drops stop
// words and short tokens.
func contentWords(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '+', r == '#', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	var words []string
	for _, w := range strings.Fields(b.String()) {
		w = strings.Trim(w, "-")
		if len(w) <= 2 {
			continue
		}
		if _, stop := stopWords[w]; stop {
			continue
		}
		words = append(words, w)
	}
	return words
}

// Matches reports whether any anchor term appears as a substring of the
// candidate text. An empty anchor list always passes.
func Matches(anchors []string, text string) bool {
	if len(anchors) == 0 {
		return true
	}
	lower := strings.ToLower(text)
	for _, a := range anchors {
		if strings.Contains(lower, a) {
			return true
		}
	}
	return false
}

// Specificity scores how discriminating an anchor term is for query
// injection: longer terms and technical characters score up, generic words
// score down. Used to pick the top-3 anchors worth spending query tokens on.
func Specificity(term string) float64 {
	score := float64(len(term)) / 4

	if strings.ContainsAny(term, "+#./-0123456789") {
		score += 2
	}
	if strings.Contains(term, " ") {
		score += 1.5
	}
	for generic := range stopWords {
		if term == generic {
			score -= 5
		}
	}
	return score
}

// TopBySpecificity returns up to n anchors ordered by descending specificity.
func TopBySpecificity(anchors []string, n int) []string {
	if len(anchors) <= n {
		return anchors
	}
	ranked := make([]string, len(anchors))
	copy(ranked, anchors)
	// Insertion sort keeps equal-specificity anchors in derivation order.
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && Specificity(ranked[j]) > Specificity(ranked[j-1]); j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}
	return ranked[:n]
}
