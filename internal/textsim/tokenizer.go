// Package textsim implements the offline hybrid text similarity used across
// the resource pipeline: a lexical containment score blended with a hashed
// bag-of-n-grams embedding. It is deterministic and has no external calls,
// so the same inputs always score the same on every run.
package textsim

import "strings"

const minTokenLen = 3

// Tokenize lowercases, strips everything outside [a-z0-9+#./-], splits on
// whitespace, drops short tokens, and stems trivial suffixes.
func Tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9',
			r == '+', r == '#', r == '.', r == '/', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, "./-")
		if len(f) < minTokenLen {
			continue
		}
		tokens = append(tokens, stem(f))
	}
	return tokens
}

// stem strips common inflection suffixes so "building"/"builds"/"built-ish"
// variants collapse. Guarded by minimum stem length to avoid mangling short
// technical terms.
func stem(token string) string {
	switch {
	case strings.HasSuffix(token, "ing") && len(token) > 6:
		return token[:len(token)-3]
	case strings.HasSuffix(token, "ed") && len(token) > 5:
		return token[:len(token)-2]
	case strings.HasSuffix(token, "es") && len(token) > 5:
		return token[:len(token)-2]
	case strings.HasSuffix(token, "s") && len(token) > 4 && !strings.HasSuffix(token, "ss"):
		return token[:len(token)-1]
	}
	return token
}

// tokenSet builds the deduplicated token set used by the lexical score.
func tokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}
