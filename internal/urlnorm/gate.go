package urlnorm

import (
	"net/url"
	"strings"
)

// disallowedDomains are aggregators, course catalogs, and short-form video
// platforms the product refuses to recommend regardless of score.
var disallowedDomains = []string{
	"classcentral.com",
	"coursetalk.com",
	"mooc-list.com",
	"coursary.com",
	"coursesity.com",
	"tiktok.com",
	"instagram.com",
	"facebook.com",
	"pinterest.com",
}

var resultsPathMarkers = []string{
	"/results",
	"/search",
	"/cse",
}

// IsAllowed reports whether a URL may enter the candidate pool at all.
// It rejects non-http(s) schemes, disallowed domains, bare search-engine
// roots, and URLs that are themselves search-results pages.
func IsAllowed(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}

	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	for _, domain := range disallowedDomains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return false
		}
	}

	root := rootDomain(host)
	if _, ok := searchEngineHosts[root]; ok {
		return false
	}

	path := strings.ToLower(u.Path)
	if host == "youtube.com" || host == "m.youtube.com" {
		if strings.HasPrefix(path, "/results") {
			return false
		}
		return true
	}
	for _, marker := range resultsPathMarkers {
		if strings.HasPrefix(path, marker) {
			return false
		}
	}
	return true
}

// MatchesDomain reports whether a URL's host matches a domain pattern from
// an exclusion set. A leading "*." matches the domain and any subdomain.
func MatchesDomain(raw, pattern string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	pattern = strings.ToLower(strings.TrimSpace(pattern))

	if wild, ok := strings.CutPrefix(pattern, "*."); ok {
		return host == wild || strings.HasSuffix(host, "."+wild)
	}
	return host == pattern
}

// Host extracts the normalized host of a URL, "" when unparseable.
func Host(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}
