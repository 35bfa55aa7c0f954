// Package urlnorm canonicalizes resource URLs and hard-rejects URLs the
// product refuses to recommend. Normalized form is the dedup key for the
// whole pipeline, so normalization must be idempotent.
package urlnorm

import (
	"net/url"
	"strings"
)

var trackingParams = map[string]struct{}{
	"utm_source": {}, "utm_medium": {}, "utm_campaign": {}, "utm_term": {},
	"utm_content": {}, "gclid": {}, "fbclid": {}, "ref": {}, "ref_src": {},
	"feature": {}, "si": {}, "pp": {},
}

var searchEngineHosts = map[string]struct{}{
	"google.com": {}, "bing.com": {}, "duckduckgo.com": {},
	"yahoo.com": {}, "search.yahoo.com": {}, "yandex.com": {},
}

var searchSubdomainPrefixes = []string{"scholar.", "books.", "cse.", "news."}

// Normalize canonicalizes a raw URL: scheme and host are lowercased, www.
// and tracking params stripped, redirect and AMP wrappers unwrapped,
// YouTube watch URLs collapsed to one form, and search-result pages folded
// to a per-host sentinel so the same results page from different queries
// dedups to one key. Malformed input falls back to best-effort truncation
// instead of failing.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return fallbackNormalize(raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	host := strings.TrimPrefix(u.Host, "www.")
	u.Host = host

	if unwrapped := unwrapRedirect(u); unwrapped != "" {
		return Normalize(unwrapped)
	}
	if amp := unwrapAMP(u); amp != "" {
		return Normalize(amp)
	}

	if id := YouTubeVideoID(u); id != "" {
		return "https://youtube.com/watch?v=" + id
	}

	if sentinel := searchSentinel(u); sentinel != "" {
		return sentinel
	}

	stripTracking(u)

	path := u.EscapedPath()
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	out := u.Scheme + "://" + u.Host + path
	if u.RawQuery != "" {
		out += "?" + u.RawQuery
	}
	return out
}

// fallbackNormalize is the degraded path for unparseable URLs: lowercase
// and truncate at the first '&', which at least collapses tracking-param
// variants of the same broken link.
func fallbackNormalize(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if i := strings.IndexByte(raw, '&'); i >= 0 {
		raw = raw[:i]
	}
	return strings.TrimSuffix(raw, "/")
}

// unwrapRedirect extracts the destination from search-engine interstitial
// and redirect wrappers like /url?q=... so the canonical form is the target
// page, not the bounce.
func unwrapRedirect(u *url.URL) string {
	if _, ok := searchEngineHosts[rootDomain(u.Host)]; !ok {
		return ""
	}
	if u.Path != "/url" && u.Path != "/interstitial" {
		return ""
	}
	q := u.Query()
	for _, key := range []string{"q", "url", "u"} {
		if target := q.Get(key); strings.HasPrefix(target, "http") {
			return target
		}
	}
	return ""
}

// unwrapAMP turns cached AMP paths (/amp/s/host/path) back into the origin URL.
func unwrapAMP(u *url.URL) string {
	const marker = "/amp/s/"
	if !strings.HasPrefix(u.Path, marker) {
		return ""
	}
	rest := strings.TrimPrefix(u.Path, marker)
	if rest == "" {
		return ""
	}
	return "https://" + rest
}

// YouTubeVideoID extracts the video ID from watch?v= and youtu.be forms.
// Returns "" for non-video YouTube URLs.
func YouTubeVideoID(u *url.URL) string {
	host := strings.TrimPrefix(strings.ToLower(u.Host), "www.")
	switch host {
	case "youtube.com", "m.youtube.com":
		if u.Path == "/watch" {
			return u.Query().Get("v")
		}
		if strings.HasPrefix(u.Path, "/embed/") {
			return strings.TrimPrefix(u.Path, "/embed/")
		}
	case "youtu.be":
		return strings.TrimPrefix(u.Path, "/")
	}
	return ""
}

// searchSentinel collapses any search-results page to one per-host token so
// results pages surfaced by different queries share a dedup key.
func searchSentinel(u *url.URL) string {
	host := u.Host
	root := rootDomain(host)

	_, isEngine := searchEngineHosts[root]
	if !isEngine {
		for _, prefix := range searchSubdomainPrefixes {
			if strings.HasPrefix(host, prefix) {
				if _, ok := searchEngineHosts[strings.TrimPrefix(host, prefix)]; ok {
					isEngine = true
				}
			}
		}
	}
	if isEngine && (u.Path == "" || u.Path == "/" || strings.HasPrefix(u.Path, "/search")) {
		return "search://" + host
	}
	if (host == "youtube.com" || host == "m.youtube.com") && strings.HasPrefix(u.Path, "/results") {
		return "search://youtube.com"
	}
	return ""
}

func stripTracking(u *url.URL) {
	if u.RawQuery == "" {
		return
	}
	q := u.Query()
	for key := range q {
		if _, ok := trackingParams[key]; ok {
			q.Del(key)
		}
	}
	u.RawQuery = q.Encode()
}

// rootDomain returns the last two labels of a host, a good-enough
// registrable domain for the hosts this pipeline cares about.
func rootDomain(host string) string {
	parts := strings.Split(host, ".")
	if len(parts) <= 2 {
		return host
	}
	return strings.Join(parts[len(parts)-2:], ".")
}
