// Package curated holds the hand-maintained domain and channel lists that
// drive classification: practice sites, documentation hosts, trusted video
// channels, community domains, and so on. Defaults are compiled in; an
// operator can extend them from a YAML file without rebuilding.
package curated

import (
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Lists groups every curated collection the classifiers consult.
type Lists struct {
	PracticeDomains  []string `yaml:"practice_domains"`
	DocDomains       []string `yaml:"doc_domains"`
	DocPathMarkers   []string `yaml:"doc_path_markers"`
	TutorialDomains  []string `yaml:"tutorial_domains"`
	OfficialDocs     []string `yaml:"official_docs"`
	VendorDocs       []string `yaml:"vendor_docs"`
	Universities     []string `yaml:"universities"`
	MOOCPlatforms    []string `yaml:"mooc_platforms"`
	TrustedChannels  []string `yaml:"trusted_channels"`
	BlogDomains      []string `yaml:"blog_domains"`
	CommunityDomains []string `yaml:"community_domains"`
	GarbageDomains   []string `yaml:"garbage_domains"`
}

// Default returns the compiled-in lists.
func Default() *Lists {
	return &Lists{
		PracticeDomains: []string{
			"leetcode.com", "hackerrank.com", "exercism.org", "codewars.com",
			"codingame.com", "kaggle.com", "sqlzoo.net", "regexone.com",
			"typingclub.com", "codecrafters.io",
		},
		DocDomains: []string{
			"docs.python.org", "go.dev", "developer.mozilla.org", "docs.oracle.com",
			"learn.microsoft.com", "docs.aws.amazon.com", "kubernetes.io",
			"reactjs.org", "react.dev", "nodejs.org", "rust-lang.org",
			"postgresql.org", "redis.io", "docker.com",
		},
		DocPathMarkers: []string{"/docs", "/documentation", "/reference", "/manual", "/api/"},
		TutorialDomains: []string{
			"w3schools.com", "tutorialspoint.com", "geeksforgeeks.org",
			"realpython.com", "digitalocean.com", "freecodecamp.org",
			"baeldung.com", "javatpoint.com", "gobyexample.com",
		},
		OfficialDocs: []string{
			"docs.python.org", "go.dev", "developer.mozilla.org", "kubernetes.io",
			"rust-lang.org", "postgresql.org", "redis.io", "react.dev",
			"nodejs.org", "docs.docker.com", "git-scm.com",
		},
		VendorDocs: []string{
			"learn.microsoft.com", "docs.aws.amazon.com", "cloud.google.com",
			"docs.oracle.com", "developer.apple.com", "developer.android.com",
			"docs.github.com", "docs.gitlab.com",
		},
		Universities: []string{
			"mit.edu", "stanford.edu", "berkeley.edu", "cmu.edu", "harvard.edu",
			"princeton.edu", "ox.ac.uk", "cam.ac.uk", "ethz.ch",
		},
		MOOCPlatforms: []string{
			"coursera.org", "edx.org", "khanacademy.org", "udacity.com",
			"open.edu", "ocw.mit.edu", "futurelearn.com",
		},
		TrustedChannels: []string{
			"freecodecamp.org", "fireship", "traversy media", "the net ninja",
			"corey schafer", "3blue1brown", "computerphile", "mit opencourseware",
			"sentdex", "tech with tim", "hussein nasser", "arjancodes",
		},
		BlogDomains: []string{
			"medium.com", "dev.to", "hashnode.com", "substack.com",
			"martinfowler.com", "overreacted.io", "blog.golang.org",
		},
		CommunityDomains: []string{
			"reddit.com", "stackoverflow.com", "stackexchange.com", "quora.com",
			"news.ycombinator.com", "discord.com", "forum.freecodecamp.org",
		},
		GarbageDomains: []string{
			"coursehero", "scribd", "slideshare", "answers.com", "essay",
			"homeworkhelp", "studocu", "chegg",
		},
	}
}

// Load reads a YAML override and appends it onto the defaults. Override
// entries extend the compiled-in lists; they never remove entries.
func Load(r io.Reader) (*Lists, error) {
	var override Lists
	if err := yaml.NewDecoder(r).Decode(&override); err != nil {
		return nil, err
	}

	base := Default()
	base.PracticeDomains = append(base.PracticeDomains, override.PracticeDomains...)
	base.DocDomains = append(base.DocDomains, override.DocDomains...)
	base.DocPathMarkers = append(base.DocPathMarkers, override.DocPathMarkers...)
	base.TutorialDomains = append(base.TutorialDomains, override.TutorialDomains...)
	base.OfficialDocs = append(base.OfficialDocs, override.OfficialDocs...)
	base.VendorDocs = append(base.VendorDocs, override.VendorDocs...)
	base.Universities = append(base.Universities, override.Universities...)
	base.MOOCPlatforms = append(base.MOOCPlatforms, override.MOOCPlatforms...)
	base.TrustedChannels = append(base.TrustedChannels, override.TrustedChannels...)
	base.BlogDomains = append(base.BlogDomains, override.BlogDomains...)
	base.CommunityDomains = append(base.CommunityDomains, override.CommunityDomains...)
	base.GarbageDomains = append(base.GarbageDomains, override.GarbageDomains...)
	return base, nil
}

// HostMatches reports whether host equals or is a subdomain of any entry.
func HostMatches(host string, domains []string) bool {
	host = strings.ToLower(host)
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}

// ChannelTrusted does a case-insensitive containment match against the
// trusted-channel list; channel names in search results are not stable
// enough for exact matching.
func (l *Lists) ChannelTrusted(channel string) bool {
	channel = strings.ToLower(strings.TrimSpace(channel))
	if channel == "" {
		return false
	}
	for _, trusted := range l.TrustedChannels {
		if strings.Contains(channel, trusted) {
			return true
		}
	}
	return false
}
