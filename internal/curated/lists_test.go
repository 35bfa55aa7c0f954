package curated

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadExtendsDefaults(t *testing.T) {
	override := `
practice_domains:
  - myjudge.example
trusted_channels:
  - internal academy
`
	lists, err := Load(strings.NewReader(override))
	require.NoError(t, err)

	assert.Contains(t, lists.PracticeDomains, "leetcode.com")
	assert.Contains(t, lists.PracticeDomains, "myjudge.example")
	assert.True(t, lists.ChannelTrusted("Internal Academy Official"))
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(strings.NewReader("practice_domains: {not: [a, list"))
	assert.Error(t, err)
}

func TestHostMatches(t *testing.T) {
	domains := []string{"mit.edu", "coursera.org"}
	assert.True(t, HostMatches("ocw.mit.edu", domains))
	assert.True(t, HostMatches("mit.edu", domains))
	assert.False(t, HostMatches("notmit.edu", domains))
	assert.False(t, HostMatches("mit.edu.fake.io", domains))
}

func TestChannelTrusted(t *testing.T) {
	lists := Default()
	assert.True(t, lists.ChannelTrusted("freeCodeCamp.org"))
	assert.True(t, lists.ChannelTrusted("Fireship"))
	assert.False(t, lists.ChannelTrusted("Random Uploads 4k"))
	assert.False(t, lists.ChannelTrusted(""))
}
