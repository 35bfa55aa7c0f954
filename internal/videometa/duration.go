package videometa

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultMinutes is the estimate used when a duration cannot be parsed.
const DefaultMinutes = 15

var (
	isoRe      = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)
	clockRe    = regexp.MustCompile(`^(?:(\d+):)?(\d{1,2}):(\d{2})$`)
	hoursMinRe = regexp.MustCompile(`(?:(\d+)\s*h(?:ours?)?)?\s*(?:(\d+)\s*m(?:in(?:utes?)?)?)?$`)
)

// ParseMinutes converts a duration string into whole minutes, rounding any
// partial minute up. Handles ISO-8601 (PT1H30M15S), clock forms (1:30:15,
// 12:45), and free text ("2h 15m", "45 min"). Unparseable input gets the
// default estimate rather than an error; a duration guess must never stop
// a candidate from flowing through the pipeline.
func ParseMinutes(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultMinutes
	}

	if m := isoRe.FindStringSubmatch(strings.ToUpper(raw)); m != nil {
		return fromParts(m[1], m[2], m[3])
	}
	if m := clockRe.FindStringSubmatch(raw); m != nil {
		return fromParts(m[1], m[2], m[3])
	}

	lower := strings.ToLower(raw)
	if m := hoursMinRe.FindStringSubmatch(lower); m != nil && (m[1] != "" || m[2] != "") {
		return fromParts(m[1], m[2], "")
	}
	return DefaultMinutes
}

func fromParts(hours, minutes, seconds string) int {
	h := atoi(hours)
	m := atoi(minutes)
	s := atoi(seconds)

	total := h*60 + m
	if s > 0 {
		total++
	}
	if total <= 0 {
		return DefaultMinutes
	}
	return total
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
