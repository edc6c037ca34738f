package timeparse

import "strings"

// IANA zone names reported as timezone hints.
const (
	ZonePacific = "America/Los_Angeles"
	ZoneEastern = "America/New_York"
	ZoneUTC     = "UTC"
)

var zoneHints = []struct {
	abbrev string
	zone   string
}{
	{"pst", ZonePacific},
	{"pdt", ZonePacific},
	{"est", ZoneEastern},
	{"edt", ZoneEastern},
	{"utc", ZoneUTC},
}

// DetectTimezone reports the zone named by an abbreviation in text.
// The scan is a plain substring match, so "best" counts as EST.
func DetectTimezone(text string) (string, bool) {
	s := strings.ToLower(text)
	for _, h := range zoneHints {
		if strings.Contains(s, h.abbrev) {
			return h.zone, true
		}
	}
	return "", false
}
