package util

import (
	"regexp"
	"strings"
)

var reOrderID = regexp.MustCompile(`\b(\d{3,})\b`)

// ExtractOrderID returns the first run of three or more digits in text, or "".
func ExtractOrderID(text string) string {
	m := reOrderID.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// IsDelayed probes a free-form status for the English and Polish delay markers.
func IsDelayed(status string) bool {
	s := strings.ToLower(status)
	return strings.Contains(s, "delayed") || strings.Contains(s, "opóźn")
}
