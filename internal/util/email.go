package util

import (
	"regexp"
	"strings"
)

var (
	reEmailExtract = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	reEmailStrict  = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// CommonDomains is the reference list for typo suggestions, probed in order.
var CommonDomains = []string{
	"gmail.com", "outlook.com", "hotmail.com", "yahoo.com", "icloud.com",
	"wp.pl", "onet.pl", "o2.pl", "interia.pl",
}

// ExtractEmail returns the first e-mail-shaped substring of text, or "".
func ExtractEmail(text string) string {
	return reEmailExtract.FindString(text)
}

// IsValidEmail reports whether s, after trimming, is a whole e-mail address.
func IsValidEmail(s string) bool {
	return reEmailStrict.MatchString(strings.TrimSpace(s))
}

// MaskEmail renders an address for display: "ab@x.com" -> "a***@x.com".
// Input without "@" is returned unchanged.
func MaskEmail(s string) string {
	local, domain, ok := strings.Cut(s, "@")
	if !ok {
		return s
	}
	runes := []rune(local)
	if len(runes) > 1 {
		return string(runes[0]) + "***@" + domain
	}
	return local + "***@" + domain
}

// Levenshtein computes the classic unit-cost edit distance between a and b.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	row := make([]int, len(rb)+1)
	for j := range row {
		row[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		prev := row[0]
		row[0] = i
		for j := 1; j <= len(rb); j++ {
			cur := row[j]
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			row[j] = min(row[j]+1, row[j-1]+1, prev+cost)
			prev = cur
		}
	}
	return row[len(rb)]
}

// SuggestDomain proposes a corrected address when the domain is within edit
// distance 2 of a common provider. Ties go to the earlier list entry. Returns
// "" when the input has no "@", the best domain equals the original, or no
// candidate is close enough.
func SuggestDomain(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return ""
	}

	best := ""
	bestDist := -1
	for _, candidate := range CommonDomains {
		d := Levenshtein(domain, candidate)
		if bestDist < 0 || d < bestDist {
			best = candidate
			bestDist = d
		}
	}

	if bestDist <= 2 && best != domain {
		return local + "@" + best
	}
	return ""
}
