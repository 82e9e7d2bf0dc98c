package extraction

import (
	"regexp"
	"strings"

	"chatorder/internal/core/domain/model/kernel"
)

// Pattern families used to score unlabeled lines. A line's score for a field
// is the number of families in that field's library matching the line, so a
// line hitting both a street keyword and a numeric prefix outranks one that
// only looks vaguely address-like.

// namePatterns recognize person-name-shaped lines.
var namePatterns = []*regexp.Regexp{
	// letters and spaces only
	regexp.MustCompile(`^[A-Za-z][A-Za-z .'-]*$`),
	// two to four words
	regexp.MustCompile(`^\S+(?:\s+\S+){1,3}$`),
}

// addressPatterns recognize delivery-address-shaped lines.
var addressPatterns = []*regexp.Regexp{
	// street keywords
	regexp.MustCompile(`(?i)\b(street|str|road|rd|avenue|ave|close|crescent|estate|lane|drive|way|junction|plaza|block|flat|house|suite|off|opposite)\b`),
	// house-number prefix
	regexp.MustCompile(`^\d+[\s,]`),
	// long free text
	regexp.MustCompile(`^.{25,}$`),
}

// itemPatterns recognize item-list-shaped lines.
var itemPatterns = []*regexp.Regexp{
	// quantity markers such as "2x", "x2", "2 packs"
	regexp.MustCompile(`(?i)\b\d+\s*x\b|\bx\s*\d+\b|\b\d+\s+(pack|packs|portion|portions|plate|plates|bottle|bottles|piece|pieces|wrap|wraps|carton|cartons)\b`),
	// food keywords
	regexp.MustCompile(`(?i)\b(rice|jollof|fried|chicken|beef|goat|fish|meat|turkey|pizza|burger|shawarma|suya|soup|stew|egusi|bread|beans|plantain|salad|spaghetti|noodles|drink|drinks|juice|water|coke|cake|pie|moimoi|yam)\b`),
}

// countMatches returns how many families in the library match the line.
func countMatches(line string, library []*regexp.Regexp) int {
	count := 0
	for _, pattern := range library {
		if pattern.MatchString(line) {
			count++
		}
	}
	return count
}

// isPhoneCandidate reports whether a line looks like a bare phone number:
// after stripping non-digits it carries 10-15 digits and starts with a local
// trunk prefix, the country code, or an international prefix digit, or is
// otherwise at least 10 digits long.
func isPhoneCandidate(line string) bool {
	digits := kernel.Digits(line)
	if len(digits) < kernel.MinPhoneDigits || len(digits) > kernel.MaxPhoneDigits {
		return false
	}

	return strings.HasPrefix(digits, "0") ||
		strings.HasPrefix(digits, "234") ||
		strings.HasPrefix(digits, "1") ||
		len(digits) >= kernel.MinPhoneDigits
}
