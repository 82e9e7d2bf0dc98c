package extraction

import (
	"strings"
	"time"
)

// fieldSet is the partial extraction result shared between the labeled scan
// and the heuristic classifier. Absent fields stay nil; they are never
// inferred during the labeled pass.
type fieldSet struct {
	name    *string
	phone   *string
	address *string
	items   *string
	date    *time.Time
}

// scanLabeled runs the labeled-field pass over trimmed, non-empty lines.
//
// Rules, applied case-insensitively per line:
//   - "name:" prefix assigns the customer name to the remainder
//   - a line containing both "phone" and ":" assigns the text after the
//     first colon to the phone number
//   - "address:" prefix assigns the address to the remainder
//   - a line containing both "item" and ":" assigns the text after the
//     first colon to the items
//   - a date-shaped line assigns the parsed delivery date
//
// When several lines match the same label the last one wins. The returned
// claimed slice marks lines consumed here so the classifier skips them.
func scanLabeled(lines []string, now time.Time) (fieldSet, []bool) {
	var fields fieldSet
	claimed := make([]bool, len(lines))

	for i, line := range lines {
		lower := strings.ToLower(line)

		switch {
		case strings.HasPrefix(lower, "name:"):
			fields.name = afterPrefix(line, len("name:"))
			claimed[i] = true
		case strings.Contains(lower, "phone") && strings.Contains(line, ":"):
			fields.phone = afterFirstColon(line)
			claimed[i] = true
		case strings.HasPrefix(lower, "address:"):
			fields.address = afterPrefix(line, len("address:"))
			claimed[i] = true
		case strings.Contains(lower, "item") && strings.Contains(line, ":"):
			fields.items = afterFirstColon(line)
			claimed[i] = true
		case isDateLine(line):
			fields.date = parseDate(line, now)
			claimed[i] = true
		}
	}

	return fields, claimed
}

func afterPrefix(line string, prefixLen int) *string {
	value := strings.TrimSpace(line[prefixLen:])
	return &value
}

func afterFirstColon(line string) *string {
	_, rest, _ := strings.Cut(line, ":")
	value := strings.TrimSpace(rest)
	return &value
}
