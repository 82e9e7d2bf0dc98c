package extraction

import (
	"regexp"
	"strings"
	"time"
)

// dateFormats are tried strictly and in this fixed order; the first layout
// that parses the whole line wins, so "15/03/2024" resolves day-first even
// though the month-first layout would also accept many inputs.
var dateFormats = []string{
	"02/01/2006",
	"01/02/2006",
	"2006-01-02",
	"02-01-2006",
}

var (
	slashDatePattern = regexp.MustCompile(`\b\d{1,2}/\d{1,2}/\d{4}\b`)
	isoDatePattern   = regexp.MustCompile(`\b\d{4}-\d{1,2}-\d{1,2}\b`)
	dashDatePattern  = regexp.MustCompile(`\b\d{1,2}-\d{1,2}-\d{4}\b`)
	weekdayPattern   = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
)

var weekdaysByName = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// isDateLine reports whether a line should be claimed as a delivery-date
// candidate: a numeric date shape, the words "today"/"tomorrow", or any
// weekday name.
func isDateLine(line string) bool {
	lower := strings.ToLower(line)
	return slashDatePattern.MatchString(line) ||
		isoDatePattern.MatchString(line) ||
		dashDatePattern.MatchString(line) ||
		strings.Contains(lower, "today") ||
		strings.Contains(lower, "tomorrow") ||
		weekdayPattern.MatchString(line)
}

// parseDate resolves a claimed date line to a calendar date.
//
// "tomorrow" and "today" resolve relative to now; a weekday name resolves to
// the next occurrence of that weekday (never today); otherwise the trimmed
// line is tried against dateFormats. An unparseable line yields nil and is
// silently dropped, never an error.
func parseDate(line string, now time.Time) *time.Time {
	trimmed := strings.TrimSpace(line)
	lower := strings.ToLower(trimmed)

	if strings.Contains(lower, "tomorrow") {
		return calendarDate(now.AddDate(0, 0, 1))
	}
	if strings.Contains(lower, "today") {
		return calendarDate(now)
	}

	for _, layout := range dateFormats {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return calendarDate(parsed)
		}
	}

	if match := weekdayPattern.FindString(lower); match != "" {
		target := weekdaysByName[match]
		days := (int(target) - int(now.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		return calendarDate(now.AddDate(0, 0, days))
	}

	return nil
}

// calendarDate truncates t to a UTC calendar date.
func calendarDate(t time.Time) *time.Time {
	date := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &date
}
