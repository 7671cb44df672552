package lease

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Tried in order so surrounding words never shadow an explicit date
// later in the message ("I could do 9/1/2026").
var datePatternREs = []*regexp.Regexp{
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}`),
	regexp.MustCompile(`(?i)(?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\s+\d{1,2}(?:,?\s*\d{4})?`),
}

// ParseMoveInDate extracts a move-in date from free text. Accepted forms
// are ISO (2026-09-01), MM/DD/YYYY, and "Month Day" with an optional
// year. A missing year defaults to the current year.
func ParseMoveInDate(input string, now time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(input)
	match := ""
	for _, re := range datePatternREs {
		if match = re.FindString(trimmed); match != "" {
			break
		}
	}
	if match == "" {
		return time.Time{}, fmt.Errorf("no date found in %q", input)
	}

	layouts := []string{
		"2006-01-02",
		"1/2/2006",
		"01/02/2006",
		"January 2, 2006",
		"January 2 2006",
		"Jan 2, 2006",
		"Jan 2 2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, match); err == nil {
			return t, nil
		}
	}

	// Month and day with no year.
	for _, layout := range []string{"January 2", "Jan 2"} {
		if t, err := time.Parse(layout, match); err == nil {
			return time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("could not parse date %q", match)
}
