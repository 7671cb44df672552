package lease

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

var (
	monthRangeRE  = regexp.MustCompile(`(?i)(\d{1,2})\s*(?:-|to)\s*(\d{1,2})\s*month`)
	monthSingleRE = regexp.MustCompile(`(?i)(\d{1,2})\s*month`)
	bareNumberRE  = regexp.MustCompile(`\d{1,3}`)
)

// DeriveDurationBounds scans a listing's text for lease term patterns
// like "12 month" or "6-18 month" and returns the allowed range in
// months. Listings with no recognizable pattern default to (12, 12).
func DeriveDurationBounds(listing *model.Listing) model.DurationBounds {
	if listing == nil {
		return model.DurationBounds{Min: 12, Max: 12}
	}
	text := listing.SearchText()

	if m := monthRangeRE.FindStringSubmatch(text); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		if lo > 0 && hi >= lo {
			return model.DurationBounds{Min: lo, Max: hi}
		}
	}

	matches := monthSingleRE.FindAllStringSubmatch(text, -1)
	lo, hi := 0, 0
	for _, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil || n <= 0 {
			continue
		}
		if lo == 0 || n < lo {
			lo = n
		}
		if n > hi {
			hi = n
		}
	}
	if lo > 0 {
		return model.DurationBounds{Min: lo, Max: hi}
	}

	return model.DurationBounds{Min: 12, Max: 12}
}

// ParseDuration resolves the user's lease term reply against the allowed
// bounds. "all", "max", and "full" select the upper bound. Out-of-range
// numbers return an error naming the valid range.
func ParseDuration(input string, bounds model.DurationBounds) (int, error) {
	lowered := strings.ToLower(strings.TrimSpace(input))
	if lowered == "" {
		return 0, fmt.Errorf("no duration given")
	}

	for _, word := range []string{"all", "max", "full"} {
		if strings.Contains(lowered, word) {
			return bounds.Max, nil
		}
	}

	match := bareNumberRE.FindString(lowered)
	if match == "" {
		return 0, fmt.Errorf("no duration found in %q", input)
	}
	months, err := strconv.Atoi(match)
	if err != nil {
		return 0, err
	}
	if months < bounds.Min || months > bounds.Max {
		return 0, fmt.Errorf("lease terms for this unit run %d to %d months", bounds.Min, bounds.Max)
	}
	return months, nil
}
