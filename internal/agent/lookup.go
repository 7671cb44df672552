package agent

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

// ListingIdentity carries the stable fields used to re-find a listing in
// cached results across turns.
type ListingIdentity struct {
	URL      string
	Title    string
	Location string
}

func identityOf(listing model.Listing) ListingIdentity {
	return ListingIdentity{
		URL:      listing.URL,
		Title:    listing.Title,
		Location: listing.Location,
	}
}

// BuildListingLookup maps user-facing identifiers (index, title,
// location, URL) to listing identities. Keys are lowercased.
func BuildListingLookup(listings []model.Listing) map[string]ListingIdentity {
	lookup := make(map[string]ListingIdentity)
	register := func(identity ListingIdentity, keys ...string) {
		for _, key := range keys {
			cleaned := strings.ToLower(strings.TrimSpace(key))
			if cleaned != "" {
				lookup[cleaned] = identity
			}
		}
	}
	for i, listing := range listings {
		idx := i + 1
		identity := identityOf(listing)
		keys := []string{
			fmt.Sprintf("%d", idx),
			fmt.Sprintf("listing %d", idx),
			fmt.Sprintf("option %d", idx),
			fmt.Sprintf("choice %d", idx),
			fmt.Sprintf("#%d", idx),
		}
		if identity.Title != "" {
			keys = append(keys, identity.Title)
		}
		if identity.Location != "" {
			keys = append(keys, identity.Location)
		}
		if url := strings.TrimRight(identity.URL, "/"); url != "" {
			keys = append(keys, url)
		}
		register(identity, keys...)
	}
	return lookup
}

// FindListing locates a listing by identity, preferring URL matches.
func FindListing(listings []model.Listing, identity ListingIdentity) *model.Listing {
	url := strings.TrimRight(identity.URL, "/")
	if url != "" {
		for i := range listings {
			if strings.TrimRight(listings[i].URL, "/") == url {
				return &listings[i]
			}
		}
	}
	title := strings.ToLower(strings.TrimSpace(identity.Title))
	location := strings.ToLower(strings.TrimSpace(identity.Location))
	for i := range listings {
		candTitle := strings.ToLower(strings.TrimSpace(listings[i].Title))
		candLoc := strings.ToLower(strings.TrimSpace(listings[i].Location))
		if title != "" && candTitle == title {
			return &listings[i]
		}
		if location != "" && candLoc == location {
			return &listings[i]
		}
	}
	return nil
}

var (
	listingNumRE = regexp.MustCompile(`(?:listing|option|choice|#)\s*(\d+)`)
	bareNumRE    = regexp.MustCompile(`^\s*(\d+)\s*$`)
	messageURLRE = regexp.MustCompile(`https?://\S+`)
	digitsOnlyRE = regexp.MustCompile(`^\d+$`)
)

// IdentifyListingFromMessage infers which listing the user is referring
// to. Numeric references win, then URLs, then title or location
// substrings.
func IdentifyListingFromMessage(message string, lookup map[string]ListingIdentity, listings []model.Listing) (ListingIdentity, bool) {
	text := strings.ToLower(message)

	m := listingNumRE.FindStringSubmatch(text)
	if m == nil {
		m = bareNumRE.FindStringSubmatch(message)
	}
	if m != nil {
		num := m[1]
		for _, key := range []string{num, "listing " + num, "option " + num, "choice " + num, "#" + num} {
			if ident, ok := lookup[key]; ok {
				return ident, true
			}
		}
	}

	for _, rawURL := range messageURLRE.FindAllString(message, -1) {
		cleaned := strings.TrimRight(rawURL, ").,;")
		if ident, ok := lookup[strings.ToLower(cleaned)]; ok {
			return ident, true
		}
		trimmed := strings.TrimRight(cleaned, "/")
		if ident, ok := lookup[strings.ToLower(trimmed)]; ok {
			return ident, true
		}
		for _, listing := range listings {
			if url := strings.TrimRight(listing.URL, "/"); url != "" && url == trimmed {
				return identityOf(listing), true
			}
		}
	}

	for key, ident := range lookup {
		if key != "" && !digitsOnlyRE.MatchString(key) && strings.Contains(text, key) {
			return ident, true
		}
	}

	for _, listing := range listings {
		title := strings.ToLower(strings.TrimSpace(listing.Title))
		if title != "" && strings.Contains(text, title) {
			return identityOf(listing), true
		}
	}
	return ListingIdentity{}, false
}
