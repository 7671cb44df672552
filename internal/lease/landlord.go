package lease

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/aptiva-ai/rental-platform/internal/model"
)

// stopwordTokens are generic property-business words dropped entirely when
// deriving a landlord name from a URL slug.
var stopwordTokens = map[string]bool{
	"apartments": true,
	"apartment":  true,
	"apts":       true,
	"apt":        true,
	"residences": true,
	"residence":  true,
	"living":     true,
	"homes":      true,
	"home":       true,
	"property":   true,
	"properties": true,
	"group":      true,
	"llc":        true,
	"inc":        true,
	"corp":       true,
	"company":    true,
	"co":         true,
	"community":  true,
}

// stopwordSuffixes are trimmed off the end of a token before filtering.
var stopwordSuffixes = []string{
	"apartments",
	"apartment",
	"apts",
	"apt",
	"residences",
	"residence",
	"living",
	"homes",
	"home",
	"dtla",
	"tx",
	"ca",
	"az",
	"ny",
	"ga",
}

var (
	nonAlnumRE   = regexp.MustCompile(`[^a-zA-Z0-9]`)
	slugSplitRE  = regexp.MustCompile(`[-_/]`)
	alphaTokenRE = regexp.MustCompile(`[A-Za-z]+`)
	logoSuffixRE = regexp.MustCompile(`(?i)-?logo$`)
)

func slugToTitle(slug string) string {
	cleaned := strings.Trim(strings.TrimSpace(slug), "/")
	if cleaned == "" {
		return ""
	}
	var titled []string
	for _, token := range slugSplitRE.Split(cleaned, -1) {
		token = nonAlnumRE.ReplaceAllString(token, "")
		if token != "" {
			titled = append(titled, capitalizeWord(token))
		}
	}
	return strings.Join(titled, " ")
}

// cityStateTokens collects lowercase tokens for the search city and state
// so they can be stripped from a property slug.
func cityStateTokens(prefs model.Preferences, listing *model.Listing) (map[string]bool, map[string]bool) {
	cityTokens := make(map[string]bool)
	stateTokens := make(map[string]bool)

	addCity := func(text string) {
		for _, token := range alphaTokenRE.FindAllString(text, -1) {
			cityTokens[strings.ToLower(token)] = true
		}
	}
	addState := func(text string) {
		cleaned := strings.ToLower(nonAlnumRE.ReplaceAllString(text, ""))
		if cleaned == "" {
			return
		}
		stateTokens[cleaned] = true
		if len(cleaned) != 2 {
			if abbr, ok := model.StateAbbreviations[cleaned]; ok {
				stateTokens[strings.ToLower(abbr)] = true
			}
		}
	}

	if prefs.City != nil {
		addCity(*prefs.City)
	}
	if prefs.State != nil {
		addState(*prefs.State)
	}

	if (len(cityTokens) == 0 || len(stateTokens) == 0) && listing != nil && listing.Location != "" {
		var parts []string
		for _, p := range strings.Split(listing.Location, ",") {
			if p = strings.TrimSpace(p); p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) >= 2 {
			if len(cityTokens) == 0 {
				addCity(parts[len(parts)-2])
			}
			if len(stateTokens) == 0 {
				addState(parts[len(parts)-1])
			}
		}
	}
	return cityTokens, stateTokens
}

func stripLocationTokens(tokens []string, cityTokens, stateTokens map[string]bool) []string {
	if len(tokens) == 0 {
		return tokens
	}
	var cleaned []string
	for _, token := range tokens {
		tmp := token
		lower := strings.ToLower(tmp)
		for _, suffix := range stopwordSuffixes {
			if strings.HasSuffix(lower, suffix) && len(tmp) > len(suffix) {
				tmp = tmp[:len(tmp)-len(suffix)]
				lower = strings.ToLower(tmp)
			}
		}
		if tmp == "" {
			continue
		}
		lower = strings.ToLower(tmp)
		if cityTokens[lower] || stateTokens[lower] || stopwordTokens[lower] {
			continue
		}
		cleaned = append(cleaned, tmp)
	}
	if len(cleaned) > 0 {
		return cleaned
	}
	var fallback []string
	for _, t := range tokens {
		lower := strings.ToLower(t)
		if !cityTokens[lower] && !stateTokens[lower] {
			fallback = append(fallback, t)
		}
	}
	if len(fallback) > 0 {
		return fallback
	}
	return tokens
}

func nameFromURL(rawURL string, prefs model.Preferences, listing *model.Listing) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	host := strings.ToLower(parsed.Hostname())
	host = strings.TrimPrefix(host, "www.")

	cityTokens, stateTokens := cityStateTokens(prefs, listing)

	for _, segment := range strings.Split(parsed.Path, "/") {
		if segment == "" {
			continue
		}
		var tokens []string
		for _, token := range slugSplitRE.Split(segment, -1) {
			token = nonAlnumRE.ReplaceAllString(token, "")
			if token != "" {
				tokens = append(tokens, token)
			}
		}
		tokens = stripLocationTokens(tokens, cityTokens, stateTokens)
		hasAlpha := false
		for _, t := range tokens {
			if alphaTokenRE.MatchString(t) {
				hasAlpha = true
				break
			}
		}
		if len(tokens) > 0 && hasAlpha {
			return titleTokens(tokens)
		}
	}

	if host != "" {
		base := strings.Split(host, ".")[0]
		var tokens []string
		for _, token := range slugSplitRE.Split(base, -1) {
			token = nonAlnumRE.ReplaceAllString(token, "")
			if token != "" {
				tokens = append(tokens, token)
			}
		}
		tokens = stripLocationTokens(tokens, cityTokens, stateTokens)
		if len(tokens) > 0 {
			return titleTokens(tokens)
		}
	}
	return ""
}

func titleTokens(tokens []string) string {
	titled := make([]string, len(tokens))
	for i, t := range tokens {
		titled[i] = capitalizeWord(t)
	}
	return strings.Join(titled, " ")
}

// InferLandlordName approximates the landlord or management company from
// the listing's management logo, property website, or listing URL slug,
// falling back to the listing title.
func InferLandlordName(listing *model.Listing, prefs model.Preferences) string {
	if listing == nil {
		return "Property Owner"
	}

	if listing.LogoURL != "" {
		if parsed, err := url.Parse(listing.LogoURL); err == nil {
			stem := strings.TrimSuffix(path.Base(parsed.Path), path.Ext(parsed.Path))
			stem = logoSuffixRE.ReplaceAllString(stem, "")
			if company := slugToTitle(stem); company != "" {
				return company
			}
		}
	}

	if listing.PropertyWebsite != "" {
		if company := nameFromURL(listing.PropertyWebsite, prefs, listing); company != "" {
			return company
		}
	}

	if company := nameFromURL(listing.URL, prefs, listing); company != "" {
		return company
	}

	if listing.Title != "" {
		return listing.Title
	}
	return "Property Owner"
}
