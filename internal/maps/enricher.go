// Package maps enriches listings with nearby points of interest using the
// Google Maps APIs. Enrichment is best effort: failures degrade to the
// unenriched listing rather than failing the search.
package maps

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"googlemaps.github.io/maps"

	"github.com/aptiva-ai/rental-platform/internal/model"
	"github.com/aptiva-ai/rental-platform/pkg/logger"
)

// poiRadiusMeters is the nearby search radius around a geocoded listing.
const poiRadiusMeters = 2000

// poiCategories are the place types summarized per listing, in display
// order. At most two names per category are reported.
var poiCategories = []struct {
	Label string
	Type  maps.PlaceType
}{
	{"gyms", maps.PlaceTypeGym},
	{"schools", maps.PlaceTypeSchool},
	{"universities", maps.PlaceTypeUniversity},
	{"parks", maps.PlaceTypePark},
	{"shopping", maps.PlaceTypeShoppingMall},
	{"hospitals", maps.PlaceTypeHospital},
}

// EnrichedListing pairs a listing with its nearby POI summaries.
type EnrichedListing struct {
	model.Listing
	NearbyPOIs []string `json:"nearby_pois,omitempty"`
}

// Enricher geocodes listing locations and finds nearby POIs.
type Enricher struct {
	client *maps.Client
	logger *logger.Logger
}

// NewEnricher creates an enricher. An empty API key returns a nil
// enricher, which callers treat as enrichment disabled.
func NewEnricher(apiKey string, log *logger.Logger) (*Enricher, error) {
	if apiKey == "" {
		return nil, nil
	}
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &Enricher{client: client, logger: log}, nil
}

// Enrich annotates each listing with nearby POI summaries. Listings whose
// location cannot be geocoded pass through without annotations.
func (e *Enricher) Enrich(ctx context.Context, listings []model.Listing) []EnrichedListing {
	out := make([]EnrichedListing, 0, len(listings))
	for _, l := range listings {
		enriched := EnrichedListing{Listing: l}

		loc := l.Location
		if loc == "" {
			loc = l.Title
		}
		latLng, err := e.geocode(ctx, loc)
		if err != nil {
			e.logger.Debug("geocode failed, skipping enrichment",
				zap.String("location", loc),
				zap.Error(err))
			out = append(out, enriched)
			continue
		}

		enriched.NearbyPOIs = e.findPOIs(ctx, latLng)
		out = append(out, enriched)
	}
	return out
}

func (e *Enricher) geocode(ctx context.Context, address string) (*maps.LatLng, error) {
	if address == "" {
		return nil, fmt.Errorf("empty address")
	}
	results, err := e.client.Geocode(ctx, &maps.GeocodingRequest{Address: address})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no geocoding results for %q", address)
	}
	loc := results[0].Geometry.Location
	return &loc, nil
}

func (e *Enricher) findPOIs(ctx context.Context, latLng *maps.LatLng) []string {
	var summaries []string
	for _, cat := range poiCategories {
		resp, err := e.client.NearbySearch(ctx, &maps.NearbySearchRequest{
			Location: latLng,
			Radius:   poiRadiusMeters,
			Type:     cat.Type,
		})
		if err != nil {
			continue
		}

		var names []string
		for _, p := range resp.Results {
			if p.Name == "" {
				continue
			}
			names = append(names, p.Name)
			if len(names) == 2 {
				break
			}
		}
		if len(names) > 0 {
			summaries = append(summaries, fmt.Sprintf("Nearby %s: %s", cat.Label, strings.Join(names, ", ")))
		}
	}
	return summaries
}
