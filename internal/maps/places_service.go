// README: Address autocomplete and place resolution for the enquiry forms.
package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"

	"cabdesk/internal/types"
)

// Suggestion is one autocomplete candidate shown in the address widget.
type Suggestion struct {
	Description string `json:"description"`
	PlaceID     string `json:"place_id"`
}

// PlacesService wraps the Places autocomplete and geocoding endpoints.
type PlacesService struct {
	client *maps.Client
	region string
}

// NewPlacesService creates a PlacesService. region biases results ("in" for
// India); empty means no bias.
func NewPlacesService(apiKey, region string) (*PlacesService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &PlacesService{client: client, region: region}, nil
}

// Autocomplete returns up to five suggestions for a partial address.
func (s *PlacesService) Autocomplete(ctx context.Context, input string) ([]Suggestion, error) {
	req := &maps.PlaceAutocompleteRequest{Input: input}
	if s.region != "" {
		req.Components = map[maps.Component][]string{maps.ComponentCountry: {s.region}}
	}
	resp, err := s.client.PlaceAutocomplete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("place autocomplete: %w", err)
	}

	out := make([]Suggestion, 0, 5)
	for _, p := range resp.Predictions {
		out = append(out, Suggestion{Description: p.Description, PlaceID: p.PlaceID})
		if len(out) >= 5 {
			break
		}
	}
	return out, nil
}

// ResolvePlace geocodes a selected suggestion into coordinates and a
// formatted address.
func (s *PlacesService) ResolvePlace(ctx context.Context, placeID string) (types.Point, string, error) {
	results, err := s.client.Geocode(ctx, &maps.GeocodingRequest{PlaceID: placeID})
	if err != nil {
		return types.Point{}, "", fmt.Errorf("geocode place: %w", err)
	}
	if len(results) == 0 {
		return types.Point{}, "", fmt.Errorf("no geocode result for place %q", placeID)
	}
	loc := results[0].Geometry.Location
	return types.Point{Lat: loc.Lat, Lng: loc.Lng}, results[0].FormattedAddress, nil
}
