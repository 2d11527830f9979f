// README: Road-distance resolution via the Google Distance Matrix API.
package maps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"googlemaps.github.io/maps"

	"cabdesk/internal/types"
)

var ErrNoRoute = errors.New("no route between waypoints")

// DistanceService resolves driving distance for an ordered waypoint list.
// Consecutive pairs are summed in the order the operator entered them; no
// route optimization is attempted. Callers double the result themselves for
// round trips.
type DistanceService struct {
	client *maps.Client
}

func NewDistanceService(apiKey string) (*DistanceService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create maps client: %w", err)
	}
	return &DistanceService{client: client}, nil
}

func (s *DistanceService) RouteKm(ctx context.Context, waypoints []types.Point) (float64, error) {
	if len(waypoints) < 2 {
		return 0, errors.New("at least two waypoints required")
	}
	var totalMeters int
	for i := 0; i < len(waypoints)-1; i++ {
		meters, err := s.legMeters(ctx, waypoints[i], waypoints[i+1])
		if err != nil {
			return 0, fmt.Errorf("leg %d: %w", i, err)
		}
		totalMeters += meters
	}
	return float64(totalMeters) / 1000.0, nil
}

func (s *DistanceService) legMeters(ctx context.Context, from, to types.Point) (int, error) {
	resp, err := s.client.DistanceMatrix(ctx, &maps.DistanceMatrixRequest{
		Origins:      []string{latLng(from)},
		Destinations: []string{latLng(to)},
		Mode:         maps.TravelModeDriving,
	})
	if err != nil {
		return 0, fmt.Errorf("distance matrix: %w", err)
	}
	if len(resp.Rows) == 0 || len(resp.Rows[0].Elements) == 0 {
		return 0, ErrNoRoute
	}
	el := resp.Rows[0].Elements[0]
	if el.Status != "OK" {
		return 0, fmt.Errorf("%w: element status %s", ErrNoRoute, el.Status)
	}
	return el.Distance.Meters, nil
}

// TravelEstimate returns the driving duration and a human-readable distance
// for a single leg. Shown in the console next to outstation quotes.
func (s *DistanceService) TravelEstimate(ctx context.Context, from, to types.Point) (time.Duration, string, error) {
	routes, _, err := s.client.Directions(ctx, &maps.DirectionsRequest{
		Origin:      latLng(from),
		Destination: latLng(to),
		Mode:        maps.TravelModeDriving,
	})
	if err != nil {
		return 0, "", fmt.Errorf("directions: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return 0, "", ErrNoRoute
	}
	leg := routes[0].Legs[0]
	return leg.Duration, leg.Distance.HumanReadable, nil
}

func latLng(p types.Point) string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}
