// README: Pure geographic helpers and the offline straight-line provider.
package maps

import (
	"context"
	"errors"
	"math"

	"cabdesk/internal/types"
)

const earthRadiusKm = 6371.0

// haversineKm returns the great-circle distance in kilometres between two
// points specified in decimal degrees.
func haversineKm(a, b types.Point) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	rLat1 := degreesToRadians(a.Lat)
	rLat2 := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rLat1)*math.Cos(rLat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func degreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// defaultRoadFactor approximates road distance from the straight line.
const defaultRoadFactor = 1.3

// StraightLineProvider estimates route distance without network access:
// haversine per consecutive pair, scaled by a road factor. Used in
// development and tests when no Maps API key is configured.
type StraightLineProvider struct {
	RoadFactor float64
}

func NewStraightLineProvider(roadFactor float64) *StraightLineProvider {
	if roadFactor <= 0 {
		roadFactor = defaultRoadFactor
	}
	return &StraightLineProvider{RoadFactor: roadFactor}
}

func (p *StraightLineProvider) RouteKm(_ context.Context, waypoints []types.Point) (float64, error) {
	if len(waypoints) < 2 {
		return 0, errors.New("at least two waypoints required")
	}
	var km float64
	for i := 0; i < len(waypoints)-1; i++ {
		km += haversineKm(waypoints[i], waypoints[i+1])
	}
	return km * p.RoadFactor, nil
}
