package maps

import (
	"context"
	"math"
	"testing"

	"cabdesk/internal/types"
)

func TestHaversineKm_KnownDistances(t *testing.T) {
	tests := []struct {
		name      string
		a, b      types.Point
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         types.Point{Lat: 13.0827, Lng: 80.2707},
			b:         types.Point{Lat: 13.0827, Lng: 80.2707},
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "Chennai to Bengaluru (~290km)",
			a:         types.Point{Lat: 13.0827, Lng: 80.2707},
			b:         types.Point{Lat: 12.9716, Lng: 77.5946},
			wantKm:    290,
			tolerance: 10,
		},
		{
			name:      "Chennai to Delhi (~1760km)",
			a:         types.Point{Lat: 13.0827, Lng: 80.2707},
			b:         types.Point{Lat: 28.6139, Lng: 77.2090},
			wantKm:    1760,
			tolerance: 30,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := haversineKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("haversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestHaversineKm_Symmetry(t *testing.T) {
	a := types.Point{Lat: 13.0, Lng: 80.0}
	b := types.Point{Lat: 12.0, Lng: 79.0}
	d1 := haversineKm(a, b)
	d2 := haversineKm(b, a)
	if math.Abs(d1-d2) > 0.0001 {
		t.Errorf("haversine is not symmetric: %f vs %f", d1, d2)
	}
}

func TestStraightLineProvider_SumsLegsInOrder(t *testing.T) {
	p := NewStraightLineProvider(1.0)
	a := types.Point{Lat: 13.0, Lng: 80.0}
	mid := types.Point{Lat: 13.5, Lng: 80.0}
	b := types.Point{Lat: 14.0, Lng: 80.0}

	direct, err := p.RouteKm(context.Background(), []types.Point{a, b})
	if err != nil {
		t.Fatal(err)
	}
	viaMid, err := p.RouteKm(context.Background(), []types.Point{a, mid, b})
	if err != nil {
		t.Fatal(err)
	}
	// Colinear waypoints: the summed legs equal the direct distance.
	if math.Abs(direct-viaMid) > 0.01 {
		t.Errorf("legs not summed sequentially: direct %f vs via mid %f", direct, viaMid)
	}
}

func TestStraightLineProvider_RoadFactor(t *testing.T) {
	a := types.Point{Lat: 13.0, Lng: 80.0}
	b := types.Point{Lat: 14.0, Lng: 80.0}

	base, err := NewStraightLineProvider(1.0).RouteKm(context.Background(), []types.Point{a, b})
	if err != nil {
		t.Fatal(err)
	}
	scaled, err := NewStraightLineProvider(1.3).RouteKm(context.Background(), []types.Point{a, b})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(scaled-base*1.3) > 0.0001 {
		t.Errorf("road factor not applied: %f vs %f", scaled, base*1.3)
	}

	// Non-positive factor falls back to the default.
	if p := NewStraightLineProvider(0); p.RoadFactor != defaultRoadFactor {
		t.Errorf("RoadFactor = %f, want default %f", p.RoadFactor, defaultRoadFactor)
	}
}

func TestStraightLineProvider_TooFewWaypoints(t *testing.T) {
	p := NewStraightLineProvider(0)
	if _, err := p.RouteKm(context.Background(), []types.Point{{Lat: 1, Lng: 1}}); err == nil {
		t.Error("expected error for a single waypoint")
	}
}
