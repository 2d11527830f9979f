// README: Distance resolution and address autocomplete endpoints for the
// enquiry forms.
package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"cabdesk/internal/maps"
	"cabdesk/internal/types"
)

// DistanceProvider resolves summed road kilometres for ordered waypoints.
type DistanceProvider interface {
	RouteKm(ctx context.Context, waypoints []types.Point) (float64, error)
}

// Autocompleter serves address suggestions; nil when no Maps key is set.
type Autocompleter interface {
	Autocomplete(ctx context.Context, input string) ([]maps.Suggestion, error)
	ResolvePlace(ctx context.Context, placeID string) (types.Point, string, error)
}

type PlacesHandler struct {
	distance DistanceProvider
	places   Autocompleter
}

func NewPlacesHandler(distance DistanceProvider, places Autocompleter) *PlacesHandler {
	return &PlacesHandler{distance: distance, places: places}
}

type distanceReq struct {
	Waypoints []types.Point `json:"waypoints"`
	RoundTrip bool          `json:"round_trip"`
}

func (h *PlacesHandler) Distance(c *gin.Context) {
	var req distanceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	if len(req.Waypoints) < 2 {
		writeError(c, http.StatusBadRequest, "at least two waypoints required")
		return
	}
	km, err := h.distance.RouteKm(c.Request.Context(), req.Waypoints)
	if err != nil {
		writeError(c, http.StatusBadGateway, err.Error())
		return
	}
	if req.RoundTrip {
		km *= 2
	}
	c.JSON(http.StatusOK, gin.H{"km": km})
}

// TravelEstimator is implemented by providers that can also report driving
// duration (the Google-backed one; not the straight-line fallback).
type TravelEstimator interface {
	TravelEstimate(ctx context.Context, from, to types.Point) (time.Duration, string, error)
}

type travelEstimateReq struct {
	From types.Point `json:"from"`
	To   types.Point `json:"to"`
}

func (h *PlacesHandler) TravelEstimate(c *gin.Context) {
	est, ok := h.distance.(TravelEstimator)
	if !ok {
		writeError(c, http.StatusServiceUnavailable, "travel estimates not configured")
		return
	}
	var req travelEstimateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	duration, distance, err := est.TravelEstimate(c.Request.Context(), req.From, req.To)
	if err != nil {
		writeError(c, http.StatusBadGateway, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"duration_minutes": duration.Minutes(),
		"distance":         distance,
	})
}

func (h *PlacesHandler) Autocomplete(c *gin.Context) {
	if h.places == nil {
		writeError(c, http.StatusServiceUnavailable, "places lookup not configured")
		return
	}
	input := c.Query("q")
	if input == "" {
		writeError(c, http.StatusBadRequest, "q is required")
		return
	}
	suggestions, err := h.places.Autocomplete(c.Request.Context(), input)
	if err != nil {
		writeError(c, http.StatusBadGateway, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (h *PlacesHandler) Resolve(c *gin.Context) {
	if h.places == nil {
		writeError(c, http.StatusServiceUnavailable, "places lookup not configured")
		return
	}
	placeID := c.Query("place_id")
	if placeID == "" {
		writeError(c, http.StatusBadRequest, "place_id is required")
		return
	}
	point, address, err := h.places.ResolvePlace(c.Request.Context(), placeID)
	if err != nil {
		writeError(c, http.StatusBadGateway, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"point": point, "address": address})
}
