// README: Booking service - orchestrates distance resolution, fare
// computation, message rendering and persistence; owns state transitions.
package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"cabdesk/internal/modules/fare"
	"cabdesk/internal/types"
)

var (
	ErrNotFound     = errors.New("booking not found")
	ErrInvalidState = errors.New("invalid booking state transition")
	ErrConflict     = errors.New("booking state conflict")
	ErrBadRequest   = errors.New("bad request")
)

// Fares produces a fare for already-resolved trip parameters.
type Fares interface {
	Quote(ctx context.Context, tripType fare.TripType, class fare.VehicleClass, params fare.TripParams) (fare.Result, error)
}

// Distance resolves road kilometres for an ordered waypoint list, summing
// consecutive pairs. Resolution happens strictly before fare calculation.
type Distance interface {
	RouteKm(ctx context.Context, waypoints []types.Point) (float64, error)
}

type Service struct {
	store    Store
	fares    Fares
	distance Distance
}

func NewService(store Store, fares Fares, distance Distance) *Service {
	return &Service{store: store, fares: fares, distance: distance}
}

type CreateCommand struct {
	CustomerName  string
	CustomerPhone string
	TripType      fare.TripType
	VehicleClass  fare.VehicleClass
	Pickup        Stop
	Drops         []Stop
	Destination   Stop
	Params        fare.TripParams
}

type TransitionCommand struct {
	BookingID types.ID
	Actor     string
	Reason    string
}

// Create prices and persists a new enquiry. When every itinerary point
// carries coordinates and the operator did not key in a distance, the
// distance provider fills EstimatedKm; a round trip doubles the resolved
// one-way distance.
func (s *Service) Create(ctx context.Context, cmd CreateCommand) (*Booking, error) {
	if cmd.CustomerName == "" || cmd.TripType == "" {
		return nil, ErrBadRequest
	}
	if cmd.TripType != fare.TripGeneral && cmd.VehicleClass == "" {
		return nil, ErrBadRequest
	}
	if cmd.TripType == fare.TripGeneral && strings.TrimSpace(cmd.Params.Requirement) == "" {
		return nil, ErrBadRequest
	}

	params := cmd.Params
	if params.EstimatedKm == 0 && s.distance != nil {
		if wp := waypoints(cmd); len(wp) >= 2 {
			km, err := s.distance.RouteKm(ctx, wp)
			if err != nil {
				return nil, err
			}
			if cmd.TripType == fare.TripOutstation && params.Mode == fare.ModeRoundTrip {
				km *= 2
			}
			params.EstimatedKm = km
		}
	}

	res, err := s.fares.Quote(ctx, cmd.TripType, cmd.VehicleClass, params)
	if err != nil {
		return nil, err
	}
	msg := fare.RenderMessage(cmd.TripType, cmd.VehicleClass, params, res, fare.CustomerContext{
		Name:        cmd.CustomerName,
		Pickup:      cmd.Pickup.Address,
		Drops:       stopAddresses(cmd.Drops),
		Destination: cmd.Destination.Address,
	})

	now := time.Now()
	b := &Booking{
		ID:            types.ID(uuid.NewString()),
		CustomerName:  cmd.CustomerName,
		CustomerPhone: cmd.CustomerPhone,
		TripType:      cmd.TripType,
		VehicleClass:  cmd.VehicleClass,
		Pickup:        cmd.Pickup,
		Drops:         cmd.Drops,
		Destination:   cmd.Destination,
		Params:        params,
		Fare:          res,
		Message:       msg,
		Status:        StatusEnquiry,
		StatusVersion: 0,
		CreatedAt:     now,
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, err
	}
	_ = s.store.AppendEvent(ctx, &Event{
		BookingID:  b.ID,
		FromStatus: StatusNone,
		ToStatus:   StatusEnquiry,
		Actor:      "operator",
		CreatedAt:  now,
	})
	return b, nil
}

func (s *Service) Confirm(ctx context.Context, cmd TransitionCommand) error {
	return s.transition(ctx, cmd, StatusConfirmed)
}

func (s *Service) Complete(ctx context.Context, cmd TransitionCommand) error {
	return s.transition(ctx, cmd, StatusCompleted)
}

func (s *Service) Cancel(ctx context.Context, cmd TransitionCommand) error {
	return s.transition(ctx, cmd, StatusCancelled)
}

func (s *Service) transition(ctx context.Context, cmd TransitionCommand, to Status) error {
	b, err := s.store.Get(ctx, cmd.BookingID)
	if err != nil {
		return err
	}
	if !CanTransition(b.Status, to) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, b.ID, b.Status, to, b.StatusVersion, cmd.Reason)
	if err != nil {
		return err
	}
	if !ok {
		return ErrConflict
	}
	actor := cmd.Actor
	if actor == "" {
		actor = "operator"
	}
	_ = s.store.AppendEvent(ctx, &Event{
		BookingID:  b.ID,
		FromStatus: b.Status,
		ToStatus:   to,
		Actor:      actor,
		CreatedAt:  time.Now(),
	})
	return nil
}

func (s *Service) Get(ctx context.Context, id types.ID) (*Booking, error) {
	return s.store.Get(ctx, id)
}

// List returns bookings newest first, optionally filtered by status.
func (s *Service) List(ctx context.Context, status Status, limit int) ([]*Booking, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.store.List(ctx, status, limit)
}

func waypoints(cmd CreateCommand) []types.Point {
	stops := append([]Stop{cmd.Pickup}, cmd.Drops...)
	if cmd.Destination.Address != "" || cmd.Destination.Point != nil {
		stops = append(stops, cmd.Destination)
	}
	pts := make([]types.Point, 0, len(stops))
	for _, st := range stops {
		if st.Point == nil {
			// Operator typed a free-form address; fall back to keyed-in km.
			return nil
		}
		pts = append(pts, *st.Point)
	}
	return pts
}

func stopAddresses(stops []Stop) []string {
	out := make([]string, 0, len(stops))
	for _, st := range stops {
		if st.Address != "" {
			out = append(out, st.Address)
		}
	}
	return out
}
