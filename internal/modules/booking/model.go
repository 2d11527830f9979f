// README: Booking aggregate, lifecycle statuses and transition table.
package booking

import (
	"time"

	"cabdesk/internal/modules/fare"
	"cabdesk/internal/types"
)

type Status string

const (
	StatusNone      Status = "none"
	StatusEnquiry   Status = "enquiry"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Stop is one point of the itinerary as entered by the operator. Coordinates
// are present only when the address came through the autocomplete widget.
type Stop struct {
	Address string       `json:"address"`
	Point   *types.Point `json:"point,omitempty"`
}

// Booking is a priced enquiry. The fare snapshot is taken at creation and
// never recomputed: later pricing-rule edits must not alter historical
// records.
type Booking struct {
	ID            types.ID
	CustomerName  string
	CustomerPhone string
	TripType      fare.TripType
	VehicleClass  fare.VehicleClass
	Pickup        Stop
	Drops         []Stop
	Destination   Stop
	Params        fare.TripParams
	Fare          fare.Result
	Message       string
	Status        Status
	StatusVersion int
	CreatedAt     time.Time
	ConfirmedAt   *time.Time
	CompletedAt   *time.Time
	CancelledAt   *time.Time
	CancelReason  *string
}

type Event struct {
	ID         int64
	BookingID  types.ID
	FromStatus Status
	ToStatus   Status
	Actor      string
	CreatedAt  time.Time
}

// AllowedTransitions represents the booking lifecycle as code.
var AllowedTransitions = map[Status][]Status{
	StatusEnquiry:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

func CanTransition(from, to Status) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
