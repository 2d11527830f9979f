// README: Fare domain model - vehicle classes, trip types, rate tables, line items.
package fare

import "fmt"

type VehicleClass string

const (
	ClassSedan     VehicleClass = "sedan"
	ClassSUV       VehicleClass = "suv"
	ClassAuto      VehicleClass = "auto"
	ClassMiniTruck VehicleClass = "mini_truck"
)

type TripType string

const (
	TripLocal      TripType = "local"
	TripRental     TripType = "rental"
	TripOutstation TripType = "outstation"
	// TripGeneral is a non-transport enquiry: no fare is computed, the
	// requirement text is echoed back in the outreach message.
	TripGeneral TripType = "general"
)

type OutstationMode string

const (
	ModeRoundTrip OutstationMode = "round_trip"
	ModeOneWay    OutstationMode = "one_way"
)

// Rules holds the per-vehicle-class rate table. A calculation fails if no
// entry exists for the requested class; defaults are seeded at configuration
// load, never substituted at calculation time.
type Rules struct {
	LocalBaseFare    float64 `json:"local_base_fare"`
	LocalBaseKm      float64 `json:"local_base_km"`
	LocalPerKmRate   float64 `json:"local_per_km_rate"`
	LocalWaitingRate float64 `json:"local_waiting_rate"`

	// Rental extras are informational for now; the package price dominates.
	RentalExtraKmRate float64 `json:"rental_extra_km_rate"`
	RentalExtraHrRate float64 `json:"rental_extra_hr_rate"`

	OutstationMinKmPerDay     float64 `json:"outstation_min_km_per_day"`
	OutstationBaseRate        float64 `json:"outstation_base_rate"`
	OutstationExtraKmRate     float64 `json:"outstation_extra_km_rate"`
	OutstationDriverAllowance float64 `json:"outstation_driver_allowance"`
	OutstationNightAllowance  float64 `json:"outstation_night_allowance"`
	OutstationHillsAllowance  float64 `json:"outstation_hills_allowance"`
}

// Validate rejects malformed rate tables. All rates are non-negative.
func (r Rules) Validate() error {
	fields := map[string]float64{
		"local_base_fare":             r.LocalBaseFare,
		"local_base_km":               r.LocalBaseKm,
		"local_per_km_rate":           r.LocalPerKmRate,
		"local_waiting_rate":          r.LocalWaitingRate,
		"rental_extra_km_rate":        r.RentalExtraKmRate,
		"rental_extra_hr_rate":        r.RentalExtraHrRate,
		"outstation_min_km_per_day":   r.OutstationMinKmPerDay,
		"outstation_base_rate":        r.OutstationBaseRate,
		"outstation_extra_km_rate":    r.OutstationExtraKmRate,
		"outstation_driver_allowance": r.OutstationDriverAllowance,
		"outstation_night_allowance":  r.OutstationNightAllowance,
		"outstation_hills_allowance":  r.OutstationHillsAllowance,
	}
	for name, v := range fields {
		if v < 0 {
			return fmt.Errorf("%w: %s = %v", ErrBadRate, name, v)
		}
	}
	return nil
}

// Package is a fixed-price rental bundle with one price per vehicle class.
type Package struct {
	ID     string                   `json:"id"`
	Name   string                   `json:"name"`
	Hours  float64                  `json:"hours"`
	Km     float64                  `json:"km"`
	Prices map[VehicleClass]float64 `json:"prices"`
}

// TripParams carries the operator-entered trip parameters. Fields are
// interpreted per trip type; unused fields are ignored.
type TripParams struct {
	Mode           OutstationMode `json:"mode,omitempty"`
	EstimatedKm    float64        `json:"estimated_km,omitempty"`
	WaitingMinutes float64        `json:"waiting_minutes,omitempty"`
	PackageID      string         `json:"package_id,omitempty"`
	Days           int            `json:"days,omitempty"`
	Nights         int            `json:"nights,omitempty"`
	HillsTrip      bool           `json:"hills_trip,omitempty"`
	Requirement    string         `json:"requirement,omitempty"`
}

// normalized clamps numeric inputs to >= 0. Days defaults to 1 because a trip
// cannot have zero duration; partially-filled forms are a normal input, not an
// error.
func (p TripParams) normalized() TripParams {
	if p.EstimatedKm < 0 {
		p.EstimatedKm = 0
	}
	if p.WaitingMinutes < 0 {
		p.WaitingMinutes = 0
	}
	if p.Days < 1 {
		p.Days = 1
	}
	if p.Nights < 0 {
		p.Nights = 0
	}
	return p
}

type ItemKind string

const (
	KindBase      ItemKind = "base"
	KindExtra     ItemKind = "extra"
	KindAllowance ItemKind = "allowance"
	KindTax       ItemKind = "tax"
)

// LineItem is one itemized row of a fare breakdown. Order within a Result is
// significant and stable across identical inputs.
type LineItem struct {
	Label       string   `json:"label"`
	Amount      float64  `json:"amount"`
	Description string   `json:"description,omitempty"`
	Kind        ItemKind `json:"kind"`
}

// Result is a computed fare: ordered line items plus their sum. It carries no
// identity and is recomputed on every parameter change, never mutated.
type Result struct {
	Items []LineItem `json:"items"`
	Total float64    `json:"total"`
}

// Subtotal is the pre-tax sum of the line items.
func (r Result) Subtotal() float64 {
	var sum float64
	for _, it := range r.Items {
		if it.Kind != KindTax {
			sum += it.Amount
		}
	}
	return sum
}
