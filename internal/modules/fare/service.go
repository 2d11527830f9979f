// README: Fare calculation engine - pure multi-branch tariff math plus a
// store-backed quoting service.
package fare

import (
	"context"
	"errors"
	"fmt"
	"math"
)

var (
	ErrNoRules           = errors.New("no pricing rules for vehicle class")
	ErrBadRate           = errors.New("malformed pricing rule")
	ErrPackageNotFound   = errors.New("rental package not found")
	ErrUnknownTripType   = errors.New("unknown trip type")
	ErrNoPackagePrice    = errors.New("rental package has no price for vehicle class")
	ErrUnknownOutstation = errors.New("unknown outstation mode")
)

// gstRate is applied to the pre-tax subtotal. The GST line is the only line
// item that rounds (half away from zero, to the whole rupee); every other
// item keeps full float precision.
const gstRate = 0.05

// Compute maps trip parameters and a rate table to an itemized fare. It is a
// pure function: no I/O, no hidden state, identical inputs produce identical
// results.
//
// rules must hold an entry for class - absence is a configuration error, not
// an occasion to borrow another class's rates. For rentals the package id
// must resolve in packages; an unknown id fails the calculation instead of
// silently pricing the trip at zero.
func Compute(tripType TripType, class VehicleClass, params TripParams, rules map[VehicleClass]Rules, packages []Package) (Result, error) {
	if tripType == TripGeneral {
		// Non-transport enquiry: nothing to price, no tax line.
		return Result{Items: []LineItem{}, Total: 0}, nil
	}

	r, ok := rules[class]
	if !ok {
		return Result{}, fmt.Errorf("%w: %s", ErrNoRules, class)
	}
	if err := r.Validate(); err != nil {
		return Result{}, err
	}
	p := params.normalized()

	var items []LineItem
	switch tripType {
	case TripLocal:
		items = localItems(p, r)
	case TripRental:
		var err error
		items, err = rentalItems(p, class, packages)
		if err != nil {
			return Result{}, err
		}
	case TripOutstation:
		var err error
		items, err = outstationItems(p, r)
		if err != nil {
			return Result{}, err
		}
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrUnknownTripType, tripType)
	}

	var subtotal float64
	for _, it := range items {
		subtotal += it.Amount
	}
	total := subtotal
	if subtotal > 0 {
		gst := math.Round(subtotal * gstRate)
		items = append(items, LineItem{
			Label:       "GST (5%)",
			Amount:      gst,
			Description: "Goods and services tax",
			Kind:        KindTax,
		})
		total += gst
	}
	return Result{Items: items, Total: total}, nil
}

func localItems(p TripParams, r Rules) []LineItem {
	items := []LineItem{{
		Label:       "Base Fare",
		Amount:      r.LocalBaseFare,
		Description: fmt.Sprintf("Includes first %g km", r.LocalBaseKm),
		Kind:        KindBase,
	}}
	if extraKm := p.EstimatedKm - r.LocalBaseKm; extraKm > 0 {
		items = append(items, LineItem{
			Label:       "Extra KM Charges",
			Amount:      extraKm * r.LocalPerKmRate,
			Description: fmt.Sprintf("%g km beyond base at Rs.%g/km", extraKm, r.LocalPerKmRate),
			Kind:        KindExtra,
		})
	}
	if p.WaitingMinutes > 0 {
		items = append(items, LineItem{
			Label:       "Waiting Charges",
			Amount:      p.WaitingMinutes * r.LocalWaitingRate,
			Description: fmt.Sprintf("%g min at Rs.%g/min", p.WaitingMinutes, r.LocalWaitingRate),
			Kind:        KindExtra,
		})
	}
	return items
}

func rentalItems(p TripParams, class VehicleClass, packages []Package) ([]LineItem, error) {
	for _, pkg := range packages {
		if pkg.ID != p.PackageID {
			continue
		}
		price, ok := pkg.Prices[class]
		if !ok {
			return nil, fmt.Errorf("%w: package %q, class %s", ErrNoPackagePrice, pkg.ID, class)
		}
		return []LineItem{{
			Label:       "Package Rate",
			Amount:      price,
			Description: pkg.Name,
			Kind:        KindBase,
		}}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrPackageNotFound, p.PackageID)
}

func outstationItems(p TripParams, r Rules) ([]LineItem, error) {
	var items []LineItem
	days := float64(p.Days)

	switch p.Mode {
	case ModeRoundTrip:
		// A driver is allocated for the full day(s) regardless of distance
		// driven, so billing floors at the per-day minimum.
		minKm := days * r.OutstationMinKmPerDay
		chargeableKm := math.Max(p.EstimatedKm, minKm)
		items = append(items, LineItem{
			Label:       "KM Charges",
			Amount:      chargeableKm * r.OutstationExtraKmRate,
			Description: fmt.Sprintf("%g km at Rs.%g/km", chargeableKm, r.OutstationExtraKmRate),
			Kind:        KindBase,
		})
	case ModeOneWay:
		// No minimum-km floor: the driver does not return.
		if r.OutstationBaseRate > 0 {
			items = append(items, LineItem{
				Label:  "Base Fare",
				Amount: r.OutstationBaseRate,
				Kind:   KindBase,
			})
		}
		items = append(items, LineItem{
			Label:       "KM Charges",
			Amount:      p.EstimatedKm * r.OutstationExtraKmRate,
			Description: fmt.Sprintf("%g km at Rs.%g/km", p.EstimatedKm, r.OutstationExtraKmRate),
			Kind:        KindBase,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOutstation, p.Mode)
	}

	items = append(items, LineItem{
		Label:       "Driver Allowance",
		Amount:      days * r.OutstationDriverAllowance,
		Description: fmt.Sprintf("%d day(s)", p.Days),
		Kind:        KindAllowance,
	})
	if p.Mode == ModeRoundTrip && p.Nights > 0 {
		items = append(items, LineItem{
			Label:       "Night Allowance",
			Amount:      float64(p.Nights) * r.OutstationNightAllowance,
			Description: fmt.Sprintf("%d night(s)", p.Nights),
			Kind:        KindAllowance,
		})
	}
	if p.HillsTrip {
		items = append(items, LineItem{
			Label:       "Hills Allowance",
			Amount:      days * r.OutstationHillsAllowance,
			Description: "Hill station driving",
			Kind:        KindAllowance,
		})
	}
	return items, nil
}

// RuleSource supplies the rate tables and rental packages a quote needs.
type RuleSource interface {
	Rules(ctx context.Context) (map[VehicleClass]Rules, error)
	Packages(ctx context.Context) ([]Package, error)
}

type Service struct {
	source RuleSource
}

func NewService(source RuleSource) *Service {
	return &Service{source: source}
}

// Quote loads the current configuration and computes a fare for it. The
// loaded snapshot is passed explicitly into Compute; the engine never reads
// ambient configuration.
func (s *Service) Quote(ctx context.Context, tripType TripType, class VehicleClass, params TripParams) (Result, error) {
	rules, err := s.source.Rules(ctx)
	if err != nil {
		return Result{}, err
	}
	packages, err := s.source.Packages(ctx)
	if err != nil {
		return Result{}, err
	}
	return Compute(tripType, class, params, rules, packages)
}
