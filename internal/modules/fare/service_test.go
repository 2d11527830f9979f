package fare

import (
	"context"
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestCompute_Scenarios(t *testing.T) {
	rules := DefaultRules()
	packages := DefaultPackages()

	tests := []struct {
		name      string
		tripType  TripType
		class     VehicleClass
		params    TripParams
		wantItems []LineItem
		wantTotal float64
	}{
		{
			name:     "local sedan beyond base km",
			tripType: TripLocal,
			class:    ClassSedan,
			params:   TripParams{EstimatedKm: 12},
			// Base 200, extra (12-5)*20 = 140, GST round(340*0.05) = 17.
			wantItems: []LineItem{
				{Label: "Base Fare", Amount: 200},
				{Label: "Extra KM Charges", Amount: 140},
				{Label: "GST (5%)", Amount: 17},
			},
			wantTotal: 357,
		},
		{
			name:     "local sedan within base km with waiting",
			tripType: TripLocal,
			class:    ClassSedan,
			params:   TripParams{EstimatedKm: 4, WaitingMinutes: 30},
			// Base 200, waiting 30*2 = 60, GST round(260*0.05) = 13.
			wantItems: []LineItem{
				{Label: "Base Fare", Amount: 200},
				{Label: "Waiting Charges", Amount: 60},
				{Label: "GST (5%)", Amount: 13},
			},
			wantTotal: 273,
		},
		{
			name:     "outstation round trip floored at minimum km",
			tripType: TripOutstation,
			class:    ClassSUV,
			params:   TripParams{Mode: ModeRoundTrip, Days: 2, EstimatedKm: 400},
			// chargeable = max(400, 2*300) = 600; 600*17 = 10200; driver 2*500.
			wantItems: []LineItem{
				{Label: "KM Charges", Amount: 10200},
				{Label: "Driver Allowance", Amount: 1000},
				{Label: "GST (5%)", Amount: 560},
			},
			wantTotal: 11760,
		},
		{
			name:     "outstation round trip with nights and hills",
			tripType: TripOutstation,
			class:    ClassSedan,
			params:   TripParams{Mode: ModeRoundTrip, Days: 3, EstimatedKm: 900, Nights: 2, HillsTrip: true},
			// chargeable = max(900, 750) = 900; 900*13 = 11700; driver 1200;
			// nights 2*300 = 600; hills 3*300 = 900; GST round(14400*0.05) = 720.
			wantItems: []LineItem{
				{Label: "KM Charges", Amount: 11700},
				{Label: "Driver Allowance", Amount: 1200},
				{Label: "Night Allowance", Amount: 600},
				{Label: "Hills Allowance", Amount: 900},
				{Label: "GST (5%)", Amount: 720},
			},
			wantTotal: 15120,
		},
		{
			name:     "rental sedan package",
			tripType: TripRental,
			class:    ClassSedan,
			params:   TripParams{PackageID: "4hr40km"},
			// Package 1128, GST round(56.4) = 56.
			wantItems: []LineItem{
				{Label: "Package Rate", Amount: 1128},
				{Label: "GST (5%)", Amount: 56},
			},
			wantTotal: 1184,
		},
		{
			name:     "outstation one way has no km floor",
			tripType: TripOutstation,
			class:    ClassSedan,
			params:   TripParams{Mode: ModeOneWay, EstimatedKm: 150, Days: 1},
			// 150*13 = 1950 (base rate 0 emits no item); driver 400;
			// GST round(2350*0.05) = round(117.5) = 118, half away from zero.
			wantItems: []LineItem{
				{Label: "KM Charges", Amount: 1950},
				{Label: "Driver Allowance", Amount: 400},
				{Label: "GST (5%)", Amount: 118},
			},
			wantTotal: 2468,
		},
		{
			name:     "outstation one way with positive base rate",
			tripType: TripOutstation,
			class:    ClassMiniTruck,
			params:   TripParams{Mode: ModeOneWay, EstimatedKm: 100, Days: 1},
			// Base 100, 100*19 = 1900, driver 450, GST round(2450*0.05) = 123.
			wantItems: []LineItem{
				{Label: "Base Fare", Amount: 100},
				{Label: "KM Charges", Amount: 1900},
				{Label: "Driver Allowance", Amount: 450},
				{Label: "GST (5%)", Amount: 123},
			},
			wantTotal: 2573,
		},
		{
			name:      "general enquiry has no fare and no tax",
			tripType:  TripGeneral,
			class:     ClassSedan,
			params:    TripParams{Requirement: "need a school van quote"},
			wantItems: []LineItem{},
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Compute(tt.tripType, tt.class, tt.params, rules, packages)
			if err != nil {
				t.Fatalf("Compute() error = %v", err)
			}
			if got.Total != tt.wantTotal {
				t.Errorf("Total = %v, want %v", got.Total, tt.wantTotal)
			}
			if len(got.Items) != len(tt.wantItems) {
				t.Fatalf("got %d items, want %d: %+v", len(got.Items), len(tt.wantItems), got.Items)
			}
			for i, want := range tt.wantItems {
				if got.Items[i].Label != want.Label {
					t.Errorf("item %d label = %q, want %q", i, got.Items[i].Label, want.Label)
				}
				if got.Items[i].Amount != want.Amount {
					t.Errorf("item %d (%s) amount = %v, want %v", i, want.Label, got.Items[i].Amount, want.Amount)
				}
			}
		})
	}
}

func TestCompute_Errors(t *testing.T) {
	rules := DefaultRules()
	packages := DefaultPackages()

	t.Run("missing rules for class", func(t *testing.T) {
		_, err := Compute(TripLocal, VehicleClass("limo"), TripParams{EstimatedKm: 10}, rules, packages)
		if !errors.Is(err, ErrNoRules) {
			t.Errorf("err = %v, want ErrNoRules", err)
		}
	})

	t.Run("unknown rental package fails instead of pricing at zero", func(t *testing.T) {
		_, err := Compute(TripRental, ClassSedan, TripParams{PackageID: "24hr"}, rules, packages)
		if !errors.Is(err, ErrPackageNotFound) {
			t.Errorf("err = %v, want ErrPackageNotFound", err)
		}
	})

	t.Run("package without price for class", func(t *testing.T) {
		_, err := Compute(TripRental, ClassMiniTruck, TripParams{PackageID: "4hr40km"}, rules, packages)
		if !errors.Is(err, ErrNoPackagePrice) {
			t.Errorf("err = %v, want ErrNoPackagePrice", err)
		}
	})

	t.Run("negative rate is a configuration error", func(t *testing.T) {
		bad := map[VehicleClass]Rules{
			ClassSedan: {LocalBaseFare: -1},
		}
		_, err := Compute(TripLocal, ClassSedan, TripParams{}, bad, packages)
		if !errors.Is(err, ErrBadRate) {
			t.Errorf("err = %v, want ErrBadRate", err)
		}
	})

	t.Run("unknown trip type", func(t *testing.T) {
		_, err := Compute(TripType("shuttle"), ClassSedan, TripParams{}, rules, packages)
		if !errors.Is(err, ErrUnknownTripType) {
			t.Errorf("err = %v, want ErrUnknownTripType", err)
		}
	})

	t.Run("outstation without mode", func(t *testing.T) {
		_, err := Compute(TripOutstation, ClassSedan, TripParams{EstimatedKm: 100}, rules, packages)
		if !errors.Is(err, ErrUnknownOutstation) {
			t.Errorf("err = %v, want ErrUnknownOutstation", err)
		}
	})
}

// TestCompute_RoundTripFloor checks the per-day minimum across a spread of
// estimated distances, including zero.
func TestCompute_RoundTripFloor(t *testing.T) {
	rules := DefaultRules()
	r := rules[ClassSUV]

	for _, estKm := range []float64{0, 1, 299, 300, 301, 599, 600, 601, 2000} {
		for _, days := range []int{1, 2, 5} {
			res, err := Compute(TripOutstation, ClassSUV,
				TripParams{Mode: ModeRoundTrip, Days: days, EstimatedKm: estKm}, rules, nil)
			if err != nil {
				t.Fatalf("Compute(est=%v, days=%d): %v", estKm, days, err)
			}
			minKm := float64(days) * r.OutstationMinKmPerDay
			wantKm := math.Max(estKm, minKm)
			kmCharges := res.Items[0]
			if kmCharges.Label != "KM Charges" {
				t.Fatalf("first item = %q, want KM Charges", kmCharges.Label)
			}
			if kmCharges.Amount != wantKm*r.OutstationExtraKmRate {
				t.Errorf("est=%v days=%d: km charges = %v, want %v",
					estKm, days, kmCharges.Amount, wantKm*r.OutstationExtraKmRate)
			}
		}
	}
}

func TestCompute_OneWayNoFloor(t *testing.T) {
	rules := DefaultRules()
	r := rules[ClassSedan]

	for _, estKm := range []float64{0, 10, 100, 249, 250, 1000} {
		res, err := Compute(TripOutstation, ClassSedan,
			TripParams{Mode: ModeOneWay, Days: 1, EstimatedKm: estKm}, rules, nil)
		if err != nil {
			t.Fatalf("Compute(est=%v): %v", estKm, err)
		}
		if got := res.Items[0].Amount; got != estKm*r.OutstationExtraKmRate {
			t.Errorf("est=%v: km charges = %v, want %v", estKm, got, estKm*r.OutstationExtraKmRate)
		}
	}
}

// TestCompute_TaxLine verifies tax = round(subtotal * 0.05) and
// total = subtotal + tax for every subtotal > 0.
func TestCompute_TaxLine(t *testing.T) {
	rules := DefaultRules()
	packages := DefaultPackages()

	cases := []struct {
		tripType TripType
		class    VehicleClass
		params   TripParams
	}{
		{TripLocal, ClassSedan, TripParams{EstimatedKm: 12.7, WaitingMinutes: 13}},
		{TripLocal, ClassAuto, TripParams{EstimatedKm: 3.3}},
		{TripRental, ClassSUV, TripParams{PackageID: "8hr80km"}},
		{TripOutstation, ClassSedan, TripParams{Mode: ModeRoundTrip, Days: 1, EstimatedKm: 123.4}},
		{TripOutstation, ClassSUV, TripParams{Mode: ModeOneWay, Days: 1, EstimatedKm: 77.5}},
	}
	for _, tc := range cases {
		res, err := Compute(tc.tripType, tc.class, tc.params, rules, packages)
		if err != nil {
			t.Fatalf("Compute(%s/%s): %v", tc.tripType, tc.class, err)
		}
		last := res.Items[len(res.Items)-1]
		if last.Kind != KindTax {
			t.Fatalf("%s/%s: last item kind = %s, want tax", tc.tripType, tc.class, last.Kind)
		}
		subtotal := res.Subtotal()
		if want := math.Round(subtotal * 0.05); last.Amount != want {
			t.Errorf("%s/%s: tax = %v, want %v", tc.tripType, tc.class, last.Amount, want)
		}
		if res.Total != subtotal+last.Amount {
			t.Errorf("%s/%s: total = %v, want subtotal+tax = %v",
				tc.tripType, tc.class, res.Total, subtotal+last.Amount)
		}
	}
}

func TestCompute_Idempotent(t *testing.T) {
	rules := DefaultRules()
	params := TripParams{Mode: ModeRoundTrip, Days: 2, EstimatedKm: 412.5, Nights: 1, HillsTrip: true}

	first, err := Compute(TripOutstation, ClassSUV, params, rules, nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Compute(TripOutstation, ClassSUV, params, rules, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated Compute diverged:\n%+v\n%+v", first, second)
	}
}

func TestCompute_Normalization(t *testing.T) {
	rules := DefaultRules()
	r := rules[ClassSedan]

	// Negative distance clamps to zero: base fare only.
	res, err := Compute(TripLocal, ClassSedan, TripParams{EstimatedKm: -7, WaitingMinutes: -5}, rules, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Items) != 2 { // base + GST
		t.Errorf("negative inputs: got %d items, want 2: %+v", len(res.Items), res.Items)
	}

	// days <= 0 defaults to 1 via driver allowance.
	res, err = Compute(TripOutstation, ClassSedan, TripParams{Mode: ModeRoundTrip, Days: 0, EstimatedKm: 0}, rules, nil)
	if err != nil {
		t.Fatal(err)
	}
	var driver *LineItem
	for i := range res.Items {
		if res.Items[i].Label == "Driver Allowance" {
			driver = &res.Items[i]
		}
	}
	if driver == nil {
		t.Fatal("no Driver Allowance item")
	}
	if driver.Amount != r.OutstationDriverAllowance {
		t.Errorf("days=0: driver allowance = %v, want one day = %v", driver.Amount, r.OutstationDriverAllowance)
	}
}

func TestService_Quote(t *testing.T) {
	svc := NewService(NewMemSource(DefaultRules(), DefaultPackages()))

	res, err := svc.Quote(context.Background(), TripRental, ClassSedan, TripParams{PackageID: "4hr40km"})
	if err != nil {
		t.Fatalf("Quote() error = %v", err)
	}
	if res.Total != 1184 {
		t.Errorf("Total = %v, want 1184", res.Total)
	}

	if _, err := svc.Quote(context.Background(), TripRental, ClassSedan, TripParams{PackageID: "nope"}); !errors.Is(err, ErrPackageNotFound) {
		t.Errorf("err = %v, want ErrPackageNotFound", err)
	}
}
