// README: Seed rate tables and rental packages used when no configuration
// has been saved yet.
package fare

// DefaultRules returns the starter rate table installed on first boot.
// Administrators edit these through the pricing endpoints; the engine itself
// never falls back to them.
func DefaultRules() map[VehicleClass]Rules {
	return map[VehicleClass]Rules{
		ClassSedan: {
			LocalBaseFare:             200,
			LocalBaseKm:               5,
			LocalPerKmRate:            20,
			LocalWaitingRate:          2,
			RentalExtraKmRate:         14,
			RentalExtraHrRate:         120,
			OutstationMinKmPerDay:     250,
			OutstationBaseRate:        0,
			OutstationExtraKmRate:     13,
			OutstationDriverAllowance: 400,
			OutstationNightAllowance:  300,
			OutstationHillsAllowance:  300,
		},
		ClassSUV: {
			LocalBaseFare:             300,
			LocalBaseKm:               5,
			LocalPerKmRate:            28,
			LocalWaitingRate:          3,
			RentalExtraKmRate:         18,
			RentalExtraHrRate:         150,
			OutstationMinKmPerDay:     300,
			OutstationBaseRate:        0,
			OutstationExtraKmRate:     17,
			OutstationDriverAllowance: 500,
			OutstationNightAllowance:  400,
			OutstationHillsAllowance:  400,
		},
		ClassAuto: {
			LocalBaseFare:             50,
			LocalBaseKm:               1.5,
			LocalPerKmRate:            15,
			LocalWaitingRate:          1,
			RentalExtraKmRate:         10,
			RentalExtraHrRate:         80,
			OutstationMinKmPerDay:     150,
			OutstationBaseRate:        0,
			OutstationExtraKmRate:     9,
			OutstationDriverAllowance: 250,
			OutstationNightAllowance:  200,
			OutstationHillsAllowance:  200,
		},
		ClassMiniTruck: {
			LocalBaseFare:             350,
			LocalBaseKm:               4,
			LocalPerKmRate:            30,
			LocalWaitingRate:          3,
			RentalExtraKmRate:         20,
			RentalExtraHrRate:         160,
			OutstationMinKmPerDay:     250,
			OutstationBaseRate:        100,
			OutstationExtraKmRate:     19,
			OutstationDriverAllowance: 450,
			OutstationNightAllowance:  350,
			OutstationHillsAllowance:  350,
		},
	}
}

// DefaultPackages returns the starter rental bundles.
func DefaultPackages() []Package {
	return []Package{
		{
			ID: "4hr40km", Name: "4 Hr / 40 Km", Hours: 4, Km: 40,
			Prices: map[VehicleClass]float64{
				ClassSedan: 1128, ClassSUV: 1500, ClassAuto: 700,
			},
		},
		{
			ID: "8hr80km", Name: "8 Hr / 80 Km", Hours: 8, Km: 80,
			Prices: map[VehicleClass]float64{
				ClassSedan: 2100, ClassSUV: 2800, ClassAuto: 1300,
			},
		},
		{
			ID: "12hr120km", Name: "12 Hr / 120 Km", Hours: 12, Km: 120,
			Prices: map[VehicleClass]float64{
				ClassSedan: 3000, ClassSUV: 4000, ClassAuto: 1900,
			},
		},
	}
}
