// README: Outreach message renderer - formats a computed fare for customers.
package fare

import (
	"fmt"
	"strings"
)

// CustomerContext carries the enquiry fields the message template needs.
type CustomerContext struct {
	Name        string
	Pickup      string
	Drops       []string
	Destination string
}

var classNames = map[VehicleClass]string{
	ClassSedan:     "Sedan",
	ClassSUV:       "SUV",
	ClassAuto:      "Auto",
	ClassMiniTruck: "Mini Truck",
}

func displayClass(c VehicleClass) string {
	if n, ok := classNames[c]; ok {
		return n
	}
	return string(c)
}

// FormatAmount renders a rupee amount to the currency's minor unit. Amounts
// are formatted here, not rounded: the stored value keeps full precision.
func FormatAmount(v float64) string {
	return fmt.Sprintf("Rs.%.2f", v)
}

// RenderMessage fills the customer-facing summary for a computed fare. It
// only formats what Compute already produced - the itemization mirrors
// res.Items in order and amount, with no pricing logic of its own.
func RenderMessage(tripType TripType, class VehicleClass, params TripParams, res Result, cust CustomerContext) string {
	var b strings.Builder

	name := strings.TrimSpace(cust.Name)
	if name == "" {
		name = "Sir/Madam"
	}
	fmt.Fprintf(&b, "Dear %s,\n", name)

	if tripType == TripGeneral {
		b.WriteString("Thank you for contacting us. We have noted your requirement:\n")
		fmt.Fprintf(&b, "%q\n", strings.TrimSpace(params.Requirement))
		b.WriteString("Our team will get back to you shortly.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Thank you for your enquiry. Fare details for your %s with our %s:\n",
		tripLabel(tripType, params.Mode), displayClass(class))

	if route := routeLine(tripType, cust); route != "" {
		b.WriteString(route)
	}

	b.WriteString("\n")
	for _, it := range res.Items {
		fmt.Fprintf(&b, "  %s: %s\n", it.Label, FormatAmount(it.Amount))
	}
	fmt.Fprintf(&b, "\nTotal Fare: %s\n", FormatAmount(res.Total))
	b.WriteString("\nNote: Toll charges and parking are extra.\n")
	return b.String()
}

func tripLabel(tripType TripType, mode OutstationMode) string {
	switch tripType {
	case TripLocal:
		return "local trip"
	case TripRental:
		return "rental booking"
	case TripOutstation:
		if mode == ModeOneWay {
			return "outstation trip (one way)"
		}
		return "outstation trip (round trip)"
	}
	return string(tripType)
}

func routeLine(tripType TripType, cust CustomerContext) string {
	switch tripType {
	case TripLocal:
		if cust.Pickup == "" {
			return ""
		}
		route := cust.Pickup
		for _, d := range cust.Drops {
			route += " -> " + d
		}
		return fmt.Sprintf("Route: %s\n", route)
	case TripOutstation:
		if cust.Pickup == "" || cust.Destination == "" {
			return ""
		}
		return fmt.Sprintf("Route: %s -> %s\n", cust.Pickup, cust.Destination)
	case TripRental:
		if cust.Pickup == "" {
			return ""
		}
		return fmt.Sprintf("Pickup: %s\n", cust.Pickup)
	}
	return ""
}
