package checkout

import "math"

const (
	serviceFeeRate = 0.03
	taxRate        = 0.05
)

// AddOnSelection is an add-on chosen at checkout, with its price snapshot.
// Per-guest add-ons are charged once per paying guest (adults + children),
// per-booking add-ons once per line item.
type AddOnSelection struct {
	Label    string  `json:"label"`
	Price    float64 `json:"price"`
	PerGuest bool    `json:"per_guest"`
}

type Quote struct {
	Subtotal   float64
	ServiceFee float64
	Tax        float64
	Total      float64
}

// PriceItem computes the authoritative server-side price for one cart line
// item. Children pay half the unit price, infants are free. Any total the
// client submitted is ignored in favor of this result.
func PriceItem(basePrice float64, item CartItem) Quote {
	unitPrice := basePrice
	if item.BookingOptionPrice > 0 {
		unitPrice = item.BookingOptionPrice
	}

	subtotal := unitPrice * float64(item.Adults)
	subtotal += unitPrice / 2 * float64(item.Children)

	payingGuests := item.Adults + item.Children
	for _, addOn := range item.AddOns {
		quantity := 1
		if addOn.PerGuest {
			quantity = payingGuests
		}
		subtotal += addOn.Price * float64(quantity)
	}

	fee := subtotal * serviceFeeRate
	tax := subtotal * taxRate

	return Quote{
		Subtotal:   subtotal,
		ServiceFee: fee,
		Tax:        tax,
		Total:      subtotal + fee + tax,
	}
}

// MinorUnits converts an amount to the gateway's minor-unit convention.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
