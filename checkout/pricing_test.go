package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPriceItem(t *testing.T) {
	t.Run("adults, child and per-booking add-on", func(t *testing.T) {
		quote := PriceItem(100, CartItem{
			Adults:   2,
			Children: 1,
			AddOns: map[string]AddOnSelection{
				"photos": {Label: "Photo package", Price: 20, PerGuest: false},
			},
		})

		assert.InDelta(t, 270.00, quote.Subtotal, 0.001)
		assert.InDelta(t, 8.10, quote.ServiceFee, 0.001)
		assert.InDelta(t, 13.50, quote.Tax, 0.001)
		assert.InDelta(t, 291.60, quote.Total, 0.001)
	})

	t.Run("per-guest add-on counts paying guests only", func(t *testing.T) {
		quote := PriceItem(50, CartItem{
			Adults:   2,
			Children: 1,
			Infants:  2,
			AddOns: map[string]AddOnSelection{
				"lunch": {Label: "Lunch", Price: 10, PerGuest: true},
			},
		})

		// 2*50 + 25 + 3*10, infants never pay
		assert.InDelta(t, 155.00, quote.Subtotal, 0.001)
	})

	t.Run("booking option price replaces the base price", func(t *testing.T) {
		quote := PriceItem(100, CartItem{
			Adults:             1,
			BookingOption:      "Private",
			BookingOptionPrice: 180,
		})

		assert.InDelta(t, 180.00, quote.Subtotal, 0.001)
	})

	t.Run("children pay half", func(t *testing.T) {
		quote := PriceItem(80, CartItem{Children: 2})

		assert.InDelta(t, 80.00, quote.Subtotal, 0.001)
	})

	t.Run("infants are free", func(t *testing.T) {
		quote := PriceItem(80, CartItem{Adults: 1, Infants: 3})

		assert.InDelta(t, 80.00, quote.Subtotal, 0.001)
	})
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(29160), MinorUnits(291.60))
	assert.Equal(t, int64(1999), MinorUnits(19.99))
	assert.Equal(t, int64(0), MinorUnits(0))

	// 1.15 is not representable exactly in binary, rounding must still land on 115
	assert.Equal(t, int64(115), MinorUnits(1.15))
}
