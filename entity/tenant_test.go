package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveBranding(t *testing.T) {
	t.Run("empty tenant gets full defaults", func(t *testing.T) {
		branding := ResolveBranding(Tenant{})

		assert.Equal(t, "TourBook", branding.DisplayName)
		assert.Equal(t, "$", branding.CurrencySymbol)
		assert.Equal(t, "support@tourbook.example", branding.ContactEmail)
		assert.Equal(t, "#1a73e8", branding.PrimaryColor)
		assert.Equal(t, "bookings@tourbook.example", branding.OpsEmail)
	})

	t.Run("tenant values win over defaults", func(t *testing.T) {
		branding := ResolveBranding(Tenant{
			Name:           "Sunny Side Tours",
			CurrencySymbol: "€",
			OpsEmail:       "ops@sunnyside.example",
		})

		assert.Equal(t, "Sunny Side Tours", branding.DisplayName)
		assert.Equal(t, "€", branding.CurrencySymbol)
		assert.Equal(t, "ops@sunnyside.example", branding.OpsEmail)
		// unset fields still fall back
		assert.Equal(t, "support@tourbook.example", branding.ContactEmail)
	})

	t.Run("bank details have no defaults", func(t *testing.T) {
		branding := ResolveBranding(Tenant{})

		assert.Empty(t, branding.BankName)
		assert.Empty(t, branding.BankAccountNumber)
	})
}
