package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourbook/entity"
	"tourbook/gateway"
)

type tenantsStub struct {
	tenants map[string]entity.Tenant
}

func (s *tenantsStub) Get(ctx context.Context, tenantID string) (entity.Tenant, error) {
	tenant, ok := s.tenants[tenantID]
	if !ok {
		return entity.Tenant{}, entity.ErrNotFound
	}
	return tenant, nil
}

func checkoutCompleted(method entity.PaymentMethod) *entity.CheckoutCompleted {
	return &entity.CheckoutCompleted{
		Header:        entity.NewEventHeader(),
		TenantID:      "tenant-1",
		Reference:     "SST-00000001-ABCDEF",
		BookingIDs:    []string{"b-1"},
		CustomerName:  "Jane Doe",
		CustomerEmail: "jane@example.com",
		PaymentMethod: method,
		TransactionID: "pi_123",
		Pricing:       entity.PricingSummary{Subtotal: 270, ServiceFee: 8.10, Tax: 13.50, Total: 291.60, Currency: "USD"},
		Items: []entity.CheckoutItemSummary{
			{TourID: "tour-city", TourTitle: "City Walk", Adults: 2, Children: 1, Total: 291.60},
		},
	}
}

func TestSendBankInstructionsHandler(t *testing.T) {
	ctx := context.Background()

	tenants := &tenantsStub{tenants: map[string]entity.Tenant{
		"tenant-1": {
			TenantID:          "tenant-1",
			Name:              "Sunny Side Tours",
			BankName:          "First Bank",
			BankAccountName:   "Sunny Side Tours Ltd",
			BankAccountNumber: "12-34-56",
		},
	}}

	t.Run("sends instructions for bank transfer", func(t *testing.T) {
		mailer := &gateway.MailerMock{}
		handler := NewHandler(mailer, tenants).SendBankInstructionsHandler()

		err := handler.Handle(ctx, checkoutCompleted(entity.PaymentMethodBank))
		require.NoError(t, err)

		require.Len(t, mailer.BankInstructions, 1)
		email := mailer.BankInstructions[0]
		assert.Equal(t, "jane@example.com", email.To)
		assert.Equal(t, "First Bank", email.BankName)
		assert.Equal(t, "12-34-56", email.BankAccountNumber)
		assert.Equal(t, "Sunny Side Tours", email.Branding.DisplayName)
	})

	t.Run("sends instructions for pay later", func(t *testing.T) {
		mailer := &gateway.MailerMock{}
		handler := NewHandler(mailer, tenants).SendBankInstructionsHandler()

		err := handler.Handle(ctx, checkoutCompleted(entity.PaymentMethodPayLater))
		require.NoError(t, err)

		assert.Len(t, mailer.BankInstructions, 1)
	})

	t.Run("skips card checkouts", func(t *testing.T) {
		mailer := &gateway.MailerMock{}
		handler := NewHandler(mailer, tenants).SendBankInstructionsHandler()

		err := handler.Handle(ctx, checkoutCompleted(entity.PaymentMethodCard))
		require.NoError(t, err)

		assert.Empty(t, mailer.BankInstructions)
	})

	t.Run("mailer failure is returned for redelivery", func(t *testing.T) {
		mailer := &gateway.MailerMock{Err: errors.New("mailer down")}
		handler := NewHandler(mailer, tenants).SendBankInstructionsHandler()

		err := handler.Handle(ctx, checkoutCompleted(entity.PaymentMethodBank))
		assert.Error(t, err)
	})
}

func TestSendBookingConfirmationHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("sends the confirmation with tenant branding", func(t *testing.T) {
		mailer := &gateway.MailerMock{}
		tenants := &tenantsStub{tenants: map[string]entity.Tenant{
			"tenant-1": {TenantID: "tenant-1", Name: "Sunny Side Tours", CurrencySymbol: "€"},
		}}
		handler := NewHandler(mailer, tenants).SendBookingConfirmationHandler()

		err := handler.Handle(ctx, checkoutCompleted(entity.PaymentMethodCard))
		require.NoError(t, err)

		require.Len(t, mailer.BookingConfirmations, 1)
		email := mailer.BookingConfirmations[0]
		assert.Equal(t, "jane@example.com", email.To)
		assert.Equal(t, "SST-00000001-ABCDEF", email.Reference)
		assert.Equal(t, "€", email.Branding.CurrencySymbol)
		require.Len(t, email.Items, 1)
		assert.Equal(t, "City Walk", email.Items[0].TourTitle)
	})

	t.Run("falls back to default branding for an unknown tenant", func(t *testing.T) {
		mailer := &gateway.MailerMock{}
		handler := NewHandler(mailer, &tenantsStub{}).SendBookingConfirmationHandler()

		err := handler.Handle(ctx, checkoutCompleted(entity.PaymentMethodCard))
		require.NoError(t, err)

		require.Len(t, mailer.BookingConfirmations, 1)
		assert.Equal(t, "TourBook", mailer.BookingConfirmations[0].Branding.DisplayName)
		assert.Equal(t, "$", mailer.BookingConfirmations[0].Branding.CurrencySymbol)
	})
}

func TestNotifyOpsHandler(t *testing.T) {
	ctx := context.Background()

	t.Run("alerts the tenant ops address", func(t *testing.T) {
		mailer := &gateway.MailerMock{}
		tenants := &tenantsStub{tenants: map[string]entity.Tenant{
			"tenant-1": {TenantID: "tenant-1", OpsEmail: "ops@sunnyside.example"},
		}}
		handler := NewHandler(mailer, tenants).NotifyOpsHandler()

		err := handler.Handle(ctx, checkoutCompleted(entity.PaymentMethodBank))
		require.NoError(t, err)

		require.Len(t, mailer.OpsAlerts, 1)
		alert := mailer.OpsAlerts[0]
		assert.Equal(t, "ops@sunnyside.example", alert.To)
		assert.Equal(t, entity.PaymentMethodBank, alert.PaymentMethod)
		assert.InDelta(t, 291.60, alert.Total, 0.001)
		assert.Equal(t, 1, alert.ItemCount)
	})

	t.Run("falls back to the default ops address", func(t *testing.T) {
		mailer := &gateway.MailerMock{}
		handler := NewHandler(mailer, &tenantsStub{}).NotifyOpsHandler()

		err := handler.Handle(ctx, checkoutCompleted(entity.PaymentMethodCard))
		require.NoError(t, err)

		require.Len(t, mailer.OpsAlerts, 1)
		assert.Equal(t, "bookings@tourbook.example", mailer.OpsAlerts[0].To)
	})
}
