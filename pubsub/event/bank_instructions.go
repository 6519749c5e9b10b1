package event

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"tourbook/entity"
)

// SendBankInstructionsHandler emails payment instructions for deferred
// methods. Card checkouts deliberately get no dedicated payment email; the
// booking confirmation already covers them.
func (h Handler) SendBankInstructionsHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"SendBankInstructionsHandler",
		func(ctx context.Context, event *entity.CheckoutCompleted) error {
			if !event.PaymentMethod.IsDeferred() {
				return nil
			}

			log.FromContext(ctx).
				WithField("reference", event.Reference).
				Info("Sending payment instructions")

			branding := h.branding(ctx, event.TenantID)

			err := h.mailerService.SendBankInstructions(ctx, entity.BankInstructionsEmail{
				To:                event.CustomerEmail,
				CustomerName:      event.CustomerName,
				Reference:         event.Reference,
				PaymentMethod:     event.PaymentMethod,
				Pricing:           event.Pricing,
				BankName:          branding.BankName,
				BankAccountName:   branding.BankAccountName,
				BankAccountNumber: branding.BankAccountNumber,
				Branding:          branding,
			})
			if err != nil {
				return fmt.Errorf("could not send payment instructions: %w", err)
			}

			return nil
		},
	)
}
