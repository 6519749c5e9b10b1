package event

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"tourbook/entity"
)

func (h Handler) SendBookingConfirmationHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"SendBookingConfirmationHandler",
		func(ctx context.Context, event *entity.CheckoutCompleted) error {
			log.FromContext(ctx).
				WithField("reference", event.Reference).
				Info("Sending booking confirmation")

			err := h.mailerService.SendBookingConfirmation(ctx, entity.BookingConfirmationEmail{
				To:           event.CustomerEmail,
				CustomerName: event.CustomerName,
				Reference:    event.Reference,
				Items:        event.Items,
				Pricing:      event.Pricing,
				Branding:     h.branding(ctx, event.TenantID),
			})
			if err != nil {
				return fmt.Errorf("could not send booking confirmation: %w", err)
			}

			return nil
		},
	)
}
