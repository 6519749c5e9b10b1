package event

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"

	"tourbook/entity"
)

func (h Handler) NotifyOpsHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"NotifyOpsHandler",
		func(ctx context.Context, event *entity.CheckoutCompleted) error {
			branding := h.branding(ctx, event.TenantID)

			err := h.mailerService.SendOpsAlert(ctx, entity.OpsAlertEmail{
				To:            branding.OpsEmail,
				TenantID:      event.TenantID,
				Reference:     event.Reference,
				CustomerName:  event.CustomerName,
				CustomerEmail: event.CustomerEmail,
				PaymentMethod: event.PaymentMethod,
				Total:         event.Pricing.Total,
				Currency:      event.Pricing.Currency,
				ItemCount:     len(event.Items),
			})
			if err != nil {
				return fmt.Errorf("could not send ops alert: %w", err)
			}

			return nil
		},
	)
}
