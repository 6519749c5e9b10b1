package event

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/prometheus/client_golang/prometheus"

	"tourbook/entity"
	"tourbook/metrics"
)

func (h Handler) CountBookingHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"CountBookingHandler",
		func(ctx context.Context, event *entity.BookingPlaced) error {
			metrics.BookingsCreated.With(prometheus.Labels{
				"tenant": event.TenantID,
				"status": string(event.Status),
			}).Inc()
			return nil
		},
	)
}
