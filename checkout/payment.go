package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v3"
	"github.com/samber/lo"

	"tourbook/entity"
)

type PaymentGateway interface {
	GetIntent(ctx context.Context, intentID string) (entity.PaymentIntent, error)
	CreateAndConfirmIntent(ctx context.Context, request entity.CreatePaymentIntentRequest) (entity.PaymentIntent, error)
}

// PaymentResolver turns the requested payment method into a transaction.
// Bank transfer and pay-later move no funds; they only synthesize a pending
// reference. Card payments are verified (or created) against the gateway.
type PaymentResolver struct {
	gateway PaymentGateway
}

func NewPaymentResolver(gateway PaymentGateway) PaymentResolver {
	if gateway == nil {
		panic("missing payment gateway")
	}
	return PaymentResolver{gateway: gateway}
}

func (r PaymentResolver) Resolve(ctx context.Context, req Request, total float64, currency string) (entity.PaymentResult, error) {
	switch req.PaymentMethod {
	case entity.PaymentMethodBank:
		return synthesizedResult("BANK", total, currency), nil
	case entity.PaymentMethodPayLater:
		return synthesizedResult("PAYLATER", total, currency), nil
	case entity.PaymentMethodCard:
		if req.PaymentIntentID != "" {
			return r.resolveIntent(ctx, req.PaymentIntentID, total, currency)
		}
		return r.createAndConfirm(ctx, req, total, currency)
	default:
		return entity.PaymentResult{}, fmt.Errorf("%w: unsupported payment method %q", entity.ErrValidation, req.PaymentMethod)
	}
}

// resolveIntent validates a pre-authorized intent. The captured amount must
// match the server-recomputed total in minor units, which guards against
// client-side tampering between intent creation and confirmation.
func (r PaymentResolver) resolveIntent(ctx context.Context, intentID string, total float64, currency string) (entity.PaymentResult, error) {
	intent, err := r.gateway.GetIntent(ctx, intentID)
	if err != nil {
		return entity.PaymentResult{}, entity.PaymentError{Reason: fmt.Sprintf("could not retrieve payment intent: %v", err)}
	}

	if intent.Status != entity.PaymentIntentStatusSucceeded {
		return entity.PaymentResult{}, entity.PaymentError{Reason: fmt.Sprintf("payment intent %s has status %q", intentID, intent.Status)}
	}

	if expected := MinorUnits(total); intent.Amount != expected {
		return entity.PaymentResult{}, entity.PaymentError{
			Reason: fmt.Sprintf("captured amount %d does not match expected amount %d", intent.Amount, expected),
		}
	}

	return entity.PaymentResult{
		TransactionID: intent.ID,
		Status:        intent.Status,
		Amount:        total,
		Currency:      currency,
	}, nil
}

// createAndConfirm is the legacy path for clients that never pre-created an
// intent: charge the full amount in one shot.
func (r PaymentResolver) createAndConfirm(ctx context.Context, req Request, total float64, currency string) (entity.PaymentResult, error) {
	tourTitles := lo.Map(req.Items, func(item CartItem, _ int) string {
		if item.TourTitle != "" {
			return item.TourTitle
		}
		return item.TourID
	})

	intent, err := r.gateway.CreateAndConfirmIntent(ctx, entity.CreatePaymentIntentRequest{
		Amount:      MinorUnits(total),
		Currency:    currency,
		Description: fmt.Sprintf("Booking for %s", req.Customer.Email),
		Metadata: map[string]string{
			"customer_email": req.Customer.Email,
			"customer_name":  req.Customer.Name,
			"tours":          strings.Join(tourTitles, ", "),
			"discount_code":  req.DiscountCode,
		},
	})
	if err != nil {
		return entity.PaymentResult{}, entity.PaymentError{Reason: fmt.Sprintf("could not confirm payment: %v", err)}
	}

	if intent.Status != entity.PaymentIntentStatusSucceeded {
		return entity.PaymentResult{}, entity.PaymentError{Reason: fmt.Sprintf("payment intent %s has status %q", intent.ID, intent.Status)}
	}

	return entity.PaymentResult{
		TransactionID: intent.ID,
		Status:        intent.Status,
		Amount:        total,
		Currency:      currency,
	}, nil
}

func synthesizedResult(prefix string, total float64, currency string) entity.PaymentResult {
	return entity.PaymentResult{
		TransactionID: fmt.Sprintf("%s-%d-%s", prefix, time.Now().Unix(), strings.ToUpper(shortuuid.New())[:8]),
		Status:        "pending",
		Amount:        total,
		Currency:      currency,
	}
}
