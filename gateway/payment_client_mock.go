package gateway

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"tourbook/entity"
)

type PaymentMock struct {
	mock sync.Mutex

	// Intents holds the intents GetIntent can retrieve.
	Intents map[string]entity.PaymentIntent
	// CreatedIntents records every create-and-confirm call.
	CreatedIntents []entity.CreatePaymentIntentRequest
	// CreateStatus overrides the status of created intents ("succeeded" when empty).
	CreateStatus string
}

func (c *PaymentMock) GetIntent(ctx context.Context, intentID string) (entity.PaymentIntent, error) {
	c.mock.Lock()
	defer c.mock.Unlock()

	intent, ok := c.Intents[intentID]
	if !ok {
		return entity.PaymentIntent{}, fmt.Errorf("no such payment intent: %s", intentID)
	}

	return intent, nil
}

func (c *PaymentMock) CreateAndConfirmIntent(ctx context.Context, request entity.CreatePaymentIntentRequest) (entity.PaymentIntent, error) {
	c.mock.Lock()
	defer c.mock.Unlock()

	c.CreatedIntents = append(c.CreatedIntents, request)

	status := c.CreateStatus
	if status == "" {
		status = entity.PaymentIntentStatusSucceeded
	}

	return entity.PaymentIntent{
		ID:       "pi_" + uuid.NewString(),
		Status:   status,
		Amount:   request.Amount,
		Currency: request.Currency,
	}, nil
}
