package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tourbook/entity"
)

// PaymentClient talks to the payment gateway's intents API.
type PaymentClient struct {
	baseURL string
	client  *http.Client
}

func NewPaymentClient(baseURL string, client *http.Client) PaymentClient {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return PaymentClient{
		baseURL: baseURL,
		client:  client,
	}
}

func (c PaymentClient) GetIntent(ctx context.Context, intentID string) (entity.PaymentIntent, error) {
	endpoint := fmt.Sprintf("%s/v1/payment-intents/%s", c.baseURL, url.PathEscape(intentID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return entity.PaymentIntent{}, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return entity.PaymentIntent{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return entity.PaymentIntent{}, fmt.Errorf("unexpected status code while retrieving payment intent: %d", resp.StatusCode)
	}

	var intent entity.PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return entity.PaymentIntent{}, fmt.Errorf("could not decode payment intent: %w", err)
	}

	return intent, nil
}

func (c PaymentClient) CreateAndConfirmIntent(ctx context.Context, request entity.CreatePaymentIntentRequest) (entity.PaymentIntent, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return entity.PaymentIntent{}, err
	}

	endpoint := c.baseURL + "/v1/payment-intents?confirm=true"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return entity.PaymentIntent{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return entity.PaymentIntent{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return entity.PaymentIntent{}, fmt.Errorf("unexpected status code while confirming payment intent: %d", resp.StatusCode)
	}

	var intent entity.PaymentIntent
	if err := json.NewDecoder(resp.Body).Decode(&intent); err != nil {
		return entity.PaymentIntent{}, fmt.Errorf("could not decode payment intent: %w", err)
	}

	return intent, nil
}
