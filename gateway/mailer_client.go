package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"tourbook/entity"
)

// MailerClient submits templated messages to the mail service. The templates
// live on the mailer side; we only pass the parameter bags.
type MailerClient struct {
	baseURL string
	client  *http.Client
}

func NewMailerClient(baseURL string, client *http.Client) MailerClient {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return MailerClient{
		baseURL: baseURL,
		client:  client,
	}
}

func (c MailerClient) SendBankInstructions(ctx context.Context, email entity.BankInstructionsEmail) error {
	return c.send(ctx, "payment-instructions", email)
}

func (c MailerClient) SendBookingConfirmation(ctx context.Context, email entity.BookingConfirmationEmail) error {
	return c.send(ctx, "booking-confirmation", email)
}

func (c MailerClient) SendOpsAlert(ctx context.Context, email entity.OpsAlertEmail) error {
	return c.send(ctx, "ops-alert", email)
}

func (c MailerClient) send(ctx context.Context, template string, params any) error {
	body, err := json.Marshal(struct {
		Template string `json:"template"`
		Params   any    `json:"params"`
	}{
		Template: template,
		Params:   params,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusAccepted {
		return fmt.Errorf("unexpected status code while sending %s message: %d", template, resp.StatusCode)
	}

	return nil
}
