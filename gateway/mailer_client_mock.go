package gateway

import (
	"context"
	"sync"

	"tourbook/entity"
)

type MailerMock struct {
	mock sync.Mutex

	// Err, when set, is returned by every send.
	Err error

	BankInstructions     []entity.BankInstructionsEmail
	BookingConfirmations []entity.BookingConfirmationEmail
	OpsAlerts            []entity.OpsAlertEmail
}

func (c *MailerMock) SendBankInstructions(ctx context.Context, email entity.BankInstructionsEmail) error {
	c.mock.Lock()
	defer c.mock.Unlock()

	if c.Err != nil {
		return c.Err
	}

	c.BankInstructions = append(c.BankInstructions, email)
	return nil
}

func (c *MailerMock) SendBookingConfirmation(ctx context.Context, email entity.BookingConfirmationEmail) error {
	c.mock.Lock()
	defer c.mock.Unlock()

	if c.Err != nil {
		return c.Err
	}

	c.BookingConfirmations = append(c.BookingConfirmations, email)
	return nil
}

func (c *MailerMock) SendOpsAlert(ctx context.Context, email entity.OpsAlertEmail) error {
	c.mock.Lock()
	defer c.mock.Unlock()

	if c.Err != nil {
		return c.Err
	}

	c.OpsAlerts = append(c.OpsAlerts, email)
	return nil
}
