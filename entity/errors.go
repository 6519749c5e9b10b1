package entity

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
	ErrValidation = errors.New("validation failed")
)

// PaymentError covers gateway declines, unconfirmed intents and amount
// mismatches. It aborts checkout before any booking is written and is mapped
// to a payment-specific HTTP status so clients can offer a different method.
type PaymentError struct {
	Reason string
}

func (e PaymentError) Error() string {
	return fmt.Sprintf("payment failed: %s", e.Reason)
}

// TourNotFoundError identifies which cart line item pointed at a tour that no
// longer exists.
type TourNotFoundError struct {
	TourID string
}

func (e TourNotFoundError) Error() string {
	return fmt.Sprintf("tour %s not found", e.TourID)
}

func (e TourNotFoundError) Unwrap() error {
	return ErrNotFound
}
