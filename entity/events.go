package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:          uuid.NewString(),
		PublishedAt: time.Now().UTC(),
	}
}

func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

// BookingPlaced is published transactionally (through the outbox) together
// with the booking row it describes.
type BookingPlaced struct {
	Header EventHeader `json:"header"`

	BookingID string        `json:"booking_id"`
	TenantID  string        `json:"tenant_id"`
	Reference string        `json:"reference"`
	TourID    string        `json:"tour_id"`
	TourTitle string        `json:"tour_title"`
	Status    BookingStatus `json:"status"`
	Total     float64       `json:"total"`
}

type PricingSummary struct {
	Subtotal   float64 `json:"subtotal"`
	ServiceFee float64 `json:"service_fee"`
	Tax        float64 `json:"tax"`
	Total      float64 `json:"total"`
	Currency   string  `json:"currency"`
}

type CheckoutItemSummary struct {
	TourID    string  `json:"tour_id"`
	TourTitle string  `json:"tour_title"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	Adults    int     `json:"adults"`
	Children  int     `json:"children"`
	Infants   int     `json:"infants"`
	Total     float64 `json:"total"`
}

// CheckoutCompleted drives the notification handlers. It carries everything
// the templated messages need so the handlers only have to resolve tenant
// branding on top.
type CheckoutCompleted struct {
	Header EventHeader `json:"header"`

	TenantID      string        `json:"tenant_id"`
	Reference     string        `json:"reference"`
	BookingIDs    []string      `json:"booking_ids"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	TransactionID string        `json:"transaction_id"`
	DiscountCode  string        `json:"discount_code,omitempty"`

	Pricing PricingSummary        `json:"pricing"`
	Items   []CheckoutItemSummary `json:"items"`
}
