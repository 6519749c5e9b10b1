package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending         BookingStatus = "Pending"
	BookingStatusConfirmed       BookingStatus = "Confirmed"
	BookingStatusCompleted       BookingStatus = "Completed"
	BookingStatusCancelled       BookingStatus = "Cancelled"
	BookingStatusRefunded        BookingStatus = "Refunded"
	BookingStatusPartialRefunded BookingStatus = "Partial Refunded"
)

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending,
		BookingStatusConfirmed,
		BookingStatusCompleted,
		BookingStatusCancelled,
		BookingStatusRefunded,
		BookingStatusPartialRefunded:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodBank     PaymentMethod = "bank"
	PaymentMethodPayLater PaymentMethod = "pay_later"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCard, PaymentMethodBank, PaymentMethodPayLater:
		return true
	}
	return false
}

// Deferred methods collect no funds at checkout time, so their bookings
// start out Pending instead of Confirmed.
func (m PaymentMethod) IsDeferred() bool {
	return m == PaymentMethodBank || m == PaymentMethodPayLater
}

type Booking struct {
	BookingID string `json:"booking_id" db:"booking_id"`
	TenantID  string `json:"tenant_id" db:"tenant_id"`
	Reference string `json:"reference" db:"reference"`
	TourID    string `json:"tour_id" db:"tour_id"`
	UserID    string `json:"user_id" db:"user_id"`

	ActivityDate time.Time `json:"activity_date" db:"activity_date"`
	// Raw date string as the customer submitted it. Displayed as-is so the
	// rendered date never drifts across timezones.
	ActivityDateRaw string `json:"activity_date_raw" db:"activity_date_raw"`
	ActivityTime    string `json:"activity_time" db:"activity_time"`

	Adults   int `json:"adults" db:"adults"`
	Children int `json:"children" db:"children"`
	Infants  int `json:"infants" db:"infants"`

	Total  float64       `json:"total" db:"total"`
	Status BookingStatus `json:"status" db:"status"`

	PaymentMethod PaymentMethod `json:"payment_method" db:"payment_method"`
	TransactionID string        `json:"transaction_id" db:"transaction_id"`

	SpecialRequests string `json:"special_requests" db:"special_requests"`

	// Selected pricing tier, captured by name and price at booking time.
	BookingOption      string  `json:"booking_option" db:"booking_option"`
	BookingOptionPrice float64 `json:"booking_option_price" db:"booking_option_price"`

	AddOns AddOnSnapshots `json:"add_ons" db:"add_ons"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AddOnSnapshot captures the label and price of a selected add-on at the
// moment of booking, so later catalog edits don't rewrite history.
type AddOnSnapshot struct {
	Label    string  `json:"label"`
	Price    float64 `json:"price"`
	PerGuest bool    `json:"per_guest"`
}

type AddOnSnapshots map[string]AddOnSnapshot

func (a AddOnSnapshots) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

func (a *AddOnSnapshots) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	case nil:
		*a = nil
		return nil
	default:
		return fmt.Errorf("could not scan add-ons from %T", src)
	}
}
