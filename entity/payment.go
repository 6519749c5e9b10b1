package entity

const PaymentIntentStatusSucceeded = "succeeded"

// PaymentIntent is the gateway's view of a payment: the amount is in the
// gateway's minor-unit convention (cents).
type PaymentIntent struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

type CreatePaymentIntentRequest struct {
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// PaymentResult is the resolved outcome of the payment step. It is never
// persisted on its own; bookings carry the transaction id.
type PaymentResult struct {
	TransactionID string
	Status        string
	Amount        float64
	Currency      string
}

type Discount struct {
	Code       string `json:"code" db:"code"`
	TenantID   string `json:"tenant_id" db:"tenant_id"`
	UsageCount int    `json:"usage_count" db:"usage_count"`
}
