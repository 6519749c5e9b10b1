package entity

// Flat parameter bags for the three templated messages. The mailer renders
// the templates; this service only supplies values.

type BankInstructionsEmail struct {
	To            string         `json:"to"`
	CustomerName  string         `json:"customer_name"`
	Reference     string         `json:"reference"`
	PaymentMethod PaymentMethod  `json:"payment_method"`
	Pricing       PricingSummary `json:"pricing"`

	BankName          string `json:"bank_name"`
	BankAccountName   string `json:"bank_account_name"`
	BankAccountNumber string `json:"bank_account_number"`

	Branding Branding `json:"branding"`
}

type BookingConfirmationEmail struct {
	To           string                `json:"to"`
	CustomerName string                `json:"customer_name"`
	Reference    string                `json:"reference"`
	Items        []CheckoutItemSummary `json:"items"`
	Pricing      PricingSummary        `json:"pricing"`

	Branding Branding `json:"branding"`
}

type OpsAlertEmail struct {
	To            string        `json:"to"`
	TenantID      string        `json:"tenant_id"`
	Reference     string        `json:"reference"`
	CustomerName  string        `json:"customer_name"`
	CustomerEmail string        `json:"customer_email"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Total         float64       `json:"total"`
	Currency      string        `json:"currency"`
	ItemCount     int           `json:"item_count"`
}
