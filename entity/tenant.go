package entity

type Tenant struct {
	TenantID       string `json:"tenant_id" db:"tenant_id"`
	Name           string `json:"name" db:"name"`
	CurrencySymbol string `json:"currency_symbol" db:"currency_symbol"`
	ContactEmail   string `json:"contact_email" db:"contact_email"`
	ContactPhone   string `json:"contact_phone" db:"contact_phone"`
	LogoURL        string `json:"logo_url" db:"logo_url"`
	PrimaryColor   string `json:"primary_color" db:"primary_color"`

	BankName          string `json:"bank_name" db:"bank_name"`
	BankAccountName   string `json:"bank_account_name" db:"bank_account_name"`
	BankAccountNumber string `json:"bank_account_number" db:"bank_account_number"`

	OpsEmail string `json:"ops_email" db:"ops_email"`
}

// Branding is the fully-populated bag of tenant presentation values used to
// parameterize notifications. Consumers never null-coalesce individual
// fields; ResolveBranding bakes the defaults in once.
type Branding struct {
	DisplayName    string
	CurrencySymbol string
	ContactEmail   string
	ContactPhone   string
	LogoURL        string
	PrimaryColor   string

	BankName          string
	BankAccountName   string
	BankAccountNumber string

	OpsEmail string
}

const (
	defaultDisplayName    = "TourBook"
	defaultCurrencySymbol = "$"
	defaultContactEmail   = "support@tourbook.example"
	defaultPrimaryColor   = "#1a73e8"
	defaultOpsEmail       = "bookings@tourbook.example"
)

func ResolveBranding(t Tenant) Branding {
	b := Branding{
		DisplayName:       t.Name,
		CurrencySymbol:    t.CurrencySymbol,
		ContactEmail:      t.ContactEmail,
		ContactPhone:      t.ContactPhone,
		LogoURL:           t.LogoURL,
		PrimaryColor:      t.PrimaryColor,
		BankName:          t.BankName,
		BankAccountName:   t.BankAccountName,
		BankAccountNumber: t.BankAccountNumber,
		OpsEmail:          t.OpsEmail,
	}

	if b.DisplayName == "" {
		b.DisplayName = defaultDisplayName
	}
	if b.CurrencySymbol == "" {
		b.CurrencySymbol = defaultCurrencySymbol
	}
	if b.ContactEmail == "" {
		b.ContactEmail = defaultContactEmail
	}
	if b.PrimaryColor == "" {
		b.PrimaryColor = defaultPrimaryColor
	}
	if b.OpsEmail == "" {
		b.OpsEmail = defaultOpsEmail
	}

	return b
}
