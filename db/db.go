package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS tenants (
	tenant_id VARCHAR(36) PRIMARY KEY,
	name VARCHAR(255) NOT NULL DEFAULT '',
	currency_symbol VARCHAR(8) NOT NULL DEFAULT '',
	contact_email VARCHAR(255) NOT NULL DEFAULT '',
	contact_phone VARCHAR(64) NOT NULL DEFAULT '',
	logo_url TEXT NOT NULL DEFAULT '',
	primary_color VARCHAR(16) NOT NULL DEFAULT '',
	bank_name VARCHAR(255) NOT NULL DEFAULT '',
	bank_account_name VARCHAR(255) NOT NULL DEFAULT '',
	bank_account_number VARCHAR(64) NOT NULL DEFAULT '',
	ops_email VARCHAR(255) NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS tours (
	tour_id VARCHAR(36) PRIMARY KEY,
	tenant_id VARCHAR(36) NOT NULL,
	title VARCHAR(255) NOT NULL,
	base_price DECIMAL(12, 2) NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS users (
	user_id VARCHAR(36) PRIMARY KEY,
	tenant_id VARCHAR(36) NOT NULL,
	name VARCHAR(255) NOT NULL DEFAULT '',
	email VARCHAR(255) NOT NULL,
	password_hash VARCHAR(255) NOT NULL DEFAULT '',
	guest BOOLEAN NOT NULL DEFAULT false,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (tenant_id, email)
);

CREATE TABLE IF NOT EXISTS bookings (
	booking_id VARCHAR(36) PRIMARY KEY,
	tenant_id VARCHAR(36) NOT NULL,
	reference VARCHAR(64) NOT NULL,
	tour_id VARCHAR(36) NOT NULL,
	user_id VARCHAR(36) NOT NULL,
	activity_date TIMESTAMPTZ NOT NULL,
	activity_date_raw VARCHAR(64) NOT NULL DEFAULT '',
	activity_time VARCHAR(32) NOT NULL DEFAULT '',
	adults INT NOT NULL DEFAULT 0,
	children INT NOT NULL DEFAULT 0,
	infants INT NOT NULL DEFAULT 0,
	total DECIMAL(12, 2) NOT NULL,
	status VARCHAR(32) NOT NULL,
	payment_method VARCHAR(16) NOT NULL,
	transaction_id VARCHAR(128) NOT NULL DEFAULT '',
	special_requests TEXT NOT NULL DEFAULT '',
	booking_option VARCHAR(255) NOT NULL DEFAULT '',
	booking_option_price DECIMAL(12, 2) NOT NULL DEFAULT 0,
	add_ons JSONB NOT NULL DEFAULT '{}',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (tenant_id, reference)
);

CREATE INDEX IF NOT EXISTS bookings_transaction_idx ON bookings (tenant_id, transaction_id);

-- One row per (tenant, transaction): closes the duplicate-submission race at
-- the store level instead of relying on the application-level existence check.
CREATE TABLE IF NOT EXISTS checkout_keys (
	tenant_id VARCHAR(36) NOT NULL,
	transaction_id VARCHAR(128) NOT NULL,
	claimed_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (tenant_id, transaction_id)
);

CREATE TABLE IF NOT EXISTS discounts (
	code VARCHAR(64) NOT NULL,
	tenant_id VARCHAR(36) NOT NULL,
	usage_count INT NOT NULL DEFAULT 0,
	PRIMARY KEY (tenant_id, code)
);
`

func InitializeDatabaseSchema(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("could not initialize database schema: %w", err)
	}
	return nil
}
