package tenants

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"tourbook/entity"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Store(ctx context.Context, tenant entity.Tenant) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO tenants (
			tenant_id, name, currency_symbol, contact_email, contact_phone,
			logo_url, primary_color, bank_name, bank_account_name, bank_account_number, ops_email
		) VALUES (
			:tenant_id, :name, :currency_symbol, :contact_email, :contact_phone,
			:logo_url, :primary_color, :bank_name, :bank_account_name, :bank_account_number, :ops_email
		)
		ON CONFLICT (tenant_id) DO NOTHING
		`, tenant)
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, tenantID string) (entity.Tenant, error) {
	var tenant entity.Tenant
	err := r.db.GetContext(ctx, &tenant, `
		SELECT tenant_id, name, currency_symbol, contact_email, contact_phone,
			logo_url, primary_color, bank_name, bank_account_name, bank_account_number, ops_email
		FROM tenants
		WHERE tenant_id = $1
		`, tenantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Tenant{}, entity.ErrNotFound
		}
		return entity.Tenant{}, fmt.Errorf("could not get tenant: %w", err)
	}

	return tenant, nil
}
