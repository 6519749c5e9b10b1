package discounts

import (
	"context"
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

// IncrementUsage bumps the usage counter for a code, creating the row on
// first use. Callers treat failures as best-effort.
func (r *PostgresRepository) IncrementUsage(ctx context.Context, tenantID, code string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO discounts (tenant_id, code, usage_count)
		VALUES ($1, $2, 1)
		ON CONFLICT (tenant_id, code) DO UPDATE
		SET usage_count = discounts.usage_count + 1
		`, tenantID, code)
	if err != nil {
		return fmt.Errorf("could not increment discount usage: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, tenantID, code string) (entity.Discount, error) {
	var discount entity.Discount
	err := r.db.GetContext(ctx, &discount, `
		SELECT code, tenant_id, usage_count
		FROM discounts
		WHERE tenant_id = $1 AND code = $2
		`, tenantID, code)
	if err != nil {
		return entity.Discount{}, fmt.Errorf("could not get discount: %w", err)
	}

	return discount, nil
}
