package tours

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

func (r *PostgresRepository) Store(ctx context.Context, tour entity.Tour) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO tours (tour_id, tenant_id, title, base_price, created_at)
		VALUES (:tour_id, :tenant_id, :title, :base_price, :created_at)
		ON CONFLICT (tour_id) DO UPDATE
		SET title = EXCLUDED.title, base_price = EXCLUDED.base_price
		`, tour)
	return err
}

func (r *PostgresRepository) Get(ctx context.Context, tenantID, tourID string) (entity.Tour, error) {
	var tour entity.Tour
	err := r.db.GetContext(ctx, &tour, `
		SELECT tour_id, tenant_id, title, base_price, created_at
		FROM tours
		WHERE tenant_id = $1 AND tour_id = $2
		`, tenantID, tourID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Tour{}, entity.ErrNotFound
		}
		return entity.Tour{}, fmt.Errorf("could not get tour: %w", err)
	}

	return tour, nil
}
