package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"tourbook/entity"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a user. A duplicate email surfaces as entity.ErrConflict so
// the caller can re-fetch the winner of the race.
func (r *PostgresRepository) Create(ctx context.Context, user entity.User) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO users (user_id, tenant_id, name, email, password_hash, guest, created_at)
		VALUES (:user_id, :tenant_id, :name, :email, :password_hash, :guest, :created_at)
		`, user)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return entity.ErrConflict
		}
		return fmt.Errorf("could not create user: %w", err)
	}

	return nil
}

func (r *PostgresRepository) FindByID(ctx context.Context, tenantID, userID string) (entity.User, error) {
	var user entity.User
	err := r.db.GetContext(ctx, &user, `
		SELECT user_id, tenant_id, name, email, password_hash, guest, created_at
		FROM users
		WHERE tenant_id = $1 AND user_id = $2
		`, tenantID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, entity.ErrNotFound
		}
		return entity.User{}, fmt.Errorf("could not get user: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) FindByEmail(ctx context.Context, tenantID, email string) (entity.User, error) {
	var user entity.User
	err := r.db.GetContext(ctx, &user, `
		SELECT user_id, tenant_id, name, email, password_hash, guest, created_at
		FROM users
		WHERE tenant_id = $1 AND email = $2
		`, tenantID, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.User{}, entity.ErrNotFound
		}
		return entity.User{}, fmt.Errorf("could not find user by email: %w", err)
	}

	return user, nil
}
