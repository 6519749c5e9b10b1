package bookings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/jmoiron/sqlx"

	"tourbook/entity"
	"tourbook/pubsub/bus"
	"tourbook/pubsub/outbox"
)

type PostgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Store persists a booking and publishes BookingPlaced through the outbox in
// the same transaction, so the event exists iff the booking row does.
func (r *PostgresRepository) Store(ctx context.Context, booking entity.Booking, tourTitle string) (err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			rollbackErr := tx.Rollback()
			err = errors.Join(err, rollbackErr)
			return
		}
		err = tx.Commit()
	}()

	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO bookings (
			booking_id, tenant_id, reference, tour_id, user_id,
			activity_date, activity_date_raw, activity_time,
			adults, children, infants,
			total, status, payment_method, transaction_id,
			special_requests, booking_option, booking_option_price, add_ons, created_at
		) VALUES (
			:booking_id, :tenant_id, :reference, :tour_id, :user_id,
			:activity_date, :activity_date_raw, :activity_time,
			:adults, :children, :infants,
			:total, :status, :payment_method, :transaction_id,
			:special_requests, :booking_option, :booking_option_price, :add_ons, :created_at
		)
		`, booking)
	if err != nil {
		return fmt.Errorf("could not add booking: %w", err)
	}

	outboxPublisher, err := outbox.NewPublisherForTx(tx, watermill.NopLogger{})
	if err != nil {
		return fmt.Errorf("could not create outbox publisher: %w", err)
	}

	eventBus, err := bus.NewEventBus(outboxPublisher)
	if err != nil {
		return err
	}

	err = eventBus.Publish(ctx, entity.BookingPlaced{
		Header:    entity.NewEventHeader(),
		BookingID: booking.BookingID,
		TenantID:  booking.TenantID,
		Reference: booking.Reference,
		TourID:    booking.TourID,
		TourTitle: tourTitle,
		Status:    booking.Status,
		Total:     booking.Total,
	})
	if err != nil {
		return fmt.Errorf("could not publish event: %w", err)
	}

	return nil
}

func (r *PostgresRepository) ReferenceExists(ctx context.Context, tenantID, reference string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM bookings WHERE tenant_id = $1 AND reference = $2
		)
		`, tenantID, reference)
	if err != nil {
		return false, fmt.Errorf("could not check reference: %w", err)
	}

	return exists, nil
}

func (r *PostgresRepository) FindByTransactionID(ctx context.Context, tenantID, transactionID string) ([]entity.Booking, error) {
	var found []entity.Booking
	err := r.db.SelectContext(ctx, &found, `
		SELECT * FROM bookings
		WHERE tenant_id = $1 AND transaction_id = $2
		ORDER BY created_at
		`, tenantID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("could not find bookings by transaction: %w", err)
	}

	return found, nil
}

// ClaimTransaction reserves a (tenant, transaction) pair. The primary key on
// checkout_keys makes concurrent duplicate submissions race at the store
// level: exactly one claim wins.
func (r *PostgresRepository) ClaimTransaction(ctx context.Context, tenantID, transactionID string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO checkout_keys (tenant_id, transaction_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
		`, tenantID, transactionID)
	if err != nil {
		return false, fmt.Errorf("could not claim transaction: %w", err)
	}

	claimed, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return claimed > 0, nil
}

func (r *PostgresRepository) ReleaseTransaction(ctx context.Context, tenantID, transactionID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM checkout_keys
		WHERE tenant_id = $1 AND transaction_id = $2
		`, tenantID, transactionID)
	if err != nil {
		return fmt.Errorf("could not release transaction claim: %w", err)
	}

	return nil
}

func (r *PostgresRepository) FindByTenant(ctx context.Context, tenantID string) ([]entity.Booking, error) {
	var found []entity.Booking
	err := r.db.SelectContext(ctx, &found, `
		SELECT * FROM bookings
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("could not list bookings: %w", err)
	}

	return found, nil
}

func (r *PostgresRepository) Get(ctx context.Context, tenantID, bookingID string) (entity.Booking, error) {
	var booking entity.Booking
	err := r.db.GetContext(ctx, &booking, `
		SELECT * FROM bookings
		WHERE tenant_id = $1 AND booking_id = $2
		`, tenantID, bookingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Booking{}, entity.ErrNotFound
		}
		return entity.Booking{}, fmt.Errorf("could not get booking: %w", err)
	}

	return booking, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, tenantID, bookingID string, status entity.BookingStatus) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE bookings SET status = $1
		WHERE tenant_id = $2 AND booking_id = $3
		`, status, tenantID, bookingID)
	if err != nil {
		return fmt.Errorf("could not update booking status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrNotFound
	}

	return nil
}

// DeleteByIDs is the admin bulk delete, the only path that physically removes
// booking rows.
func (r *PostgresRepository) DeleteByIDs(ctx context.Context, tenantID string, bookingIDs []string) error {
	if len(bookingIDs) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`
		DELETE FROM bookings
		WHERE tenant_id = ? AND booking_id IN (?)
		`, tenantID, bookingIDs)
	if err != nil {
		return fmt.Errorf("could not build delete query: %w", err)
	}

	_, err = r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("could not delete bookings: %w", err)
	}

	return nil
}
