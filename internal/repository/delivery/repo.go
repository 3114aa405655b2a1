package delivery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/market-notifier/internal/model"
)

var ErrDeliveryNotFound = errors.New("delivery record not found")

const recordColumns = `id, notification_id, channel_key, status, retry_count, last_attempt_at,
		       delivered_at, processing_time_ms, error_message, error_code, created_at`

// Repository provides methods to interact with delivery_records table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new delivery record repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// CreateRecord inserts a PENDING record with retry_count 0 and returns its ID.
func (r *Repository) CreateRecord(ctx context.Context, notificationID uuid.UUID, channel model.ChannelKey) (uuid.UUID, error) {
	query := `
		INSERT INTO delivery_records (
		    notification_id, channel_key, status, retry_count
		) VALUES ($1, $2, 'PENDING', 0)
		RETURNING id;
    `

	var id uuid.UUID
	err := r.db.Master.QueryRowContext(ctx, query, notificationID, channel).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create delivery record: %w", err)
	}

	return id, nil
}

// GetRecordByID retrieves a delivery record by its ID.
func (r *Repository) GetRecordByID(ctx context.Context, id uuid.UUID) (model.DeliveryRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM delivery_records
		WHERE id = $1;
    `

	rec, err := scanRecord(r.db.Master.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.DeliveryRecord{}, ErrDeliveryNotFound
		}

		return model.DeliveryRecord{}, fmt.Errorf("failed to get delivery record: %w", err)
	}

	return rec, nil
}

// MarkSent moves a record to SENT and clears its error fields.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID, at time.Time, elapsedMs int64) error {
	query := `
		UPDATE delivery_records
		SET status = 'SENT', delivered_at = $2, last_attempt_at = $2,
		    processing_time_ms = $3, error_message = '', error_code = ''
		WHERE id = $1;
    `

	res, err := r.db.ExecContext(ctx, query, id, at, elapsedMs)
	if err != nil {
		return fmt.Errorf("failed to mark delivery sent: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrDeliveryNotFound
	}

	return nil
}

// MarkFailed moves a record to FAILED with the given retry count and error details.
func (r *Repository) MarkFailed(
	ctx context.Context,
	id uuid.UUID,
	retryCount int,
	errMessage, errCode string,
	at time.Time,
	elapsedMs int64,
) error {
	query := `
		UPDATE delivery_records
		SET status = 'FAILED', retry_count = $2, error_message = $3, error_code = $4,
		    last_attempt_at = $5, processing_time_ms = $6
		WHERE id = $1;
    `

	res, err := r.db.ExecContext(ctx, query, id, retryCount, errMessage, errCode, at, elapsedMs)
	if err != nil {
		return fmt.Errorf("failed to mark delivery failed: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrDeliveryNotFound
	}

	return nil
}

// ListFailed returns FAILED records with retry_count below maxRetry, oldest
// attempt first.
func (r *Repository) ListFailed(ctx context.Context, maxRetry, limit int) ([]model.DeliveryRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM delivery_records
		WHERE status = 'FAILED' AND retry_count < $1
		ORDER BY last_attempt_at ASC NULLS FIRST
		LIMIT $2;
    `

	rows, err := r.db.QueryContext(ctx, query, maxRetry, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list failed deliveries: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

// ListByNotification returns every delivery record of a notification.
func (r *Repository) ListByNotification(ctx context.Context, notificationID uuid.UUID) ([]model.DeliveryRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM delivery_records
		WHERE notification_id = $1
		ORDER BY created_at ASC;
    `

	rows, err := r.db.QueryContext(ctx, query, notificationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list deliveries: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

// Counts aggregates the records of a channel created at or after since.
func (r *Repository) Counts(ctx context.Context, channel model.ChannelKey, since time.Time) (model.DeliveryCounts, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'SENT'),
		       COUNT(*) FILTER (WHERE status = 'FAILED'),
		       COALESCE(AVG(processing_time_ms), 0)
		FROM delivery_records
		WHERE channel_key = $1 AND created_at >= $2;
    `

	var c model.DeliveryCounts
	err := r.db.Master.QueryRowContext(ctx, query, channel, since).Scan(&c.Total, &c.Sent, &c.Failed, &c.AvgProcessingTimeMs)
	if err != nil {
		return model.DeliveryCounts{}, fmt.Errorf("failed to count deliveries: %w", err)
	}

	return c, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (model.DeliveryRecord, error) {
	var (
		rec         model.DeliveryRecord
		lastAttempt sql.NullTime
		delivered   sql.NullTime
		elapsed     sql.NullInt64
	)

	err := s.Scan(
		&rec.ID, &rec.NotificationID, &rec.ChannelKey, &rec.Status, &rec.RetryCount, &lastAttempt,
		&delivered, &elapsed, &rec.ErrorMessage, &rec.ErrorCode, &rec.CreatedAt,
	)
	if err != nil {
		return model.DeliveryRecord{}, err
	}

	if lastAttempt.Valid {
		rec.LastAttemptAt = &lastAttempt.Time
	}
	if delivered.Valid {
		rec.DeliveredAt = &delivered.Time
	}
	if elapsed.Valid {
		rec.ProcessingTimeMs = &elapsed.Int64
	}

	return rec, nil
}

func collect(rows *sql.Rows) ([]model.DeliveryRecord, error) {
	records := make([]model.DeliveryRecord, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery record: %w", err)
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate delivery records: %w", err)
	}

	return records, nil
}
