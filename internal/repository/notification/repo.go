package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/market-notifier/internal/model"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Repository provides methods to interact with notifications table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new notification repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// CreateNotification inserts a new unread notification and returns it with the
// generated id and creation time filled in.
func (r *Repository) CreateNotification(ctx context.Context, n model.Notification) (model.Notification, error) {
	query := `
		INSERT INTO notifications (
		    user_id, content_type, content_id, notification_type
		) VALUES ($1, $2, $3, $4)
		RETURNING id, is_read, created_at;
    `

	err := r.db.Master.QueryRowContext(
		ctx, query, n.UserID, n.ContentType, n.ContentID, n.NotificationType,
	).Scan(&n.ID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		return model.Notification{}, fmt.Errorf("failed to create notification: %w", err)
	}

	return n, nil
}

// GetNotificationByID retrieves a notification by its ID.
func (r *Repository) GetNotificationByID(ctx context.Context, id uuid.UUID) (model.Notification, error) {
	query := `
		SELECT id, user_id, content_type, content_id, notification_type, is_read, created_at
		FROM notifications
		WHERE id = $1;
    `

	var n model.Notification
	err := r.db.Master.QueryRowContext(ctx, query, id).Scan(
		&n.ID, &n.UserID, &n.ContentType, &n.ContentID, &n.NotificationType, &n.IsRead, &n.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Notification{}, ErrNotificationNotFound
		}

		return model.Notification{}, fmt.Errorf("failed to get notification: %w", err)
	}

	return n, nil
}

// ListByUser retrieves a page of the user's notifications, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Notification, error) {
	query := `
		SELECT id, user_id, content_type, content_id, notification_type, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
    `

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	notifications := make([]model.Notification, 0, limit)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(
			&n.ID, &n.UserID, &n.ContentType, &n.ContentID, &n.NotificationType, &n.IsRead, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}

		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notifications: %w", err)
	}

	return notifications, nil
}

// CountByUser returns the total number of the user's notifications.
func (r *Repository) CountByUser(ctx context.Context, userID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM notifications
		WHERE user_id = $1;
    `

	var total int
	if err := r.db.Master.QueryRowContext(ctx, query, userID).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	return total, nil
}

// CountUnread returns the number of the user's notifications with is_read = false.
func (r *Repository) CountUnread(ctx context.Context, userID int64) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM notifications
		WHERE user_id = $1 AND is_read = FALSE;
    `

	var count int
	if err := r.db.Master.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead sets is_read on a notification. Marking an already read
// notification succeeds.
func (r *Repository) MarkRead(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1;
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead marks every unread notification of the user as read and returns
// how many changed.
func (r *Repository) MarkAllRead(ctx context.Context, userID int64) (int64, error) {
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE user_id = $1 AND is_read = FALSE;
    `

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark all notifications read: %w", err)
	}

	rows, _ := res.RowsAffected()

	return rows, nil
}

// DeleteNotification removes a notification by its ID.
func (r *Repository) DeleteNotification(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM notifications
		WHERE id = $1;
    `

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	rows, _ := res.RowsAffected()

	if rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// DeleteAllNotifications removes every notification of the user and returns
// how many were deleted.
func (r *Repository) DeleteAllNotifications(ctx context.Context, userID int64) (int64, error) {
	query := `
		DELETE FROM notifications
		WHERE user_id = $1;
    `

	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete notifications: %w", err)
	}

	rows, _ := res.RowsAffected()

	return rows, nil
}
