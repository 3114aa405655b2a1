package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/market-notifier/internal/model"
)

var (
	ErrSettingsNotFound = errors.New("channel settings not found")
	ErrSettingsExist    = errors.New("channel settings already exist")
)

const uniqueViolation = "23505"

// Repository provides methods to interact with user_channel_settings table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new settings repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// GetSettings retrieves the user's channel settings together with the user's
// email address.
func (r *Repository) GetSettings(ctx context.Context, userID int64) (model.UserChannelSettings, error) {
	query := `
		SELECT s.user_id, s.notifications_enabled, s.email_enabled, COALESCE(u.email, ''),
		       s.chat_a_enabled, s.chat_a_webhook_url, s.chat_b_enabled, s.chat_b_webhook_url
		FROM user_channel_settings s
		LEFT JOIN users u ON u.id = s.user_id
		WHERE s.user_id = $1;
    `

	var s model.UserChannelSettings
	err := r.db.Master.QueryRowContext(ctx, query, userID).Scan(
		&s.UserID, &s.NotificationsEnabled, &s.EmailEnabled, &s.EmailAddress,
		&s.ChatAEnabled, &s.ChatAWebhookURL, &s.ChatBEnabled, &s.ChatBWebhookURL,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.UserChannelSettings{}, ErrSettingsNotFound
		}

		return model.UserChannelSettings{}, fmt.Errorf("failed to get channel settings: %w", err)
	}

	return s, nil
}

// CreateSettings inserts a settings row. It returns ErrSettingsExist when a
// row for the user is already present.
func (r *Repository) CreateSettings(ctx context.Context, s model.UserChannelSettings) error {
	query := `
		INSERT INTO user_channel_settings (
		    user_id, notifications_enabled, email_enabled,
		    chat_a_enabled, chat_a_webhook_url, chat_b_enabled, chat_b_webhook_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7);
    `

	_, err := r.db.ExecContext(
		ctx, query, s.UserID, s.NotificationsEnabled, s.EmailEnabled,
		s.ChatAEnabled, s.ChatAWebhookURL, s.ChatBEnabled, s.ChatBWebhookURL,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrSettingsExist
		}

		return fmt.Errorf("failed to create channel settings: %w", err)
	}

	return nil
}

// GetOrCreateSettings reads the user's settings, creating the default row on
// first read. A concurrent creator winning the insert is treated as
// "already exists" and the row is read again.
func (r *Repository) GetOrCreateSettings(ctx context.Context, userID int64) (model.UserChannelSettings, error) {
	s, err := r.GetSettings(ctx, userID)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, ErrSettingsNotFound) {
		return model.UserChannelSettings{}, err
	}

	err = r.CreateSettings(ctx, model.DefaultSettings(userID))
	if err != nil && !errors.Is(err, ErrSettingsExist) {
		return model.UserChannelSettings{}, err
	}

	return r.GetSettings(ctx, userID)
}
