package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/market-notifier/internal/model"
	"github.com/aliskhannn/market-notifier/internal/service/dispatch"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/notification/mock.go -package=mocks

// ErrForbidden is returned when a user acts on another user's notification.
var ErrForbidden = errors.New("notification belongs to another user")

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100

	// UnreadCountTTL bounds how long a cached count can outlive a missed refresh.
	UnreadCountTTL = 30 * time.Second
)

type notificationRepository interface {
	CreateNotification(ctx context.Context, n model.Notification) (model.Notification, error)
	GetNotificationByID(ctx context.Context, id uuid.UUID) (model.Notification, error)
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]model.Notification, error)
	CountByUser(ctx context.Context, userID int64) (int, error)
	CountUnread(ctx context.Context, userID int64) (int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	DeleteNotification(ctx context.Context, id uuid.UUID) error
	DeleteAllNotifications(ctx context.Context, userID int64) (int64, error)
}

type settingsRepository interface {
	GetOrCreateSettings(ctx context.Context, userID int64) (model.UserChannelSettings, error)
}

type dispatcher interface {
	Dispatch(ctx context.Context, req dispatch.Request) ([]uuid.UUID, error)
}

type broadcaster interface {
	PublishNewNotification(ctx context.Context, n model.Notification, unreadCount int) error
	PublishUnreadCountUpdate(ctx context.Context, userID int64, count int) error
}

type cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetEX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// Service creates notifications and serves the user-facing operations on them.
type Service struct {
	repo        notificationRepository
	settings    settingsRepository
	dispatcher  dispatcher
	broadcaster broadcaster
	cache       cache
}

// NewService creates a new notification service.
func NewService(
	repo notificationRepository,
	settings settingsRepository,
	dispatcher dispatcher,
	broadcaster broadcaster,
	cache cache,
) *Service {
	return &Service{
		repo:        repo,
		settings:    settings,
		dispatcher:  dispatcher,
		broadcaster: broadcaster,
		cache:       cache,
	}
}

// CreateNotification stores a notification for userID, dispatches deliveries to the
// user's enabled channels and announces it to the user's live streams.
//
// Once the notification is stored it is returned even if a later step fails; the
// failures are returned joined alongside it.
func (s *Service) CreateNotification(ctx context.Context, userID int64, change model.ContentChange) (model.Notification, error) {
	n, err := s.repo.CreateNotification(ctx, model.Notification{
		UserID:           userID,
		ContentType:      change.ContentType,
		ContentID:        change.ContentID,
		NotificationType: change.NotificationType,
	})
	if err != nil {
		return model.Notification{}, fmt.Errorf("create notification: %w", err)
	}

	var errs []error

	// Dispatch to channels.
	settings, err := s.settings.GetOrCreateSettings(ctx, userID)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("get channel settings: %w", err))
	case !settings.NotificationsEnabled:
		zlog.Logger.Info().Int64("user_id", userID).Str("notification_id", n.ID.String()).
			Msg("notifications disabled, no deliveries created")
	default:
		if _, err := s.dispatcher.Dispatch(ctx, dispatch.Request{
			NotificationID: n.ID,
			UserID:         userID,
			Settings:       &settings,
			Change:         change,
		}); err != nil {
			errs = append(errs, fmt.Errorf("dispatch: %w", err))
		}
	}

	// Announce with the authoritative unread count.
	count, err := s.refreshUnreadCount(ctx, userID)
	if err != nil {
		errs = append(errs, err)
	} else if err := s.broadcaster.PublishNewNotification(ctx, n, count); err != nil {
		errs = append(errs, fmt.Errorf("publish notification: %w", err))
	}

	if len(errs) > 0 {
		zlog.Logger.Error().Err(errors.Join(errs...)).Str("notification_id", n.ID.String()).
			Msg("notification stored with follow-up failures")
	}

	return n, errors.Join(errs...)
}

// GetUserNotifications returns one page of the user's notifications, newest first.
func (s *Service) GetUserNotifications(ctx context.Context, userID int64, page, limit int) (model.NotificationPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	items, err := s.repo.ListByUser(ctx, userID, limit, (page-1)*limit)
	if err != nil {
		return model.NotificationPage{}, fmt.Errorf("list notifications: %w", err)
	}

	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return model.NotificationPage{}, fmt.Errorf("count notifications: %w", err)
	}

	return model.NotificationPage{Items: items, Total: total, Page: page, Limit: limit}, nil
}

// GetUnreadCount returns the number of unread notifications of the user.
func (s *Service) GetUnreadCount(ctx context.Context, userID int64) (int, error) {
	cached, err := s.cache.Get(ctx, unreadKey(userID)).Result()
	if err == nil {
		count, convErr := strconv.Atoi(cached)
		if convErr == nil {
			return count, nil
		}
		zlog.Logger.Warn().Err(convErr).Int64("user_id", userID).Msg("invalid cached unread count")
	} else if !errors.Is(err, redis.Nil) {
		zlog.Logger.Error().Err(err).Int64("user_id", userID).Msg("failed to get unread count from cache")
	}

	return s.refreshUnreadCount(ctx, userID)
}

// MarkAsRead marks the user's notification as read. Marking an already read
// notification again is not an error.
func (s *Service) MarkAsRead(ctx context.Context, userID int64, id uuid.UUID) error {
	if err := s.checkOwner(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.MarkRead(ctx, id); err != nil {
		return fmt.Errorf("mark read: %w", err)
	}

	s.publishCount(ctx, userID)
	return nil
}

// MarkAllAsRead marks every notification of the user as read.
func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	n, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all read: %w", err)
	}

	s.publishCount(ctx, userID)
	return n, nil
}

// DeleteNotification deletes the user's notification together with its delivery records.
func (s *Service) DeleteNotification(ctx context.Context, userID int64, id uuid.UUID) error {
	if err := s.checkOwner(ctx, userID, id); err != nil {
		return err
	}

	if err := s.repo.DeleteNotification(ctx, id); err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}

	s.publishCount(ctx, userID)
	return nil
}

// DeleteAllNotifications deletes every notification of the user and returns how many were removed.
func (s *Service) DeleteAllNotifications(ctx context.Context, userID int64) (int64, error) {
	n, err := s.repo.DeleteAllNotifications(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("delete all notifications: %w", err)
	}

	s.publishCount(ctx, userID)
	return n, nil
}

func (s *Service) checkOwner(ctx context.Context, userID int64, id uuid.UUID) error {
	n, err := s.repo.GetNotificationByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get notification: %w", err)
	}
	if n.UserID != userID {
		return ErrForbidden
	}
	return nil
}

// refreshUnreadCount counts unread rows and stores the result in the cache.
// When the write fails the key is dropped so the next read goes to the database.
func (s *Service) refreshUnreadCount(ctx context.Context, userID int64) (int, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread: %w", err)
	}

	key := unreadKey(userID)
	if err := s.cache.SetEX(ctx, key, count, UnreadCountTTL).Err(); err != nil {
		zlog.Logger.Error().Err(err).Int64("user_id", userID).Msg("failed to cache unread count")

		if err := s.cache.Del(ctx, key).Err(); err != nil {
			zlog.Logger.Error().Err(err).Int64("user_id", userID).Msg("failed to drop stale unread count")
		}
	}

	return count, nil
}

// publishCount announces the new unread count. The mutation has already
// succeeded, so failures are only logged.
func (s *Service) publishCount(ctx context.Context, userID int64) {
	count, err := s.refreshUnreadCount(ctx, userID)
	if err != nil {
		zlog.Logger.Error().Err(err).Int64("user_id", userID).Msg("failed to refresh unread count")
		return
	}

	if err := s.broadcaster.PublishUnreadCountUpdate(ctx, userID, count); err != nil {
		zlog.Logger.Error().Err(err).Int64("user_id", userID).Msg("failed to publish unread count")
	}
}

func unreadKey(userID int64) string {
	return "notifications:unread:" + strconv.FormatInt(userID, 10)
}
