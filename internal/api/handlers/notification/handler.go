package notification

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/market-notifier/internal/api/dto"
	"github.com/aliskhannn/market-notifier/internal/api/respond"
	"github.com/aliskhannn/market-notifier/internal/middlewares"
	"github.com/aliskhannn/market-notifier/internal/model"
	notificationrepo "github.com/aliskhannn/market-notifier/internal/repository/notification"
	notificationsvc "github.com/aliskhannn/market-notifier/internal/service/notification"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/notification/mock.go -package=mocks

const defaultHeartbeat = 30 * time.Second

type notificationService interface {
	GetUserNotifications(ctx context.Context, userID int64, page, limit int) (model.NotificationPage, error)
	GetUnreadCount(ctx context.Context, userID int64) (int, error)
	MarkAsRead(ctx context.Context, userID int64, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID int64) (int64, error)
	DeleteNotification(ctx context.Context, userID int64, id uuid.UUID) error
	DeleteAllNotifications(ctx context.Context, userID int64) (int64, error)
}

type streamer interface {
	GetNotificationStream(ctx context.Context, userID int64) <-chan model.StreamEvent
}

// Handler serves the notification endpoints of the current user.
type Handler struct {
	service   notificationService
	streamer  streamer
	validator *validator.Validate
	heartbeat time.Duration
}

// NewHandler creates a new notification handler.
func NewHandler(s notificationService, st streamer, v *validator.Validate, heartbeat time.Duration) *Handler {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &Handler{service: s, streamer: st, validator: v, heartbeat: heartbeat}
}

// List returns one page of the user's notifications.
func (h *Handler) List(c *ginext.Context) {
	userID := middlewares.UserID(c)

	var q dto.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to bind list query")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid query"))
		return
	}

	if err := h.validator.Struct(q); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate list query")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	page, err := h.service.GetUserNotifications(c.Request.Context(), userID, q.Page, q.Limit)
	if err != nil {
		zlog.Logger.Error().Err(err).Int64("user_id", userID).Msg("failed to list notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, page)
}

// UnreadCount returns the number of unread notifications.
func (h *Handler) UnreadCount(c *ginext.Context) {
	userID := middlewares.UserID(c)

	count, err := h.service.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		zlog.Logger.Error().Err(err).Int64("user_id", userID).Msg("failed to get unread count")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, dto.UnreadCount{UnreadCount: count})
}

// MarkRead marks one notification as read.
func (h *Handler) MarkRead(c *ginext.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.MarkAsRead(c.Request.Context(), middlewares.UserID(c), id); err != nil {
		failOwned(c, id, err, "failed to mark notification as read")
		return
	}

	respond.OK(c.Writer, "notification marked as read")
}

// MarkAllRead marks all of the user's notifications as read.
func (h *Handler) MarkAllRead(c *ginext.Context) {
	userID := middlewares.UserID(c)

	n, err := h.service.MarkAllAsRead(c.Request.Context(), userID)
	if err != nil {
		zlog.Logger.Error().Err(err).Int64("user_id", userID).Msg("failed to mark all notifications as read")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, dto.Count{Count: n})
}

// Delete deletes one notification.
func (h *Handler) Delete(c *ginext.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteNotification(c.Request.Context(), middlewares.UserID(c), id); err != nil {
		failOwned(c, id, err, "failed to delete notification")
		return
	}

	respond.OK(c.Writer, "notification deleted")
}

// DeleteAll deletes all of the user's notifications.
func (h *Handler) DeleteAll(c *ginext.Context) {
	userID := middlewares.UserID(c)

	n, err := h.service.DeleteAllNotifications(c.Request.Context(), userID)
	if err != nil {
		zlog.Logger.Error().Err(err).Int64("user_id", userID).Msg("failed to delete notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, dto.Count{Count: n})
}

// Stream pushes the user's notification events as server-sent events.
// The current unread count is sent first.
func (h *Handler) Stream(c *ginext.Context) {
	userID := middlewares.UserID(c)
	ctx := c.Request.Context()

	events := h.streamer.GetNotificationStream(ctx, userID)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	if count, err := h.service.GetUnreadCount(ctx, userID); err != nil {
		zlog.Logger.Error().Err(err).Int64("user_id", userID).Msg("failed to get initial unread count")
	} else {
		c.SSEvent(string(model.BroadcastCountUpdate), model.StreamEvent{
			ID:        uuid.NewString(),
			Type:      model.BroadcastCountUpdate,
			CreatedAt: time.Now().UTC(),
			Payload:   map[string]any{"unreadCount": count},
		})
	}

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	c.Stream(func(io.Writer) bool {
		select {
		case e, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent(string(e.Type), e)
			return true
		case <-heartbeat.C:
			c.SSEvent("heartbeat", time.Now().UTC().Format(time.RFC3339))
			return true
		case <-ctx.Done():
			return false
		}
	})

	zlog.Logger.Debug().Int64("user_id", userID).Msg("notification stream closed")
}

func parseID(c *ginext.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")
	id, err := uuid.Parse(idStr)
	if err != nil {
		zlog.Logger.Warn().Err(err).Str("id", idStr).Msg("failed to parse id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return uuid.Nil, false
	}

	if id == uuid.Nil {
		zlog.Logger.Warn().Msg("missing id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("missing id"))
		return uuid.Nil, false
	}

	return id, true
}

func failOwned(c *ginext.Context, id uuid.UUID, err error, msg string) {
	switch {
	case errors.Is(err, notificationrepo.ErrNotificationNotFound):
		zlog.Logger.Warn().Str("id", id.String()).Err(err).Msg("notification not found")
		respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
	case errors.Is(err, notificationsvc.ErrForbidden):
		zlog.Logger.Warn().Str("id", id.String()).Err(err).Msg("notification belongs to another user")
		respond.Fail(c.Writer, http.StatusForbidden, fmt.Errorf("forbidden"))
	default:
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg(msg)
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
	}
}
