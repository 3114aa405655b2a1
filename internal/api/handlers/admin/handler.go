package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/market-notifier/internal/api/dto"
	"github.com/aliskhannn/market-notifier/internal/api/respond"
	"github.com/aliskhannn/market-notifier/internal/model"
	"github.com/aliskhannn/market-notifier/internal/service/delivery"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/admin/mock.go -package=mocks

// Queue is one channel's delivery queue.
type Queue interface {
	Channel() model.ChannelKey
	Status() (model.QueueStatus, error)
	RequeueDeadLettered(strategy retry.Strategy) (int, error)
}

type deliveryTracker interface {
	Stats(ctx context.Context, channel model.ChannelKey, windowHours int) (model.DeliveryStats, error)
	ListRetryCandidates(ctx context.Context, maxRetry, limit int) ([]model.DeliveryRecord, error)
	ListByNotification(ctx context.Context, notificationID uuid.UUID) ([]model.DeliveryRecord, error)
}

// RetryResult is the response of a dead-letter requeue.
type RetryResult struct {
	Retried   int                      `json:"retried"`
	ByChannel map[model.ChannelKey]int `json:"byChannel"`
}

// Handler serves operational endpoints over queues and delivery records.
type Handler struct {
	queues    []Queue
	tracker   deliveryTracker
	validator *validator.Validate
	strategy  retry.Strategy
}

// NewHandler creates a new admin handler.
func NewHandler(queues []Queue, tracker deliveryTracker, v *validator.Validate, strategy retry.Strategy) *Handler {
	return &Handler{queues: queues, tracker: tracker, validator: v, strategy: strategy}
}

// QueueStatus returns the depth and counters of every channel queue.
func (h *Handler) QueueStatus(c *ginext.Context) {
	statuses := make([]model.QueueStatus, 0, len(h.queues))

	for _, q := range h.queues {
		st, err := q.Status()
		if err != nil {
			zlog.Logger.Error().Err(err).Str("channel", string(q.Channel())).Msg("failed to get queue status")
			respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
			return
		}
		statuses = append(statuses, st)
	}

	respond.OK(c.Writer, statuses)
}

// RetryFailed moves abandoned jobs from every dead-letter queue back to their channel queue.
func (h *Handler) RetryFailed(c *ginext.Context) {
	res := RetryResult{ByChannel: make(map[model.ChannelKey]int, len(h.queues))}
	var errs []error

	for _, q := range h.queues {
		n, err := q.RequeueDeadLettered(h.strategy)
		res.ByChannel[q.Channel()] = n
		res.Retried += n
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", q.Channel(), err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		zlog.Logger.Error().Err(err).Int("retried", res.Retried).Msg("failed to requeue dead-lettered jobs")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("requeued %d jobs before failing", res.Retried))
		return
	}

	zlog.Logger.Info().Int("retried", res.Retried).Msg("dead-lettered jobs requeued")
	respond.OK(c.Writer, res)
}

// DeliveryStats returns delivery statistics for one channel or for all of them.
func (h *Handler) DeliveryStats(c *ginext.Context) {
	var q dto.StatsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to bind stats query")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid query"))
		return
	}

	if err := h.validator.Struct(q); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate stats query")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	channels := model.Channels
	if q.Channel != "" {
		channels = []model.ChannelKey{model.ChannelKey(q.Channel)}
	}

	stats := make([]model.DeliveryStats, 0, len(channels))
	for _, ch := range channels {
		st, err := h.tracker.Stats(c.Request.Context(), ch, q.Hours)
		if err != nil {
			zlog.Logger.Error().Err(err).Str("channel", string(ch)).Msg("failed to get delivery stats")
			respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
			return
		}
		stats = append(stats, st)
	}

	respond.OK(c.Writer, stats)
}

// RetryCandidates lists failed deliveries that are still below the retry ceiling.
func (h *Handler) RetryCandidates(c *ginext.Context) {
	var q dto.CandidatesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to bind candidates query")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid query"))
		return
	}

	if err := h.validator.Struct(q); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate candidates query")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	if q.MaxRetry == 0 {
		q.MaxRetry = delivery.DefaultMaxRetry
	}

	records, err := h.tracker.ListRetryCandidates(c.Request.Context(), q.MaxRetry, q.Limit)
	if err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to list retry candidates")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, records)
}

// NotificationDeliveries lists the delivery records of one notification.
func (h *Handler) NotificationDeliveries(c *ginext.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		zlog.Logger.Warn().Err(err).Str("id", c.Param("id")).Msg("invalid notification id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid notification id"))
		return
	}

	records, err := h.tracker.ListByNotification(c.Request.Context(), id)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("notification_id", id.String()).Msg("failed to list deliveries")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, records)
}
