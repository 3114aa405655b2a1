package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/market-notifier/internal/gateway"
	"github.com/aliskhannn/market-notifier/internal/message"
	"github.com/aliskhannn/market-notifier/internal/model"
	"github.com/aliskhannn/market-notifier/internal/rabbitmq/queue"
	deliveryrepo "github.com/aliskhannn/market-notifier/internal/repository/delivery"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/rabbitmq/handlers/delivery/mock.go -package=mocks

type deliveryTracker interface {
	FindByID(ctx context.Context, id uuid.UUID) (model.DeliveryRecord, error)
	MarkSent(ctx context.Context, id uuid.UUID, elapsedMs int64) error
	MarkFailed(ctx context.Context, id uuid.UUID, retryCount int, cause error, elapsedMs int64) error
}

// Gateway sends a rendered message to a channel destination.
type Gateway interface {
	Send(ctx context.Context, destination string, msg message.Message) error
}

// Handler executes delivery jobs of one channel.
type Handler struct {
	tracker deliveryTracker
	gateway Gateway
	now     func() time.Time
}

// NewHandler creates a new Handler.
func NewHandler(t deliveryTracker, g Gateway) *Handler {
	return &Handler{tracker: t, gateway: g, now: time.Now}
}

// HandleMessage renders and sends one job and records the outcome.
//
// A send failure is recorded before it is returned so that it is visible
// while the job waits for its next attempt. Errors wrapping queue.ErrDiscard
// must not be retried.
func (h *Handler) HandleMessage(ctx context.Context, job queue.DeliveryJob) error {
	start := h.now()
	log := zlog.Logger.With().
		Str("delivery_id", job.DeliveryID.String()).
		Str("channel", string(job.Channel)).
		Int("attempt", job.Attempt).
		Logger()

	rec, err := h.tracker.FindByID(ctx, job.DeliveryID)
	if err != nil {
		if errors.Is(err, deliveryrepo.ErrDeliveryNotFound) {
			log.Error().Err(err).Msg("delivery record missing, dropping job")
			return fmt.Errorf("%w: %w", queue.ErrDiscard, err)
		}

		return fmt.Errorf("find delivery: %w", err)
	}

	msg, err := message.Build(job.Change)
	if err != nil {
		// Rendering is deterministic, another attempt would fail the same way.
		h.recordFailure(ctx, log, rec, err, start)
		return fmt.Errorf("%w: %w", queue.ErrDiscard, err)
	}

	if err := h.gateway.Send(ctx, job.Destination, msg); err != nil {
		h.recordFailure(ctx, log, rec, err, start)
		return fmt.Errorf("send %s: %w", job.Channel, err)
	}

	elapsed := h.now().Sub(start).Milliseconds()
	if err := h.tracker.MarkSent(ctx, rec.ID, elapsed); err != nil {
		// The message is out; retrying would deliver it twice.
		log.Error().Err(err).Msg("delivered but failed to mark sent")
		return nil
	}

	log.Info().Int64("elapsed_ms", elapsed).Msg("delivery sent")

	return nil
}

func (h *Handler) recordFailure(
	ctx context.Context,
	log zerolog.Logger,
	rec model.DeliveryRecord,
	cause error,
	start time.Time,
) {
	elapsed := h.now().Sub(start).Milliseconds()

	log.Warn().Err(cause).
		Int("retry_count", rec.RetryCount+1).
		Str("code", gateway.CodeOf(cause)).
		Bool("retryable", gateway.IsRetryable(cause)).
		Msg("delivery failed")

	if err := h.tracker.MarkFailed(ctx, rec.ID, rec.RetryCount+1, cause, elapsed); err != nil {
		log.Error().Err(err).Msg("failed to mark delivery failed")
	}
}
