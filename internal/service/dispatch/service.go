package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/market-notifier/internal/model"
	"github.com/aliskhannn/market-notifier/internal/rabbitmq/queue"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/dispatch/mock.go -package=mocks

type recordCreator interface {
	CreateRecord(ctx context.Context, notificationID uuid.UUID, channel model.ChannelKey) (uuid.UUID, error)
}

// Enqueuer is a channel job queue.
type Enqueuer interface {
	Enqueue(job queue.DeliveryJob, strategy retry.Strategy) error
}

// Request is one notification to fan out to the user's channels.
type Request struct {
	NotificationID uuid.UUID
	UserID         int64
	Settings       *model.UserChannelSettings // nil means every channel is disabled
	Change         model.ContentChange
}

// Dispatcher turns a notification into one delivery record and one job per
// enabled and configured channel.
type Dispatcher struct {
	records   recordCreator
	queues    map[model.ChannelKey]Enqueuer
	validator *validator.Validate
	strategy  retry.Strategy
}

// NewDispatcher creates a new Dispatcher.
func NewDispatcher(
	records recordCreator,
	queues map[model.ChannelKey]Enqueuer,
	v *validator.Validate,
	strategy retry.Strategy,
) *Dispatcher {
	return &Dispatcher{records: records, queues: queues, validator: v, strategy: strategy}
}

// Dispatch creates the delivery records and enqueues their jobs. It returns
// the ids of the records whose jobs were enqueued. Disabled or unconfigured
// channels are skipped without error.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) ([]uuid.UUID, error) {
	if req.Settings == nil {
		zlog.Logger.Warn().Int64("user_id", req.UserID).Msg("no channel settings, skipping dispatch")
		return nil, nil
	}

	if !req.Settings.NotificationsEnabled {
		zlog.Logger.Info().Int64("user_id", req.UserID).Msg("notifications disabled, skipping dispatch")
		return nil, nil
	}

	var (
		ids  []uuid.UUID
		errs []error
	)

	for _, channel := range model.Channels {
		destination, ok := d.destination(*req.Settings, channel)
		if !ok {
			continue
		}

		q, ok := d.queues[channel]
		if !ok {
			zlog.Logger.Warn().Str("channel", string(channel)).Msg("no queue for channel, skipping")
			continue
		}

		// The record must exist before its job can be picked up.
		id, err := d.records.CreateRecord(ctx, req.NotificationID, channel)
		if err != nil {
			errs = append(errs, fmt.Errorf("create %s delivery: %w", channel, err))
			continue
		}

		job := queue.DeliveryJob{
			DeliveryID:     id,
			NotificationID: req.NotificationID,
			Channel:        channel,
			Destination:    destination,
			Change:         req.Change,
		}

		if err := q.Enqueue(job, d.strategy); err != nil {
			zlog.Logger.Error().Err(err).Str("delivery_id", id.String()).Msg("failed to enqueue delivery")
			errs = append(errs, fmt.Errorf("enqueue %s delivery: %w", channel, err))
			continue
		}

		ids = append(ids, id)
	}

	return ids, errors.Join(errs...)
}

// destination returns where a channel delivers to, and false when the channel
// is disabled or has no usable destination.
func (d *Dispatcher) destination(s model.UserChannelSettings, channel model.ChannelKey) (string, bool) {
	var (
		enabled bool
		dest    string
		tag     string
	)

	switch channel {
	case model.ChannelEmail:
		enabled, dest, tag = s.EmailEnabled, s.EmailAddress, "required,email"
	case model.ChannelChatA:
		enabled, dest, tag = s.ChatAEnabled, s.ChatAWebhookURL, "required,http_url"
	case model.ChannelChatB:
		enabled, dest, tag = s.ChatBEnabled, s.ChatBWebhookURL, "required,http_url"
	default:
		return "", false
	}

	if !enabled {
		return "", false
	}

	if err := d.validator.Var(dest, tag); err != nil {
		zlog.Logger.Warn().
			Int64("user_id", s.UserID).
			Str("channel", string(channel)).
			Msg("channel enabled without a valid destination, skipping")
		return "", false
	}

	return dest, true
}
