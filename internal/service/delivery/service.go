package delivery

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/aliskhannn/market-notifier/internal/gateway"
	"github.com/aliskhannn/market-notifier/internal/model"
)

//go:generate mockgen -source=service.go -destination=../../mocks/service/delivery/mock.go -package=mocks

const (
	DefaultMaxRetry       = 3
	DefaultCandidateLimit = 100
	DefaultWindowHours    = 24

	maxErrorMessageLen = 1000
)

type deliveryRepository interface {
	GetRecordByID(ctx context.Context, id uuid.UUID) (model.DeliveryRecord, error)
	MarkSent(ctx context.Context, id uuid.UUID, at time.Time, elapsedMs int64) error
	MarkFailed(ctx context.Context, id uuid.UUID, retryCount int, errMessage, errCode string, at time.Time, elapsedMs int64) error
	ListFailed(ctx context.Context, maxRetry, limit int) ([]model.DeliveryRecord, error)
	Counts(ctx context.Context, channel model.ChannelKey, since time.Time) (model.DeliveryCounts, error)
	ListByNotification(ctx context.Context, notificationID uuid.UUID) ([]model.DeliveryRecord, error)
}

// Tracker owns the state transitions of delivery records.
//
// Every mutation is a single-row update keyed by id. A record is only ever
// touched by the worker that holds its job, so no locking is needed.
type Tracker struct {
	repo deliveryRepository
	now  func() time.Time
}

// NewTracker creates a new delivery tracker.
func NewTracker(repo deliveryRepository) *Tracker {
	return &Tracker{repo: repo, now: time.Now}
}

// FindByID returns the record or an error wrapping the repository's not-found error.
func (t *Tracker) FindByID(ctx context.Context, id uuid.UUID) (model.DeliveryRecord, error) {
	rec, err := t.repo.GetRecordByID(ctx, id)
	if err != nil {
		return model.DeliveryRecord{}, fmt.Errorf("find delivery: %w", err)
	}

	return rec, nil
}

// MarkSent moves the record to SENT with deliveredAt set to now.
func (t *Tracker) MarkSent(ctx context.Context, id uuid.UUID, elapsedMs int64) error {
	if err := t.repo.MarkSent(ctx, id, t.now(), elapsedMs); err != nil {
		return fmt.Errorf("mark delivery sent: %w", err)
	}

	return nil
}

// MarkFailed moves the record to FAILED with the new retry count and the
// classified cause.
func (t *Tracker) MarkFailed(ctx context.Context, id uuid.UUID, retryCount int, cause error, elapsedMs int64) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	if len(msg) > maxErrorMessageLen {
		msg = msg[:maxErrorMessageLen]
	}

	if err := t.repo.MarkFailed(ctx, id, retryCount, msg, gateway.CodeOf(cause), t.now(), elapsedMs); err != nil {
		return fmt.Errorf("mark delivery failed: %w", err)
	}

	return nil
}

// ListByNotification returns every delivery record of a notification.
func (t *Tracker) ListByNotification(ctx context.Context, notificationID uuid.UUID) ([]model.DeliveryRecord, error) {
	records, err := t.repo.ListByNotification(ctx, notificationID)
	if err != nil {
		return nil, fmt.Errorf("list deliveries of notification: %w", err)
	}

	return records, nil
}

// ListRetryCandidates returns FAILED records that still have attempts left,
// oldest attempt first.
func (t *Tracker) ListRetryCandidates(ctx context.Context, maxRetry, limit int) ([]model.DeliveryRecord, error) {
	if maxRetry <= 0 {
		maxRetry = DefaultMaxRetry
	}
	if limit <= 0 {
		limit = DefaultCandidateLimit
	}

	records, err := t.repo.ListFailed(ctx, maxRetry, limit)
	if err != nil {
		return nil, fmt.Errorf("list retry candidates: %w", err)
	}

	return records, nil
}

// Stats summarises a channel's records created within the last windowHours.
// SuccessRate is a percentage rounded to two decimals, zero when there are no records.
func (t *Tracker) Stats(ctx context.Context, channel model.ChannelKey, windowHours int) (model.DeliveryStats, error) {
	if windowHours <= 0 {
		windowHours = DefaultWindowHours
	}

	since := t.now().Add(-time.Duration(windowHours) * time.Hour)

	counts, err := t.repo.Counts(ctx, channel, since)
	if err != nil {
		return model.DeliveryStats{}, fmt.Errorf("delivery stats: %w", err)
	}

	stats := model.DeliveryStats{
		Channel:             channel,
		WindowHours:         windowHours,
		Total:               counts.Total,
		Sent:                counts.Sent,
		Failed:              counts.Failed,
		AvgProcessingTimeMs: round2(counts.AvgProcessingTimeMs),
	}
	if counts.Total > 0 {
		stats.SuccessRate = round2(float64(counts.Sent) / float64(counts.Total) * 100)
	}

	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
