package monitor

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/market-notifier/internal/model"
	"github.com/aliskhannn/market-notifier/internal/service/delivery"
)

//go:generate mockgen -source=monitor.go -destination=../mocks/monitor/mock.go -package=mocks

// DefaultSpec runs the check every five minutes.
const DefaultSpec = "@every 5m"

type deliveryTracker interface {
	Stats(ctx context.Context, channel model.ChannelKey, windowHours int) (model.DeliveryStats, error)
	ListRetryCandidates(ctx context.Context, maxRetry, limit int) ([]model.DeliveryRecord, error)
}

// Report is the outcome of one check.
type Report struct {
	Stats           []model.DeliveryStats
	RetryCandidates int
}

// Monitor periodically logs delivery statistics and the number of failed
// deliveries still below the retry ceiling. It never re-enqueues anything.
type Monitor struct {
	tracker deliveryTracker
	spec    string
	cron    *cron.Cron
	log     zerolog.Logger
}

// New validates spec and creates a monitor.
func New(tracker deliveryTracker, spec string) (*Monitor, error) {
	if spec == "" {
		spec = DefaultSpec
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(spec); err != nil {
		return nil, fmt.Errorf("parse monitor spec %q: %w", spec, err)
	}

	return &Monitor{
		tracker: tracker,
		spec:    spec,
		cron:    cron.New(cron.WithParser(parser), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:     zlog.Logger.With().Str("component", "monitor").Logger(),
	}, nil
}

// Start schedules the check. ctx bounds every run.
func (m *Monitor) Start(ctx context.Context) error {
	if _, err := m.cron.AddFunc(m.spec, func() {
		if _, err := m.Check(ctx); err != nil {
			m.log.Error().Err(err).Msg("delivery check failed")
		}
	}); err != nil {
		return fmt.Errorf("schedule monitor: %w", err)
	}

	m.cron.Start()
	m.log.Info().Str("spec", m.spec).Msg("delivery monitor started")
	return nil
}

// Stop stops scheduling and waits for a running check to finish.
func (m *Monitor) Stop() {
	<-m.cron.Stop().Done()
	m.log.Info().Msg("delivery monitor stopped")
}

// Check collects and logs the stats of every channel over the default window
// and the current retry candidate count.
func (m *Monitor) Check(ctx context.Context) (Report, error) {
	var (
		report Report
		errs   []error
	)

	for _, channel := range model.Channels {
		stats, err := m.tracker.Stats(ctx, channel, delivery.DefaultWindowHours)
		if err != nil {
			errs = append(errs, fmt.Errorf("stats %s: %w", channel, err))
			continue
		}
		report.Stats = append(report.Stats, stats)

		m.log.Info().
			Str("channel", string(channel)).
			Int("total", stats.Total).
			Int("sent", stats.Sent).
			Int("failed", stats.Failed).
			Float64("success_rate", stats.SuccessRate).
			Float64("avg_processing_ms", stats.AvgProcessingTimeMs).
			Msg("delivery stats")
	}

	candidates, err := m.tracker.ListRetryCandidates(ctx, delivery.DefaultMaxRetry, delivery.DefaultCandidateLimit)
	if err != nil {
		errs = append(errs, fmt.Errorf("retry candidates: %w", err))
	} else {
		report.RetryCandidates = len(candidates)
		if len(candidates) > 0 {
			m.log.Warn().Int("count", len(candidates)).Msg("failed deliveries below retry ceiling")
		}
	}

	return report, errors.Join(errs...)
}
