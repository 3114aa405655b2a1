package broadcast

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/market-notifier/internal/model"
)

const (
	// DefaultChannel is the single broker channel all processes share.
	DefaultChannel = "notifications:events"

	defaultPublishTimeout = 5 * time.Second
	defaultPingTimeout    = 3 * time.Second
	defaultStreamBuffer   = 16
)

// ErrClosed is returned when publishing through a closed broadcaster.
var ErrClosed = errors.New("broadcaster closed")

// Options tunes the broadcaster.
type Options struct {
	Channel        string        `mapstructure:"channel"`
	PublishTimeout time.Duration `mapstructure:"publish_timeout"`
	PingTimeout    time.Duration `mapstructure:"ping_timeout"`
	StreamBuffer   int           `mapstructure:"stream_buffer"`
}

func (o Options) withDefaults() Options {
	if o.Channel == "" {
		o.Channel = DefaultChannel
	}
	if o.PublishTimeout <= 0 {
		o.PublishTimeout = defaultPublishTimeout
	}
	if o.PingTimeout <= 0 {
		o.PingTimeout = defaultPingTimeout
	}
	if o.StreamBuffer <= 0 {
		o.StreamBuffer = defaultStreamBuffer
	}
	return o
}

type stream struct {
	userID int64
	events chan model.StreamEvent
}

// Broadcaster fans notification events out to live client streams across processes.
//
// Events go through one shared broker channel. Each process subscribes once and
// filters events by user for the streams it holds.
type Broadcaster struct {
	broker Broker
	opts   Options
	now    func() time.Time
	log    zerolog.Logger

	connected atomic.Bool
	closed    atomic.Bool

	mu      sync.RWMutex
	streams map[uint64]stream
	nextID  uint64

	sub       Subscription
	done      chan struct{}
	closeOnce sync.Once
}

// New creates a broadcaster. Call Start before reading streams.
func New(broker Broker, opts Options) *Broadcaster {
	opts = opts.withDefaults()

	return &Broadcaster{
		broker:  broker,
		opts:    opts,
		now:     time.Now,
		log:     zlog.Logger.With().Str("component", "broadcaster").Str("channel", opts.Channel).Logger(),
		streams: make(map[uint64]stream),
		done:    make(chan struct{}),
	}
}

// Start subscribes to the shared channel and begins the fan-out loop.
func (b *Broadcaster) Start(ctx context.Context) error {
	sub, err := b.broker.Subscribe(ctx, b.opts.Channel)
	if err != nil {
		b.connected.Store(false)
		return fmt.Errorf("start broadcaster: %w", err)
	}

	b.sub = sub
	b.connected.Store(true)
	b.log.Info().Msg("subscribed to broadcast channel")

	go b.loop(sub.Messages())
	return nil
}

func (b *Broadcaster) loop(messages <-chan []byte) {
	defer close(b.done)

	for payload := range messages {
		var event model.BroadcastEvent
		if err := json.Unmarshal(payload, &event); err != nil {
			b.log.Error().Err(err).Msg("failed to decode broadcast event")
			continue
		}
		b.fanOut(event)
	}

	b.connected.Store(false)
	b.log.Info().Msg("broadcast subscription ended")
}

func (b *Broadcaster) fanOut(event model.BroadcastEvent) {
	se := toStreamEvent(event)

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, s := range b.streams {
		if s.userID != event.UserID {
			continue
		}
		select {
		case s.events <- se:
		default:
			b.log.Warn().Int64("user_id", s.userID).Str("event_id", se.ID).Msg("stream buffer full, event dropped")
		}
	}
}

func toStreamEvent(e model.BroadcastEvent) model.StreamEvent {
	id := e.NotificationID
	if id == "" {
		id = uuid.NewString()
	}

	return model.StreamEvent{
		ID:          id,
		Type:        e.Type,
		ContentType: e.ContentType,
		ContentID:   e.ContentID,
		IsRead:      e.IsRead,
		CreatedAt:   e.CreatedAt,
		Payload:     e.Payload,
	}
}

// GetNotificationStream returns the events for userID until ctx is done.
// The channel is closed when ctx ends or the broadcaster closes.
func (b *Broadcaster) GetNotificationStream(ctx context.Context, userID int64) <-chan model.StreamEvent {
	events := make(chan model.StreamEvent, b.opts.StreamBuffer)

	b.mu.Lock()
	if b.closed.Load() {
		b.mu.Unlock()
		close(events)
		return events
	}
	id := b.nextID
	b.nextID++
	b.streams[id] = stream{userID: userID, events: events}
	b.mu.Unlock()

	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
		}
		b.removeStream(id)
	}()

	return events
}

func (b *Broadcaster) removeStream(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if s, ok := b.streams[id]; ok {
		delete(b.streams, id)
		close(s.events)
	}
}

// PublishNewNotification announces a new notification with the owner's unread count.
func (b *Broadcaster) PublishNewNotification(ctx context.Context, n model.Notification, unreadCount int) error {
	return b.publish(ctx, model.BroadcastEvent{
		UserID:         n.UserID,
		Type:           model.BroadcastNotification,
		NotificationID: n.ID.String(),
		ContentType:    n.ContentType,
		ContentID:      n.ContentID,
		IsRead:         n.IsRead,
		CreatedAt:      n.CreatedAt,
		Payload: map[string]any{
			"notificationType": n.NotificationType,
			"unreadCount":      unreadCount,
		},
	})
}

// PublishUnreadCountUpdate announces a changed unread count for userID.
func (b *Broadcaster) PublishUnreadCountUpdate(ctx context.Context, userID int64, count int) error {
	return b.publish(ctx, model.BroadcastEvent{
		UserID:    userID,
		Type:      model.BroadcastCountUpdate,
		CreatedAt: b.now().UTC(),
		Payload:   map[string]any{"unreadCount": count},
	})
}

func (b *Broadcaster) publish(ctx context.Context, event model.BroadcastEvent) error {
	if b.closed.Load() {
		return ErrClosed
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal broadcast event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, b.opts.PublishTimeout)
	defer cancel()

	if err := b.broker.Publish(ctx, b.opts.Channel, payload); err != nil {
		b.connected.Store(false)
		return err
	}

	b.connected.Store(true)
	return nil
}

// IsConnected reports the last known state of the broker link.
func (b *Broadcaster) IsConnected() bool {
	return b.connected.Load()
}

// TestConnection pings the broker.
func (b *Broadcaster) TestConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, b.opts.PingTimeout)
	defer cancel()

	if err := b.broker.Ping(ctx); err != nil {
		return fmt.Errorf("broker ping: %w", err)
	}
	return nil
}

// Close unsubscribes, then disconnects from the broker. Repeated calls are no-ops.
func (b *Broadcaster) Close() error {
	var err error

	b.closeOnce.Do(func() {
		b.closed.Store(true)

		if b.sub != nil {
			if subErr := b.sub.Close(); subErr != nil {
				err = fmt.Errorf("unsubscribe: %w", subErr)
			}
			<-b.done
		} else {
			close(b.done)
		}

		if closeErr := b.broker.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close broker: %w", closeErr))
		}

		b.connected.Store(false)
		b.log.Info().Msg("broadcaster closed")
	})

	return err
}
