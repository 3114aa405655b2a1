package broadcast

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/market-notifier/internal/model"
)

// memBroker delivers published payloads to every open subscription in process.
type memBroker struct {
	mu         sync.Mutex
	subs       []*memSubscription
	publishErr error
	pingErr    error
	closed     int
}

func (m *memBroker) Publish(_ context.Context, channel string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.publishErr != nil {
		return m.publishErr
	}
	for _, s := range m.subs {
		if s.channel == channel {
			s.deliver(payload)
		}
	}
	return nil
}

func (m *memBroker) Subscribe(_ context.Context, channel string) (Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &memSubscription{channel: channel, out: make(chan []byte, 256)}
	m.subs = append(m.subs, s)
	return s, nil
}

func (m *memBroker) Ping(context.Context) error {
	return m.pingErr
}

func (m *memBroker) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed++
	return nil
}

type memSubscription struct {
	mu      sync.Mutex
	channel string
	out     chan []byte
	closed  int
}

func (s *memSubscription) deliver(payload []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed == 0 {
		s.out <- payload
	}
}

func (s *memSubscription) Messages() <-chan []byte {
	return s.out
}

func (s *memSubscription) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed++
	if s.closed == 1 {
		close(s.out)
	}
	return nil
}

func startBroadcaster(t *testing.T, broker *memBroker) *Broadcaster {
	t.Helper()

	b := New(broker, Options{StreamBuffer: 64})
	require.NoError(t, b.Start(context.Background()))
	t.Cleanup(func() { _ = b.Close() })
	return b
}

func receive(t *testing.T, events <-chan model.StreamEvent) model.StreamEvent {
	t.Helper()

	select {
	case e, ok := <-events:
		require.True(t, ok, "stream closed")
		return e
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return model.StreamEvent{}
	}
}

func TestBroadcaster_PublishNewNotification(t *testing.T) {
	broker := &memBroker{}
	b := startBroadcaster(t, broker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := b.GetNotificationStream(ctx, 1)

	n := model.Notification{
		ID:               uuid.New(),
		UserID:           1,
		ContentType:      model.ContentEarnings,
		ContentID:        1,
		NotificationType: model.NotificationDataChanged,
		CreatedAt:        time.Date(2025, 7, 30, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, b.PublishNewNotification(context.Background(), n, 1))

	e := receive(t, events)
	assert.Equal(t, n.ID.String(), e.ID)
	assert.Equal(t, model.BroadcastNotification, e.Type)
	assert.Equal(t, model.ContentEarnings, e.ContentType)
	assert.Equal(t, int64(1), e.ContentID)
	assert.False(t, e.IsRead)
	assert.True(t, n.CreatedAt.Equal(e.CreatedAt))
	assert.Equal(t, float64(1), e.Payload["unreadCount"])
	assert.Equal(t, string(model.NotificationDataChanged), e.Payload["notificationType"])
	assert.True(t, b.IsConnected())
}

func TestBroadcaster_PublishUnreadCountUpdate(t *testing.T) {
	broker := &memBroker{}
	b := startBroadcaster(t, broker)
	b.now = func() time.Time { return time.Date(2025, 7, 30, 12, 0, 0, 0, time.UTC) }

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	events := b.GetNotificationStream(ctx, 7)

	require.NoError(t, b.PublishUnreadCountUpdate(context.Background(), 7, 0))

	e := receive(t, events)
	assert.Equal(t, model.BroadcastCountUpdate, e.Type)
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, float64(0), e.Payload["unreadCount"])
}

func TestBroadcaster_StreamIsolation(t *testing.T) {
	broker := &memBroker{}
	b := startBroadcaster(t, broker)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	const users = 5
	const perUser = 10

	streams := make(map[int64]<-chan model.StreamEvent, users)
	for u := int64(1); u <= users; u++ {
		streams[u] = b.GetNotificationStream(ctx, u)
	}

	for i := 0; i < perUser; i++ {
		for u := int64(1); u <= users; u++ {
			require.NoError(t, b.PublishUnreadCountUpdate(context.Background(), u, int(u)*100+i))
		}
	}

	for u, events := range streams {
		for i := 0; i < perUser; i++ {
			e := receive(t, events)
			count := int(e.Payload["unreadCount"].(float64))
			assert.Equal(t, u, int64(count/100), "user %d received event for another user", u)
		}
		select {
		case e := <-events:
			t.Fatalf("user %d received unexpected event %+v", u, e)
		default:
		}
	}
}

func TestBroadcaster_StreamClosedOnContextDone(t *testing.T) {
	broker := &memBroker{}
	b := startBroadcaster(t, broker)

	ctx, cancel := context.WithCancel(context.Background())
	events := b.GetNotificationStream(ctx, 1)
	cancel()

	assert.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)

	b.mu.RLock()
	defer b.mu.RUnlock()
	assert.Empty(t, b.streams)
}

func TestBroadcaster_PublishError(t *testing.T) {
	publishErr := errors.New("connection refused")
	broker := &memBroker{}
	b := startBroadcaster(t, broker)

	broker.mu.Lock()
	broker.publishErr = publishErr
	broker.mu.Unlock()

	err := b.PublishUnreadCountUpdate(context.Background(), 1, 3)
	assert.ErrorIs(t, err, publishErr)
	assert.False(t, b.IsConnected())
}

func TestBroadcaster_TestConnection(t *testing.T) {
	broker := &memBroker{}
	b := New(broker, Options{})

	assert.NoError(t, b.TestConnection(context.Background()))

	broker.pingErr = errors.New("timeout")
	assert.Error(t, b.TestConnection(context.Background()))
}

func TestBroadcaster_CloseIsIdempotent(t *testing.T) {
	broker := &memBroker{}
	b := New(broker, Options{})
	require.NoError(t, b.Start(context.Background()))

	events := b.GetNotificationStream(context.Background(), 1)

	require.NoError(t, b.Close())
	require.NoError(t, b.Close())

	assert.Equal(t, 1, broker.closed)
	assert.Equal(t, 1, broker.subs[0].closed)
	assert.False(t, b.IsConnected())
	assert.ErrorIs(t, b.PublishUnreadCountUpdate(context.Background(), 1, 1), ErrClosed)

	assert.Eventually(t, func() bool {
		_, ok := <-events
		return !ok
	}, time.Second, 10*time.Millisecond)

	_, ok := <-b.GetNotificationStream(context.Background(), 2)
	assert.False(t, ok)
}
