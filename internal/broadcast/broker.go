package broadcast

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Broker is the publish/subscribe bus shared by every server process.
type Broker interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (Subscription, error)
	Ping(ctx context.Context) error
	Close() error
}

// Subscription delivers raw payloads published on one channel.
// Messages is closed once the subscription is closed.
type Subscription interface {
	Messages() <-chan []byte
	Close() error
}

// RedisBroker implements Broker over Redis pub/sub.
//
// A connection in subscribe mode cannot issue regular commands, so publishing
// and subscribing use separate clients.
type RedisBroker struct {
	publisher  *redis.Client
	subscriber *redis.Client
}

// NewRedisBroker creates a broker from a publisher and a subscriber client.
func NewRedisBroker(publisher, subscriber *redis.Client) *RedisBroker {
	return &RedisBroker{publisher: publisher, subscriber: subscriber}
}

// Publish sends payload to every current subscriber of channel.
func (b *RedisBroker) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := b.publisher.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", channel, err)
	}
	return nil
}

// Subscribe subscribes to channel and waits for the server confirmation.
func (b *RedisBroker) Subscribe(ctx context.Context, channel string) (Subscription, error) {
	ps := b.subscriber.Subscribe(ctx, channel)
	if _, err := ps.Receive(ctx); err != nil {
		_ = ps.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", channel, err)
	}

	sub := &redisSubscription{ps: ps, out: make(chan []byte)}
	go sub.pump()
	return sub, nil
}

// Ping checks both connections.
func (b *RedisBroker) Ping(ctx context.Context) error {
	if err := b.publisher.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping publisher: %w", err)
	}
	if err := b.subscriber.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping subscriber: %w", err)
	}
	return nil
}

// Close closes both clients.
func (b *RedisBroker) Close() error {
	pubErr := b.publisher.Close()
	subErr := b.subscriber.Close()
	if pubErr != nil {
		return pubErr
	}
	return subErr
}

type redisSubscription struct {
	ps  *redis.PubSub
	out chan []byte
}

func (s *redisSubscription) Messages() <-chan []byte {
	return s.out
}

// pump copies payloads until the underlying channel is closed by ps.Close.
func (s *redisSubscription) pump() {
	defer close(s.out)
	for msg := range s.ps.Channel() {
		s.out <- []byte(msg.Payload)
	}
}

func (s *redisSubscription) Close() error {
	return s.ps.Close()
}
