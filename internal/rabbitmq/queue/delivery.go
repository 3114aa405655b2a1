package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/rabbitmq"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/market-notifier/internal/model"
)

const (
	ExchangeName       = "notify-exchange"
	DefaultPrefix      = "notify"
	DefaultMaxAttempts = 3
	DefaultRetryBase   = 5 * time.Second
)

// ErrDiscard marks a job failure that must not be retried.
var ErrDiscard = errors.New("job discarded")

// DeliveryJob is the payload of one delivery attempt. It carries everything a
// worker needs to render and send without reading the user's settings again.
type DeliveryJob struct {
	DeliveryID     uuid.UUID           `json:"delivery_id"`
	NotificationID uuid.UUID           `json:"notification_id"`
	Channel        model.ChannelKey    `json:"channel"`
	Destination    string              `json:"destination"`
	Change         model.ContentChange `json:"change"`
	Attempt        int                 `json:"attempt"` // 1-based
}

// Topology configures the queue names and retry policy.
type Topology struct {
	Prefix      string        `mapstructure:"prefix"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	RetryBase   time.Duration `mapstructure:"retry_base"`
}

func (t Topology) withDefaults() Topology {
	if t.Prefix == "" {
		t.Prefix = DefaultPrefix
	}
	if t.MaxAttempts <= 0 {
		t.MaxAttempts = DefaultMaxAttempts
	}
	if t.RetryBase <= 0 {
		t.RetryBase = DefaultRetryBase
	}
	return t
}

// MainQueueName returns the queue that holds ready jobs of a channel.
func MainQueueName(prefix string, channel model.ChannelKey) string {
	return prefix + "-" + strings.ToLower(strings.ReplaceAll(string(channel), "_", "-"))
}

// RetryQueueName returns the n-th backoff tier of a main queue.
func RetryQueueName(mainQueue string, n int) string {
	return fmt.Sprintf("%s-retry-%d", mainQueue, n)
}

// DLQName returns the dead-letter queue of a main queue.
func DLQName(mainQueue string) string {
	return mainQueue + "-dlq"
}

// RetryDelay returns the backoff before attempt n+1, doubling from base.
func RetryDelay(base time.Duration, n int) time.Duration {
	return base << (n - 1)
}

// DeliveryQueue is the job queue of a single channel.
//
// A failed job is republished into retry tier <attempt>, whose message TTL
// dead-letters it back into the main queue once the backoff has elapsed. After
// the last attempt the job is moved to the dead-letter queue.
type DeliveryQueue struct {
	channel     model.ChannelKey
	ch          *rabbitmq.Channel
	mainQueue   string
	consumerTag string
	dlq         string
	maxAttempts int

	Publisher *rabbitmq.Publisher // routes through the exchange
	Direct    *rabbitmq.Publisher // default exchange, addresses queues by name
	Consumer  *rabbitmq.Consumer

	active    atomic.Int64
	completed atomic.Int64
}

// NewDeliveryQueue declares the exchange, the channel's main queue, its retry
// tiers and its dead-letter queue.
func NewDeliveryQueue(ch *rabbitmq.Channel, channel model.ChannelKey, topology Topology) (*DeliveryQueue, error) {
	t := topology.withDefaults()

	exchange := rabbitmq.NewExchange(ExchangeName, "direct")
	if err := exchange.BindToChannel(ch); err != nil {
		return nil, fmt.Errorf("failed to bind to exchange: %w", err)
	}

	qm := rabbitmq.NewQueueManager(ch)
	mainName := MainQueueName(t.Prefix, channel)
	dlqName := DLQName(mainName)

	_, err := qm.DeclareQueue(dlqName, rabbitmq.QueueConfig{Durable: true})
	if err != nil {
		return nil, fmt.Errorf("failed to declare DLQ queue: %w", err)
	}

	for n := 1; n < t.MaxAttempts; n++ {
		retryArgs := map[string]interface{}{
			"x-dead-letter-exchange":    "",
			"x-dead-letter-routing-key": mainName,
			"x-message-ttl":             int32(RetryDelay(t.RetryBase, n).Milliseconds()),
		}

		_, err = qm.DeclareQueue(RetryQueueName(mainName, n), rabbitmq.QueueConfig{
			Durable: true,
			Args:    retryArgs,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to declare retry queue %d: %w", n, err)
		}
	}

	mainArgs := map[string]interface{}{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": dlqName,
	}

	mainQ, err := qm.DeclareQueue(mainName, rabbitmq.QueueConfig{
		Durable: true,
		Args:    mainArgs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to declare main queue: %w", err)
	}

	if err := ch.QueueBind(mainQ.Name, routingKey(channel), exchange.Name(), false, nil); err != nil {
		return nil, fmt.Errorf("failed to bind the exchange to the main queue: %w", err)
	}

	consumerCfg := rabbitmq.NewConsumerConfig(mainQ.Name)
	consumerCfg.Consumer = mainQ.Name + "-" + uuid.NewString()

	return &DeliveryQueue{
		channel:     channel,
		ch:          ch,
		mainQueue:   mainQ.Name,
		consumerTag: consumerCfg.Consumer,
		dlq:         dlqName,
		maxAttempts: t.MaxAttempts,
		Publisher:   rabbitmq.NewPublisher(ch, exchange.Name()),
		Direct:      rabbitmq.NewPublisher(ch, ""),
		Consumer:    rabbitmq.NewConsumer(ch, consumerCfg),
	}, nil
}

func routingKey(channel model.ChannelKey) string {
	return strings.ToLower(string(channel))
}

// Channel returns the channel this queue serves.
func (q *DeliveryQueue) Channel() model.ChannelKey {
	return q.channel
}

// Enqueue publishes a new job as its first attempt.
func (q *DeliveryQueue) Enqueue(job DeliveryJob, strategy retry.Strategy) error {
	job.Channel = q.channel
	job.Attempt = 1

	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	return q.Publisher.PublishWithRetry(body, routingKey(q.channel), "application/json", strategy)
}

// Consume decodes jobs from the main queue into out until ctx is done.
//
// Messages are acknowledged before they reach out, so once ctx is done the
// broker consumer is cancelled and every job still held here is published back
// to the main queue. Consume returns after the consumer has stopped.
func (q *DeliveryQueue) Consume(ctx context.Context, out chan<- DeliveryJob, strategy retry.Strategy) error {
	msgChan := make(chan []byte)
	stopped := make(chan struct{})
	forwarded := make(chan struct{})

	go func() {
		defer close(forwarded)
		q.forward(ctx, msgChan, out, stopped, func(job DeliveryJob) error {
			return q.Return(job, strategy)
		})
	}()

	go func() {
		select {
		case <-ctx.Done():
			if err := q.ch.Cancel(q.consumerTag, false); err != nil {
				zlog.Logger.Error().Err(err).Str("queue", q.mainQueue).Msg("failed to cancel consumer")
			}
		case <-stopped:
		}
	}()

	err := q.Consumer.ConsumeWithRetry(msgChan, strategy)
	close(stopped)
	<-forwarded

	return err
}

// forward passes decoded jobs to out. After ctx is done, the job waiting for a
// worker and everything still arriving on msgChan go to giveBack until stopped
// is closed.
func (q *DeliveryQueue) forward(
	ctx context.Context,
	msgChan <-chan []byte,
	out chan<- DeliveryJob,
	stopped <-chan struct{},
	giveBack func(DeliveryJob) error,
) {
	for {
		select {
		case <-ctx.Done():
			q.drain(msgChan, stopped, giveBack)
			return
		case <-stopped:
			return
		case m, ok := <-msgChan:
			if !ok {
				return
			}

			job, ok := q.decode(m)
			if !ok {
				continue
			}

			select {
			case out <- job:
			case <-ctx.Done():
				q.handBack(job, giveBack)
				q.drain(msgChan, stopped, giveBack)
				return
			}
		}
	}
}

func (q *DeliveryQueue) drain(msgChan <-chan []byte, stopped <-chan struct{}, giveBack func(DeliveryJob) error) {
	for {
		select {
		case <-stopped:
			return
		case m, ok := <-msgChan:
			if !ok {
				return
			}
			if job, ok := q.decode(m); ok {
				q.handBack(job, giveBack)
			}
		}
	}
}

func (q *DeliveryQueue) decode(m []byte) (DeliveryJob, bool) {
	var job DeliveryJob
	if err := json.Unmarshal(m, &job); err != nil {
		zlog.Logger.Error().Err(err).Str("queue", q.mainQueue).Msg("failed to unmarshal job")
		return DeliveryJob{}, false
	}
	return job, true
}

func (q *DeliveryQueue) handBack(job DeliveryJob, giveBack func(DeliveryJob) error) {
	if err := giveBack(job); err != nil {
		zlog.Logger.Error().Err(err).Str("queue", q.mainQueue).Str("delivery_id", job.DeliveryID.String()).
			Msg("failed to return job to queue")
	}
}

// Begin records that a job has been taken by a worker.
func (q *DeliveryQueue) Begin() {
	q.active.Add(1)
}

// End records that a worker let go of a job.
func (q *DeliveryQueue) End() {
	q.active.Add(-1)
}

// Complete records that a job finished successfully.
func (q *DeliveryQueue) Complete() {
	q.completed.Add(1)
}

// Return puts a job back into the main queue without consuming an attempt.
func (q *DeliveryQueue) Return(job DeliveryJob, strategy retry.Strategy) error {
	body, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal job: %w", err)
	}

	return q.Direct.PublishWithRetry(body, q.mainQueue, "application/json", strategy)
}

// Retry schedules the next attempt of a failed job, or dead-letters it when
// the attempt ceiling has been reached. It reports whether the job was
// abandoned.
func (q *DeliveryQueue) Retry(job DeliveryJob, strategy retry.Strategy) (bool, error) {
	target, next, abandoned := nextHop(q.mainQueue, job.Attempt, q.maxAttempts)
	job.Attempt = next

	body, err := json.Marshal(job)
	if err != nil {
		return abandoned, fmt.Errorf("failed to marshal job: %w", err)
	}

	if err := q.Direct.PublishWithRetry(body, target, "application/json", strategy); err != nil {
		return abandoned, fmt.Errorf("failed to publish to %s: %w", target, err)
	}

	return abandoned, nil
}

// nextHop picks where a job goes after failing attempt. Below the ceiling it
// waits in retry tier <attempt> and comes back as attempt+1; at the ceiling it
// is dead-lettered unchanged.
func nextHop(mainQueue string, attempt, maxAttempts int) (target string, next int, abandoned bool) {
	if attempt < 1 {
		attempt = 1
	}
	if attempt >= maxAttempts {
		return DLQName(mainQueue), attempt, true
	}
	return RetryQueueName(mainQueue, attempt), attempt + 1, false
}

// Status reports queue depths and this process's counters.
func (q *DeliveryQueue) Status() (model.QueueStatus, error) {
	status := model.QueueStatus{
		Channel:   q.channel,
		Active:    q.active.Load(),
		Completed: q.completed.Load(),
	}

	waiting, err := q.depth(q.mainQueue)
	if err != nil {
		return model.QueueStatus{}, err
	}
	status.Waiting = waiting

	for n := 1; n < q.maxAttempts; n++ {
		delayed, err := q.depth(RetryQueueName(q.mainQueue, n))
		if err != nil {
			return model.QueueStatus{}, err
		}
		status.Delayed += delayed
	}

	failed, err := q.depth(q.dlq)
	if err != nil {
		return model.QueueStatus{}, err
	}
	status.Failed = failed

	return status, nil
}

// RequeueDeadLettered moves every job currently in the dead-letter queue back
// into the main queue as a fresh first attempt and returns how many moved.
func (q *DeliveryQueue) RequeueDeadLettered(strategy retry.Strategy) (int, error) {
	pending, err := q.depth(q.dlq)
	if err != nil {
		return 0, err
	}

	moved := 0
	for i := 0; i < pending; i++ {
		d, ok, err := q.ch.Get(q.dlq, false)
		if err != nil {
			return moved, fmt.Errorf("failed to get from %s: %w", q.dlq, err)
		}
		if !ok {
			break
		}

		var job DeliveryJob
		if err := json.Unmarshal(d.Body, &job); err != nil {
			zlog.Logger.Error().Err(err).Str("queue", q.dlq).Msg("dropping undecodable job")
			_ = d.Ack(false)
			continue
		}

		if err := q.Enqueue(job, strategy); err != nil {
			_ = d.Nack(false, true)
			return moved, fmt.Errorf("failed to requeue job %s: %w", job.DeliveryID, err)
		}

		if err := d.Ack(false); err != nil {
			return moved, fmt.Errorf("failed to ack job %s: %w", job.DeliveryID, err)
		}
		moved++
	}

	return moved, nil
}

func (q *DeliveryQueue) depth(name string) (int, error) {
	info, err := q.ch.QueueDeclarePassive(name, true, false, false, false, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to inspect queue %s: %w", name, err)
	}
	return info.Messages, nil
}
