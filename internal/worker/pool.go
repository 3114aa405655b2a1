package worker

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"
	"golang.org/x/time/rate"

	"github.com/aliskhannn/market-notifier/internal/model"
	"github.com/aliskhannn/market-notifier/internal/rabbitmq/queue"
)

//go:generate mockgen -source=pool.go -destination=../mocks/worker/mock.go -package=mocks

type jobQueue interface {
	Channel() model.ChannelKey
	Consume(ctx context.Context, out chan<- queue.DeliveryJob, strategy retry.Strategy) error
	Begin()
	End()
	Complete()
	Return(job queue.DeliveryJob, strategy retry.Strategy) error
	Retry(job queue.DeliveryJob, strategy retry.Strategy) (bool, error)
}

type jobHandler interface {
	HandleMessage(ctx context.Context, job queue.DeliveryJob) error
}

// Limit is a token-bucket budget for outbound sends.
type Limit struct {
	PerSecond float64 `mapstructure:"per_second"`
	Burst     int     `mapstructure:"burst"`
}

// Pool runs the workers of one channel. All workers share one rate limiter,
// which is the only throttle in front of the channel's provider.
type Pool struct {
	queue   jobQueue
	handler jobHandler
	limiter *rate.Limiter
	workers int
	log     zerolog.Logger
}

// NewPool creates a worker pool for the queue's channel.
func NewPool(q jobQueue, h jobHandler, limit Limit, workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		queue:   q,
		handler: h,
		limiter: rate.NewLimiter(rate.Limit(limit.PerSecond), max(limit.Burst, 1)),
		workers: workers,
		log:     zlog.Logger.With().Str("channel", string(q.Channel())).Logger(),
	}
}

// Channel returns the channel served by the pool.
func (p *Pool) Channel() model.ChannelKey {
	return p.queue.Channel()
}

// SetRate changes the pool's send budget while it is running.
func (p *Pool) SetRate(limit Limit) {
	p.limiter.SetLimit(rate.Limit(limit.PerSecond))
	p.limiter.SetBurst(max(limit.Burst, 1))
	p.log.Info().Float64("per_second", limit.PerSecond).Int("burst", limit.Burst).Msg("rate limit updated")
}

// Run consumes and processes jobs until ctx is done or consuming fails. It
// returns once every worker and the consumer have stopped.
func (p *Pool) Run(ctx context.Context, strategy retry.Strategy) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	msgChan := make(chan queue.DeliveryJob)
	consumed := make(chan struct{})

	go func() {
		defer close(consumed)
		if err := p.queue.Consume(ctx, msgChan, strategy); err != nil {
			p.log.Error().Err(err).Msg("failed to consume messages, stopping pool")
			cancel()
		}
	}()

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			p.log.Info().Int("worker", id).Msg("worker started")

			for {
				select {
				case <-ctx.Done():
					p.log.Info().Int("worker", id).Msg("worker shutting down")
					return
				case job := <-msgChan:
					p.process(ctx, job, strategy)
				}
			}
		}(i)
	}

	wg.Wait()
	cancel()
	<-consumed
	p.log.Info().Msg("pool stopped")
}

func (p *Pool) process(ctx context.Context, job queue.DeliveryJob, strategy retry.Strategy) {
	p.queue.Begin()
	defer p.queue.End()

	log := p.log.With().Str("delivery_id", job.DeliveryID.String()).Int("attempt", job.Attempt).Logger()

	if err := p.limiter.Wait(ctx); err != nil {
		// Shutting down before the job started; hand it back untouched.
		if err := p.queue.Return(job, strategy); err != nil {
			log.Error().Err(err).Msg("failed to return job to queue")
		}
		return
	}

	err := p.handler.HandleMessage(ctx, job)
	if err == nil {
		p.queue.Complete()
		return
	}

	if errors.Is(err, queue.ErrDiscard) {
		log.Error().Err(err).Msg("job discarded")
		return
	}

	abandoned, rerr := p.queue.Retry(job, strategy)
	switch {
	case rerr != nil:
		log.Error().Err(rerr).AnErr("cause", err).Msg("failed to schedule retry")
	case abandoned:
		log.Error().Err(err).Msg("job failed on its last attempt, moved to dead-letter queue")
	default:
		log.Warn().Err(err).Msg("job failed, retry scheduled")
	}
}
