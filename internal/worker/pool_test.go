package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/retry"
	"golang.org/x/time/rate"

	mocks "github.com/aliskhannn/market-notifier/internal/mocks/worker"
	"github.com/aliskhannn/market-notifier/internal/model"
	"github.com/aliskhannn/market-notifier/internal/rabbitmq/queue"
)

func newPool(t *testing.T) (*Pool, *mocks.MockjobQueue, *mocks.MockjobHandler) {
	ctrl := gomock.NewController(t)

	mockQueue := mocks.NewMockjobQueue(ctrl)
	mockHandler := mocks.NewMockjobHandler(ctrl)
	mockQueue.EXPECT().Channel().Return(model.ChannelEmail).AnyTimes()

	p := NewPool(mockQueue, mockHandler, Limit{PerSecond: 100, Burst: 10}, 1)
	return p, mockQueue, mockHandler
}

func runOne(t *testing.T, p *Pool, mockQueue *mocks.MockjobQueue, job queue.DeliveryJob, strategy retry.Strategy, done <-chan struct{}) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mockQueue.EXPECT().Consume(gomock.Any(), gomock.Any(), strategy).DoAndReturn(
		func(_ context.Context, out chan<- queue.DeliveryJob, _ retry.Strategy) error {
			out <- job
			return nil
		},
	)

	stopped := make(chan struct{})
	go func() {
		p.Run(ctx, strategy)
		close(stopped)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("job was not processed")
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("pool did not stop")
	}
}

func TestPool_Run_Success(t *testing.T) {
	p, mockQueue, mockHandler := newPool(t)
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}
	job := queue.DeliveryJob{DeliveryID: uuid.New(), Channel: model.ChannelEmail, Attempt: 1}
	done := make(chan struct{})

	gomock.InOrder(
		mockQueue.EXPECT().Begin(),
		mockHandler.EXPECT().HandleMessage(gomock.Any(), job).Return(nil),
		mockQueue.EXPECT().Complete(),
		mockQueue.EXPECT().End().Do(func() { close(done) }),
	)

	runOne(t, p, mockQueue, job, strategy, done)
}

func TestPool_Run_FailureSchedulesRetry(t *testing.T) {
	p, mockQueue, mockHandler := newPool(t)
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}
	job := queue.DeliveryJob{DeliveryID: uuid.New(), Channel: model.ChannelEmail, Attempt: 2}
	done := make(chan struct{})

	gomock.InOrder(
		mockQueue.EXPECT().Begin(),
		mockHandler.EXPECT().HandleMessage(gomock.Any(), job).Return(errors.New("send failed")),
		mockQueue.EXPECT().Retry(job, strategy).Return(false, nil),
		mockQueue.EXPECT().End().Do(func() { close(done) }),
	)

	runOne(t, p, mockQueue, job, strategy, done)
}

func TestPool_Run_DiscardedJobIsNotRetried(t *testing.T) {
	p, mockQueue, mockHandler := newPool(t)
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}
	job := queue.DeliveryJob{DeliveryID: uuid.New(), Channel: model.ChannelEmail, Attempt: 1}
	done := make(chan struct{})

	gomock.InOrder(
		mockQueue.EXPECT().Begin(),
		mockHandler.EXPECT().HandleMessage(gomock.Any(), job).Return(fmt.Errorf("%w: record missing", queue.ErrDiscard)),
		mockQueue.EXPECT().End().Do(func() { close(done) }),
	)

	runOne(t, p, mockQueue, job, strategy, done)
}

func TestPool_Process_CanceledBeforeStartReturnsJob(t *testing.T) {
	p, mockQueue, _ := newPool(t)
	strategy := retry.Strategy{Attempts: 1}
	job := queue.DeliveryJob{DeliveryID: uuid.New(), Attempt: 1}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	gomock.InOrder(
		mockQueue.EXPECT().Begin(),
		mockQueue.EXPECT().Return(job, strategy).Return(nil),
		mockQueue.EXPECT().End(),
	)

	p.process(ctx, job, strategy)
}

func TestPool_SetRate(t *testing.T) {
	p, _, _ := newPool(t)

	p.SetRate(Limit{PerSecond: 1, Burst: 0})

	assert.Equal(t, rate.Limit(1), p.limiter.Limit())
	assert.Equal(t, 1, p.limiter.Burst())
}

func TestPool_Run_ContextCancelled(t *testing.T) {
	p, mockQueue, _ := newPool(t)
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}

	ctx, cancel := context.WithCancel(context.Background())
	consuming := make(chan struct{})

	mockQueue.EXPECT().Consume(gomock.Any(), gomock.Any(), strategy).DoAndReturn(
		func(ctx context.Context, _ chan<- queue.DeliveryJob, _ retry.Strategy) error {
			close(consuming)
			<-ctx.Done()
			return nil
		},
	)

	stopped := make(chan struct{})
	go func() {
		p.Run(ctx, strategy)
		close(stopped)
	}()

	<-consuming
	cancel()

	require.Eventually(t, func() bool {
		select {
		case <-stopped:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)
}

func TestPool_Run_ConsumeErrorStopsPool(t *testing.T) {
	p, mockQueue, _ := newPool(t)
	strategy := retry.Strategy{Attempts: 1, Delay: time.Millisecond}

	mockQueue.EXPECT().Consume(gomock.Any(), gomock.Any(), strategy).Return(errors.New("channel closed"))

	stopped := make(chan struct{})
	go func() {
		p.Run(context.Background(), strategy)
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("pool did not stop after consume failed")
	}
}
