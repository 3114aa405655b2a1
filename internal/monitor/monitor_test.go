package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mocks "github.com/aliskhannn/market-notifier/internal/mocks/monitor"
	"github.com/aliskhannn/market-notifier/internal/model"
)

func TestNew_InvalidSpec(t *testing.T) {
	_, err := New(nil, "every five minutes")
	assert.Error(t, err)
}

func TestNew_DefaultSpec(t *testing.T) {
	m, err := New(nil, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultSpec, m.spec)
}

func TestMonitor_Check(t *testing.T) {
	ctrl := gomock.NewController(t)
	tracker := mocks.NewMockdeliveryTracker(ctrl)

	m, err := New(tracker, DefaultSpec)
	require.NoError(t, err)

	for _, ch := range model.Channels {
		tracker.EXPECT().Stats(gomock.Any(), ch, 24).Return(model.DeliveryStats{Channel: ch, WindowHours: 24, Total: 2, Sent: 1, Failed: 1, SuccessRate: 50}, nil)
	}
	tracker.EXPECT().ListRetryCandidates(gomock.Any(), 3, 100).Return([]model.DeliveryRecord{{ID: uuid.New()}}, nil)

	report, err := m.Check(context.Background())
	require.NoError(t, err)
	assert.Len(t, report.Stats, len(model.Channels))
	assert.Equal(t, 1, report.RetryCandidates)
}

func TestMonitor_Check_ContinuesOnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	tracker := mocks.NewMockdeliveryTracker(ctrl)
	statsErr := errors.New("db down")

	m, err := New(tracker, DefaultSpec)
	require.NoError(t, err)

	tracker.EXPECT().Stats(gomock.Any(), model.ChannelEmail, 24).Return(model.DeliveryStats{}, statsErr)
	tracker.EXPECT().Stats(gomock.Any(), model.ChannelChatA, 24).Return(model.DeliveryStats{Channel: model.ChannelChatA}, nil)
	tracker.EXPECT().Stats(gomock.Any(), model.ChannelChatB, 24).Return(model.DeliveryStats{Channel: model.ChannelChatB}, nil)
	tracker.EXPECT().ListRetryCandidates(gomock.Any(), 3, 100).Return(nil, nil)

	report, err := m.Check(context.Background())
	assert.ErrorIs(t, err, statsErr)
	assert.Len(t, report.Stats, 2)
	assert.Zero(t, report.RetryCandidates)
}

func TestMonitor_StartRunsScheduledCheck(t *testing.T) {
	ctrl := gomock.NewController(t)
	tracker := mocks.NewMockdeliveryTracker(ctrl)

	m, err := New(tracker, "@every 1s")
	require.NoError(t, err)

	ran := make(chan struct{}, 1)
	tracker.EXPECT().Stats(gomock.Any(), gomock.Any(), 24).Return(model.DeliveryStats{}, nil).MinTimes(3)
	tracker.EXPECT().ListRetryCandidates(gomock.Any(), 3, 100).DoAndReturn(func(context.Context, int, int) ([]model.DeliveryRecord, error) {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil, nil
	}).MinTimes(1)

	require.NoError(t, m.Start(context.Background()))

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("scheduled check did not run")
	}
	m.Stop()
}
