package message

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/market-notifier/internal/model"
)

func appleChange(before, after string) model.ContentChange {
	return model.ContentChange{
		ContentType:      model.ContentEarnings,
		ContentID:        1,
		NotificationType: model.NotificationDataChanged,
		Before:           &model.Snapshot{CompanyName: "Apple", Ticker: "AAPL", ActualEPS: before, ForecastEPS: "1.05"},
		Current:          &model.Snapshot{CompanyName: "Apple", Ticker: "AAPL", ActualEPS: after, ForecastEPS: "1.05"},
	}
}

func TestBuild_EarningsDataChanged(t *testing.T) {
	msg, err := Build(appleChange("1.10", "1.25"))
	require.NoError(t, err)

	assert.Contains(t, msg.Subject, "Apple (AAPL)")
	assert.Contains(t, msg.Subject, "실적 정보 변경")
	assert.Equal(t, []Field{{Label: "EPS", Value: "1.10 → 1.25"}}, msg.Fields)
	assert.Contains(t, msg.Text, "EPS: 1.10 → 1.25")
	assert.Contains(t, msg.HTML, "1.10 → 1.25")
	assert.NotContains(t, msg.Text, "예상 EPS")
}

func TestBuild_Deterministic(t *testing.T) {
	change := appleChange("1.10", "1.25")

	first, err := Build(change)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		next, err := Build(change)
		require.NoError(t, err)
		assert.Equal(t, first, next)
	}
}

func TestBuild_DataChangedMentionsOnlyChangedFields(t *testing.T) {
	tests := []struct {
		name    string
		change  model.ContentChange
		present []string
		absent  []string
	}{
		{
			name: "dividend amount changed",
			change: model.ContentChange{
				ContentType:      model.ContentDividend,
				NotificationType: model.NotificationDataChanged,
				Before:           &model.Snapshot{CompanyName: "Coca-Cola", DividendAmount: "0.46", PaymentDate: "2026-10-01"},
				Current:          &model.Snapshot{CompanyName: "Coca-Cola", DividendAmount: "0.48", PaymentDate: "2026-10-01"},
			},
			present: []string{"배당금: 0.46 → 0.48"},
			absent:  []string{"지급일"},
		},
		{
			name: "indicator actual and forecast changed",
			change: model.ContentChange{
				ContentType:      model.ContentIndicator,
				NotificationType: model.NotificationDataChanged,
				Before:           &model.Snapshot{IndicatorName: "CPI", Country: "US", Actual: "", Forecast: "3.1%"},
				Current:          &model.Snapshot{IndicatorName: "CPI", Country: "US", Actual: "3.2%", Forecast: "3.0%"},
			},
			present: []string{"실제: - → 3.2%", "예측: 3.1% → 3.0%", "CPI (US)"},
		},
		{
			name: "nothing changed",
			change: model.ContentChange{
				ContentType:      model.ContentEarnings,
				NotificationType: model.NotificationDataChanged,
				Before:           &model.Snapshot{CompanyName: "Apple", ActualEPS: "1.10"},
				Current:          &model.Snapshot{CompanyName: "Apple", ActualEPS: "1.10"},
			},
			absent: []string{"EPS", "매출"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Build(tt.change)
			require.NoError(t, err)
			for _, s := range tt.present {
				assert.Contains(t, msg.Text, s)
			}
			for _, s := range tt.absent {
				assert.NotContains(t, msg.Text, s)
			}
		})
	}
}

func TestBuild_ReleaseAndPaymentDays(t *testing.T) {
	msg, err := Build(model.ContentChange{
		ContentType:      model.ContentEarnings,
		NotificationType: model.NotificationReleaseDate,
		Current:          &model.Snapshot{CompanyName: "Apple", Ticker: "AAPL", ReleaseDate: "2026-10-30", ForecastEPS: "1.30"},
	})
	require.NoError(t, err)
	assert.Contains(t, msg.Subject, "실적 발표일")
	assert.Contains(t, msg.Text, "발표일: 2026-10-30")
	assert.Contains(t, msg.Text, "예상 EPS: 1.30")
	assert.Contains(t, msg.Text, "실제 EPS: -")

	msg, err = Build(model.ContentChange{
		ContentType:      model.ContentDividend,
		NotificationType: model.NotificationPaymentDate,
		Current:          &model.Snapshot{Ticker: "KO", PaymentDate: "2026-10-17", DividendAmount: "0.48"},
	})
	require.NoError(t, err)
	assert.Equal(t, "[배당 지급일] KO", msg.Subject)
	assert.Contains(t, msg.Text, "배당금: 0.48")
	assert.Contains(t, msg.Text, "배당락일: -")
}

func TestBuild_DefaultFraming(t *testing.T) {
	msg, err := Build(model.ContentChange{
		ContentType:      model.ContentEarnings,
		NotificationType: model.NotificationPaymentDate,
		Current:          &model.Snapshot{},
	})
	require.NoError(t, err)
	assert.Equal(t, "[알림] -", msg.Subject)
	assert.False(t, msg.HasStructure())
}

func TestBuild_MalformedInput(t *testing.T) {
	_, err := Build(model.ContentChange{ContentType: model.ContentEarnings})
	assert.True(t, errors.Is(err, ErrMalformedInput))

	_, err = Build(model.ContentChange{ContentType: "STOCK", Current: &model.Snapshot{}})
	assert.True(t, errors.Is(err, ErrMalformedInput))
}
