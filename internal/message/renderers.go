package message

import (
	"fmt"

	"github.com/aliskhannn/market-notifier/internal/model"
)

var earningsTracked = []tracked{
	{"EPS", func(s *model.Snapshot) string { return s.ActualEPS }},
	{"예상 EPS", func(s *model.Snapshot) string { return s.ForecastEPS }},
	{"매출", func(s *model.Snapshot) string { return s.ActualRevenue }},
	{"예상 매출", func(s *model.Snapshot) string { return s.ForecastRevenue }},
}

var dividendTracked = []tracked{
	{"배당금", func(s *model.Snapshot) string { return s.DividendAmount }},
	{"지급일", func(s *model.Snapshot) string { return s.PaymentDate }},
}

var indicatorTracked = []tracked{
	{"실제", func(s *model.Snapshot) string { return s.Actual }},
	{"예측", func(s *model.Snapshot) string { return s.Forecast }},
}

func earnings(change model.ContentChange) content {
	cur := change.Current
	name := companyName(cur)

	switch change.NotificationType {
	case model.NotificationReleaseDate:
		return content{
			subject: fmt.Sprintf("[실적 발표일] %s", name),
			summary: fmt.Sprintf("오늘은 %s의 실적 발표일입니다.", name),
			fields: []Field{
				{Label: "발표일", Value: dateWithTiming(cur.ReleaseDate, cur.ReleaseTiming)},
				{Label: "예상 EPS", Value: orDash(cur.ForecastEPS)},
				{Label: "실제 EPS", Value: orDash(cur.ActualEPS)},
				{Label: "예상 매출", Value: orDash(cur.ForecastRevenue)},
				{Label: "실제 매출", Value: orDash(cur.ActualRevenue)},
			},
		}
	case model.NotificationDataChanged:
		return content{
			subject: fmt.Sprintf("[실적 정보 변경] %s", name),
			summary: fmt.Sprintf("%s의 실적 정보가 변경되었습니다.", name),
			fields:  changedFields(change.Before, cur, earningsTracked),
		}
	}
	return genericContent(name)
}

func dividend(change model.ContentChange) content {
	cur := change.Current
	name := companyName(cur)

	switch change.NotificationType {
	case model.NotificationPaymentDate:
		return content{
			subject: fmt.Sprintf("[배당 지급일] %s", name),
			summary: fmt.Sprintf("오늘은 %s의 배당금 지급일입니다.", name),
			fields: []Field{
				{Label: "지급일", Value: orDash(cur.PaymentDate)},
				{Label: "배당금", Value: orDash(cur.DividendAmount)},
				{Label: "이전 배당금", Value: orDash(cur.PreviousDividend)},
				{Label: "배당수익률", Value: orDash(cur.DividendYield)},
				{Label: "배당락일", Value: orDash(cur.ExDividendDate)},
			},
		}
	case model.NotificationDataChanged:
		return content{
			subject: fmt.Sprintf("[배당 정보 변경] %s", name),
			summary: fmt.Sprintf("%s의 배당 정보가 변경되었습니다.", name),
			fields:  changedFields(change.Before, cur, dividendTracked),
		}
	}
	return genericContent(name)
}

func indicator(change model.ContentChange) content {
	cur := change.Current
	name := indicatorName(cur)

	switch change.NotificationType {
	case model.NotificationReleaseDate:
		return content{
			subject: fmt.Sprintf("[경제지표 발표일] %s", name),
			summary: fmt.Sprintf("오늘은 %s 발표일입니다.", name),
			fields: []Field{
				{Label: "발표일", Value: dateWithTiming(cur.ReleaseDate, cur.ReleaseTiming)},
				{Label: "예측", Value: orDash(cur.Forecast)},
				{Label: "실제", Value: orDash(cur.Actual)},
				{Label: "이전", Value: orDash(cur.Previous)},
			},
		}
	case model.NotificationDataChanged:
		return content{
			subject: fmt.Sprintf("[경제지표 변경] %s", name),
			summary: fmt.Sprintf("%s 지표가 변경되었습니다.", name),
			fields:  changedFields(change.Before, cur, indicatorTracked),
		}
	}
	return genericContent(name)
}
