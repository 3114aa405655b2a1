package dto

import "github.com/aliskhannn/market-notifier/internal/model"

// ListQuery is the pagination of the notification list.
type ListQuery struct {
	Page  int `form:"page" validate:"omitempty,min=1"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}

// StatsQuery selects the channels and window of delivery statistics.
type StatsQuery struct {
	Channel string `form:"channel" validate:"omitempty,oneof=EMAIL CHAT_A CHAT_B"`
	Hours   int    `form:"hours" validate:"omitempty,min=1,max=720"`
}

// CandidatesQuery bounds the retry candidate listing.
type CandidatesQuery struct {
	MaxRetry int `form:"max_retry" validate:"omitempty,min=1,max=10"`
	Limit    int `form:"limit" validate:"omitempty,min=1,max=1000"`
}

// ContentEventRequest is a change of a tracked item reported by the domain layer.
type ContentEventRequest struct {
	ContentType      model.ContentType      `json:"contentType" validate:"required,oneof=EARNINGS DIVIDEND ECONOMIC_INDICATOR"`
	ContentID        int64                  `json:"contentId" validate:"required,gt=0"`
	NotificationType model.NotificationType `json:"notificationType" validate:"required,oneof=DATA_CHANGED RELEASE_DATE PAYMENT_DATE"`
	CompanyID        int64                  `json:"companyId" validate:"omitempty,gt=0"`
	Before           *model.Snapshot        `json:"before"`
	Current          *model.Snapshot        `json:"current" validate:"required"`
}

// Change converts the request to the domain change.
func (r ContentEventRequest) Change() model.ContentChange {
	return model.ContentChange{
		ContentType:      r.ContentType,
		ContentID:        r.ContentID,
		NotificationType: r.NotificationType,
		CompanyID:        r.CompanyID,
		Before:           r.Before,
		Current:          r.Current,
	}
}

// Count is the response of bulk operations.
type Count struct {
	Count int64 `json:"count"`
}

// UnreadCount is the unread counter of a user.
type UnreadCount struct {
	UnreadCount int `json:"unreadCount"`
}
