package model

import (
	"time"

	"github.com/google/uuid"
)

// ContentType identifies the kind of tracked item a notification refers to.
type ContentType string

const (
	ContentEarnings  ContentType = "EARNINGS"
	ContentDividend  ContentType = "DIVIDEND"
	ContentIndicator ContentType = "ECONOMIC_INDICATOR"
)

// Valid reports whether t is one of the known content types.
func (t ContentType) Valid() bool {
	switch t {
	case ContentEarnings, ContentDividend, ContentIndicator:
		return true
	}
	return false
}

// NotificationType describes what happened to the tracked item.
type NotificationType string

const (
	NotificationDataChanged NotificationType = "DATA_CHANGED"
	NotificationReleaseDate NotificationType = "RELEASE_DATE"
	NotificationPaymentDate NotificationType = "PAYMENT_DATE"
)

// Notification represents a notification entity in the system.
type Notification struct {
	ID               uuid.UUID        `json:"id"`               // unique identifier for the notification
	UserID           int64            `json:"userId"`           // owner of the notification
	ContentType      ContentType      `json:"contentType"`      // earnings, dividend or economic indicator
	ContentID        int64            `json:"contentId"`        // id of the tracked item
	NotificationType NotificationType `json:"notificationType"` // data changed, release date or payment date
	IsRead           bool             `json:"isRead"`           // read flag, the only mutable field
	CreatedAt        time.Time        `json:"createdAt"`        // timestamp when the notification was created
}

// NotificationPage is one page of a user's notifications.
type NotificationPage struct {
	Items []Notification `json:"items"`
	Total int            `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}
