package model

import (
	"encoding/json"
	"time"
)

// BroadcastType tells live clients how to apply an event.
type BroadcastType string

const (
	BroadcastNotification BroadcastType = "notification"
	BroadcastCountUpdate  BroadcastType = "count_update"
)

// BroadcastEvent is the message passed through the broker between server processes.
// It is never stored.
type BroadcastEvent struct {
	UserID         int64          `json:"userId"`
	Type           BroadcastType  `json:"type"`
	NotificationID string         `json:"notificationId,omitempty"`
	ContentType    ContentType    `json:"contentType,omitempty"`
	ContentID      int64          `json:"contentId,omitempty"`
	IsRead         bool           `json:"isRead"`
	CreatedAt      time.Time      `json:"createdAt"`
	Payload        map[string]any `json:"payload,omitempty"`
}

// StreamEvent is what a live client connection receives.
type StreamEvent struct {
	ID          string         `json:"id"`
	Type        BroadcastType  `json:"type"`
	ContentType ContentType    `json:"contentType,omitempty"`
	ContentID   int64          `json:"contentId,omitempty"`
	IsRead      bool           `json:"isRead"`
	CreatedAt   time.Time      `json:"createdAt"`
	Payload     map[string]any `json:"payload,omitempty"`
}

// MarshalJSON flattens Payload into the top-level object the client reads.
// Fixed fields win over payload keys of the same name.
func (e StreamEvent) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(e.Payload)+6)
	for k, v := range e.Payload {
		out[k] = v
	}
	out["id"] = e.ID
	out["type"] = e.Type
	out["isRead"] = e.IsRead
	out["createdAt"] = e.CreatedAt
	if e.ContentType != "" {
		out["contentType"] = e.ContentType
	}
	if e.ContentID != 0 {
		out["contentId"] = e.ContentID
	}
	return json.Marshal(out)
}
