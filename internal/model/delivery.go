package model

import (
	"time"

	"github.com/google/uuid"
)

// ChannelKey names a delivery channel.
type ChannelKey string

const (
	ChannelEmail ChannelKey = "EMAIL"
	ChannelChatA ChannelKey = "CHAT_A"
	ChannelChatB ChannelKey = "CHAT_B"
)

// Channels lists every delivery channel in dispatch order.
var Channels = []ChannelKey{ChannelEmail, ChannelChatA, ChannelChatB}

// Valid reports whether c is one of the known channels.
func (c ChannelKey) Valid() bool {
	switch c {
	case ChannelEmail, ChannelChatA, ChannelChatB:
		return true
	}
	return false
}

// DeliveryStatus is the lifecycle state of a delivery record.
type DeliveryStatus string

const (
	DeliveryPending DeliveryStatus = "PENDING"
	DeliverySent    DeliveryStatus = "SENT"
	DeliveryFailed  DeliveryStatus = "FAILED"
)

// DeliveryRecord is one channel-specific attempt to deliver a notification.
type DeliveryRecord struct {
	ID               uuid.UUID      `json:"id"`
	NotificationID   uuid.UUID      `json:"notificationId"`
	ChannelKey       ChannelKey     `json:"channelKey"`
	Status           DeliveryStatus `json:"status"`
	RetryCount       int            `json:"retryCount"`
	LastAttemptAt    *time.Time     `json:"lastAttemptAt,omitempty"`
	DeliveredAt      *time.Time     `json:"deliveredAt,omitempty"`
	ProcessingTimeMs *int64         `json:"processingTimeMs,omitempty"`
	ErrorMessage     string         `json:"errorMessage,omitempty"`
	ErrorCode        string         `json:"errorCode,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
}

// DeliveryCounts are the raw aggregates of a channel's records in a time window.
type DeliveryCounts struct {
	Total               int
	Sent                int
	Failed              int
	AvgProcessingTimeMs float64
}

// DeliveryStats summarises delivery outcomes for one channel.
type DeliveryStats struct {
	Channel             ChannelKey `json:"channel"`
	WindowHours         int        `json:"windowHours"`
	Total               int        `json:"total"`
	Sent                int        `json:"sent"`
	Failed              int        `json:"failed"`
	SuccessRate         float64    `json:"successRate"`
	AvgProcessingTimeMs float64    `json:"avgProcessingTimeMs"`
}
