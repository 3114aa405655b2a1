package model

// UserChannelSettings holds a user's per-channel delivery preferences.
//
// EmailAddress is not part of the settings row; it is joined from the users table so
// that a delivery job carries its destination.
type UserChannelSettings struct {
	UserID               int64  `json:"userId"`
	NotificationsEnabled bool   `json:"notificationsEnabled"`
	EmailEnabled         bool   `json:"emailEnabled"`
	EmailAddress         string `json:"emailAddress,omitempty"`
	ChatAEnabled         bool   `json:"chatAEnabled"`
	ChatAWebhookURL      string `json:"chatAWebhookUrl,omitempty"`
	ChatBEnabled         bool   `json:"chatBEnabled"`
	ChatBWebhookURL      string `json:"chatBWebhookUrl,omitempty"`
}

// DefaultSettings returns the row lazily created for a user on first read.
func DefaultSettings(userID int64) UserChannelSettings {
	return UserChannelSettings{
		UserID:               userID,
		NotificationsEnabled: true,
		EmailEnabled:         true,
	}
}
