package chat

import "context"

// DiscordMessage is a Discord-style webhook payload. Either Content or Embeds must be set.
type DiscordMessage struct {
	Content string         `json:"content,omitempty"`
	Embeds  []DiscordEmbed `json:"embeds,omitempty"`
}

// DiscordEmbed is a structured card.
type DiscordEmbed struct {
	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Fields      []DiscordEmbedField `json:"fields,omitempty"`
}

// DiscordEmbedField is a name/value line of an embed.
type DiscordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}

// SendDiscord posts msg to a Discord-style webhook.
func (c *Client) SendDiscord(ctx context.Context, webhookURL string, msg DiscordMessage) error {
	return c.post(ctx, webhookURL, msg)
}
