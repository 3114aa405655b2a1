package chat

import "context"

// SlackMessage is a Slack-style incoming webhook payload.
type SlackMessage struct {
	Text   string       `json:"text"`             // plain fallback, also used for notifications
	Blocks []SlackBlock `json:"blocks,omitempty"` // optional rich layout
}

// SlackBlock is a single layout block.
type SlackBlock struct {
	Type   string      `json:"type"`
	Text   *SlackText  `json:"text,omitempty"`
	Fields []SlackText `json:"fields,omitempty"`
}

// SlackText is a text object inside a block.
type SlackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// SendSlack posts msg to a Slack-style webhook.
func (c *Client) SendSlack(ctx context.Context, webhookURL string, msg SlackMessage) error {
	return c.post(ctx, webhookURL, msg)
}
