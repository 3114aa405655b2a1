package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aliskhannn/market-notifier/internal/message"
	"github.com/aliskhannn/market-notifier/pkg/chat"
)

//go:generate mockgen -source=chat.go -destination=../mocks/gateway/chat_mock.go -package=mocks

type slackPoster interface {
	SendSlack(ctx context.Context, webhookURL string, msg chat.SlackMessage) error
}

type discordPoster interface {
	SendDiscord(ctx context.Context, webhookURL string, msg chat.DiscordMessage) error
}

// Slack allows at most ten fields per section block.
const maxSectionFields = 10

// Embed accent colour for chat B cards.
const embedColor = 0x2F80ED

// ChatA delivers messages to a Slack-style webhook.
type ChatA struct {
	client  slackPoster
	timeout time.Duration
}

// NewChatA creates the chat A gateway.
func NewChatA(client slackPoster, timeout time.Duration) *ChatA {
	return &ChatA{client: client, timeout: timeout}
}

// Send posts msg to the webhook in destination as blocks, or as plain text
// when msg has no structured body.
func (g *ChatA) Send(ctx context.Context, destination string, msg message.Message) error {
	if strings.TrimSpace(destination) == "" {
		return InvalidDestination(errors.New("empty webhook url"))
	}

	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	return classifyChat(g.client.SendSlack(ctx, destination, slackPayload(msg)))
}

// ChatB delivers messages to a Discord-style webhook.
type ChatB struct {
	client  discordPoster
	timeout time.Duration
}

// NewChatB creates the chat B gateway.
func NewChatB(client discordPoster, timeout time.Duration) *ChatB {
	return &ChatB{client: client, timeout: timeout}
}

// Send posts msg to the webhook in destination as an embed, or as plain
// content when msg has no structured body.
func (g *ChatB) Send(ctx context.Context, destination string, msg message.Message) error {
	if strings.TrimSpace(destination) == "" {
		return InvalidDestination(errors.New("empty webhook url"))
	}

	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	return classifyChat(g.client.SendDiscord(ctx, destination, discordPayload(msg)))
}

func slackPayload(msg message.Message) chat.SlackMessage {
	out := chat.SlackMessage{Text: msg.Text}
	if !msg.HasStructure() {
		return out
	}

	out.Blocks = append(out.Blocks,
		chat.SlackBlock{Type: "header", Text: &chat.SlackText{Type: "plain_text", Text: msg.Subject}},
		chat.SlackBlock{Type: "section", Text: &chat.SlackText{Type: "mrkdwn", Text: msg.Summary}},
	)

	for start := 0; start < len(msg.Fields); start += maxSectionFields {
		end := min(start+maxSectionFields, len(msg.Fields))

		block := chat.SlackBlock{Type: "section"}
		for _, f := range msg.Fields[start:end] {
			block.Fields = append(block.Fields, chat.SlackText{
				Type: "mrkdwn",
				Text: fmt.Sprintf("*%s*\n%s", f.Label, f.Value),
			})
		}
		out.Blocks = append(out.Blocks, block)
	}

	return out
}

func discordPayload(msg message.Message) chat.DiscordMessage {
	if !msg.HasStructure() {
		return chat.DiscordMessage{Content: msg.Text}
	}

	embed := chat.DiscordEmbed{
		Title:       msg.Subject,
		Description: msg.Summary,
		Color:       embedColor,
	}
	for _, f := range msg.Fields {
		embed.Fields = append(embed.Fields, chat.DiscordEmbedField{Name: f.Label, Value: f.Value})
	}

	return chat.DiscordMessage{Embeds: []chat.DiscordEmbed{embed}}
}

func classifyChat(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, chat.ErrInvalidWebhook):
		return InvalidDestination(err)
	case errors.Is(err, chat.ErrRateLimited):
		return RateLimited(err)
	default:
		return Transient(err)
	}
}
