package gateway

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aliskhannn/market-notifier/internal/message"
	mocks "github.com/aliskhannn/market-notifier/internal/mocks/gateway"
	"github.com/aliskhannn/market-notifier/pkg/chat"
	"github.com/aliskhannn/market-notifier/pkg/email"
)

func richMessage() message.Message {
	return message.Message{
		Subject: "[실적 정보 변경] Apple (AAPL)",
		Summary: "Apple (AAPL)의 실적 정보가 변경되었습니다.",
		Fields:  []message.Field{{Label: "EPS", Value: "1.10 → 1.25"}},
		HTML:    "<h2>[실적 정보 변경] Apple (AAPL)</h2>",
		Text:    "[실적 정보 변경] Apple (AAPL)\nApple (AAPL)의 실적 정보가 변경되었습니다.\nEPS: 1.10 → 1.25",
	}
}

func plainMessage() message.Message {
	return message.Message{Subject: "[알림] -", Summary: "-에 대한 업데이트가 있습니다.", Text: "[알림] -"}
}

func TestEmail_Send(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sender := mocks.NewMockemailSender(ctrl)
	g := NewEmail(sender, time.Second)
	msg := richMessage()

	sender.EXPECT().
		Send(gomock.Any(), email.Message{To: "user@example.com", Subject: msg.Subject, HTML: msg.HTML}).
		DoAndReturn(func(ctx context.Context, _ email.Message) error {
			_, ok := ctx.Deadline()
			assert.True(t, ok, "send must carry a deadline")
			return nil
		})

	require.NoError(t, g.Send(context.Background(), "user@example.com", msg))
}

func TestEmail_Send_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		sendErr  error
		wantCode string
	}{
		{"invalid address", fmt.Errorf("%w: x", email.ErrInvalidAddress), CodeInvalidDestination},
		{"timeout", fmt.Errorf("smtp send: %w", context.DeadlineExceeded), CodeTimeout},
		{"provider", errors.New("535 auth failed"), CodeProviderError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			sender := mocks.NewMockemailSender(ctrl)
			sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(tt.sendErr)

			err := NewEmail(sender, time.Second).Send(context.Background(), "user@example.com", richMessage())
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, CodeOf(err))
		})
	}
}

func TestEmail_Send_EmptyDestination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	err := NewEmail(mocks.NewMockemailSender(ctrl), time.Second).Send(context.Background(), " ", richMessage())
	assert.Equal(t, CodeInvalidDestination, CodeOf(err))
	assert.False(t, IsRetryable(err))
}

func TestChatA_Send_Blocks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockslackPoster(ctrl)
	g := NewChatA(client, time.Second)

	client.EXPECT().
		SendSlack(gomock.Any(), "https://hooks.example.com/a", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, msg chat.SlackMessage) error {
			assert.Equal(t, richMessage().Text, msg.Text)
			require.Len(t, msg.Blocks, 3)
			assert.Equal(t, "header", msg.Blocks[0].Type)
			assert.Equal(t, "*EPS*\n1.10 → 1.25", msg.Blocks[2].Fields[0].Text)
			return nil
		})

	require.NoError(t, g.Send(context.Background(), "https://hooks.example.com/a", richMessage()))
}

func TestChatA_Send_PlainFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockslackPoster(ctrl)
	client.EXPECT().
		SendSlack(gomock.Any(), "https://hooks.example.com/a", chat.SlackMessage{Text: "[알림] -"}).
		Return(nil)

	require.NoError(t, NewChatA(client, time.Second).Send(context.Background(), "https://hooks.example.com/a", plainMessage()))
}

func TestChatA_Send_ErrorMapping(t *testing.T) {
	tests := []struct {
		name      string
		sendErr   error
		wantCode  string
		retryable bool
	}{
		{"invalid webhook", fmt.Errorf("%w: 404", chat.ErrInvalidWebhook), CodeInvalidDestination, false},
		{"rate limited", chat.ErrRateLimited, CodeRateLimited, true},
		{"unavailable", chat.ErrUnavailable, CodeTransient, true},
		{"timeout", fmt.Errorf("post: %w", context.DeadlineExceeded), CodeTimeout, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			client := mocks.NewMockslackPoster(ctrl)
			client.EXPECT().SendSlack(gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.sendErr)

			err := NewChatA(client, time.Second).Send(context.Background(), "https://hooks.example.com/a", richMessage())
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, CodeOf(err))
			assert.Equal(t, tt.retryable, IsRetryable(err))
		})
	}
}

func TestChatB_Send_Embed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockdiscordPoster(ctrl)
	client.EXPECT().
		SendDiscord(gomock.Any(), "https://hooks.example.com/b", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, msg chat.DiscordMessage) error {
			assert.Empty(t, msg.Content)
			require.Len(t, msg.Embeds, 1)
			assert.Equal(t, "[실적 정보 변경] Apple (AAPL)", msg.Embeds[0].Title)
			assert.Equal(t, []chat.DiscordEmbedField{{Name: "EPS", Value: "1.10 → 1.25"}}, msg.Embeds[0].Fields)
			return nil
		})

	require.NoError(t, NewChatB(client, time.Second).Send(context.Background(), "https://hooks.example.com/b", richMessage()))
}

func TestChatB_Send_PlainFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mocks.NewMockdiscordPoster(ctrl)
	client.EXPECT().
		SendDiscord(gomock.Any(), "https://hooks.example.com/b", chat.DiscordMessage{Content: "[알림] -"}).
		Return(nil)

	require.NoError(t, NewChatB(client, time.Second).Send(context.Background(), "https://hooks.example.com/b", plainMessage()))
}

func TestSlackPayload_SplitsFields(t *testing.T) {
	msg := richMessage()
	msg.Fields = nil
	for i := 0; i < 12; i++ {
		msg.Fields = append(msg.Fields, message.Field{Label: fmt.Sprintf("f%d", i), Value: "v"})
	}

	p := slackPayload(msg)
	require.Len(t, p.Blocks, 4)
	assert.Len(t, p.Blocks[2].Fields, 10)
	assert.Len(t, p.Blocks[3].Fields, 2)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, "", CodeOf(nil))
	assert.Equal(t, CodeBuildFailed, CodeOf(fmt.Errorf("render: %w", message.ErrMalformedInput)))
	assert.Equal(t, CodeUnknown, CodeOf(errors.New("boom")))
	assert.False(t, IsRetryable(message.ErrMalformedInput))
}
