package email

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *ses.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESClient_Send(t *testing.T) {
	api := &fakeSES{}
	c := NewSESClient(api, "noreply@example.com", "tracking")

	err := c.Send(context.Background(), Message{
		To:      " Jane <jane@example.com> ",
		Subject: "[실적 정보 변경] Apple (AAPL)",
		HTML:    "<p>Apple의 실적 정보가 변경되었습니다.</p>",
	})
	require.NoError(t, err)

	require.NotNil(t, api.input)
	assert.Equal(t, []string{"jane@example.com"}, api.input.Destination.ToAddresses)
	assert.Equal(t, "noreply@example.com", aws.ToString(api.input.Source))
	assert.Equal(t, "tracking", aws.ToString(api.input.ConfigurationSetName))
	assert.Equal(t, "[실적 정보 변경] Apple (AAPL)", aws.ToString(api.input.Message.Subject.Data))
	assert.Contains(t, aws.ToString(api.input.Message.Body.Text.Data), "Apple의 실적 정보가 변경되었습니다.")
	assert.NotContains(t, aws.ToString(api.input.Message.Body.Text.Data), "<p>")
}

func TestSESClient_Send_InvalidAddress(t *testing.T) {
	api := &fakeSES{}
	c := NewSESClient(api, "noreply@example.com", "")

	err := c.Send(context.Background(), Message{To: "not-an-address", Subject: "s", HTML: "b"})
	assert.ErrorIs(t, err, ErrInvalidAddress)
	assert.Nil(t, api.input)
}

func TestSESClient_Send_ProviderError(t *testing.T) {
	providerErr := errors.New("throttled")
	c := NewSESClient(&fakeSES{err: providerErr}, "noreply@example.com", "")

	err := c.Send(context.Background(), Message{To: "a@example.com", Subject: "s", HTML: "b"})
	assert.ErrorIs(t, err, providerErr)
}

func TestClient_Send_InvalidAddress(t *testing.T) {
	c := NewClient("127.0.0.1", 1, "", "", "noreply@example.com")

	err := c.Send(context.Background(), Message{To: "bad", Subject: "s", HTML: "b"})
	assert.ErrorIs(t, err, ErrInvalidAddress)
}

func TestPlainText(t *testing.T) {
	text := PlainText("<h1>Title</h1><p>Body line</p>")
	assert.Contains(t, text, "Title")
	assert.Contains(t, text, "Body line")
	assert.NotContains(t, text, "<")
}
