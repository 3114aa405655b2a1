package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SendSlack(t *testing.T) {
	var got SlackMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(time.Second)
	msg := SlackMessage{
		Text:   "hello",
		Blocks: []SlackBlock{{Type: "header", Text: &SlackText{Type: "plain_text", Text: "title"}}},
	}

	require.NoError(t, c.SendSlack(context.Background(), srv.URL, msg))
	assert.Equal(t, msg, got)
}

func TestClient_SendDiscord_StatusClassification(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusNoContent, nil},
		{http.StatusNotFound, ErrInvalidWebhook},
		{http.StatusBadRequest, ErrInvalidWebhook},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusBadGateway, ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			err := NewClient(time.Second).SendDiscord(context.Background(), srv.URL, DiscordMessage{Content: "hi"})
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestClient_InvalidURL(t *testing.T) {
	err := NewClient(time.Second).SendSlack(context.Background(), "not a url", SlackMessage{Text: "x"})
	assert.ErrorIs(t, err, ErrInvalidWebhook)

	err = NewClient(time.Second).SendSlack(context.Background(), "ftp://example.com/hook", SlackMessage{Text: "x"})
	assert.ErrorIs(t, err, ErrInvalidWebhook)
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	err := NewClient(20*time.Millisecond).SendSlack(context.Background(), srv.URL, SlackMessage{Text: "x"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
