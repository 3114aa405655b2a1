package gateway

import (
	"context"
	"errors"
	"html"
	"strings"
	"time"

	"github.com/aliskhannn/market-notifier/internal/message"
	"github.com/aliskhannn/market-notifier/pkg/email"
)

//go:generate mockgen -source=email.go -destination=../mocks/gateway/email_mock.go -package=mocks

type emailSender interface {
	Send(ctx context.Context, msg email.Message) error
}

// Email delivers rendered messages to an email address.
type Email struct {
	sender  emailSender
	timeout time.Duration
}

// NewEmail creates an email gateway over an SMTP or SES sender.
func NewEmail(sender emailSender, timeout time.Duration) *Email {
	return &Email{sender: sender, timeout: timeout}
}

// Send sends msg to the address in destination.
func (g *Email) Send(ctx context.Context, destination string, msg message.Message) error {
	if strings.TrimSpace(destination) == "" {
		return InvalidDestination(errors.New("empty email address"))
	}

	body := msg.HTML
	if body == "" {
		body = "<pre>" + html.EscapeString(msg.Text) + "</pre>"
	}

	ctx, cancel := withTimeout(ctx, g.timeout)
	defer cancel()

	err := g.sender.Send(ctx, email.Message{To: destination, Subject: msg.Subject, HTML: body})
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, email.ErrInvalidAddress):
		return InvalidDestination(err)
	case errors.Is(err, context.DeadlineExceeded):
		return Transient(err)
	default:
		return Provider(err)
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
