// Package email provides the email transports used by the email channel.
//
// Client sends through an SMTP relay and suits low-throughput setups. SESClient
// sends through Amazon SES and suits high-throughput setups. Both accept the same
// Message and attach a text/plain alternative derived from the HTML body.
package email

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/jaytaylor/html2text"
	gomail "gopkg.in/mail.v2"
)

// ErrInvalidAddress means the recipient address cannot be used.
var ErrInvalidAddress = errors.New("invalid email address")

// Message is a rendered email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Client sends emails over SMTP.
type Client struct {
	dialer *gomail.Dialer
	from   string
}

// NewClient creates a new SMTP Client.
func NewClient(smtpHost string, smtpPort int, username, password, from string) *Client {
	return &Client{
		dialer: gomail.NewDialer(smtpHost, smtpPort, username, password),
		from:   from,
	}
}

// Send delivers msg. The dial and send happen in a goroutine so that ctx bounds
// the wait even though the SMTP library has no context support.
func (c *Client) Send(ctx context.Context, msg Message) error {
	to, err := normalizeAddress(msg.To)
	if err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", c.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", PlainText(msg.HTML))
	m.AddAlternative("text/html", msg.HTML)

	done := make(chan error, 1)
	go func() {
		done <- c.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("smtp send: %w", ctx.Err())
	}
}

// PlainText converts an HTML body into readable plain text.
func PlainText(html string) string {
	text, err := html2text.FromString(html, html2text.Options{PrettyTables: true})
	if err != nil {
		return html
	}
	return strings.TrimSpace(text)
}

func normalizeAddress(addr string) (string, error) {
	parsed, err := mail.ParseAddress(strings.TrimSpace(addr))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	return parsed.Address, nil
}
