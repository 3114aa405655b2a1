package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// SESAPI is the subset of the SES client used for sending.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESClient sends emails through Amazon SES.
type SESClient struct {
	api              SESAPI
	from             string
	configurationSet string
}

// NewSESClient wraps an existing SES API client.
func NewSESClient(api SESAPI, from, configurationSet string) *SESClient {
	return &SESClient{api: api, from: from, configurationSet: configurationSet}
}

// NewSESClientFromEnv loads AWS credentials from the default chain for region.
func NewSESClientFromEnv(ctx context.Context, region, from, configurationSet string) (*SESClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	// Retries are owned by the delivery job runner.
	api := ses.NewFromConfig(cfg, func(o *ses.Options) {
		o.RetryMaxAttempts = 1
	})
	return NewSESClient(api, from, configurationSet), nil
}

// Send delivers msg through SES.
func (c *SESClient) Send(ctx context.Context, msg Message) error {
	to, err := normalizeAddress(msg.To)
	if err != nil {
		return err
	}

	input := &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: []string{to}},
		Source:      aws.String(c.from),
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
			Body: &types.Body{
				Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
				Text: &types.Content{Data: aws.String(PlainText(msg.HTML)), Charset: aws.String("UTF-8")},
			},
		},
	}
	if c.configurationSet != "" {
		input.ConfigurationSetName = aws.String(c.configurationSet)
	}

	if _, err := c.api.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}
