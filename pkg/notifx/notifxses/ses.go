package notifxses

import (
	"context"
	"errors"
	"sort"

	"github.com/Abraxas-365/faqgen/pkg/notifx"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/smithy-go"
)

// API is the subset of *ses.Client the provider calls.
type API interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESProvider implements notifx.EmailSender using AWS SES.
type SESProvider struct {
	client           API
	fromAddress      string
	configurationSet string
}

var _ notifx.EmailSender = (*SESProvider)(nil)

// NewSESProvider creates a new SES email provider.
func NewSESProvider(client API, fromAddress string) *SESProvider {
	return &SESProvider{
		client:      client,
		fromAddress: fromAddress,
	}
}

// WithConfigurationSet sets the default configuration set applied when a
// send does not pass notifx.WithConfigID.
func (p *SESProvider) WithConfigurationSet(name string) *SESProvider {
	p.configurationSet = name
	return p
}

// SendEmail sends a single email via SES.
func (p *SESProvider) SendEmail(ctx context.Context, msg notifx.EmailMessage, opts ...notifx.Option) error {
	input := p.buildInput(msg, notifx.ApplySendOptions(opts))

	if _, err := p.client.SendEmail(ctx, input); err != nil {
		code := ErrSendFailed
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "Throttling" {
			code = ErrThrottled
		}
		return sesErrors.NewWithCause(code, err).
			WithDetail("to", msg.To).
			WithDetail("subject", msg.Subject)
	}
	return nil
}

func (p *SESProvider) buildInput(msg notifx.EmailMessage, so notifx.SendOptions) *ses.SendEmailInput {
	from := msg.From
	if from == "" {
		from = p.fromAddress
	}

	body := &types.Body{}
	if msg.TextBody != "" {
		body.Text = utf8Content(msg.TextBody)
	}
	if msg.HTMLBody != "" {
		body.Html = utf8Content(msg.HTMLBody)
	}

	input := &ses.SendEmailInput{
		Source: aws.String(from),
		Destination: &types.Destination{
			ToAddresses:  msg.To,
			CcAddresses:  msg.CC,
			BccAddresses: msg.BCC,
		},
		Message: &types.Message{
			Subject: utf8Content(msg.Subject),
			Body:    body,
		},
	}

	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}

	configSet := so.ConfigID
	if configSet == "" {
		configSet = p.configurationSet
	}
	if configSet != "" {
		input.ConfigurationSetName = aws.String(configSet)
	}

	// Sorted so requests are deterministic.
	keys := make([]string, 0, len(so.Tags))
	for k := range so.Tags {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		input.Tags = append(input.Tags, types.MessageTag{
			Name:  aws.String(k),
			Value: aws.String(so.Tags[k]),
		})
	}
	return input
}

func utf8Content(s string) *types.Content {
	return &types.Content{
		Data:    aws.String(s),
		Charset: aws.String("UTF-8"),
	}
}
