package notifxconsole

import (
	"context"
	"strings"

	"github.com/Abraxas-365/faqgen/pkg/logx"
	"github.com/Abraxas-365/faqgen/pkg/notifx"
)

// ConsoleProvider prints emails to the terminal via logx. Intended for
// development and tests.
type ConsoleProvider struct {
	showBody bool
}

var _ notifx.EmailSender = (*ConsoleProvider)(nil)

// NewConsoleProvider creates a new console email provider. When showBody
// is set the text body is logged at INFO instead of DEBUG.
func NewConsoleProvider(showBody bool) *ConsoleProvider {
	return &ConsoleProvider{showBody: showBody}
}

// SendEmail logs the email instead of sending it.
func (p *ConsoleProvider) SendEmail(ctx context.Context, msg notifx.EmailMessage, opts ...notifx.Option) error {
	so := notifx.ApplySendOptions(opts)

	fields := logx.Fields{
		"from":    msg.From,
		"to":      strings.Join(msg.To, ", "),
		"subject": msg.Subject,
	}
	for k, v := range so.Tags {
		fields["tag_"+k] = v
	}
	entry := logx.WithContext(ctx).WithFields(fields)
	entry.Info("📧 notifx/console: email sent (dev mode)")

	if msg.TextBody == "" {
		return nil
	}
	if p.showBody {
		entry.Infof("notifx/console: text body:\n%s", msg.TextBody)
	} else {
		entry.Debugf("notifx/console: text body:\n%s", msg.TextBody)
	}
	return nil
}
