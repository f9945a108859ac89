package notifx

import (
	"net/mail"
	"strings"
)

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	From     string   `json:"from"`
	To       []string `json:"to"`
	CC       []string `json:"cc,omitempty"`
	BCC      []string `json:"bcc,omitempty"`
	ReplyTo  string   `json:"reply_to,omitempty"`
	Subject  string   `json:"subject"`
	TextBody string   `json:"text_body,omitempty"`
	HTMLBody string   `json:"html_body,omitempty"`
}

// Validate checks recipients, subject and body.
func (m EmailMessage) Validate() error {
	if len(m.To) == 0 {
		return notifxErrors.New(ErrInvalidMessage).WithDetail("reason", "no recipients")
	}
	for _, addr := range m.To {
		if !IsValidAddress(addr) {
			return notifxErrors.New(ErrInvalidMessage).
				WithDetail("reason", "invalid recipient").
				WithDetail("address", addr)
		}
	}
	if strings.TrimSpace(m.Subject) == "" {
		return notifxErrors.New(ErrInvalidMessage).WithDetail("reason", "empty subject")
	}
	if m.TextBody == "" && m.HTMLBody == "" {
		return notifxErrors.New(ErrInvalidMessage).WithDetail("reason", "empty body")
	}
	return nil
}

// IsValidAddress reports whether addr parses as a single RFC 5322 address.
func IsValidAddress(addr string) bool {
	if strings.TrimSpace(addr) == "" {
		return false
	}
	_, err := mail.ParseAddress(addr)
	return err == nil
}
