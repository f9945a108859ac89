package faq

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/Abraxas-365/faqgen/pkg/notifx"
)

const (
	MinFAQCount     = 1
	MaxFAQCount     = 50
	DefaultFAQCount = 10
)

// Request is a validated generation request. It is built once at the
// boundary by NewRequest and trusted by every stage afterwards.
type Request struct {
	URL      string
	Platform Platform
	Language Language
	FAQCount int

	// PlatformInput is the platform exactly as submitted, echoed in results.
	PlatformInput string

	// NotifyEmail receives an outcome e-mail when set.
	NotifyEmail string
}

// NewRequest validates raw submission fields. count must already be an
// integer; use ParseCount for untyped input.
func NewRequest(rawURL, platform, lang string, count int, notifyEmail string) (Request, error) {
	rawURL = strings.TrimSpace(rawURL)
	platform = strings.TrimSpace(platform)
	if rawURL == "" || platform == "" {
		return Request{}, faqErrors.New(ErrMissingURL)
	}

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Request{}, faqErrors.New(ErrInvalidURL).WithDetail("url", rawURL)
	}

	p, err := ParsePlatform(platform)
	if err != nil {
		return Request{}, err
	}

	if count < MinFAQCount || count > MaxFAQCount {
		return Request{}, faqErrors.New(ErrInvalidCount).WithDetail("faq_count", count)
	}

	notifyEmail = strings.TrimSpace(notifyEmail)
	if notifyEmail != "" && !notifx.IsValidAddress(notifyEmail) {
		return Request{}, faqErrors.New(ErrInvalidEmail).WithDetail("notify_email", notifyEmail)
	}

	return Request{
		URL:           rawURL,
		Platform:      p,
		Language:      ParseLanguage(lang),
		FAQCount:      count,
		PlatformInput: platform,
		NotifyEmail:   notifyEmail,
	}, nil
}

// ParseCount reads faq_count from a JSON value. Missing or null means
// DefaultFAQCount. Integers and integer strings are accepted; anything
// else is an invalid count. The range is checked by NewRequest.
func ParseCount(raw json.RawMessage) (int, error) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return DefaultFAQCount, nil
	}

	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, faqErrors.New(ErrInvalidCount).WithDetail("faq_count", s)
		}
		s = strings.TrimSpace(str)
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, faqErrors.NewWithMessage(ErrInvalidCount, "FAQ count must be an integer").WithDetail("faq_count", s)
	}
	return n, nil
}

// Result is the payload stored on a completed job.
type Result struct {
	FAQContent string `json:"faq_content"`
	URL        string `json:"url"`
	Language   string `json:"language"`
	Platform   string `json:"platform"`
	FAQCount   int    `json:"faq_count"`
}

// NewResult echoes the request parameters around the rendered document.
func NewResult(req Request, content string) Result {
	return Result{
		FAQContent: content,
		URL:        req.URL,
		Language:   req.Language.String(),
		Platform:   req.PlatformInput,
		FAQCount:   req.FAQCount,
	}
}

// Validate re-checks a Request that was not built by NewRequest.
func (r Request) Validate() error {
	_, err := NewRequest(r.URL, string(r.Platform), r.Language.String(), r.FAQCount, r.NotifyEmail)
	return err
}
