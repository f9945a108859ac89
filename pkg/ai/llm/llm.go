// Package llm is the provider-neutral chat contract the pipeline talks to.
// Each provider package adapts one SDK to it.
package llm

import (
	"context"
	"net/http"
	"strings"

	"github.com/Abraxas-365/faqgen/pkg/errx"
)

// LLM is a chat completion backend.
type LLM interface {
	Chat(ctx context.Context, messages []Message, opts ...Option) (Response, error)
}

// Response is one completion.
type Response struct {
	Message Message `json:"message"`
	Usage   Usage   `json:"usage"`
}

// ChatOptions holds per-call settings. Zero values mean "provider default".
type ChatOptions struct {
	Model       string
	Temperature float32
	TopP        float32
	MaxTokens   int
	Stop        []string
	Seed        int64
	User        string
	JSONMode    bool
}

// Option mutates ChatOptions.
type Option func(*ChatOptions)

// DefaultOptions returns the options every provider starts from.
func DefaultOptions() *ChatOptions {
	return &ChatOptions{}
}

// Apply builds ChatOptions from base plus opts.
func Apply(base *ChatOptions, opts ...Option) *ChatOptions {
	if base == nil {
		base = DefaultOptions()
	}
	for _, opt := range opts {
		opt(base)
	}
	return base
}

func WithModel(model string) Option {
	return func(o *ChatOptions) { o.Model = model }
}

func WithTemperature(t float32) Option {
	return func(o *ChatOptions) { o.Temperature = t }
}

func WithTopP(p float32) Option {
	return func(o *ChatOptions) { o.TopP = p }
}

func WithMaxTokens(n int) Option {
	return func(o *ChatOptions) { o.MaxTokens = n }
}

func WithStop(stop ...string) Option {
	return func(o *ChatOptions) { o.Stop = stop }
}

func WithSeed(seed int64) Option {
	return func(o *ChatOptions) { o.Seed = seed }
}

// WithJSONMode asks the provider for a JSON-only reply where supported.
func WithJSONMode() Option {
	return func(o *ChatOptions) { o.JSONMode = true }
}

// IsRateLimited reports whether err is provider throttling: an errx error
// typed RATE_LIMIT or carrying status 429, or an untyped error whose text
// names 429 or capacity exhaustion.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}
	if errx.TypeOf(err) == errx.TypeRateLimit || errx.StatusOf(err) == http.StatusTooManyRequests {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") || strings.Contains(msg, "capacity")
}
