package aimistral

import (
	"net/http"
	"time"
)

// ProviderOption configures a MistralProvider.
type ProviderOption func(*MistralProvider)

// WithBaseURL points the provider at a compatible endpoint.
func WithBaseURL(url string) ProviderOption {
	return func(p *MistralProvider) { p.baseURL = url }
}

// WithTimeout bounds a single HTTP round trip. Zero keeps DefaultTimeout.
func WithTimeout(timeout time.Duration) ProviderOption {
	return func(p *MistralProvider) {
		if timeout <= 0 {
			return
		}
		if p.httpClient == nil {
			p.httpClient = &http.Client{}
		}
		p.httpClient.Timeout = timeout
	}
}

// WithMaxRetries sets how often a 5xx answer is retried. Zero disables
// retries.
func WithMaxRetries(n int) ProviderOption {
	return func(p *MistralProvider) {
		if n >= 0 {
			p.maxRetries = n
		}
	}
}

// WithDefaultChatModel is used when a call does not pass llm.WithModel.
func WithDefaultChatModel(model string) ProviderOption {
	return func(p *MistralProvider) {
		if model != "" {
			p.defaultChatModel = model
		}
	}
}
