package aimistral

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/asyncx"
	"github.com/Abraxas-365/faqgen/pkg/errx"
)

const (
	DefaultBaseURL   = "https://api.mistral.ai/v1"
	DefaultTimeout   = 2 * time.Minute
	MaxRetries       = 3
	DefaultChatModel = "mistral-small-2501"
)

// HTTPClient posts JSON to the Mistral API. Transient 5xx answers are
// retried; 429 is returned at once so the pipeline owns throttling.
type HTTPClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	maxRetries int
	backoff    asyncx.BackoffFunc
}

func NewHTTPClient(apiKey, baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &HTTPClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
		maxRetries: MaxRetries,
		backoff: func(attempt int) time.Duration {
			return time.Duration(attempt+1) * time.Second
		},
	}
}

// Post sends payload to endpoint and returns the raw 2xx body.
func (c *HTTPClient) Post(ctx context.Context, endpoint string, payload any) ([]byte, *errx.Error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, WrapError(err, ErrInvalidInput).
			WithDetail("error", "failed to marshal request payload")
	}

	policy := asyncx.RetryPolicy{
		MaxAttempts: c.maxRetries + 1,
		Backoff:     c.backoff,
		Retryable:   isTransient,
	}
	body, err := asyncx.Retry(ctx, policy, func(ctx context.Context) ([]byte, error) {
		body, apiErr := c.doRequest(ctx, endpoint, jsonData)
		if apiErr != nil {
			return nil, apiErr
		}
		return body, nil
	})
	if err == nil {
		return body, nil
	}

	var apiErr *errx.Error
	if errors.As(err, &apiErr) {
		return nil, apiErr
	}
	return nil, WrapError(err, ErrAPIRequest).
		WithDetail("error", "request cancelled")
}

func (c *HTTPClient) doRequest(ctx context.Context, endpoint string, body []byte) ([]byte, *errx.Error) {
	url := c.baseURL + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, WrapError(err, ErrAPIRequest).
			WithDetail("error", "failed to create HTTP request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", "faqgen/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, WrapError(err, ErrAPIRequest).
			WithDetail("error", "HTTP request failed").
			WithDetail("url", url)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError(err, ErrAPIResponse).
			WithDetail("error", "failed to read response body")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, ParseAPIError(resp.StatusCode, respBody)
	}
	return respBody, nil
}

// isTransient is true for 5xx answers only.
func isTransient(err error) bool {
	var apiErr *errx.Error
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.Type {
	case errx.TypeValidation, errx.TypeAuthorization, errx.TypeRateLimit:
		return false
	}
	status, ok := apiErr.Details["status_code"].(int)
	return ok && status >= 500 && status < 600
}
