package aiopenai

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/faqgen/pkg/ai/llm"
	"github.com/Abraxas-365/faqgen/pkg/errx"
	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_AgainstCompatibleEndpoint(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id":"x","object":"chat.completion","created":1,"model":"m",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"hello"}}],
			"usage":{"prompt_tokens":2,"completion_tokens":1,"total_tokens":3}
		}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("key", option.WithBaseURL(srv.URL), option.WithMaxRetries(0)).
		WithDefaultModel("mistral-medium")

	resp, err := p.Chat(t.Context(), []llm.Message{
		llm.NewSystemMessage("sys"),
		llm.NewUserMessage("hi"),
	}, llm.WithTemperature(0.5), llm.WithJSONMode())
	require.NoError(t, err)

	assert.Equal(t, "hello", resp.Message.Content)
	assert.Equal(t, 3, resp.Usage.TotalTokens)
	assert.Equal(t, "mistral-medium", body["model"])
	assert.InDelta(t, 0.5, body["temperature"], 1e-6)
	assert.NotNil(t, body["response_format"])
}

func TestChat_RateLimitIsTyped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"slow down","type":"rate_limit"}}`))
	}))
	defer srv.Close()

	p := NewOpenAIProvider("key", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	_, err := p.Chat(t.Context(), []llm.Message{llm.NewUserMessage("hi")})
	require.Error(t, err)
	assert.True(t, errx.HasCode(err, ErrAPIRateLimit))
	assert.True(t, llm.IsRateLimited(err))
}

func TestChat_RejectsUnknownRole(t *testing.T) {
	p := NewOpenAIProvider("key")
	_, err := p.Chat(t.Context(), []llm.Message{{Role: "tool", Content: "x"}})
	assert.True(t, errx.HasCode(err, ErrUnsupportedRole))
}

func TestParseOpenAIError_MessageFallback(t *testing.T) {
	assert.True(t, errx.HasCode(ParseOpenAIError(errors.New("Rate limit reached")), ErrAPIRateLimit))
	assert.True(t, errx.HasCode(ParseOpenAIError(errors.New("boom")), ErrAPIRequest))
}
