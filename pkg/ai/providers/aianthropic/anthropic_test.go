package aianthropic

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Abraxas-365/faqgen/pkg/ai/llm"
	"github.com/Abraxas-365/faqgen/pkg/errx"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_SplitsSystemPrompt(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id":"msg_1","type":"message","role":"assistant","model":"m",
			"content":[{"type":"text","text":"[{\"question\":\"q\",\"answer\":\"a\"}]"}],
			"stop_reason":"end_turn",
			"usage":{"input_tokens":5,"output_tokens":7}
		}`))
	}))
	defer srv.Close()

	p := NewAnthropicProvider("key", option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	resp, err := p.Chat(t.Context(), []llm.Message{
		llm.NewSystemMessage("be brief"),
		llm.NewUserMessage("hello"),
	})
	require.NoError(t, err)

	assert.Contains(t, resp.Message.Content, "question")
	assert.Equal(t, 12, resp.Usage.TotalTokens)
	assert.NotNil(t, body["system"])
	msgs, ok := body["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, msgs, 1)
}

func TestParseAnthropicError(t *testing.T) {
	assert.True(t, errx.HasCode(ParseAnthropicError(errors.New("Overloaded")), ErrAPIRateLimit))
	assert.True(t, errx.HasCode(ParseAnthropicError(errors.New("authentication_error")), ErrAPIUnauthorized))
	assert.Equal(t, errx.TypeRateLimit, errx.TypeOf(ParseAnthropicError(errors.New("rate_limit_error"))))
}

func TestChat_OnlySystemMessages(t *testing.T) {
	p := NewAnthropicProvider("key")
	_, err := p.Chat(t.Context(), []llm.Message{llm.NewSystemMessage("x")})
	assert.True(t, errx.HasCode(err, ErrEmptyMessages))
}
