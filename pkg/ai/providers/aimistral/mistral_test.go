package aimistral

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/ai/llm"
	"github.com/Abraxas-365/faqgen/pkg/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChat_SendsRequestAndParsesReply(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"[]"}}],"usage":{"prompt_tokens":3,"completion_tokens":1,"total_tokens":4}}`))
	}))
	defer srv.Close()

	p := NewMistralProvider("key", WithBaseURL(srv.URL))
	resp, err := p.Chat(t.Context(), []llm.Message{llm.NewUserMessage("hi")},
		llm.WithModel("mistral-medium"), llm.WithTemperature(0))
	require.NoError(t, err)

	assert.Equal(t, "[]", resp.Message.Content)
	assert.Equal(t, 4, resp.Usage.TotalTokens)
	assert.Equal(t, "mistral-medium", got.Model)
	require.NotNil(t, got.Temperature)
	assert.Zero(t, *got.Temperature)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Nil(t, got.ResponseFormat)
}

func TestChat_JSONModeSetsResponseFormat(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"{}"}}]}`))
	}))
	defer srv.Close()

	p := NewMistralProvider("key", WithBaseURL(srv.URL))
	_, err := p.Chat(t.Context(), []llm.Message{llm.NewUserMessage("hi")}, llm.WithJSONMode())
	require.NoError(t, err)

	require.NotNil(t, got.ResponseFormat)
	assert.Equal(t, "json_object", got.ResponseFormat.Type)
}

func TestChat_RateLimitIsTypedAndNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"message":"Service tier capacity exceeded for this model."}`))
	}))
	defer srv.Close()

	p := NewMistralProvider("key", WithBaseURL(srv.URL))
	_, err := p.Chat(t.Context(), []llm.Message{llm.NewUserMessage("hi")})
	require.Error(t, err)

	assert.Equal(t, errx.TypeRateLimit, errx.TypeOf(err))
	assert.True(t, llm.IsRateLimited(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestChat_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	p := NewMistralProvider("key", WithBaseURL(srv.URL))
	p.client.backoff = func(int) time.Duration { return time.Millisecond }

	resp, err := p.Chat(t.Context(), []llm.Message{llm.NewUserMessage("hi")})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Message.Content)
	assert.Equal(t, int32(3), calls.Load())
}

func TestChat_MissingKey(t *testing.T) {
	t.Setenv("MISTRAL_API_KEY", "")
	p := NewMistralProvider("")
	_, err := p.Chat(t.Context(), []llm.Message{llm.NewUserMessage("hi")})
	assert.True(t, errx.HasCode(err, ErrMissingAPIKey))
}
