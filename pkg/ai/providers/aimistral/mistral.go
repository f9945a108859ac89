package aimistral

import (
	"context"
	"encoding/json"
	"net/http"
	"os"

	"github.com/Abraxas-365/faqgen/pkg/ai/llm"
)

// MistralProvider implements llm.LLM over the Mistral chat completions API
type MistralProvider struct {
	client           *HTTPClient
	apiKey           string
	baseURL          string
	httpClient       *http.Client
	maxRetries       int
	defaultChatModel string
}

var _ llm.LLM = (*MistralProvider)(nil)

// NewMistralProvider creates a new Mistral provider
func NewMistralProvider(apiKey string, opts ...ProviderOption) *MistralProvider {
	if apiKey == "" {
		apiKey = os.Getenv("MISTRAL_API_KEY")
	}

	p := &MistralProvider{
		apiKey:           apiKey,
		baseURL:          DefaultBaseURL,
		maxRetries:       MaxRetries,
		defaultChatModel: DefaultChatModel,
	}
	for _, opt := range opts {
		opt(p)
	}

	p.client = NewHTTPClient(p.apiKey, p.baseURL, p.httpClient)
	p.client.maxRetries = p.maxRetries
	return p
}

// ============================================================================
// API Types
// ============================================================================

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float32        `json:"temperature,omitempty"`
	TopP           *float32        `json:"top_p,omitempty"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	Stop           []string        `json:"stop,omitempty"`
	RandomSeed     int64           `json:"random_seed,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Index        int    `json:"index"`
		FinishReason string `json:"finish_reason"`
		Message      struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// ============================================================================
// Chat Implementation
// ============================================================================

// Chat implements the LLM interface
func (p *MistralProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	if p.apiKey == "" {
		return llm.Response{}, errorRegistry.New(ErrMissingAPIKey)
	}
	if len(messages) == 0 {
		return llm.Response{}, errorRegistry.New(ErrInvalidInput).
			WithDetail("error", "messages cannot be empty")
	}

	options := llm.Apply(&llm.ChatOptions{Model: p.defaultChatModel}, opts...)

	req := chatRequest{
		Model:     options.Model,
		Messages:  make([]chatMessage, 0, len(messages)),
		MaxTokens: options.MaxTokens,
		Stop:      options.Stop,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, chatMessage{Role: m.Role, Content: m.Content})
	}
	// Temperature zero is meaningful for extraction, so it is always sent.
	temp := options.Temperature
	req.Temperature = &temp
	if options.TopP != 0 {
		req.TopP = &options.TopP
	}
	if options.Seed != 0 {
		req.RandomSeed = options.Seed
	}
	if options.JSONMode {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, apiErr := p.client.Post(ctx, "/chat/completions", req)
	if apiErr != nil {
		return llm.Response{}, apiErr.
			WithDetail("model", options.Model).
			WithDetail("num_messages", len(messages))
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return llm.Response{}, WrapError(err, ErrAPIResponse).
			WithDetail("error", "failed to parse chat response")
	}
	if len(resp.Choices) == 0 {
		return llm.Response{}, errorRegistry.New(ErrAPIResponse).
			WithDetail("error", "no choices in response")
	}

	return llm.Response{
		Message: llm.Message{
			Role:    llm.RoleAssistant,
			Content: resp.Choices[0].Message.Content,
		},
		Usage: llm.Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}, nil
}
