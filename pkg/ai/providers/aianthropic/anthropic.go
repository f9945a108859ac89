package aianthropic

import (
	"context"
	"os"
	"strings"

	"github.com/Abraxas-365/faqgen/pkg/ai/llm"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider implements the LLM interface for Anthropic Claude
type AnthropicProvider struct {
	client       anthropic.Client
	apiKey       string
	defaultModel string
}

var _ llm.LLM = (*AnthropicProvider)(nil)

// NewAnthropicProvider creates a new Anthropic provider
func NewAnthropicProvider(apiKey string, opts ...option.RequestOption) *AnthropicProvider {
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}

	options := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := anthropic.NewClient(options...)

	return &AnthropicProvider{
		client:       client,
		apiKey:       apiKey,
		defaultModel: "claude-sonnet-4-20250514",
	}
}

// WithDefaultModel sets the model used when a call names none
func (p *AnthropicProvider) WithDefaultModel(model string) *AnthropicProvider {
	if model != "" {
		p.defaultModel = model
	}
	return p
}

// ============================================================================
// Chat Implementation
// ============================================================================

// Chat implements the LLM interface. System messages become the system
// prompt; the rest must alternate user and assistant.
func (p *AnthropicProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	if p.apiKey == "" {
		return llm.Response{}, errorRegistry.New(ErrMissingAPIKey)
	}

	if len(messages) == 0 {
		return llm.Response{}, errorRegistry.New(ErrEmptyMessages)
	}

	options := llm.Apply(&llm.ChatOptions{Model: p.defaultModel}, opts...)

	systemBlocks, nonSystemMsgs := extractSystemPrompt(messages)
	if options.JSONMode {
		systemBlocks = append(systemBlocks, anthropic.TextBlockParam{
			Text: "Respond with JSON only, without any surrounding prose.",
		})
	}

	anthropicMsgs, err := convertMessages(nonSystemMsgs)
	if err != nil {
		return llm.Response{}, err
	}
	if len(anthropicMsgs) == 0 {
		return llm.Response{}, errorRegistry.New(ErrEmptyMessages)
	}

	maxTokens := int64(4096)
	if options.MaxTokens > 0 {
		maxTokens = int64(options.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(options.Model),
		MaxTokens:   maxTokens,
		Messages:    anthropicMsgs,
		Temperature: anthropic.Float(float64(options.Temperature)),
	}

	if len(systemBlocks) > 0 {
		params.System = systemBlocks
	}
	if options.TopP != 0 {
		params.TopP = anthropic.Float(float64(options.TopP))
	}
	if len(options.Stop) > 0 {
		params.StopSequences = options.Stop
	}

	message, err := p.client.Messages.New(ctx, params)
	if err != nil {
		return llm.Response{}, ParseAnthropicError(err).
			WithDetail("model", options.Model).
			WithDetail("num_messages", len(messages))
	}

	return convertFromAnthropicResponse(message), nil
}

// ============================================================================
// Conversions
// ============================================================================

func extractSystemPrompt(messages []llm.Message) ([]anthropic.TextBlockParam, []llm.Message) {
	var system []anthropic.TextBlockParam
	var rest []llm.Message

	for _, msg := range messages {
		if msg.Role == llm.RoleSystem {
			system = append(system, anthropic.TextBlockParam{
				Text: msg.Content,
			})
		} else {
			rest = append(rest, msg)
		}
	}

	return system, rest
}

// convertMessages converts llm.Message slice to Anthropic MessageParams
func convertMessages(messages []llm.Message) ([]anthropic.MessageParam, error) {
	result := make([]anthropic.MessageParam, 0, len(messages))

	for _, msg := range messages {
		switch msg.Role {
		case llm.RoleUser:
			result = append(result, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case llm.RoleAssistant:
			result = append(result, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			return nil, errorRegistry.New(ErrUnsupportedRole).
				WithDetail("role", msg.Role)
		}
	}

	return result, nil
}

func convertFromAnthropicResponse(msg *anthropic.Message) llm.Response {
	var content strings.Builder

	for _, block := range msg.Content {
		if block.Type == "text" {
			content.WriteString(block.Text)
		}
	}

	return llm.Response{
		Message: llm.Message{
			Role:    llm.RoleAssistant,
			Content: content.String(),
		},
		Usage: llm.Usage{
			PromptTokens:     int(msg.Usage.InputTokens),
			CompletionTokens: int(msg.Usage.OutputTokens),
			TotalTokens:      int(msg.Usage.InputTokens) + int(msg.Usage.OutputTokens),
		},
	}
}
