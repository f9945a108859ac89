package aiopenai

import (
	"context"
	"os"

	"github.com/Abraxas-365/faqgen/pkg/ai/llm"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

// OpenAIProvider implements the LLM interface for OpenAI and any endpoint
// that speaks the chat completions protocol.
type OpenAIProvider struct {
	client       openai.Client
	apiKey       string
	defaultModel string
}

var _ llm.LLM = (*OpenAIProvider)(nil)

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(apiKey string, opts ...option.RequestOption) *OpenAIProvider {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	options := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	client := openai.NewClient(options...)

	return &OpenAIProvider{
		client:       client,
		apiKey:       apiKey,
		defaultModel: "gpt-4o",
	}
}

// WithDefaultModel sets the model used when a call names none
func (p *OpenAIProvider) WithDefaultModel(model string) *OpenAIProvider {
	if model != "" {
		p.defaultModel = model
	}
	return p
}

// ============================================================================
// Chat Implementation
// ============================================================================

// Chat implements the LLM interface
func (p *OpenAIProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	if p.apiKey == "" {
		return llm.Response{}, errorRegistry.New(ErrMissingAPIKey)
	}

	if len(messages) == 0 {
		return llm.Response{}, errorRegistry.New(ErrEmptyMessages)
	}

	options := llm.Apply(&llm.ChatOptions{Model: p.defaultModel}, opts...)

	openAIMessages, err := ConvertMessages(messages)
	if err != nil {
		return llm.Response{}, err
	}

	params := openai.ChatCompletionNewParams{
		Messages: openAIMessages,
		Model:    options.Model,
	}
	ApplyOptions(&params, options)

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return llm.Response{}, ParseOpenAIError(err).
			WithDetail("model", options.Model).
			WithDetail("num_messages", len(messages))
	}

	return ConvertFromOpenAIResponse(completion)
}

// ============================================================================
// Conversions
// ============================================================================

// ApplyOptions copies ChatOptions onto chat completion params. The Azure
// provider shares it.
func ApplyOptions(params *openai.ChatCompletionNewParams, options *llm.ChatOptions) {
	params.Temperature = openai.Float(float64(options.Temperature))
	if options.TopP != 0 {
		params.TopP = openai.Float(float64(options.TopP))
	}
	if options.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(options.MaxTokens))
	}
	if len(options.Stop) > 0 {
		params.Stop = openai.ChatCompletionNewParamsStopUnion{
			OfStringArray: options.Stop,
		}
	}
	if options.Seed != 0 {
		params.Seed = openai.Int(options.Seed)
	}
	if options.User != "" {
		params.User = openai.String(options.User)
	}
	if options.JSONMode {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		}
	}
}

func convertToOpenAIMessage(msg llm.Message) (openai.ChatCompletionMessageParamUnion, error) {
	switch msg.Role {
	case llm.RoleSystem:
		return openai.SystemMessage(msg.Content), nil
	case llm.RoleUser:
		return openai.UserMessage(msg.Content), nil
	case llm.RoleAssistant:
		return openai.AssistantMessage(msg.Content), nil
	default:
		return openai.ChatCompletionMessageParamUnion{},
			errorRegistry.New(ErrUnsupportedRole).
				WithDetail("role", msg.Role)
	}
}

// ConvertFromOpenAIResponse maps the first choice to an llm.Response
func ConvertFromOpenAIResponse(completion *openai.ChatCompletion) (llm.Response, error) {
	if completion == nil || len(completion.Choices) == 0 {
		return llm.Response{}, errorRegistry.New(ErrNoChoicesInResponse)
	}

	choice := completion.Choices[0]

	return llm.Response{
		Message: llm.Message{
			Role:    llm.RoleAssistant,
			Content: choice.Message.Content,
		},
		Usage: llm.Usage{
			PromptTokens:     int(completion.Usage.PromptTokens),
			CompletionTokens: int(completion.Usage.CompletionTokens),
			TotalTokens:      int(completion.Usage.TotalTokens),
		},
	}, nil
}

// ConvertMessages converts a conversation, failing on the first bad role
func ConvertMessages(messages []llm.Message) ([]openai.ChatCompletionMessageParamUnion, error) {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for i, msg := range messages {
		m, err := convertToOpenAIMessage(msg)
		if err != nil {
			return nil, WrapError(err, ErrInvalidMessage).WithDetail("message_index", i)
		}
		out = append(out, m)
	}
	return out, nil
}
