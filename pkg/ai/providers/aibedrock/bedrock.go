package aibedrock

import (
	"context"
	"strings"

	"github.com/Abraxas-365/faqgen/pkg/ai/llm"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

// ProviderOption configures the Bedrock provider
type ProviderOption func(*BedrockProvider)

// WithDefaultModel sets the default model ID
func WithDefaultModel(model string) ProviderOption {
	return func(p *BedrockProvider) {
		if model != "" {
			p.defaultModel = model
		}
	}
}

// ConverseAPI is the part of the Bedrock runtime client the provider uses
type ConverseAPI interface {
	Converse(ctx context.Context, params *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// WithClient replaces the runtime client
func WithClient(client ConverseAPI) ProviderOption {
	return func(p *BedrockProvider) {
		p.client = client
	}
}

// BedrockProvider implements the LLM interface for AWS Bedrock
type BedrockProvider struct {
	client       ConverseAPI
	defaultModel string
}

var _ llm.LLM = (*BedrockProvider)(nil)

// NewBedrockProvider creates a new Bedrock provider
func NewBedrockProvider(cfg aws.Config, opts ...ProviderOption) *BedrockProvider {
	p := &BedrockProvider{
		client:       bedrockruntime.NewFromConfig(cfg),
		defaultModel: "anthropic.claude-sonnet-4-20250514-v1:0",
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// ============================================================================
// Chat Implementation
// ============================================================================

// Chat implements the LLM interface over the Converse API
func (p *BedrockProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	if len(messages) == 0 {
		return llm.Response{}, errorRegistry.New(ErrEmptyMessages)
	}

	options := llm.Apply(&llm.ChatOptions{Model: p.defaultModel}, opts...)

	systemBlocks, nonSystemMsgs := extractSystemPrompt(messages)

	bedrockMsgs, err := convertMessages(nonSystemMsgs)
	if err != nil {
		return llm.Response{}, err
	}
	if len(bedrockMsgs) == 0 {
		return llm.Response{}, errorRegistry.New(ErrEmptyMessages)
	}

	input := &bedrockruntime.ConverseInput{
		ModelId:         aws.String(options.Model),
		Messages:        bedrockMsgs,
		InferenceConfig: buildInferenceConfig(options),
	}

	if len(systemBlocks) > 0 {
		input.System = systemBlocks
	}

	output, err := p.client.Converse(ctx, input)
	if err != nil {
		return llm.Response{}, ParseBedrockError(err).
			WithDetail("model", options.Model).
			WithDetail("num_messages", len(messages))
	}

	return convertFromBedrockResponse(output)
}

// ============================================================================
// Conversions
// ============================================================================

func extractSystemPrompt(messages []llm.Message) ([]types.SystemContentBlock, []llm.Message) {
	var system []types.SystemContentBlock
	var rest []llm.Message

	for _, msg := range messages {
		if msg.Role == llm.RoleSystem {
			system = append(system, &types.SystemContentBlockMemberText{
				Value: msg.Content,
			})
		} else {
			rest = append(rest, msg)
		}
	}

	return system, rest
}

func convertMessages(messages []llm.Message) ([]types.Message, error) {
	result := make([]types.Message, 0, len(messages))

	for _, msg := range messages {
		var role types.ConversationRole
		switch msg.Role {
		case llm.RoleUser:
			role = types.ConversationRoleUser
		case llm.RoleAssistant:
			role = types.ConversationRoleAssistant
		default:
			return nil, errorRegistry.New(ErrUnsupportedRole).
				WithDetail("role", msg.Role)
		}
		result = append(result, types.Message{
			Role:    role,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: msg.Content}},
		})
	}

	return result, nil
}

// buildInferenceConfig always sends the temperature; zero is a valid
// setting for deterministic extraction.
func buildInferenceConfig(options *llm.ChatOptions) *types.InferenceConfiguration {
	temp := options.Temperature
	config := &types.InferenceConfiguration{Temperature: &temp}

	if options.MaxTokens > 0 {
		v := int32(options.MaxTokens)
		config.MaxTokens = &v
	}
	if options.TopP != 0 {
		v := options.TopP
		config.TopP = &v
	}
	if len(options.Stop) > 0 {
		config.StopSequences = options.Stop
	}

	return config
}

func convertFromBedrockResponse(output *bedrockruntime.ConverseOutput) (llm.Response, error) {
	msgOutput, ok := output.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return llm.Response{}, errorRegistry.New(ErrAPIResponse).
			WithDetail("error", "unexpected output type")
	}

	var content strings.Builder
	for _, block := range msgOutput.Value.Content {
		if v, ok := block.(*types.ContentBlockMemberText); ok {
			content.WriteString(v.Value)
		}
	}

	usage := llm.Usage{}
	if output.Usage != nil {
		if output.Usage.InputTokens != nil {
			usage.PromptTokens = int(*output.Usage.InputTokens)
		}
		if output.Usage.OutputTokens != nil {
			usage.CompletionTokens = int(*output.Usage.OutputTokens)
		}
		if output.Usage.TotalTokens != nil {
			usage.TotalTokens = int(*output.Usage.TotalTokens)
		}
	}

	return llm.Response{
		Message: llm.Message{
			Role:    llm.RoleAssistant,
			Content: content.String(),
		},
		Usage: usage,
	}, nil
}
