package aigemini

import (
	"context"
	"os"
	"strings"

	"github.com/Abraxas-365/faqgen/pkg/ai/llm"
	"google.golang.org/genai"
)

// ProviderOption configures the Gemini provider
type ProviderOption func(*GeminiProvider)

// WithVertexAI configures the provider to use Vertex AI backend
func WithVertexAI(project, location string) ProviderOption {
	return func(p *GeminiProvider) {
		p.project = project
		p.location = location
		p.useVertexAI = true
	}
}

// WithDefaultModel sets the model used when a call names none
func WithDefaultModel(model string) ProviderOption {
	return func(p *GeminiProvider) {
		if model != "" {
			p.defaultModel = model
		}
	}
}

// WithHTTPOptions overrides the base URL, mostly for tests
func WithHTTPOptions(opts genai.HTTPOptions) ProviderOption {
	return func(p *GeminiProvider) {
		p.httpOptions = opts
	}
}

// GeminiProvider implements the LLM interface for Google Gemini
type GeminiProvider struct {
	client       *genai.Client
	apiKey       string
	project      string
	location     string
	useVertexAI  bool
	defaultModel string
	httpOptions  genai.HTTPOptions
}

var _ llm.LLM = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, apiKey string, opts ...ProviderOption) (*GeminiProvider, error) {
	p := &GeminiProvider{
		apiKey:       apiKey,
		defaultModel: "gemini-2.0-flash",
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.apiKey == "" {
		p.apiKey = os.Getenv("GEMINI_API_KEY")
	}

	config := &genai.ClientConfig{HTTPOptions: p.httpOptions}

	if p.useVertexAI {
		config.Backend = genai.BackendVertexAI
		config.Project = p.project
		config.Location = p.location
	} else {
		config.APIKey = p.apiKey
		config.Backend = genai.BackendGeminiAPI
	}

	client, err := genai.NewClient(ctx, config)
	if err != nil {
		return nil, WrapError(err, ErrMissingAPIKey).
			WithDetail("error", "failed to create Gemini client")
	}

	p.client = client
	return p, nil
}

// ============================================================================
// Chat Implementation
// ============================================================================

// Chat implements the LLM interface
func (p *GeminiProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	if len(messages) == 0 {
		return llm.Response{}, errorRegistry.New(ErrEmptyMessages)
	}

	options := llm.Apply(&llm.ChatOptions{Model: p.defaultModel}, opts...)

	systemContent, contents := convertMessages(messages)
	if len(contents) == 0 {
		return llm.Response{}, errorRegistry.New(ErrEmptyMessages)
	}

	config := buildGenerateConfig(options, systemContent)

	result, err := p.client.Models.GenerateContent(ctx, options.Model, contents, config)
	if err != nil {
		return llm.Response{}, ParseGeminiError(err).
			WithDetail("model", options.Model).
			WithDetail("num_messages", len(messages))
	}

	return convertFromGeminiResponse(result)
}

// ============================================================================
// Conversions
// ============================================================================

func convertMessages(messages []llm.Message) (*genai.Content, []*genai.Content) {
	var systemContent *genai.Content
	var contents []*genai.Content

	for _, msg := range messages {
		switch msg.Role {
		case llm.RoleSystem:
			if systemContent == nil {
				systemContent = &genai.Content{
					Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
				}
			} else {
				systemContent.Parts = append(systemContent.Parts,
					genai.NewPartFromText(msg.Content))
			}

		case llm.RoleUser:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
			})

		case llm.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{genai.NewPartFromText(msg.Content)},
			})
		}
	}

	return systemContent, contents
}

func buildGenerateConfig(options *llm.ChatOptions, systemContent *genai.Content) *genai.GenerateContentConfig {
	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(options.Temperature),
	}

	if systemContent != nil {
		config.SystemInstruction = systemContent
	}
	if options.TopP != 0 {
		config.TopP = genai.Ptr(options.TopP)
	}
	if options.MaxTokens > 0 {
		config.MaxOutputTokens = int32(options.MaxTokens)
	}
	if len(options.Stop) > 0 {
		config.StopSequences = options.Stop
	}
	if options.Seed != 0 {
		seed := int32(options.Seed)
		config.Seed = &seed
	}
	if options.JSONMode {
		config.ResponseMIMEType = "application/json"
	}

	return config
}

func convertFromGeminiResponse(result *genai.GenerateContentResponse) (llm.Response, error) {
	if result == nil || len(result.Candidates) == 0 {
		return llm.Response{}, errorRegistry.New(ErrAPIResponse).
			WithDetail("error", "no candidates in response")
	}

	candidate := result.Candidates[0]
	var content strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			content.WriteString(part.Text)
		}
	}

	usage := llm.Usage{}
	if result.UsageMetadata != nil {
		usage.PromptTokens = int(result.UsageMetadata.PromptTokenCount)
		usage.CompletionTokens = int(result.UsageMetadata.CandidatesTokenCount)
		usage.TotalTokens = int(result.UsageMetadata.TotalTokenCount)
	}

	return llm.Response{
		Message: llm.Message{
			Role:    llm.RoleAssistant,
			Content: content.String(),
		},
		Usage: usage,
	}, nil
}
