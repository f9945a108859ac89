package aiazure

import (
	"context"
	"os"

	"github.com/Abraxas-365/faqgen/pkg/ai/llm"
	"github.com/Abraxas-365/faqgen/pkg/ai/providers/aiopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/azure"
	"github.com/openai/openai-go/v3/option"
)

// ProviderOption configures the Azure OpenAI provider
type ProviderOption func(*AzureOpenAIProvider)

// WithAPIVersion sets the Azure OpenAI API version
func WithAPIVersion(version string) ProviderOption {
	return func(p *AzureOpenAIProvider) {
		if version != "" {
			p.apiVersion = version
		}
	}
}

// WithAzureADCredential configures Azure AD authentication
func WithAzureADCredential(cred azcore.TokenCredential) ProviderOption {
	return func(p *AzureOpenAIProvider) {
		p.tokenCredential = cred
	}
}

// WithDeployment sets the deployment used when a call names no model
func WithDeployment(name string) ProviderOption {
	return func(p *AzureOpenAIProvider) {
		p.deployment = name
	}
}

// WithRequestOptions appends raw SDK options, e.g. retries
func WithRequestOptions(opts ...option.RequestOption) ProviderOption {
	return func(p *AzureOpenAIProvider) {
		p.requestOpts = append(p.requestOpts, opts...)
	}
}

// AzureOpenAIProvider implements the LLM interface for Azure OpenAI
type AzureOpenAIProvider struct {
	client          openai.Client
	endpoint        string
	apiKey          string
	apiVersion      string
	deployment      string
	tokenCredential azcore.TokenCredential
	requestOpts     []option.RequestOption
}

var _ llm.LLM = (*AzureOpenAIProvider)(nil)

// NewAzureOpenAIProvider creates a new Azure OpenAI provider
func NewAzureOpenAIProvider(endpoint, apiKey string, opts ...ProviderOption) *AzureOpenAIProvider {
	p := &AzureOpenAIProvider{
		endpoint:   endpoint,
		apiKey:     apiKey,
		apiVersion: "2024-06-01",
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.apiKey == "" {
		p.apiKey = os.Getenv("AZURE_OPENAI_API_KEY")
	}

	clientOpts := []option.RequestOption{azure.WithEndpoint(p.endpoint, p.apiVersion)}
	if p.tokenCredential != nil {
		clientOpts = append(clientOpts, azure.WithTokenCredential(p.tokenCredential))
	} else {
		clientOpts = append(clientOpts, azure.WithAPIKey(p.apiKey))
	}
	clientOpts = append(clientOpts, p.requestOpts...)

	p.client = openai.NewClient(clientOpts...)
	return p
}

// ============================================================================
// Chat Implementation
// ============================================================================

// Chat implements the LLM interface. The model option names the deployment.
func (p *AzureOpenAIProvider) Chat(ctx context.Context, messages []llm.Message, opts ...llm.Option) (llm.Response, error) {
	if p.endpoint == "" {
		return llm.Response{}, errorRegistry.New(ErrMissingEndpoint)
	}

	if len(messages) == 0 {
		return llm.Response{}, errorRegistry.New(ErrEmptyMessages)
	}

	options := llm.Apply(&llm.ChatOptions{Model: p.deployment}, opts...)
	if options.Model == "" {
		return llm.Response{}, errorRegistry.New(ErrMissingEndpoint).
			WithDetail("error", "model/deployment name is required for Azure OpenAI")
	}

	openAIMessages, err := aiopenai.ConvertMessages(messages)
	if err != nil {
		return llm.Response{}, err
	}

	params := openai.ChatCompletionNewParams{
		Messages: openAIMessages,
		Model:    options.Model,
	}
	aiopenai.ApplyOptions(&params, options)

	completion, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return llm.Response{}, ParseAzureError(err).
			WithDetail("model", options.Model).
			WithDetail("num_messages", len(messages))
	}

	resp, err := aiopenai.ConvertFromOpenAIResponse(completion)
	if err != nil {
		return llm.Response{}, WrapError(err, ErrAPIResponse)
	}
	return resp, nil
}
