// Package aifactory builds an llm.LLM from a configured role.
package aifactory

import (
	"context"

	"github.com/Abraxas-365/faqgen/pkg/ai/llm"
	"github.com/Abraxas-365/faqgen/pkg/ai/providers/aianthropic"
	"github.com/Abraxas-365/faqgen/pkg/ai/providers/aiazure"
	"github.com/Abraxas-365/faqgen/pkg/ai/providers/aibedrock"
	"github.com/Abraxas-365/faqgen/pkg/ai/providers/aigemini"
	"github.com/Abraxas-365/faqgen/pkg/ai/providers/aimistral"
	"github.com/Abraxas-365/faqgen/pkg/ai/providers/aiopenai"
	"github.com/Abraxas-365/faqgen/pkg/config"
	"github.com/Abraxas-365/faqgen/pkg/errx"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/openai/openai-go/v3/option"
	"google.golang.org/genai"
)

type buildOptions struct {
	noRetries bool
}

// Option tunes how a provider is built.
type Option func(*buildOptions)

// WithoutRetries turns off SDK-level retries so the caller's retry
// policy is the only one in play.
func WithoutRetries() Option {
	return func(o *buildOptions) { o.noRetries = true }
}

// New returns the provider named by role.Provider with the role's
// credentials, endpoint and default model applied.
func New(ctx context.Context, role config.LLMRole, opts ...Option) (llm.LLM, error) {
	var bo buildOptions
	for _, o := range opts {
		o(&bo)
	}

	switch role.Provider {
	case "mistral":
		popts := []aimistral.ProviderOption{aimistral.WithDefaultChatModel(role.Model)}
		if role.BaseURL != "" {
			popts = append(popts, aimistral.WithBaseURL(role.BaseURL))
		}
		if role.Timeout > 0 {
			popts = append(popts, aimistral.WithTimeout(role.Timeout))
		}
		if bo.noRetries {
			popts = append(popts, aimistral.WithMaxRetries(0))
		}
		return aimistral.NewMistralProvider(role.APIKey, popts...), nil

	case "openai":
		ropts := []option.RequestOption{}
		if role.BaseURL != "" {
			ropts = append(ropts, option.WithBaseURL(role.BaseURL))
		}
		if role.Timeout > 0 {
			ropts = append(ropts, option.WithRequestTimeout(role.Timeout))
		}
		if bo.noRetries {
			ropts = append(ropts, option.WithMaxRetries(0))
		}
		return aiopenai.NewOpenAIProvider(role.APIKey, ropts...).WithDefaultModel(role.Model), nil

	case "anthropic":
		ropts := []anthropicopt.RequestOption{}
		if role.BaseURL != "" {
			ropts = append(ropts, anthropicopt.WithBaseURL(role.BaseURL))
		}
		if role.Timeout > 0 {
			ropts = append(ropts, anthropicopt.WithRequestTimeout(role.Timeout))
		}
		if bo.noRetries {
			ropts = append(ropts, anthropicopt.WithMaxRetries(0))
		}
		return aianthropic.NewAnthropicProvider(role.APIKey, ropts...).WithDefaultModel(role.Model), nil

	case "gemini":
		popts := []aigemini.ProviderOption{aigemini.WithDefaultModel(role.Model)}
		if role.BaseURL != "" {
			popts = append(popts, aigemini.WithHTTPOptions(genai.HTTPOptions{BaseURL: role.BaseURL}))
		}
		return aigemini.NewGeminiProvider(ctx, role.APIKey, popts...)

	case "bedrock":
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(role.AWSRegion))
		if err != nil {
			return nil, errx.Wrap(err, "load AWS config for bedrock", errx.TypeInternal).
				WithDetail("role", role.Name)
		}
		if bo.noRetries {
			awsCfg.RetryMaxAttempts = 1
		}
		return aibedrock.NewBedrockProvider(awsCfg, aibedrock.WithDefaultModel(role.Model)), nil

	case "azure":
		popts := []aiazure.ProviderOption{
			aiazure.WithAPIVersion(role.AzureAPIVersion),
			aiazure.WithDeployment(role.Model),
		}
		if bo.noRetries {
			popts = append(popts, aiazure.WithRequestOptions(option.WithMaxRetries(0)))
		}
		return aiazure.NewAzureOpenAIProvider(role.AzureEndpoint, role.APIKey, popts...), nil
	}

	return nil, errx.New("unknown LLM provider", errx.TypeValidation).
		WithDetail("role", role.Name).
		WithDetail("provider", role.Provider)
}

// ChatOptions returns the per-call options a role implies.
func ChatOptions(role config.LLMRole) []llm.Option {
	opts := []llm.Option{
		llm.WithModel(role.Model),
		llm.WithTemperature(float32(role.Temperature)),
	}
	if role.MaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(role.MaxTokens))
	}
	return opts
}
