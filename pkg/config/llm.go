package config

import (
	"time"

	"github.com/Abraxas-365/faqgen/pkg/errx"
)

// LLMRole configures the provider used for one pipeline stage.
type LLMRole struct {
	Name        string
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration

	// Azure only
	AzureEndpoint   string
	AzureAPIVersion string

	// Bedrock only
	AWSRegion string
}

// LLMConfig holds the extraction and synthesis roles.
type LLMConfig struct {
	Extract LLMRole
	Synth   LLMRole
}

var keylessProviders = map[string]bool{"bedrock": true}

var knownProviders = map[string]bool{
	"mistral": true, "openai": true, "anthropic": true,
	"gemini": true, "bedrock": true, "azure": true,
}

func (r LLMRole) validate() error {
	if !knownProviders[r.Provider] {
		return errx.New("unknown LLM provider", errx.TypeValidation).
			WithDetail("role", r.Name).
			WithDetail("provider", r.Provider)
	}
	if r.Provider == "azure" && r.AzureEndpoint == "" {
		return errx.New("AZURE_OPENAI_ENDPOINT is required for the azure provider", errx.TypeValidation).
			WithDetail("role", r.Name)
	}
	return nil
}

// HasCredentials reports whether the role can authenticate without
// ambient credentials.
func (r LLMRole) HasCredentials() bool {
	return keylessProviders[r.Provider] || r.APIKey != ""
}

func loadLLMRole(prefix, name, defaultModel string, defaultTemp float64) LLMRole {
	provider := getEnv(prefix+"_PROVIDER", getEnv("LLM_PROVIDER", "mistral"))
	return LLMRole{
		Name:            name,
		Provider:        provider,
		Model:           getEnv(prefix+"_MODEL", defaultModel),
		APIKey:          getEnv(prefix+"_API_KEY", defaultAPIKey(provider)),
		BaseURL:         getEnv(prefix+"_BASE_URL", ""),
		Temperature:     getEnvFloat(prefix+"_TEMPERATURE", defaultTemp),
		MaxTokens:       getEnvInt(prefix+"_MAX_TOKENS", 4096),
		Timeout:         getEnvDuration(prefix+"_TIMEOUT", 2*time.Minute),
		AzureEndpoint:   getEnv("AZURE_OPENAI_ENDPOINT", ""),
		AzureAPIVersion: getEnv("AZURE_OPENAI_API_VERSION", "2024-06-01"),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
	}
}

func defaultAPIKey(provider string) string {
	switch provider {
	case "openai":
		return getEnv("OPENAI_API_KEY", "")
	case "anthropic":
		return getEnv("ANTHROPIC_API_KEY", "")
	case "gemini":
		return getEnv("GEMINI_API_KEY", "")
	case "azure":
		return getEnv("AZURE_OPENAI_API_KEY", "")
	default:
		return getEnv("MISTRAL_API_KEY", "")
	}
}

func loadLLMConfig() LLMConfig {
	return LLMConfig{
		Extract: loadLLMRole("EXTRACT_LLM", "extract", "mistral-small-2501", 0),
		Synth:   loadLLMRole("SYNTH_LLM", "synth", "mistral-medium", 0.7),
	}
}
