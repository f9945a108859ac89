package aiazure

import (
	"errors"
	"testing"

	"github.com/Abraxas-365/faqgen/pkg/ai/llm"
	"github.com/Abraxas-365/faqgen/pkg/errx"
	"github.com/stretchr/testify/assert"
)

func TestChat_RequiresEndpointAndDeployment(t *testing.T) {
	_, err := NewAzureOpenAIProvider("", "k").Chat(t.Context(), []llm.Message{llm.NewUserMessage("x")})
	assert.True(t, errx.HasCode(err, ErrMissingEndpoint))

	_, err = NewAzureOpenAIProvider("https://example.openai.azure.com", "k").
		Chat(t.Context(), []llm.Message{llm.NewUserMessage("x")})
	assert.True(t, errx.HasCode(err, ErrMissingEndpoint))
}

func TestParseAzureError(t *testing.T) {
	assert.True(t, errx.HasCode(ParseAzureError(errors.New("Rate limit is exceeded")), ErrAPIRateLimit))
	assert.True(t, errx.HasCode(ParseAzureError(errors.New("DeploymentNotFound: deployment not found")), ErrModelNotFound))
}
