package synthinfra

import (
	"context"
	"strings"

	"github.com/Abraxas-365/faqgen/pkg/ai/llm"
	"github.com/Abraxas-365/faqgen/pkg/faq"
)

// LLMSynthesizer implements faq.Synthesizer with a chat model.
type LLMSynthesizer struct {
	client llm.LLM
	opts   []llm.Option
}

var _ faq.Synthesizer = (*LLMSynthesizer)(nil)

// NewLLMSynthesizer wraps client; opts carry model and temperature.
func NewLLMSynthesizer(client llm.LLM, opts ...llm.Option) *LLMSynthesizer {
	return &LLMSynthesizer{client: client, opts: opts}
}

// Synthesize sends the system and instruction prompts and returns the
// trimmed reply.
func (s *LLMSynthesizer) Synthesize(ctx context.Context, in faq.SynthesisInput) (string, error) {
	resp, err := s.client.Chat(ctx, []llm.Message{
		llm.NewSystemMessage(in.SystemPrompt),
		llm.NewUserMessage(in.InstructionPrompt),
	}, s.opts...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Message.Content), nil
}
