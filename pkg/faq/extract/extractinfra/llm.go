package extractinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Abraxas-365/faqgen/pkg/ai/llm"
	"github.com/Abraxas-365/faqgen/pkg/faq"
	"github.com/Abraxas-365/faqgen/pkg/faq/synth"
)

const systemPrompt = "You are a web scraping assistant. You read the HTML of social media pages and answer with a single valid JSON object containing the requested information. Never add explanations."

// DefaultMaxSource caps the combined page markup sent in one request.
const DefaultMaxSource = 200_000

// LLMExtractor implements faq.Extractor with a chat model in JSON mode.
type LLMExtractor struct {
	client    llm.LLM
	opts      []llm.Option
	maxSource int
}

var _ faq.Extractor = (*LLMExtractor)(nil)

// NewLLMExtractor wraps client. opts are applied to every call.
func NewLLMExtractor(client llm.LLM, opts ...llm.Option) *LLMExtractor {
	return &LLMExtractor{client: client, opts: opts, maxSource: DefaultMaxSource}
}

// WithMaxSource overrides DefaultMaxSource.
func (e *LLMExtractor) WithMaxSource(n int) *LLMExtractor {
	if n > 0 {
		e.maxSource = n
	}
	return e
}

// Extract asks the model for a structured record of docs. Provider errors
// are returned unchanged so the caller can classify throttling.
func (e *LLMExtractor) Extract(ctx context.Context, docs []faq.Document, platform faq.Platform, lang faq.Language) (json.RawMessage, error) {
	source := CombineDocuments(docs)
	if len(source) > e.maxSource {
		source = strings.ToValidUTF8(source[:e.maxSource], "")
	}

	user := faq.ExtractionPrompt(platform, lang) + "\n\nWebsite content:\n" + source

	opts := append([]llm.Option{llm.WithJSONMode()}, e.opts...)
	resp, err := e.client.Chat(ctx, []llm.Message{
		llm.NewSystemMessage(systemPrompt),
		llm.NewUserMessage(user),
	}, opts...)
	if err != nil {
		return nil, err
	}

	return decodeRecord(resp.Message.Content)
}

// CombineDocuments joins documents, each introduced by a comment naming
// its source file.
func CombineDocuments(docs []faq.Document) string {
	var b strings.Builder
	for _, d := range docs {
		fmt.Fprintf(&b, "\n\n<!-- Content from %s -->\n%s", d.Name, d.Content)
	}
	return b.String()
}

// decodeRecord accepts a JSON object, optionally fenced. A bare array is
// wrapped under "content" so the record is always an object.
func decodeRecord(text string) (json.RawMessage, error) {
	text = synth.StripCodeFences(text)

	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, faq.Fail(faq.StageExtract, faq.KindParseError, "extraction output is not valid JSON", err)
	}

	switch v.(type) {
	case map[string]any:
		return json.RawMessage(text), nil
	case []any:
		return json.Marshal(map[string]json.RawMessage{"content": json.RawMessage(text)})
	default:
		return nil, faq.Fail(faq.StageExtract, faq.KindParseError, "extraction output is not a JSON object", nil)
	}
}
