package extractinfra_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Abraxas-365/faqgen/pkg/ai/llm"
	"github.com/Abraxas-365/faqgen/pkg/faq"
	"github.com/Abraxas-365/faqgen/pkg/faq/extract/extractinfra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedLLM struct {
	reply    string
	err      error
	messages []llm.Message
	options  *llm.ChatOptions
}

func (s *scriptedLLM) Chat(_ context.Context, msgs []llm.Message, opts ...llm.Option) (llm.Response, error) {
	s.messages = msgs
	s.options = llm.Apply(llm.DefaultOptions(), opts...)
	if s.err != nil {
		return llm.Response{}, s.err
	}
	return llm.Response{Message: llm.NewAssistantMessage(s.reply)}, nil
}

var docs = []faq.Document{
	{Name: "main.html", Content: "<p>Bio</p>"},
	{Name: "about.html", Content: "<p>Contact</p>"},
}

func TestLLMExtractor_BuildsPrompt(t *testing.T) {
	model := &scriptedLLM{reply: `{"name":"Club","bio":"Football"}`}
	ex := extractinfra.NewLLMExtractor(model, llm.WithModel("mistral-small-2501"), llm.WithTemperature(0))

	rec, err := ex.Extract(context.Background(), docs, faq.PlatformFacebook, "vi")
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Club","bio":"Football"}`, string(rec))

	require.Len(t, model.messages, 2)
	assert.Equal(t, llm.RoleSystem, model.messages[0].Role)
	user := model.messages[1].Content
	assert.True(t, strings.HasPrefix(user, "Trích xuất thông tin bằng tiếng Việt."))
	assert.Contains(t, user, "\n\n<!-- Content from main.html -->\n<p>Bio</p>\n\n<!-- Content from about.html -->\n<p>Contact</p>")
	assert.True(t, model.options.JSONMode)
	assert.Equal(t, "mistral-small-2501", model.options.Model)
}

func TestLLMExtractor_FencedAndArrayReplies(t *testing.T) {
	fenced := &scriptedLLM{reply: "```json\n{\"a\": 1}\n```"}
	rec, err := extractinfra.NewLLMExtractor(fenced).Extract(context.Background(), docs, faq.PlatformX, "en")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1}`, string(rec))

	upper := &scriptedLLM{reply: "```JSON\n{\"a\": 2}\n```"}
	rec, err = extractinfra.NewLLMExtractor(upper).Extract(context.Background(), docs, faq.PlatformX, "en")
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":2}`, string(rec))

	array := &scriptedLLM{reply: `[{"post":"hi"}]`}
	rec, err = extractinfra.NewLLMExtractor(array).Extract(context.Background(), docs, faq.PlatformX, "en")
	require.NoError(t, err)
	var wrapped map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec, &wrapped))
	assert.JSONEq(t, `[{"post":"hi"}]`, string(wrapped["content"]))
}

func TestLLMExtractor_InvalidReply(t *testing.T) {
	for _, reply := range []string{"not json", `"just a string"`} {
		model := &scriptedLLM{reply: reply}
		_, err := extractinfra.NewLLMExtractor(model).Extract(context.Background(), docs, faq.PlatformX, "en")
		assert.Equal(t, faq.KindParseError, faq.KindOf(err), reply)
	}
}

func TestLLMExtractor_PassesProviderErrors(t *testing.T) {
	upstream := errors.New("status 429: service tier capacity exceeded")
	model := &scriptedLLM{err: upstream}
	_, err := extractinfra.NewLLMExtractor(model).Extract(context.Background(), docs, faq.PlatformX, "en")
	assert.ErrorIs(t, err, upstream)
	assert.True(t, llm.IsRateLimited(err))
}

func TestLLMExtractor_TruncatesSource(t *testing.T) {
	model := &scriptedLLM{reply: `{}`}
	big := []faq.Document{{Name: "main.html", Content: strings.Repeat("é", 100)}}
	_, err := extractinfra.NewLLMExtractor(model).WithMaxSource(41).Extract(context.Background(), big, faq.PlatformDefault, "en")
	require.NoError(t, err)

	user := model.messages[1].Content
	idx := strings.Index(user, "Website content:\n")
	require.GreaterOrEqual(t, idx, 0)
	source := user[idx+len("Website content:\n"):]
	assert.LessOrEqual(t, len(source), 41)
	assert.True(t, strings.HasPrefix(source, "\n\n<!-- Content from main.html -->\n"))
}
