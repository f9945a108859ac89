package faqcontainer_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/ai/llm"
	"github.com/Abraxas-365/faqgen/pkg/config"
	"github.com/Abraxas-365/faqgen/pkg/faq"
	"github.com/Abraxas-365/faqgen/pkg/faq/faqcontainer"
	"github.com/Abraxas-365/faqgen/pkg/faq/faqtest"
	"github.com/Abraxas-365/faqgen/pkg/fsx/fsxlocal"
	"github.com/Abraxas-365/faqgen/pkg/jobx"
	"github.com/Abraxas-365/faqgen/pkg/jobx/jobxmemory"
	"github.com/Abraxas-365/faqgen/pkg/notifx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedLLM struct {
	mu    sync.Mutex
	reply string
	opts  []*llm.ChatOptions
}

func (s *scriptedLLM) Chat(_ context.Context, _ []llm.Message, opts ...llm.Option) (llm.Response, error) {
	s.mu.Lock()
	s.opts = append(s.opts, llm.Apply(llm.DefaultOptions(), opts...))
	s.mu.Unlock()
	return llm.Response{Message: llm.NewAssistantMessage(s.reply)}, nil
}

type inbox struct {
	mu   sync.Mutex
	msgs []notifx.EmailMessage
}

func (i *inbox) SendEmail(_ context.Context, msg notifx.EmailMessage, _ ...notifx.Option) error {
	i.mu.Lock()
	i.msgs = append(i.msgs, msg)
	i.mu.Unlock()
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{PublicURL: "https://faq.example.com"},
		Store:  config.StoreConfig{Driver: "memory", SweepSchedule: "@every 1h"},
		LLM: config.LLMConfig{
			Extract: config.LLMRole{Name: "extract", Provider: "mistral", Model: "mistral-small-2501", Timeout: time.Second},
			Synth:   config.LLMRole{Name: "synth", Provider: "mistral", Model: "mistral-medium", Temperature: 0.7, Timeout: time.Second},
		},
		Pipeline: config.PipelineConfig{RetryAttempts: 5, RetryBase: time.Millisecond, RetryMax: time.Millisecond},
		Jobs:     config.JobsConfig{MaxConcurrent: 2, ShutdownTimeout: 5 * time.Second},
	}
}

func TestContainer_EndToEnd(t *testing.T) {
	fs, err := fsxlocal.NewLocalFileSystem(t.TempDir())
	require.NoError(t, err)

	extractLLM := &scriptedLLM{reply: `{"name": "Sample", "followers": 1200}`}
	synthLLM := &scriptedLLM{reply: "```json\n" + faqtest.Items(7) + "\n```"}
	mail := &inbox{}

	c, err := faqcontainer.New(context.Background(), faqcontainer.Deps{
		Cfg:        testConfig(),
		Store:      jobxmemory.NewMemoryStore(),
		FileSystem: fs,
		Email:      notifx.NewClient(mail, "faq@example.com"),
		Renderer:   &faqtest.Renderer{},
		ExtractLLM: extractLLM,
		SynthLLM:   synthLLM,
	})
	require.NoError(t, err)
	require.NotNil(t, c.Sweeper, "memory store needs sweeping")
	assert.Nil(t, c.AdminAuth)
	require.NoError(t, c.StartBackgroundServices(context.Background()))

	req, err := faq.NewRequest("https://x.com/sample", "x", "en", 5, "owner@example.com")
	require.NoError(t, err)
	id, err := c.Orchestrator.Submit(context.Background(), req)
	require.NoError(t, err)

	require.NoError(t, c.Shutdown(context.Background()))

	job, err := c.Query.GetStatus(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, jobx.StatusCompleted, job.Status, "error: %v", job.Error)

	var res faq.Result
	require.NoError(t, job.DecodeData(&res))
	assert.Equal(t, 5, strings.Count(res.FAQContent, "**Q"))

	require.Len(t, extractLLM.opts, 1)
	assert.True(t, extractLLM.opts[0].JSONMode)
	assert.Equal(t, "mistral-small-2501", extractLLM.opts[0].Model)
	require.Len(t, synthLLM.opts, 1)
	assert.Equal(t, "mistral-medium", synthLLM.opts[0].Model)
	assert.InDelta(t, 0.7, synthLLM.opts[0].Temperature, 1e-6)

	require.Len(t, mail.msgs, 1)
	assert.Equal(t, "Your FAQ is ready", mail.msgs[0].Subject)
	assert.Contains(t, mail.msgs[0].HTMLBody, "https://faq.example.com/result/"+id)
}

func TestContainer_AdminAuthFromConfig(t *testing.T) {
	fs, err := fsxlocal.NewLocalFileSystem(t.TempDir())
	require.NoError(t, err)
	cfg := testConfig()
	cfg.Auth = config.AuthConfig{JWTSecret: "s3cret", Issuer: "faqgen"}

	c, err := faqcontainer.New(context.Background(), faqcontainer.Deps{
		Cfg:        cfg,
		Store:      jobxmemory.NewMemoryStore(),
		FileSystem: fs,
		Renderer:   &faqtest.Renderer{},
		ExtractLLM: &scriptedLLM{},
		SynthLLM:   &scriptedLLM{},
	})
	require.NoError(t, err)
	require.NotNil(t, c.AdminAuth)

	token, err := c.AdminAuth.IssueToken("ops", time.Minute)
	require.NoError(t, err)
	sub, err := c.AdminAuth.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "ops", sub)
	require.NoError(t, c.Shutdown(context.Background()))
}
