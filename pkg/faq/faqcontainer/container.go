package faqcontainer

import (
	"context"

	"github.com/Abraxas-365/faqgen/pkg/ai/llm"
	"github.com/Abraxas-365/faqgen/pkg/ai/providers/aifactory"
	"github.com/Abraxas-365/faqgen/pkg/config"
	"github.com/Abraxas-365/faqgen/pkg/faq"
	"github.com/Abraxas-365/faqgen/pkg/faq/capture"
	"github.com/Abraxas-365/faqgen/pkg/faq/capture/captureinfra"
	"github.com/Abraxas-365/faqgen/pkg/faq/extract"
	"github.com/Abraxas-365/faqgen/pkg/faq/extract/extractinfra"
	"github.com/Abraxas-365/faqgen/pkg/faq/faqapi"
	"github.com/Abraxas-365/faqgen/pkg/faq/faqsrv"
	"github.com/Abraxas-365/faqgen/pkg/faq/pipeline"
	"github.com/Abraxas-365/faqgen/pkg/faq/synth"
	"github.com/Abraxas-365/faqgen/pkg/faq/synth/synthinfra"
	"github.com/Abraxas-365/faqgen/pkg/fsx"
	"github.com/Abraxas-365/faqgen/pkg/jobx"
	"github.com/Abraxas-365/faqgen/pkg/logx"
	"github.com/Abraxas-365/faqgen/pkg/notifx"
)

// ---------------------------------------------------------------------------
// Deps: what the FAQ module needs from the composition root.
// ---------------------------------------------------------------------------

type Deps struct {
	Cfg        *config.Config
	Store      jobx.Store
	FileSystem fsx.FileSystem

	// Email is optional; without it submissions ignore notify_email.
	Email *notifx.Client

	// Collaborator overrides. Nil means build from Cfg.
	Renderer   faq.Renderer
	ExtractLLM llm.LLM
	SynthLLM   llm.LLM
}

// ---------------------------------------------------------------------------
// Container: the public surface of the FAQ module.
// ---------------------------------------------------------------------------

type Container struct {
	Pipeline     *pipeline.Pipeline
	Runner       *jobx.Runner
	Orchestrator *faqsrv.Orchestrator
	Query        *faqsrv.QueryService

	// HTTP
	Handlers  *faqapi.Handlers
	AdminAuth *faqapi.AdminAuth

	// Background services; Sweeper is nil for stores with native expiry.
	Sweeper *faqsrv.Sweeper
}

// ---------------------------------------------------------------------------
// New: collaborators → stages → pipeline → services → handlers.
// ---------------------------------------------------------------------------

func New(ctx context.Context, deps Deps) (*Container, error) {
	logx.Info("🔧 Initializing FAQ container...")
	cfg := deps.Cfg
	c := &Container{}

	// ── Collaborators ────────────────────────────────────────────────────

	renderer := deps.Renderer
	if renderer == nil {
		renderer = captureinfra.NewChromeRenderer(captureinfra.Options{
			Headless:    cfg.Renderer.Headless,
			UserAgent:   cfg.Renderer.UserAgent,
			ExecPath:    cfg.Renderer.ChromePath,
			NavTimeout:  cfg.Renderer.NavTimeout,
			SettleWait:  cfg.Renderer.SettleWait,
			PageTimeout: cfg.Renderer.PageTimeout,
			PageDelay:   cfg.Pipeline.PageDelay,
		})
		logx.Infof("  ✅ Chrome renderer configured (headless: %t)", cfg.Renderer.Headless)
	}

	extractLLM := deps.ExtractLLM
	if extractLLM == nil {
		// The pipeline owns rate-limit retries for extraction.
		client, err := aifactory.New(ctx, cfg.LLM.Extract, aifactory.WithoutRetries())
		if err != nil {
			return nil, err
		}
		extractLLM = client
		logx.Infof("  ✅ Extraction model: %s/%s", cfg.LLM.Extract.Provider, cfg.LLM.Extract.Model)
	}

	synthLLM := deps.SynthLLM
	if synthLLM == nil {
		client, err := aifactory.New(ctx, cfg.LLM.Synth)
		if err != nil {
			return nil, err
		}
		synthLLM = client
		logx.Infof("  ✅ Synthesis model: %s/%s", cfg.LLM.Synth.Provider, cfg.LLM.Synth.Model)
	}

	// ── Stages and pipeline ──────────────────────────────────────────────

	c.Pipeline = pipeline.New(
		capture.NewStage(renderer),
		extract.NewStage(
			extractinfra.NewLLMExtractor(extractLLM, aifactory.ChatOptions(cfg.LLM.Extract)...),
			cfg.LLM.Extract.Timeout,
		),
		synth.NewStage(
			synthinfra.NewLLMSynthesizer(synthLLM, aifactory.ChatOptions(cfg.LLM.Synth)...),
			cfg.LLM.Synth.Timeout,
		),
		pipeline.WithStageDelay(cfg.Pipeline.StageDelay),
		pipeline.WithRetry(cfg.Pipeline.RetryAttempts, cfg.Pipeline.RetryBase, cfg.Pipeline.RetryMax),
	)

	// ── Services ─────────────────────────────────────────────────────────

	var notifier faq.Notifier
	if deps.Email != nil {
		n, err := faqsrv.NewEmailNotifier(deps.Email, cfg.Server.PublicURL)
		if err != nil {
			return nil, err
		}
		notifier = n
	}

	c.Runner = jobx.NewRunner(
		jobx.WithMaxConcurrent(int64(cfg.Jobs.MaxConcurrent)),
		jobx.WithShutdownTimeout(cfg.Jobs.ShutdownTimeout),
	)
	c.Orchestrator = faqsrv.NewOrchestrator(
		deps.Store,
		c.Runner,
		c.Pipeline,
		deps.FileSystem,
		notifier,
		faqsrv.WithKeepArtifacts(cfg.Pipeline.KeepArtifacts),
	)
	c.Query = faqsrv.NewQueryService(deps.Store)
	c.Sweeper = faqsrv.NewSweeper(deps.Store, cfg.Store.SweepSchedule)

	// ── HTTP ─────────────────────────────────────────────────────────────

	c.AdminAuth = faqapi.NewAdminAuth(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if c.AdminAuth == nil {
		logx.Warn("  ⚠️  AUTH_JWT_SECRET not set, admin routes are disabled")
	}
	c.Handlers = faqapi.NewHandlers(c.Orchestrator, c.Query)

	logx.Info("✅ FAQ container initialized")
	return c, nil
}

// StartBackgroundServices starts the expired-job sweeper when the store
// needs one.
func (c *Container) StartBackgroundServices(ctx context.Context) error {
	if c.Sweeper == nil {
		return nil
	}
	if err := c.Sweeper.Start(ctx); err != nil {
		return err
	}
	logx.Info("  ✅ Job sweeper started")
	return nil
}

// Shutdown stops accepting jobs and waits for running ones.
func (c *Container) Shutdown(ctx context.Context) error {
	if c.Sweeper != nil {
		c.Sweeper.Stop()
	}
	return c.Runner.Shutdown(ctx)
}
