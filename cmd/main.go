package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Abraxas-365/faqgen/pkg/config"
	"github.com/Abraxas-365/faqgen/pkg/faq"
	"github.com/Abraxas-365/faqgen/pkg/faq/faqcontainer"
	"github.com/Abraxas-365/faqgen/pkg/faq/faqsrv"
	"github.com/Abraxas-365/faqgen/pkg/fsx"
	"github.com/Abraxas-365/faqgen/pkg/jobx/jobxmemory"
	"github.com/Abraxas-365/faqgen/pkg/logx"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string
	var logLevel string

	root := &cobra.Command{
		Use:           "faqgen",
		Short:         "Generate FAQ documents from social-media profiles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if logLevel != "" {
				logx.SetLevel(logx.ParseLevel(logLevel))
			}
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional dotenv file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override LOG_LEVEL")

	loadConfig := func() (*config.Config, error) {
		cfg, err := config.Load(envFile)
		if err != nil {
			logx.WithError(err).Error("invalid configuration")
		}
		return cfg, err
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := loadConfig()
				if err != nil {
					return err
				}
				if err := runServer(cmd.Context(), cfg); err != nil {
					logx.WithError(err).Error("server stopped with error")
					return err
				}
				return nil
			},
		},
		newRunCmd(loadConfig),
		newSweepCmd(loadConfig),
	)
	return root
}

type runFlags struct {
	url      string
	platform string
	lang     string
	count    int
	out      string
}

// newRunCmd runs one pipeline in the foreground, without the job store.
func newRunCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Generate one FAQ synchronously",
		Example: `  faqgen run --url https://www.instagram.com/someone --plf ig --lang es --cnt 8
  faqgen run --url https://x.com/someone --plf x --out faq.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("cnt") {
				f.count = cfg.Pipeline.DefaultCount
			}
			if f.lang == "" {
				f.lang = cfg.Pipeline.DefaultLang
			}
			if err := runOnce(cmd.Context(), cfg, f); err != nil {
				logx.WithError(err).Error("❌ FAQ generation failed")
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&f.url, "url", "", "profile URL")
	cmd.Flags().StringVar(&f.platform, "plf", "", "platform: fb, ig, x or df")
	cmd.Flags().StringVar(&f.lang, "lang", "", "output language (default PIPELINE_DEFAULT_LANGUAGE)")
	cmd.Flags().IntVar(&f.count, "cnt", faq.DefaultFAQCount, "number of questions")
	cmd.Flags().StringVar(&f.out, "out", "", "write Markdown here instead of stdout")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("plf")
	return cmd
}

func runOnce(ctx context.Context, cfg *config.Config, f runFlags) error {
	req, err := faq.NewRequest(f.url, f.platform, f.lang, f.count, "")
	if err != nil {
		return err
	}

	c := &Container{Config: cfg, Store: jobxmemory.NewMemoryStore()}
	if err := c.initFileStorage(ctx); err != nil {
		return err
	}
	if err := c.initModules(ctx, faqcontainer.Deps{}); err != nil {
		return err
	}

	id := uuid.NewString()
	ws := fsx.NewWorkspace(c.FileSystem, "runs/"+id)
	defer func() {
		if cfg.Pipeline.KeepArtifacts {
			logx.Infof("📁 Artifacts kept in %s", ws.Root())
			return
		}
		if err := ws.Cleanup(context.Background()); err != nil {
			logx.WithError(err).Warn("failed to remove run artifacts")
		}
	}()

	logx.Infof("🚀 Generating %d FAQs for %s (%s, %s)", req.FAQCount, req.URL, req.Platform, req.Language)
	result, err := c.FAQ.Pipeline.Run(ctx, req, ws, func(_ context.Context, progress int, message string) {
		logx.Infof("  ⏳ %3d%% %s", progress, message)
	})
	if err != nil {
		return err
	}

	if f.out == "" {
		_, err = fmt.Fprintln(os.Stdout, result.FAQContent)
		return err
	}
	if err := os.WriteFile(f.out, []byte(result.FAQContent), 0o644); err != nil {
		return err
	}
	logx.Infof("✅ FAQ written to %s", f.out)
	return nil
}

// newSweepCmd deletes expired job records once and exits.
func newSweepCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Delete expired job records once",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			c := &Container{Config: cfg}
			defer c.Cleanup()
			if err := c.initStore(ctx); err != nil {
				return err
			}

			sweeper := faqsrv.NewSweeper(c.Store, cfg.Store.SweepSchedule)
			if sweeper == nil {
				logx.Infof("ℹ️  %s store expires records natively, nothing to sweep", cfg.Store.Driver)
				return nil
			}
			n, err := sweeper.Sweep(ctx)
			if err != nil {
				return err
			}
			logx.Infof("🧹 Removed %d expired job(s)", n)
			return nil
		},
	}
}
