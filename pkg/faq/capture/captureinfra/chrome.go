package captureinfra

import (
	"context"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/asyncx"
	"github.com/Abraxas-365/faqgen/pkg/faq"
	"github.com/Abraxas-365/faqgen/pkg/logx"
	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"
)

// Options configures ChromeRenderer.
type Options struct {
	Headless  bool
	UserAgent string
	ExecPath  string

	// NavTimeout bounds navigation until the load event.
	NavTimeout time.Duration
	// SettleWait is how long dynamic content gets before the DOM is read.
	SettleWait time.Duration
	// PageTimeout bounds a whole page render.
	PageTimeout time.Duration
	// PageDelay is the minimum spacing between page loads, shared by every
	// job using this renderer.
	PageDelay time.Duration
}

// ChromeRenderer renders pages in headless Chrome through the DevTools
// protocol. One browser is started per Render call and pages are loaded
// one at a time.
type ChromeRenderer struct {
	opts      Options
	limiter   *rate.Limiter
	allocOpts []chromedp.ExecAllocatorOption
	render    func(ctx context.Context, allocCtx context.Context, url string) (string, error)
}

var _ faq.Renderer = (*ChromeRenderer)(nil)

// NewChromeRenderer creates a renderer. Zero durations get the defaults
// used in production.
func NewChromeRenderer(opts Options) *ChromeRenderer {
	if opts.NavTimeout <= 0 {
		opts.NavTimeout = 60 * time.Second
	}
	if opts.SettleWait < 0 {
		opts.SettleWait = 0
	}
	if opts.PageTimeout <= 0 {
		opts.PageTimeout = opts.NavTimeout + opts.SettleWait + 15*time.Second
	}

	allocOpts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	allocOpts = append(allocOpts,
		chromedp.Flag("headless", opts.Headless),
		chromedp.NoSandbox,
		chromedp.DisableGPU,
		chromedp.WindowSize(1366, 900),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(opts.ExecPath))
	}

	r := &ChromeRenderer{
		opts:      opts,
		limiter:   newPacer(opts.PageDelay),
		allocOpts: allocOpts,
	}
	r.render = r.renderPage
	return r
}

func newPacer(delay time.Duration) *rate.Limiter {
	if delay <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(delay), 1)
}

// Render loads baseURL plus each sub-path and returns one outcome per
// sub-path. A page that fails or times out is reported in its outcome;
// the returned error is only set when the browser cannot be used at all.
func (r *ChromeRenderer) Render(ctx context.Context, baseURL string, subPaths []string) (map[string]faq.PageOutcome, error) {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, r.allocOpts...)
	defer cancelAlloc()

	out := make(map[string]faq.PageOutcome, len(subPaths))
	for _, sp := range subPaths {
		url := faq.PageURL(baseURL, sp)
		if err := r.limiter.Wait(ctx); err != nil {
			return out, err
		}

		start := time.Now()
		html, err := asyncx.WithTimeout(ctx, r.opts.PageTimeout, func(ctx context.Context) (string, error) {
			return r.render(ctx, allocCtx, url)
		})

		entry := logx.WithContext(ctx).WithFields(logx.Fields{
			"url":      url,
			"duration": time.Since(start).Round(time.Millisecond).String(),
		})
		if err != nil {
			entry.WithError(err).Warn("renderer: page failed")
		} else {
			entry.WithField("bytes", len(html)).Debug("renderer: page rendered")
		}
		out[sp] = faq.PageOutcome{SubPath: sp, URL: url, HTML: html, Err: err}
	}
	return out, nil
}

// renderPage opens a tab, navigates, waits for the page to settle and
// returns the document HTML. The tab is closed when ctx ends.
func (r *ChromeRenderer) renderPage(ctx context.Context, allocCtx context.Context, url string) (string, error) {
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	// Start the tab before deriving a timeout from it so the timeout
	// does not own the target.
	if err := chromedp.Run(tabCtx); err != nil {
		return "", err
	}

	navCtx, cancelNav := context.WithTimeout(tabCtx, r.opts.NavTimeout)
	err := chromedp.Run(navCtx, chromedp.Navigate(url))
	cancelNav()
	if err != nil {
		return "", err
	}

	var html string
	if err := chromedp.Run(tabCtx,
		chromedp.Sleep(r.opts.SettleWait),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	); err != nil {
		return "", err
	}
	return html, nil
}
