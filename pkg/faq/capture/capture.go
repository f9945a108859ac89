package capture

import (
	"context"
	"fmt"
	"strings"

	"github.com/Abraxas-365/faqgen/pkg/faq"
	"github.com/Abraxas-365/faqgen/pkg/fsx"
	"github.com/Abraxas-365/faqgen/pkg/logx"
)

// Page is one captured sub-page stored in the job workspace.
type Page struct {
	Name    string
	SubPath string
	URL     string
	Path    string
}

// Stage renders every sub-page of the requested platform and stores the
// HTML. It succeeds only when all sub-pages render.
type Stage struct {
	renderer faq.Renderer
}

func NewStage(renderer faq.Renderer) *Stage {
	return &Stage{renderer: renderer}
}

// Run captures req.URL into ws.
func (s *Stage) Run(ctx context.Context, req faq.Request, ws *fsx.Workspace) ([]Page, error) {
	if req.URL == "" || ws == nil {
		return nil, faq.Fail(faq.StageCapture, faq.KindInvalidInput, "url and workspace are required", nil)
	}

	subPaths := req.Platform.SubPaths()
	log := logx.WithContext(ctx).WithFields(logx.Fields{
		"url":      req.URL,
		"platform": req.Platform,
		"pages":    len(subPaths),
	})
	log.Info("capture: rendering pages")

	outcomes, err := s.renderer.Render(ctx, req.URL, subPaths)
	if err != nil {
		return nil, faq.Fail(faq.StageCapture, faq.KindUpstreamUnavailable, "renderer unavailable", err)
	}

	var failed []string
	var firstErr error
	for _, sp := range subPaths {
		o, ok := outcomes[sp]
		if ok && o.OK() && strings.TrimSpace(o.HTML) != "" {
			continue
		}
		failed = append(failed, faq.PageURL(req.URL, sp))
		if ok && o.Err != nil && firstErr == nil {
			firstErr = o.Err
		}
	}
	if len(failed) > 0 {
		log.WithField("failed", failed).Warn("capture: some pages could not be rendered")
		return nil, faq.Fail(faq.StageCapture, faq.KindUpstreamUnavailable,
			fmt.Sprintf("failed to render %d of %d pages: %s", len(failed), len(subPaths), strings.Join(failed, ", ")),
			firstErr)
	}

	pages := make([]Page, 0, len(subPaths))
	for _, sp := range subPaths {
		o := outcomes[sp]
		name := faq.ArtifactName(sp)
		path, err := ws.Write(ctx, name+".html", []byte(o.HTML))
		if err != nil {
			return nil, faq.Fail(faq.StageCapture, faq.KindUpstreamUnavailable, "could not store captured page "+name, err)
		}
		pages = append(pages, Page{Name: name, SubPath: sp, URL: o.URL, Path: path})
	}

	log.Infof("capture: stored %d page(s)", len(pages))
	return pages, nil
}
