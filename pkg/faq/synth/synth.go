package synth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/ai/llm"
	"github.com/Abraxas-365/faqgen/pkg/asyncx"
	"github.com/Abraxas-365/faqgen/pkg/faq"
	"github.com/Abraxas-365/faqgen/pkg/fsx"
	"github.com/Abraxas-365/faqgen/pkg/logx"
)

// DocumentFile is the workspace artifact holding the rendered FAQ.
const DocumentFile = "faq.md"

// Document is the synthesized FAQ.
type Document struct {
	Items    []faq.Item
	Markdown string
}

// Stage turns a structured record into the final FAQ document.
type Stage struct {
	synthesizer faq.Synthesizer
	timeout     time.Duration
}

// NewStage creates the stage. timeout bounds a single synthesizer call.
func NewStage(synthesizer faq.Synthesizer, timeout time.Duration) *Stage {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Stage{synthesizer: synthesizer, timeout: timeout}
}

// Run prompts the synthesizer, repairs and parses its reply, keeps at
// most req.FAQCount items and renders them.
func (s *Stage) Run(ctx context.Context, req faq.Request, ws *fsx.Workspace, record json.RawMessage) (*Document, error) {
	if len(record) == 0 {
		return nil, faq.Fail(faq.StageSynthesize, faq.KindNotFound, "no structured record", nil)
	}
	if req.FAQCount < faq.MinFAQCount || req.FAQCount > faq.MaxFAQCount {
		return nil, faq.Fail(faq.StageSynthesize, faq.KindInvalidInput, "faq count out of range", nil)
	}

	formatted, err := faq.FormatContent(record)
	if err != nil {
		return nil, faq.Fail(faq.StageSynthesize, faq.KindInvalidInput, "structured record is not valid JSON", err)
	}

	tmpl := faq.SynthesisTemplateFor(req.Language)
	in := faq.SynthesisInput{
		Language:          req.Language,
		Count:             req.FAQCount,
		SystemPrompt:      tmpl.System,
		InstructionPrompt: faq.SynthesisPrompt(req.Platform, req.Language, req.FAQCount, formatted),
	}

	log := logx.WithContext(ctx).WithFields(logx.Fields{
		"language":  req.Language,
		"faq_count": req.FAQCount,
	})
	log.Info("synthesize: requesting FAQ")

	raw, err := asyncx.WithTimeout(ctx, s.timeout, func(ctx context.Context) (string, error) {
		return s.synthesizer.Synthesize(ctx, in)
	})
	if err != nil {
		return nil, classify(err)
	}

	items, err := ParseItems(raw)
	if err != nil {
		log.WithError(err).WithField("raw", raw).Error("synthesize: unusable model output")
		return nil, err
	}
	if len(items) > req.FAQCount {
		log.Infof("synthesize: limited FAQ list from %d to %d items", len(items), req.FAQCount)
		items = faq.Truncate(items, req.FAQCount)
	}

	doc := &Document{Items: items, Markdown: faq.RenderMarkdown(items)}
	if ws != nil {
		if _, err := ws.Write(ctx, DocumentFile, []byte(doc.Markdown)); err != nil {
			return nil, faq.Fail(faq.StageSynthesize, faq.KindUpstreamUnavailable, "could not store FAQ document", err)
		}
	}

	log.WithField("items", len(items)).Info("synthesize: FAQ generated")
	return doc, nil
}

func classify(err error) error {
	var f *faq.Failure
	if errors.As(err, &f) {
		return f
	}
	switch {
	case llm.IsRateLimited(err):
		return faq.Fail(faq.StageSynthesize, faq.KindRateLimited, "synthesis service is rate limited", err)
	case errors.Is(err, context.DeadlineExceeded):
		return faq.Fail(faq.StageSynthesize, faq.KindUpstreamUnavailable, "synthesis timed out", err)
	default:
		return faq.Fail(faq.StageSynthesize, faq.KindUpstreamUnavailable, "synthesis service error", err)
	}
}
