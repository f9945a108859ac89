package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/ai/llm"
	"github.com/Abraxas-365/faqgen/pkg/asyncx"
	"github.com/Abraxas-365/faqgen/pkg/faq"
	"github.com/Abraxas-365/faqgen/pkg/faq/capture"
	"github.com/Abraxas-365/faqgen/pkg/fsx"
	"github.com/Abraxas-365/faqgen/pkg/logx"
)

// RecordFile is the workspace artifact holding the extracted record.
const RecordFile = "record.json"

// Stage turns captured pages into a structured record.
type Stage struct {
	extractor faq.Extractor
	timeout   time.Duration
}

// NewStage creates the stage. timeout bounds a single extractor call.
func NewStage(extractor faq.Extractor, timeout time.Duration) *Stage {
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	return &Stage{extractor: extractor, timeout: timeout}
}

// Run reads pages from ws, minimises them and asks the extractor for a
// record, which is also stored as RecordFile.
func (s *Stage) Run(ctx context.Context, req faq.Request, ws *fsx.Workspace, pages []capture.Page) (json.RawMessage, error) {
	if len(pages) == 0 {
		return nil, faq.Fail(faq.StageExtract, faq.KindNotFound, "no captured documents", nil)
	}

	docs, err := loadDocuments(ctx, ws, pages)
	if err != nil {
		return nil, err
	}

	log := logx.WithContext(ctx).WithFields(logx.Fields{
		"platform":  req.Platform,
		"language":  req.Language,
		"documents": len(docs),
	})
	log.Info("extract: requesting structured record")

	record, err := asyncx.WithTimeout(ctx, s.timeout, func(ctx context.Context) (json.RawMessage, error) {
		return s.extractor.Extract(ctx, docs, req.Platform, req.Language)
	})
	if err != nil {
		return nil, classify(err)
	}

	record = bytes.TrimSpace(record)
	if len(record) == 0 || !json.Valid(record) {
		return nil, faq.Fail(faq.StageExtract, faq.KindParseError, "extractor returned malformed JSON", nil)
	}

	if _, err := ws.Write(ctx, RecordFile, record); err != nil {
		return nil, faq.Fail(faq.StageExtract, faq.KindUpstreamUnavailable, "could not store extracted record", err)
	}

	log.WithField("bytes", len(record)).Info("extract: record stored")
	return record, nil
}

func loadDocuments(ctx context.Context, ws *fsx.Workspace, pages []capture.Page) ([]faq.Document, error) {
	docs := make([]faq.Document, 0, len(pages))
	for _, p := range pages {
		data, err := ws.Read(ctx, p.Path)
		if err != nil {
			if fsx.IsNotFound(err) {
				return nil, faq.Fail(faq.StageExtract, faq.KindNotFound, "captured document missing: "+p.Name, err)
			}
			return nil, faq.Fail(faq.StageExtract, faq.KindUpstreamUnavailable, "could not read captured document "+p.Name, err)
		}

		_, body, err := Minimize(string(data))
		if err != nil {
			logx.WithContext(ctx).WithError(err).WithField("document", p.Name).Warn("extract: could not minimise document")
			continue
		}
		if body == "" {
			continue
		}
		docs = append(docs, faq.Document{Name: p.Name + ".html", Content: body})
	}

	if len(docs) == 0 {
		return nil, faq.Fail(faq.StageExtract, faq.KindNotFound, "no HTML content to process", nil)
	}
	return docs, nil
}

// classify maps an extractor error onto a failure kind. Throttling and
// capacity errors become rate_limited so the caller can retry them.
func classify(err error) error {
	var f *faq.Failure
	if errors.As(err, &f) {
		return f
	}
	switch {
	case llm.IsRateLimited(err):
		return faq.Fail(faq.StageExtract, faq.KindRateLimited, "extraction service is rate limited", err)
	case errors.Is(err, context.DeadlineExceeded):
		return faq.Fail(faq.StageExtract, faq.KindUpstreamUnavailable, "extraction timed out", err)
	default:
		return faq.Fail(faq.StageExtract, faq.KindUpstreamUnavailable, "extraction service error", err)
	}
}
