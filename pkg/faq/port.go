package faq

import (
	"context"
	"encoding/json"

	"github.com/Abraxas-365/faqgen/pkg/jobx"
)

// PageOutcome is what a Renderer reports for one sub-path. Exactly one
// of HTML and Err is meaningful.
type PageOutcome struct {
	SubPath string
	URL     string
	HTML    string
	Err     error
}

// OK reports whether the page was rendered.
func (o PageOutcome) OK() bool { return o.Err == nil }

// Renderer loads pages in a browser and returns their rendered HTML, one
// outcome per requested sub-path.
type Renderer interface {
	Render(ctx context.Context, baseURL string, subPaths []string) (map[string]PageOutcome, error)
}

// Document is a captured page prepared for extraction.
type Document struct {
	Name    string
	Content string
}

// Extractor turns captured documents into a structured record. Errors
// caused by upstream throttling satisfy llm.IsRateLimited.
type Extractor interface {
	Extract(ctx context.Context, docs []Document, platform Platform, lang Language) (json.RawMessage, error)
}

// SynthesisInput carries role-tagged prompts to the Synthesizer.
type SynthesisInput struct {
	Language          Language
	Count             int
	SystemPrompt      string
	InstructionPrompt string
}

// Synthesizer asks a chat model for FAQ text and returns its raw reply.
type Synthesizer interface {
	Synthesize(ctx context.Context, in SynthesisInput) (string, error)
}

// Notifier tells a submitter how their job ended.
type Notifier interface {
	NotifyJob(ctx context.Context, to string, job *jobx.Job) error
}
