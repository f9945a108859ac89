// Package faqtest provides scripted collaborators for exercising the
// pipeline without a browser or model.
package faqtest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Abraxas-365/faqgen/pkg/faq"
)

// Renderer returns a small page for every sub-path unless Fail names it.
type Renderer struct {
	mu    sync.Mutex
	Fail  map[string]error
	calls int
}

var _ faq.Renderer = (*Renderer)(nil)

func (r *Renderer) Render(_ context.Context, baseURL string, subPaths []string) (map[string]faq.PageOutcome, error) {
	r.mu.Lock()
	r.calls++
	r.mu.Unlock()

	out := make(map[string]faq.PageOutcome, len(subPaths))
	for _, sp := range subPaths {
		o := faq.PageOutcome{SubPath: sp, URL: faq.PageURL(baseURL, sp)}
		if err := r.Fail[sp]; err != nil {
			o.Err = err
		} else {
			o.HTML = fmt.Sprintf("<html><head><title>Sample</title></head><body><p>Profile %s</p></body></html>", o.URL)
		}
		out[sp] = o
	}
	return out, nil
}

func (r *Renderer) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

// Extractor fails with Errs in order, then returns Record.
type Extractor struct {
	mu     sync.Mutex
	Errs   []error
	Record json.RawMessage
	calls  int
}

var _ faq.Extractor = (*Extractor)(nil)

func (e *Extractor) Extract(context.Context, []faq.Document, faq.Platform, faq.Language) (json.RawMessage, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	i := e.calls
	e.calls++
	if i < len(e.Errs) {
		return nil, e.Errs[i]
	}
	if e.Record == nil {
		return json.RawMessage(`{"name": "Sample", "bio": "A sample profile"}`), nil
	}
	return e.Record, nil
}

func (e *Extractor) Calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls
}

// Synthesizer returns Reply, or Err when set. Release, when non-nil,
// blocks every call until it is closed.
type Synthesizer struct {
	Reply   string
	Err     error
	Release chan struct{}
}

var _ faq.Synthesizer = (*Synthesizer)(nil)

func (s *Synthesizer) Synthesize(ctx context.Context, _ faq.SynthesisInput) (string, error) {
	if s.Release != nil {
		select {
		case <-s.Release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if s.Err != nil {
		return "", s.Err
	}
	return s.Reply, nil
}

// Items renders n well-formed question/answer pairs as a JSON array.
func Items(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf(`{"question": "Question %d?", "answer": "Answer %d."}`, i+1, i+1)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Sleeper records requested waits without sleeping.
type Sleeper struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (s *Sleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d > 0 {
		s.mu.Lock()
		s.waits = append(s.waits, d)
		s.mu.Unlock()
	}
	return ctx.Err()
}

// Waits returns the non-zero waits seen so far.
func (s *Sleeper) Waits() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Duration(nil), s.waits...)
}
