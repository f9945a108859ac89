package faq

import (
	"errors"
	"fmt"
)

// Stage names one step of the pipeline.
type Stage string

const (
	StageCapture    Stage = "capture"
	StageExtract    Stage = "extract"
	StageSynthesize Stage = "synthesize"
)

// FailureKind is the closed set of reasons a stage can fail.
type FailureKind string

const (
	KindInvalidInput        FailureKind = "invalid_input"
	KindUpstreamUnavailable FailureKind = "upstream_unavailable"
	KindRateLimited         FailureKind = "rate_limited"
	KindParseError          FailureKind = "parse_error"
	KindNotFound            FailureKind = "not_found"

	// KindInternalFault is never produced by a stage. It classifies errors
	// that are not a *Failure.
	KindInternalFault FailureKind = "internal_fault"
)

// Failure is the error every stage returns. Kind drives retry decisions;
// Detail is a short diagnostic safe to show to clients.
type Failure struct {
	Stage  Stage
	Kind   FailureKind
	Detail string
	Err    error
}

// Fail builds a stage failure.
func Fail(stage Stage, kind FailureKind, detail string, cause error) *Failure {
	return &Failure{Stage: stage, Kind: kind, Detail: detail, Err: cause}
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %v", f.Stage, f.Kind, f.Detail, f.Err)
	}
	return fmt.Sprintf("%s: %s: %s", f.Stage, f.Kind, f.Detail)
}

func (f *Failure) Unwrap() error { return f.Err }

// KindOf classifies err. Errors that are not a *Failure are internal
// faults.
func KindOf(err error) FailureKind {
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindInternalFault
}

// IsRateLimited reports whether err is a rate_limited stage failure.
func IsRateLimited(err error) bool {
	return KindOf(err) == KindRateLimited
}

// Diagnostic is the text stored on a failed job. Internal faults are
// reduced to a fixed message; their detail only goes to the logs.
func Diagnostic(err error) string {
	var f *Failure
	if errors.As(err, &f) {
		return fmt.Sprintf("%s failed (%s): %s", f.Stage, f.Kind, f.Detail)
	}
	return "internal error during FAQ generation"
}
