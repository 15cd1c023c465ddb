package ai

import (
	"errors"
	"fmt"
)

// ErrProfileNotFound is returned by generation helpers when the user has no
// freelancer profile to build a prompt from.
var ErrProfileNotFound = errors.New("freelancer profile not found")

// Stages identify which LLM call failed inside a ProviderError.
const (
	StagePainPoints        = "pain_points"
	StageDraft             = "draft"
	StageHumanize          = "humanize"
	StageJobMatch          = "job_match"
	StageProfileExtraction = "profile_extraction"
	StageProjectSummary    = "project_summary"
)

// ProviderError wraps a failure from the model provider with the stage that
// produced it, so handlers can report which step of a chain broke.
type ProviderError struct {
	Stage string
	Err   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("ai %s: %v", e.Stage, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

func providerErr(stage string, err error) error {
	return &ProviderError{Stage: stage, Err: err}
}
