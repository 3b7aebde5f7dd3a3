package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUpstreamLLM    = errors.New("upstream LLM failure")
	ErrInvalidLLMJSON = errors.New("LLM returned invalid JSON")
	ErrAnalysisFailed = errors.New("analysis failed")
	ErrInvalidAPIKey  = errors.New("invalid OpenAI API key format")
)

// AnalysisError reports that a single word could not be analyzed.
// It matches ErrAnalysisFailed and the underlying cause with errors.Is.
type AnalysisError struct {
	Word string
	Err  error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed for word %q: %v", e.Word, e.Err)
}

func (e *AnalysisError) Unwrap() []error {
	return []error{ErrAnalysisFailed, e.Err}
}
