package app

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/almasriprojects/QuranAnalyzer/internal/domain"
	"github.com/almasriprojects/QuranAnalyzer/internal/ports"
)

const previewRunes = 100

// AnalyzerService orchestrates prompt construction, model invocation and
// decoding of morphological analyses.
type AnalyzerService struct {
	completer   ports.Completer
	concurrency int
	logger      *slog.Logger
}

// NewAnalyzerService wires the service. concurrency bounds in-flight model
// calls of a bulk analysis; zero or less means unbounded.
func NewAnalyzerService(c ports.Completer, concurrency int, logger *slog.Logger) *AnalyzerService {
	return &AnalyzerService{
		completer:   c,
		concurrency: concurrency,
		logger:      logger,
	}
}

// AnalyzeWord asks the model for the analysis of a single word. Every failure
// is reported as a *domain.AnalysisError carrying the cause.
func (s *AnalyzerService) AnalyzeWord(ctx context.Context, word string) (domain.Analysis, error) {
	log := s.logger.With("word", word)
	log.InfoContext(ctx, "starting analysis")

	content, err := s.completer.Complete(ctx, ports.CompletionRequest{
		System: SystemPrompt,
		User:   BuildAnalysisPrompt(word),
	})
	if err != nil {
		log.ErrorContext(ctx, "model call failed", "error", err)
		return domain.Analysis{}, &domain.AnalysisError{Word: word, Err: err}
	}
	log.InfoContext(ctx, "raw response content", "preview", preview(content, previewRunes))

	cleaned := CleanJSONResponse(content)
	log.DebugContext(ctx, "cleaned content", "content", cleaned)

	analysis, err := decodeAnalysis(cleaned)
	if err != nil {
		log.ErrorContext(ctx, "failed to parse JSON response", "error", err, "content", cleaned)
		return domain.Analysis{}, &domain.AnalysisError{Word: word, Err: err}
	}

	log.InfoContext(ctx, "parsed JSON response")
	return analysis, nil
}

// decodeAnalysis parses text as a JSON object that carries at least the
// required keys with non-null values.
func decodeAnalysis(text string) (domain.Analysis, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return domain.Analysis{}, fmt.Errorf("%w: %w", domain.ErrInvalidLLMJSON, err)
	}
	if raw == nil {
		return domain.Analysis{}, fmt.Errorf("%w: expected a JSON object, got null", domain.ErrInvalidLLMJSON)
	}
	for _, key := range domain.RequiredKeys {
		v, ok := raw[key]
		if !ok || string(bytes.TrimSpace(v)) == "null" {
			return domain.Analysis{}, fmt.Errorf("%w: missing required key %q", domain.ErrInvalidLLMJSON, key)
		}
	}

	var a domain.Analysis
	if err := json.Unmarshal([]byte(text), &a); err != nil {
		return domain.Analysis{}, fmt.Errorf("%w: %w", domain.ErrInvalidLLMJSON, err)
	}
	return a, nil
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
