package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/almasriprojects/QuranAnalyzer/internal/domain"
)

type wordOutcome struct {
	analysis domain.Analysis
	err      error
}

// AnalyzeWords analyzes every word concurrently and returns the successful
// analyses in input order. Failed words are logged and left out, so the
// result may be shorter than words. One failure never cancels the others.
func (s *AnalyzerService) AnalyzeWords(ctx context.Context, words []string) []domain.Analysis {
	outcomes := make([]wordOutcome, len(words))

	var g errgroup.Group
	if s.concurrency > 0 {
		g.SetLimit(s.concurrency)
	}
	for i, word := range words {
		g.Go(func() error {
			a, err := s.AnalyzeWord(ctx, word)
			outcomes[i] = wordOutcome{analysis: a, err: err}
			return nil
		})
	}
	_ = g.Wait()

	results := make([]domain.Analysis, 0, len(words))
	for i, o := range outcomes {
		if o.err != nil {
			s.logger.ErrorContext(ctx, "skipping word after failed analysis",
				"word", words[i], "index", i, "error", o.err)
			continue
		}
		results = append(results, o.analysis)
	}
	return results
}
