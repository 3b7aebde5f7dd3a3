package http

import "github.com/almasriprojects/QuranAnalyzer/internal/domain"

// AnalyzeRequest is the body of POST /api/v1/analyze.
type AnalyzeRequest struct {
	Word string `json:"word"`
}

// BulkAnalyzeRequest is the body of POST /api/v1/analyze/bulk.
type BulkAnalyzeRequest struct {
	Words []string `json:"words"`
}

// BulkAnalyzeResponse holds the analyses that succeeded, in request order.
type BulkAnalyzeResponse struct {
	Results []domain.Analysis `json:"results"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}
