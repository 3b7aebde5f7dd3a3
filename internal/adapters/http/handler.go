package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/almasriprojects/QuranAnalyzer/internal/app"
	"github.com/almasriprojects/QuranAnalyzer/internal/domain"
)

// APIPrefix is where the analysis routes are mounted.
const APIPrefix = "/api/v1"

type Handler struct {
	svc    *app.AnalyzerService
	logger *slog.Logger
}

func NewHandler(svc *app.AnalyzerService, logger *slog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)

	api := e.Group(APIPrefix)
	api.POST("/analyze", h.Analyze)
	api.POST("/analyze/bulk", h.AnalyzeBulk)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) Analyze(c echo.Context) error {
	var req AnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "request body must be a JSON object with a \"word\" string"})
	}
	if strings.TrimSpace(req.Word) == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "word is required"})
	}

	analysis, err := h.svc.AnalyzeWord(c.Request().Context(), req.Word)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(http.StatusOK, analysis)
}

func (h *Handler) AnalyzeBulk(c echo.Context) error {
	var req BulkAnalyzeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Detail: "request body must be a JSON object with a \"words\" string array"})
	}

	results := h.svc.AnalyzeWords(c.Request().Context(), req.Words)
	if len(results) < len(req.Words) {
		h.logger.WarnContext(c.Request().Context(), "bulk analysis dropped words",
			"request_id", requestID(c),
			"requested", len(req.Words),
			"returned", len(results),
		)
	}
	return c.JSON(http.StatusOK, BulkAnalyzeResponse{Results: results})
}

// mapError turns every failure into a 500 whose detail is the error text.
func (h *Handler) mapError(c echo.Context, err error) error {
	rid := requestID(c)

	var ae *domain.AnalysisError
	switch {
	case errors.As(err, &ae):
		h.logger.ErrorContext(c.Request().Context(), "error analyzing word",
			"request_id", rid, "word", ae.Word, "error", err)
	default:
		h.logger.ErrorContext(c.Request().Context(), "internal error", "request_id", rid, "error", err)
	}
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Detail: err.Error()})
}
