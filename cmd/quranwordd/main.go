package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	httpadapter "github.com/almasriprojects/QuranAnalyzer/internal/adapters/http"
	"github.com/almasriprojects/QuranAnalyzer/internal/adapters/llm/openai"
	"github.com/almasriprojects/QuranAnalyzer/internal/app"
	"github.com/almasriprojects/QuranAnalyzer/internal/config"
)

const pingTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	httpClient := openai.NewHTTPClient(openai.Timeouts{
		Connect: cfg.LLMConnectTimeout,
		Read:    cfg.LLMReadTimeout,
		Write:   cfg.LLMWriteTimeout,
		Pool:    cfg.LLMPoolTimeout,
		Request: cfg.LLMRequestTimeout,
	})
	llmClient := openai.NewClient(
		httpClient,
		cfg.OpenAIAPIKey,
		cfg.OpenAIBaseURL,
		cfg.OpenAIModel,
		cfg.OpenAITemperature,
		cfg.OpenAIMaxTokens,
		logger,
	)
	logger.Info("using OpenAI model", "model", cfg.OpenAIModel, "base_url", cfg.OpenAIBaseURL)

	pingCtx, cancelPing := context.WithTimeout(context.Background(), pingTimeout)
	if err := llmClient.Ping(pingCtx); err != nil {
		logger.Warn("connectivity check to model provider failed", "error", err)
	} else {
		logger.Info("connectivity check to model provider passed")
	}
	cancelPing()

	svc := app.NewAnalyzerService(llmClient, cfg.BulkConcurrency, logger)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	httpadapter.Use(e, logger, cfg.CORSAllowedOrigins)

	handler := httpadapter.NewHandler(svc, logger)
	handler.Register(e)

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, e, cfg.HTTPAddr, cfg.ShutdownTimeout, llmClient, logger); err != nil {
		stop()
		os.Exit(1)
	}
}

// serve runs e on addr until ctx is done or the listener fails, then shuts
// the server down and closes c. It returns the listener error, if any.
func serve(ctx context.Context, e *echo.Echo, addr string, shutdownTimeout time.Duration, c io.Closer, logger *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", addr)
		errCh <- e.Start(addr)
	}()

	var serveErr error
	done := false
	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		done = true
		if !errors.Is(err, http.ErrServerClosed) {
			serveErr = err
			logger.Error("server error", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	if !done {
		<-errCh
	}
	if err := c.Close(); err != nil {
		logger.Error("error closing model HTTP client", "error", err)
	}
	return serveErr
}
