package openai

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/almasriprojects/QuranAnalyzer/internal/domain"
	"github.com/almasriprojects/QuranAnalyzer/internal/ports"
)

// maxErrorBody caps how much of a failed response body ends up in an error.
const maxErrorBody = 512

// Timeouts configures the outbound transport. net/http has no per-write or
// pool-acquire deadline: Write only bounds the wait for a 100-continue reply
// and Pool only evicts idle connections. Request is the bound that covers
// sending the body and waiting for a free connection.
type Timeouts struct {
	Connect time.Duration // dial and TLS handshake
	Read    time.Duration // response headers after the request is written
	Write   time.Duration // ExpectContinueTimeout
	Pool    time.Duration // IdleConnTimeout
	Request time.Duration // whole call, connection wait and bodies included
}

// NewHTTPClient returns the process-wide client used for every model call.
// Redirects are followed and certificates verified.
func NewHTTPClient(t Timeouts) *http.Client {
	dialer := &net.Dialer{
		Timeout:   t.Connect,
		KeepAlive: 30 * time.Second,
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
		TLSHandshakeTimeout:   t.Connect,
		ResponseHeaderTimeout: t.Read,
		ExpectContinueTimeout: t.Write,
		IdleConnTimeout:       t.Pool,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   20,
	}
	return &http.Client{
		Transport: transport,
		Timeout:   t.Request,
	}
}

// Client implements ports.Completer against an OpenAI-compatible
// chat completions API.
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	maxTokens   int
	logger      *slog.Logger
}

var _ ports.Completer = (*Client)(nil)

func NewClient(httpClient *http.Client, apiKey, baseURL, model string, temperature float64, maxTokens int, logger *slog.Logger) *Client {
	return &Client{
		httpClient:  httpClient,
		apiKey:      apiKey,
		baseURL:     strings.TrimRight(baseURL, "/"),
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends the system and user messages and returns the first
// choice's content, trimmed. Every failure wraps domain.ErrUpstreamLLM.
func (c *Client) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	content, err := c.callLLM(ctx, req.System, req.User)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
	}
	return content, nil
}

func (c *Client) callLLM(ctx context.Context, system, user string) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.DebugContext(ctx, "sending chat completion", "model", c.model)
	respBody, err := c.do(req)
	if err != nil {
		return "", err
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	if len(chatResp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// Ping checks that the provider is reachable and accepts the key by
// listing models.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	if _, err := c.do(req); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUpstreamLLM, err)
	}
	return nil
}

func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("upstream status %d: %s", resp.StatusCode, truncate(respBody, maxErrorBody))
	}
	return respBody, nil
}

// Close releases pooled connections. The client must not be used afterwards.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	c.logger.Info("closed model HTTP client")
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
