package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/arvind-menon/dossier/internal/resilience"
)

const defaultSystemPrompt = "You are a document-extraction assistant. You MUST respond with a single valid JSON object, no other text."

// ClientConfig configures the OpenAI-compatible chat client backing the
// inference gateway.
type ClientConfig struct {
	BaseURL     string // e.g. "https://api.openai.com/v1" or a self-hosted endpoint
	APIKey      string
	Model       string
	Temperature float32
	Timeout     time.Duration

	// Retry is the injected retry policy for transient failures.
	Retry resilience.RetryConfig
}

// Client implements Gateway against a chat/completions endpoint.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client
	log        *slog.Logger
	degraded   atomic.Int64
}

func NewClient(cfg ClientConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if cfg.Retry.MaxAttempts <= 0 {
		cfg.Retry = resilience.DefaultRetryConfig()
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        logger,
	}
}

// Infer sends the prompt and decodes a flat JSON object from the reply.
// Transient failures are retried per the injected policy; once the bound is
// exhausted the call degrades to an empty Result with a nil error, so callers
// see "no data" rather than an error. The degraded case is logged distinctly
// (llm.infer.degraded) for telemetry.
func (c *Client) Infer(ctx context.Context, req InferRequest) (Result, error) {
	start := time.Now()

	retryCfg := c.cfg.Retry
	retryCfg.OnRetry = func(attempt int, err error) {
		c.log.Warn("llm.infer.retry", "page_id", req.PageID, "attempt", attempt, "error", err)
	}

	res, err := resilience.DoVal(ctx, retryCfg, func(ctx context.Context) (Result, error) {
		return c.inferOnce(ctx, req)
	})
	if err != nil {
		c.degraded.Add(1)
		c.log.Warn("llm.infer.degraded",
			"page_id", req.PageID,
			"attempts", retryCfg.MaxAttempts,
			"error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return Result{}, nil
	}

	c.log.Info("llm.infer.ok",
		"page_id", req.PageID,
		"keys", len(res),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

// Degraded reports how many Infer calls have exhausted their retries since
// the client was created. Sequential callers can diff it around a unit of
// work to attribute degradations.
func (c *Client) Degraded() int64 {
	return c.degraded.Load()
}

func (c *Client) inferOnce(ctx context.Context, req InferRequest) (Result, error) {
	system := req.System
	if system == "" {
		system = defaultSystemPrompt
	}

	body := map[string]any{
		"model":           c.cfg.Model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages": []map[string]any{
			{"role": "system", "content": system},
			{"role": "user", "content": req.Prompt},
		},
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := c.post(ctx, endpoint, body)
	if err != nil {
		return nil, err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}
	if len(cc.Choices) == 0 {
		return nil, fmt.Errorf("no choices in chat response")
	}

	content := strings.TrimSpace(cc.Choices[0].Message.Content)
	m, ok := ExtractJSON(content)
	if !ok {
		return nil, fmt.Errorf("no JSON object in reply for page %s", req.PageID)
	}

	if req.Schema != nil {
		doc, err := json.Marshal(m)
		if err != nil {
			return nil, fmt.Errorf("re-encode reply: %w", err)
		}
		if err := ValidateAgainstSchema(req.Schema, doc); err != nil {
			return nil, fmt.Errorf("reply schema validation: %w", err)
		}
	}
	return Result(m), nil
}

func (c *Client) post(ctx context.Context, url string, body map[string]any) ([]byte, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, err
	}
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat http error: %w", err)
	}
	defer func(rc io.ReadCloser) {
		if err := rc.Close(); err != nil {
			c.log.Warn("llm.response_body_close_error", "error", err)
		}
	}(resp.Body)

	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("chat status %d: %s", resp.StatusCode, truncate(string(raw), 512))
	}
	return raw, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
