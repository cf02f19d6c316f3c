package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/coder/quartz"

	"github.com/osse101/RouletteHouse_Go/internal/domain"
	"github.com/osse101/RouletteHouse_Go/internal/logger"
)

// Client signs a payload on behalf of a path.
type Client interface {
	Sign(ctx context.Context, req SignRequest) (*SignatureResponse, error)
}

// Callback receives the outcome of an asynchronous sign request. Exactly one
// of resp and err is non-nil.
type Callback func(ctx context.Context, resp *SignatureResponse, err error)

// HTTPClientConfig configures the remote signer client.
type HTTPClientConfig struct {
	BaseURL    string
	SignerID   string
	Timeout    time.Duration
	MaxRetries int
	RetryDelay time.Duration
}

// HTTPClient talks to a remote signer over HTTP/JSON.
type HTTPClient struct {
	cfg    HTTPClientConfig
	client *http.Client
	clock  quartz.Clock
}

// NewHTTPClient creates a remote signer client. Zero values fall back to
// defaults.
func NewHTTPClient(cfg HTTPClientConfig, clock quartz.Clock) *HTTPClient {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.SignerID == "" {
		cfg.SignerID = SignerIDTestnet
	}
	if clock == nil {
		clock = quartz.NewReal()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &HTTPClient{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		clock:  clock,
	}
}

// Sign posts the request to the signer, retrying transport errors and 5xx
// responses with exponential backoff.
func (c *HTTPClient) Sign(ctx context.Context, req SignRequest) (*SignatureResponse, error) {
	log := logger.FromContext(ctx)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sign request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			delay := c.cfg.RetryDelay * time.Duration(1<<uint(attempt-1))
			log.Info(LogMsgRetryingSign, "attempt", attempt, "path", req.Path, "delay", delay)
			if err := c.wait(ctx, delay); err != nil {
				return nil, fmt.Errorf("%w: %v", domain.ErrOracleFailed, err)
			}
		}

		resp, err := c.do(ctx, body)
		if err != nil {
			lastErr = err
			log.Warn(LogMsgSignFailed, "error", err, "attempt", attempt)
			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			log.Warn(LogMsgSignerError, "status", resp.StatusCode, "attempt", attempt)
			continue
		}

		return decodeResponse(resp)
	}

	return nil, fmt.Errorf("%w: max retries exceeded: %v", domain.ErrOracleFailed, lastErr)
}

func (c *HTTPClient) do(ctx context.Context, body []byte) (*http.Response, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+signPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentTypeJSON)
	httpReq.Header.Set(headerSignerID, c.cfg.SignerID)
	return c.client.Do(httpReq)
}

func (c *HTTPClient) wait(ctx context.Context, d time.Duration) error {
	timer := c.clock.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func decodeResponse(resp *http.Response) (*SignatureResponse, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
		return nil, fmt.Errorf("%w: signer returned %d: %s", domain.ErrOracleFailed, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var sig SignatureResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&sig); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedSignature, err)
	}
	return &sig, nil
}
