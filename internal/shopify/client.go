// Package shopify is the GraphQL Admin API client used by the sync layer.
// Mutations go through a retrying executor with classified failures; lookups
// are single-shot reads.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/mkravets/shopify-sheet-sync/internal/run"
)

// Config carries the credentials and tuning for a client.
// Shop, Token and APIVersion are opaque; the client only checks presence.
type Config struct {
	Shop            string
	Token           string
	APIVersion      string
	TimeoutSeconds  int
	Policy          RetryPolicy
	MutationsPerSec float64 // cross-row mutation pacing; 0 disables
	Logger          *zap.Logger
	Timings         *run.Timings // optional; nil disables metrics
}

// Client talks to the Shopify GraphQL Admin API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	policy     RetryPolicy
	limiter    *rate.Limiter
	log        *zap.Logger
	timings    *run.Timings

	// sleep is replaceable in tests so retry waits need no real time.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a client for one shop.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var limiter *rate.Limiter
	if cfg.MutationsPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.MutationsPerSec), 1)
	}

	if cfg.Policy.MaxAttempts == 0 {
		cfg.Policy = DefaultRetryPolicy()
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
		endpoint: fmt.Sprintf("https://%s.myshopify.com/admin/api/%s/graphql.json", cfg.Shop, cfg.APIVersion),
		token:    cfg.Token,
		policy:   cfg.Policy,
		limiter:  limiter,
		log:      logger,
		timings:  cfg.Timings,
		sleep:    ctxSleep,
	}
}

func ctxSleep(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// do performs one GraphQL request and classifies any failure into APIError.
func (c *Client) do(ctx context.Context, query string, vars map[string]interface{}, out interface{}) error {
	payload, err := json.Marshal(map[string]interface{}{
		"query":     query,
		"variables": vars,
	})
	if err != nil {
		return fmt.Errorf("marshal error: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.token)

	if c.timings != nil {
		c.timings.IncAttempt()
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// Timeouts and connection failures are transient.
		return &APIError{Kind: ErrServerError, Messages: []string{err.Error()}}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to envelope decoding
	case resp.StatusCode == http.StatusTooManyRequests:
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			Kind:       ErrRateLimited,
			Status:     resp.StatusCode,
			Messages:   []string{strings.TrimSpace(string(body))},
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	case resp.StatusCode >= 500:
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			Kind:     ErrServerError,
			Status:   resp.StatusCode,
			Messages: []string{strings.TrimSpace(string(body))},
		}
	default:
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var envelope graphQLResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		throttled := false
		for _, ge := range envelope.Errors {
			messages = append(messages, ge.Message)
			if ge.Extensions.Code == "THROTTLED" {
				throttled = true
			}
		}
		if throttled {
			return &APIError{Kind: ErrRateLimited, Messages: messages}
		}
		return &APIError{Kind: ErrValidation, Messages: messages}
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode data: %w", err)
		}
	}
	return nil
}

// execute runs a mutation with retry and backoff. Rate-limited and
// server-error failures each get their own attempt budget; validation
// failures return immediately. The last classified error is returned
// wrapped when a budget is exhausted.
func (c *Client) execute(ctx context.Context, query string, vars map[string]interface{}, out interface{}) error {
	start := time.Now()
	defer func() {
		if c.timings != nil {
			c.timings.ObserveMutate(time.Since(start))
		}
	}()

	var rateAttempts, serverAttempts int
	var totalWait time.Duration

	for {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
		}

		err := c.do(ctx, query, vars, out)
		if err == nil {
			return nil
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) || !apiErr.Retryable() {
			return err
		}

		var attempts *int
		if apiErr.Kind == ErrRateLimited {
			attempts = &rateAttempts
		} else {
			attempts = &serverAttempts
		}
		*attempts++
		if *attempts >= c.policy.MaxAttempts {
			return fmt.Errorf("max retries exceeded: %w", apiErr)
		}

		hint := time.Duration(apiErr.RetryAfter * float64(time.Second))
		delay := c.policy.Delay(*attempts, hint)
		totalWait += delay
		if c.policy.MaxTotalWait > 0 && totalWait > c.policy.MaxTotalWait {
			return fmt.Errorf("retry wait budget exhausted: %w", apiErr)
		}

		if c.timings != nil {
			c.timings.IncRetry()
		}
		c.log.Debug("retrying mutation",
			zap.String("kind", string(apiErr.Kind)),
			zap.Int("attempt", *attempts),
			zap.Duration("backoff", delay),
		)

		if err := c.sleep(ctx, delay); err != nil {
			return err
		}
	}
}

// parseRetryAfter parses a Retry-After header value in seconds.
func parseRetryAfter(value string) float64 {
	if value == "" {
		return 0
	}
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil || seconds < 0 {
		return 0
	}
	return seconds
}
