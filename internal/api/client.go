package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"travel-planner/internal/config"
	"travel-planner/internal/metrics"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Envelope is the wrapper every backend response uses.
type Envelope struct {
	Status       string          `json:"status"`
	Message      string          `json:"message,omitempty"`
	ErrorMessage string          `json:"error_message,omitempty"`
	Data         json.RawMessage `json:"data,omitempty"`
}

// statusFailure is the envelope's failure sentinel. One backend variant has
// been seen emitting a misspelled sentinel; that is a backend defect and is
// not honored here.
const statusFailure = "error_message"

// Failed reports whether the envelope signals a logical failure.
func (e *Envelope) Failed() bool {
	return e.Status == statusFailure
}

// Client is the travel backend API client. All resource modules (auth,
// users, events, visitor, trip, history) are methods on it, built over the
// single request primitive.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
	metrics    *metrics.Store
}

// NewClient creates a new API client for the configured base URL.
func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: cfg.APIBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger.With().Str("component", "api").Logger(),
	}
}

// WithMetrics attaches a metrics store; every request is then recorded.
func (c *Client) WithMetrics(store *metrics.Store) *Client {
	c.metrics = store
	return c
}

// request issues one API call and applies the envelope contract: transport
// failures and non-2xx statuses reject, 2xx bodies must parse as an
// envelope, and an envelope carrying the failure sentinel rejects with the
// server's message. Callers either get an envelope with meaningful Data or
// an error; never a malformed envelope silently.
func (c *Client) request(ctx context.Context, method, path string, body any) (*Envelope, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(start)
	if err != nil {
		c.record(method, path, latency, err)
		c.logger.Warn().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		httpErr := &Error{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
		c.record(method, path, latency, httpErr)
		c.logger.Warn().Int("status", resp.StatusCode).Str("method", method).Str("path", path).Msg("api error")
		return nil, httpErr
	}

	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.record(method, path, latency, err)
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if env.Failed() {
		msg := env.ErrorMessage
		if msg == "" {
			msg = "unknown error"
		}
		appErr := &AppError{Message: msg}
		c.record(method, path, latency, appErr)
		return nil, appErr
	}

	c.record(method, path, latency, nil)
	c.logger.Debug().Str("method", method).Str("path", path).Dur("latency", latency).Msg("request ok")
	return &env, nil
}

// do runs request and unmarshals the envelope's data into out when out is
// non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	env, err := c.request(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode data for %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) record(method, path string, latency time.Duration, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.Record(method+" "+path, latency, err)
}
