package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "glamora/pkg/errors"
	"glamora/pkg/logger"

	"github.com/google/uuid"
)

// Client is the shared retrying JSON client every backend adapter goes
// through. Failed attempts (transport errors and non-2xx alike) are retried
// with a linearly growing backoff before the last error is surfaced.
type Client struct {
	BaseURL      string
	Token        string
	HTTPClient   *http.Client
	MaxRetries   int
	RetryBackoff time.Duration

	log *logger.Logger
}

type Options struct {
	BaseURL      string
	Token        string
	Timeout      time.Duration
	MaxRetries   int
	RetryBackoff time.Duration
	Log          *logger.Logger
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RetryBackoff <= 0 {
		opts.RetryBackoff = 1 * time.Second
	}
	if opts.Log == nil {
		opts.Log = logger.New(logger.Config{Component: "httpclient"})
	}
	return &Client{
		BaseURL:      opts.BaseURL,
		Token:        opts.Token,
		HTTPClient:   &http.Client{Timeout: opts.Timeout},
		MaxRetries:   opts.MaxRetries,
		RetryBackoff: opts.RetryBackoff,
		log:          opts.Log,
	}
}

type Response struct {
	*http.Response
	Body []byte
}

func (r *Response) DecodeJSON(target any) error {
	return json.Unmarshal(r.Body, target)
}

func (c *Client) GET(ctx context.Context, path string) (*Response, error) {
	return c.withRetry(ctx, http.MethodGet, path, nil)
}

func (c *Client) POST(ctx context.Context, path string, body any) (*Response, error) {
	return c.withRetry(ctx, http.MethodPost, path, body)
}

func (c *Client) DELETE(ctx context.Context, path string) (*Response, error) {
	return c.withRetry(ctx, http.MethodDelete, path, nil)
}

func (c *Client) withRetry(ctx context.Context, method, path string, body any) (*Response, error) {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, apperrors.Internal("failed to marshal request body", err)
		}
		payload = data
	}

	var lastErr error
	for attempt := 0; attempt <= c.MaxRetries; attempt++ {
		resp, err := c.do(ctx, method, path, payload)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if attempt < c.MaxRetries {
			delay := c.RetryBackoff * time.Duration(attempt+1)
			c.log.Warn("request failed, retrying",
				"method", method,
				"path", path,
				"attempt", attempt+1,
				"max_retries", c.MaxRetries,
				"delay", delay,
				"error", err,
			)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, apperrors.Transport("request cancelled", ctx.Err())
			}
		}
	}
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) (*Response, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reqBody)
	if err != nil {
		return nil, apperrors.Internal("failed to create request", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Token "+c.Token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, apperrors.Transport("request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Transport("failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.Transport(serverMessage(resp.StatusCode, resp.Status, respBody), nil)
	}

	return &Response{Response: resp, Body: respBody}, nil
}

// serverMessage extracts the server-provided error text, falling back to the
// HTTP status line.
func serverMessage(statusCode int, status string, body []byte) string {
	var errResp struct {
		Error   string `json:"error"`
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Error != "" {
			return errResp.Error
		}
		if errResp.Detail != "" {
			return errResp.Detail
		}
		if errResp.Message != "" {
			return errResp.Message
		}
	}
	return fmt.Sprintf("HTTP %d: %s", statusCode, status)
}
