package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"wunderadmin/internal/domain"
)

const defaultRequestTimeout = 10 * time.Second

// Client talks to the Wunder admin API. All panel operations share one
// http.Client and the same JSON plumbing and error mapping.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client, mainly for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

func NewClient(baseURL string, logger *zap.Logger, opts ...Option) (*Client, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, domain.E(domain.CodeInvalidArgument, "adminapi.NewClient", "api base url is required", nil)
	}
	client := &Client{
		baseURL:    trimmed,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		logger:     logger.Named("adminapi"),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

func (c *Client) getJSON(ctx context.Context, op, path string, query url.Values, out any) error {
	body, err := c.do(ctx, op, http.MethodGet, c.endpoint(path, query), nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return domain.E(domain.CodeInternal, op, "decode response", err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, payload any, out any) error {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return domain.E(domain.CodeInternal, op, "encode request", err)
	}
	body, err := c.do(ctx, op, http.MethodPost, c.endpoint(path, nil), encoded)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return domain.E(domain.CodeInternal, op, "decode response", err)
	}
	return nil
}

func (c *Client) deleteJSON(ctx context.Context, op, path string, query url.Values) error {
	_, err := c.do(ctx, op, http.MethodDelete, c.endpoint(path, query), nil)
	return err
}

func (c *Client) do(ctx context.Context, op, method, target string, payload []byte) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, domain.E(domain.CodeInternal, op, "build request", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.E(domain.CodeUnavailable, op, "", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.E(domain.CodeUnavailable, op, "read response", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.logger.Debug("admin api request failed",
			zap.String("method", method),
			zap.String("url", target),
			zap.Int("status", resp.StatusCode),
		)
		return nil, domain.E(domain.CodeUnavailable, op, fmt.Sprintf("unexpected status: %s", resp.Status), nil)
	}
	return body, nil
}
