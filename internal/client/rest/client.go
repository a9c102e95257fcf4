package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"travana-referral-dashboard/internal/logger"
)

const DefaultTimeout = 10 * time.Second

// Client is a JSON-over-HTTP transport bound to one base URL.
type Client struct {
	service string
	baseURL string
	http    *http.Client
}

func NewClient(service, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewClientWithHTTP(service, baseURL, &http.Client{Timeout: timeout})
}

func NewClientWithHTTP(service, baseURL string, hc *http.Client) *Client {
	return &Client{
		service: service,
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do sends in as the JSON body (when non-nil) with the bearer token (when
// non-empty) and decodes a 2xx response into out (when non-nil). An empty
// success body leaves out untouched.
func (c *Client) Do(ctx context.Context, method, path, token string, in, out any) error {
	operation := method + " " + path
	logger.ExternalServiceCall(c.service, operation)

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s request: %w", c.service, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build %s request: %w", c.service, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		err = fmt.Errorf("%w: %s %s: %w", ErrUnavailable, c.service, operation, err)
		logger.ExternalServiceResult(c.service, operation, 0, err)
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("%w: %s %s: reading body: %w", ErrUnavailable, c.service, operation, err)
		logger.ExternalServiceResult(c.service, operation, resp.StatusCode, err)
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(c.service, resp.StatusCode, respBody)
		logger.ExternalServiceResult(c.service, operation, resp.StatusCode, apiErr)
		return apiErr
	}

	if out != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			err = fmt.Errorf("failed to decode %s response: %w", c.service, err)
			logger.ExternalServiceResult(c.service, operation, resp.StatusCode, err)
			return err
		}
	}

	logger.ExternalServiceResult(c.service, operation, resp.StatusCode, nil)
	return nil
}

func (c *Client) Get(ctx context.Context, path, token string, out any) error {
	return c.Do(ctx, http.MethodGet, path, token, nil, out)
}

func (c *Client) Post(ctx context.Context, path, token string, in, out any) error {
	return c.Do(ctx, http.MethodPost, path, token, in, out)
}

func (c *Client) Put(ctx context.Context, path, token string, in, out any) error {
	return c.Do(ctx, http.MethodPut, path, token, in, out)
}
