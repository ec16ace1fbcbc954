package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/de-tools/posture-report/pkg/models/domain"
	"github.com/rs/zerolog"
)

const (
	DefaultHost    = "https://api.dome9.com/v2"
	DefaultTimeout = 60 * time.Second
)

type Config struct {
	Host        string
	Credentials domain.Credentials
	Timeout     time.Duration
	// Transport overrides the underlying round tripper, mostly for tests.
	Transport http.RoundTripper
}

// Client talks to the CloudGuard REST API.
type Client struct {
	host          string
	authorization string
	httpClient    *http.Client
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.Credentials.Username == "" || cfg.Credentials.Password == "" {
		return nil, fmt.Errorf("username and password are required")
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		host:          strings.TrimRight(cfg.Host, "/"),
		authorization: BasicAuthorization(cfg.Credentials),
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: NewLoggingTransport(cfg.Transport),
		},
	}, nil
}

type response struct {
	status int
	body   []byte
}

func (c *Client) send(ctx context.Context, method, path string, payload any) (*response, error) {
	logger := zerolog.Ctx(ctx)

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s request body: %w", path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.host+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", c.authorization)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func(Body io.ReadCloser) {
		err := Body.Close()
		if err != nil {
			logger.Warn().Err(err).Msg("failed to close response body")
		}
	}(resp.Body)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", path, err)
	}

	return &response{status: resp.StatusCode, body: data}, nil
}

func (c *Client) httpError(method, path string, resp *response) *HTTPError {
	return &HTTPError{
		Method:     method,
		URL:        c.host + path,
		StatusCode: resp.status,
		Body:       string(resp.body),
	}
}

func isSuccess(status int) bool {
	return status >= 200 && status < 300
}
