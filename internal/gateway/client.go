// Package gateway is the HTTP/JSON client for the ExpenseWise backend. It
// signs requests with the stored token, bounds every call with a timeout and
// normalizes the loosely shaped list payloads the backend returns.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/apperror"
	"github.com/tejaswimahajan02/Expense-Tracker-App/internal/logging"
)

// DefaultTimeout bounds a single request when Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 8 << 20

// HeaderRequestID carries the client-generated id of each request.
const HeaderRequestID = "X-Request-ID"

// CredentialProvider supplies the token used to sign requests. An empty
// token means the request is sent without an Authorization header.
type CredentialProvider interface {
	Token(ctx context.Context) (string, error)
}

// ProxyConfig describes an optional SOCKS5 proxy.
type ProxyConfig struct {
	Address  string
	User     string
	Password string
}

// Options configures a Client.
type Options struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Proxy             ProxyConfig
	// HTTPClient overrides the transport entirely; Proxy is ignored when set.
	HTTPClient  *http.Client
	Credentials CredentialProvider
	Logger      logging.Logger
}

// Client talks to the backend.
type Client struct {
	baseURL     string
	timeout     time.Duration
	httpClient  *http.Client
	credentials CredentialProvider
	limiter     *rate.Limiter
	logger      logging.Logger
}

// New validates opts and builds a Client.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, errors.New("gateway base URL is required")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid gateway base URL %q", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		transport, err := newTransport(opts.Proxy)
		if err != nil {
			return nil, err
		}
		httpClient = &http.Client{Transport: transport}
	}

	c := &Client{
		baseURL:     base,
		timeout:     timeout,
		httpClient:  httpClient,
		credentials: opts.Credentials,
		logger:      logging.OrNop(opts.Logger),
	}
	if opts.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return c, nil
}

// BaseURL returns the normalized backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// do sends one request and decodes a successful JSON response into out
// (skipped when out is nil). It returns the raw body for callers that
// decode tolerant shapes themselves.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, &apperror.GatewayError{Method: method, Path: path, Err: err}
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := uuid.NewString()
	req.Header.Set(HeaderRequestID, requestID)

	if c.credentials != nil {
		token, err := c.credentials.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("read credentials: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Token "+token)
		}
	}

	log := c.logger.WithFields(
		logging.Field{Key: logging.FieldMethod, Value: method},
		logging.Field{Key: logging.FieldPath, Value: path},
		logging.Field{Key: logging.FieldRequestID, Value: requestID},
	)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.WithError(err).Debug("Gateway request failed")
		return nil, &apperror.GatewayError{Method: method, Path: path, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &apperror.GatewayError{Method: method, Path: path, StatusCode: resp.StatusCode, Err: err}
	}

	log.Debug("Gateway request completed",
		logging.Field{Key: logging.FieldStatusCode, Value: resp.StatusCode},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apperror.GatewayError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    payloadMessage(raw),
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	if out != nil && len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, &apperror.GatewayError{
				Method:     method,
				Path:       path,
				StatusCode: resp.StatusCode,
				Err:        fmt.Errorf("decode response: %w", err),
			}
		}
	}
	return raw, nil
}
