/*
Copyright 2026 the PN Academy Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package client is a typed client for the user-management API.
//
// Every request carries a fresh W3C trace context so that a failing call can
// be found in the service logs, and every non-2xx answer is surfaced as an
// *APIError that matches ErrRejected.
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

	"github.com/go-logr/logr"
	"golang.org/x/time/rate"
)

const defaultTimeout = 30 * time.Second

// Client talks to a single user-management service.
type Client struct {
	baseURL      string
	doer         Doer
	limiter      *rate.Limiter
	validator    ResponseValidator
	accessToken  string
	log          logr.Logger
	logRequests  bool
	logResponses bool
	endpoints    *Endpoints
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithTimeout sets the per request timeout of the default *http.Client.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.doer = &http.Client{Timeout: timeout}
	}
}

// WithRateLimit throttles requests to rps per second with the given burst.
// A non-positive rps disables limiting.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = nil
			return
		}

		if burst < 1 {
			burst = 1
		}

		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

func WithLogger(log logr.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func WithRequestLogging(enabled bool) Option {
	return func(c *Client) {
		c.logRequests = enabled
	}
}

func WithResponseLogging(enabled bool) Option {
	return func(c *Client) {
		c.logResponses = enabled
	}
}

// WithBearerToken binds an access token at construction time.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.accessToken = token
	}
}

// WithResponseValidator checks every successful response against the API
// contract.
func WithResponseValidator(validator ResponseValidator) Option {
	return func(c *Client) {
		c.validator = validator
	}
}

// New returns a client for the service rooted at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		doer:      &http.Client{Timeout: defaultTimeout},
		log:       logr.Discard(),
		endpoints: NewEndpoints(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Authenticate returns a copy of the client that sends token as a bearer
// credential. The receiver is left unchanged. The rate limiter is shared.
func (c *Client) Authenticate(token string) *Client {
	clone := *c
	clone.accessToken = token

	return &clone
}

// AccessToken returns the bound access token, if any.
func (c *Client) AccessToken() string {
	return c.accessToken
}

// BaseURL returns the service root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Endpoints returns the path builder used by the client.
func (c *Client) Endpoints() *Endpoints {
	return c.endpoints
}

// Do sends a request and returns the response whatever its status. body is
// marshaled as JSON when not nil. Only transport failures are errors.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	var reader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		reader = bytes.NewReader(data)
	}

	return c.doRequest(ctx, method, path, reader)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) (*Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, transportError(fmt.Errorf("waiting for rate limiter: %w", err))
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	traceParent := newTraceParent()
	traceID := traceIDFrom(traceParent)

	req.Header.Set(traceParentHeader, traceParent)
	req.Header.Set(traceStateHeader, traceState)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	start := time.Now()
	resp, err := c.doer.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.log.Error(err, "http request failed", "method", method, "path", path, "duration", duration, "traceID", traceID)
		return nil, transportError(err)
	}

	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Error(err, "reading response body", "method", method, "path", path, "status", resp.StatusCode, "traceID", traceID)
		return nil, transportError(fmt.Errorf("reading response body: %w", err))
	}

	if c.logRequests {
		c.log.Info("request", "method", method, "path", path, "status", resp.StatusCode, "duration", duration, "traceID", traceID)
	}

	if c.logResponses && len(respBody) > 0 {
		c.log.Info("response body", "method", method, "path", path, "body", string(respBody))
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
		Duration:   duration,
		TraceID:    traceID,
	}, nil
}

// call performs a request that is expected to succeed. Any non-2xx status is
// returned as an *APIError, a 2xx response is checked against the contract
// when a validator is configured.
func (c *Client) call(ctx context.Context, method, path string, body any) (*Response, error) {
	resp, err := c.Do(ctx, method, path, body)
	if err != nil {
		return nil, err
	}

	if !resp.IsSuccess() {
		c.log.V(1).Info("unexpected status", "method", method, "path", path, "status", resp.StatusCode, "body", resp.BodyString(), "traceID", resp.TraceID)

		return resp, &APIError{
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Message:    resp.Message(),
			Body:       resp.BodyString(),
			TraceID:    resp.TraceID,
		}
	}

	if c.validator != nil {
		if err := c.validator.ValidateResponse(ctx, method, path, resp.StatusCode, resp.Header, resp.Body); err != nil {
			return resp, fmt.Errorf("%w: %s %s: %w", ErrContractViolation, method, path, err)
		}
	}

	return resp, nil
}

// callJSON performs call and decodes the body into out.
func (c *Client) callJSON(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.call(ctx, method, path, body)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		return fmt.Errorf("unmarshaling %s %s response: %w", method, path, err)
	}

	return nil
}
