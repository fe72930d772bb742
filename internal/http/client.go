// Package http is the transport shared by every resource client.
package http

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

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"

	"github.com/fivetwenty-io/zendesk-client/internal/auth"
	"github.com/fivetwenty-io/zendesk-client/internal/constants"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

// RequestIDHeader carries the per-call correlation id.
const RequestIDHeader = "X-Request-Id"

// Client performs JSON calls against the helpdesk API.
type Client struct {
	baseURL       string
	authenticator auth.Authenticator
	httpClient    *retryablehttp.Client
	logger        zendesk.Logger
	userAgent     string
	debug         bool
	interceptors  *zendesk.InterceptorChain
}

// Request is a single API call.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Response is the buffered result of a call.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	RequestID  string
}

// Option configures the client.
type Option func(*Client)

// WithLogger sets the logger used for debug output and retry notices.
func WithLogger(logger zendesk.Logger) Option {
	return func(c *Client) {
		c.logger = logger
		c.httpClient.Logger = &leveledLogger{logger: logger}
	}
}

// WithDebug logs every request and response.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithHTTPClient uses a copy of client for the calls. Its Timeout is kept unless
// WithTimeout is given after it.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			copied := *client
			c.httpClient.HTTPClient = &copied
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithInterceptors installs a request/response interceptor chain.
func WithInterceptors(chain *zendesk.InterceptorChain) Option {
	return func(c *Client) {
		c.interceptors = chain
	}
}

// NewClient creates a transport for baseURL. A nil authenticator sends anonymous
// requests. Every call is a single attempt.
func NewClient(baseURL string, authenticator auth.Authenticator, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.HTTPClient = &http.Client{Timeout: constants.DefaultHTTPTimeout}
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	client := &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		authenticator: authenticator,
		httpClient:    retryClient,
		logger:        zendesk.NopLogger{},
		userAgent:     constants.DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// BaseURL returns the API endpoint the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do performs req. For any status of 400 or more it returns both the response and a
// *zendesk.StatusError.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	requestID := uuid.NewString()

	bodyBytes, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	intercepted := &zendesk.Request{
		Method:    req.Method,
		Path:      req.Path,
		RequestID: requestID,
		Headers:   make(http.Header),
		Body:      bodyBytes,
	}

	for key, value := range req.Headers {
		intercepted.Headers.Set(key, value)
	}

	err = c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, err
	}

	httpReq, err := c.buildRequest(ctx, req, intercepted)
	if err != nil {
		return nil, err
	}

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method":     req.Method,
			"url":        httpReq.URL.String(),
			"request_id": requestID,
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		_ = c.afterResponse(ctx, intercepted, &zendesk.Response{Error: err})

		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Path, err)
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
		RequestID:  requestID,
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":     resp.StatusCode,
			"request_id": requestID,
			"body_size":  len(body),
		})
	}

	err = c.afterResponse(ctx, intercepted, &zendesk.Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       body,
	})
	if err != nil {
		return resp, err
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return resp, &zendesk.StatusError{
			Method:     req.Method,
			Path:       req.Path,
			StatusCode: resp.StatusCode,
			API:        zendesk.ParseAPIError(body),
		}
	}

	return resp, nil
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch issues a PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

func (c *Client) buildRequest(ctx context.Context, req *Request, intercepted *zendesk.Request) (*retryablehttp.Request, error) {
	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var rawBody interface{}
	if intercepted.Body != nil {
		rawBody = intercepted.Body
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, target, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)
	httpReq.Header.Set(RequestIDHeader, intercepted.RequestID)

	if intercepted.Body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, values := range intercepted.Headers {
		httpReq.Header[key] = values
	}

	if c.authenticator != nil {
		err = c.authenticator.Apply(ctx, httpReq.Request)
		if err != nil {
			return nil, fmt.Errorf("applying %s credentials: %w", c.authenticator.Scheme(), err)
		}
	}

	return httpReq, nil
}

func (c *Client) afterResponse(ctx context.Context, req *zendesk.Request, resp *zendesk.Response) error {
	return c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
}

func encodeBody(body interface{}) ([]byte, error) {
	switch typed := body.(type) {
	case nil:
		return nil, nil
	case []byte:
		return typed, nil
	case io.Reader:
		buf := &bytes.Buffer{}

		_, err := buf.ReadFrom(typed)
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}

		return buf.Bytes(), nil
	default:
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}

		return data, nil
	}
}

// leveledLogger routes retryablehttp's retry and failure notices to the client logger.
// Its per-attempt debug lines are dropped; WithDebug covers those.
type leveledLogger struct {
	logger zendesk.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, toFields(keysAndValues))
}

func (l *leveledLogger) Debug(string, ...interface{}) {}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, toFields(keysAndValues))
}

func toFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}
