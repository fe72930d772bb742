package zendesk

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Request is the view of an outgoing call passed to interceptors. Headers may be
// modified by request interceptors.
type Request struct {
	Method    string
	Path      string
	RequestID string
	Headers   http.Header
	Body      []byte
	Metadata  map[string]interface{}
}

// Response is the view of a completed call passed to response interceptors. Error is
// set when the call failed before a response arrived.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// RequestInterceptor is called before a request is sent. A non-nil error aborts the call.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor is called after a response is received.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain is an ordered set of interceptors.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates an empty chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{
		requestInterceptors:  make([]RequestInterceptor, 0),
		responseInterceptors: make([]ResponseInterceptor, 0),
	}
}

// AddRequestInterceptor appends a request interceptor.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) *InterceptorChain {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)

	return c
}

// AddResponseInterceptor appends a response interceptor.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) *InterceptorChain {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)

	return c
}

// ExecuteRequestInterceptors runs the request interceptors in order.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *Request) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.requestInterceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs the response interceptors in order.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *Request, resp *Response) error {
	if c == nil {
		return nil
	}

	for _, interceptor := range c.responseInterceptors {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// LoggingInterceptor logs every outgoing request at debug level.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(_ context.Context, req *Request) error {
		logger.Debug("API Request", map[string]interface{}{
			"method":     req.Method,
			"path":       req.Path,
			"request_id": req.RequestID,
		})

		return nil
	}
}

// LoggingResponseInterceptor logs responses, failures at error level.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(_ context.Context, req *Request, resp *Response) error {
		fields := map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"request_id":  req.RequestID,
			"status_code": resp.StatusCode,
		}

		if resp.Error != nil {
			fields["error"] = resp.Error.Error()
			logger.Error("API Response Error", fields)
		} else {
			logger.Debug("API Response", fields)
		}

		return nil
	}
}

// HeaderInterceptor sets fixed headers on every request.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(_ context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		for key, value := range headers {
			req.Headers.Set(key, value)
		}

		return nil
	}
}

// Metrics are the counters kept per endpoint by a MetricsCollector.
type Metrics struct {
	TotalRequests   int64
	TotalErrors     int64
	TotalLatency    time.Duration
	AverageLatency  time.Duration
	LastRequestTime time.Time
	StatusCodes     map[int]int64
}

// MetricsCollector aggregates call metrics keyed by "METHOD path". It is safe for
// concurrent use.
type MetricsCollector struct {
	mu       sync.Mutex
	metrics  map[string]*Metrics
	onChange func(endpoint string, metrics Metrics)
}

// NewMetricsCollector creates an empty collector.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		metrics: make(map[string]*Metrics),
	}
}

// SetOnChange registers a callback invoked with a snapshot after every recorded call.
func (m *MetricsCollector) SetOnChange(fn func(endpoint string, metrics Metrics)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.onChange = fn
}

// GetMetrics returns a snapshot for an endpoint, or nil if it was never called.
func (m *MetricsCollector) GetMetrics(endpoint string) *Metrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	metrics, ok := m.metrics[endpoint]
	if !ok {
		return nil
	}

	snapshot := metrics.snapshot()

	return &snapshot
}

// Endpoints returns the number of distinct endpoints recorded.
func (m *MetricsCollector) Endpoints() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.metrics)
}

func (m *MetricsCollector) record(endpoint string, start time.Time, resp *Response) {
	m.mu.Lock()

	metrics, ok := m.metrics[endpoint]
	if !ok {
		metrics = &Metrics{StatusCodes: make(map[int]int64)}
		m.metrics[endpoint] = metrics
	}

	metrics.TotalRequests++
	metrics.LastRequestTime = time.Now()

	if !start.IsZero() {
		metrics.TotalLatency += time.Since(start)
		metrics.AverageLatency = metrics.TotalLatency / time.Duration(metrics.TotalRequests)
	}

	if resp.Error != nil || resp.StatusCode >= http.StatusBadRequest {
		metrics.TotalErrors++
	}

	if resp.StatusCode > 0 {
		metrics.StatusCodes[resp.StatusCode]++
	}

	onChange := m.onChange
	snapshot := metrics.snapshot()

	m.mu.Unlock()

	if onChange != nil {
		onChange(endpoint, snapshot)
	}
}

func (m *Metrics) snapshot() Metrics {
	copied := *m
	copied.StatusCodes = make(map[int]int64, len(m.StatusCodes))

	for code, count := range m.StatusCodes {
		copied.StatusCodes[code] = count
	}

	return copied
}

const metricsStartKey = "start_time"

// MetricsRequestInterceptor stamps the request start time.
func MetricsRequestInterceptor(_ *MetricsCollector) RequestInterceptor {
	return func(_ context.Context, req *Request) error {
		if req.Metadata == nil {
			req.Metadata = make(map[string]interface{})
		}

		req.Metadata[metricsStartKey] = time.Now()

		return nil
	}
}

// MetricsResponseInterceptor records the call in the collector.
func MetricsResponseInterceptor(collector *MetricsCollector) ResponseInterceptor {
	return func(_ context.Context, req *Request, resp *Response) error {
		var start time.Time

		if req.Metadata != nil {
			start, _ = req.Metadata[metricsStartKey].(time.Time)
		}

		collector.record(fmt.Sprintf("%s %s", req.Method, req.Path), start, resp)

		return nil
	}
}

// WithMetrics adds both metrics interceptors to the chain.
func (c *InterceptorChain) WithMetrics(collector *MetricsCollector) *InterceptorChain {
	return c.AddRequestInterceptor(MetricsRequestInterceptor(collector)).
		AddResponseInterceptor(MetricsResponseInterceptor(collector))
}
