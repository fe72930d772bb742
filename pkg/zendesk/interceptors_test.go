package zendesk_test

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

var errBlocked = errors.New("blocked")

func TestInterceptorChain_RequestInterceptors(t *testing.T) {
	t.Parallel()

	var executionOrder []string

	chain := zendesk.NewInterceptorChain().
		AddRequestInterceptor(func(_ context.Context, _ *zendesk.Request) error {
			executionOrder = append(executionOrder, "first")

			return nil
		}).
		AddRequestInterceptor(func(_ context.Context, _ *zendesk.Request) error {
			executionOrder = append(executionOrder, "second")

			return nil
		})

	err := chain.ExecuteRequestInterceptors(context.Background(), &zendesk.Request{Method: http.MethodGet, Path: "api/v2/groups"})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, executionOrder)
}

func TestInterceptorChain_StopsOnError(t *testing.T) {
	t.Parallel()

	called := false

	chain := zendesk.NewInterceptorChain().
		AddRequestInterceptor(func(_ context.Context, _ *zendesk.Request) error { return errBlocked }).
		AddRequestInterceptor(func(_ context.Context, _ *zendesk.Request) error {
			called = true

			return nil
		})

	err := chain.ExecuteRequestInterceptors(context.Background(), &zendesk.Request{})
	require.ErrorIs(t, err, errBlocked)
	assert.False(t, called)

	chain.AddResponseInterceptor(func(_ context.Context, _ *zendesk.Request, _ *zendesk.Response) error { return errBlocked })

	err = chain.ExecuteResponseInterceptors(context.Background(), &zendesk.Request{}, &zendesk.Response{})
	require.ErrorIs(t, err, errBlocked)
}

func TestInterceptorChain_Nil(t *testing.T) {
	t.Parallel()

	var chain *zendesk.InterceptorChain

	require.NoError(t, chain.ExecuteRequestInterceptors(context.Background(), &zendesk.Request{}))
	require.NoError(t, chain.ExecuteResponseInterceptors(context.Background(), &zendesk.Request{}, &zendesk.Response{}))
}

func TestHeaderInterceptor(t *testing.T) {
	t.Parallel()

	req := &zendesk.Request{}

	err := zendesk.HeaderInterceptor(map[string]string{"X-On-Behalf-Of": "agent@example.com"})(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "agent@example.com", req.Headers.Get("X-On-Behalf-Of"))
}

func TestLoggingInterceptors(t *testing.T) {
	t.Parallel()

	logger := &captureLogger{}
	req := &zendesk.Request{Method: http.MethodGet, Path: "api/v2/tickets", RequestID: "abc"}

	require.NoError(t, zendesk.LoggingInterceptor(logger)(context.Background(), req))
	require.NoError(t, zendesk.LoggingResponseInterceptor(logger)(context.Background(), req, &zendesk.Response{StatusCode: http.StatusOK}))
	require.NoError(t, zendesk.LoggingResponseInterceptor(logger)(context.Background(), req, &zendesk.Response{Error: errBlocked}))

	assert.Equal(t, []string{"debug:API Request", "debug:API Response", "error:API Response Error"}, logger.messages())
}

func TestMetricsCollector(t *testing.T) {
	t.Parallel()

	collector := zendesk.NewMetricsCollector()
	chain := zendesk.NewInterceptorChain().WithMetrics(collector)

	var (
		mu      sync.Mutex
		updates []string
	)

	collector.SetOnChange(func(endpoint string, _ zendesk.Metrics) {
		mu.Lock()
		defer mu.Unlock()

		updates = append(updates, endpoint)
	})

	call := func(path string, resp *zendesk.Response) {
		req := &zendesk.Request{Method: http.MethodGet, Path: path}
		require.NoError(t, chain.ExecuteRequestInterceptors(context.Background(), req))
		require.NoError(t, chain.ExecuteResponseInterceptors(context.Background(), req, resp))
	}

	call("api/v2/groups", &zendesk.Response{StatusCode: http.StatusOK})
	call("api/v2/groups", &zendesk.Response{StatusCode: http.StatusNotFound})
	call("api/v2/tickets", &zendesk.Response{Error: errBlocked})

	groups := collector.GetMetrics("GET api/v2/groups")
	require.NotNil(t, groups)
	assert.Equal(t, int64(2), groups.TotalRequests)
	assert.Equal(t, int64(1), groups.TotalErrors)
	assert.Equal(t, map[int]int64{http.StatusOK: 1, http.StatusNotFound: 1}, groups.StatusCodes)
	assert.False(t, groups.LastRequestTime.IsZero())

	tickets := collector.GetMetrics("GET api/v2/tickets")
	require.NotNil(t, tickets)
	assert.Equal(t, int64(1), tickets.TotalErrors)
	assert.Empty(t, tickets.StatusCodes)

	assert.Nil(t, collector.GetMetrics("GET api/v2/users"))
	assert.Equal(t, 2, collector.Endpoints())
	assert.Equal(t, []string{"GET api/v2/groups", "GET api/v2/groups", "GET api/v2/tickets"}, updates)

	groups.StatusCodes[http.StatusOK] = 99
	assert.Equal(t, int64(1), collector.GetMetrics("GET api/v2/groups").StatusCodes[http.StatusOK])
}

type captureLogger struct {
	mu      sync.Mutex
	entries []string
}

func (l *captureLogger) add(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, level+":"+msg)
}

func (l *captureLogger) Debug(msg string, _ map[string]interface{}) { l.add("debug", msg) }
func (l *captureLogger) Info(msg string, _ map[string]interface{})  { l.add("info", msg) }
func (l *captureLogger) Warn(msg string, _ map[string]interface{})  { l.add("warn", msg) }
func (l *captureLogger) Error(msg string, _ map[string]interface{}) { l.add("error", msg) }

func (l *captureLogger) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()

	return append([]string(nil), l.entries...)
}
