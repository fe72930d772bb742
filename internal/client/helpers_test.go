package client

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zendesk-client/internal/fakedesk"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

// logEntry is one message captured by recordingLogger.
type logEntry struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) record(level, msg string, fields map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, logEntry{Level: level, Message: msg, Fields: fields})
}

func (l *recordingLogger) Debug(msg string, fields map[string]interface{}) { l.record("debug", msg, fields) }
func (l *recordingLogger) Info(msg string, fields map[string]interface{})  { l.record("info", msg, fields) }
func (l *recordingLogger) Warn(msg string, fields map[string]interface{})  { l.record("warn", msg, fields) }
func (l *recordingLogger) Error(msg string, fields map[string]interface{}) { l.record("error", msg, fields) }

func (l *recordingLogger) Entries(level string) []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	var matched []logEntry

	for _, entry := range l.entries {
		if entry.Level == level {
			matched = append(matched, entry)
		}
	}

	return matched
}

// cannedResponse describes what a stub endpoint answers.
type cannedResponse struct {
	Method string
	Path   string
	Status int
	Body   interface{}
}

// capturedRequest is what a stub endpoint received.
type capturedRequest struct {
	Method string
	Path   string
	Query  string
	Body   []byte
}

// newStubClient serves a single canned response and returns a client pointed at it,
// the logger it writes to and the requests the stub received.
func newStubClient(t *testing.T, canned cannedResponse) (*Client, *recordingLogger, func() []capturedRequest) {
	t.Helper()

	var (
		mu       sync.Mutex
		received []capturedRequest
	)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, _ := io.ReadAll(request.Body)

		mu.Lock()
		received = append(received, capturedRequest{
			Method: request.Method,
			Path:   request.URL.Path,
			Query:  request.URL.RawQuery,
			Body:   body,
		})
		mu.Unlock()

		if canned.Method != "" {
			assert.Equal(t, canned.Method, request.Method)
		}

		if canned.Path != "" {
			assert.Equal(t, canned.Path, request.URL.Path)
		}

		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(canned.Status)

		switch body := canned.Body.(type) {
		case nil:
		case string:
			_, _ = io.WriteString(writer, body)
		default:
			_ = json.NewEncoder(writer).Encode(body)
		}
	}))
	t.Cleanup(server.Close)

	logger := &recordingLogger{}

	client, err := New(&zendesk.Config{Endpoint: server.URL, Logger: logger})
	require.NoError(t, err)

	return client, logger, func() []capturedRequest {
		mu.Lock()
		defer mu.Unlock()

		return append([]capturedRequest(nil), received...)
	}
}

// newFakeClient starts an in-memory helpdesk and returns a client for it.
func newFakeClient(t *testing.T) (*Client, *fakedesk.Server) {
	t.Helper()

	server := fakedesk.New()
	t.Cleanup(server.Close)

	client, err := New(&zendesk.Config{
		Endpoint: server.URL(),
		Email:    "agent@example.com",
		APIToken: "secret",
	})
	require.NoError(t, err)

	return client, server
}

// requireStatusError asserts err carries a *zendesk.StatusError with the given codes.
func requireStatusError(t *testing.T, err error, status int, expected ...int) *zendesk.StatusError {
	t.Helper()

	require.Error(t, err)

	var statusErr *zendesk.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, status, statusErr.StatusCode)
	assert.Equal(t, expected, statusErr.Expected)

	return statusErr
}
