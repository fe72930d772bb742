package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/fivetwenty-io/zendesk-client/internal/client"
	"github.com/fivetwenty-io/zendesk-client/internal/auth"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires API endpoint", func(t *testing.T) {
		t.Parallel()

		_, err := New(&zendesk.Config{})
		require.ErrorIs(t, err, ErrEndpointRequired)
	})

	tests := []struct {
		name   string
		config zendesk.Config
		scheme string
	}{
		{
			name:   "api token",
			config: zendesk.Config{Email: "agent@example.com", APIToken: "token"},
			scheme: auth.SchemeAPIToken,
		},
		{
			name:   "oauth token wins",
			config: zendesk.Config{Email: "agent@example.com", APIToken: "token", OAuthToken: "oauth"},
			scheme: auth.SchemeOAuth,
		},
		{
			name:   "password",
			config: zendesk.Config{Email: "agent@example.com", Password: "hunter2"},
			scheme: auth.SchemeBasic,
		},
		{
			name:   "anonymous",
			config: zendesk.Config{},
			scheme: "none",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			config := tt.config
			config.Endpoint = "https://acme.zendesk.com"

			client, err := New(&config)
			require.NoError(t, err)
			assert.Equal(t, tt.scheme, client.AuthScheme())
			assert.Equal(t, "https://acme.zendesk.com", client.BaseURL())
		})
	}

	t.Run("api token without email", func(t *testing.T) {
		t.Parallel()

		_, err := New(&zendesk.Config{Endpoint: "https://acme.zendesk.com", APIToken: "token"})
		require.ErrorIs(t, err, auth.ErrEmailRequired)
	})
}

func TestClient_ResourceAccessors(t *testing.T) {
	t.Parallel()

	client, err := New(&zendesk.Config{Endpoint: "https://acme.zendesk.com"})
	require.NoError(t, err)

	assert.NotNil(t, client.Tickets())
	assert.NotNil(t, client.DeletedTickets())
	assert.NotNil(t, client.Groups())
	assert.NotNil(t, client.SatisfactionRatings())
	assert.NotNil(t, client.OrganizationMemberships())
	assert.NotNil(t, client.TicketAudits())

	var _ zendesk.Client = client
}

func TestClient_SendsCredentials(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, password, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "agent@example.com/token", user)
		assert.Equal(t, "token", password)
		assert.Equal(t, "acme-tests", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"group":{"id":1,"name":"Support"}}`))
	}))
	defer server.Close()

	client, err := New(&zendesk.Config{
		Endpoint:    server.URL,
		Email:       "agent@example.com",
		APIToken:    "token",
		UserAgent:   "acme-tests",
		HTTPTimeout: 5 * time.Second,
	})
	require.NoError(t, err)

	group, err := client.Groups().Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Support", group.Name)
}

func TestClient_UnavailableIsNotRetried(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := New(&zendesk.Config{Endpoint: server.URL})
	require.NoError(t, err)

	err = client.Tickets().Delete(context.Background(), 1)
	require.Error(t, err)

	var statusErr *zendesk.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestNewWithAuthenticator(t *testing.T) {
	t.Parallel()

	authenticator, err := auth.NewBearerAuthenticator("oauth")
	require.NoError(t, err)

	client, err := NewWithAuthenticator(&zendesk.Config{Endpoint: "https://acme.zendesk.com"}, authenticator)
	require.NoError(t, err)
	assert.Equal(t, auth.SchemeOAuth, client.AuthScheme())

	_, err = NewWithAuthenticator(&zendesk.Config{}, authenticator)
	require.ErrorIs(t, err, ErrEndpointRequired)
}
