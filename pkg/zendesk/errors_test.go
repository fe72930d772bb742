package zendesk_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

func TestParseAPIError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        string
		wantNil     bool
		title       string
		description string
		message     string
	}{
		{
			name:        "flat error",
			body:        `{"error":"RecordNotFound","description":"Not found"}`,
			title:       "RecordNotFound",
			description: "Not found",
			message:     "RecordNotFound: Not found",
		},
		{
			name:        "nested error",
			body:        `{"error":{"title":"Forbidden","message":"You do not have access"}}`,
			title:       "Forbidden",
			description: "You do not have access",
			message:     "Forbidden: You do not have access",
		},
		{
			name: "validation details",
			body: `{"error":"RecordInvalid","description":"Record validation errors",` +
				`"details":{"name":[{"error":"BlankValue","description":"Name: cannot be blank"}],` +
				`"email":[{"error":"InvalidValue","description":"Email: is invalid"}]}}`,
			title:       "RecordInvalid",
			description: "Record validation errors",
			message:     "RecordInvalid: Record validation errors [email: Email: is invalid] [name: Name: cannot be blank]",
		},
		{name: "empty body", body: ``, wantNil: true},
		{name: "html body", body: `<html>bad gateway</html>`, wantNil: true},
		{name: "unrelated json", body: `{"tickets":[]}`, wantNil: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			apiErr := zendesk.ParseAPIError([]byte(tt.body))
			if tt.wantNil {
				assert.Nil(t, apiErr)

				return
			}

			require.NotNil(t, apiErr)
			assert.Equal(t, tt.title, apiErr.Title)
			assert.Equal(t, tt.description, apiErr.Description)
			assert.Equal(t, tt.message, apiErr.Error())
		})
	}
}

func TestStatusError(t *testing.T) {
	t.Parallel()

	apiErr := &zendesk.APIError{Title: "RecordNotFound", Description: "Not found"}
	statusErr := &zendesk.StatusError{
		Method:     http.MethodGet,
		Path:       "api/v2/groups/1",
		StatusCode: http.StatusNotFound,
		Expected:   []int{http.StatusOK},
		API:        apiErr,
	}

	assert.Equal(t,
		"GET api/v2/groups/1: unexpected status 404 Not Found (expected [200]): RecordNotFound: Not found",
		statusErr.Error())

	wrapped := fmt.Errorf("getting group: %w", statusErr)

	var target *zendesk.APIError
	require.ErrorAs(t, wrapped, &target)
	assert.Same(t, apiErr, target)

	bare := &zendesk.StatusError{Method: http.MethodDelete, Path: "api/v2/tickets/1", StatusCode: http.StatusBadGateway}
	assert.Equal(t, "DELETE api/v2/tickets/1: unexpected status 502 Bad Gateway", bare.Error())
	assert.NoError(t, bare.Unwrap())
}

func TestStatusPredicates(t *testing.T) {
	t.Parallel()

	wrap := func(code int) error {
		return fmt.Errorf("listing: %w", &zendesk.StatusError{StatusCode: code})
	}

	assert.True(t, zendesk.IsNotFound(wrap(http.StatusNotFound)))
	assert.False(t, zendesk.IsNotFound(wrap(http.StatusOK)))
	assert.True(t, zendesk.IsUnauthorized(wrap(http.StatusUnauthorized)))
	assert.True(t, zendesk.IsForbidden(wrap(http.StatusForbidden)))
	assert.True(t, zendesk.IsStatus(wrap(http.StatusTooManyRequests), http.StatusTooManyRequests))
	assert.False(t, zendesk.IsNotFound(errors.New("plain"))) //nolint:err113 // test
	assert.False(t, zendesk.IsNotFound(nil))
}
