package fakedesk_test

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zendesk-client/internal/fakedesk"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()

	resp, err := http.Get(url) //nolint:noctx // test helper
	require.NoError(t, err)

	defer func() { _ = resp.Body.Close() }()

	var body json.RawMessage

	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	}

	return resp, body
}

func TestServer_Paginates(t *testing.T) {
	t.Parallel()

	server := fakedesk.New()
	defer server.Close()

	for id := int64(1); id <= 5; id++ {
		server.SeedGroup(zendesk.Group{ID: id, Name: "group"})
	}

	server.SetPageSize(2)

	resp, body := get(t, server.URL()+"/api/v2/groups?page=2")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var list zendesk.GroupList
	require.NoError(t, json.Unmarshal(body, &list))

	require.Len(t, list.Groups, 2)
	assert.Equal(t, int64(3), list.Groups[0].ID)
	assert.Equal(t, 5, list.Count)
	require.NotNil(t, list.NextPage)
	assert.Contains(t, *list.NextPage, "page=3")
	require.NotNil(t, list.PreviousPage)
	assert.Contains(t, *list.PreviousPage, "page=1")
}

func TestServer_FailNext(t *testing.T) {
	t.Parallel()

	server := fakedesk.New()
	defer server.Close()

	server.FailNext(http.StatusTooManyRequests)

	resp, body := get(t, server.URL()+"/api/v2/tickets")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	apiErr := zendesk.ParseAPIError(body)
	require.NotNil(t, apiErr)
	assert.Equal(t, "InjectedFailure", apiErr.Title)

	resp, _ = get(t, server.URL()+"/api/v2/tickets")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, server.RequestCount())
}

func TestServer_UnknownRoute(t *testing.T) {
	t.Parallel()

	server := fakedesk.New()
	defer server.Close()

	resp, _ := get(t, server.URL()+"/api/v2/macros")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_BulkIDsValidation(t *testing.T) {
	t.Parallel()

	server := fakedesk.New()
	defer server.Close()

	ids := make([]string, 101)
	for i := range ids {
		ids[i] = "1"
	}

	tests := []struct {
		name  string
		query string
	}{
		{name: "missing", query: ""},
		{name: "non numeric", query: "?ids=1,x"},
		{name: "too many", query: "?ids=" + strings.Join(ids, ",")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req, err := http.NewRequest(http.MethodDelete, server.URL()+"/api/v2/deleted_tickets/destroy_many"+tt.query, nil) //nolint:noctx // test
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)

			_ = resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestServer_RecordsRequests(t *testing.T) {
	t.Parallel()

	server := fakedesk.New()
	defer server.Close()

	_, _ = get(t, server.URL()+"/api/v2/deleted_tickets?sort_by=deleted_at")

	recorded := server.Requests()
	require.Len(t, recorded, 1)
	assert.Equal(t, http.MethodGet, recorded[0].Method)
	assert.Equal(t, "/api/v2/deleted_tickets", recorded[0].Path)
	assert.Equal(t, "deleted_at", recorded[0].Query.Get("sort_by"))
}
