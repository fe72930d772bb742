package client

import (
	"encoding/json"
	"errors"
	"fmt"
	nethttp "net/http"
	"net/url"
	"slices"

	"github.com/fivetwenty-io/zendesk-client/internal/constants"
	"github.com/fivetwenty-io/zendesk-client/internal/http"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

// resourcePath joins path segments under the API base path.
func resourcePath(format string, args ...interface{}) string {
	return constants.APIBasePath + "/" + fmt.Sprintf(format, args...)
}

// pagerValues converts an optional pager into query parameters.
func pagerValues(pager *zendesk.Pager) url.Values {
	if pager == nil {
		return nil
	}

	return pager.ToValues()
}

// checkStatus turns a transport result into the accessor's status contract: nil when
// the status is one of accepted, otherwise a *zendesk.StatusError naming the accepted
// codes. Transport failures are returned unchanged.
func checkStatus(method, path string, resp *http.Response, err error, accepted ...int) error {
	var statusErr *zendesk.StatusError
	if errors.As(err, &statusErr) {
		statusErr.Expected = accepted

		return statusErr
	}

	if err != nil {
		return err
	}

	if slices.Contains(accepted, resp.StatusCode) {
		return nil
	}

	return &zendesk.StatusError{
		Method:     method,
		Path:       path,
		StatusCode: resp.StatusCode,
		Expected:   accepted,
		API:        zendesk.ParseAPIError(resp.Body),
	}
}

// isNotFound reports whether a transport result is a 404.
func isNotFound(resp *http.Response, err error) bool {
	if resp != nil && resp.StatusCode == nethttp.StatusNotFound {
		return true
	}

	return zendesk.IsNotFound(err)
}

// decodeEntity decodes a single entity. The body may wrap it in a root object such as
// {"group": {...}} or carry the bare entity.
func decodeEntity[T any](body []byte, root string) (*T, error) {
	var envelope map[string]json.RawMessage

	err := json.Unmarshal(body, &envelope)
	if err != nil {
		return nil, err
	}

	data := body
	if raw, ok := envelope[root]; ok {
		data = raw
	}

	var entity T

	err = json.Unmarshal(data, &entity)
	if err != nil {
		return nil, err
	}

	return &entity, nil
}

// decodeList decodes a collection envelope.
func decodeList[T any](body []byte) (*T, error) {
	var list T

	err := json.Unmarshal(body, &list)
	if err != nil {
		return nil, err
	}

	return &list, nil
}

// logNotFound records a 404 that the accessor reports as an absent result.
func logNotFound(logger zendesk.Logger, resource, operation string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}

	fields["resource"] = resource
	fields["operation"] = operation

	logger.Info(resource+" not found", fields)
}

// idsQuery builds the ids parameter of a bulk call.
func idsQuery(ids []int64) (url.Values, error) {
	if len(ids) == 0 {
		return nil, zendesk.ErrNoIDs
	}

	if len(ids) > constants.MaxBulkIDs {
		return nil, fmt.Errorf("%w: %d given, at most %d allowed", zendesk.ErrTooManyIDs, len(ids), constants.MaxBulkIDs)
	}

	return url.Values{"ids": []string{joinIDs(ids)}}, nil
}

func joinIDs(ids []int64) string {
	buf := make([]byte, 0, len(ids)*8)

	for i, id := range ids {
		if i > 0 {
			buf = append(buf, ',')
		}

		buf = fmt.Appendf(buf, "%d", id)
	}

	return string(buf)
}
