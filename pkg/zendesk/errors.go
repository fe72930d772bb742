package zendesk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrorDetail describes one invalid field of a rejected request.
type ErrorDetail struct {
	Error       string `json:"error"       yaml:"error"`
	Description string `json:"description" yaml:"description"`
}

// APIError is the error body returned by the helpdesk API. Two shapes exist:
//
//	{"error": "RecordNotFound", "description": "Not found"}
//	{"error": {"title": "Forbidden", "message": "You do not have access"}}
type APIError struct {
	Title       string                   `json:"title"             yaml:"title"`
	Description string                   `json:"description"       yaml:"description"`
	Details     map[string][]ErrorDetail `json:"details,omitempty" yaml:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	var builder strings.Builder

	builder.WriteString(e.Title)

	if e.Description != "" {
		if builder.Len() > 0 {
			builder.WriteString(": ")
		}

		builder.WriteString(e.Description)
	}

	fields := make([]string, 0, len(e.Details))
	for field := range e.Details {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	for _, field := range fields {
		for _, detail := range e.Details[field] {
			fmt.Fprintf(&builder, " [%s: %s]", field, detail.Description)
		}
	}

	if builder.Len() == 0 {
		return "unknown error"
	}

	return builder.String()
}

// UnmarshalJSON accepts both error body shapes.
func (e *APIError) UnmarshalJSON(data []byte) error {
	var body struct {
		Error       json.RawMessage          `json:"error"`
		Description string                   `json:"description"`
		Message     string                   `json:"message"`
		Details     map[string][]ErrorDetail `json:"details"`
	}

	err := json.Unmarshal(data, &body)
	if err != nil {
		return fmt.Errorf("decoding error body: %w", err)
	}

	e.Description = body.Description
	if e.Description == "" {
		e.Description = body.Message
	}

	e.Details = body.Details

	if len(body.Error) == 0 {
		return nil
	}

	var title string

	err = json.Unmarshal(body.Error, &title)
	if err == nil {
		e.Title = title

		return nil
	}

	var nested struct {
		Title   string `json:"title"`
		Message string `json:"message"`
	}

	err = json.Unmarshal(body.Error, &nested)
	if err != nil {
		return fmt.Errorf("decoding error field: %w", err)
	}

	e.Title = nested.Title
	if nested.Message != "" {
		e.Description = nested.Message
	}

	return nil
}

// ParseAPIError decodes an error body. It returns nil when the body is empty or not a
// recognizable error document.
func ParseAPIError(data []byte) *APIError {
	if len(data) == 0 {
		return nil
	}

	var apiErr APIError

	err := json.Unmarshal(data, &apiErr)
	if err != nil || (apiErr.Title == "" && apiErr.Description == "" && len(apiErr.Details) == 0) {
		return nil
	}

	return &apiErr
}

// StatusError is returned when the server answers with a status code the operation
// does not treat as success.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Expected   []int
	API        *APIError
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	msg := fmt.Sprintf("%s %s: unexpected status %d %s", e.Method, e.Path, e.StatusCode, http.StatusText(e.StatusCode))

	if len(e.Expected) > 0 {
		msg += fmt.Sprintf(" (expected %v)", e.Expected)
	}

	if e.API != nil {
		msg += ": " + e.API.Error()
	}

	return msg
}

// Unwrap exposes the decoded API error, if any.
func (e *StatusError) Unwrap() error {
	if e.API == nil {
		return nil
	}

	return e.API
}

// Static errors for err113 compliance.
var (
	ErrConfigRequired   = errors.New("config is required")
	ErrEndpointRequired = errors.New("subdomain or endpoint is required")
	ErrNoIDs            = errors.New("at least one id is required")
	ErrTooManyIDs       = errors.New("too many ids")
	ErrUnknownScore     = errors.New("unknown satisfaction rating score")
	ErrRequestRequired  = errors.New("request is required")
	ErrNoMoreItems      = errors.New("no more items")
)

// IsNotFound reports whether err carries a 404 response.
func IsNotFound(err error) bool {
	return IsStatus(err, http.StatusNotFound)
}

// IsUnauthorized reports whether err carries a 401 response.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}

// IsForbidden reports whether err carries a 403 response.
func IsForbidden(err error) bool {
	return IsStatus(err, http.StatusForbidden)
}

// IsStatus reports whether err carries a response with the given status code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == code
	}

	return false
}
