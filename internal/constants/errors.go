package constants

import "errors"

// Configuration errors.
var (
	ErrNoEndpointConfigured = errors.New("no endpoint configured, use --subdomain, --endpoint or 'zdesk login'")
	ErrUnknownConfigKey     = errors.New("unknown configuration key")
	ErrEmailRequired        = errors.New("email is required")
	ErrTokenRequired        = errors.New("API token is required")
)

// Validation errors.
var (
	ErrInvalidID           = errors.New("invalid id")
	ErrInvalidOutputFormat = errors.New("invalid output format")
	ErrInvalidTimestamp    = errors.New("invalid timestamp, use RFC3339 or unix seconds")
	ErrNothingToUpdate     = errors.New("nothing to update, pass at least one flag")
)

// Required field errors.
var (
	ErrNameRequired         = errors.New("--name flag is required")
	ErrCommentRequired      = errors.New("--comment flag is required")
	ErrScoreRequired        = errors.New("--score flag is required")
	ErrUserRequired         = errors.New("--user flag is required")
	ErrOrganizationRequired = errors.New("--org flag is required")
)

// Lookup errors.
var (
	ErrNotFound = errors.New("not found")
)
