package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// LoginTimeout bounds the credential check made by zdesk login.
	LoginTimeout = 10 * time.Second

	// PublishTimeout bounds a NATS publish when the caller's context has no deadline.
	PublishTimeout = 5 * time.Second
)

// Pagination and bulk limits.
const (
	// DefaultPageSize is the number of items per page used by the CLI.
	DefaultPageSize = 25

	// MaxPageSize is the largest per_page value the API accepts.
	MaxPageSize = 100

	// MaxBulkIDs is the largest id list accepted by the *_many endpoints.
	MaxBulkIDs = 100
)

// Channel sizes.
const (
	// SmallBufferSize is used for page streaming channels.
	SmallBufferSize = 10
)

// API layout.
const (
	// APIBasePath is the versioned API prefix every resource path starts with.
	APIBasePath = "api/v2"

	// DefaultUserAgent is sent unless the caller overrides it.
	DefaultUserAgent = "zendesk-client-go"

	// HostSuffix completes a bare subdomain into a host name.
	HostSuffix = ".zendesk.com"
)

// Output formats understood by the CLI.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"
)
