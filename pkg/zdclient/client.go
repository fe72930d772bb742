// Package zdclient provides the main entry point for creating helpdesk API clients
package zdclient

import (
	"fmt"
	"strings"

	"github.com/fivetwenty-io/zendesk-client/internal/client"
	"github.com/fivetwenty-io/zendesk-client/internal/constants"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

// New creates a new helpdesk API client. The caller's config is not modified.
func New(config *zendesk.Config) (zendesk.Client, error) {
	if config == nil {
		return nil, zendesk.ErrConfigRequired
	}

	endpoint, err := NormalizeEndpoint(config.Subdomain, config.Endpoint)
	if err != nil {
		return nil, err
	}

	normalized := *config
	normalized.Endpoint = endpoint

	c, err := client.New(&normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NormalizeEndpoint resolves the API root from a subdomain or an explicit endpoint.
// An endpoint wins over a subdomain. A bare subdomain such as "acme" becomes
// https://acme.zendesk.com; a missing scheme defaults to https, and a trailing
// "/api/v2" is dropped.
func NormalizeEndpoint(subdomain, endpoint string) (string, error) {
	endpoint = strings.TrimSpace(endpoint)
	subdomain = strings.TrimSpace(subdomain)

	if endpoint == "" {
		if subdomain == "" {
			return "", zendesk.ErrEndpointRequired
		}

		endpoint = subdomain
		if !strings.Contains(subdomain, ".") {
			endpoint = subdomain + constants.HostSuffix
		}
	}

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	endpoint = strings.TrimSuffix(endpoint, "/"+constants.APIBasePath)

	return endpoint, nil
}

// NewWithEndpoint creates a new client with just an endpoint (no auth).
func NewWithEndpoint(endpoint string) (zendesk.Client, error) {
	return New(&zendesk.Config{
		Endpoint: endpoint,
	})
}

// NewWithAPIToken creates a new client for a subdomain authenticating as email with an
// API token.
func NewWithAPIToken(subdomain, email, token string) (zendesk.Client, error) {
	return New(&zendesk.Config{
		Subdomain: subdomain,
		Email:     email,
		APIToken:  token,
	})
}

// NewWithOAuthToken creates a new client for a subdomain using an OAuth access token.
func NewWithOAuthToken(subdomain, token string) (zendesk.Client, error) {
	return New(&zendesk.Config{
		Subdomain:  subdomain,
		OAuthToken: token,
	})
}
