package client

import (
	"errors"

	"github.com/fivetwenty-io/zendesk-client/internal/auth"
	"github.com/fivetwenty-io/zendesk-client/internal/constants"
	"github.com/fivetwenty-io/zendesk-client/internal/http"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

// Static errors for err113 compliance.
var (
	ErrEndpointRequired = errors.New("API endpoint is required")
	errMissingJobStatus = errors.New("response has no job_status")
)

// Client implements the zendesk.Client interface.
type Client struct {
	httpClient    *http.Client
	authenticator auth.Authenticator
	baseURL       string
	logger        zendesk.Logger

	// Resource clients
	tickets                 *TicketsClient
	deletedTickets          *DeletedTicketsClient
	groups                  *GroupsClient
	satisfactionRatings     *SatisfactionRatingsClient
	organizationMemberships *OrganizationMembershipsClient
	ticketAudits            *TicketAuditsClient
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *zendesk.Config, logger zendesk.Logger) []http.Option {
	httpOpts := []http.Option{http.WithLogger(logger)}

	if config.HTTPClient != nil {
		httpOpts = append(httpOpts, http.WithHTTPClient(config.HTTPClient))
	}

	timeout := config.HTTPTimeout
	if timeout == 0 && config.HTTPClient == nil {
		timeout = constants.DefaultHTTPTimeout
	}

	httpOpts = append(httpOpts, http.WithTimeout(timeout))

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.Interceptors != nil {
		httpOpts = append(httpOpts, http.WithInterceptors(config.Interceptors))
	}

	return httpOpts
}

// New creates a client for config.Endpoint, which must already be normalized.
func New(config *zendesk.Config) (*Client, error) {
	if config.Endpoint == "" {
		return nil, ErrEndpointRequired
	}

	authenticator, err := auth.FromCredentials(auth.Credentials{
		Email:      config.Email,
		APIToken:   config.APIToken,
		OAuthToken: config.OAuthToken,
		Password:   config.Password,
	})
	if err != nil {
		return nil, err
	}

	return NewWithAuthenticator(config, authenticator)
}

// NewWithAuthenticator creates a client that authenticates with the given authenticator
// instead of the credentials in config.
func NewWithAuthenticator(config *zendesk.Config, authenticator auth.Authenticator) (*Client, error) {
	if config.Endpoint == "" {
		return nil, ErrEndpointRequired
	}

	logger := config.Logger
	if logger == nil {
		logger = zendesk.NopLogger{}
	}

	httpClient := http.NewClient(config.Endpoint, authenticator, createHTTPClientOptions(config, logger)...)

	client := &Client{
		httpClient:    httpClient,
		authenticator: authenticator,
		baseURL:       config.Endpoint,
		logger:        logger,
	}

	client.initializeResourceClients()

	logger.Debug("client initialized", map[string]interface{}{
		"endpoint": config.Endpoint,
		"auth":     client.AuthScheme(),
		"timeout":  config.HTTPTimeout.String(),
	})

	return client, nil
}

func (c *Client) initializeResourceClients() {
	c.tickets = NewTicketsClient(c.httpClient, c.logger)
	c.deletedTickets = NewDeletedTicketsClient(c.httpClient, c.logger)
	c.groups = NewGroupsClient(c.httpClient, c.logger)
	c.satisfactionRatings = NewSatisfactionRatingsClient(c.httpClient, c.logger)
	c.organizationMemberships = NewOrganizationMembershipsClient(c.httpClient, c.logger)
	c.ticketAudits = NewTicketAuditsClient(c.httpClient, c.logger)
}

// BaseURL returns the API endpoint.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AuthScheme names the authentication in use, or "none".
func (c *Client) AuthScheme() string {
	if c.authenticator == nil {
		return "none"
	}

	return c.authenticator.Scheme()
}

// Tickets implements zendesk.Client.Tickets.
func (c *Client) Tickets() zendesk.TicketsClient {
	return c.tickets
}

// DeletedTickets implements zendesk.Client.DeletedTickets.
func (c *Client) DeletedTickets() zendesk.DeletedTicketsClient {
	return c.deletedTickets
}

// Groups implements zendesk.Client.Groups.
func (c *Client) Groups() zendesk.GroupsClient {
	return c.groups
}

// SatisfactionRatings implements zendesk.Client.SatisfactionRatings.
func (c *Client) SatisfactionRatings() zendesk.SatisfactionRatingsClient {
	return c.satisfactionRatings
}

// OrganizationMemberships implements zendesk.Client.OrganizationMemberships.
func (c *Client) OrganizationMemberships() zendesk.OrganizationMembershipsClient {
	return c.organizationMemberships
}

// TicketAudits implements zendesk.Client.TicketAudits.
func (c *Client) TicketAudits() zendesk.TicketAuditsClient {
	return c.ticketAudits
}
