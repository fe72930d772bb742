package zendesk

import (
	"context"
	"net/http"
	"time"
)

// TicketsClient manages live tickets.
type TicketsClient interface {
	Get(ctx context.Context, id int64) (*Ticket, error)
	List(ctx context.Context, pager *Pager) (*TicketList, error)
	Create(ctx context.Context, request *TicketCreateRequest) (*Ticket, error)
	Update(ctx context.Context, request *TicketUpdateRequest) (*Ticket, error)
	// Delete soft-deletes a ticket; it then shows up in DeletedTickets.
	Delete(ctx context.Context, id int64) error
}

// DeletedTicketsClient lists, restores and permanently purges soft-deleted tickets.
type DeletedTicketsClient interface {
	List(ctx context.Context, pager *Pager) (*DeletedTicketList, error)
	Restore(ctx context.Context, id int64) error
	RestoreMany(ctx context.Context, ids []int64) error
	Purge(ctx context.Context, id int64) (*JobStatus, error)
	PurgeMany(ctx context.Context, ids []int64) (*JobStatus, error)
}

// GroupsClient manages agent groups.
type GroupsClient interface {
	List(ctx context.Context, pager *Pager) (*GroupList, error)
	ListByUser(ctx context.Context, userID int64, pager *Pager) (*GroupList, error)
	ListAssignable(ctx context.Context, pager *Pager) (*GroupList, error)
	Get(ctx context.Context, id int64) (*Group, error)
	Create(ctx context.Context, request *GroupCreateRequest) (*Group, error)
	Update(ctx context.Context, request *GroupUpdateRequest) (*Group, error)
	Delete(ctx context.Context, id int64) error
}

// SatisfactionRatingsClient reads and records satisfaction ratings. Ratings cannot be
// changed or removed once created.
type SatisfactionRatingsClient interface {
	Get(ctx context.Context, id int64) (*SatisfactionRating, error)
	List(ctx context.Context, pager *Pager) (*SatisfactionRatingList, error)
	Create(ctx context.Context, ticketID int64, request *SatisfactionRatingCreateRequest) (*SatisfactionRating, error)
}

// OrganizationMembershipsClient manages the links between users and organizations.
type OrganizationMembershipsClient interface {
	List(ctx context.Context, pager *Pager) (*OrganizationMembershipList, error)
	ListByUser(ctx context.Context, userID int64, pager *Pager) (*OrganizationMembershipList, error)
	ListByOrganization(ctx context.Context, organizationID int64, pager *Pager) (*OrganizationMembershipList, error)
	Get(ctx context.Context, id int64) (*OrganizationMembership, error)
	Create(ctx context.Context, request *OrganizationMembershipCreateRequest) (*OrganizationMembership, error)
	Delete(ctx context.Context, id int64) error
	// MakeDefault returns the user's memberships after the change.
	MakeDefault(ctx context.Context, userID, membershipID int64) (*OrganizationMembershipList, error)
}

// TicketAuditsClient reads the audit trail of tickets.
type TicketAuditsClient interface {
	List(ctx context.Context, ticketID int64, pager *Pager) (*TicketAuditList, error)
	Get(ctx context.Context, ticketID, auditID int64) (*TicketAudit, error)
	ListAll(ctx context.Context, pager *Pager) (*TicketAuditList, error)
}

// Client provides access to every resource client. Single-entity reads and updates
// return (nil, nil) when the entity does not exist.
type Client interface {
	Tickets() TicketsClient
	DeletedTickets() DeletedTicketsClient
	Groups() GroupsClient
	SatisfactionRatings() SatisfactionRatingsClient
	OrganizationMemberships() OrganizationMembershipsClient
	TicketAudits() TicketAuditsClient
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a zendesk.Client.
//
// # Endpoint
//
// Either Subdomain ("acme" becomes "https://acme.zendesk.com") or Endpoint must be
// set. Endpoint wins when both are given and is normalized by zdclient.New.
//
// # Authentication precedence
//
//  1. OAuthToken: sent as a Bearer token.
//  2. Email + APIToken: basic auth with "email/token" as the user name.
//  3. Email + Password: basic auth.
//  4. No credentials: requests are sent without authentication.
//
// Every operation makes exactly one attempt; failed requests are never retried.
type Config struct {
	Subdomain string
	Endpoint  string

	Email      string
	APIToken   string
	OAuthToken string
	Password   string

	// HTTPClient: optional base client; its Transport is reused.
	HTTPClient  *http.Client
	// HTTPTimeout: per-request timeout. Defaults to 30s.
	HTTPTimeout time.Duration

	// Debug: enables request/response debug logging through Logger.
	Debug     bool
	Logger    Logger
	UserAgent string

	Interceptors *InterceptorChain
}
