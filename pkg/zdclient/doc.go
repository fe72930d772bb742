// Package zdclient provides the primary entry point for constructing a helpdesk API
// client that implements the zendesk.Client interface.
//
// It layers endpoint resolution, HTTP transport, and authentication on top of the
// resource interfaces and types defined in the zendesk package. Most applications
// should import zdclient to build a client, then use the returned zendesk.Client to
// reach the resource clients: Tickets(), DeletedTickets(), Groups(),
// SatisfactionRatings(), OrganizationMemberships() and TicketAudits().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/fivetwenty-io/zendesk-client/pkg/zdclient"
//	  "github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  // An API token on the acme subdomain (https://acme.zendesk.com).
//	  cli, err := zdclient.NewWithAPIToken("acme", "agent@example.com", "token")
//	  if err != nil { log.Fatal(err) }
//
//	  // Or the full configuration:
//	  cli, err = zdclient.New(&zendesk.Config{
//	    Endpoint:   "https://support.example.com",
//	    OAuthToken: "oauth-access-token",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  deleted, err := cli.DeletedTickets().List(ctx, zendesk.NewPager().WithSort("deleted_at", zendesk.SortDescending))
//	  if err != nil { log.Fatal(err) }
//	  _ = deleted
//	}
//
// # Credentials
//
// An OAuth token takes precedence over an API token, which takes precedence over a
// password. Without any credentials requests are sent anonymously.
//
// # Helpers
//
// The package also provides convenience constructors NewWithEndpoint,
// NewWithAPIToken, and NewWithOAuthToken that wrap New with the appropriate
// configuration.
package zdclient
