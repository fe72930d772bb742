// Package zendesk provides types, interfaces, and helpers for working with a
// Zendesk-compatible helpdesk REST API.
//
// # Overview
//
// The zendesk package defines the domain types (Ticket, Group, SatisfactionRating,
// OrganizationMembership, TicketAudit, JobStatus) and the interfaces of the resource
// clients (TicketsClient, DeletedTicketsClient, GroupsClient, ...). The zdclient
// package builds a concrete Client from a Config. Most consumers import both.
//
// Getting a client
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
//	  cli, err := zdclient.NewWithAPIToken("acme", "agent@acme.com", "token")
//	  if err != nil { log.Fatal(err) }
//
//	  tickets, err := cli.Tickets().List(ctx, zendesk.NewPager().WithPerPage(50))
//	  if err != nil { log.Fatal(err) }
//	  _ = tickets
//	}
//
// # Results
//
// Every operation makes exactly one HTTP request. Get and Update return (nil, nil)
// when the entity does not exist; user and organization scoped lists do the same
// for an unknown owner. Any other unexpected status is returned as a *StatusError
// carrying the parsed *APIError when the body had one.
//
// Purges run remotely: Purge and PurgeMany return the JobStatus reference as
// received and never poll it.
//
// # Pagination
//
// A Pager carries page, per_page, sorting, cursor and filter parameters; they are
// forwarded as given. Callers that want more than one page use the helpers:
//
//	all, err := zendesk.FetchAllPages(ctx, zendesk.Lister[zendesk.Group](cli.Groups().List), nil, nil)
//
// or iterate item by item with NewPaginationIterator, or receive pages on a channel
// with StreamPages.
//
// # Errors
//
// IsNotFound, IsUnauthorized, IsForbidden and IsStatus branch on *StatusError.
// Invalid input, such as an empty or oversized id list, is rejected before any
// request with ErrNoIDs, ErrTooManyIDs or ErrRequestRequired.
//
// # Interceptors and logging
//
// Config.Interceptors runs request and response hooks around every call;
// MetricsCollector counts requests and status codes. Logger is satisfied by
// NopLogger and by NewZapLogger for go.uber.org/zap.
package zendesk
