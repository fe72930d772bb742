package client

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/fivetwenty-io/zendesk-client/internal/http"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

// TicketAuditsClient implements zendesk.TicketAuditsClient.
type TicketAuditsClient struct {
	httpClient *http.Client
	logger     zendesk.Logger
}

// NewTicketAuditsClient creates a new ticket audits client.
func NewTicketAuditsClient(httpClient *http.Client, logger zendesk.Logger) *TicketAuditsClient {
	return &TicketAuditsClient{
		httpClient: httpClient,
		logger:     logger,
	}
}

// List implements zendesk.TicketAuditsClient.List. It returns nil when the ticket does
// not exist.
func (c *TicketAuditsClient) List(ctx context.Context, ticketID int64, pager *zendesk.Pager) (*zendesk.TicketAuditList, error) {
	path := resourcePath("tickets/%d/audits", ticketID)

	resp, err := c.httpClient.Get(ctx, path, pagerValues(pager))
	if isNotFound(resp, err) {
		logNotFound(c.logger, ticketsResource, "list audits", map[string]interface{}{"ticket_id": ticketID})

		return nil, nil //nolint:nilnil // absent ticket
	}

	err = checkStatus(nethttp.MethodGet, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("listing audits of ticket %d: %w", ticketID, err)
	}

	list, err := decodeList[zendesk.TicketAuditList](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing ticket audits list: %w", err)
	}

	return list, nil
}

// Get implements zendesk.TicketAuditsClient.Get.
func (c *TicketAuditsClient) Get(ctx context.Context, ticketID, auditID int64) (*zendesk.TicketAudit, error) {
	path := resourcePath("tickets/%d/audits/%d", ticketID, auditID)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if isNotFound(resp, err) {
		logNotFound(c.logger, "ticket audit", "get", map[string]interface{}{
			"ticket_id": ticketID,
			"id":        auditID,
		})

		return nil, nil //nolint:nilnil // absent audit
	}

	err = checkStatus(nethttp.MethodGet, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("getting ticket audit: %w", err)
	}

	audit, err := decodeEntity[zendesk.TicketAudit](resp.Body, "audit")
	if err != nil {
		return nil, fmt.Errorf("parsing ticket audit: %w", err)
	}

	return audit, nil
}

// ListAll implements zendesk.TicketAuditsClient.ListAll. This endpoint paginates by
// cursor; set the pager's cursor fields to move through it.
func (c *TicketAuditsClient) ListAll(ctx context.Context, pager *zendesk.Pager) (*zendesk.TicketAuditList, error) {
	path := resourcePath("ticket_audits")

	resp, err := c.httpClient.Get(ctx, path, pagerValues(pager))

	err = checkStatus(nethttp.MethodGet, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("listing ticket audits: %w", err)
	}

	list, err := decodeList[zendesk.TicketAuditList](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing ticket audits list: %w", err)
	}

	return list, nil
}
