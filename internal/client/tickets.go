package client

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/fivetwenty-io/zendesk-client/internal/http"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

const ticketsResource = "ticket"

// TicketsClient implements zendesk.TicketsClient.
type TicketsClient struct {
	httpClient *http.Client
	logger     zendesk.Logger
}

// NewTicketsClient creates a new tickets client.
func NewTicketsClient(httpClient *http.Client, logger zendesk.Logger) *TicketsClient {
	return &TicketsClient{
		httpClient: httpClient,
		logger:     logger,
	}
}

// Get implements zendesk.TicketsClient.Get.
func (c *TicketsClient) Get(ctx context.Context, id int64) (*zendesk.Ticket, error) {
	path := resourcePath("tickets/%d", id)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if isNotFound(resp, err) {
		logNotFound(c.logger, ticketsResource, "get", map[string]interface{}{"id": id})

		return nil, nil //nolint:nilnil // absent ticket
	}

	err = checkStatus(nethttp.MethodGet, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("getting ticket: %w", err)
	}

	ticket, err := decodeEntity[zendesk.Ticket](resp.Body, "ticket")
	if err != nil {
		return nil, fmt.Errorf("parsing ticket: %w", err)
	}

	return ticket, nil
}

// List implements zendesk.TicketsClient.List.
func (c *TicketsClient) List(ctx context.Context, pager *zendesk.Pager) (*zendesk.TicketList, error) {
	path := resourcePath("tickets")

	resp, err := c.httpClient.Get(ctx, path, pagerValues(pager))

	err = checkStatus(nethttp.MethodGet, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("listing tickets: %w", err)
	}

	list, err := decodeList[zendesk.TicketList](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing tickets list: %w", err)
	}

	return list, nil
}

// Create implements zendesk.TicketsClient.Create.
func (c *TicketsClient) Create(ctx context.Context, request *zendesk.TicketCreateRequest) (*zendesk.Ticket, error) {
	if request == nil {
		return nil, zendesk.ErrRequestRequired
	}

	path := resourcePath("tickets")
	body := map[string]*zendesk.TicketCreateRequest{"ticket": request}

	resp, err := c.httpClient.Post(ctx, path, body)

	err = checkStatus(nethttp.MethodPost, path, resp, err, nethttp.StatusCreated)
	if err != nil {
		return nil, fmt.Errorf("creating ticket: %w", err)
	}

	ticket, err := decodeEntity[zendesk.Ticket](resp.Body, "ticket")
	if err != nil {
		return nil, fmt.Errorf("parsing ticket response: %w", err)
	}

	return ticket, nil
}

// Update implements zendesk.TicketsClient.Update.
func (c *TicketsClient) Update(ctx context.Context, request *zendesk.TicketUpdateRequest) (*zendesk.Ticket, error) {
	if request == nil {
		return nil, zendesk.ErrRequestRequired
	}

	path := resourcePath("tickets/%d", request.ID)
	body := map[string]*zendesk.TicketUpdateRequest{"ticket": request}

	resp, err := c.httpClient.Put(ctx, path, body)
	if isNotFound(resp, err) {
		logNotFound(c.logger, ticketsResource, "update", map[string]interface{}{"id": request.ID})

		return nil, nil //nolint:nilnil // absent ticket
	}

	err = checkStatus(nethttp.MethodPut, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("updating ticket: %w", err)
	}

	ticket, err := decodeEntity[zendesk.Ticket](resp.Body, "ticket")
	if err != nil {
		return nil, fmt.Errorf("parsing ticket response: %w", err)
	}

	return ticket, nil
}

// Delete implements zendesk.TicketsClient.Delete.
func (c *TicketsClient) Delete(ctx context.Context, id int64) error {
	path := resourcePath("tickets/%d", id)

	resp, err := c.httpClient.Delete(ctx, path)

	err = checkStatus(nethttp.MethodDelete, path, resp, err, nethttp.StatusNoContent)
	if err != nil {
		return fmt.Errorf("deleting ticket: %w", err)
	}

	return nil
}
