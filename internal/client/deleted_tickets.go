package client

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/fivetwenty-io/zendesk-client/internal/http"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

// DeletedTicketsClient implements zendesk.DeletedTicketsClient.
type DeletedTicketsClient struct {
	httpClient *http.Client
	logger     zendesk.Logger
}

// NewDeletedTicketsClient creates a new deleted tickets client.
func NewDeletedTicketsClient(httpClient *http.Client, logger zendesk.Logger) *DeletedTicketsClient {
	return &DeletedTicketsClient{
		httpClient: httpClient,
		logger:     logger,
	}
}

type jobStatusEnvelope struct {
	JobStatus *zendesk.JobStatus `json:"job_status"`
}

// List implements zendesk.DeletedTicketsClient.List. Sorting is requested through the
// pager's SortBy and SortOrder.
func (c *DeletedTicketsClient) List(ctx context.Context, pager *zendesk.Pager) (*zendesk.DeletedTicketList, error) {
	path := resourcePath("deleted_tickets")

	resp, err := c.httpClient.Get(ctx, path, pagerValues(pager))

	err = checkStatus(nethttp.MethodGet, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("listing deleted tickets: %w", err)
	}

	list, err := decodeList[zendesk.DeletedTicketList](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing deleted tickets list: %w", err)
	}

	if list.DeletedTickets == nil {
		list.DeletedTickets = []zendesk.Ticket{}
	}

	return list, nil
}

// Restore implements zendesk.DeletedTicketsClient.Restore.
func (c *DeletedTicketsClient) Restore(ctx context.Context, id int64) error {
	path := resourcePath("deleted_tickets/%d/restore", id)

	resp, err := c.httpClient.Put(ctx, path, nil)

	err = checkStatus(nethttp.MethodPut, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return fmt.Errorf("restoring deleted ticket %d: %w", id, err)
	}

	return nil
}

// RestoreMany implements zendesk.DeletedTicketsClient.RestoreMany.
func (c *DeletedTicketsClient) RestoreMany(ctx context.Context, ids []int64) error {
	query, err := idsQuery(ids)
	if err != nil {
		return fmt.Errorf("restoring deleted tickets: %w", err)
	}

	path := resourcePath("deleted_tickets/restore_many")

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: nethttp.MethodPut,
		Path:   path,
		Query:  query,
	})

	err = checkStatus(nethttp.MethodPut, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return fmt.Errorf("restoring deleted tickets: %w", err)
	}

	return nil
}

// Purge implements zendesk.DeletedTicketsClient.Purge. The returned job status is the
// reference to the asynchronous removal.
func (c *DeletedTicketsClient) Purge(ctx context.Context, id int64) (*zendesk.JobStatus, error) {
	path := resourcePath("deleted_tickets/%d", id)

	resp, err := c.httpClient.Delete(ctx, path)

	err = checkStatus(nethttp.MethodDelete, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("purging deleted ticket %d: %w", id, err)
	}

	return c.parseJobStatus(resp)
}

// PurgeMany implements zendesk.DeletedTicketsClient.PurgeMany.
func (c *DeletedTicketsClient) PurgeMany(ctx context.Context, ids []int64) (*zendesk.JobStatus, error) {
	query, err := idsQuery(ids)
	if err != nil {
		return nil, fmt.Errorf("purging deleted tickets: %w", err)
	}

	path := resourcePath("deleted_tickets/destroy_many")

	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method: nethttp.MethodDelete,
		Path:   path,
		Query:  query,
	})

	err = checkStatus(nethttp.MethodDelete, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("purging deleted tickets: %w", err)
	}

	return c.parseJobStatus(resp)
}

func (c *DeletedTicketsClient) parseJobStatus(resp *http.Response) (*zendesk.JobStatus, error) {
	envelope, err := decodeList[jobStatusEnvelope](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing job status: %w", err)
	}

	if envelope.JobStatus == nil {
		return nil, fmt.Errorf("parsing job status: %w", errMissingJobStatus)
	}

	c.logger.Debug("purge job queued", map[string]interface{}{
		"job_id": envelope.JobStatus.ID,
		"status": envelope.JobStatus.Status,
	})

	return envelope.JobStatus, nil
}
