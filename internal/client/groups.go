package client

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/fivetwenty-io/zendesk-client/internal/http"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

const groupsResource = "group"

// GroupsClient implements zendesk.GroupsClient.
type GroupsClient struct {
	httpClient *http.Client
	logger     zendesk.Logger
}

// NewGroupsClient creates a new groups client.
func NewGroupsClient(httpClient *http.Client, logger zendesk.Logger) *GroupsClient {
	return &GroupsClient{
		httpClient: httpClient,
		logger:     logger,
	}
}

// List implements zendesk.GroupsClient.List.
func (c *GroupsClient) List(ctx context.Context, pager *zendesk.Pager) (*zendesk.GroupList, error) {
	return c.list(ctx, resourcePath("groups"), pager, "listing groups")
}

// ListByUser implements zendesk.GroupsClient.ListByUser. It returns nil when the user
// does not exist.
func (c *GroupsClient) ListByUser(ctx context.Context, userID int64, pager *zendesk.Pager) (*zendesk.GroupList, error) {
	path := resourcePath("users/%d/groups", userID)

	resp, err := c.httpClient.Get(ctx, path, pagerValues(pager))
	if isNotFound(resp, err) {
		logNotFound(c.logger, "user", "list groups", map[string]interface{}{"user_id": userID})

		return nil, nil //nolint:nilnil // absent user
	}

	err = checkStatus(nethttp.MethodGet, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("listing groups of user %d: %w", userID, err)
	}

	list, err := decodeList[zendesk.GroupList](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing groups list: %w", err)
	}

	return list, nil
}

// ListAssignable implements zendesk.GroupsClient.ListAssignable.
func (c *GroupsClient) ListAssignable(ctx context.Context, pager *zendesk.Pager) (*zendesk.GroupList, error) {
	return c.list(ctx, resourcePath("groups/assignable"), pager, "listing assignable groups")
}

func (c *GroupsClient) list(ctx context.Context, path string, pager *zendesk.Pager, action string) (*zendesk.GroupList, error) {
	resp, err := c.httpClient.Get(ctx, path, pagerValues(pager))

	err = checkStatus(nethttp.MethodGet, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}

	list, err := decodeList[zendesk.GroupList](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing groups list: %w", err)
	}

	return list, nil
}

// Get implements zendesk.GroupsClient.Get.
func (c *GroupsClient) Get(ctx context.Context, id int64) (*zendesk.Group, error) {
	path := resourcePath("groups/%d", id)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if isNotFound(resp, err) {
		logNotFound(c.logger, groupsResource, "get", map[string]interface{}{"id": id})

		return nil, nil //nolint:nilnil // absent group
	}

	err = checkStatus(nethttp.MethodGet, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("getting group: %w", err)
	}

	group, err := decodeEntity[zendesk.Group](resp.Body, "group")
	if err != nil {
		return nil, fmt.Errorf("parsing group: %w", err)
	}

	return group, nil
}

// Create implements zendesk.GroupsClient.Create.
func (c *GroupsClient) Create(ctx context.Context, request *zendesk.GroupCreateRequest) (*zendesk.Group, error) {
	if request == nil {
		return nil, zendesk.ErrRequestRequired
	}

	path := resourcePath("groups")

	resp, err := c.httpClient.Post(ctx, path, map[string]*zendesk.GroupCreateRequest{"group": request})

	err = checkStatus(nethttp.MethodPost, path, resp, err, nethttp.StatusCreated)
	if err != nil {
		return nil, fmt.Errorf("creating group: %w", err)
	}

	group, err := decodeEntity[zendesk.Group](resp.Body, "group")
	if err != nil {
		return nil, fmt.Errorf("parsing group response: %w", err)
	}

	return group, nil
}

// Update implements zendesk.GroupsClient.Update.
func (c *GroupsClient) Update(ctx context.Context, request *zendesk.GroupUpdateRequest) (*zendesk.Group, error) {
	if request == nil {
		return nil, zendesk.ErrRequestRequired
	}

	path := resourcePath("groups/%d", request.ID)

	resp, err := c.httpClient.Put(ctx, path, map[string]*zendesk.GroupUpdateRequest{"group": request})
	if isNotFound(resp, err) {
		logNotFound(c.logger, groupsResource, "update", map[string]interface{}{"id": request.ID})

		return nil, nil //nolint:nilnil // absent group
	}

	err = checkStatus(nethttp.MethodPut, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("updating group: %w", err)
	}

	group, err := decodeEntity[zendesk.Group](resp.Body, "group")
	if err != nil {
		return nil, fmt.Errorf("parsing group response: %w", err)
	}

	return group, nil
}

// Delete implements zendesk.GroupsClient.Delete.
func (c *GroupsClient) Delete(ctx context.Context, id int64) error {
	path := resourcePath("groups/%d", id)

	resp, err := c.httpClient.Delete(ctx, path)

	err = checkStatus(nethttp.MethodDelete, path, resp, err, nethttp.StatusNoContent)
	if err != nil {
		return fmt.Errorf("deleting group: %w", err)
	}

	return nil
}
