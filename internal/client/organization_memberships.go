package client

import (
	"context"
	"fmt"
	nethttp "net/http"

	"github.com/fivetwenty-io/zendesk-client/internal/http"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

const membershipsResource = "organization membership"

// OrganizationMembershipsClient implements zendesk.OrganizationMembershipsClient.
type OrganizationMembershipsClient struct {
	httpClient *http.Client
	logger     zendesk.Logger
}

// NewOrganizationMembershipsClient creates a new organization memberships client.
func NewOrganizationMembershipsClient(httpClient *http.Client, logger zendesk.Logger) *OrganizationMembershipsClient {
	return &OrganizationMembershipsClient{
		httpClient: httpClient,
		logger:     logger,
	}
}

// List implements zendesk.OrganizationMembershipsClient.List.
func (c *OrganizationMembershipsClient) List(ctx context.Context, pager *zendesk.Pager) (*zendesk.OrganizationMembershipList, error) {
	path := resourcePath("organization_memberships")

	resp, err := c.httpClient.Get(ctx, path, pagerValues(pager))

	err = checkStatus(nethttp.MethodGet, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("listing organization memberships: %w", err)
	}

	list, err := decodeList[zendesk.OrganizationMembershipList](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing organization memberships list: %w", err)
	}

	return list, nil
}

// ListByUser implements zendesk.OrganizationMembershipsClient.ListByUser.
func (c *OrganizationMembershipsClient) ListByUser(
	ctx context.Context,
	userID int64,
	pager *zendesk.Pager,
) (*zendesk.OrganizationMembershipList, error) {
	return c.listScoped(ctx, resourcePath("users/%d/organization_memberships", userID), pager, "user", userID)
}

// ListByOrganization implements zendesk.OrganizationMembershipsClient.ListByOrganization.
func (c *OrganizationMembershipsClient) ListByOrganization(
	ctx context.Context,
	organizationID int64,
	pager *zendesk.Pager,
) (*zendesk.OrganizationMembershipList, error) {
	return c.listScoped(ctx, resourcePath("organizations/%d/organization_memberships", organizationID), pager, "organization", organizationID)
}

func (c *OrganizationMembershipsClient) listScoped(
	ctx context.Context,
	path string,
	pager *zendesk.Pager,
	owner string,
	ownerID int64,
) (*zendesk.OrganizationMembershipList, error) {
	resp, err := c.httpClient.Get(ctx, path, pagerValues(pager))
	if isNotFound(resp, err) {
		logNotFound(c.logger, owner, "list organization memberships", map[string]interface{}{owner + "_id": ownerID})

		return nil, nil //nolint:nilnil // absent owner
	}

	err = checkStatus(nethttp.MethodGet, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("listing organization memberships of %s %d: %w", owner, ownerID, err)
	}

	list, err := decodeList[zendesk.OrganizationMembershipList](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing organization memberships list: %w", err)
	}

	return list, nil
}

// Get implements zendesk.OrganizationMembershipsClient.Get.
func (c *OrganizationMembershipsClient) Get(ctx context.Context, id int64) (*zendesk.OrganizationMembership, error) {
	path := resourcePath("organization_memberships/%d", id)

	resp, err := c.httpClient.Get(ctx, path, nil)
	if isNotFound(resp, err) {
		logNotFound(c.logger, membershipsResource, "get", map[string]interface{}{"id": id})

		return nil, nil //nolint:nilnil // absent membership
	}

	err = checkStatus(nethttp.MethodGet, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("getting organization membership: %w", err)
	}

	membership, err := decodeEntity[zendesk.OrganizationMembership](resp.Body, "organization_membership")
	if err != nil {
		return nil, fmt.Errorf("parsing organization membership: %w", err)
	}

	return membership, nil
}

// Create implements zendesk.OrganizationMembershipsClient.Create.
func (c *OrganizationMembershipsClient) Create(
	ctx context.Context,
	request *zendesk.OrganizationMembershipCreateRequest,
) (*zendesk.OrganizationMembership, error) {
	if request == nil {
		return nil, zendesk.ErrRequestRequired
	}

	path := resourcePath("organization_memberships")
	body := map[string]*zendesk.OrganizationMembershipCreateRequest{"organization_membership": request}

	resp, err := c.httpClient.Post(ctx, path, body)

	err = checkStatus(nethttp.MethodPost, path, resp, err, nethttp.StatusCreated)
	if err != nil {
		return nil, fmt.Errorf("creating organization membership: %w", err)
	}

	membership, err := decodeEntity[zendesk.OrganizationMembership](resp.Body, "organization_membership")
	if err != nil {
		return nil, fmt.Errorf("parsing organization membership response: %w", err)
	}

	return membership, nil
}

// Delete implements zendesk.OrganizationMembershipsClient.Delete.
func (c *OrganizationMembershipsClient) Delete(ctx context.Context, id int64) error {
	path := resourcePath("organization_memberships/%d", id)

	resp, err := c.httpClient.Delete(ctx, path)

	err = checkStatus(nethttp.MethodDelete, path, resp, err, nethttp.StatusNoContent)
	if err != nil {
		return fmt.Errorf("deleting organization membership: %w", err)
	}

	return nil
}

// MakeDefault implements zendesk.OrganizationMembershipsClient.MakeDefault.
func (c *OrganizationMembershipsClient) MakeDefault(
	ctx context.Context,
	userID, membershipID int64,
) (*zendesk.OrganizationMembershipList, error) {
	path := resourcePath("users/%d/organization_memberships/%d/make_default", userID, membershipID)

	resp, err := c.httpClient.Put(ctx, path, nil)
	if isNotFound(resp, err) {
		logNotFound(c.logger, membershipsResource, "make default", map[string]interface{}{
			"user_id": userID,
			"id":      membershipID,
		})

		return nil, nil //nolint:nilnil // absent membership
	}

	err = checkStatus(nethttp.MethodPut, path, resp, err, nethttp.StatusOK)
	if err != nil {
		return nil, fmt.Errorf("making organization membership default: %w", err)
	}

	list, err := decodeList[zendesk.OrganizationMembershipList](resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing organization memberships list: %w", err)
	}

	return list, nil
}
