package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

func seedMemberships(t *testing.T) (*Client, func() []int64) {
	t.Helper()

	client, server := newFakeClient(t)
	yes, no := true, false

	server.SeedMembership(zendesk.OrganizationMembership{ID: 1, UserID: 10, OrganizationID: 100, Default: &yes})
	server.SeedMembership(zendesk.OrganizationMembership{ID: 2, UserID: 10, OrganizationID: 200, Default: &no})
	server.SeedMembership(zendesk.OrganizationMembership{ID: 3, UserID: 20, OrganizationID: 100, Default: &yes})

	return client, server.MembershipIDs
}

func membershipIDs(list *zendesk.OrganizationMembershipList) []int64 {
	ids := make([]int64, 0, len(list.Items()))
	for _, membership := range list.Items() {
		ids = append(ids, membership.ID)
	}

	return ids
}

func TestOrganizationMembershipsClient_List(t *testing.T) {
	t.Parallel()

	client, _ := seedMemberships(t)
	ctx := context.Background()

	all, err := client.OrganizationMemberships().List(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, membershipIDs(all))

	byUser, err := client.OrganizationMemberships().ListByUser(ctx, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, membershipIDs(byUser))

	byOrganization, err := client.OrganizationMemberships().ListByOrganization(ctx, 100, nil)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, membershipIDs(byOrganization))

	unknownUser, err := client.OrganizationMemberships().ListByUser(ctx, 99, nil)
	require.NoError(t, err)
	assert.Nil(t, unknownUser)

	unknownOrganization, err := client.OrganizationMemberships().ListByOrganization(ctx, 999, nil)
	require.NoError(t, err)
	assert.Nil(t, unknownOrganization)
}

func TestOrganizationMembershipsClient_Get(t *testing.T) {
	t.Parallel()

	client, _ := seedMemberships(t)

	membership, err := client.OrganizationMemberships().Get(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(200), membership.OrganizationID)

	absent, err := client.OrganizationMemberships().Get(context.Background(), 4)
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestOrganizationMembershipsClient_CreateAndDelete(t *testing.T) {
	t.Parallel()

	client, ids := seedMemberships(t)
	ctx := context.Background()

	created, err := client.OrganizationMemberships().Create(ctx, &zendesk.OrganizationMembershipCreateRequest{
		UserID:         20,
		OrganizationID: 200,
	})
	require.NoError(t, err)
	require.NotNil(t, created.Default)
	assert.False(t, *created.Default)
	assert.Contains(t, ids(), created.ID)

	_, err = client.OrganizationMemberships().Create(ctx, &zendesk.OrganizationMembershipCreateRequest{
		UserID:         20,
		OrganizationID: 200,
	})
	requireStatusError(t, err, http.StatusUnprocessableEntity, http.StatusCreated)

	require.NoError(t, client.OrganizationMemberships().Delete(ctx, created.ID))
	assert.NotContains(t, ids(), created.ID)

	err = client.OrganizationMemberships().Delete(ctx, created.ID)
	requireStatusError(t, err, http.StatusNotFound, http.StatusNoContent)
}

func TestOrganizationMembershipsClient_MakeDefault(t *testing.T) {
	t.Parallel()

	client, _ := seedMemberships(t)
	ctx := context.Background()

	list, err := client.OrganizationMemberships().MakeDefault(ctx, 10, 2)
	require.NoError(t, err)
	require.Len(t, list.Items(), 2)

	defaults := map[int64]bool{}
	for _, membership := range list.Items() {
		require.NotNil(t, membership.Default)
		defaults[membership.ID] = *membership.Default
	}

	assert.Equal(t, map[int64]bool{1: false, 2: true}, defaults)

	other, err := client.OrganizationMemberships().Get(ctx, 3)
	require.NoError(t, err)
	assert.True(t, *other.Default)

	wrongUser, err := client.OrganizationMemberships().MakeDefault(ctx, 20, 2)
	require.NoError(t, err)
	assert.Nil(t, wrongUser)
}
