package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

func TestTicketAuditsClient_List(t *testing.T) {
	t.Parallel()

	client, server := newFakeClient(t)
	ctx := context.Background()

	ticket, err := client.Tickets().Create(ctx, &zendesk.TicketCreateRequest{
		Subject: "VPN down",
		Comment: &zendesk.TicketComment{Body: "Cannot connect"},
	})
	require.NoError(t, err)

	_, err = client.Tickets().Update(ctx, &zendesk.TicketUpdateRequest{ID: ticket.ID, Priority: "urgent"})
	require.NoError(t, err)

	audits, err := client.TicketAudits().List(ctx, ticket.ID, nil)
	require.NoError(t, err)
	require.Len(t, audits.Items(), 2)

	created := audits.Items()[0]
	require.Len(t, created.Events, 2)
	assert.Equal(t, zendesk.EventTypeComment, created.Events[0].EventType())
	assert.Equal(t, zendesk.EventTypeCreate, created.Events[1].EventType())

	change, ok := audits.Items()[1].Events[0].(*zendesk.ChangeEvent)
	require.True(t, ok)
	assert.Equal(t, "priority", change.FieldName)
	assert.Equal(t, "urgent", change.Value)

	require.NoError(t, client.Tickets().Delete(ctx, ticket.ID))

	deleted, err := client.TicketAudits().List(ctx, ticket.ID, nil)
	require.NoError(t, err)
	assert.Len(t, deleted.Items(), 2)

	absent, err := client.TicketAudits().List(ctx, ticket.ID+1000, nil)
	require.NoError(t, err)
	assert.Nil(t, absent)

	assert.Equal(t, 6, server.RequestCount())
}

func TestTicketAuditsClient_Get(t *testing.T) {
	t.Parallel()

	client, server := newFakeClient(t)
	server.SeedAudit(zendesk.TicketAudit{
		ID:       900,
		TicketID: 5,
		Events: zendesk.AuditEvents{
			&zendesk.CcEvent{EventBase: zendesk.EventBase{ID: 901, Type: zendesk.EventTypeCc}, Recipients: []int64{7}},
		},
	})

	audit, err := client.TicketAudits().Get(context.Background(), 5, 900)
	require.NoError(t, err)
	require.Len(t, audit.Events, 1)

	cc, ok := audit.Events[0].(*zendesk.CcEvent)
	require.True(t, ok)
	assert.Equal(t, []int64{7}, cc.Recipients)

	absent, err := client.TicketAudits().Get(context.Background(), 5, 901)
	require.NoError(t, err)
	assert.Nil(t, absent)
}

func TestTicketAuditsClient_Get_UnknownEvent(t *testing.T) {
	t.Parallel()

	client, _, _ := newStubClient(t, cannedResponse{
		Method: http.MethodGet,
		Path:   "/api/v2/tickets/5/audits/6",
		Status: http.StatusOK,
		Body:   `{"audit":{"id":6,"ticket_id":5,"events":[{"id":1,"type":"VoiceComment","data":{"call_id":3}}]}}`,
	})

	audit, err := client.TicketAudits().Get(context.Background(), 5, 6)
	require.NoError(t, err)
	require.Len(t, audit.Events, 1)

	unknown, ok := audit.Events[0].(*zendesk.UnknownEvent)
	require.True(t, ok)
	assert.Equal(t, zendesk.AuditEventType("VoiceComment"), unknown.EventType())
	assert.Contains(t, string(unknown.Raw), "call_id")
}

func TestTicketAuditsClient_ListAll(t *testing.T) {
	t.Parallel()

	client, server := newFakeClient(t)

	for id := int64(1); id <= 3; id++ {
		server.SeedAudit(zendesk.TicketAudit{ID: id, TicketID: 40 + id, Events: zendesk.AuditEvents{}})
	}

	first, err := client.TicketAudits().ListAll(context.Background(), zendesk.NewPager().WithCursor(2, ""))
	require.NoError(t, err)
	require.Len(t, first.Items(), 2)
	require.NotNil(t, first.Meta)
	assert.True(t, first.Meta.HasMore)
	assert.Equal(t, "2", first.Meta.AfterCursor)

	second, err := client.TicketAudits().ListAll(context.Background(), zendesk.NewPager().WithCursor(2, first.Meta.AfterCursor))
	require.NoError(t, err)
	require.Len(t, second.Items(), 1)
	assert.Equal(t, int64(3), second.Items()[0].ID)
	assert.False(t, second.Meta.HasMore)
}
