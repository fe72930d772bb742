package commands_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fivetwenty-io/zendesk-client/cmd/zdesk/commands"
	"github.com/fivetwenty-io/zendesk-client/internal/constants"
	"github.com/fivetwenty-io/zendesk-client/internal/fakedesk"
	"github.com/fivetwenty-io/zendesk-client/internal/jobs"
	"github.com/fivetwenty-io/zendesk-client/internal/jobs/jobstest"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

// findSubcommand finds a subcommand by name within a cobra command.
func findSubcommand(cmd *cobra.Command, name string) *cobra.Command {
	for _, c := range cmd.Commands() {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

type invocation struct {
	server *fakedesk.Server
	config string
	stdin  string
}

// run executes zdesk with args against the fake server and returns stdout.
func (inv invocation) run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	root := commands.NewRootCommand(commands.BuildInfo{Version: "1.2.3", Commit: "abc", Date: "today"})

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetIn(strings.NewReader(inv.stdin))

	config := inv.config
	if config == "" {
		config = filepath.Join(t.TempDir(), "config.yml")
	}

	args = append(args, "--config", config, "--env-file", "")
	if inv.server != nil {
		args = append(args, "--endpoint", inv.server.URL())
	}

	root.SetArgs(args)

	err := root.Execute()

	return out.String(), err
}

func newServer(t *testing.T) *fakedesk.Server {
	t.Helper()

	server := fakedesk.New()
	t.Cleanup(server.Close)

	return server
}

func decodeJSON[T any](t *testing.T, output string) T {
	t.Helper()

	var value T

	require.NoError(t, json.Unmarshal([]byte(output), &value), output)

	return value
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	root := commands.NewRootCommand(commands.BuildInfo{})
	assert.Equal(t, "zdesk", root.Use)

	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}

	assert.ElementsMatch(t, []string{
		"version", "login", "config", "tickets", "deleted-tickets", "groups",
		"satisfaction-ratings", "org-memberships", "audits",
	}, names)

	for flag, def := range map[string]string{
		"config": "", "endpoint": "", "subdomain": "", "email": "", "token": "",
		"output": "table", "verbose": "false",
	} {
		lookup := root.PersistentFlags().Lookup(flag)
		require.NotNil(t, lookup, "flag %s should exist", flag)
		assert.Equal(t, def, lookup.DefValue, flag)
	}
}

func TestSubcommands(t *testing.T) {
	t.Parallel()

	root := commands.NewRootCommand(commands.BuildInfo{})

	tests := []struct {
		group string
		names []string
	}{
		{group: "tickets", names: []string{"list", "get", "create", "update", "delete"}},
		{group: "deleted-tickets", names: []string{"list", "restore", "purge"}},
		{group: "groups", names: []string{"list", "get", "create", "update", "delete"}},
		{group: "satisfaction-ratings", names: []string{"list", "get", "create"}},
		{group: "org-memberships", names: []string{"list", "get", "create", "delete", "make-default"}},
		{group: "audits", names: []string{"list", "get"}},
		{group: "config", names: []string{"show", "set"}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.group, func(t *testing.T) {
			t.Parallel()

			group := findSubcommand(root, tt.group)
			require.NotNil(t, group)

			for _, name := range tt.names {
				sub := findSubcommand(group, name)
				require.NotNil(t, sub, "%s %s", tt.group, name)
				assert.NotNil(t, sub.RunE)
			}
		})
	}

	list := findSubcommand(findSubcommand(root, "tickets"), "list")
	assert.Equal(t, "25", list.Flags().Lookup("per-page").DefValue)
	assert.Equal(t, "false", list.Flags().Lookup("all").DefValue)

	purge := findSubcommand(findSubcommand(root, "deleted-tickets"), "purge")
	assert.Equal(t, "zendesk.jobs.purge", purge.Flags().Lookup("nats-subject").DefValue)
}

func TestTicketsCommands(t *testing.T) {
	t.Parallel()

	server := newServer(t)
	inv := invocation{server: server}

	output, err := inv.run(t, "tickets", "create", "--subject", "Printer on fire", "--comment", "Help", "--priority", "high", "-o", "json")
	require.NoError(t, err)

	created := decodeJSON[zendesk.Ticket](t, output)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Printer on fire", created.Subject)
	assert.Equal(t, "high", created.Priority)

	id := created.ID
	idArg := formatInt(id)

	output, err = inv.run(t, "tickets", "update", idArg, "--status", "solved", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "solved", decodeJSON[zendesk.Ticket](t, output).Status)

	output, err = inv.run(t, "tickets", "list", "-o", "json")
	require.NoError(t, err)

	tickets := decodeJSON[[]zendesk.Ticket](t, output)
	require.Len(t, tickets, 1)
	assert.Equal(t, id, tickets[0].ID)

	output, err = inv.run(t, "tickets", "get", idArg)
	require.NoError(t, err)
	assert.Contains(t, output, "Printer")

	output, err = inv.run(t, "tickets", "delete", idArg)
	require.NoError(t, err)
	assert.Equal(t, "Ticket "+idArg+" deleted\n", output)

	_, err = inv.run(t, "tickets", "get", idArg)
	require.ErrorIs(t, err, constants.ErrNotFound)
	assert.Equal(t, []int64{id}, server.DeletedTicketIDs())
}

func TestTicketsValidation(t *testing.T) {
	t.Parallel()

	server := newServer(t)
	inv := invocation{server: server}

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "create without comment", args: []string{"tickets", "create", "--subject", "x"}, wantErr: constants.ErrCommentRequired},
		{name: "update without changes", args: []string{"tickets", "update", "5"}, wantErr: constants.ErrNothingToUpdate},
		{name: "non-numeric id", args: []string{"tickets", "get", "abc"}, wantErr: constants.ErrInvalidID},
		{name: "unknown output", args: []string{"version", "-o", "xml"}, wantErr: constants.ErrInvalidOutputFormat},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := inv.run(t, tt.args...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Zero(t, server.RequestCount())
}

func TestDeletedTicketsCommands(t *testing.T) {
	t.Parallel()

	server := newServer(t)
	server.SeedDeletedTickets(0, 1, 2)

	inv := invocation{server: server}

	output, err := inv.run(t, "deleted-tickets", "purge", "0", "1", "-o", "json")
	require.NoError(t, err)

	job := decodeJSON[zendesk.JobStatus](t, output)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, zendesk.JobStatusQueued, job.Status)
	assert.Equal(t, []int64{2}, server.DeletedTicketIDs())

	output, err = inv.run(t, "deleted-tickets", "list", "-o", "yaml")
	require.NoError(t, err)

	var deleted []zendesk.Ticket

	require.NoError(t, yaml.Unmarshal([]byte(output), &deleted))
	require.Len(t, deleted, 1)
	assert.Equal(t, int64(2), deleted[0].ID)

	output, err = inv.run(t, "deleted-tickets", "restore", "2")
	require.NoError(t, err)
	assert.Equal(t, "Restored tickets: 2\n", output)
	assert.Empty(t, server.DeletedTicketIDs())
	assert.Equal(t, []int64{2}, server.TicketIDs())

	output, err = inv.run(t, "deleted-tickets", "list")
	require.NoError(t, err)
	assert.Equal(t, "No results found\n", output)
}

func TestDeletedTicketsPurge_UsesBulkEndpointForManyIDs(t *testing.T) {
	t.Parallel()

	server := newServer(t)
	server.SeedDeletedTickets(4, 5)

	_, err := invocation{server: server}.run(t, "deleted-tickets", "purge", "4,5")
	require.NoError(t, err)

	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/api/v2/deleted_tickets/destroy_many", requests[0].Path)
}

func TestDeletedTicketsPurge_NATSUnreachable(t *testing.T) {
	t.Parallel()

	server := newServer(t)
	server.SeedDeletedTickets(7)

	_, err := invocation{server: server}.run(t, "deleted-tickets", "purge", "7", "--nats-url", "nats://127.0.0.1:1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connecting to NATS")
	assert.Equal(t, []int64{7}, server.DeletedTicketIDs())
}

func TestDeletedTicketsPurge_PublishesJob(t *testing.T) {
	t.Parallel()

	server := newServer(t)
	server.SeedDeletedTickets(7, 8)

	broker := jobstest.NewServer(t)

	output, err := invocation{server: server}.run(t, "deleted-tickets", "purge", "7", "8",
		"--nats-url", broker.URL(), "--nats-subject", "helpdesk.purges", "-o", "json")
	require.NoError(t, err)
	assert.Empty(t, server.DeletedTicketIDs())

	job := decodeJSON[zendesk.JobStatus](t, output)
	require.NotEmpty(t, job.ID)

	select {
	case msg := <-broker.Messages():
		assert.Equal(t, "helpdesk.purges", msg.Subject)

		var event jobs.Event
		require.NoError(t, json.Unmarshal(msg.Data, &event))
		assert.Equal(t, job.ID, event.JobID)
		assert.Equal(t, []int64{7, 8}, event.TicketIDs)
	case <-time.After(5 * time.Second):
		t.Fatal("purge job not published")
	}
}

func TestGroupsCommands(t *testing.T) {
	t.Parallel()

	server := newServer(t)
	server.SeedGroup(zendesk.Group{ID: 1, Name: "Support"})
	server.SeedGroup(zendesk.Group{ID: 2, Name: "Retired", Deleted: true})
	server.SeedUser(10, 1)

	inv := invocation{server: server}

	output, err := inv.run(t, "groups", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "Support")
	assert.Contains(t, output, "Retired")

	output, err = inv.run(t, "groups", "list", "--assignable", "-o", "json")
	require.NoError(t, err)

	groups := decodeJSON[[]zendesk.Group](t, output)
	require.Len(t, groups, 1)
	assert.Equal(t, "Support", groups[0].Name)

	output, err = inv.run(t, "groups", "list", "--user", "10", "-o", "json")
	require.NoError(t, err)
	assert.Len(t, decodeJSON[[]zendesk.Group](t, output), 1)

	_, err = inv.run(t, "groups", "list", "--user", "99")
	require.ErrorIs(t, err, constants.ErrNotFound)

	_, err = inv.run(t, "groups", "create")
	require.ErrorIs(t, err, constants.ErrNameRequired)

	output, err = inv.run(t, "groups", "create", "--name", "Billing", "-o", "json")
	require.NoError(t, err)
	assert.Equal(t, "Billing", decodeJSON[zendesk.Group](t, output).Name)
}

func TestSatisfactionRatingsCommands(t *testing.T) {
	t.Parallel()

	server := newServer(t)
	ticketID := server.SeedTicket(zendesk.Ticket{ID: 3, Subject: "Refund", Status: "solved", AssigneeID: 8})

	inv := invocation{server: server}

	_, err := inv.run(t, "satisfaction-ratings", "list", "--score", "great")
	require.ErrorIs(t, err, zendesk.ErrUnknownScore)

	_, err = inv.run(t, "satisfaction-ratings", "list", "--start-time", "yesterday")
	require.ErrorIs(t, err, constants.ErrInvalidTimestamp)
	assert.Zero(t, server.RequestCount())

	output, err := inv.run(t, "satisfaction-ratings", "create", formatInt(ticketID), "--score", "good", "--comment", "Thanks", "-o", "json")
	require.NoError(t, err)

	rating := decodeJSON[zendesk.SatisfactionRating](t, output)
	assert.Equal(t, zendesk.ScoreGood, rating.Score)
	assert.Equal(t, int64(8), rating.AssigneeID)

	output, err = inv.run(t, "satisfaction-ratings", "list", "--score", "good", "--start-time", "2020-01-01T00:00:00Z", "-o", "json")
	require.NoError(t, err)
	assert.Len(t, decodeJSON[[]zendesk.SatisfactionRating](t, output), 1)

	output, err = inv.run(t, "satisfaction-ratings", "list", "--score", "bad", "-o", "json")
	require.NoError(t, err)
	assert.Empty(t, decodeJSON[[]zendesk.SatisfactionRating](t, output))
}

func TestOrgMembershipsCommands(t *testing.T) {
	t.Parallel()

	server := newServer(t)
	server.SeedMembership(zendesk.OrganizationMembership{ID: 1, UserID: 10, OrganizationID: 100, Default: boolPtr(true)})
	server.SeedMembership(zendesk.OrganizationMembership{ID: 2, UserID: 10, OrganizationID: 200, Default: boolPtr(false)})

	inv := invocation{server: server}

	output, err := inv.run(t, "org-memberships", "make-default", "10", "2", "-o", "json")
	require.NoError(t, err)

	memberships := decodeJSON[[]zendesk.OrganizationMembership](t, output)
	require.Len(t, memberships, 2)

	defaults := map[int64]bool{}
	for _, membership := range memberships {
		defaults[membership.ID] = *membership.Default
	}

	assert.Equal(t, map[int64]bool{1: false, 2: true}, defaults)

	_, err = inv.run(t, "org-memberships", "make-default", "20", "2")
	require.ErrorIs(t, err, constants.ErrNotFound)

	_, err = inv.run(t, "org-memberships", "create", "--user", "10")
	require.ErrorIs(t, err, constants.ErrOrganizationRequired)

	output, err = inv.run(t, "org-memberships", "list", "--org", "200", "-o", "json")
	require.NoError(t, err)
	assert.Len(t, decodeJSON[[]zendesk.OrganizationMembership](t, output), 1)
}

func TestAuditsCommands(t *testing.T) {
	t.Parallel()

	server := newServer(t)
	inv := invocation{server: server}

	output, err := inv.run(t, "tickets", "create", "--comment", "My screen is blank", "-o", "json")
	require.NoError(t, err)

	ticketID := formatInt(decodeJSON[zendesk.Ticket](t, output).ID)

	output, err = inv.run(t, "audits", "list", "--ticket", ticketID, "-o", "json")
	require.NoError(t, err)

	var audits []struct {
		ID     int64             `json:"id"`
		Events []json.RawMessage `json:"events"`
	}

	require.NoError(t, json.Unmarshal([]byte(output), &audits))
	require.Len(t, audits, 1)
	assert.Len(t, audits[0].Events, 2)

	output, err = inv.run(t, "audits", "get", ticketID, formatInt(audits[0].ID))
	require.NoError(t, err)
	assert.Contains(t, output, "comment")
	assert.Contains(t, output, "blank")

	_, err = inv.run(t, "audits", "list", "--ticket", "424242")
	require.ErrorIs(t, err, constants.ErrNotFound)
}

func TestAuditsList_CursorAll(t *testing.T) {
	t.Parallel()

	server := newServer(t)

	for id := int64(1); id <= 5; id++ {
		server.SeedAudit(zendesk.TicketAudit{ID: id, TicketID: 1})
	}

	output, err := invocation{server: server}.run(t, "audits", "list", "--page-size", "2", "--all", "-o", "json")
	require.NoError(t, err)

	var audits []zendesk.TicketAudit

	require.NoError(t, json.Unmarshal([]byte(output), &audits))
	assert.Len(t, audits, 5)
	assert.Equal(t, 3, server.RequestCount())
}

func TestConfigCommands(t *testing.T) {
	t.Parallel()

	config := filepath.Join(t.TempDir(), "nested", "config.yml")
	inv := invocation{config: config}

	output, err := inv.run(t, "config", "set", "subdomain", "acme")
	require.NoError(t, err)
	assert.Contains(t, output, "Set subdomain")

	_, err = inv.run(t, "config", "set", "token", "abcdef123456")
	require.NoError(t, err)

	_, err = inv.run(t, "config", "set", "colour", "blue")
	require.ErrorIs(t, err, constants.ErrUnknownConfigKey)

	_, err = inv.run(t, "config", "set", "output", "xml")
	require.ErrorIs(t, err, constants.ErrInvalidOutputFormat)

	info, err := os.Stat(config)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(constants.ConfigFilePerm), info.Mode().Perm())

	output, err = inv.run(t, "config", "show", "-o", "json")
	require.NoError(t, err)

	settings := decodeJSON[commands.Settings](t, output)
	assert.Equal(t, "acme", settings.Subdomain)
	assert.Equal(t, "****3456", settings.Token)
}

func TestLoginCommand(t *testing.T) {
	t.Parallel()

	server := newServer(t)
	config := filepath.Join(t.TempDir(), "config.yml")

	inv := invocation{server: server, config: config, stdin: "agent@example.com\ns3cret\n"}

	output, err := inv.run(t, "login")
	require.NoError(t, err)
	assert.Contains(t, output, "Logged in as agent@example.com")

	requests := server.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, "/api/v2/tickets", requests[0].Path)

	data, err := os.ReadFile(config)
	require.NoError(t, err)

	var saved commands.Settings

	require.NoError(t, yaml.Unmarshal(data, &saved))
	assert.Equal(t, commands.Settings{Endpoint: server.URL(), Email: "agent@example.com", Token: "s3cret"}, saved)
}

func TestLoginCommand_RejectedCredentials(t *testing.T) {
	t.Parallel()

	server := newServer(t)
	server.FailNext(401)

	config := filepath.Join(t.TempDir(), "config.yml")

	_, err := invocation{server: server, config: config, stdin: "agent@example.com\nwrong\n"}.run(t, "login")
	require.Error(t, err)
	assert.True(t, zendesk.IsUnauthorized(err))

	_, statErr := os.Stat(config)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMissingEndpoint(t *testing.T) {
	t.Parallel()

	_, err := invocation{}.run(t, "tickets", "list")
	require.ErrorIs(t, err, constants.ErrNoEndpointConfigured)
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	output, err := invocation{}.run(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(output, "zdesk version 1.2.3 (commit abc, built today"), output)

	output, err = invocation{}.run(t, "version", "-o", "json")
	require.NoError(t, err)

	info := decodeJSON[map[string]string](t, output)
	assert.Equal(t, "1.2.3", info["version"])
	assert.NotEmpty(t, info["go_version"])
}

func boolPtr(value bool) *bool {
	return &value
}

func formatInt(value int64) string {
	return strconv.FormatInt(value, 10)
}
