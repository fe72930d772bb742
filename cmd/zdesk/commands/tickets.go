package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/zendesk-client/internal/constants"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

var ticketHeader = []string{"ID", "Subject", "Status", "Priority", "Requester", "Assignee", "Group", "Updated"}

func ticketRow(ticket zendesk.Ticket) []string {
	return []string{
		formatID(ticket.ID),
		formatValue(ticket.Subject),
		formatValue(ticket.Status),
		formatValue(ticket.Priority),
		formatRef(ticket.RequesterID),
		formatRef(ticket.AssigneeID),
		formatRef(ticket.GroupID),
		formatTime(ticket.UpdatedAt),
	}
}

func ticketDetails(ticket *zendesk.Ticket) [][]string {
	return [][]string{
		{"ID", formatID(ticket.ID)},
		{"Subject", formatValue(ticket.Subject)},
		{"Description", formatValue(ticket.Description)},
		{"Status", formatValue(ticket.Status)},
		{"Priority", formatValue(ticket.Priority)},
		{"Type", formatValue(ticket.Type)},
		{"Requester", formatRef(ticket.RequesterID)},
		{"Assignee", formatRef(ticket.AssigneeID)},
		{"Group", formatRef(ticket.GroupID)},
		{"Organization", formatRef(ticket.OrganizationID)},
		{"Tags", formatValue(strings.Join(ticket.Tags, ", "))},
		{"Created", formatTime(ticket.CreatedAt)},
		{"Updated", formatTime(ticket.UpdatedAt)},
	}
}

// newTicketsCommand creates the tickets command group.
func newTicketsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tickets",
		Aliases: []string{"ticket"},
		Short:   "Manage tickets",
		Long:    "List, get, create, update and delete tickets",
	}

	cmd.AddCommand(newTicketsListCommand(app))
	cmd.AddCommand(newTicketsGetCommand(app))
	cmd.AddCommand(newTicketsCreateCommand(app))
	cmd.AddCommand(newTicketsUpdateCommand(app))
	cmd.AddCommand(newTicketsDeleteCommand(app))

	return cmd
}

func newTicketsListCommand(app *App) *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tickets",
		Long:  "List tickets, one page at a time or all pages with --all",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return err
			}

			tickets, err := fetchList[zendesk.Ticket](cmd.Context(), opts, opts.pager(), client.Tickets().List)
			if err != nil {
				return fmt.Errorf("failed to list tickets: %w", err)
			}

			return renderList(cmd.OutOrStdout(), app.outputFormat(), tickets, ticketHeader, ticketRow)
		},
	}

	addListFlags(cmd, &opts)

	return cmd
}

func newTicketsGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get TICKET_ID",
		Short: "Get ticket details",
		Long:  "Display detailed information about a ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := app.client()
			if err != nil {
				return err
			}

			ticket, err := client.Tickets().Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get ticket: %w", err)
			}

			if ticket == nil {
				return notFound("ticket", id)
			}

			return renderEntity(cmd.OutOrStdout(), app.outputFormat(), ticket, ticketDetails(ticket))
		},
	}
}

type ticketFlags struct {
	subject     string
	comment     string
	status      string
	priority    string
	ticketType  string
	requesterID int64
	assigneeID  int64
	groupID     int64
	tags        []string
	private     bool
}

func addTicketFlags(cmd *cobra.Command, flags *ticketFlags) {
	cmd.Flags().StringVar(&flags.subject, "subject", "", "ticket subject")
	cmd.Flags().StringVar(&flags.comment, "comment", "", "comment body")
	cmd.Flags().StringVar(&flags.status, "status", "", "status (new, open, pending, hold, solved, closed)")
	cmd.Flags().StringVar(&flags.priority, "priority", "", "priority (low, normal, high, urgent)")
	cmd.Flags().StringVar(&flags.ticketType, "type", "", "type (problem, incident, question, task)")
	cmd.Flags().Int64Var(&flags.assigneeID, "assignee", 0, "assignee user id")
	cmd.Flags().Int64Var(&flags.groupID, "group", 0, "group id")
	cmd.Flags().StringSliceVar(&flags.tags, "tags", nil, "tags")
}

func newTicketsCreateCommand(app *App) *cobra.Command {
	var flags ticketFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a ticket",
		Long:  "Create a new ticket from a subject and an opening comment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.comment == "" {
				return constants.ErrCommentRequired
			}

			client, err := app.client()
			if err != nil {
				return err
			}

			ticket, err := client.Tickets().Create(cmd.Context(), &zendesk.TicketCreateRequest{
				Subject:     flags.subject,
				Comment:     &zendesk.TicketComment{Body: flags.comment},
				Status:      flags.status,
				Priority:    flags.priority,
				Type:        flags.ticketType,
				RequesterID: flags.requesterID,
				AssigneeID:  flags.assigneeID,
				GroupID:     flags.groupID,
				Tags:        flags.tags,
			})
			if err != nil {
				return fmt.Errorf("failed to create ticket: %w", err)
			}

			return renderEntity(cmd.OutOrStdout(), app.outputFormat(), ticket, ticketDetails(ticket))
		},
	}

	addTicketFlags(cmd, &flags)
	cmd.Flags().Int64Var(&flags.requesterID, "requester", 0, "requester user id")

	return cmd
}

func newTicketsUpdateCommand(app *App) *cobra.Command {
	var flags ticketFlags

	cmd := &cobra.Command{
		Use:   "update TICKET_ID",
		Short: "Update a ticket",
		Long:  "Update fields of a ticket and optionally add a comment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			request := &zendesk.TicketUpdateRequest{
				ID:         id,
				Subject:    flags.subject,
				Status:     flags.status,
				Priority:   flags.priority,
				Type:       flags.ticketType,
				AssigneeID: flags.assigneeID,
				GroupID:    flags.groupID,
				Tags:       flags.tags,
			}

			if flags.comment != "" {
				request.Comment = &zendesk.TicketComment{Body: flags.comment, Public: boolPtr(!flags.private)}
			}

			if isEmptyTicketUpdate(request) {
				return constants.ErrNothingToUpdate
			}

			client, err := app.client()
			if err != nil {
				return err
			}

			ticket, err := client.Tickets().Update(cmd.Context(), request)
			if err != nil {
				return fmt.Errorf("failed to update ticket: %w", err)
			}

			if ticket == nil {
				return notFound("ticket", id)
			}

			return renderEntity(cmd.OutOrStdout(), app.outputFormat(), ticket, ticketDetails(ticket))
		},
	}

	addTicketFlags(cmd, &flags)
	cmd.Flags().BoolVar(&flags.private, "private", false, "add the comment as an internal note")

	return cmd
}

func newTicketsDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete TICKET_ID",
		Short: "Delete a ticket",
		Long:  "Soft-delete a ticket; it can be restored with 'zdesk deleted-tickets restore'",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			client, err := app.client()
			if err != nil {
				return err
			}

			err = client.Tickets().Delete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete ticket: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Ticket %d deleted\n", id)

			return nil
		},
	}
}

func isEmptyTicketUpdate(request *zendesk.TicketUpdateRequest) bool {
	return request.Subject == "" && request.Status == "" && request.Priority == "" &&
		request.Type == "" && request.AssigneeID == 0 && request.GroupID == 0 &&
		request.Tags == nil && request.Comment == nil
}
