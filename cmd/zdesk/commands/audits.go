package commands

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

var auditHeader = []string{"ID", "Ticket", "Author", "Channel", "Events", "Created"}

func auditRow(audit zendesk.TicketAudit) []string {
	channel := "-"
	if audit.Via != nil {
		channel = formatValue(audit.Via.Channel)
	}

	return []string{
		formatID(audit.ID),
		formatID(audit.TicketID),
		formatID(audit.AuthorID),
		channel,
		strconv.Itoa(len(audit.Events)),
		formatTime(audit.CreatedAt),
	}
}

// describeEvent summarizes an audit event in one line.
func describeEvent(event zendesk.AuditEvent) string {
	switch e := event.(type) {
	case *zendesk.CommentEvent:
		visibility := "public"
		if !e.Public {
			visibility = "private"
		}

		return fmt.Sprintf("%s comment by %d: %s", visibility, e.AuthorID, e.Body)
	case *zendesk.CreateEvent:
		return fmt.Sprintf("%s set to %v", e.FieldName, e.Value)
	case *zendesk.ChangeEvent:
		return fmt.Sprintf("%s changed from %v to %v", e.FieldName, e.PreviousValue, e.Value)
	case *zendesk.NotificationEvent:
		return fmt.Sprintf("notification %q to %s", e.Subject, formatIDs(e.Recipients))
	case *zendesk.NotificationWithCcsEvent:
		return fmt.Sprintf("notification %q to %s and CCs", e.Subject, formatIDs(e.Recipients))
	case *zendesk.CcEvent:
		return "copied " + formatIDs(e.Recipients)
	case *zendesk.SatisfactionRatingEvent:
		return "rated " + e.Score
	default:
		return "-"
	}
}

func renderAudit(w io.Writer, format string, audit *zendesk.TicketAudit) error {
	done, err := writeStructured(w, format, audit)
	if done || err != nil {
		return err
	}

	row := auditRow(*audit)

	err = renderEntity(w, format, audit, [][]string{
		{"ID", row[0]},
		{"Ticket", row[1]},
		{"Author", row[2]},
		{"Channel", row[3]},
		{"Created", row[5]},
	})
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header("Event", "Type", "Summary")

	for _, event := range audit.Events {
		_ = table.Append([]string{formatID(event.EventID()), string(event.EventType()), describeEvent(event)})
	}

	err = table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

func newAuditsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "audits",
		Aliases: []string{"audit", "ticket-audits"},
		Short:   "Read ticket audits",
		Long:    "List and inspect the audit trail of tickets",
	}

	cmd.AddCommand(newAuditsListCommand(app))
	cmd.AddCommand(newAuditsGetCommand(app))

	return cmd
}

func newAuditsListCommand(app *App) *cobra.Command {
	var (
		opts     listOptions
		ticketID int64
		pageSize int
		after    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ticket audits",
		Long: `List the audits of one ticket (--ticket) or of the whole account. Account-wide
listings use cursor pagination when --page-size is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return err
			}

			audits := client.TicketAudits()

			var items []zendesk.TicketAudit

			switch {
			case ticketID != 0:
				items, err = fetchList[zendesk.TicketAudit](cmd.Context(), opts, opts.pager(),
					func(ctx context.Context, pager *zendesk.Pager) (*zendesk.TicketAuditList, error) {
						page, err := audits.List(ctx, ticketID, pager)
						if err == nil && page == nil {
							return nil, notFound("ticket", ticketID)
						}

						return page, err
					})
			case pageSize > 0:
				items, err = fetchByCursor(cmd.Context(), audits, pageSize, after, opts.all)
			default:
				items, err = fetchList[zendesk.TicketAudit](cmd.Context(), opts, opts.pager(), audits.ListAll)
			}

			if err != nil {
				return fmt.Errorf("failed to list audits: %w", err)
			}

			return renderList(cmd.OutOrStdout(), app.outputFormat(), items, auditHeader, auditRow)
		},
	}

	addListFlags(cmd, &opts)
	cmd.Flags().Int64Var(&ticketID, "ticket", 0, "list the audits of this ticket")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "cursor page size for account-wide listings")
	cmd.Flags().StringVar(&after, "after", "", "cursor to continue from")
	cmd.MarkFlagsMutuallyExclusive("ticket", "page-size")

	return cmd
}

// fetchByCursor follows after cursors while the response reports more results and all
// is set.
func fetchByCursor(ctx context.Context, audits zendesk.TicketAuditsClient, size int, after string, all bool) ([]zendesk.TicketAudit, error) {
	var items []zendesk.TicketAudit

	for {
		page, err := audits.ListAll(ctx, zendesk.NewPager().WithCursor(size, after))
		if err != nil {
			return nil, err
		}

		if page == nil {
			return items, nil
		}

		items = append(items, page.Items()...)

		if !all || page.Meta == nil || !page.Meta.HasMore || page.Meta.AfterCursor == "" {
			return items, nil
		}

		after = page.Meta.AfterCursor
	}
}

func newAuditsGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get TICKET_ID AUDIT_ID",
		Short: "Get audit details",
		Long:  "Display an audit and its events",
		Args:  cobra.ExactArgs(2), //nolint:mnd // ticket and audit ids
		RunE: func(cmd *cobra.Command, args []string) error {
			ticketID, err := parseID(args[0])
			if err != nil {
				return err
			}

			auditID, err := parseID(args[1])
			if err != nil {
				return err
			}

			client, err := app.client()
			if err != nil {
				return err
			}

			audit, err := client.TicketAudits().Get(cmd.Context(), ticketID, auditID)
			if err != nil {
				return fmt.Errorf("failed to get audit: %w", err)
			}

			if audit == nil {
				return notFound("audit", auditID)
			}

			return renderAudit(cmd.OutOrStdout(), app.outputFormat(), audit)
		},
	}
}
