package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/zendesk-client/internal/jobs"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

var deletedTicketHeader = []string{"ID", "Subject", "Previous State", "Deleted"}

func deletedTicketRow(ticket zendesk.Ticket) []string {
	return []string{
		formatID(ticket.ID),
		formatValue(ticket.Subject),
		formatValue(ticket.PreviousState),
		formatTime(ticket.DeletedAt),
	}
}

func newDeletedTicketsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "deleted-tickets",
		Aliases: []string{"deleted-ticket", "trash"},
		Short:   "Manage deleted tickets",
		Long:    "List, restore and permanently purge soft-deleted tickets",
	}

	cmd.AddCommand(newDeletedTicketsListCommand(app))
	cmd.AddCommand(newDeletedTicketsRestoreCommand(app))
	cmd.AddCommand(newDeletedTicketsPurgeCommand(app))

	return cmd
}

func newDeletedTicketsListCommand(app *App) *cobra.Command {
	var (
		opts      listOptions
		sortBy    string
		sortOrder string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deleted tickets",
		Long:  "List soft-deleted tickets that can still be restored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return err
			}

			pager := opts.pager().WithSort(sortBy, sortOrder)

			tickets, err := fetchList[zendesk.Ticket](cmd.Context(), opts, pager, client.DeletedTickets().List)
			if err != nil {
				return fmt.Errorf("failed to list deleted tickets: %w", err)
			}

			return renderList(cmd.OutOrStdout(), app.outputFormat(), tickets, deletedTicketHeader, deletedTicketRow)
		},
	}

	addListFlags(cmd, &opts)
	cmd.Flags().StringVar(&sortBy, "sort-by", "", "sort field (id, subject, deleted_at)")
	cmd.Flags().StringVar(&sortOrder, "sort-order", "", "sort direction (asc, desc)")

	return cmd
}

func newDeletedTicketsRestoreCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore TICKET_ID...",
		Short: "Restore deleted tickets",
		Long:  "Restore one or more deleted tickets; more than one id uses the bulk endpoint",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			client, err := app.client()
			if err != nil {
				return err
			}

			if len(ids) == 1 {
				err = client.DeletedTickets().Restore(cmd.Context(), ids[0])
			} else {
				err = client.DeletedTickets().RestoreMany(cmd.Context(), ids)
			}

			if err != nil {
				return fmt.Errorf("failed to restore tickets: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Restored tickets: %s\n", formatIDs(ids))

			return nil
		},
	}
}

func newDeletedTicketsPurgeCommand(app *App) *cobra.Command {
	var (
		natsURL     string
		natsSubject string
	)

	cmd := &cobra.Command{
		Use:   "purge TICKET_ID...",
		Short: "Permanently delete tickets",
		Long: `Permanently delete one or more soft-deleted tickets. The removal runs as a
remote job; its reference is printed and, with --nats-url, published on NATS.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs(args)
			if err != nil {
				return err
			}

			client, err := app.client()
			if err != nil {
				return err
			}

			var publisher *jobs.Publisher

			if natsURL != "" {
				publisher, err = jobs.Connect(natsURL, natsSubject, zendesk.NewZapLogger(app.logger))
				if err != nil {
					return fmt.Errorf("failed to connect job publisher: %w", err)
				}
				defer publisher.Close()
			}

			var job *zendesk.JobStatus

			if len(ids) == 1 {
				job, err = client.DeletedTickets().Purge(cmd.Context(), ids[0])
			} else {
				job, err = client.DeletedTickets().PurgeMany(cmd.Context(), ids)
			}

			if err != nil {
				return fmt.Errorf("failed to purge tickets: %w", err)
			}

			err = renderJob(cmd.OutOrStdout(), app.outputFormat(), job)
			if err != nil {
				return err
			}

			if publisher != nil {
				err = publisher.PublishJobStatus(cmd.Context(), "purge", job, ids)
				if err != nil {
					return fmt.Errorf("failed to publish purge job %s: %w", job.ID, err)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&natsURL, "nats-url", "", "NATS server to publish the purge job to")
	cmd.Flags().StringVar(&natsSubject, "nats-subject", jobs.DefaultSubject, "NATS subject for purge jobs")

	return cmd
}

func renderJob(w io.Writer, format string, job *zendesk.JobStatus) error {
	return renderEntity(w, format, job, [][]string{
		{"Job ID", job.ID},
		{"Status", formatValue(job.Status)},
		{"Progress", formatInt(job.Progress) + "/" + formatInt(job.Total)},
		{"URL", formatValue(job.URL)},
	})
}
