package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/zendesk-client/internal/constants"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

var ratingHeader = []string{"ID", "Ticket", "Score", "Assignee", "Group", "Comment", "Created"}

func ratingRow(rating zendesk.SatisfactionRating) []string {
	return []string{
		formatID(rating.ID),
		formatID(rating.TicketID),
		string(rating.Score),
		formatRef(rating.AssigneeID),
		formatRef(rating.GroupID),
		formatValue(rating.Comment),
		formatTime(rating.CreatedAt),
	}
}

func ratingDetails(rating *zendesk.SatisfactionRating) [][]string {
	return [][]string{
		{"ID", formatID(rating.ID)},
		{"Ticket", formatID(rating.TicketID)},
		{"Score", string(rating.Score)},
		{"Comment", formatValue(rating.Comment)},
		{"Reason", formatValue(rating.Reason)},
		{"Requester", formatRef(rating.RequesterID)},
		{"Assignee", formatRef(rating.AssigneeID)},
		{"Group", formatRef(rating.GroupID)},
		{"Created", formatTime(rating.CreatedAt)},
	}
}

func newSatisfactionRatingsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "satisfaction-ratings",
		Aliases: []string{"ratings", "csat"},
		Short:   "Manage satisfaction ratings",
		Long:    "List, get and create customer satisfaction ratings",
	}

	cmd.AddCommand(newRatingsListCommand(app))
	cmd.AddCommand(newRatingsGetCommand(app))
	cmd.AddCommand(newRatingsCreateCommand(app))

	return cmd
}

func newRatingsListCommand(app *App) *cobra.Command {
	var (
		opts      listOptions
		score     string
		startTime string
		endTime   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List satisfaction ratings",
		Long:  "List satisfaction ratings, optionally filtered by score and time range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pager := opts.pager()

			if score != "" {
				parsed, err := zendesk.ParseScore(score)
				if err != nil {
					return err
				}

				pager.WithFilter("score", string(parsed))
			}

			for key, value := range map[string]string{"start_time": startTime, "end_time": endTime} {
				if value == "" {
					continue
				}

				seconds, err := parseTimestamp(value)
				if err != nil {
					return err
				}

				pager.WithFilter(key, seconds)
			}

			client, err := app.client()
			if err != nil {
				return err
			}

			ratings, err := fetchList[zendesk.SatisfactionRating](cmd.Context(), opts, pager, client.SatisfactionRatings().List)
			if err != nil {
				return fmt.Errorf("failed to list satisfaction ratings: %w", err)
			}

			return renderList(cmd.OutOrStdout(), app.outputFormat(), ratings, ratingHeader, ratingRow)
		},
	}

	addListFlags(cmd, &opts)
	cmd.Flags().StringVar(&score, "score", "", "score filter (good, bad, offered, ...)")
	cmd.Flags().StringVar(&startTime, "start-time", "", "earliest creation time (RFC3339 or unix seconds)")
	cmd.Flags().StringVar(&endTime, "end-time", "", "latest creation time (RFC3339 or unix seconds)")

	return cmd
}

func newRatingsGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get RATING_ID",
		Short: "Get satisfaction rating details",
		Long:  "Display detailed information about a satisfaction rating",
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

			rating, err := client.SatisfactionRatings().Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get satisfaction rating: %w", err)
			}

			if rating == nil {
				return notFound("satisfaction rating", id)
			}

			return renderEntity(cmd.OutOrStdout(), app.outputFormat(), rating, ratingDetails(rating))
		},
	}
}

func newRatingsCreateCommand(app *App) *cobra.Command {
	var score, comment string

	cmd := &cobra.Command{
		Use:   "create TICKET_ID",
		Short: "Rate a ticket",
		Long:  "Record a satisfaction rating on a solved ticket",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ticketID, err := parseID(args[0])
			if err != nil {
				return err
			}

			if score == "" {
				return constants.ErrScoreRequired
			}

			parsed, err := zendesk.ParseScore(score)
			if err != nil {
				return err
			}

			client, err := app.client()
			if err != nil {
				return err
			}

			rating, err := client.SatisfactionRatings().Create(cmd.Context(), ticketID, &zendesk.SatisfactionRatingCreateRequest{
				Score:   parsed,
				Comment: comment,
			})
			if err != nil {
				return fmt.Errorf("failed to create satisfaction rating: %w", err)
			}

			return renderEntity(cmd.OutOrStdout(), app.outputFormat(), rating, ratingDetails(rating))
		},
	}

	cmd.Flags().StringVar(&score, "score", "", "score (good, bad, good_with_comment, bad_with_comment, ...)")
	cmd.Flags().StringVar(&comment, "comment", "", "optional comment")

	return cmd
}
