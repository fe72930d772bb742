package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/zendesk-client/internal/constants"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

var membershipHeader = []string{"ID", "User", "Organization", "Name", "Default"}

func membershipRow(membership zendesk.OrganizationMembership) []string {
	return []string{
		formatID(membership.ID),
		formatID(membership.UserID),
		formatID(membership.OrganizationID),
		formatValue(membership.OrganizationName),
		formatBool(membership.Default),
	}
}

func membershipDetails(membership *zendesk.OrganizationMembership) [][]string {
	return [][]string{
		{"ID", formatID(membership.ID)},
		{"User", formatID(membership.UserID)},
		{"Organization", formatID(membership.OrganizationID)},
		{"Organization Name", formatValue(membership.OrganizationName)},
		{"Default", formatBool(membership.Default)},
		{"Created", formatTime(membership.CreatedAt)},
	}
}

func newOrgMembershipsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "org-memberships",
		Aliases: []string{"organization-memberships", "memberships"},
		Short:   "Manage organization memberships",
		Long:    "List, get, create and delete organization memberships and choose a user's default organization",
	}

	cmd.AddCommand(newMembershipsListCommand(app))
	cmd.AddCommand(newMembershipsGetCommand(app))
	cmd.AddCommand(newMembershipsCreateCommand(app))
	cmd.AddCommand(newMembershipsDeleteCommand(app))
	cmd.AddCommand(newMembershipsMakeDefaultCommand(app))

	return cmd
}

func newMembershipsListCommand(app *App) *cobra.Command {
	var (
		opts           listOptions
		userID         int64
		organizationID int64
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List organization memberships",
		Long:  "List all memberships, those of a user (--user) or those of an organization (--org)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return err
			}

			memberships := client.OrganizationMemberships()
			list := memberships.List

			switch {
			case userID != 0:
				list = func(ctx context.Context, pager *zendesk.Pager) (*zendesk.OrganizationMembershipList, error) {
					page, err := memberships.ListByUser(ctx, userID, pager)
					if err == nil && page == nil {
						return nil, notFound("user", userID)
					}

					return page, err
				}
			case organizationID != 0:
				list = func(ctx context.Context, pager *zendesk.Pager) (*zendesk.OrganizationMembershipList, error) {
					page, err := memberships.ListByOrganization(ctx, organizationID, pager)
					if err == nil && page == nil {
						return nil, notFound("organization", organizationID)
					}

					return page, err
				}
			}

			items, err := fetchList[zendesk.OrganizationMembership](cmd.Context(), opts, opts.pager(), list)
			if err != nil {
				return fmt.Errorf("failed to list organization memberships: %w", err)
			}

			return renderList(cmd.OutOrStdout(), app.outputFormat(), items, membershipHeader, membershipRow)
		},
	}

	addListFlags(cmd, &opts)
	cmd.Flags().Int64Var(&userID, "user", 0, "list the memberships of this user")
	cmd.Flags().Int64Var(&organizationID, "org", 0, "list the memberships of this organization")
	cmd.MarkFlagsMutuallyExclusive("user", "org")

	return cmd
}

func newMembershipsGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get MEMBERSHIP_ID",
		Short: "Get organization membership details",
		Long:  "Display detailed information about an organization membership",
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

			membership, err := client.OrganizationMemberships().Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get organization membership: %w", err)
			}

			if membership == nil {
				return notFound("organization membership", id)
			}

			return renderEntity(cmd.OutOrStdout(), app.outputFormat(), membership, membershipDetails(membership))
		},
	}
}

func newMembershipsCreateCommand(app *App) *cobra.Command {
	var (
		userID         int64
		organizationID int64
		makeDefault    bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a user to an organization",
		Long:  "Create an organization membership for a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == 0 {
				return constants.ErrUserRequired
			}

			if organizationID == 0 {
				return constants.ErrOrganizationRequired
			}

			request := &zendesk.OrganizationMembershipCreateRequest{
				UserID:         userID,
				OrganizationID: organizationID,
			}

			if cmd.Flags().Changed("default") {
				request.Default = boolPtr(makeDefault)
			}

			client, err := app.client()
			if err != nil {
				return err
			}

			membership, err := client.OrganizationMemberships().Create(cmd.Context(), request)
			if err != nil {
				return fmt.Errorf("failed to create organization membership: %w", err)
			}

			return renderEntity(cmd.OutOrStdout(), app.outputFormat(), membership, membershipDetails(membership))
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user id")
	cmd.Flags().Int64Var(&organizationID, "org", 0, "organization id")
	cmd.Flags().BoolVar(&makeDefault, "default", false, "make this the user's default organization")

	return cmd
}

func newMembershipsDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete MEMBERSHIP_ID",
		Short: "Remove a user from an organization",
		Long:  "Delete an organization membership",
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

			err = client.OrganizationMemberships().Delete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete organization membership: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Organization membership %d deleted\n", id)

			return nil
		},
	}
}

func newMembershipsMakeDefaultCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "make-default USER_ID MEMBERSHIP_ID",
		Short: "Set a user's default organization",
		Long:  "Make a membership the user's default and list the user's memberships afterwards",
		Args:  cobra.ExactArgs(2), //nolint:mnd // user and membership ids
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := parseID(args[0])
			if err != nil {
				return err
			}

			membershipID, err := parseID(args[1])
			if err != nil {
				return err
			}

			client, err := app.client()
			if err != nil {
				return err
			}

			memberships, err := client.OrganizationMemberships().MakeDefault(cmd.Context(), userID, membershipID)
			if err != nil {
				return fmt.Errorf("failed to make membership default: %w", err)
			}

			if memberships == nil {
				return notFound("organization membership", membershipID)
			}

			return renderList(cmd.OutOrStdout(), app.outputFormat(), memberships.Items(), membershipHeader, membershipRow)
		},
	}
}
