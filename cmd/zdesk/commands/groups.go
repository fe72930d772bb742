package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/zendesk-client/internal/constants"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

var groupHeader = []string{"ID", "Name", "Description", "Default", "Deleted"}

func groupRow(group zendesk.Group) []string {
	return []string{
		formatID(group.ID),
		group.Name,
		formatValue(group.Description),
		strconv.FormatBool(group.Default),
		strconv.FormatBool(group.Deleted),
	}
}

func groupDetails(group *zendesk.Group) [][]string {
	return [][]string{
		{"ID", formatID(group.ID)},
		{"Name", group.Name},
		{"Description", formatValue(group.Description)},
		{"Default", strconv.FormatBool(group.Default)},
		{"Deleted", strconv.FormatBool(group.Deleted)},
		{"Created", formatTime(group.CreatedAt)},
		{"Updated", formatTime(group.UpdatedAt)},
	}
}

func newGroupsCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "groups",
		Aliases: []string{"group"},
		Short:   "Manage agent groups",
		Long:    "List, get, create, update and delete agent groups",
	}

	cmd.AddCommand(newGroupsListCommand(app))
	cmd.AddCommand(newGroupsGetCommand(app))
	cmd.AddCommand(newGroupsCreateCommand(app))
	cmd.AddCommand(newGroupsUpdateCommand(app))
	cmd.AddCommand(newGroupsDeleteCommand(app))

	return cmd
}

func newGroupsListCommand(app *App) *cobra.Command {
	var (
		opts       listOptions
		userID     int64
		assignable bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Long:  "List all groups, the groups of a user (--user) or the assignable groups (--assignable)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := app.client()
			if err != nil {
				return err
			}

			list := client.Groups().List

			switch {
			case userID != 0:
				list = func(ctx context.Context, pager *zendesk.Pager) (*zendesk.GroupList, error) {
					groups, err := client.Groups().ListByUser(ctx, userID, pager)
					if err == nil && groups == nil {
						return nil, notFound("user", userID)
					}

					return groups, err
				}
			case assignable:
				list = client.Groups().ListAssignable
			}

			groups, err := fetchList[zendesk.Group](cmd.Context(), opts, opts.pager(), list)
			if err != nil {
				return fmt.Errorf("failed to list groups: %w", err)
			}

			return renderList(cmd.OutOrStdout(), app.outputFormat(), groups, groupHeader, groupRow)
		},
	}

	addListFlags(cmd, &opts)
	cmd.Flags().Int64Var(&userID, "user", 0, "list the groups of this user")
	cmd.Flags().BoolVar(&assignable, "assignable", false, "list assignable groups only")
	cmd.MarkFlagsMutuallyExclusive("user", "assignable")

	return cmd
}

func newGroupsGetCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get GROUP_ID",
		Short: "Get group details",
		Long:  "Display detailed information about a group",
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

			group, err := client.Groups().Get(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to get group: %w", err)
			}

			if group == nil {
				return notFound("group", id)
			}

			return renderEntity(cmd.OutOrStdout(), app.outputFormat(), group, groupDetails(group))
		},
	}
}

func newGroupsCreateCommand(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		Long:  "Create a new agent group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return constants.ErrNameRequired
			}

			client, err := app.client()
			if err != nil {
				return err
			}

			group, err := client.Groups().Create(cmd.Context(), &zendesk.GroupCreateRequest{
				Name:        name,
				Description: description,
			})
			if err != nil {
				return fmt.Errorf("failed to create group: %w", err)
			}

			return renderEntity(cmd.OutOrStdout(), app.outputFormat(), group, groupDetails(group))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "group name")
	cmd.Flags().StringVar(&description, "description", "", "group description")

	return cmd
}

func newGroupsUpdateCommand(app *App) *cobra.Command {
	var name, description string

	cmd := &cobra.Command{
		Use:   "update GROUP_ID",
		Short: "Update a group",
		Long:  "Rename a group or change its description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if name == "" && description == "" {
				return constants.ErrNothingToUpdate
			}

			client, err := app.client()
			if err != nil {
				return err
			}

			group, err := client.Groups().Update(cmd.Context(), &zendesk.GroupUpdateRequest{
				ID:          id,
				Name:        name,
				Description: description,
			})
			if err != nil {
				return fmt.Errorf("failed to update group: %w", err)
			}

			if group == nil {
				return notFound("group", id)
			}

			return renderEntity(cmd.OutOrStdout(), app.outputFormat(), group, groupDetails(group))
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new group name")
	cmd.Flags().StringVar(&description, "description", "", "new group description")

	return cmd
}

func newGroupsDeleteCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete GROUP_ID",
		Short: "Delete a group",
		Long:  "Delete an agent group",
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

			err = client.Groups().Delete(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("failed to delete group: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Group %d deleted\n", id)

			return nil
		},
	}
}
