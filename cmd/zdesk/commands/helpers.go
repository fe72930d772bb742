package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/zendesk-client/internal/constants"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

// listOptions are the pagination flags shared by list commands.
type listOptions struct {
	page    int
	perPage int
	all     bool
}

func addListFlags(cmd *cobra.Command, opts *listOptions) {
	cmd.Flags().IntVar(&opts.page, "page", 0, "page number")
	cmd.Flags().IntVar(&opts.perPage, "per-page", constants.DefaultPageSize, "results per page")
	cmd.Flags().BoolVar(&opts.all, "all", false, "fetch all pages")
}

func (o listOptions) pager() *zendesk.Pager {
	return zendesk.NewPager().WithPage(o.page).WithPerPage(o.perPage)
}

// fetchList makes one list call, or walks every page when --all is set.
func fetchList[T any, L zendesk.PagedList[T]](
	ctx context.Context,
	opts listOptions,
	pager *zendesk.Pager,
	list func(ctx context.Context, pager *zendesk.Pager) (L, error),
) ([]T, error) {
	if opts.all {
		return zendesk.FetchAllPages(ctx, zendesk.Lister[T](list), pager, &zendesk.PaginationOptions{
			PageSize: opts.perPage,
		})
	}

	page, err := list(ctx, pager)
	if err != nil {
		return nil, err
	}

	return page.Items(), nil
}

func notFound(resource string, id int64) error {
	return fmt.Errorf("%s %d %w", resource, id, constants.ErrNotFound)
}

func parseID(value string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: %q", constants.ErrInvalidID, value)
	}

	return id, nil
}

func parseIDs(values []string) ([]int64, error) {
	ids := make([]int64, 0, len(values))

	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}

			id, err := parseID(part)
			if err != nil {
				return nil, err
			}

			ids = append(ids, id)
		}
	}

	return ids, nil
}

// parseTimestamp accepts RFC3339 or unix seconds and returns unix seconds.
func parseTimestamp(value string) (string, error) {
	if _, err := strconv.ParseInt(value, 10, 64); err == nil {
		return value, nil
	}

	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidTimestamp, value)
	}

	return strconv.FormatInt(parsed.Unix(), 10), nil
}

func boolPtr(value bool) *bool {
	return &value
}
