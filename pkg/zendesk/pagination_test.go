package zendesk_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

var errPageFailed = errors.New("page failed")

// pagedGroups serves groups from memory the way the list endpoints do.
type pagedGroups struct {
	groups  []zendesk.Group
	calls   []*zendesk.Pager
	failAt  int
	perPage int
}

func newPagedGroups(count, perPage int) *pagedGroups {
	groups := make([]zendesk.Group, count)
	for i := range groups {
		groups[i] = zendesk.Group{ID: int64(i + 1)}
	}

	return &pagedGroups{groups: groups, perPage: perPage}
}

func (p *pagedGroups) List(_ context.Context, pager *zendesk.Pager) (*zendesk.GroupList, error) {
	copied := *pager
	p.calls = append(p.calls, &copied)

	if p.failAt > 0 && pager.Page == p.failAt {
		return nil, errPageFailed
	}

	start := min((pager.Page-1)*p.perPage, len(p.groups))
	end := min(start+p.perPage, len(p.groups))

	list := &zendesk.GroupList{Groups: p.groups[start:end]}
	list.Count = len(p.groups)

	if end < len(p.groups) {
		next := "next"
		list.NextPage = &next
	}

	return list, nil
}

func groupIDs(groups []zendesk.Group) []int64 {
	ids := make([]int64, 0, len(groups))
	for _, group := range groups {
		ids = append(ids, group.ID)
	}

	return ids
}

func TestPaginationIterator(t *testing.T) {
	t.Parallel()

	source := newPagedGroups(5, 2)
	iterator := zendesk.NewPaginationIterator(context.Background(), zendesk.Lister[zendesk.Group](source.List), nil)

	var ids []int64

	for iterator.HasNext() {
		group, err := iterator.Next()
		require.NoError(t, err)

		ids = append(ids, group.ID)
	}

	require.NoError(t, iterator.Err())
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids)
	assert.Len(t, source.calls, 3)

	_, err := iterator.Next()
	require.ErrorIs(t, err, zendesk.ErrNoMoreItems)
}

func TestPaginationIterator_KeepsCallerPager(t *testing.T) {
	t.Parallel()

	source := newPagedGroups(4, 2)
	pager := zendesk.NewPager().WithSort("name", zendesk.SortAscending)

	all, err := zendesk.NewPaginationIterator(context.Background(), zendesk.Lister[zendesk.Group](source.List), pager).All()
	require.NoError(t, err)
	assert.Len(t, all, 4)

	assert.Zero(t, pager.Page)
	assert.Equal(t, "name", source.calls[1].SortBy)
	assert.Equal(t, 2, source.calls[1].Page)
}

func TestPaginationIterator_Error(t *testing.T) {
	t.Parallel()

	source := newPagedGroups(5, 2)
	source.failAt = 2

	iterator := zendesk.NewPaginationIterator(context.Background(), zendesk.Lister[zendesk.Group](source.List), nil)

	all, err := iterator.All()
	require.ErrorIs(t, err, errPageFailed)
	assert.Nil(t, all)
	assert.ErrorIs(t, iterator.Err(), errPageFailed)
}

func TestPaginationIterator_ForEach(t *testing.T) {
	t.Parallel()

	source := newPagedGroups(5, 2)
	iterator := zendesk.NewPaginationIterator(context.Background(), zendesk.Lister[zendesk.Group](source.List), nil)

	var seen int

	err := iterator.ForEach(func(group zendesk.Group) error {
		seen++
		if group.ID == 3 {
			return errPageFailed
		}

		return nil
	})
	require.ErrorIs(t, err, errPageFailed)
	assert.Equal(t, 3, seen)
}

func TestFetchAllPages(t *testing.T) {
	t.Parallel()

	t.Run("all pages", func(t *testing.T) {
		t.Parallel()

		source := newPagedGroups(7, 3)

		groups, err := zendesk.FetchAllPages(context.Background(), zendesk.Lister[zendesk.Group](source.List), nil,
			&zendesk.PaginationOptions{PageSize: 3})
		require.NoError(t, err)
		assert.Equal(t, []int64{1, 2, 3, 4, 5, 6, 7}, groupIDs(groups))
		assert.Equal(t, 3, source.calls[0].PerPage)
	})

	t.Run("max pages", func(t *testing.T) {
		t.Parallel()

		source := newPagedGroups(7, 3)

		groups, err := zendesk.FetchAllPages(context.Background(), zendesk.Lister[zendesk.Group](source.List), nil,
			&zendesk.PaginationOptions{PageSize: 3, MaxPages: 2})
		require.NoError(t, err)
		assert.Len(t, groups, 6)
		assert.Len(t, source.calls, 2)
	})

	t.Run("default options", func(t *testing.T) {
		t.Parallel()

		source := newPagedGroups(2, 100)

		groups, err := zendesk.FetchAllPages(context.Background(), zendesk.Lister[zendesk.Group](source.List), nil, nil)
		require.NoError(t, err)
		assert.Len(t, groups, 2)
		assert.Equal(t, 100, source.calls[0].PerPage)
	})
}

func TestStreamPages(t *testing.T) {
	t.Parallel()

	source := newPagedGroups(5, 2)

	var pages []int

	var ids []int64

	for result := range zendesk.StreamPages(context.Background(), zendesk.Lister[zendesk.Group](source.List), nil, nil) {
		require.NoError(t, result.Err)

		pages = append(pages, result.Page)
		ids = append(ids, groupIDs(result.Items)...)
	}

	assert.Equal(t, []int{1, 2, 3}, pages)
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, ids)
}

func TestStreamPages_Error(t *testing.T) {
	t.Parallel()

	source := newPagedGroups(5, 2)
	source.failAt = 2

	var results []zendesk.PageResult[zendesk.Group]
	for result := range zendesk.StreamPages(context.Background(), zendesk.Lister[zendesk.Group](source.List), nil, nil) {
		results = append(results, result)
	}

	require.Len(t, results, 2)
	require.NoError(t, results[0].Err)
	require.ErrorIs(t, results[1].Err, errPageFailed)
	assert.Equal(t, 2, results[1].Page)
}
