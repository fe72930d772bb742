package zendesk

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/zendesk-client/internal/constants"
)

// ListFunc fetches one page of a collection.
type ListFunc[T any] func(ctx context.Context, pager *Pager) (PagedList[T], error)

// Lister adapts a resource client's List method into a ListFunc, for example
// zendesk.Lister[zendesk.Group](client.Groups().List).
func Lister[T any, L PagedList[T]](list func(ctx context.Context, pager *Pager) (L, error)) ListFunc[T] {
	return func(ctx context.Context, pager *Pager) (PagedList[T], error) {
		page, err := list(ctx, pager)
		if err != nil {
			return nil, err
		}

		return page, nil
	}
}

// PaginationOptions bounds a multi-page fetch.
type PaginationOptions struct {
	PageSize int
	MaxPages int
}

// DefaultPaginationOptions returns the options used when none are given.
func DefaultPaginationOptions() *PaginationOptions {
	return &PaginationOptions{
		PageSize: constants.MaxPageSize,
	}
}

// PaginationIterator walks a collection item by item, fetching one page per call to
// the underlying ListFunc. Pages are advanced by page number while next_page is set.
type PaginationIterator[T any] struct {
	ctx     context.Context
	fetch   ListFunc[T]
	pager   *Pager
	items   []T
	index   int
	fetched bool
	more    bool
	err     error
}

// NewPaginationIterator creates an iterator starting at the pager's page (or page 1).
func NewPaginationIterator[T any](ctx context.Context, fetch ListFunc[T], pager *Pager) *PaginationIterator[T] {
	start := pager.clone()
	if start.Page == 0 {
		start.Page = 1
	}

	return &PaginationIterator[T]{
		ctx:   ctx,
		fetch: fetch,
		pager: start,
		more:  true,
	}
}

// HasNext reports whether Next will return another item.
func (it *PaginationIterator[T]) HasNext() bool {
	if it.err != nil {
		return false
	}

	if it.index < len(it.items) {
		return true
	}

	for it.more {
		err := it.fetchPage()
		if err != nil {
			it.err = err

			return false
		}

		if len(it.items) > 0 {
			return true
		}
	}

	return false
}

// Next returns the next item.
func (it *PaginationIterator[T]) Next() (T, error) {
	var zero T

	if !it.HasNext() {
		if it.err != nil {
			return zero, it.err
		}

		return zero, ErrNoMoreItems
	}

	item := it.items[it.index]
	it.index++

	return item, nil
}

// Err returns the error that stopped the iteration, if any.
func (it *PaginationIterator[T]) Err() error {
	return it.err
}

// All drains the iterator.
func (it *PaginationIterator[T]) All() ([]T, error) {
	var all []T

	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return nil, err
		}

		all = append(all, item)
	}

	if it.err != nil {
		return nil, it.err
	}

	return all, nil
}

// ForEach calls fn for every item until fn returns an error.
func (it *PaginationIterator[T]) ForEach(fn func(T) error) error {
	for it.HasNext() {
		item, err := it.Next()
		if err != nil {
			return err
		}

		err = fn(item)
		if err != nil {
			return err
		}
	}

	return it.err
}

func (it *PaginationIterator[T]) fetchPage() error {
	if it.fetched {
		it.pager.Page++
	}

	page, err := it.fetch(it.ctx, it.pager)
	if err != nil {
		return fmt.Errorf("fetching page %d: %w", it.pager.Page, err)
	}

	it.fetched = true
	it.items = page.Items()
	it.index = 0
	it.more = page.HasNext()

	return nil
}

// FetchAllPages collects every item of a collection, stopping after opts.MaxPages
// pages when set.
func FetchAllPages[T any](ctx context.Context, fetch ListFunc[T], pager *Pager, opts *PaginationOptions) ([]T, error) {
	if opts == nil {
		opts = DefaultPaginationOptions()
	}

	current := pager.clone()
	if current.Page == 0 {
		current.Page = 1
	}

	if current.PerPage == 0 && opts.PageSize > 0 {
		current.PerPage = opts.PageSize
	}

	var all []T

	for pages := 1; ; pages++ {
		page, err := fetch(ctx, current)
		if err != nil {
			return nil, fmt.Errorf("fetching page %d: %w", current.Page, err)
		}

		all = append(all, page.Items()...)

		if !page.HasNext() || (opts.MaxPages > 0 && pages >= opts.MaxPages) {
			return all, nil
		}

		current.Page++
	}
}

// PageResult is one page delivered by StreamPages.
type PageResult[T any] struct {
	Items []T
	Page  int
	Err   error
}

// StreamPages fetches pages in a goroutine and delivers them on the returned channel,
// which is closed after the last page, the first error, or context cancellation.
func StreamPages[T any](ctx context.Context, fetch ListFunc[T], pager *Pager, opts *PaginationOptions) <-chan PageResult[T] {
	if opts == nil {
		opts = DefaultPaginationOptions()
	}

	results := make(chan PageResult[T], constants.SmallBufferSize)

	go func() {
		defer close(results)

		current := pager.clone()
		if current.Page == 0 {
			current.Page = 1
		}

		if current.PerPage == 0 && opts.PageSize > 0 {
			current.PerPage = opts.PageSize
		}

		for pages := 1; ; pages++ {
			page, err := fetch(ctx, current)
			if err != nil {
				select {
				case results <- PageResult[T]{Page: current.Page, Err: err}:
				case <-ctx.Done():
				}

				return
			}

			select {
			case results <- PageResult[T]{Items: page.Items(), Page: current.Page}:
			case <-ctx.Done():
				return
			}

			if !page.HasNext() || (opts.MaxPages > 0 && pages >= opts.MaxPages) {
				return
			}

			current.Page++
		}
	}()

	return results
}
