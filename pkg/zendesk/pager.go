package zendesk

import (
	"net/url"
	"strconv"
	"strings"
)

// Sort directions accepted by sort_order.
const (
	SortAscending  = "asc"
	SortDescending = "desc"
)

// Pager holds the pagination and filter parameters of a list call. Every field is
// forwarded as a query parameter exactly as given; cursor values are not interpreted.
type Pager struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string

	// Cursor pagination, sent as page[size], page[after] and page[before].
	PageSize     int
	AfterCursor  string
	BeforeCursor string

	Include []string
	Filters map[string][]string
}

// NewPager creates an empty pager.
func NewPager() *Pager {
	return &Pager{
		Filters: make(map[string][]string),
	}
}

// ToValues converts the pager into query parameters.
func (p *Pager) ToValues() url.Values {
	values := url.Values{}

	if p == nil {
		return values
	}

	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}

	if p.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(p.PerPage))
	}

	if p.SortBy != "" {
		values.Set("sort_by", p.SortBy)
	}

	if p.SortOrder != "" {
		values.Set("sort_order", p.SortOrder)
	}

	if p.PageSize > 0 {
		values.Set("page[size]", strconv.Itoa(p.PageSize))
	}

	if p.AfterCursor != "" {
		values.Set("page[after]", p.AfterCursor)
	}

	if p.BeforeCursor != "" {
		values.Set("page[before]", p.BeforeCursor)
	}

	if len(p.Include) > 0 {
		values.Set("include", strings.Join(p.Include, ","))
	}

	for key, vals := range p.Filters {
		if len(vals) > 0 {
			values.Set(key, strings.Join(vals, ","))
		}
	}

	return values
}

// WithPage sets the page number.
func (p *Pager) WithPage(page int) *Pager {
	p.Page = page

	return p
}

// WithPerPage sets the number of results per page.
func (p *Pager) WithPerPage(perPage int) *Pager {
	p.PerPage = perPage

	return p
}

// WithSort sets the sort field and direction.
func (p *Pager) WithSort(field, order string) *Pager {
	p.SortBy = field
	p.SortOrder = order

	return p
}

// WithCursor sets the cursor page size and the after cursor.
func (p *Pager) WithCursor(size int, after string) *Pager {
	p.PageSize = size
	p.AfterCursor = after

	return p
}

// WithInclude appends sideloads.
func (p *Pager) WithInclude(include ...string) *Pager {
	p.Include = append(p.Include, include...)

	return p
}

// WithFilter appends values to a filter.
func (p *Pager) WithFilter(key string, values ...string) *Pager {
	if p.Filters == nil {
		p.Filters = make(map[string][]string)
	}

	p.Filters[key] = append(p.Filters[key], values...)

	return p
}

// clone returns a copy that can be advanced without touching the caller's pager.
func (p *Pager) clone() *Pager {
	if p == nil {
		return NewPager()
	}

	cloned := *p
	cloned.Include = append([]string(nil), p.Include...)
	cloned.Filters = make(map[string][]string, len(p.Filters))

	for key, values := range p.Filters {
		cloned.Filters[key] = append([]string(nil), values...)
	}

	return &cloned
}
