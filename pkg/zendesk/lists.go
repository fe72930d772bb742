package zendesk

// Page carries the pagination metadata returned with every collection.
type Page struct {
	NextPage     *string      `json:"next_page,omitempty"     yaml:"next_page,omitempty"`
	PreviousPage *string      `json:"previous_page,omitempty" yaml:"previous_page,omitempty"`
	Count        int          `json:"count,omitempty"         yaml:"count,omitempty"`
	Meta         *CursorMeta  `json:"meta,omitempty"          yaml:"meta,omitempty"`
	Links        *CursorLinks `json:"links,omitempty"         yaml:"links,omitempty"`
}

// CursorMeta is returned by endpoints that use cursor pagination.
type CursorMeta struct {
	HasMore      bool   `json:"has_more"      yaml:"has_more"`
	AfterCursor  string `json:"after_cursor"  yaml:"after_cursor"`
	BeforeCursor string `json:"before_cursor" yaml:"before_cursor"`
}

// CursorLinks are the ready-made links of a cursor paginated response.
type CursorLinks struct {
	Next string `json:"next" yaml:"next"`
	Prev string `json:"prev" yaml:"prev"`
}

func (p Page) hasNext() bool {
	return p.NextPage != nil && *p.NextPage != ""
}

// PagedList is implemented by every collection envelope.
type PagedList[T any] interface {
	Items() []T
	HasNext() bool
}

// TicketList is a page of tickets.
type TicketList struct {
	Page `yaml:",inline"`

	Tickets []Ticket `json:"tickets" yaml:"tickets"`
}

// Items returns the tickets of the page.
func (l *TicketList) Items() []Ticket {
	if l == nil {
		return nil
	}

	return l.Tickets
}

// HasNext reports whether another page follows.
func (l *TicketList) HasNext() bool { return l != nil && l.hasNext() }

// DeletedTicketList is a page of soft-deleted tickets.
type DeletedTicketList struct {
	Page `yaml:",inline"`

	DeletedTickets []Ticket `json:"deleted_tickets" yaml:"deleted_tickets"`
}

// Items returns the deleted tickets of the page.
func (l *DeletedTicketList) Items() []Ticket {
	if l == nil {
		return nil
	}

	return l.DeletedTickets
}

// HasNext reports whether another page follows.
func (l *DeletedTicketList) HasNext() bool { return l != nil && l.hasNext() }

// GroupList is a page of groups.
type GroupList struct {
	Page `yaml:",inline"`

	Groups []Group `json:"groups" yaml:"groups"`
}

// Items returns the groups of the page.
func (l *GroupList) Items() []Group {
	if l == nil {
		return nil
	}

	return l.Groups
}

// HasNext reports whether another page follows.
func (l *GroupList) HasNext() bool { return l != nil && l.hasNext() }

// SatisfactionRatingList is a page of satisfaction ratings.
type SatisfactionRatingList struct {
	Page `yaml:",inline"`

	SatisfactionRatings []SatisfactionRating `json:"satisfaction_ratings" yaml:"satisfaction_ratings"`
}

// Items returns the ratings of the page.
func (l *SatisfactionRatingList) Items() []SatisfactionRating {
	if l == nil {
		return nil
	}

	return l.SatisfactionRatings
}

// HasNext reports whether another page follows.
func (l *SatisfactionRatingList) HasNext() bool { return l != nil && l.hasNext() }

// OrganizationMembershipList is a page of organization memberships.
type OrganizationMembershipList struct {
	Page `yaml:",inline"`

	OrganizationMemberships []OrganizationMembership `json:"organization_memberships" yaml:"organization_memberships"`
}

// Items returns the memberships of the page.
func (l *OrganizationMembershipList) Items() []OrganizationMembership {
	if l == nil {
		return nil
	}

	return l.OrganizationMemberships
}

// HasNext reports whether another page follows.
func (l *OrganizationMembershipList) HasNext() bool { return l != nil && l.hasNext() }

// TicketAuditList is a page of ticket audits.
type TicketAuditList struct {
	Page `yaml:",inline"`

	Audits []TicketAudit `json:"audits" yaml:"audits"`
}

// Items returns the audits of the page.
func (l *TicketAuditList) Items() []TicketAudit {
	if l == nil {
		return nil
	}

	return l.Audits
}

// HasNext reports whether another page follows.
func (l *TicketAuditList) HasNext() bool { return l != nil && l.hasNext() }
