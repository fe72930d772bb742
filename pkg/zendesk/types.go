package zendesk

import (
	"encoding/json"
	"fmt"
	"time"
)

// Ticket represents a support ticket.
type Ticket struct {
	ID             int64      `json:"id,omitempty"              yaml:"id,omitempty"`
	URL            string     `json:"url,omitempty"             yaml:"url,omitempty"`
	Subject        string     `json:"subject,omitempty"         yaml:"subject,omitempty"`
	Description    string     `json:"description,omitempty"     yaml:"description,omitempty"`
	Status         string     `json:"status,omitempty"          yaml:"status,omitempty"`
	Priority       string     `json:"priority,omitempty"        yaml:"priority,omitempty"`
	Type           string     `json:"type,omitempty"            yaml:"type,omitempty"`
	RequesterID    int64      `json:"requester_id,omitempty"    yaml:"requester_id,omitempty"`
	AssigneeID     int64      `json:"assignee_id,omitempty"     yaml:"assignee_id,omitempty"`
	GroupID        int64      `json:"group_id,omitempty"        yaml:"group_id,omitempty"`
	OrganizationID int64      `json:"organization_id,omitempty" yaml:"organization_id,omitempty"`
	Tags           []string   `json:"tags,omitempty"            yaml:"tags,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"      yaml:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"      yaml:"updated_at,omitempty"`

	// Set on entries of the deleted tickets collection only.
	DeletedAt     *time.Time `json:"deleted_at,omitempty"     yaml:"deleted_at,omitempty"`
	PreviousState string     `json:"previous_state,omitempty" yaml:"previous_state,omitempty"`
}

// TicketComment is the comment that opens or updates a ticket.
type TicketComment struct {
	Body     string `json:"body,omitempty"      yaml:"body,omitempty"`
	HTMLBody string `json:"html_body,omitempty" yaml:"html_body,omitempty"`
	Public   *bool  `json:"public,omitempty"    yaml:"public,omitempty"`
	AuthorID int64  `json:"author_id,omitempty" yaml:"author_id,omitempty"`
}

// TicketCreateRequest is the payload for creating a ticket.
type TicketCreateRequest struct {
	Subject        string         `json:"subject,omitempty"         yaml:"subject,omitempty"`
	Comment        *TicketComment `json:"comment,omitempty"         yaml:"comment,omitempty"`
	Status         string         `json:"status,omitempty"          yaml:"status,omitempty"`
	Priority       string         `json:"priority,omitempty"        yaml:"priority,omitempty"`
	Type           string         `json:"type,omitempty"            yaml:"type,omitempty"`
	RequesterID    int64          `json:"requester_id,omitempty"    yaml:"requester_id,omitempty"`
	AssigneeID     int64          `json:"assignee_id,omitempty"     yaml:"assignee_id,omitempty"`
	GroupID        int64          `json:"group_id,omitempty"        yaml:"group_id,omitempty"`
	OrganizationID int64          `json:"organization_id,omitempty" yaml:"organization_id,omitempty"`
	Tags           []string       `json:"tags,omitempty"            yaml:"tags,omitempty"`
}

// TicketUpdateRequest is the payload for updating a ticket. ID selects the ticket and is
// not sent in the body.
type TicketUpdateRequest struct {
	ID         int64          `json:"-"                     yaml:"-"`
	Subject    string         `json:"subject,omitempty"     yaml:"subject,omitempty"`
	Comment    *TicketComment `json:"comment,omitempty"     yaml:"comment,omitempty"`
	Status     string         `json:"status,omitempty"      yaml:"status,omitempty"`
	Priority   string         `json:"priority,omitempty"    yaml:"priority,omitempty"`
	Type       string         `json:"type,omitempty"        yaml:"type,omitempty"`
	AssigneeID int64          `json:"assignee_id,omitempty" yaml:"assignee_id,omitempty"`
	GroupID    int64          `json:"group_id,omitempty"    yaml:"group_id,omitempty"`
	Tags       []string       `json:"tags,omitempty"        yaml:"tags,omitempty"`
}

// Group represents an agent group.
type Group struct {
	ID          int64      `json:"id,omitempty"          yaml:"id,omitempty"`
	URL         string     `json:"url,omitempty"         yaml:"url,omitempty"`
	Name        string     `json:"name"                  yaml:"name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Default     bool       `json:"default"               yaml:"default"`
	Deleted     bool       `json:"deleted"               yaml:"deleted"`
	CreatedAt   *time.Time `json:"created_at,omitempty"  yaml:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"  yaml:"updated_at,omitempty"`
}

// GroupCreateRequest is the payload for creating a group.
type GroupCreateRequest struct {
	Name        string `json:"name"                  yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// GroupUpdateRequest is the payload for updating a group.
type GroupUpdateRequest struct {
	ID          int64  `json:"-"                     yaml:"-"`
	Name        string `json:"name,omitempty"        yaml:"name,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// SatisfactionRatingScore is the customer's verdict on a solved ticket.
type SatisfactionRatingScore string

// Known satisfaction rating scores.
const (
	ScoreOffered         SatisfactionRatingScore = "offered"
	ScoreUnoffered       SatisfactionRatingScore = "unoffered"
	ScoreGood            SatisfactionRatingScore = "good"
	ScoreBad             SatisfactionRatingScore = "bad"
	ScoreGoodWithComment SatisfactionRatingScore = "good_with_comment"
	ScoreBadWithComment  SatisfactionRatingScore = "bad_with_comment"
)

// Valid reports whether s is one of the known scores.
func (s SatisfactionRatingScore) Valid() bool {
	switch s {
	case ScoreOffered, ScoreUnoffered, ScoreGood, ScoreBad, ScoreGoodWithComment, ScoreBadWithComment:
		return true
	default:
		return false
	}
}

// UnmarshalJSON rejects scores outside the known set. null leaves s unchanged.
func (s *SatisfactionRatingScore) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var raw string

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return fmt.Errorf("decoding satisfaction rating score: %w", err)
	}

	score := SatisfactionRatingScore(raw)
	if !score.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownScore, raw)
	}

	*s = score

	return nil
}

// ParseScore converts a user supplied string into a score.
func ParseScore(value string) (SatisfactionRatingScore, error) {
	score := SatisfactionRatingScore(value)
	if !score.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownScore, value)
	}

	return score, nil
}

// SatisfactionRating represents a customer satisfaction rating on a ticket.
type SatisfactionRating struct {
	ID          int64                   `json:"id,omitempty"         yaml:"id,omitempty"`
	URL         string                  `json:"url,omitempty"        yaml:"url,omitempty"`
	GroupID     int64                   `json:"group_id"             yaml:"group_id"`
	AssigneeID  int64                   `json:"assignee_id"          yaml:"assignee_id"`
	RequesterID int64                   `json:"requester_id"         yaml:"requester_id"`
	TicketID    int64                   `json:"ticket_id"            yaml:"ticket_id"`
	Score       SatisfactionRatingScore `json:"score"                yaml:"score"`
	Comment     string                  `json:"comment,omitempty"    yaml:"comment,omitempty"`
	Reason      string                  `json:"reason,omitempty"     yaml:"reason,omitempty"`
	CreatedAt   *time.Time              `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt   *time.Time              `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// SatisfactionRatingCreateRequest is the payload for rating a ticket.
type SatisfactionRatingCreateRequest struct {
	Score   SatisfactionRatingScore `json:"score"             yaml:"score"`
	Comment string                  `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// OrganizationMembership links a user to an organization.
type OrganizationMembership struct {
	ID               int64      `json:"id,omitempty"                yaml:"id,omitempty"`
	URL              string     `json:"url,omitempty"               yaml:"url,omitempty"`
	UserID           int64      `json:"user_id"                     yaml:"user_id"`
	OrganizationID   int64      `json:"organization_id"             yaml:"organization_id"`
	OrganizationName string     `json:"organization_name,omitempty" yaml:"organization_name,omitempty"`
	Default          *bool      `json:"default,omitempty"           yaml:"default,omitempty"`
	CreatedAt        *time.Time `json:"created_at,omitempty"        yaml:"created_at,omitempty"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"        yaml:"updated_at,omitempty"`
}

// OrganizationMembershipCreateRequest is the payload for adding a user to an organization.
type OrganizationMembershipCreateRequest struct {
	UserID         int64 `json:"user_id"           yaml:"user_id"`
	OrganizationID int64 `json:"organization_id"   yaml:"organization_id"`
	Default        *bool `json:"default,omitempty" yaml:"default,omitempty"`
}

// Via describes how an audit or event reached the helpdesk.
type Via struct {
	Channel string     `json:"channel"          yaml:"channel"`
	Source  *ViaSource `json:"source,omitempty" yaml:"source,omitempty"`
}

// ViaSource holds the origin details of a Via.
type ViaSource struct {
	From map[string]interface{} `json:"from,omitempty" yaml:"from,omitempty"`
	To   map[string]interface{} `json:"to,omitempty"   yaml:"to,omitempty"`
	Rel  string                 `json:"rel,omitempty"  yaml:"rel,omitempty"`
}

// TicketAudit groups the events produced by a single ticket update.
type TicketAudit struct {
	ID        int64                  `json:"id"                   yaml:"id"`
	TicketID  int64                  `json:"ticket_id"            yaml:"ticket_id"`
	AuthorID  int64                  `json:"author_id"            yaml:"author_id"`
	CreatedAt *time.Time             `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"   yaml:"metadata,omitempty"`
	Via       *Via                   `json:"via,omitempty"        yaml:"via,omitempty"`
	Events    AuditEvents            `json:"events"               yaml:"events"`
}

// Job status values reported by the remote service.
const (
	JobStatusQueued    = "queued"
	JobStatusWorking   = "working"
	JobStatusFailed    = "failed"
	JobStatusCompleted = "completed"
	JobStatusKilled    = "killed"
)

// JobStatus is a reference to an asynchronous remote job such as a purge. The library
// returns it as received and does not poll it.
type JobStatus struct {
	ID       string      `json:"id"                 yaml:"id"`
	URL      string      `json:"url,omitempty"      yaml:"url,omitempty"`
	Status   string      `json:"status"             yaml:"status"`
	Total    *int        `json:"total,omitempty"    yaml:"total,omitempty"`
	Progress *int        `json:"progress,omitempty" yaml:"progress,omitempty"`
	Message  string      `json:"message,omitempty"  yaml:"message,omitempty"`
	Results  []JobResult `json:"results,omitempty"  yaml:"results,omitempty"`
}

// JobResult is one per-item outcome of a job.
type JobResult struct {
	ID      int64  `json:"id"                yaml:"id"`
	Action  string `json:"action,omitempty"  yaml:"action,omitempty"`
	Success bool   `json:"success"           yaml:"success"`
	Status  string `json:"status,omitempty"  yaml:"status,omitempty"`
	Error   string `json:"error,omitempty"   yaml:"error,omitempty"`
	Details string `json:"details,omitempty" yaml:"details,omitempty"`
}
