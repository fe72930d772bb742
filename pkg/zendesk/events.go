package zendesk

import (
	"encoding/json"
	"fmt"
)

// AuditEventType is the discriminator carried in every audit event's "type" field.
type AuditEventType string

// Audit event types decoded into dedicated variants.
const (
	EventTypeComment             AuditEventType = "Comment"
	EventTypeCreate              AuditEventType = "Create"
	EventTypeChange              AuditEventType = "Change"
	EventTypeNotification        AuditEventType = "Notification"
	EventTypeNotificationWithCcs AuditEventType = "NotificationWithCcs"
	EventTypeCc                  AuditEventType = "Cc"
	EventTypeSatisfactionRating  AuditEventType = "SatisfactionRating"
)

// AuditEvent is one entry of a ticket audit. The concrete type is selected by the event
// type: *CommentEvent, *CreateEvent, *ChangeEvent, *NotificationEvent,
// *NotificationWithCcsEvent, *CcEvent, *SatisfactionRatingEvent, or *UnknownEvent for
// anything else.
type AuditEvent interface {
	EventID() int64
	EventType() AuditEventType
	auditEvent()
}

// EventBase holds the fields shared by every audit event.
type EventBase struct {
	ID   int64          `json:"id"   yaml:"id"`
	Type AuditEventType `json:"type" yaml:"type"`
}

// EventID returns the event id.
func (e EventBase) EventID() int64 { return e.ID }

// EventType returns the event discriminator.
func (e EventBase) EventType() AuditEventType { return e.Type }

func (EventBase) auditEvent() {}

// CommentEvent records a comment added to the ticket.
type CommentEvent struct {
	EventBase `yaml:",inline"`

	Body      string `json:"body"                 yaml:"body"`
	HTMLBody  string `json:"html_body,omitempty"  yaml:"html_body,omitempty"`
	PlainBody string `json:"plain_body,omitempty" yaml:"plain_body,omitempty"`
	Public    bool   `json:"public"               yaml:"public"`
	AuthorID  int64  `json:"author_id"            yaml:"author_id"`
}

// CreateEvent records the initial value of a field on ticket creation.
type CreateEvent struct {
	EventBase `yaml:",inline"`

	FieldName string      `json:"field_name" yaml:"field_name"`
	Value     interface{} `json:"value"      yaml:"value"`
}

// ChangeEvent records a field changing value.
type ChangeEvent struct {
	EventBase `yaml:",inline"`

	FieldName     string      `json:"field_name"     yaml:"field_name"`
	Value         interface{} `json:"value"          yaml:"value"`
	PreviousValue interface{} `json:"previous_value" yaml:"previous_value"`
}

// NotificationEvent records a notification sent by a trigger.
type NotificationEvent struct {
	EventBase `yaml:",inline"`

	Subject    string  `json:"subject"        yaml:"subject"`
	Body       string  `json:"body"           yaml:"body"`
	Recipients []int64 `json:"recipients"     yaml:"recipients"`
	Via        *Via    `json:"via,omitempty"  yaml:"via,omitempty"`
}

// NotificationWithCcsEvent records a notification that was also sent to the CCs.
type NotificationWithCcsEvent struct {
	EventBase `yaml:",inline"`

	Subject    string  `json:"subject"        yaml:"subject"`
	Body       string  `json:"body"           yaml:"body"`
	Recipients []int64 `json:"recipients"     yaml:"recipients"`
	Via        *Via    `json:"via,omitempty"  yaml:"via,omitempty"`
}

// CcEvent records users being copied on the ticket.
type CcEvent struct {
	EventBase `yaml:",inline"`

	Recipients []int64 `json:"recipients"    yaml:"recipients"`
	Via        *Via    `json:"via,omitempty" yaml:"via,omitempty"`
}

// SatisfactionRatingEvent records a satisfaction rating being given or changed.
type SatisfactionRatingEvent struct {
	EventBase `yaml:",inline"`

	Score      string `json:"score"       yaml:"score"`
	AssigneeID int64  `json:"assignee_id" yaml:"assignee_id"`
	Body       string `json:"body"        yaml:"body"`
}

// UnknownEvent keeps events of types this package does not model. Raw holds the
// original JSON object.
type UnknownEvent struct {
	EventBase `yaml:",inline"`

	Raw json.RawMessage `json:"-" yaml:"-"`
}

// MarshalJSON writes the event back as it was received.
func (e UnknownEvent) MarshalJSON() ([]byte, error) {
	if len(e.Raw) > 0 {
		return e.Raw, nil
	}

	return json.Marshal(e.EventBase)
}

// AuditEvents decodes a JSON array of heterogeneous audit events.
type AuditEvents []AuditEvent

// UnmarshalJSON decodes each element into the variant named by its type.
func (e *AuditEvents) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage

	err := json.Unmarshal(data, &raws)
	if err != nil {
		return fmt.Errorf("decoding audit events: %w", err)
	}

	events := make(AuditEvents, 0, len(raws))

	for i, raw := range raws {
		event, err := DecodeAuditEvent(raw)
		if err != nil {
			return fmt.Errorf("decoding audit event %d: %w", i, err)
		}

		events = append(events, event)
	}

	*e = events

	return nil
}

// DecodeAuditEvent decodes a single audit event object.
func DecodeAuditEvent(data []byte) (AuditEvent, error) {
	var base EventBase

	err := json.Unmarshal(data, &base)
	if err != nil {
		return nil, fmt.Errorf("reading event type: %w", err)
	}

	switch base.Type {
	case EventTypeComment:
		return decodeEvent[CommentEvent](data)
	case EventTypeCreate:
		return decodeEvent[CreateEvent](data)
	case EventTypeChange:
		return decodeEvent[ChangeEvent](data)
	case EventTypeNotification:
		return decodeEvent[NotificationEvent](data)
	case EventTypeNotificationWithCcs:
		return decodeEvent[NotificationWithCcsEvent](data)
	case EventTypeCc:
		return decodeEvent[CcEvent](data)
	case EventTypeSatisfactionRating:
		return decodeEvent[SatisfactionRatingEvent](data)
	default:
		raw := make(json.RawMessage, len(data))
		copy(raw, data)

		return &UnknownEvent{EventBase: base, Raw: raw}, nil
	}
}

func decodeEvent[T any, P interface {
	*T
	AuditEvent
}](data []byte) (AuditEvent, error) {
	var event T

	err := json.Unmarshal(data, &event)
	if err != nil {
		return nil, err
	}

	return P(&event), nil
}
