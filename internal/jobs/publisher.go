// Package jobs announces asynchronous helpdesk jobs, such as ticket purges, on NATS so
// that other processes can follow them up.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/fivetwenty-io/zendesk-client/internal/constants"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

// DefaultSubject is used when no subject is configured.
const DefaultSubject = "zendesk.jobs.purge"

// Static errors for err113 compliance.
var (
	ErrJobRequired     = errors.New("job status is required")
	ErrSubjectRequired = errors.New("subject is required")
)

// Event is the message published for a job.
type Event struct {
	JobID       string    `json:"job_id"`
	Status      string    `json:"status"`
	URL         string    `json:"url,omitempty"`
	Action      string    `json:"action"`
	TicketIDs   []int64   `json:"ticket_ids"`
	PublishedAt time.Time `json:"published_at"`
}

// conn is the part of *nats.Conn the publisher needs.
type conn interface {
	PublishMsg(msg *nats.Msg) error
	FlushWithContext(ctx context.Context) error
	Close()
}

// Publisher publishes job events on a single subject.
type Publisher struct {
	conn    conn
	subject string
	logger  zendesk.Logger
	now     func() time.Time
}

// Connect dials the NATS server at url and returns a publisher for subject. An empty
// subject falls back to DefaultSubject.
func Connect(url, subject string, logger zendesk.Logger, opts ...nats.Option) (*Publisher, error) {
	opts = append([]nats.Option{nats.Name("zdesk")}, opts...)

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}

	if subject == "" {
		subject = DefaultSubject
	}

	return newPublisher(nc, subject, logger)
}

func newPublisher(c conn, subject string, logger zendesk.Logger) (*Publisher, error) {
	if subject == "" {
		return nil, ErrSubjectRequired
	}

	if logger == nil {
		logger = zendesk.NopLogger{}
	}

	return &Publisher{
		conn:    c,
		subject: subject,
		logger:  logger,
		now:     time.Now,
	}, nil
}

// Subject returns the subject events are published on.
func (p *Publisher) Subject() string {
	return p.subject
}

// PublishJobStatus announces job for the given tickets and waits until the server has
// received it. The job id is sent as the Nats-Msg-Id header so that JetStream streams
// drop duplicates. A ctx without a deadline is bounded by constants.PublishTimeout.
func (p *Publisher) PublishJobStatus(ctx context.Context, action string, job *zendesk.JobStatus, ticketIDs []int64) error {
	if job == nil {
		return ErrJobRequired
	}

	event := Event{
		JobID:       job.ID,
		Status:      job.Status,
		URL:         job.URL,
		Action:      action,
		TicketIDs:   ticketIDs,
		PublishedAt: p.now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding job event: %w", err)
	}

	msg := nats.NewMsg(p.subject)
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, job.ID)
	msg.Header.Set("Content-Type", "application/json")

	err = p.conn.PublishMsg(msg)
	if err != nil {
		return fmt.Errorf("publishing job %s: %w", job.ID, err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, constants.PublishTimeout)
		defer cancel()
	}

	err = p.conn.FlushWithContext(ctx)
	if err != nil {
		return fmt.Errorf("flushing job %s: %w", job.ID, err)
	}

	p.logger.Info("job published", map[string]interface{}{
		"job_id":  job.ID,
		"subject": p.subject,
		"tickets": len(ticketIDs),
	})

	return nil
}

// Close closes the NATS connection.
func (p *Publisher) Close() {
	p.conn.Close()
}
