package fakedesk

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/fivetwenty-io/zendesk-client/internal/constants"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

var errMissingRoot = errors.New("missing root object")

func (s *Server) listTickets(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets := make([]zendesk.Ticket, 0, len(s.tickets))
	for _, id := range sortedKeys(s.tickets) {
		tickets = append(tickets, *s.tickets[id])
	}

	items, page := paginate(s, r, tickets)
	writeJSON(w, http.StatusOK, zendesk.TicketList{Page: page, Tickets: items})
}

func (s *Server) createTicket(w http.ResponseWriter, r *http.Request) {
	var request zendesk.TicketCreateRequest

	err := decodeBody(r, "ticket", &request)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidJSON", err.Error())

		return
	}

	if request.Comment == nil || request.Comment.Body == "" {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":       "RecordInvalid",
			"description": "Record validation errors",
			"details": map[string][]zendesk.ErrorDetail{
				"base": {{Error: "BlankValue", Description: "Description: cannot be blank"}},
			},
		})

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.allocateID()
	now := s.now()

	status := request.Status
	if status == "" {
		status = "new"
	}

	ticket := &zendesk.Ticket{
		ID:             id,
		URL:            s.entityURL("tickets", id),
		Subject:        request.Subject,
		Description:    request.Comment.Body,
		Status:         status,
		Priority:       request.Priority,
		Type:           request.Type,
		RequesterID:    request.RequesterID,
		AssigneeID:     request.AssigneeID,
		GroupID:        request.GroupID,
		OrganizationID: request.OrganizationID,
		Tags:           request.Tags,
		CreatedAt:      &now,
		UpdatedAt:      &now,
	}

	s.tickets[id] = ticket
	s.audits[id] = append(s.audits[id], zendesk.TicketAudit{
		ID:        s.allocateID(),
		TicketID:  id,
		AuthorID:  request.RequesterID,
		CreatedAt: &now,
		Via:       &zendesk.Via{Channel: "api"},
		Events: zendesk.AuditEvents{
			&zendesk.CommentEvent{
				EventBase: zendesk.EventBase{ID: s.allocateID(), Type: zendesk.EventTypeComment},
				Body:      request.Comment.Body,
				Public:    true,
				AuthorID:  request.RequesterID,
			},
			&zendesk.CreateEvent{
				EventBase: zendesk.EventBase{ID: s.allocateID(), Type: zendesk.EventTypeCreate},
				FieldName: "status",
				Value:     status,
			},
		},
	})

	writeJSON(w, http.StatusCreated, map[string]*zendesk.Ticket{"ticket": ticket})
}

func (s *Server) getTicket(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticket, ok := s.tickets[pathID(r, "id")]
	if !ok {
		writeNotFound(w)

		return
	}

	writeJSON(w, http.StatusOK, map[string]*zendesk.Ticket{"ticket": ticket})
}

func (s *Server) updateTicket(w http.ResponseWriter, r *http.Request) {
	var request zendesk.TicketUpdateRequest

	err := decodeBody(r, "ticket", &request)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidJSON", err.Error())

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := pathID(r, "id")

	ticket, ok := s.tickets[id]
	if !ok {
		writeNotFound(w)

		return
	}

	var events zendesk.AuditEvents

	change := func(field, previous, value string) {
		events = append(events, &zendesk.ChangeEvent{
			EventBase:     zendesk.EventBase{ID: s.allocateID(), Type: zendesk.EventTypeChange},
			FieldName:     field,
			Value:         value,
			PreviousValue: previous,
		})
	}

	if request.Subject != "" && request.Subject != ticket.Subject {
		change("subject", ticket.Subject, request.Subject)
		ticket.Subject = request.Subject
	}

	if request.Status != "" && request.Status != ticket.Status {
		change("status", ticket.Status, request.Status)
		ticket.Status = request.Status
	}

	if request.Priority != "" && request.Priority != ticket.Priority {
		change("priority", ticket.Priority, request.Priority)
		ticket.Priority = request.Priority
	}

	if request.Type != "" {
		ticket.Type = request.Type
	}

	if request.AssigneeID != 0 {
		change("assignee_id", strconv.FormatInt(ticket.AssigneeID, 10), strconv.FormatInt(request.AssigneeID, 10))
		ticket.AssigneeID = request.AssigneeID
	}

	if request.GroupID != 0 {
		change("group_id", strconv.FormatInt(ticket.GroupID, 10), strconv.FormatInt(request.GroupID, 10))
		ticket.GroupID = request.GroupID
	}

	if request.Tags != nil {
		ticket.Tags = request.Tags
	}

	if request.Comment != nil && request.Comment.Body != "" {
		public := request.Comment.Public == nil || *request.Comment.Public
		events = append(events, &zendesk.CommentEvent{
			EventBase: zendesk.EventBase{ID: s.allocateID(), Type: zendesk.EventTypeComment},
			Body:      request.Comment.Body,
			Public:    public,
			AuthorID:  request.Comment.AuthorID,
		})
	}

	now := s.now()
	ticket.UpdatedAt = &now

	if len(events) > 0 {
		s.audits[id] = append(s.audits[id], zendesk.TicketAudit{
			ID:        s.allocateID(),
			TicketID:  id,
			CreatedAt: &now,
			Via:       &zendesk.Via{Channel: "api"},
			Events:    events,
		})
	}

	writeJSON(w, http.StatusOK, map[string]*zendesk.Ticket{"ticket": ticket})
}

func (s *Server) deleteTicket(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := pathID(r, "id")

	ticket, ok := s.tickets[id]
	if !ok {
		writeNotFound(w)

		return
	}

	now := s.now()
	ticket.PreviousState = ticket.Status
	ticket.Status = "deleted"
	ticket.DeletedAt = &now

	delete(s.tickets, id)
	s.deleted[id] = ticket

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listDeletedTickets(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tickets := make([]zendesk.Ticket, 0, len(s.deleted))
	for _, id := range sortedKeys(s.deleted) {
		tickets = append(tickets, *s.deleted[id])
	}

	sortTickets(tickets, r.URL.Query().Get("sort_by"), r.URL.Query().Get("sort_order"))

	items, page := paginate(s, r, tickets)
	writeJSON(w, http.StatusOK, zendesk.DeletedTicketList{Page: page, DeletedTickets: items})
}

func sortTickets(tickets []zendesk.Ticket, field, order string) {
	var less func(a, b zendesk.Ticket) bool

	switch field {
	case "subject":
		less = func(a, b zendesk.Ticket) bool { return a.Subject < b.Subject }
	case "deleted_at":
		less = func(a, b zendesk.Ticket) bool {
			if a.DeletedAt == nil || b.DeletedAt == nil {
				return a.ID < b.ID
			}

			return a.DeletedAt.Before(*b.DeletedAt)
		}
	default:
		less = func(a, b zendesk.Ticket) bool { return a.ID < b.ID }
	}

	descending := order == zendesk.SortDescending

	sort.SliceStable(tickets, func(i, j int) bool {
		if descending {
			return less(tickets[j], tickets[i])
		}

		return less(tickets[i], tickets[j])
	})
}

func (s *Server) restoreTicket(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := pathID(r, "id")

	if !s.restoreLocked(id) {
		writeNotFound(w)

		return
	}

	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) restoreMany(w http.ResponseWriter, r *http.Request) {
	ids, ok := parseIDs(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		s.restoreLocked(id)
	}

	writeJSON(w, http.StatusOK, nil)
}

func (s *Server) restoreLocked(id int64) bool {
	ticket, ok := s.deleted[id]
	if !ok {
		return false
	}

	ticket.Status = ticket.PreviousState
	if ticket.Status == "" {
		ticket.Status = "open"
	}

	ticket.PreviousState = ""
	ticket.DeletedAt = nil

	delete(s.deleted, id)
	s.tickets[id] = ticket

	return true
}

func (s *Server) purgeTicket(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := pathID(r, "id")

	if _, ok := s.deleted[id]; !ok {
		writeNotFound(w)

		return
	}

	writeJSON(w, http.StatusOK, map[string]*zendesk.JobStatus{"job_status": s.purgeLocked([]int64{id})})
}

func (s *Server) purgeMany(w http.ResponseWriter, r *http.Request) {
	ids, ok := parseIDs(w, r)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]*zendesk.JobStatus{"job_status": s.purgeLocked(ids)})
}

// purgeLocked removes the tickets at once and records a completed job for them.
func (s *Server) purgeLocked(ids []int64) *zendesk.JobStatus {
	results := make([]zendesk.JobResult, 0, len(ids))

	for _, id := range ids {
		_, found := s.deleted[id]
		delete(s.deleted, id)
		delete(s.audits, id)

		result := zendesk.JobResult{ID: id, Action: "purge", Success: found, Status: "Purged"}
		if !found {
			result.Status = "Failed"
			result.Error = "TicketNotFound"
		}

		results = append(results, result)
	}

	total := len(ids)
	jobID := uuid.NewString()

	job := &zendesk.JobStatus{
		ID:       jobID,
		URL:      s.server.URL + "/" + constants.APIBasePath + "/job_statuses/" + jobID + ".json",
		Status:   zendesk.JobStatusQueued,
		Total:    &total,
		Progress: new(int),
	}

	done := *job
	done.Status = zendesk.JobStatusCompleted
	done.Progress = &total
	done.Results = results
	s.jobs[jobID] = &done

	return job
}

func parseIDs(w http.ResponseWriter, r *http.Request) ([]int64, bool) {
	raw := r.URL.Query().Get("ids")
	if raw == "" {
		writeError(w, http.StatusBadRequest, "InvalidValue", "ids is required")

		return nil, false
	}

	parts := strings.Split(raw, ",")
	if len(parts) > constants.MaxBulkIDs {
		writeError(w, http.StatusBadRequest, "TooManyValues", "at most 100 ids are allowed")

		return nil, false
	}

	ids := make([]int64, 0, len(parts))

	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "InvalidValue", "ids must be numeric")

			return nil, false
		}

		ids = append(ids, id)
	}

	return ids, true
}
