// Package fakedesk is an in-memory helpdesk API used to exercise the client end to end.
package fakedesk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/fivetwenty-io/zendesk-client/internal/constants"
	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

const firstGeneratedID = 1000

// RecordedRequest is one call received by the server.
type RecordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
}

// Server is a running fake. All state is guarded by mu.
type Server struct {
	mu sync.Mutex

	server *httptest.Server
	router *mux.Router

	tickets       map[int64]*zendesk.Ticket
	deleted       map[int64]*zendesk.Ticket
	groups        map[int64]*zendesk.Group
	userGroups    map[int64][]int64
	ratings       map[int64]*zendesk.SatisfactionRating
	memberships   map[int64]*zendesk.OrganizationMembership
	users         map[int64]bool
	organizations map[int64]bool
	audits        map[int64][]zendesk.TicketAudit
	jobs          map[string]*zendesk.JobStatus

	nextID   int64
	pageSize int
	failures []int
	requests []RecordedRequest
}

// New starts a fake server. Call Close when done.
func New() *Server {
	s := &Server{
		router:        mux.NewRouter(),
		tickets:       make(map[int64]*zendesk.Ticket),
		deleted:       make(map[int64]*zendesk.Ticket),
		groups:        make(map[int64]*zendesk.Group),
		userGroups:    make(map[int64][]int64),
		ratings:       make(map[int64]*zendesk.SatisfactionRating),
		memberships:   make(map[int64]*zendesk.OrganizationMembership),
		users:         make(map[int64]bool),
		organizations: make(map[int64]bool),
		audits:        make(map[int64][]zendesk.TicketAudit),
		jobs:          make(map[string]*zendesk.JobStatus),
		nextID:        firstGeneratedID,
		pageSize:      constants.MaxPageSize,
	}

	s.router.Use(s.recordMiddleware, s.failureMiddleware)
	s.routes()

	s.server = httptest.NewServer(s.router)

	return s
}

// URL is the endpoint to configure clients with.
func (s *Server) URL() string {
	return s.server.URL
}

// Close stops the server.
func (s *Server) Close() {
	s.server.Close()
}

func (s *Server) routes() {
	api := s.router.PathPrefix("/" + constants.APIBasePath).Subrouter()

	api.HandleFunc("/tickets", s.listTickets).Methods(http.MethodGet)
	api.HandleFunc("/tickets", s.createTicket).Methods(http.MethodPost)
	api.HandleFunc("/tickets/{id:[0-9]+}", s.getTicket).Methods(http.MethodGet)
	api.HandleFunc("/tickets/{id:[0-9]+}", s.updateTicket).Methods(http.MethodPut)
	api.HandleFunc("/tickets/{id:[0-9]+}", s.deleteTicket).Methods(http.MethodDelete)
	api.HandleFunc("/tickets/{id:[0-9]+}/audits", s.listTicketAudits).Methods(http.MethodGet)
	api.HandleFunc("/tickets/{id:[0-9]+}/audits/{audit:[0-9]+}", s.getTicketAudit).Methods(http.MethodGet)
	api.HandleFunc("/tickets/{id:[0-9]+}/satisfaction_rating", s.createRating).Methods(http.MethodPost)
	api.HandleFunc("/ticket_audits", s.listAllAudits).Methods(http.MethodGet)

	api.HandleFunc("/deleted_tickets", s.listDeletedTickets).Methods(http.MethodGet)
	api.HandleFunc("/deleted_tickets/restore_many", s.restoreMany).Methods(http.MethodPut)
	api.HandleFunc("/deleted_tickets/destroy_many", s.purgeMany).Methods(http.MethodDelete)
	api.HandleFunc("/deleted_tickets/{id:[0-9]+}/restore", s.restoreTicket).Methods(http.MethodPut)
	api.HandleFunc("/deleted_tickets/{id:[0-9]+}", s.purgeTicket).Methods(http.MethodDelete)

	api.HandleFunc("/groups", s.listGroups).Methods(http.MethodGet)
	api.HandleFunc("/groups", s.createGroup).Methods(http.MethodPost)
	api.HandleFunc("/groups/assignable", s.listAssignableGroups).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id:[0-9]+}", s.getGroup).Methods(http.MethodGet)
	api.HandleFunc("/groups/{id:[0-9]+}", s.updateGroup).Methods(http.MethodPut)
	api.HandleFunc("/groups/{id:[0-9]+}", s.deleteGroup).Methods(http.MethodDelete)
	api.HandleFunc("/users/{id:[0-9]+}/groups", s.listUserGroups).Methods(http.MethodGet)

	api.HandleFunc("/satisfaction_ratings", s.listRatings).Methods(http.MethodGet)
	api.HandleFunc("/satisfaction_ratings/{id:[0-9]+}", s.getRating).Methods(http.MethodGet)

	api.HandleFunc("/organization_memberships", s.listMemberships).Methods(http.MethodGet)
	api.HandleFunc("/organization_memberships", s.createMembership).Methods(http.MethodPost)
	api.HandleFunc("/organization_memberships/{id:[0-9]+}", s.getMembership).Methods(http.MethodGet)
	api.HandleFunc("/organization_memberships/{id:[0-9]+}", s.deleteMembership).Methods(http.MethodDelete)
	api.HandleFunc("/users/{id:[0-9]+}/organization_memberships", s.listUserMemberships).Methods(http.MethodGet)
	api.HandleFunc("/users/{user:[0-9]+}/organization_memberships/{id:[0-9]+}/make_default", s.makeDefault).Methods(http.MethodPut)
	api.HandleFunc("/organizations/{id:[0-9]+}/organization_memberships", s.listOrganizationMemberships).Methods(http.MethodGet)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "InvalidEndpoint", "Not found")
	})
}

func (s *Server) recordMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

func (s *Server) failureMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()

		if len(s.failures) > 0 {
			status := s.failures[0]
			s.failures = s.failures[1:]
			s.mu.Unlock()

			writeError(w, status, "InjectedFailure", http.StatusText(status))

			return
		}

		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// FailNext makes the next len(statuses) requests fail with the given status codes.
func (s *Server) FailNext(statuses ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures = append(s.failures, statuses...)
}

// SetPageSize sets the default page size of list endpoints.
func (s *Server) SetPageSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pageSize = size
}

// Requests returns a copy of every request received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]RecordedRequest(nil), s.requests...)
}

// RequestCount returns the number of requests received so far.
func (s *Server) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.requests)
}

// Seeding. Entities with a zero ID keep it; use the returned id.

// SeedTicket stores a live ticket.
func (s *Server) SeedTicket(ticket zendesk.Ticket) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tickets[ticket.ID] = &ticket

	return ticket.ID
}

// SeedDeletedTickets stores soft-deleted tickets with the given ids.
func (s *Server) SeedDeletedTickets(ids ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	for _, id := range ids {
		s.deleted[id] = &zendesk.Ticket{
			ID:            id,
			Subject:       fmt.Sprintf("Deleted ticket %d", id),
			Status:        "deleted",
			PreviousState: "open",
			DeletedAt:     &now,
		}
	}
}

// SeedGroup stores a group.
func (s *Server) SeedGroup(group zendesk.Group) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.groups[group.ID] = &group

	return group.ID
}

// SeedUser registers a user, optionally as a member of groups.
func (s *Server) SeedUser(userID int64, groupIDs ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[userID] = true
	s.userGroups[userID] = append(s.userGroups[userID], groupIDs...)
}

// SeedOrganization registers an organization.
func (s *Server) SeedOrganization(organizationID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.organizations[organizationID] = true
}

// SeedRating stores a satisfaction rating.
func (s *Server) SeedRating(rating zendesk.SatisfactionRating) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ratings[rating.ID] = &rating

	return rating.ID
}

// SeedMembership stores an organization membership. Its user and organization are
// registered too.
func (s *Server) SeedMembership(membership zendesk.OrganizationMembership) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.memberships[membership.ID] = &membership
	s.users[membership.UserID] = true
	s.organizations[membership.OrganizationID] = true

	return membership.ID
}

// SeedAudit appends an audit to a ticket's trail.
func (s *Server) SeedAudit(audit zendesk.TicketAudit) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.audits[audit.TicketID] = append(s.audits[audit.TicketID], audit)
}

// Inspection.

// TicketIDs returns the ids of live tickets in ascending order.
func (s *Server) TicketIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedKeys(s.tickets)
}

// DeletedTicketIDs returns the ids of soft-deleted tickets in ascending order.
func (s *Server) DeletedTicketIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedKeys(s.deleted)
}

// GroupIDs returns the ids of stored groups in ascending order.
func (s *Server) GroupIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedKeys(s.groups)
}

// MembershipIDs returns the ids of stored memberships in ascending order.
func (s *Server) MembershipIDs() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return sortedKeys(s.memberships)
}

// Job returns a purge job by id.
func (s *Server) Job(id string) (zendesk.JobStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return zendesk.JobStatus{}, false
	}

	return *job, true
}

// helpers; callers hold mu where state is touched.

func (s *Server) allocateID() int64 {
	id := s.nextID
	s.nextID++

	return id
}

func (s *Server) now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func (s *Server) entityURL(path string, id int64) string {
	return fmt.Sprintf("%s/%s/%s/%d.json", s.server.URL, constants.APIBasePath, path, id)
}

func sortedKeys[V any](entries map[int64]V) []int64 {
	keys := make([]int64, 0, len(entries))
	for id := range entries {
		keys = append(keys, id)
	}

	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	return keys
}

func pathID(r *http.Request, name string) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)[name], 10, 64)

	return id
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, status int, title, description string) {
	writeJSON(w, status, map[string]string{
		"error":       title,
		"description": description,
	})
}

func writeNotFound(w http.ResponseWriter) {
	writeError(w, http.StatusNotFound, "RecordNotFound", "Not found")
}

func decodeBody(r *http.Request, root string, target interface{}) error {
	var envelope map[string]json.RawMessage

	err := json.NewDecoder(r.Body).Decode(&envelope)
	if err != nil {
		return err
	}

	raw, ok := envelope[root]
	if !ok {
		return fmt.Errorf("%w: %s", errMissingRoot, root)
	}

	return json.Unmarshal(raw, target)
}

// paginate slices items by page and per_page and fills the page metadata.
func paginate[T any](s *Server, r *http.Request, items []T) ([]T, zendesk.Page) {
	query := r.URL.Query()

	perPage, _ := strconv.Atoi(query.Get("per_page"))
	if perPage <= 0 {
		perPage = s.pageSize
	}

	page, _ := strconv.Atoi(query.Get("page"))
	if page <= 0 {
		page = 1
	}

	meta := zendesk.Page{Count: len(items)}

	start := (page - 1) * perPage
	if start > len(items) {
		start = len(items)
	}

	end := start + perPage
	if end > len(items) {
		end = len(items)
	}

	link := func(target int) *string {
		values := url.Values{}
		values.Set("page", strconv.Itoa(target))
		values.Set("per_page", strconv.Itoa(perPage))

		value := s.server.URL + r.URL.Path + "?" + values.Encode()

		return &value
	}

	if end < len(items) {
		meta.NextPage = link(page + 1)
	}

	if page > 1 {
		meta.PreviousPage = link(page - 1)
	}

	return items[start:end], meta
}
