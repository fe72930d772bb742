package fakedesk

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

func (s *Server) listTicketAudits(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ticketID := pathID(r, "id")

	_, live := s.tickets[ticketID]
	_, deleted := s.deleted[ticketID]

	if !live && !deleted {
		writeNotFound(w)

		return
	}

	audits := append([]zendesk.TicketAudit{}, s.audits[ticketID]...)

	items, page := paginate(s, r, audits)
	writeJSON(w, http.StatusOK, zendesk.TicketAuditList{Page: page, Audits: items})
}

func (s *Server) getTicketAudit(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	auditID := pathID(r, "audit")

	for _, audit := range s.audits[pathID(r, "id")] {
		if audit.ID == auditID {
			writeJSON(w, http.StatusOK, map[string]zendesk.TicketAudit{"audit": audit})

			return
		}
	}

	writeNotFound(w)
}

func (s *Server) listAllAudits(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var audits []zendesk.TicketAudit
	for _, trail := range s.audits {
		audits = append(audits, trail...)
	}

	sort.Slice(audits, func(i, j int) bool { return audits[i].ID < audits[j].ID })

	if audits == nil {
		audits = []zendesk.TicketAudit{}
	}

	if r.URL.Query().Has("page[size]") {
		items, page := s.cursorPaginate(r, audits)
		writeJSON(w, http.StatusOK, zendesk.TicketAuditList{Page: page, Audits: items})

		return
	}

	items, page := paginate(s, r, audits)
	writeJSON(w, http.StatusOK, zendesk.TicketAuditList{Page: page, Audits: items})
}

// cursorPaginate pages audits sorted by id. The cursor is the id of the last audit
// served.
func (s *Server) cursorPaginate(r *http.Request, audits []zendesk.TicketAudit) ([]zendesk.TicketAudit, zendesk.Page) {
	query := r.URL.Query()

	size, _ := strconv.Atoi(query.Get("page[size]"))
	if size <= 0 {
		size = s.pageSize
	}

	start := 0

	if after, err := strconv.ParseInt(query.Get("page[after]"), 10, 64); err == nil {
		start = sort.Search(len(audits), func(i int) bool { return audits[i].ID > after })
	}

	end := min(start+size, len(audits))
	items := audits[start:end]

	meta := &zendesk.CursorMeta{HasMore: end < len(audits)}
	links := &zendesk.CursorLinks{}

	if len(items) > 0 {
		meta.BeforeCursor = strconv.FormatInt(items[0].ID, 10)
		meta.AfterCursor = strconv.FormatInt(items[len(items)-1].ID, 10)
	}

	if meta.HasMore {
		values := url.Values{}
		values.Set("page[size]", strconv.Itoa(size))
		values.Set("page[after]", meta.AfterCursor)
		links.Next = s.server.URL + r.URL.Path + "?" + values.Encode()
	}

	return items, zendesk.Page{Meta: meta, Links: links}
}
