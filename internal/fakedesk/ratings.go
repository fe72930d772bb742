package fakedesk

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

func (s *Server) listRatings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	score := zendesk.SatisfactionRatingScore(query.Get("score"))
	start := parseUnix(query.Get("start_time"))
	end := parseUnix(query.Get("end_time"))

	s.mu.Lock()
	defer s.mu.Unlock()

	ratings := make([]zendesk.SatisfactionRating, 0, len(s.ratings))

	for _, id := range sortedKeys(s.ratings) {
		rating := s.ratings[id]

		if score != "" && rating.Score != score {
			continue
		}

		if rating.CreatedAt != nil {
			if !start.IsZero() && rating.CreatedAt.Before(start) {
				continue
			}

			if !end.IsZero() && rating.CreatedAt.After(end) {
				continue
			}
		}

		ratings = append(ratings, *rating)
	}

	items, page := paginate(s, r, ratings)
	writeJSON(w, http.StatusOK, zendesk.SatisfactionRatingList{Page: page, SatisfactionRatings: items})
}

func (s *Server) getRating(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rating, ok := s.ratings[pathID(r, "id")]
	if !ok {
		writeNotFound(w)

		return
	}

	writeJSON(w, http.StatusOK, map[string]*zendesk.SatisfactionRating{"satisfaction_rating": rating})
}

func (s *Server) createRating(w http.ResponseWriter, r *http.Request) {
	var request zendesk.SatisfactionRatingCreateRequest

	err := decodeBody(r, "satisfaction_rating", &request)
	if errors.Is(err, zendesk.ErrUnknownScore) {
		writeError(w, http.StatusUnprocessableEntity, "RecordInvalid", err.Error())

		return
	}

	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidJSON", err.Error())

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ticketID := pathID(r, "id")

	ticket, ok := s.tickets[ticketID]
	if !ok {
		writeNotFound(w)

		return
	}

	id := s.allocateID()
	now := s.now()

	rating := &zendesk.SatisfactionRating{
		ID:          id,
		URL:         s.entityURL("satisfaction_ratings", id),
		GroupID:     ticket.GroupID,
		AssigneeID:  ticket.AssigneeID,
		RequesterID: ticket.RequesterID,
		TicketID:    ticketID,
		Score:       request.Score,
		Comment:     request.Comment,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
	s.ratings[id] = rating

	s.audits[ticketID] = append(s.audits[ticketID], zendesk.TicketAudit{
		ID:        s.allocateID(),
		TicketID:  ticketID,
		AuthorID:  ticket.RequesterID,
		CreatedAt: &now,
		Events: zendesk.AuditEvents{
			&zendesk.SatisfactionRatingEvent{
				EventBase:  zendesk.EventBase{ID: s.allocateID(), Type: zendesk.EventTypeSatisfactionRating},
				Score:      string(request.Score),
				AssigneeID: ticket.AssigneeID,
				Body:       request.Comment,
			},
		},
	})

	writeJSON(w, http.StatusCreated, map[string]*zendesk.SatisfactionRating{"satisfaction_rating": rating})
}

func parseUnix(value string) time.Time {
	seconds, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return time.Time{}
	}

	return time.Unix(seconds, 0).UTC()
}
