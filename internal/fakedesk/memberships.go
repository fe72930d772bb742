package fakedesk

import (
	"net/http"

	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

func (s *Server) membershipsLocked(include func(*zendesk.OrganizationMembership) bool) []zendesk.OrganizationMembership {
	memberships := make([]zendesk.OrganizationMembership, 0, len(s.memberships))

	for _, id := range sortedKeys(s.memberships) {
		membership := s.memberships[id]
		if include(membership) {
			memberships = append(memberships, *membership)
		}
	}

	return memberships
}

func (s *Server) writeMemberships(w http.ResponseWriter, r *http.Request, memberships []zendesk.OrganizationMembership) {
	items, page := paginate(s, r, memberships)
	writeJSON(w, http.StatusOK, zendesk.OrganizationMembershipList{Page: page, OrganizationMemberships: items})
}

func (s *Server) listMemberships(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.writeMemberships(w, r, s.membershipsLocked(func(*zendesk.OrganizationMembership) bool { return true }))
}

func (s *Server) listUserMemberships(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := pathID(r, "id")
	if !s.users[userID] {
		writeNotFound(w)

		return
	}

	s.writeMemberships(w, r, s.membershipsLocked(func(m *zendesk.OrganizationMembership) bool {
		return m.UserID == userID
	}))
}

func (s *Server) listOrganizationMemberships(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	organizationID := pathID(r, "id")
	if !s.organizations[organizationID] {
		writeNotFound(w)

		return
	}

	s.writeMemberships(w, r, s.membershipsLocked(func(m *zendesk.OrganizationMembership) bool {
		return m.OrganizationID == organizationID
	}))
}

func (s *Server) getMembership(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	membership, ok := s.memberships[pathID(r, "id")]
	if !ok {
		writeNotFound(w)

		return
	}

	writeJSON(w, http.StatusOK, map[string]*zendesk.OrganizationMembership{"organization_membership": membership})
}

func (s *Server) createMembership(w http.ResponseWriter, r *http.Request) {
	var request zendesk.OrganizationMembershipCreateRequest

	err := decodeBody(r, "organization_membership", &request)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidJSON", err.Error())

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.users[request.UserID] || !s.organizations[request.OrganizationID] {
		writeError(w, http.StatusUnprocessableEntity, "RecordInvalid", "User and organization must exist")

		return
	}

	for _, existing := range s.memberships {
		if existing.UserID == request.UserID && existing.OrganizationID == request.OrganizationID {
			writeError(w, http.StatusUnprocessableEntity, "RecordInvalid", "User is already a member")

			return
		}
	}

	id := s.allocateID()
	now := s.now()

	isDefault := request.Default != nil && *request.Default
	if !s.hasDefaultLocked(request.UserID) {
		isDefault = true
	}

	if isDefault {
		s.clearDefaultLocked(request.UserID)
	}

	membership := &zendesk.OrganizationMembership{
		ID:             id,
		URL:            s.entityURL("organization_memberships", id),
		UserID:         request.UserID,
		OrganizationID: request.OrganizationID,
		Default:        &isDefault,
		CreatedAt:      &now,
		UpdatedAt:      &now,
	}
	s.memberships[id] = membership

	writeJSON(w, http.StatusCreated, map[string]*zendesk.OrganizationMembership{"organization_membership": membership})
}

func (s *Server) deleteMembership(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := pathID(r, "id")

	if _, ok := s.memberships[id]; !ok {
		writeNotFound(w)

		return
	}

	delete(s.memberships, id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) makeDefault(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := pathID(r, "user")

	membership, ok := s.memberships[pathID(r, "id")]
	if !ok || membership.UserID != userID {
		writeNotFound(w)

		return
	}

	s.clearDefaultLocked(userID)

	isDefault := true
	membership.Default = &isDefault

	s.writeMemberships(w, r, s.membershipsLocked(func(m *zendesk.OrganizationMembership) bool {
		return m.UserID == userID
	}))
}

func (s *Server) hasDefaultLocked(userID int64) bool {
	for _, membership := range s.memberships {
		if membership.UserID == userID && membership.Default != nil && *membership.Default {
			return true
		}
	}

	return false
}

func (s *Server) clearDefaultLocked(userID int64) {
	for _, membership := range s.memberships {
		if membership.UserID == userID {
			notDefault := false
			membership.Default = &notDefault
		}
	}
}
