package fakedesk

import (
	"net/http"

	"github.com/fivetwenty-io/zendesk-client/pkg/zendesk"
)

func (s *Server) groupsLocked(include func(*zendesk.Group) bool) []zendesk.Group {
	groups := make([]zendesk.Group, 0, len(s.groups))

	for _, id := range sortedKeys(s.groups) {
		group := s.groups[id]
		if include(group) {
			groups = append(groups, *group)
		}
	}

	return groups
}

func (s *Server) listGroups(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := s.groupsLocked(func(*zendesk.Group) bool { return true })

	items, page := paginate(s, r, groups)
	writeJSON(w, http.StatusOK, zendesk.GroupList{Page: page, Groups: items})
}

func (s *Server) listAssignableGroups(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	groups := s.groupsLocked(func(group *zendesk.Group) bool { return !group.Deleted })

	items, page := paginate(s, r, groups)
	writeJSON(w, http.StatusOK, zendesk.GroupList{Page: page, Groups: items})
}

func (s *Server) listUserGroups(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	userID := pathID(r, "id")
	if !s.users[userID] {
		writeNotFound(w)

		return
	}

	member := make(map[int64]bool, len(s.userGroups[userID]))
	for _, id := range s.userGroups[userID] {
		member[id] = true
	}

	groups := s.groupsLocked(func(group *zendesk.Group) bool { return member[group.ID] })

	items, page := paginate(s, r, groups)
	writeJSON(w, http.StatusOK, zendesk.GroupList{Page: page, Groups: items})
}

func (s *Server) getGroup(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[pathID(r, "id")]
	if !ok {
		writeNotFound(w)

		return
	}

	writeJSON(w, http.StatusOK, map[string]*zendesk.Group{"group": group})
}

func (s *Server) createGroup(w http.ResponseWriter, r *http.Request) {
	var request zendesk.GroupCreateRequest

	err := decodeBody(r, "group", &request)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidJSON", err.Error())

		return
	}

	if request.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "RecordInvalid", "Name: cannot be blank")

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.allocateID()
	now := s.now()

	group := &zendesk.Group{
		ID:          id,
		URL:         s.entityURL("groups", id),
		Name:        request.Name,
		Description: request.Description,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}
	s.groups[id] = group

	writeJSON(w, http.StatusCreated, map[string]*zendesk.Group{"group": group})
}

func (s *Server) updateGroup(w http.ResponseWriter, r *http.Request) {
	var request zendesk.GroupUpdateRequest

	err := decodeBody(r, "group", &request)
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidJSON", err.Error())

		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	group, ok := s.groups[pathID(r, "id")]
	if !ok {
		writeNotFound(w)

		return
	}

	if request.Name != "" {
		group.Name = request.Name
	}

	if request.Description != "" {
		group.Description = request.Description
	}

	now := s.now()
	group.UpdatedAt = &now

	writeJSON(w, http.StatusOK, map[string]*zendesk.Group{"group": group})
}

func (s *Server) deleteGroup(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := pathID(r, "id")

	if _, ok := s.groups[id]; !ok {
		writeNotFound(w)

		return
	}

	delete(s.groups, id)
	w.WriteHeader(http.StatusNoContent)
}
