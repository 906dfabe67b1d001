package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/stayware/go-property-server/notifications"
)

const defaultNotificationLimit = 50

type createNotificationRequest struct {
	OwnerID  string  `json:"ownerId"`
	TenantID *string `json:"tenantId,omitempty"`
	Title    string  `json:"title"`
	Body     string  `json:"body"`
}

// createNotificationHandler stores a notification for any account and
// pushes it to that account's connected websocket clients. Platform
// admin only.
func (s *Server) createNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var req createNotificationRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body is not valid JSON")
		return
	}
	if req.OwnerID == "" || req.Title == "" {
		writeError(w, http.StatusBadRequest, "invalid_body", "ownerId and title are required")
		return
	}

	n, err := s.notifications.Create(r.Context(), req.OwnerID, req.TenantID, req.Title, req.Body)
	if err != nil {
		s.writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (s *Server) listNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	limit := defaultNotificationLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_query", "limit must be a positive integer")
			return
		}
		limit = n
	}

	list, err := s.notifications.ListForOwner(r.Context(), principal.ID, limit)
	if err != nil {
		s.writeAppError(w, err)
		return
	}
	if list == nil {
		list = []*notifications.Notification{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": list})
}

func (s *Server) markNotificationReadHandler(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	id := r.PathValue("id")
	if err := s.notifications.MarkRead(r.Context(), id, principal.ID); err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "notification not found")
			return
		}
		s.writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}

func (s *Server) deleteNotificationHandler(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	id := r.PathValue("id")
	if err := s.notifications.Delete(r.Context(), id, principal.ID); err != nil {
		if errors.Is(err, notifications.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "notification not found")
			return
		}
		s.writeAppError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
