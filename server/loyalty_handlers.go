package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/stayware/go-property-server/loyalty"
)

const defaultLoyaltyHistoryLimit = 50

type loyaltyPointsRequest struct {
	Points int    `json:"points"`
	Reason string `json:"reason"`
}

func (s *Server) loyaltyBalanceHandler(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	balance, err := s.loyalty.Balance(r.Context(), principal.ID)
	if err != nil {
		s.writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"balance": balance})
}

func (s *Server) loyaltyHistoryHandler(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	limit := defaultLoyaltyHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "invalid_query", "limit must be a positive integer")
			return
		}
		limit = n
	}

	entries, err := s.loyalty.History(r.Context(), principal.ID, limit)
	if err != nil {
		s.writeAppError(w, err)
		return
	}
	if entries == nil {
		entries = []*loyalty.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (s *Server) loyaltyEarnHandler(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	var req loyaltyPointsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body is not valid JSON")
		return
	}

	entry, err := s.loyalty.Earn(r.Context(), principal.ID, req.Points, req.Reason)
	if err != nil {
		s.writeLoyaltyError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) loyaltyRedeemHandler(w http.ResponseWriter, r *http.Request) {
	principal, _ := PrincipalFromContext(r.Context())

	var req loyaltyPointsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body is not valid JSON")
		return
	}

	entry, err := s.loyalty.Redeem(r.Context(), principal.ID, req.Points, req.Reason)
	if err != nil {
		s.writeLoyaltyError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) writeLoyaltyError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, loyalty.ErrInvalidPoints):
		writeError(w, http.StatusBadRequest, "invalid_points", err.Error())
	case errors.Is(err, loyalty.ErrInsufficientBalance):
		writeError(w, http.StatusConflict, "insufficient_balance", err.Error())
	default:
		s.writeAppError(w, err)
	}
}
