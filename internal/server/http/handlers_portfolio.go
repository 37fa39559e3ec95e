package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/arkuznet/stockfolio/internal/gate"
)

type symbolRequest struct {
	Symbol string `json:"symbol"`
}

// ownerEmail returns the identity established by the verified token.
func ownerEmail(r *http.Request) (string, bool) {
	claims, ok := gate.ClaimsFromCtx(r.Context())
	return claims.Email, ok
}

func (s *Server) handlePortfolioList(w http.ResponseWriter, r *http.Request) {
	email, ok := ownerEmail(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	p, err := s.portfolios.List(r.Context(), email)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"symbols": p.Symbols})
}

func (s *Server) handlePortfolioAdd(w http.ResponseWriter, r *http.Request) {
	email, ok := ownerEmail(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req symbolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	p, err := s.portfolios.Add(r.Context(), email, req.Symbol)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"symbols": p.Symbols})
}

func (s *Server) handlePortfolioRemove(w http.ResponseWriter, r *http.Request) {
	email, ok := ownerEmail(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	var req symbolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	p, err := s.portfolios.Remove(r.Context(), email, req.Symbol)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"symbols": p.Symbols})
}
