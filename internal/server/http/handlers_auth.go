package httpserver

import (
	"encoding/json"
	"net/http"

	"github.com/arkuznet/stockfolio/internal/model"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// handleSignup creates an account and signs the new user in.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	sess, claims, err := s.auth.Signup(r.Context(), req.Name, req.Email, req.Password, model.Role(req.Role))
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.setSessionCookies(w, sess, claims)
	writeJSON(w, http.StatusCreated, map[string]any{"user": userResponse{
		ID:    claims.UserID.String(),
		Email: claims.Email,
		Role:  string(claims.Role),
	}})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// handleLogin verifies credentials and sets session cookies.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	sess, claims, err := s.auth.Login(r.Context(), req.Email, req.Password, r.RemoteAddr)
	if err != nil {
		s.respondError(w, err)
		return
	}
	s.setSessionCookies(w, sess, claims)
	writeJSON(w, http.StatusOK, map[string]any{"user": userResponse{
		ID:    claims.UserID.String(),
		Email: claims.Email,
		Role:  string(claims.Role),
	}})
}

// handleSignout clears the session cookies.
func (s *Server) handleSignout(w http.ResponseWriter, _ *http.Request) {
	s.clearSessionCookies(w)
	writeJSON(w, http.StatusOK, map[string]string{"message": "signed out"})
}
