package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/arkuznet/stockfolio/internal/errs"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// invalidCredentials is the single client-visible message for every
// authentication failure; unknown email and wrong password must produce
// byte-identical responses.
const invalidCredentials = "invalid email or password"

// respondError maps sentinel errors to HTTP statuses with sanitized
// client messages; upstream detail is logged server-side only.
func (s *Server) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, invalidCredentials)
	case errors.Is(err, errs.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "user already exists")
	case errors.Is(err, errs.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "too many attempts, try again later")
	case errors.Is(err, errs.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, errs.ErrUpstream):
		s.log.Error("upstream failure", zap.Error(err))
		writeError(w, http.StatusBadGateway, "upstream provider unavailable")
	default:
		s.log.Error("internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
