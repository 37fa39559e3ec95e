package httpserver

import (
	"net/http"
	"time"

	"github.com/arkuznet/stockfolio/internal/gate"
	"github.com/arkuznet/stockfolio/internal/model"
)

// Informational cookies mirror the token claims for client-side display.
// They are never consulted for authorization; only the signed token cookie
// is authoritative.
const (
	cookieUserID = "user_id"
	cookieEmail  = "email"
	cookieRole   = "role"
)

const sessionMaxAge = 7 * 24 * time.Hour

// setSessionCookies sets the http-only token cookie plus the informational
// identity cookies on login/signup.
func (s *Server) setSessionCookies(w http.ResponseWriter, sess model.Session, claims model.Claims) {
	maxAge := int(sessionMaxAge / time.Second)
	http.SetCookie(w, &http.Cookie{
		Name:     gate.TokenCookie,
		Value:    sess.Token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   s.secureCookies,
	})
	for _, c := range []struct{ name, value string }{
		{cookieUserID, claims.UserID.String()},
		{cookieEmail, claims.Email},
		{cookieRole, string(claims.Role)},
	} {
		http.SetCookie(w, &http.Cookie{
			Name:     c.name,
			Value:    c.value,
			Path:     "/",
			MaxAge:   maxAge,
			SameSite: http.SameSiteLaxMode,
			Secure:   s.secureCookies,
		})
	}
}

// clearSessionCookies expires every session cookie on signout.
func (s *Server) clearSessionCookies(w http.ResponseWriter) {
	for _, name := range []string{gate.TokenCookie, cookieUserID, cookieEmail, cookieRole} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: name == gate.TokenCookie,
		})
	}
}
