// Package gate enforces authentication and role-based routing at the edge
// of every protected request. It is the sole authorization boundary:
// handlers behind it assume identity has already been established.
package gate

import (
	"net/http"
	"strings"

	"github.com/arkuznet/stockfolio/internal/model"
)

// Verifier validates a raw token and returns its claims.
// Implemented by *token.Service.
type Verifier interface {
	Verify(raw string) (model.Claims, error)
}

// TokenCookie is the cookie holding the signed access token. It is the
// only cookie consulted for authorization decisions.
const TokenCookie = "token"

// LoginPath is where unauthenticated requests are steered.
const LoginPath = "/login"

// Outcome is the terminal state of a gate evaluation.
type Outcome int

const (
	// Allow forwards the request unchanged.
	Allow Outcome = iota
	// Redirect steers the request to Decision.Location.
	Redirect
)

// Decision is the result of evaluating one request.
type Decision struct {
	Outcome  Outcome
	Location string       // redirect target when Outcome == Redirect
	Claims   model.Claims // verified identity when Outcome == Allow on a protected path
	Verified bool         // whether Claims carries a verified identity
}

// Gate classifies paths and authorizes verified roles against them.
// It holds only read-only state and is safe for unlimited concurrent use.
type Gate struct {
	verifier Verifier
	public   map[string]struct{}
	prefixes []string // public path prefixes (static assets)

	// required role per protected top-level segment, and each role's home.
	protected map[string]model.Role
	homes     map[string]string
}

// New constructs a gate with the default path policy: public landing and
// auth pages, and one protected subtree per routable role.
func New(v Verifier) *Gate {
	return &Gate{
		verifier: v,
		public: map[string]struct{}{
			"/":            {},
			"/login":       {},
			"/signup":      {},
			"/favicon.ico": {},
		},
		prefixes: []string{"/static/"},
		protected: map[string]model.Role{
			"investor": model.RoleInvestor,
			"analyst":  model.RoleAnalyst,
		},
		homes: map[string]string{
			string(model.RoleInvestor): "/investor",
			string(model.RoleAnalyst):  "/analyst",
		},
	}
}

// Decide evaluates a request path and raw token cookie value. It performs
// no I/O and never mutates the token: the outcome is a pure function of
// (path, token).
func (g *Gate) Decide(path, rawToken string) Decision {
	if g.isPublic(path) {
		return Decision{Outcome: Allow}
	}

	required, matched := g.requiredRole(path)
	if !matched {
		// Not under a protected subtree; outside the gate's matcher.
		return Decision{Outcome: Allow}
	}

	if rawToken == "" {
		return Decision{Outcome: Redirect, Location: LoginPath}
	}
	claims, err := g.verifier.Verify(rawToken)
	if err != nil || claims.Role == "" {
		return Decision{Outcome: Redirect, Location: LoginPath}
	}

	if claims.Role != required {
		home, ok := g.homes[string(claims.Role)]
		if !ok {
			// Authenticated role with no routable home (admin).
			return Decision{Outcome: Redirect, Location: LoginPath}
		}
		return Decision{Outcome: Redirect, Location: home}
	}
	return Decision{Outcome: Allow, Claims: claims, Verified: true}
}

// VerifyToken exposes the gate's verifier for edge middleware that shares
// its trust decisions but applies a different failure policy (API 401s).
func (g *Gate) VerifyToken(raw string) (model.Claims, error) {
	return g.verifier.Verify(raw)
}

func (g *Gate) isPublic(path string) bool {
	if _, ok := g.public[path]; ok {
		return true
	}
	for _, p := range g.prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// requiredRole maps the first path segment to its required role.
func (g *Gate) requiredRole(path string) (model.Role, bool) {
	seg := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(seg, '/'); i >= 0 {
		seg = seg[:i]
	}
	r, ok := g.protected[seg]
	return r, ok
}

// Middleware applies Decide to every request before any handler runs.
// Allowed requests on protected paths carry the verified claims in their
// context.
func (g *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := ""
		if c, err := r.Cookie(TokenCookie); err == nil {
			raw = c.Value
		}
		d := g.Decide(r.URL.Path, raw)
		if d.Outcome == Redirect {
			http.Redirect(w, r, d.Location, http.StatusFound)
			return
		}
		if d.Verified {
			r = r.WithContext(WithClaims(r.Context(), d.Claims))
		}
		next.ServeHTTP(w, r)
	})
}
