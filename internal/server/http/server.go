// Package httpserver exposes the stockfolio HTTP API and pages.
package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/arkuznet/stockfolio/internal/gate"
	"github.com/arkuznet/stockfolio/internal/model"
	"github.com/arkuznet/stockfolio/internal/service"
)

// Markets fetches quotes and price history from the market-data providers.
type Markets interface {
	Quotes(ctx context.Context, symbols []string) ([]model.Quote, error)
	History(ctx context.Context, symbol string) ([]model.PricePoint, error)
}

// Advisors produces AI summaries, popular symbols and trading signals.
type Advisors interface {
	InvestmentSummary(ctx context.Context, symbol string) (string, error)
	PopularSymbols(ctx context.Context) ([]string, error)
	Recommendations(ctx context.Context, stocks []model.Quote) ([]model.Recommendation, error)
}

// Server wires services into HTTP handlers.
type Server struct {
	auth          service.AuthService
	portfolios    service.PortfolioService
	markets       Markets
	advisors      Advisors
	gate          *gate.Gate
	log           *zap.Logger
	secureCookies bool
}

// New constructs the HTTP server with injected services.
func New(auth service.AuthService, portfolios service.PortfolioService, markets Markets, advisors Advisors, g *gate.Gate, log *zap.Logger, secureCookies bool) *Server {
	return &Server{
		auth:          auth,
		portfolios:    portfolios,
		markets:       markets,
		advisors:      advisors,
		gate:          g,
		log:           log,
		secureCookies: secureCookies,
	}
}

// Router builds the route tree. The access gate runs before every page
// handler; API routes use the 401-policy variant of the same verification.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(Recover(s.log))
	r.Use(Logging(s.log))
	r.Use(s.gate.Middleware)

	// Public pages. The UI itself is rendered elsewhere; these handlers
	// give the gate a real routing surface.
	r.Get("/", s.handlePage("home"))
	r.Get("/login", s.handlePage("login"))
	r.Get("/signup", s.handlePage("signup"))

	// Role subtrees, protected by the gate.
	r.Get("/investor", s.handlePage("investor"))
	r.Get("/investor/*", s.handlePage("investor"))
	r.Get("/analyst", s.handlePage("analyst"))
	r.Get("/analyst/*", s.handlePage("analyst"))

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/signup", s.handleSignup)
		api.Post("/auth/login", s.handleLogin)
		api.Post("/auth/signout", s.handleSignout)

		api.Group(func(priv chi.Router) {
			priv.Use(s.requireAuth)
			priv.Get("/portfolio", s.handlePortfolioList)
			priv.Post("/portfolio", s.handlePortfolioAdd)
			priv.Delete("/portfolio", s.handlePortfolioRemove)

			priv.Get("/stocks", s.handleStocks)
			priv.Get("/history", s.handleHistory)
			priv.Get("/popular", s.handlePopular)
			priv.Post("/summary", s.handleSummary)
			priv.Post("/recommendations", s.handleRecommendations)
		})
	})

	return r
}

// handlePage is a placeholder page handler; identity, when present, comes
// from the gate-verified token, never from the informational cookies.
func (s *Server) handlePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{"page": name}
		if claims, ok := gate.ClaimsFromCtx(r.Context()); ok {
			payload["email"] = claims.Email
			payload["role"] = string(claims.Role)
		}
		writeJSON(w, http.StatusOK, payload)
	}
}
