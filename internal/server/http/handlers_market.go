package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/arkuznet/stockfolio/internal/model"
)

// handleStocks returns latest quotes. With no explicit symbols it quotes
// the caller's own portfolio.
func (s *Server) handleStocks(w http.ResponseWriter, r *http.Request) {
	var symbols []string
	if raw := r.URL.Query().Get("symbols"); raw != "" {
		for _, sym := range strings.Split(raw, ",") {
			if sym = strings.TrimSpace(sym); sym != "" {
				symbols = append(symbols, strings.ToUpper(sym))
			}
		}
	} else {
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
		symbols = p.Symbols
	}
	if len(symbols) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{"quotes": []model.Quote{}})
		return
	}
	quotes, err := s.markets.Quotes(r.Context(), symbols)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"quotes": quotes})
}

// handleHistory returns daily closing prices for one symbol, oldest first.
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	symbol := strings.TrimSpace(r.URL.Query().Get("symbol"))
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "missing symbol")
		return
	}
	history, err := s.markets.History(r.Context(), symbol)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"history": history})
}

// handlePopular returns AI-suggested trending symbols.
func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	symbols, err := s.advisors.PopularSymbols(r.Context())
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"symbols": symbols})
}

type summaryRequest struct {
	Symbol string `json:"symbol"`
}

// handleSummary returns an AI investment summary for one symbol.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var req summaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	summary, err := s.advisors.InvestmentSummary(r.Context(), strings.TrimSpace(req.Symbol))
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

type recommendationsRequest struct {
	Stocks []model.Quote `json:"stocks"`
}

// handleRecommendations returns one BUY/HOLD/SELL signal per quoted stock.
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}
	results, err := s.advisors.Recommendations(r.Context(), req.Stocks)
	if err != nil {
		s.respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}
