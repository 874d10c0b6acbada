package server

import (
	"net/http"
)

// --- Stock handlers ---

func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	res, err := s.app.QuoteService.GetQuote(r.Context(), symbol)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteData(w, res.Data, res.Cached)
}

func (s *Server) handleCompany(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	res, err := s.app.QuoteService.GetCompany(r.Context(), symbol)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteData(w, res.Data, res.Cached)
}

func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	res, err := s.app.QuoteService.GetTrending(r.Context())
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteData(w, res.Data, res.Cached)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request, symbol string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	res, err := s.app.HistoryService.GetHistory(r.Context(), symbol, r.URL.Query().Get("period"))
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteData(w, res.Data, res.Cached)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, query string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	res, err := s.app.SearchService.SearchSymbols(r.Context(), query)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteData(w, res.Data, res.Cached)
}

// compareRequest is the POST /api/stocks/compare body.
type compareRequest struct {
	Symbols []string `json:"symbols"`
	Period  string   `json:"period"`
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req compareRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := s.app.CompareService.CompareSymbols(r.Context(), req.Symbols, req.Period)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteData(w, res.Data, res.Cached)
}
