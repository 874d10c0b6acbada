package server

import (
	"net/http"
	"strings"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/bobmcallan/stockpulse/internal/common"
)

// registerRoutes sets up all REST API routes and the MCP endpoint on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	// System
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/diagnostics", s.handleDiagnostics)

	// Stocks
	mux.HandleFunc("/api/stocks/trending", s.handleTrending)
	mux.HandleFunc("/api/stocks/compare", s.handleCompare)
	mux.HandleFunc("/api/stocks/", s.routeStocks)

	// MCP over Streamable HTTP
	mux.Handle("/mcp", mcpserver.NewStreamableHTTPServer(s.app.MCPServer,
		mcpserver.WithStateLess(true),
	))
}

// routeStocks dispatches /api/stocks/{resource}/{param} to the appropriate handler.
func (s *Server) routeStocks(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/stocks/")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) < 2 {
		WriteErrorWithCode(w, http.StatusNotFound, "Not found", "not_found")
		return
	}

	resource, param := parts[0], parts[1]
	switch resource {
	case "quote":
		s.handleQuote(w, r, param)
	case "company":
		s.handleCompany(w, r, param)
	case "history":
		s.handleHistory(w, r, param)
	case "search":
		s.handleSearch(w, r, param)
	default:
		WriteErrorWithCode(w, http.StatusNotFound, "Not found", "not_found")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	uptime := time.Since(s.app.StartupTime).Round(time.Second)

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"version":       common.GetVersion(),
		"build":         common.GetBuild(),
		"commit":        common.GetGitCommit(),
		"uptime":        uptime.String(),
		"started_at":    s.app.StartupTime,
		"cache_backend": s.app.CacheBackend,
		"provider":      s.app.Source != nil,
		"fallbacks":     s.app.FallbackStats(),
	})
}
