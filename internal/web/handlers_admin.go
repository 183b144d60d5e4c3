package web

import (
	"net/http"

	"github.com/JonMunkholm/ModCompare/internal/export"
)

// HealthResponse is the JSON body of GET /healthz.
type HealthResponse struct {
	Status    string                      `json:"status"`
	Source    string                      `json:"source"`
	PDFExport bool                        `json:"pdf_export"`
	Renders   *export.RenderLimiterStatus `json:"renders,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "ok",
		Source:    s.service.SourceKey(),
		PDFExport: s.builder.CanRender(),
	}
	if limiter := s.builder.Limiter(); limiter != nil {
		status := limiter.Status()
		resp.Renders = &status
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleClearCache drops the cached table so the next request reloads the
// source from disk or the database.
func (s *Server) handleClearCache(w http.ResponseWriter, r *http.Request) {
	s.service.ClearCache()
	writeJSON(w, http.StatusOK, map[string]any{
		"cleared": true,
		"source":  s.service.SourceKey(),
	})
}
