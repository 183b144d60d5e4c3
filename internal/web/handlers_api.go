package web

import (
	"net/http"

	"github.com/JonMunkholm/ModCompare/internal/core"
)

// CompareResponse is the JSON body of GET /api/compare.
type CompareResponse struct {
	// Empty is true when no known model was selected.
	Empty          bool                       `json:"empty"`
	Identifiers    []string                   `json:"identifiers"`
	Parameters     []string                   `json:"parameters"`
	Rows           []core.MatrixRow           `json:"rows"`
	DivergentCount int                        `json:"divergent_count"`
	Summaries      map[string]core.RowSummary `json:"summaries,omitempty"`
}

func (s *Server) handleListModels(w http.ResponseWriter, r *http.Request) {
	table, err := s.service.Table(r.Context())
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	ids := table.Identifiers()
	writeJSON(w, http.StatusOK, map[string]any{"models": ids, "count": len(ids)})
}

func (s *Server) handleListParameters(w http.ResponseWriter, r *http.Request) {
	table, err := s.service.Table(r.Context())
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	params := table.Parameters()
	writeJSON(w, http.StatusOK, map[string]any{"parameters": params, "count": len(params)})
}

// handleCompare returns the comparison matrix for ?model=..&diff=1.
// An empty effective selection is a normal response with empty=true.
func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	m, ok, err := s.service.Compare(r.Context(), queryList(q, "model"), isTruthy(q.Get("diff")))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	resp := CompareResponse{
		Empty:       !ok,
		Identifiers: m.Identifiers,
		Parameters:  m.Parameters,
		Rows:        m.Rows,
	}
	if resp.Identifiers == nil {
		resp.Identifiers = []string{}
	}
	if resp.Parameters == nil {
		resp.Parameters = []string{}
	}
	if resp.Rows == nil {
		resp.Rows = []core.MatrixRow{}
	}
	if ok {
		resp.DivergentCount = m.DivergentCount()
		resp.Summaries = core.Summaries(m)
	}
	writeJSON(w, http.StatusOK, resp)
}
