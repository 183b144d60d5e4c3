package web

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/ModCompare/internal/core"
	"github.com/JonMunkholm/ModCompare/internal/export"
	"github.com/JonMunkholm/ModCompare/internal/logging"
	"github.com/JonMunkholm/ModCompare/internal/web/templates"
)

// handleComparePage renders the model PK page. The first visit selects the
// first two models.
func (s *Server) handleComparePage(w http.ResponseWriter, r *http.Request) {
	table, err := s.service.Table(r.Context())
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	q := r.URL.Query()
	selected := queryList(q, "model")
	if len(selected) == 0 && !submitted(q) {
		selected = firstN(table.Identifiers(), defaultCompareModels)
	}
	hideSame := isTruthy(q.Get("diff"))

	m, ok, err := s.service.Compare(r.Context(), selected, hideSame)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	view := templates.CompareView{
		Models:    table.Identifiers(),
		Selected:  selected,
		HideSame:  hideSame,
		Empty:     !ok,
		Matrix:    m,
		CanRender: s.builder.CanRender(),
	}
	if ok {
		view.Summaries = core.Summaries(m)
		view.ExportQuery = compareQuery(m.Identifiers, hideSame)
	}

	s.render(w, r, templates.ComparePage(view))
}

// handleCustomPage renders the parameter filter page. The first visit
// selects the first five parameters and first three models.
func (s *Server) handleCustomPage(w http.ResponseWriter, r *http.Request) {
	table, err := s.service.Table(r.Context())
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	q := r.URL.Query()
	params := queryList(q, "param")
	models := queryList(q, "model")
	if !submitted(q) {
		if len(params) == 0 {
			params = firstN(table.Parameters(), defaultCustomParams)
		}
		if len(models) == 0 {
			models = firstN(table.Identifiers(), defaultCustomModels)
		}
	}

	view := templates.CustomView{
		Models:         table.Identifiers(),
		Parameters:     table.Parameters(),
		SelectedModels: models,
		SelectedParams: params,
		CanRender:      s.builder.CanRender(),
	}

	effParams := export.EffectiveParameters(table, params)
	effModels := core.EffectiveSelection(table, models)
	if len(effParams) == 0 || len(effModels) == 0 {
		view.Incomplete = true
	} else {
		g, err := export.FromTable(table, effParams, effModels)
		if err != nil {
			respondError(w, r, err, statusFor(err))
			return
		}
		view.Grid = g
		view.ExportQuery = customQuery(effParams, effModels)
	}

	s.render(w, r, templates.CustomPage(view))
}

// render writes an HTML component.
func (s *Server) render(w http.ResponseWriter, r *http.Request, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render page", "path", r.URL.Path, "error", err)
	}
}
