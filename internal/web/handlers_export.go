package web

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/JonMunkholm/ModCompare/internal/core"
	"github.com/JonMunkholm/ModCompare/internal/export"
	"github.com/JonMunkholm/ModCompare/internal/logging"
)

// Document titles and download names.
const (
	CompareTitle = "模组参数对比报告"
	CustomTitle  = "自定义参数选型表"

	compareFileBase = "comparison_result"
	compareReport   = "comparison_report"
	customFileBase  = "custom_selection"
)

// ExportIDHeader carries the export_id also written to the logs.
const ExportIDHeader = "X-Export-ID"

// CompareFilename returns the download name for a comparison export.
func CompareFilename(f export.Format) string {
	if f == export.FormatPDF {
		return compareReport + ".pdf"
	}
	return compareFileBase + "." + f.Extension()
}

// CustomFilename returns the download name for a flat export.
func CustomFilename(f export.Format) string {
	return customFileBase + "." + f.Extension()
}

// handleExportCompare serves GET /api/export/compare.{format}?model=..&diff=1.
func (s *Server) handleExportCompare(w http.ResponseWriter, r *http.Request) {
	f := export.NormalizeFormat(chi.URLParam(r, "format"))
	if err := f.Validate(); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	q := r.URL.Query()
	m, ok, err := s.service.Compare(r.Context(), queryList(q, "model"), isTruthy(q.Get("diff")))
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	if !ok {
		respondError(w, r, core.ErrNoModelsSelected, statusFor(core.ErrNoModelsSelected))
		return
	}

	g, err := export.FromMatrix(m)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	s.serveExport(w, r, g, f, CompareTitle, CompareFilename(f))
}

// handleExportCustom serves GET /api/export/custom.{format}?param=..&model=..
func (s *Server) handleExportCustom(w http.ResponseWriter, r *http.Request) {
	f := export.NormalizeFormat(chi.URLParam(r, "format"))
	if err := f.Validate(); err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	table, err := s.service.Table(r.Context())
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}

	q := r.URL.Query()
	params := queryList(q, "param")
	models := queryList(q, "model")
	if len(params) == 0 {
		respondError(w, r, core.ErrNoParametersSelected, statusFor(core.ErrNoParametersSelected))
		return
	}
	if len(core.EffectiveSelection(table, models)) == 0 {
		respondError(w, r, core.ErrNoModelsSelected, statusFor(core.ErrNoModelsSelected))
		return
	}

	g, err := export.FromTable(table, params, models)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	s.serveExport(w, r, g, f, CustomTitle, CustomFilename(f))
}

// serveExport serializes g fully before writing headers, so a failed render
// returns a clean error response instead of a truncated download.
func (s *Server) serveExport(w http.ResponseWriter, r *http.Request, g export.Grid, f export.Format, title, filename string) {
	exportID := uuid.NewString()
	log := logging.WithFields(r.Context(), "export_id", exportID, "format", string(f))
	start := time.Now()

	var buf bytes.Buffer
	if err := s.builder.Write(r.Context(), &buf, g, f, title); err != nil {
		log.Warn("export failed", "error", err, "export_error", core.IsExportError(err))
		w.Header().Set(ExportIDHeader, exportID)
		respondError(w, r, err, statusFor(err))
		return
	}

	log.Info("export completed",
		"rows", len(g.Body),
		"columns", g.Width(),
		"bytes", buf.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set(ExportIDHeader, exportID)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
