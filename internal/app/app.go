// Package app assembles the comparison service and exporter from
// configuration. Both the HTTP server and the CLI start here.
package app

import (
	"context"
	"log/slog"

	"github.com/JonMunkholm/ModCompare/internal/config"
	"github.com/JonMunkholm/ModCompare/internal/core"
	"github.com/JonMunkholm/ModCompare/internal/export"
	"github.com/JonMunkholm/ModCompare/internal/source"
)

// App holds the wired components of a running instance.
type App struct {
	Service *core.Service
	Builder *export.Builder

	closeSource func()
}

// New opens the configured source and builds the service and exporter.
// Callers must call Close when done.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	loadCtx := ctx
	if cfg.Source.LoadTimeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, cfg.Source.LoadTimeout)
		defer cancel()
	}

	src, closeSource, err := source.Open(loadCtx, cfg.Source)
	if err != nil {
		return nil, err
	}

	service := core.NewService(src, core.NewTableCache())
	service.SetLoadTimeout(cfg.Source.LoadTimeout)

	return &App{
		Service:     service,
		Builder:     NewBuilder(cfg.Export),
		closeSource: closeSource,
	}, nil
}

// NewBuilder creates the exporter. PDF export is left out when disabled.
func NewBuilder(cfg config.ExportConfig) *export.Builder {
	limiter := export.NewRenderLimiter(cfg.MaxConcurrentRenders, cfg.RenderWait)
	if !cfg.PDFEnabled {
		slog.Info("pdf export disabled")
		return export.NewBuilder(nil, limiter)
	}
	renderer := export.NewPDFRenderer(export.NewFileTypeface(cfg.FontPaths))
	return export.NewBuilder(renderer, limiter)
}

// Close releases the source.
func (a *App) Close() {
	if a.closeSource != nil {
		a.closeSource()
	}
}
