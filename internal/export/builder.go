package export

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/JonMunkholm/ModCompare/internal/core"
)

// Builder serializes grids to the supported formats.
// Document export goes through the renderer and is bounded by the limiter.
type Builder struct {
	renderer Renderer
	limiter  *RenderLimiter
}

// NewBuilder creates a builder. A nil renderer disables PDF export; a nil
// limiter leaves renders unbounded.
func NewBuilder(renderer Renderer, limiter *RenderLimiter) *Builder {
	return &Builder{renderer: renderer, limiter: limiter}
}

// CanRender reports whether PDF export is available.
func (b *Builder) CanRender() bool {
	return b.renderer != nil
}

// Limiter returns the render limiter, which may be nil.
func (b *Builder) Limiter() *RenderLimiter {
	return b.limiter
}

// Write serializes g in format f to w. The title is used by formats that
// carry one; CSV ignores it.
//
// Errors from document rendering are core.ErrRendererUnavailable or a
// *core.RenderError; nothing is written to w in that case.
func (b *Builder) Write(ctx context.Context, w io.Writer, g Grid, f Format, title string) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if g.Width() == 0 {
		return fmt.Errorf("%s export: %w", f, core.ErrEmptyGrid)
	}

	switch f {
	case FormatPDF:
		doc, err := b.RenderPDF(ctx, g, title)
		if err != nil {
			return err
		}
		_, err = w.Write(doc)
		return err
	case FormatXLSX:
		return WriteXLSX(w, g, title)
	case FormatYAML:
		return WriteYAML(w, g, title)
	case FormatMarkdown:
		return WriteMarkdown(w, g, title)
	case FormatText:
		return WriteText(w, g, title)
	case FormatHTML:
		return WriteHTML(w, g, title)
	default:
		return WriteCSV(w, g)
	}
}

// RenderPDF sanitizes g and hands it to the renderer.
func (b *Builder) RenderPDF(ctx context.Context, g Grid, title string) ([]byte, error) {
	if b.renderer == nil {
		return nil, core.ErrRendererUnavailable
	}
	if _, err := ColumnWidths(g, AvailableWidth); err != nil {
		return nil, err
	}

	if b.limiter != nil {
		if err := b.limiter.Acquire(ctx); err != nil {
			return nil, err
		}
		defer b.limiter.Release()
	}

	clean := SanitizeGrid(g)
	doc, err := b.renderer.RenderTable(clean.Header, clean.Body, SanitizeCell(title))
	if err != nil {
		return nil, &core.RenderError{Title: title, Err: err}
	}
	return doc, nil
}

// Bytes is a convenience wrapper around Write.
func (b *Builder) Bytes(ctx context.Context, g Grid, f Format, title string) ([]byte, error) {
	var buf bytes.Buffer
	if err := b.Write(ctx, &buf, g, f, title); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
