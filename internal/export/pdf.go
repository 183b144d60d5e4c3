package export

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Renderer produces a document from a sanitized header, body, and title.
// Cells use the markup produced by SanitizeCell.
type Renderer interface {
	RenderTable(header []string, body [][]string, title string) ([]byte, error)
}

// Table styling.
const (
	titleSize       = 18.0
	titleHeight     = 22.0
	titleSpaceAfter = 20.0
	bodySize        = 8.0
	lineHeight      = 10.0
	cellPadding     = 3.0
	headerPadBottom = 12.0
	gridLineWidth   = 0.5
	embeddedFamily  = "CustomCJK"
	fallbackFamily  = "Helvetica"
)

type rgb struct{ r, g, b int }

var (
	titleColor      = rgb{0x00, 0x62, 0xE6}
	headerFill      = rgb{0x00, 0x62, 0xE6}
	headerText      = rgb{245, 245, 245} // whitesmoke
	bodyFill        = rgb{255, 255, 255}
	bodyText        = rgb{0, 0, 0}
	gridColor       = rgb{128, 128, 128}
	errNoTableCells = errors.New("table has no columns")
)

// PDFRenderer draws a landscape A4 report: a title paragraph above one table
// with a coloured header row, equal column widths, and grid lines.
type PDFRenderer struct {
	typeface Typeface
}

// NewPDFRenderer creates a renderer. A nil typeface means Latin-only output.
func NewPDFRenderer(tf Typeface) *PDFRenderer {
	if tf == nil {
		tf = NoTypeface{}
	}
	return &PDFRenderer{typeface: tf}
}

// RenderTable implements Renderer.
//
// If the embedded typeface cannot be loaded the document is rebuilt with the
// Helvetica core font. Non-Latin glyphs may then render as placeholders.
func (p *PDFRenderer) RenderTable(header []string, body [][]string, title string) ([]byte, error) {
	if p.typeface.HasCompatibleTypeface() {
		out, err := renderPDF(header, body, title, p.typeface.Path())
		if err == nil {
			return out, nil
		}
		slog.Warn("pdf render with embedded typeface failed, retrying with fallback",
			"path", p.typeface.Path(),
			"error", err,
		)
	}
	return renderPDF(header, body, title, "")
}

func renderPDF(header []string, body [][]string, title, fontPath string) (out []byte, err error) {
	if len(header) == 0 {
		return nil, errNoTableCells
	}

	// fpdf panics on some malformed input; keep that scoped to this export.
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, fmt.Errorf("pdf panic: %v", r)
		}
	}()

	pdf := fpdf.New("L", "pt", "A4", "")
	pdf.SetMargins(MarginLeft, MarginTop, MarginRight)
	pdf.SetAutoPageBreak(false, MarginBottom)

	family := fallbackFamily
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if fontPath != "" {
		pdf.AddUTF8Font(embeddedFamily, "", fontPath)
		family = embeddedFamily
		tr = func(s string) string { return s }
	}
	if pdf.Err() {
		return nil, pdf.Error()
	}

	pdf.AddPage()

	pdf.SetFont(family, "", titleSize)
	setText(pdf, titleColor)
	pdf.CellFormat(AvailableWidth, titleHeight, tr(strings.Join(CellLines(title), " ")), "", 1, "C", false, 0, "")
	pdf.Ln(titleSpaceAfter)

	widths, err := ColumnWidths(Grid{Header: header}, AvailableWidth)
	if err != nil {
		return nil, err
	}

	t := &tableWriter{pdf: pdf, tr: tr, widths: widths}
	pdf.SetFont(family, "", bodySize)
	pdf.SetLineWidth(gridLineWidth)
	setDraw(pdf, gridColor)

	t.row(header, true)
	for _, cells := range body {
		if t.wouldOverflow(cells) {
			pdf.AddPage()
			t.row(header, true)
		}
		t.row(cells, false)
	}

	if pdf.Err() {
		return nil, pdf.Error()
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type tableWriter struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	widths []float64
}

// layout wraps every cell to its column and returns the lines and row height.
func (t *tableWriter) layout(cells []string, header bool) ([][]string, float64) {
	lines := make([][]string, len(t.widths))
	maxLines := 1
	for i := range t.widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		for _, seg := range CellLines(cell) {
			lines[i] = append(lines[i], t.wrap(seg, t.widths[i]-2*cellPadding)...)
		}
		maxLines = max(maxLines, len(lines[i]))
	}

	h := float64(maxLines)*lineHeight + 2*cellPadding
	if header {
		h += headerPadBottom - cellPadding
	}
	return lines, h
}

func (t *tableWriter) wouldOverflow(cells []string) bool {
	_, h := t.layout(cells, false)
	return t.pdf.GetY()+h > PageHeight-MarginBottom
}

func (t *tableWriter) row(cells []string, header bool) {
	lines, h := t.layout(cells, header)

	fill, text := bodyFill, bodyText
	if header {
		fill, text = headerFill, headerText
	}
	setFill(t.pdf, fill)
	setText(t.pdf, text)

	x, y := MarginLeft, t.pdf.GetY()
	for i, w := range t.widths {
		t.pdf.Rect(x, y, w, h, "FD")

		top := y + (h-float64(len(lines[i]))*lineHeight)/2
		for j, line := range lines[i] {
			t.pdf.SetXY(x, top+float64(j)*lineHeight)
			t.pdf.CellFormat(w, lineHeight, t.tr(line), "", 0, "C", false, 0, "")
		}
		x += w
	}
	t.pdf.SetXY(MarginLeft, y+h)
}

// wrap breaks s into lines no wider than width, preferring spaces.
// Every line holds at least one rune.
func (t *tableWriter) wrap(s string, width float64) []string {
	if s == "" {
		return []string{""}
	}

	measure := func(r []rune) float64 { return t.pdf.GetStringWidth(t.tr(string(r))) }
	runes := []rune(s)
	var lines []string
	for start := 0; start < len(runes); {
		end := start + 1
		for end < len(runes) && measure(runes[start:end+1]) <= width {
			end++
		}
		if end < len(runes) {
			if sp := lastSpace(runes[start:end]); sp > 0 {
				end = start + sp + 1
			}
		}
		lines = append(lines, strings.TrimRight(string(runes[start:end]), " "))
		start = end
	}
	return lines
}

func lastSpace(r []rune) int {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i] == ' ' {
			return i
		}
	}
	return -1
}

func setFill(pdf *fpdf.Fpdf, c rgb) { pdf.SetFillColor(c.r, c.g, c.b) }
func setText(pdf *fpdf.Fpdf, c rgb) { pdf.SetTextColor(c.r, c.g, c.b) }
func setDraw(pdf *fpdf.Fpdf, c rgb) { pdf.SetDrawColor(c.r, c.g, c.b) }
