package export

import (
	"html"
	"strings"
)

// LineBreak is the explicit line-break marker understood by document cells.
const LineBreak = "<br/>"

var cellEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\r\n", LineBreak,
	"\n", LineBreak,
	"\r", LineBreak,
)

// SanitizeCell prepares a value for a rich-text document cell: markup
// characters are escaped and newlines become LineBreak. It is only used for
// document rendering, never for delimited text.
func SanitizeCell(s string) string {
	return cellEscaper.Replace(s)
}

// SanitizeGrid returns a copy of g with every cell sanitized.
func SanitizeGrid(g Grid) Grid {
	out := Grid{
		Header: sanitizeRow(g.Header),
		Body:   make([][]string, len(g.Body)),
	}
	for i, row := range g.Body {
		out.Body[i] = sanitizeRow(row)
	}
	return out
}

func sanitizeRow(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = SanitizeCell(c)
	}
	return out
}

// CellLines splits a sanitized cell into its display lines.
func CellLines(cell string) []string {
	parts := strings.Split(cell, LineBreak)
	for i, p := range parts {
		parts[i] = html.UnescapeString(p)
	}
	return parts
}
