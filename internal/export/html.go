package export

import (
	"bytes"
	"html"
	"io"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// WriteHTML writes g as a standalone HTML page by rendering the Markdown
// export. Cell text is escaped first, so only the table markup and line
// breaks are HTML.
func WriteHTML(w io.Writer, g Grid, title string) error {
	escaped := Grid{Header: escapeCells(g.Header), Body: make([][]string, len(g.Body))}
	for i, row := range g.Body {
		escaped.Body[i] = escapeCells(row)
	}

	var md bytes.Buffer
	if err := WriteMarkdown(&md, escaped, html.EscapeString(title)); err != nil {
		return err
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Flags: mdhtml.CommonFlags | mdhtml.CompletePage,
		Title: textFlattener.Replace(title),
	})
	_, err := w.Write(markdown.ToHTML(md.Bytes(), p, renderer))
	return err
}

func escapeCells(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = html.EscapeString(c)
	}
	return out
}
