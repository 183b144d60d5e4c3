package export

import (
	"bufio"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

var (
	markdownEscaper = strings.NewReplacer("|", `\|`, "\r\n", "<br>", "\n", "<br>", "\r", "<br>")
	textFlattener   = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
)

// WriteMarkdown writes g as a GitHub-flavoured Markdown table under a heading.
func WriteMarkdown(w io.Writer, g Grid, title string) error {
	bw := bufio.NewWriter(w)
	if title != "" {
		bw.WriteString("# " + textFlattener.Replace(title) + "\n\n")
	}

	writeRow := func(cells []string) {
		bw.WriteString("|")
		for i := 0; i < g.Width(); i++ {
			cell := ""
			if i < len(cells) {
				cell = markdownEscaper.Replace(cells[i])
			}
			bw.WriteString(" " + cell + " |")
		}
		bw.WriteString("\n")
	}

	writeRow(g.Header)
	bw.WriteString("|" + strings.Repeat(" --- |", g.Width()) + "\n")
	for _, row := range g.Body {
		writeRow(row)
	}
	return bw.Flush()
}

// WriteText writes g as a fixed-width table aligned by display width, so
// full-width characters line up in a terminal.
func WriteText(w io.Writer, g Grid, title string) error {
	widths := make([]int, g.Width())
	flat := make([][]string, 0, len(g.Body)+1)
	for _, record := range g.Records() {
		row := make([]string, g.Width())
		for i := range row {
			if i < len(record) {
				row[i] = textFlattener.Replace(record[i])
			}
			widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
		}
		flat = append(flat, row)
	}

	bw := bufio.NewWriter(w)
	if title != "" {
		bw.WriteString(textFlattener.Replace(title) + "\n\n")
	}

	rule := func() {
		bw.WriteString("+")
		for _, n := range widths {
			bw.WriteString(strings.Repeat("-", n+2) + "+")
		}
		bw.WriteString("\n")
	}

	rule()
	for i, row := range flat {
		bw.WriteString("|")
		for j, cell := range row {
			bw.WriteString(" " + runewidth.FillRight(cell, widths[j]) + " |")
		}
		bw.WriteString("\n")
		if i == 0 {
			rule()
		}
	}
	rule()
	return bw.Flush()
}
