package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/ModCompare/internal/core"
	"github.com/JonMunkholm/ModCompare/internal/export"
)

// SubmittedField marks a query produced by one of the page forms, so an empty
// selection is not mistaken for a first visit.
const SubmittedField = "submitted"

// CompareView is the data for the model PK page.
type CompareView struct {
	Models   []string
	Selected []string
	HideSame bool

	// Empty is set when no known model is selected.
	Empty     bool
	Matrix    core.ComparisonMatrix
	Summaries map[string]core.RowSummary

	CanRender bool
	// ExportQuery is the encoded query string shared by the download links.
	ExportQuery string
}

// ComparePage renders the model comparison page.
func ComparePage(v CompareView) templ.Component {
	return Layout("型号 PK", NavCompare, compareBody(v))
}

func compareBody(v CompareView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}

		p.raw(`<form class="controls" method="get" action="/">`)
		p.rawf(`<input type="hidden" name="%s" value="1">`, SubmittedField)
		p.raw(`<label>请选择参与对比的型号:<br>`)
		multiSelect(p, "model", v.Models, v.Selected)
		p.raw(`</label><label><input type="checkbox" name="diff" value="1"`)
		if v.HideSame {
			p.raw(` checked`)
		}
		p.raw(`> 隐藏相同项</label><button type="submit">对比</button></form>`)

		if !v.CanRender {
			rendererWarning(p)
		}

		if v.Empty {
			p.raw(`<div class="alert alert-info">请至少选择一个型号开始对比。</div>`)
			return p.err
		}

		p.rawf(`<h3>对比详情 (%d 项参数)</h3>`, len(v.Matrix.Rows))
		if len(v.Matrix.Rows) == 0 {
			p.raw(`<div class="alert alert-info">所选型号的全部参数均相同。</div>`)
		} else {
			matrixTable(p, v.Matrix, v.Summaries)
		}

		p.raw(`<h3>导出数据</h3><div class="downloads">`)
		downloadLink(p, "/api/export/compare.csv?"+v.ExportQuery, "下载 CSV", false)
		if v.CanRender {
			downloadLink(p, "/api/export/compare.pdf?"+v.ExportQuery, "下载 PDF 报告", false)
		} else {
			p.raw(`<span class="disabled">PDF 不可用</span>`)
		}
		downloadLink(p, "/api/export/compare.xlsx?"+v.ExportQuery, "XLSX", true)
		downloadLink(p, "/api/export/compare.md?"+v.ExportQuery, "Markdown", true)
		downloadLink(p, "/api/export/compare.html?"+v.ExportQuery, "HTML", true)
		p.raw(`</div>`)
		return p.err
	})
}

func matrixTable(p *page, m core.ComparisonMatrix, summaries map[string]core.RowSummary) {
	p.raw(`<table class="grid"><thead><tr>`)
	p.rawf(`<th>%s</th>`, esc(export.ParameterLabel))
	for _, id := range m.Identifiers {
		p.rawf(`<th>%s</th>`, esc(id))
	}
	p.raw(`</tr></thead><tbody>`)

	for _, row := range m.Rows {
		if row.Divergent {
			p.raw(`<tr class="divergent">`)
		} else {
			p.raw(`<tr>`)
		}
		p.raw(`<td>`)
		p.text(row.Parameter)
		if s, ok := summaries[row.Parameter]; ok {
			p.rawf(`<div class="summary">%s ~ %s, Δ %s</div>`,
				formatFloat(s.Min), formatFloat(s.Max), formatFloat(s.Spread))
		}
		p.raw(`</td>`)
		for _, value := range row.Values {
			p.rawf(`<td>%s</td>`, esc(value))
		}
		p.raw(`</tr>`)
	}
	p.raw(`</tbody></table>`)
}

func multiSelect(p *page, name string, options, selected []string) {
	chosen := make(map[string]bool, len(selected))
	for _, s := range selected {
		chosen[s] = true
	}

	p.rawf(`<select name="%s" multiple>`, esc(name))
	for _, opt := range options {
		sel := ""
		if chosen[opt] {
			sel = " selected"
		}
		p.rawf(`<option value="%s"%s>%s</option>`, esc(opt), sel, esc(opt))
	}
	p.raw(`</select>`)
}

func downloadLink(p *page, href, label string, secondary bool) {
	class := ""
	if secondary {
		class = ` class="secondary"`
	}
	p.rawf(`<a href="%s"%s>%s</a>`, esc(href), class, esc(label))
}

func rendererWarning(p *page) {
	p.raw(`<div class="alert alert-warning">提示: PDF 导出功能不可用，请使用 CSV 下载。</div>`)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', 6, 64)
}
