package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/JonMunkholm/ModCompare/internal/export"
)

// CustomView is the data for the parameter filter page.
type CustomView struct {
	Models     []string
	Parameters []string

	SelectedModels []string
	SelectedParams []string

	// Incomplete is set when no known parameter or no known model is selected.
	Incomplete bool
	Grid       export.Grid

	CanRender   bool
	ExportQuery string
}

// CustomPage renders the parameter filter page.
func CustomPage(v CustomView) templ.Component {
	return Layout("参数筛选", NavCustom, customBody(v))
}

func customBody(v CustomView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}

		p.raw(`<h3>自定义报表生成器</h3>`)
		p.raw(`<div class="alert alert-info">在此模式下，您可以指定只需查看的参数列，生成精简的对比表。</div>`)
		p.raw(`<form class="controls" method="get" action="/custom">`)
		p.rawf(`<input type="hidden" name="%s" value="1">`, SubmittedField)
		p.raw(`<label>Step 1: 选择您关心的参数维度<br>`)
		multiSelect(p, "param", v.Parameters, v.SelectedParams)
		p.raw(`</label><label>Step 2: 选择包含的型号<br>`)
		multiSelect(p, "model", v.Models, v.SelectedModels)
		p.raw(`</label><button type="submit">生成</button></form>`)

		if !v.CanRender {
			rendererWarning(p)
		}

		if v.Incomplete {
			p.raw(`<div class="alert alert-warning">请在上方完成参数和型号的选择。</div>`)
			return p.err
		}

		p.raw(`<h3>筛选结果</h3>`)
		gridTable(p, v.Grid)

		p.raw(`<h4>导出当前视图</h4><div class="downloads">`)
		downloadLink(p, "/api/export/custom.csv?"+v.ExportQuery, "下载 CSV", false)
		if v.CanRender {
			downloadLink(p, "/api/export/custom.pdf?"+v.ExportQuery, "下载 PDF", false)
		} else {
			p.raw(`<span class="disabled">PDF 不可用</span>`)
		}
		downloadLink(p, "/api/export/custom.xlsx?"+v.ExportQuery, "XLSX", true)
		p.raw(`</div>`)
		return p.err
	})
}

func gridTable(p *page, g export.Grid) {
	p.raw(`<table class="grid"><thead><tr>`)
	for _, h := range g.Header {
		p.rawf(`<th>%s</th>`, esc(h))
	}
	p.raw(`</tr></thead><tbody>`)
	for _, row := range g.Body {
		p.raw(`<tr>`)
		for _, cell := range row {
			p.rawf(`<td>%s</td>`, esc(cell))
		}
		p.raw(`</tr>`)
	}
	p.raw(`</tbody></table>`)
}
