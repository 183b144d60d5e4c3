package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Nav entries.
const (
	NavCompare = "compare"
	NavCustom  = "custom"
)

const styles = `
body{font-family:-apple-system,"Segoe UI","PingFang SC","Microsoft YaHei",sans-serif;margin:0;background:#f5f7fa;color:#1f2933}
.main-header{background:linear-gradient(90deg,#0062E6,#33AEFF);color:#fff;padding:1.2rem 2rem}
.main-header h1{margin:0;font-size:1.6rem}.main-header p{margin:.3rem 0 0;opacity:.85}
nav{display:flex;gap:1rem;padding:.6rem 2rem;background:#fff;border-bottom:1px solid #e4e7eb}
nav a{color:#3e4c59;text-decoration:none;padding:.3rem .6rem;border-radius:4px}
nav a.active{background:#0062E6;color:#fff}
main{padding:1.5rem 2rem}
form.controls{display:flex;flex-wrap:wrap;gap:1.5rem;align-items:flex-end;margin-bottom:1rem}
select[multiple]{min-width:16rem;min-height:8rem}
table.grid{border-collapse:collapse;background:#fff;width:100%}
table.grid th,table.grid td{border:1px solid #cbd2d9;padding:.35rem .6rem;text-align:center;white-space:pre-wrap}
table.grid th{background:#0062E6;color:whitesmoke}
tr.divergent td{background:#fffbe6;color:#5c3a00;font-weight:bold}
.summary{font-weight:normal;color:#7b8794;font-size:.8em}
.alert{padding:.75rem 1rem;border-radius:4px;margin:1rem 0}
.alert-warning{background:#fff8e1;border:1px solid #ffe08a}
.alert-info{background:#e8f4fd;border:1px solid #b3dcf7}
.alert-error{background:#fdecea;border:1px solid #f5b7b1}
.downloads a{display:inline-block;margin-right:.6rem;padding:.4rem .8rem;background:#0062E6;color:#fff;border-radius:4px;text-decoration:none}
.downloads a.secondary{background:#52606d}
.downloads span.disabled{display:inline-block;margin-right:.6rem;padding:.4rem .8rem;background:#cbd2d9;color:#52606d;border-radius:4px}
`

// Layout wraps body in the page chrome.
func Layout(title, active string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<!DOCTYPE html><html lang="zh-CN"><head><meta charset="utf-8">`)
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.rawf(`<title>%s</title><style>%s</style></head><body>`, esc(title), styles)
		p.raw(`<div class="main-header"><h1>智能模组参数对比系统</h1><p>差异高亮 · 智能筛选 · 报告导出</p></div>`)

		p.raw(`<nav>`)
		navLink(p, "/", "型号 PK (差异高亮)", active == NavCompare)
		navLink(p, "/custom", "参数筛选", active == NavCustom)
		p.raw(`</nav><main>`)
		if p.err != nil {
			return p.err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		p.raw(`</main></body></html>`)
		return p.err
	})
}

func navLink(p *page, href, label string, active bool) {
	class := ""
	if active {
		class = ` class="active"`
	}
	p.rawf(`<a href="%s"%s>%s</a>`, esc(href), class, esc(label))
}

// ErrorAlert renders an inline error with a suggested action and code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		p.raw(`<div class="alert alert-error" role="alert"><strong>`)
		p.text(message)
		p.raw(`</strong>`)
		if action != "" {
			p.raw(`<div>`)
			p.text(action)
			p.raw(`</div>`)
		}
		if code != "" {
			p.rawf(`<small>(%s)</small>`, esc(code))
		}
		p.raw(`</div>`)
		return p.err
	})
}

// ErrorPage renders ErrorAlert inside the layout.
func ErrorPage(active, message, action, code string) templ.Component {
	return Layout("错误", active, ErrorAlert(message, action, code))
}
