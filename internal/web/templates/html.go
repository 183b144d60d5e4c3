// Package templates renders the comparison pages as templ components.
package templates

import (
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// page accumulates HTML output and remembers the first write error.
type page struct {
	w   io.Writer
	err error
}

// raw writes trusted markup.
func (p *page) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

// rawf writes trusted markup built from a format string. Arguments are not
// escaped; wrap user values with esc.
func (p *page) rawf(format string, args ...any) {
	p.raw(fmt.Sprintf(format, args...))
}

// text writes escaped text.
func (p *page) text(s string) {
	p.raw(templ.EscapeString(s))
}

// esc escapes s for use in text or a quoted attribute.
func esc(s string) string {
	return templ.EscapeString(s)
}
