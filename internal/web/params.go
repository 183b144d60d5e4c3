package web

import (
	"net/url"
	"strings"

	"github.com/JonMunkholm/ModCompare/internal/web/templates"
)

// Default selections on first visit.
const (
	defaultCompareModels = 2
	defaultCustomModels  = 3
	defaultCustomParams  = 5
)

// queryList returns the non-empty values of a repeated query parameter,
// verbatim. Identifiers may contain commas or surrounding spaces, so values
// are neither split nor trimmed.
func queryList(q url.Values, name string) []string {
	var out []string
	for _, v := range q[name] {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// isTruthy accepts the checkbox and flag spellings used by the pages and CLI.
func isTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// submitted reports whether q came from a page form rather than a first visit.
func submitted(q url.Values) bool {
	return q.Has(templates.SubmittedField)
}

// firstN returns up to n leading elements of s.
func firstN(s []string, n int) []string {
	if len(s) < n {
		n = len(s)
	}
	return append([]string(nil), s[:n]...)
}

// compareQuery encodes a comparison selection for download links.
func compareQuery(models []string, hideSame bool) string {
	q := url.Values{"model": models}
	if hideSame {
		q.Set("diff", "1")
	}
	return q.Encode()
}

// customQuery encodes a flat selection for download links.
func customQuery(params, models []string) string {
	return url.Values{"param": params, "model": models}.Encode()
}
