// Package export turns comparison results into cell grids and serializes them
// as CSV, PDF, XLSX, YAML, Markdown, HTML, or plain text tables.
package export

import (
	"fmt"

	"github.com/JonMunkholm/ModCompare/internal/core"
)

// ParameterLabel heads the first column of a transposed comparison grid.
const ParameterLabel = "参数项"

// Grid is a header row plus body rows of display strings.
type Grid struct {
	Header []string   `yaml:"header" json:"header"`
	Body   [][]string `yaml:"rows" json:"rows"`
}

// Width returns the number of columns.
func (g Grid) Width() int {
	return len(g.Header)
}

// Records returns the header followed by the body, as written to CSV.
func (g Grid) Records() [][]string {
	out := make([][]string, 0, len(g.Body)+1)
	out = append(out, g.Header)
	return append(out, g.Body...)
}

// FromMatrix builds the transposed grid: ParameterLabel followed by the
// selected identifiers, then one row per parameter.
//
// Returns core.ErrEmptyGrid when the matrix has no identifiers or the source
// table had no parameter columns. A matrix whose rows were all filtered out
// still exports as a header-only grid.
func FromMatrix(m core.ComparisonMatrix) (Grid, error) {
	if len(m.Identifiers) == 0 || len(m.Parameters) == 0 {
		return Grid{}, fmt.Errorf("transposed grid: %w", core.ErrEmptyGrid)
	}

	g := Grid{
		Header: append([]string{ParameterLabel}, m.Identifiers...),
		Body:   make([][]string, 0, len(m.Rows)),
	}
	for _, row := range m.Rows {
		g.Body = append(g.Body, append([]string{row.Parameter}, row.Values...))
	}
	return g, nil
}

// FromTable builds the flat grid: IdentifierColumn followed by params, then
// one row per selected model in selection order.
//
// Unknown parameters and models are dropped like unknown identifiers in
// core.Pivot. Returns core.ErrEmptyGrid when no known parameter remains.
func FromTable(t *core.CanonicalTable, params, models []string) (Grid, error) {
	cols := EffectiveParameters(t, params)
	if len(cols) == 0 {
		return Grid{}, fmt.Errorf("flat grid: %w", core.ErrEmptyGrid)
	}

	ids := core.EffectiveSelection(t, models)
	g := Grid{
		Header: append([]string{core.IdentifierColumn}, cols...),
		Body:   make([][]string, 0, len(ids)),
	}
	for _, id := range ids {
		row := make([]string, 0, len(cols)+1)
		row = append(row, id)
		for _, c := range cols {
			v, _ := t.Value(id, c)
			row = append(row, v)
		}
		g.Body = append(g.Body, row)
	}
	return g, nil
}

// EffectiveParameters returns the known, non-identifier parameters of params,
// deduplicated, in the order given.
func EffectiveParameters(t *core.CanonicalTable, params []string) []string {
	seen := make(map[string]bool, len(params))
	out := make([]string, 0, len(params))
	for _, p := range params {
		if seen[p] || p == core.IdentifierColumn || !t.HasColumn(p) {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
