package core

// CanonicalTable is a normalized table: trimmed unique column names, the
// identifier column named IdentifierColumn, and no absent cells.
//
// A CanonicalTable is read-only after Normalize returns it. Accessors return
// copies so callers cannot mutate shared state.
type CanonicalTable struct {
	columns []string
	rows    [][]string

	// byID maps an identifier to the index of the last row carrying it.
	byID map[string]int

	// ids holds unique identifiers in first-appearance order.
	ids []string

	origin string
	digest string
}

// Columns returns all column names, identifier column included, in source order.
func (t *CanonicalTable) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Parameters returns every column except the identifier column, in source order.
func (t *CanonicalTable) Parameters() []string {
	params := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		if c != IdentifierColumn {
			params = append(params, c)
		}
	}
	return params
}

// Identifiers returns unique identifier values in order of first appearance.
func (t *CanonicalTable) Identifiers() []string {
	return append([]string(nil), t.ids...)
}

// RowCount returns the number of data rows.
func (t *CanonicalTable) RowCount() int {
	return len(t.rows)
}

// Origin returns where the table was loaded from.
func (t *CanonicalTable) Origin() string { return t.origin }

// Digest returns the content digest of the source, if one was recorded.
func (t *CanonicalTable) Digest() string { return t.digest }

// HasIdentifier reports whether id names a row of the table.
func (t *CanonicalTable) HasIdentifier(id string) bool {
	_, ok := t.byID[id]
	return ok
}

// HasColumn reports whether name is a column of the table.
func (t *CanonicalTable) HasColumn(name string) bool {
	return t.columnIndex(name) >= 0
}

// Value returns the cell for identifier id and column col.
// When several rows share an identifier the last one wins.
// Returns Sentinel and false if either is unknown.
func (t *CanonicalTable) Value(id, col string) (string, bool) {
	ri, ok := t.byID[id]
	if !ok {
		return Sentinel, false
	}
	ci := t.columnIndex(col)
	if ci < 0 {
		return Sentinel, false
	}
	return t.rows[ri][ci], true
}

// Row returns a copy of row i keyed by column name.
func (t *CanonicalTable) Row(i int) map[string]string {
	out := make(map[string]string, len(t.columns))
	for ci, c := range t.columns {
		out[c] = t.rows[i][ci]
	}
	return out
}

func (t *CanonicalTable) columnIndex(name string) int {
	for i, c := range t.columns {
		if c == name {
			return i
		}
	}
	return -1
}
