package core

// Pivot restricts t to the identifiers in selection and transposes it:
// every parameter column becomes a row, every selected identifier a column.
//
// Unknown identifiers are dropped silently and repeated ones keep their first
// position, so the columns are exactly the selection's known identifiers in
// first-appearance order. Parameter rows follow table column order. Each row
// carries its divergence flag.
//
// The boolean result is false when nothing in selection exists in t; the
// returned matrix is then empty and callers should show an empty state.
func Pivot(t *CanonicalTable, selection []string) (ComparisonMatrix, bool) {
	ids := EffectiveSelection(t, selection)
	if len(ids) == 0 {
		return ComparisonMatrix{}, false
	}

	params := t.Parameters()
	m := ComparisonMatrix{
		Identifiers: ids,
		Parameters:  params,
		Rows:        make([]MatrixRow, 0, len(params)),
	}

	for _, p := range params {
		values := make([]string, len(ids))
		for i, id := range ids {
			values[i], _ = t.Value(id, p)
		}
		m.Rows = append(m.Rows, MatrixRow{
			Parameter: p,
			Values:    values,
			Divergent: Divergent(values),
		})
	}

	return m, true
}

// EffectiveSelection returns the identifiers of selection present in t,
// deduplicated, in first-appearance order.
func EffectiveSelection(t *CanonicalTable, selection []string) []string {
	seen := make(map[string]bool, len(selection))
	ids := make([]string, 0, len(selection))
	for _, id := range selection {
		if seen[id] || !t.HasIdentifier(id) {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids
}

// FilterDivergent returns a copy of m keeping only rows with more than one
// distinct value. Values are compared as exact strings, so Sentinel counts
// as a value of its own. Applying it twice gives the same result as once.
func FilterDivergent(m ComparisonMatrix) ComparisonMatrix {
	out := ComparisonMatrix{
		Identifiers: m.Identifiers,
		Parameters:  m.Parameters,
		Rows:        make([]MatrixRow, 0, len(m.Rows)),
	}
	for _, row := range m.Rows {
		if Divergent(row.Values) {
			out.Rows = append(out.Rows, row)
		}
	}
	return out
}

// Divergent reports whether values holds at least two distinct strings.
func Divergent(values []string) bool {
	for i := 1; i < len(values); i++ {
		if values[i] != values[0] {
			return true
		}
	}
	return false
}
