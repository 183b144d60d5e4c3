package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Normalize converts a raw table into a CanonicalTable.
//
// Column names are trimmed and made unique, the identifier column is chosen
// from IdentifierCandidates (first column if none match) and renamed to
// IdentifierColumn, and absent cells become Sentinel. The raw table is not
// modified.
//
// Returns ErrEmptyTable if the table has no columns, and a DataLoadError if a
// row has more fields than there are columns.
func Normalize(raw RawTable) (*CanonicalTable, error) {
	if len(raw.Columns) == 0 {
		return nil, ErrEmptyTable
	}

	trimmed := make([]string, len(raw.Columns))
	for i, c := range raw.Columns {
		trimmed[i] = strings.TrimSpace(c)
	}

	idIdx := identifierIndex(trimmed)
	trimmed[idIdx] = IdentifierColumn
	columns := uniqueColumns(trimmed, idIdx)

	t := &CanonicalTable{
		columns: columns,
		rows:    make([][]string, 0, len(raw.Rows)),
		byID:    make(map[string]int, len(raw.Rows)),
		origin:  raw.Origin,
		digest:  raw.Digest,
	}

	for i, rawRow := range raw.Rows {
		if len(rawRow) > len(columns) {
			return nil, NewDataLoadError(raw.Origin,
				fmt.Errorf("row %d has %d fields, expected %d", i+1, len(rawRow), len(columns)))
		}

		row := make([]string, len(columns))
		for ci := range columns {
			row[ci] = Sentinel
			if ci < len(rawRow) && rawRow[ci].Valid {
				row[ci] = rawRow[ci].String
			}
		}

		id := row[idIdx]
		if _, seen := t.byID[id]; !seen {
			t.ids = append(t.ids, id)
		}
		t.byID[id] = len(t.rows)
		t.rows = append(t.rows, row)
	}

	return t, nil
}

// identifierIndex returns the position of the identifier column.
func identifierIndex(columns []string) int {
	for _, candidate := range IdentifierCandidates {
		for i, c := range columns {
			if c == candidate {
				return i
			}
		}
	}
	return 0
}

// uniqueColumns suffixes repeated names with ".1", ".2", ... so every column
// can be addressed by name. The column at keep always retains its name.
func uniqueColumns(columns []string, keep int) []string {
	out := make([]string, len(columns))
	used := map[string]bool{columns[keep]: true}
	out[keep] = columns[keep]

	for i, c := range columns {
		if i == keep {
			continue
		}
		name := c
		for n := 1; used[name]; n++ {
			name = c + "." + strconv.Itoa(n)
		}
		used[name] = true
		out[i] = name
	}
	return out
}
