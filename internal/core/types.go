package core

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
)

const (
	// IdentifierColumn is the canonical name of the column naming each model.
	IdentifierColumn = "Model"

	// Sentinel replaces every absent cell in a canonical table.
	Sentinel = "-"
)

// IdentifierCandidates lists the column names checked, in priority order,
// when picking the identifier column of a raw table.
var IdentifierCandidates = []string{"参数 / 型号", "型号", "Model", "Product"}

// Source supplies raw tables to a Service.
// Implementations live in the source package (CSV, XLSX, Postgres).
type Source interface {
	// Key identifies the source for caching, e.g. an absolute file path.
	Key() string

	// Load reads the source into a raw table.
	Load(ctx context.Context) (RawTable, error)
}

// RawRow is one parsed row. Cells with Valid=false are absent.
type RawRow []pgtype.Text

// RawTable is a table as produced by a source, before normalization.
// Rows shorter than Columns are padded with absent cells; longer rows make
// the table non-rectangular and fail normalization.
type RawTable struct {
	Columns []string
	Rows    []RawRow

	// Origin describes where the table came from (file path, table name).
	Origin string

	// Digest is a content digest of the source bytes, if known.
	Digest string
}

// TextCell converts a parsed field to a raw cell.
// Empty fields are absent, matching how delimited text represents nulls.
func TextCell(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// NullMarkers are field values that spreadsheet exports use for a missing
// value. File sources read them as absent cells, like an empty field.
var NullMarkers = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// FieldCell converts a field read from a delimited or spreadsheet file.
// Matching is exact: " N/A" or "na" stay values.
func FieldCell(s string) pgtype.Text {
	if NullMarkers[s] {
		return pgtype.Text{Valid: false}
	}
	return pgtype.Text{String: s, Valid: true}
}

// MatrixRow is one parameter of a comparison, with one value per selected model.
type MatrixRow struct {
	Parameter string   `json:"parameter"`
	Values    []string `json:"values"`
	Divergent bool     `json:"divergent"`
}

// ComparisonMatrix is a transposed view of a canonical table: parameters as
// rows and the selected identifiers as columns.
type ComparisonMatrix struct {
	// Identifiers are the effective selection, in selection order.
	Identifiers []string `json:"identifiers"`

	// Parameters are all parameter columns of the source table, in table order,
	// regardless of any later row filtering.
	Parameters []string `json:"parameters"`

	Rows []MatrixRow `json:"rows"`
}

// DivergentCount returns how many rows have differing values.
func (m ComparisonMatrix) DivergentCount() int {
	n := 0
	for _, row := range m.Rows {
		if row.Divergent {
			n++
		}
	}
	return n
}
