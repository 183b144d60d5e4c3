// Package core provides the comparison logic for module specification tables.
//
// This package holds all domain logic independent of any UI, file format, or
// transport layer. It can be used by web handlers, the CLI, or tests without
// modification.
//
// # Architecture
//
// Data flows strictly forward through three stages:
//
//	RawTable --Normalize--> CanonicalTable --Pivot--> ComparisonMatrix --export--> Grid
//
//   - Normalization: trims column names, picks the identifier column from
//     [IdentifierCandidates] (falling back to the first column), renames it to
//     [IdentifierColumn], and fills absent cells with [Sentinel].
//   - Comparison: [Pivot] restricts the table to a selection of identifiers and
//     transposes it so parameters become rows. [FilterDivergent] keeps only the
//     rows whose values differ across the selection.
//   - Caching: [TableCache] memoizes canonical tables by source key. It is owned
//     by a [Service] rather than being ambient state, and is only invalidated
//     by an explicit [TableCache.Clear].
//
// A [CanonicalTable] is immutable after construction and may be shared by
// reference between concurrent requests. Everything derived from it is built
// fresh per request.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - SRC001-SRC004: Source errors (missing file, unparseable, empty table)
//   - CMP001-CMP002: Comparison errors (nothing selected)
//   - EXP001-EXP004: Export errors (empty grid, renderer, render failures)
//
// An empty selection is not an error: [Pivot] reports it through its boolean
// result and callers render an empty state.
package core
