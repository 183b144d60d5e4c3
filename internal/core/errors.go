package core

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound is returned when no data file can be discovered.
	ErrSourceNotFound = errors.New("source not found: no data file")

	// ErrEmptyTable is returned when a raw table has zero columns.
	ErrEmptyTable = errors.New("empty table: no columns")

	// ErrEmptyGrid is returned when an export would have no value columns.
	ErrEmptyGrid = errors.New("empty grid: no columns to export")

	// ErrRendererUnavailable is returned when document export is disabled or
	// the renderer is not configured. Delimited-text export still works.
	ErrRendererUnavailable = errors.New("document renderer unavailable")

	// ErrUnknownFormat is returned for export formats that are not supported.
	ErrUnknownFormat = errors.New("unknown export format")

	// ErrNoModelsSelected is returned when an export has no known model to
	// show. Views treat the same condition as an empty state instead.
	ErrNoModelsSelected = errors.New("no models selected")

	// ErrNoParametersSelected is returned when a flat export has no known
	// parameter.
	ErrNoParametersSelected = errors.New("no parameters selected")
)

// DataLoadError reports a source that could not be read or parsed into a
// rectangular table.
type DataLoadError struct {
	Origin string
	Err    error
}

func (e *DataLoadError) Error() string {
	if e.Origin == "" {
		return fmt.Sprintf("data load failed: %v", e.Err)
	}
	return fmt.Sprintf("data load failed for %s: %v", e.Origin, e.Err)
}

func (e *DataLoadError) Unwrap() error {
	return e.Err
}

// NewDataLoadError wraps err as a DataLoadError for origin.
// Returns nil if err is nil.
func NewDataLoadError(origin string, err error) error {
	if err == nil {
		return nil
	}
	return &DataLoadError{Origin: origin, Err: err}
}

// RenderError reports a document that could not be built. It is scoped to a
// single export and never invalidates the displayed comparison.
type RenderError struct {
	Title string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render failed for %q: %v", e.Title, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// IsExportError reports whether err belongs to the export stage and should be
// shown as "use CSV instead" rather than aborting the page.
func IsExportError(err error) bool {
	var re *RenderError
	return errors.Is(err, ErrEmptyGrid) ||
		errors.Is(err, ErrRendererUnavailable) ||
		errors.As(err, &re)
}
