package export

import (
	"fmt"

	"github.com/JonMunkholm/ModCompare/internal/core"
)

// Page geometry in points for landscape A4.
const (
	PageWidth    = 841.89
	PageHeight   = 595.28
	MarginLeft   = 30.0
	MarginRight  = 30.0
	MarginTop    = 30.0
	MarginBottom = 18.0
)

// AvailableWidth is the printable width between the side margins.
const AvailableWidth = PageWidth - MarginLeft - MarginRight

// ColumnWidths divides width evenly across the columns of g.
// Returns core.ErrEmptyGrid for a grid without columns.
func ColumnWidths(g Grid, width float64) ([]float64, error) {
	n := g.Width()
	if n == 0 {
		return nil, fmt.Errorf("column widths: %w", core.ErrEmptyGrid)
	}
	widths := make([]float64, n)
	for i := range widths {
		widths[i] = width / float64(n)
	}
	return widths, nil
}
