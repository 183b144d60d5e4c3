package source

import (
	"bytes"
	"errors"

	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/ModCompare/internal/core"
)

var errNoSheet = errors.New("workbook has no sheets")

// ParseXLSX reads the first sheet of a workbook into a raw table.
// Trailing empty cells, which excelize omits, become absent cells.
func ParseXLSX(data []byte, origin string) (core.RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return core.RawTable{}, core.NewDataLoadError(origin, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return core.RawTable{}, core.NewDataLoadError(origin, errNoSheet)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return core.RawTable{}, core.NewDataLoadError(origin, err)
	}
	if len(rows) == 0 {
		return core.RawTable{}, core.NewDataLoadError(origin, errNoHeader)
	}

	return rawFromRecords(rows, origin), nil
}
