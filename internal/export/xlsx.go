package export

import (
	"io"

	"github.com/xuri/excelize/v2"
)

// Excel limits sheet names to 31 characters.
const maxSheetName = 31

// WriteXLSX writes g as a single-sheet workbook with a styled header row.
func WriteXLSX(w io.Writer, g Grid, title string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for r, record := range g.Records() {
		for c, value := range record {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "F5F5F5"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"0062E6"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(g.Width(), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return err
	}

	return f.Write(w)
}

// ReadXLSX reads the first sheet of a workbook written by WriteXLSX.
func ReadXLSX(r io.Reader) (Grid, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Grid{}, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return Grid{}, err
	}
	if len(rows) == 0 {
		return Grid{}, nil
	}
	g := Grid{Header: rows[0], Body: rows[1:]}
	for i, row := range g.Body {
		for len(row) < len(g.Header) {
			row = append(row, "")
		}
		g.Body[i] = row
	}
	return g, nil
}

// sheetName trims title to a valid sheet name.
func sheetName(title string) string {
	if title == "" {
		return "Sheet1"
	}
	clean := make([]rune, 0, maxSheetName)
	for _, r := range title {
		switch r {
		case ':', '\\', '/', '?', '*', '[', ']':
			continue
		}
		clean = append(clean, r)
		if len(clean) == maxSheetName {
			break
		}
	}
	if len(clean) == 0 {
		return "Sheet1"
	}
	return string(clean)
}
