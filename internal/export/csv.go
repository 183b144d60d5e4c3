package export

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"io"
)

// utf8BOM lets spreadsheet tools detect UTF-8 when opening the file.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes g as UTF-8 CSV with a byte-order mark.
// Cells are written verbatim; only standard CSV quoting is applied.
func WriteCSV(w io.Writer, g Grid) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(g.Records()); err != nil {
		return err
	}
	return cw.Error()
}

// ReadCSV parses CSV written by WriteCSV back into a grid. Cell values match
// the written grid except that a CRLF inside a cell is read back as LF.
func ReadCSV(r io.Reader) (Grid, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return Grid{}, err
	}
	if len(records) == 0 {
		return Grid{}, nil
	}
	return Grid{Header: records[0], Body: records[1:]}, nil
}
