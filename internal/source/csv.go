package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"

	"github.com/JonMunkholm/ModCompare/internal/core"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}

	errNoHeader = errors.New("no header row")
)

// ParseCSV parses delimited text into a raw table. The first record is the
// header. Input may be UTF-8 (with or without BOM) or GB18030; anything that is
// not valid UTF-8 is decoded as GB18030.
//
// Empty fields become absent cells. Rows may be shorter than the header;
// longer rows are rejected by core.Normalize.
func ParseCSV(data []byte, origin string) (core.RawTable, error) {
	text, err := decodeText(data)
	if err != nil {
		return core.RawTable{}, core.NewDataLoadError(origin, err)
	}

	r := csv.NewReader(bytes.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return core.RawTable{}, core.NewDataLoadError(origin, err)
	}
	if len(records) == 0 {
		return core.RawTable{}, core.NewDataLoadError(origin, errNoHeader)
	}

	return rawFromRecords(records, origin), nil
}

// decodeText strips a UTF-8 BOM or transcodes GB18030 to UTF-8.
func decodeText(data []byte) ([]byte, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		return data[len(utf8BOM):], nil
	}
	if utf8.Valid(data) {
		return data, nil
	}
	out, _, err := transform.Bytes(simplifiedchinese.GB18030.NewDecoder(), data)
	return out, err
}

// rawFromRecords turns string records into a raw table, header first.
func rawFromRecords(records [][]string, origin string) core.RawTable {
	raw := core.RawTable{
		Columns: records[0],
		Rows:    make([]core.RawRow, 0, len(records)-1),
		Origin:  origin,
	}
	for _, rec := range records[1:] {
		if isBlank(rec) {
			continue
		}
		row := make(core.RawRow, len(rec))
		for i, field := range rec {
			row[i] = core.FieldCell(field)
		}
		raw.Rows = append(raw.Rows, row)
	}
	return raw
}

// isBlank reports whether every field of rec is empty.
func isBlank(rec []string) bool {
	for _, f := range rec {
		if f != "" {
			return false
		}
	}
	return true
}
