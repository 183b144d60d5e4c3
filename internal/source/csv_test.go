package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/JonMunkholm/ModCompare/internal/core"
)

func cells(row core.RawRow) []string {
	out := make([]string, len(row))
	for i, c := range row {
		if c.Valid {
			out[i] = c.String
		} else {
			out[i] = "<absent>"
		}
	}
	return out
}

func TestParseCSV(t *testing.T) {
	raw, err := ParseCSV([]byte("型号,速率,备注\nM1,10,\"a, b\"\nM2,,\n"), "data.csv")
	require.NoError(t, err)

	assert.Equal(t, []string{"型号", "速率", "备注"}, raw.Columns)
	require.Len(t, raw.Rows, 2)
	assert.Equal(t, []string{"M1", "10", "a, b"}, cells(raw.Rows[0]))
	assert.Equal(t, []string{"M2", "<absent>", "<absent>"}, cells(raw.Rows[1]))
	assert.Equal(t, "data.csv", raw.Origin)
}

func TestParseCSV_NullMarkersAreAbsent(t *testing.T) {
	raw, err := ParseCSV([]byte("型号,A,B,C,D,E\nM1,N/A,NaN,NULL,#N/A, N/A\n"), "data.csv")
	require.NoError(t, err)

	require.Len(t, raw.Rows, 1)
	assert.Equal(t, []string{"M1", "<absent>", "<absent>", "<absent>", "<absent>", " N/A"}, cells(raw.Rows[0]))
}

func TestParseCSV_StripsBOM(t *testing.T) {
	raw, err := ParseCSV(append([]byte{0xEF, 0xBB, 0xBF}, "Model,P\nA,1\n"...), "bom.csv")
	require.NoError(t, err)
	assert.Equal(t, "Model", raw.Columns[0])
}

func TestParseCSV_GB18030(t *testing.T) {
	encoded, err := simplifiedchinese.GB18030.NewEncoder().Bytes([]byte("型号,功耗\nM1,5瓦\n"))
	require.NoError(t, err)

	raw, err := ParseCSV(encoded, "legacy.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"型号", "功耗"}, raw.Columns)
	assert.Equal(t, []string{"M1", "5瓦"}, cells(raw.Rows[0]))
}

func TestParseCSV_RaggedRowsKept(t *testing.T) {
	raw, err := ParseCSV([]byte("Model,P1,P2\nA,1\nB,1,2,3\n"), "ragged.csv")
	require.NoError(t, err)
	assert.Len(t, raw.Rows[0], 2)
	assert.Len(t, raw.Rows[1], 4)

	_, err = core.Normalize(raw)
	var loadErr *core.DataLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestParseCSV_SkipsBlankRecords(t *testing.T) {
	raw, err := ParseCSV([]byte("Model,P\nA,1\n,\nB,2\n"), "blank.csv")
	require.NoError(t, err)
	assert.Len(t, raw.Rows, 2)
}

func TestParseCSV_Empty(t *testing.T) {
	_, err := ParseCSV(nil, "empty.csv")

	var loadErr *core.DataLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "empty.csv", loadErr.Origin)
}
