package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX_ReadBack(t *testing.T) {
	g := Grid{
		Header: []string{ParameterLabel, "M1", "M2"},
		Body: [][]string{
			{"Speed", "10", "20"},
			{"Notes", "-", "a\nb"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, g, "模组参数对比报告"))

	got, err := ReadXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, g, got)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, "模组参数对比报告", f.GetSheetName(0))
}

func TestWriteXLSX_HeaderOnly(t *testing.T) {
	g := Grid{Header: []string{ParameterLabel, "M1"}}

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, g, ""))

	got, err := ReadXLSX(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, g.Header, got.Header)
	assert.Empty(t, got.Body)
}

func TestSheetName(t *testing.T) {
	assert.Equal(t, "Sheet1", sheetName(""))
	assert.Equal(t, "Sheet1", sheetName("[]/"))
	assert.Equal(t, "ab", sheetName("a/b"))
	assert.Len(t, []rune(sheetName(strings.Repeat("参", 40))), maxSheetName)
}
