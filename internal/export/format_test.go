package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JonMunkholm/ModCompare/internal/core"
)

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"", FormatCSV},
		{"CSV", FormatCSV},
		{" pdf ", FormatPDF},
		{"excel", FormatXLSX},
		{"xls", FormatXLSX},
		{"yml", FormatYAML},
		{"markdown", FormatMarkdown},
		{"table", FormatText},
		{"htm", FormatHTML},
		{"docx", Format("docx")},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeFormat(tt.in))
		})
	}
}

func TestFormatValidate(t *testing.T) {
	for _, f := range []Format{FormatCSV, FormatPDF, FormatXLSX, FormatYAML, FormatMarkdown, FormatText, FormatHTML} {
		assert.NoError(t, f.Validate(), f)
	}
	assert.ErrorIs(t, Format("docx").Validate(), core.ErrUnknownFormat)
}

func TestFormatContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", FormatPDF.ContentType())
	assert.Equal(t, "text/csv; charset=utf-8", FormatCSV.ContentType())
	assert.Equal(t, "text/html; charset=utf-8", FormatHTML.ContentType())
	assert.Equal(t, "xlsx", FormatXLSX.Extension())
}
