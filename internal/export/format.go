package export

import (
	"fmt"
	"strings"

	"github.com/JonMunkholm/ModCompare/internal/core"
)

// Format names an export serialization.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatPDF      Format = "pdf"
	FormatXLSX     Format = "xlsx"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatHTML     Format = "html"
)

// NormalizeFormat coerces format values into known aliases with defaults applied.
func NormalizeFormat(format string) Format {
	normalized := strings.ToLower(strings.TrimSpace(format))
	switch normalized {
	case "", string(FormatCSV):
		return FormatCSV
	case "excel", "xls":
		return FormatXLSX
	case "yml":
		return FormatYAML
	case "markdown":
		return FormatMarkdown
	case "text", "table":
		return FormatText
	case "htm":
		return FormatHTML
	default:
		return Format(normalized)
	}
}

// Validate returns core.ErrUnknownFormat for unsupported formats.
func (f Format) Validate() error {
	switch f {
	case FormatCSV, FormatPDF, FormatXLSX, FormatYAML, FormatMarkdown, FormatText, FormatHTML:
		return nil
	}
	return fmt.Errorf("%w: %q", core.ErrUnknownFormat, string(f))
}

// ContentType returns the MIME type for downloads.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatYAML:
		return "application/yaml; charset=utf-8"
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension without the dot.
func (f Format) Extension() string {
	return string(f)
}
