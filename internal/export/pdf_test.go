package export

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/ModCompare/internal/core"
)

// missingTypeface claims a typeface exists at a path that does not.
type missingTypeface struct{}

func (missingTypeface) HasCompatibleTypeface() bool { return true }
func (missingTypeface) Path() string                { return "/nonexistent/font.ttf" }

func TestPDFRenderer_LatinFallback(t *testing.T) {
	r := NewPDFRenderer(NoTypeface{})

	doc, err := r.RenderTable(
		[]string{"Param", "M1", "M2"},
		[][]string{{"Speed", "10", "20"}, {"Notes", "a<br/>b", "&lt;x&gt;"}},
		"Report",
	)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestPDFRenderer_MissingFontFallsBack(t *testing.T) {
	r := NewPDFRenderer(missingTypeface{})

	doc, err := r.RenderTable([]string{"A"}, [][]string{{"1"}}, "T")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestPDFRenderer_ManyRowsPaginate(t *testing.T) {
	r := NewPDFRenderer(nil)

	body := make([][]string, 200)
	for i := range body {
		body[i] = []string{"param", strings.Repeat("long value ", 12), "x"}
	}
	doc, err := r.RenderTable([]string{"P", "M1", "M2"}, body, "Long")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(doc, []byte("%PDF")))
}

func TestPDFRenderer_NoColumns(t *testing.T) {
	_, err := NewPDFRenderer(nil).RenderTable(nil, nil, "T")
	assert.Error(t, err)
}

func TestFileTypeface(t *testing.T) {
	none := NewFileTypeface([]string{"/nonexistent/a.ttf", "/nonexistent/b.ttf"})
	assert.False(t, none.HasCompatibleTypeface())
	assert.Empty(t, none.Path())

	dir := t.TempDir()
	assert.False(t, NewFileTypeface([]string{dir}).HasCompatibleTypeface(), "directories are not fonts")
}

// stubRenderer records its input.
type stubRenderer struct {
	header []string
	body   [][]string
	title  string
	err    error
}

func (s *stubRenderer) RenderTable(header []string, body [][]string, title string) ([]byte, error) {
	s.header, s.body, s.title = header, body, title
	if s.err != nil {
		return nil, s.err
	}
	return []byte("%PDF-stub"), nil
}

func TestBuilder_RenderPDFSanitizes(t *testing.T) {
	stub := &stubRenderer{}
	b := NewBuilder(stub, nil)

	g := Grid{Header: []string{ParameterLabel, "<M1>"}, Body: [][]string{{"Notes", "a\nb"}}}
	doc, err := b.RenderPDF(context.Background(), g, "R&D")
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-stub"), doc)
	assert.Equal(t, []string{ParameterLabel, "&lt;M1&gt;"}, stub.header)
	assert.Equal(t, [][]string{{"Notes", "a<br/>b"}}, stub.body)
	assert.Equal(t, "R&amp;D", stub.title)
}

func TestBuilder_RendererUnavailable(t *testing.T) {
	b := NewBuilder(nil, nil)
	assert.False(t, b.CanRender())

	_, err := b.Bytes(context.Background(), Grid{Header: []string{"A"}}, FormatPDF, "T")
	assert.ErrorIs(t, err, core.ErrRendererUnavailable)

	// Other formats still work.
	out, err := b.Bytes(context.Background(), Grid{Header: []string{"A"}}, FormatCSV, "T")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestBuilder_RenderErrorIsScoped(t *testing.T) {
	stub := &stubRenderer{err: errors.New("boom")}
	b := NewBuilder(stub, NewRenderLimiter(1, 0))

	_, err := b.RenderPDF(context.Background(), Grid{Header: []string{"A"}}, "Title")

	var renderErr *core.RenderError
	require.ErrorAs(t, err, &renderErr)
	assert.Equal(t, "Title", renderErr.Title)
	assert.True(t, core.IsExportError(err))
	assert.Equal(t, 0, b.Limiter().ActiveCount(), "slot released after failure")
}

func TestBuilder_EmptyGrid(t *testing.T) {
	b := NewBuilder(&stubRenderer{}, nil)
	for _, f := range []Format{FormatCSV, FormatPDF, FormatXLSX} {
		_, err := b.Bytes(context.Background(), Grid{}, f, "T")
		assert.ErrorIs(t, err, core.ErrEmptyGrid, f)
	}
}

func TestBuilder_UnknownFormat(t *testing.T) {
	b := NewBuilder(nil, nil)
	_, err := b.Bytes(context.Background(), Grid{Header: []string{"A"}}, Format("docx"), "T")
	assert.ErrorIs(t, err, core.ErrUnknownFormat)
}
