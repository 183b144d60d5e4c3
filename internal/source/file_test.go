package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/ModCompare/internal/config"
	"github.com/JonMunkholm/ModCompare/internal/core"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDiscover(t *testing.T) {
	tests := []struct {
		name      string
		files     []string
		preferred string
		want      string
	}{
		{"preferred wins", []string{"a.csv", "data.csv"}, "", "data.csv"},
		{"first csv in lexical order", []string{"b.csv", "a.CSV", "z.xlsx"}, "", "a.CSV"},
		{"custom preferred", []string{"a.csv", "models.csv"}, "models.csv", "models.csv"},
		{"xlsx when no csv", []string{"notes.txt", "models.xlsx"}, "", "models.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				writeFile(t, dir, f, "Model\n")
			}

			got, err := Discover(dir, tt.preferred)
			require.NoError(t, err)
			assert.Equal(t, filepath.Join(dir, tt.want), got)
		})
	}
}

func TestDiscover_NotFound(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "readme.md", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "dir.csv"), 0o755))

	_, err := Discover(dir, "")
	assert.ErrorIs(t, err, core.ErrSourceNotFound)

	_, err = Discover(filepath.Join(dir, "missing"), "")
	assert.ErrorIs(t, err, core.ErrSourceNotFound)
}

func TestFileSource_Load(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.csv", "型号,P\nM1,1\n")

	src := NewFileSource(path)
	assert.Equal(t, path, src.Key())

	raw, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, path, raw.Origin)
	assert.Len(t, raw.Digest, 64)

	again, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, raw.Digest, again.Digest)

	writeFile(t, dir, "data.csv", "型号,P\nM1,2\n")
	changed, err := src.Load(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, raw.Digest, changed.Digest)
}

func TestFileSource_MissingFile(t *testing.T) {
	_, err := NewFileSource(filepath.Join(t.TempDir(), "gone.csv")).Load(context.Background())

	var loadErr *core.DataLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestFileSource_UnsupportedType(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.json", "{}")
	_, err := NewFileSource(path).Load(context.Background())

	var loadErr *core.DataLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestFileSource_CancelledContext(t *testing.T) {
	path := writeFile(t, t.TempDir(), "data.csv", "Model\nA\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFileSource(path).Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOpen_FileSource(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "models.csv", "Model,P\nA,1\n")

	src, closeFn, err := Open(context.Background(), config.SourceConfig{DataDir: dir, File: "data.csv"})
	require.NoError(t, err)
	defer closeFn()

	assert.Equal(t, filepath.Join(dir, "models.csv"), src.Key())
}

func TestOpen_NothingToLoad(t *testing.T) {
	_, closeFn, err := Open(context.Background(), config.SourceConfig{DataDir: t.TempDir()})
	require.NotNil(t, closeFn)
	assert.ErrorIs(t, err, core.ErrSourceNotFound)
}
