package source

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/JonMunkholm/ModCompare/internal/core"
)

// FileSource reads a CSV or XLSX file, chosen by extension.
type FileSource struct {
	path string
}

// NewFileSource returns a source for path. Relative paths are resolved
// against the working directory.
func NewFileSource(path string) *FileSource {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &FileSource{path: path}
}

// Path returns the absolute file path.
func (s *FileSource) Path() string {
	return s.path
}

// Key implements core.Source.
func (s *FileSource) Key() string {
	return s.path
}

// Load implements core.Source.
func (s *FileSource) Load(ctx context.Context) (core.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return core.RawTable{}, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return core.RawTable{}, core.NewDataLoadError(s.path, err)
	}

	var raw core.RawTable
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".xlsx":
		raw, err = ParseXLSX(data, s.path)
	case ".csv", ".txt", "":
		raw, err = ParseCSV(data, s.path)
	default:
		err = core.NewDataLoadError(s.path, fmt.Errorf("unsupported file type %q", filepath.Ext(s.path)))
	}
	if err != nil {
		return core.RawTable{}, err
	}

	sum := sha256.Sum256(data)
	raw.Digest = hex.EncodeToString(sum[:])
	return raw, nil
}
