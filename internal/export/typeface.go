package export

import (
	"log/slog"
	"os"
	"sync"
)

// Typeface answers whether a typeface covering non-Latin text is available.
// The PDF renderer falls back to a Latin-only core font when it is not.
type Typeface interface {
	HasCompatibleTypeface() bool
	// Path returns the TrueType file to embed. Only valid when
	// HasCompatibleTypeface reports true.
	Path() string
}

// DefaultFontCandidates are checked in order by FileTypeface.
var DefaultFontCandidates = []string{
	"SimHei.ttf",
	"arialuni.ttf",
	"C:/Windows/Fonts/simhei.ttf",
	"C:/Windows/Fonts/msyh.ttf",
	"/usr/share/fonts/truetype/droid/DroidSansFallbackFull.ttf",
}

// FileTypeface scans a list of font paths once, on first use.
type FileTypeface struct {
	candidates []string

	once  sync.Once
	found string
}

// NewFileTypeface creates a scanner over candidates, or DefaultFontCandidates
// when none are given.
func NewFileTypeface(candidates []string) *FileTypeface {
	if len(candidates) == 0 {
		candidates = DefaultFontCandidates
	}
	return &FileTypeface{candidates: candidates}
}

func (f *FileTypeface) scan() {
	f.once.Do(func() {
		for _, p := range f.candidates {
			if info, err := os.Stat(p); err == nil && !info.IsDir() {
				f.found = p
				slog.Info("pdf typeface found", "path", p)
				return
			}
		}
		slog.Warn("no CJK typeface found, pdf export falls back to Helvetica",
			"candidates", len(f.candidates))
	})
}

// HasCompatibleTypeface reports whether any candidate exists.
func (f *FileTypeface) HasCompatibleTypeface() bool {
	f.scan()
	return f.found != ""
}

// Path returns the first existing candidate.
func (f *FileTypeface) Path() string {
	f.scan()
	return f.found
}

// NoTypeface always reports no compatible typeface.
type NoTypeface struct{}

// HasCompatibleTypeface always reports false.
func (NoTypeface) HasCompatibleTypeface() bool { return false }

// Path returns the empty string.
func (NoTypeface) Path() string { return "" }
