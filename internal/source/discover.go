package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/JonMunkholm/ModCompare/internal/core"
)

// DefaultFile is the file name preferred by Discover.
const DefaultFile = "data.csv"

// Discover picks the data file in dir: preferred if it exists, otherwise the
// first *.csv in lexical order (extension matched case-insensitively), then
// the first *.xlsx. Returns core.ErrSourceNotFound when nothing matches.
func Discover(dir, preferred string) (string, error) {
	if preferred == "" {
		preferred = DefaultFile
	}

	candidate := preferred
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(dir, preferred)
	}
	if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
		return candidate, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w in %s: %v", core.ErrSourceNotFound, dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, ext := range []string{".csv", ".xlsx"} {
		for _, name := range names {
			if strings.EqualFold(filepath.Ext(name), ext) {
				return filepath.Join(dir, name), nil
			}
		}
	}

	return "", fmt.Errorf("%w in %s", core.ErrSourceNotFound, dir)
}
