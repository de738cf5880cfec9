package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const DeclFileExt = ".json"

type Finder interface {
	FindDeclFiles(dir string) ([]string, error)
}

func NewFinder() Finder {
	return &finder{Ext: DeclFileExt}
}

type finder struct {
	Ext string
}

// FindDeclFiles lists the declaration files directly inside dir, sorted by
// name so that declaration order is stable.
func (f *finder) FindDeclFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading declaration directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), f.Ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(paths)

	if len(paths) == 0 {
		return nil, fmt.Errorf("no %s declaration files in %v", f.Ext, dir)
	}
	return paths, nil
}
