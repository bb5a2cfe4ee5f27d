package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/penwyp/go-lineup-timeline/internal/core/constants"
	"github.com/penwyp/go-lineup-timeline/internal/util"
)

// FileScanner finds lineup files below a set of roots. A root may be a
// directory or a single file.
type FileScanner struct {
	roots      []string
	extensions []string
}

// NewFileScanner creates a new FileScanner instance
func NewFileScanner(roots ...string) *FileScanner {
	return &FileScanner{
		roots:      roots,
		extensions: constants.LineupExtensions,
	}
}

// IsLineupFile reports whether path has a lineup extension.
func IsLineupFile(path string) bool {
	return slices.Contains(constants.LineupExtensions, strings.ToLower(filepath.Ext(path)))
}

// Scan returns the lineup files under every root, sorted and without
// duplicates. Files named directly as roots are returned whatever their
// extension; a root that does not exist is an error.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	seen := make(map[string]bool)
	var files []string
	dirCount := 0
	totalCount := 0

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range s.roots {
		util.LogDebug(fmt.Sprintf("Start scanning: %s", root))

		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", root, err)
		}
		if !info.IsDir() {
			totalCount++
			add(filepath.Clean(root))
			continue
		}

		err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				util.LogDebug(fmt.Sprintf("Skip file (error): %s - %v", path, err))
				return nil
			}

			if info.IsDir() {
				dirCount++
				return nil
			}

			totalCount++
			if s.matches(path) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	util.LogDebug(fmt.Sprintf("File scan completed: duration %v, scanned %d directories, %d files, found %d lineup files",
		time.Since(start), dirCount, totalCount, len(files)))

	return files, nil
}

func (s *FileScanner) matches(path string) bool {
	return slices.Contains(s.extensions, strings.ToLower(filepath.Ext(path)))
}
