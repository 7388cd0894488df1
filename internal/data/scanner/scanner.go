package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joycelim/callheat/internal/util"
)

// FileScanner finds call-log files below a base directory.
type FileScanner struct {
	baseDir string
	pattern string
}

// NewFileScanner creates a scanner rooted at baseDir looking for .jsonl
// call logs.
func NewFileScanner(baseDir string) *FileScanner {
	return &FileScanner{
		baseDir: baseDir,
		pattern: ".jsonl",
	}
}

// Scan walks the directory tree and returns every call-log path, sorted
// so downstream processing order is stable.
func (s *FileScanner) Scan() ([]string, error) {
	start := time.Now()
	var files []string
	dirCount := 0
	totalCount := 0

	util.LogDebug(fmt.Sprintf("Start scanning directory: %s", s.baseDir))

	err := filepath.Walk(s.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			util.LogDebug(fmt.Sprintf("Skip file (error): %s - %v", path, err))
			return nil
		}

		if info.IsDir() {
			dirCount++
			return nil
		}

		totalCount++
		if strings.HasSuffix(strings.ToLower(path), s.pattern) {
			files = append(files, path)
		}

		return nil
	})

	sort.Strings(files)

	util.LogDebug(fmt.Sprintf("File scan completed: duration %v, scanned %d directories, %d files, found %d call logs",
		time.Since(start), dirCount, totalCount, len(files)))

	return files, err
}
