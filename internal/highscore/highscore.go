// Package highscore keeps the single best score in a plain text file
// holding one decimal integer.
package highscore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// DefaultFile is the file name used when no path is configured.
const DefaultFile = "highscore.txt"

// File is a high-score file. Reads never fail: a missing or corrupt file
// counts as a best score of 0. Write failures are logged and skipped.
type File struct {
	path   string
	logger *log.Logger
}

// New returns a store for path. A nil logger discards warnings.
func New(path string, logger *log.Logger) *File {
	if path == "" {
		path = DefaultFile
	}
	return &File{path: path, logger: logger}
}

// Path returns the file location.
func (f *File) Path() string { return f.path }

// Read parses the file, reporting why it could not.
func (f *File) Read() (int, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return 0, fmt.Errorf("highscore: read %s: %w", f.path, err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("highscore: parse %s: %w", f.path, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("highscore: negative score %d in %s", n, f.path)
	}
	return n, nil
}

// Write replaces the file with score, creating parent directories.
func (f *File) Write(score int) error {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("highscore: create %s: %w", dir, err)
		}
	}
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(strconv.Itoa(score)), 0o644); err != nil {
		return fmt.Errorf("highscore: write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("highscore: replace %s: %w", f.path, err)
	}
	return nil
}

// Load returns the stored best score, or 0.
func (f *File) Load() int {
	n, err := f.Read()
	if err != nil && !errors.Is(err, fs.ErrNotExist) && f.logger != nil {
		f.logger.Warn("ignoring high score file", "error", err)
	}
	return n
}

// Save stores score. Failures are logged, not returned.
func (f *File) Save(score int) {
	if err := f.Write(score); err != nil && f.logger != nil {
		f.logger.Warn("could not save high score", "score", score, "error", err)
	}
}
