// Package highscore persists the best score as a single decimal integer.
package highscore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// ErrCorrupt is returned by Read when the stored value is not a
// non-negative integer.
var ErrCorrupt = errors.New("high score file is corrupt")

// Store loads and saves the high score.
type Store interface {
	// Load returns the stored score. Missing or corrupt data reports false.
	Load() (int, bool)
	// Save overwrites the stored score.
	Save(score int) error
}

// File stores the score as text in a single file.
type File struct {
	Path string
}

// NewFile returns a store backed by path.
func NewFile(path string) *File {
	return &File{Path: path}
}

// Read returns the stored score or the reason it could not be read.
func (f *File) Read() (int, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return 0, fmt.Errorf("reading high score: %w", err)
	}
	n, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrCorrupt, strings.TrimSpace(string(data)))
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative value %d", ErrCorrupt, n)
	}
	return n, nil
}

// Load implements Store.
func (f *File) Load() (int, bool) {
	n, err := f.Read()
	if err != nil {
		return 0, false
	}
	return n, true
}

// Save implements Store. The value is written to a temporary file in the
// same directory and renamed over the old one.
func (f *File) Save(score int) error {
	if score < 0 {
		return fmt.Errorf("saving high score: negative value %d", score)
	}

	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating high score directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".highscore-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(strconv.Itoa(score)); err != nil {
		tmp.Close()
		return fmt.Errorf("writing high score: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("writing high score: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing high score: %w", err)
	}
	if err := os.Rename(tmpName, f.Path); err != nil {
		return fmt.Errorf("replacing high score file: %w", err)
	}
	return nil
}

// Memory keeps the score in memory. The zero value holds no score.
type Memory struct {
	score int
	set   bool
	Saves int // number of successful Save calls
}

// NewMemory returns a store preloaded with score.
func NewMemory(score int) *Memory {
	return &Memory{score: score, set: true}
}

// Load implements Store.
func (m *Memory) Load() (int, bool) {
	return m.score, m.set
}

// Save implements Store.
func (m *Memory) Save(score int) error {
	if score < 0 {
		return fmt.Errorf("saving high score: negative value %d", score)
	}
	m.score = score
	m.set = true
	m.Saves++
	return nil
}
