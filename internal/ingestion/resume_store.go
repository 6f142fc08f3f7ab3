// Package ingestion manages the on-disk resume store. Text extraction from
// PDFs happens outside this service; the store only keeps the original file
// bytes so they can be attached to outgoing mail.
package ingestion

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResumeStore persists resume files in a directory so they survive restarts
type ResumeStore struct {
	dir string
}

// NewResumeStore creates a store rooted at dir
func NewResumeStore(dir string) *ResumeStore {
	return &ResumeStore{
		dir: dir,
	}
}

// Save writes a resume file into the store. Only PDF and plain-text files
// are accepted. The stored name is the base name of the input, preventing
// path traversal.
func (rs *ResumeStore) Save(name string, content io.Reader) (string, error) {
	if err := os.MkdirAll(rs.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create resumes directory: %w", err)
	}

	name = filepath.Base(name)
	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".pdf" && ext != ".txt" {
		return "", fmt.Errorf("unsupported resume file type %q", ext)
	}

	path := filepath.Join(rs.dir, name)
	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, content); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return path, nil
}

// List returns the stored resume file names, sorted
func (rs *ResumeStore) List() ([]string, error) {
	entries, err := os.ReadDir(rs.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read resumes directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".pdf" || ext == ".txt" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	return names, nil
}

// Read returns the stored bytes of a resume by name
func (rs *ResumeStore) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(rs.dir, filepath.Base(name)))
	if err != nil {
		return nil, fmt.Errorf("failed to read resume %s: %w", name, err)
	}
	return data, nil
}
