// Package storage writes Markdown files into the output tree.
//
// The existence of a file at its computed path is the complete record
// that the entry was scraped; there is no index or manifest beside
// the tree.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

type Storage struct{}

// EnsureDir creates a directory (and parents) if absent.
func (s *Storage) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// SaveFile writes content to filePath atomically: the bytes go to a
// temp file in the destination directory first and are renamed into
// place, so a failure mid-write never leaves a truncated file at the
// final path. Parent directories are created as needed.
func (s *Storage) SaveFile(filePath string, content []byte) error {
	dir := filepath.Dir(filePath)
	if err := s.EnsureDir(dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", filePath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for %s: %w", filePath, err)
	}

	if err := os.Rename(tmpName, filePath); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move %s into place: %w", filePath, err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !os.IsNotExist(err)
}

// HasFile reports whether a file already exists at the path.
func (s *Storage) HasFile(path string) bool {
	return fileExists(path)
}
