package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveFileCreatesTree(t *testing.T) {
	root := t.TempDir()
	s := &Storage{}

	path := filepath.Join(root, "A", "Anachronox.md")
	content := []byte("# Anachronox\n\nA cyberpunk RPG.\n")
	if err := s.SaveFile(path, content); err != nil {
		t.Fatalf("SaveFile returned error: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("saved file unreadable: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("file content = %q, want %q", got, content)
	}
}

func TestSaveFileLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	s := &Storage{}

	if err := s.SaveFile(filepath.Join(root, "B", "Braid.md"), []byte("x\n")); err != nil {
		t.Fatalf("SaveFile returned error: %v", err)
	}

	entries, err := os.ReadDir(filepath.Join(root, "B"))
	if err != nil {
		t.Fatalf("failed to read output dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".tmp-") {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries in bucket dir, want 1", len(entries))
	}
}

func TestSaveFileOverwrites(t *testing.T) {
	root := t.TempDir()
	s := &Storage{}
	path := filepath.Join(root, "C", "Celeste.md")

	if err := s.SaveFile(path, []byte("old\n")); err != nil {
		t.Fatalf("first SaveFile returned error: %v", err)
	}
	if err := s.SaveFile(path, []byte("new\n")); err != nil {
		t.Fatalf("second SaveFile returned error: %v", err)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "new\n" {
		t.Errorf("file content = %q, want %q", got, "new\n")
	}
}

func TestHasFile(t *testing.T) {
	root := t.TempDir()
	s := &Storage{}
	path := filepath.Join(root, "D", "Doom.md")

	if s.HasFile(path) {
		t.Error("HasFile true before save")
	}
	if err := s.SaveFile(path, []byte("doom\n")); err != nil {
		t.Fatalf("SaveFile returned error: %v", err)
	}
	if !s.HasFile(path) {
		t.Error("HasFile false after save")
	}
}
