package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/arthur-debert/fstour/pkg/fstour/filesystem"
)

// NotesContent is written to both notes files by WithAssets.
const NotesContent = "Remember to water the plants.\nBuy milk.\n"

// RealFSTestHelper provides utilities for testing with real filesystem operations
// This helper is Unix-only (Linux/macOS) as fstour doesn't officially support Windows
type RealFSTestHelper struct {
	t       *testing.T
	tempDir string
	fs      *filesystem.OSFileSystem
}

// NewRealFSTestHelper creates a new real filesystem test helper
// Tests are automatically skipped on Windows
func NewRealFSTestHelper(t *testing.T) *RealFSTestHelper {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fstour does not officially support Windows")
	}

	tempDir := t.TempDir()
	// t.TempDir may sit behind a symlink (macOS /var); resolve it so
	// absolute paths compare equal.
	if resolved, err := filepath.EvalSymlinks(tempDir); err == nil {
		tempDir = resolved
	}

	return &RealFSTestHelper{
		t:       t,
		tempDir: tempDir,
		fs:      filesystem.NewOSFileSystem(tempDir),
	}
}

// FileSystem returns the real filesystem instance
func (h *RealFSTestHelper) FileSystem() *filesystem.OSFileSystem {
	return h.fs
}

// TempDir returns the temporary directory path
func (h *RealFSTestHelper) TempDir() string {
	return h.tempDir
}

// Path returns the host path for a name relative to the temp directory.
func (h *RealFSTestHelper) Path(name string) string {
	return filepath.Join(h.tempDir, name)
}

// WriteFile creates a file, and any missing parents, with the given content.
func (h *RealFSTestHelper) WriteFile(name, content string) {
	h.t.Helper()
	full := h.Path(name)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		h.t.Fatalf("Failed to create parent of %s: %v", name, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		h.t.Fatalf("Failed to write %s: %v", name, err)
	}
}

// Mkdir creates a directory and any missing parents.
func (h *RealFSTestHelper) Mkdir(name string) {
	h.t.Helper()
	if err := os.MkdirAll(h.Path(name), 0o755); err != nil {
		h.t.Fatalf("Failed to create directory %s: %v", name, err)
	}
}

// ReadFile returns the content of a file, failing the test if it is missing.
func (h *RealFSTestHelper) ReadFile(name string) string {
	h.t.Helper()
	data, err := os.ReadFile(h.Path(name))
	if err != nil {
		h.t.Fatalf("Failed to read %s: %v", name, err)
	}
	return string(data)
}

// Exists reports whether name exists, without following symlinks.
func (h *RealFSTestHelper) Exists(name string) bool {
	_, err := os.Lstat(h.Path(name))
	return err == nil
}

// WithAssets lays out the assets directory the tour expects: notes.txt and
// a byte-identical notes-copy.txt.
func (h *RealFSTestHelper) WithAssets() *RealFSTestHelper {
	h.t.Helper()
	h.WriteFile("assets/notes.txt", NotesContent)
	h.WriteFile("assets/notes-copy.txt", NotesContent)
	return h
}
