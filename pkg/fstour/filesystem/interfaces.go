package filesystem

import (
	"io"
	"io/fs"
)

// ReadFS is an alias for fs.FS, representing a read-only file system.
type ReadFS = fs.FS

// File is an open file handle that can also be written and synced.
type File interface {
	fs.File
	io.Writer
	Sync() error
}

// DirHandle is an open directory that yields its entries in batches.
// It must be closed once enumeration is done.
type DirHandle interface {
	ReadDir(n int) ([]fs.DirEntry, error)
	io.Closer
}

// StatFS extends ReadFS with metadata queries.
type StatFS interface {
	ReadFS
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	Exists(name string) (bool, error)
}

// WriteFS defines the mutating operations.
type WriteFS interface {
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)
	Mkdir(name string, perm fs.FileMode) error
	Remove(name string) error
	// Rename moves oldpath to newpath and fails if newpath exists.
	Rename(oldpath, newpath string) error
	// Replace moves oldpath to newpath, replacing a non-directory newpath.
	Replace(oldpath, newpath string) error
	CreateTemp(dir, pattern string) (string, error)
	MkdirTemp(dir, pattern string) (string, error)
}

// FullFileSystem provides the complete interface used by the tour.
type FullFileSystem interface {
	StatFS
	WriteFS
	ReadFile(name string) ([]byte, error)
	OpenDir(name string) (DirHandle, error)
	// Resolve returns the host path for name.
	Resolve(name string) string
	// WorkDir returns the absolute directory relative names are resolved
	// against.
	WorkDir() string
}
