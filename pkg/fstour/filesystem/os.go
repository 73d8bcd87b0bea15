package filesystem

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// OSFileSystem implements FullFileSystem on the host filesystem. Relative
// names are resolved against its working directory, absolute names are used
// as they are.
type OSFileSystem struct {
	workdir string
}

// NewOSFileSystem creates a filesystem whose relative names resolve against
// workdir.
func NewOSFileSystem(workdir string) *OSFileSystem {
	return &OSFileSystem{workdir: filepath.Clean(workdir)}
}

// NewOSFileSystemFromCwd creates a filesystem rooted at the process working
// directory.
func NewOSFileSystemFromCwd() (*OSFileSystem, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}
	return NewOSFileSystem(wd), nil
}

// WorkDir implements FullFileSystem
func (osfs *OSFileSystem) WorkDir() string {
	return osfs.workdir
}

// Resolve implements FullFileSystem
func (osfs *OSFileSystem) Resolve(name string) string {
	switch {
	case name == "":
		return osfs.workdir
	case filepath.IsAbs(name):
		return name
	default:
		return filepath.Join(osfs.workdir, name)
	}
}

// Open implements fs.FS
func (osfs *OSFileSystem) Open(name string) (fs.File, error) {
	f, err := os.Open(osfs.Resolve(name))
	if err != nil {
		return nil, classify("open", name, err)
	}
	return f, nil
}

// Stat implements StatFS
func (osfs *OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	info, err := os.Stat(osfs.Resolve(name))
	if err != nil {
		return nil, classify("stat", name, err)
	}
	return info, nil
}

// Lstat implements StatFS
func (osfs *OSFileSystem) Lstat(name string) (fs.FileInfo, error) {
	info, err := os.Lstat(osfs.Resolve(name))
	if err != nil {
		return nil, classify("lstat", name, err)
	}
	return info, nil
}

// Exists implements StatFS. A false result with a non-nil error means
// existence could not be determined.
func (osfs *OSFileSystem) Exists(name string) (bool, error) {
	_, err := os.Stat(osfs.Resolve(name))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, classify("stat", name, err)
}

// ReadFile implements FullFileSystem
func (osfs *OSFileSystem) ReadFile(name string) ([]byte, error) {
	data, err := os.ReadFile(osfs.Resolve(name))
	if err != nil {
		return nil, classify("read", name, err)
	}
	return data, nil
}

// OpenFile implements WriteFS
func (osfs *OSFileSystem) OpenFile(name string, flag int, perm fs.FileMode) (File, error) {
	f, err := os.OpenFile(osfs.Resolve(name), flag, perm)
	if err != nil {
		return nil, classify("open", name, err)
	}
	return f, nil
}

// Mkdir implements WriteFS. The parent must already exist.
func (osfs *OSFileSystem) Mkdir(name string, perm fs.FileMode) error {
	if err := os.Mkdir(osfs.Resolve(name), perm); err != nil {
		return classify("mkdir", name, err)
	}
	return nil
}

// Remove implements WriteFS
func (osfs *OSFileSystem) Remove(name string) error {
	if err := os.Remove(osfs.Resolve(name)); err != nil {
		return classify("remove", name, err)
	}
	return nil
}

// Rename implements WriteFS
func (osfs *OSFileSystem) Rename(oldpath, newpath string) error {
	if err := renameNoReplace(osfs.Resolve(oldpath), osfs.Resolve(newpath)); err != nil {
		return classifyRename(oldpath, newpath, err)
	}
	return nil
}

// Replace implements WriteFS
func (osfs *OSFileSystem) Replace(oldpath, newpath string) error {
	if err := os.Rename(osfs.Resolve(oldpath), osfs.Resolve(newpath)); err != nil {
		return classifyRename(oldpath, newpath, err)
	}
	return nil
}

// CreateTemp implements WriteFS. An empty dir means the system temp
// directory. The file is closed before returning its path.
func (osfs *OSFileSystem) CreateTemp(dir, pattern string) (string, error) {
	if dir != "" {
		dir = osfs.Resolve(dir)
	}
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", classify("createtemp", filepath.Join(dir, pattern), err)
	}
	name := f.Name()
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close temp file %s: %w", name, err)
	}
	return name, nil
}

// MkdirTemp implements WriteFS. An empty dir means the system temp
// directory.
func (osfs *OSFileSystem) MkdirTemp(dir, pattern string) (string, error) {
	if dir != "" {
		dir = osfs.Resolve(dir)
	}
	name, err := os.MkdirTemp(dir, pattern)
	if err != nil {
		return "", classify("mkdirtemp", filepath.Join(dir, pattern), err)
	}
	return name, nil
}

// OpenDir implements FullFileSystem
func (osfs *OSFileSystem) OpenDir(name string) (DirHandle, error) {
	f, err := os.Open(osfs.Resolve(name))
	if err != nil {
		return nil, classify("opendir", name, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, classify("opendir", name, err)
	}
	if !info.IsDir() {
		_ = f.Close()
		return nil, &fs.PathError{Op: "opendir", Path: name, Err: ErrNotDirectory}
	}
	return f, nil
}
