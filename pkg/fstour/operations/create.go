package operations

import (
	"fmt"
	"os"

	"github.com/arthur-debert/fstour/pkg/fstour/core"
	"github.com/arthur-debert/fstour/pkg/fstour/filesystem"
)

const (
	// DefaultDirMode is used for directories created by this package.
	DefaultDirMode os.FileMode = 0o755
	// DefaultFileMode is used for files created by this package.
	DefaultFileMode os.FileMode = 0o644
)

// CreateDirectory creates dir. Its parent must exist and dir must not.
func CreateDirectory(fsys filesystem.FullFileSystem, dir core.Path) error {
	return fsys.Mkdir(dir.String(), DefaultDirMode)
}

// CreateFile creates an empty file and fails with ExistsError if anything
// is already at p.
func CreateFile(fsys filesystem.FullFileSystem, p core.Path) error {
	f, err := fsys.OpenFile(p.String(), os.O_WRONLY|os.O_CREATE|os.O_EXCL, DefaultFileMode)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close new file %s: %w", p, err)
	}
	return nil
}

// EnsureDir creates dir unless it already exists. The existence check and
// the creation are separate steps; a concurrent creator in between surfaces
// as an ExistsError.
func EnsureDir(fsys filesystem.FullFileSystem, dir core.Path) (bool, error) {
	exists, err := fsys.Exists(dir.String())
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := CreateDirectory(fsys, dir); err != nil {
		return false, err
	}
	return true, nil
}

// EnsureFile creates an empty file at p unless something already exists
// there. Same check-then-act caveat as EnsureDir.
func EnsureFile(fsys filesystem.FullFileSystem, p core.Path) (bool, error) {
	exists, err := fsys.Exists(p.String())
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := CreateFile(fsys, p); err != nil {
		return false, err
	}
	return true, nil
}

// CreateTempFile creates a uniquely named empty file in dir, or in the
// system temp directory when dir is empty. The name is prefix, a random
// part, then suffix.
func CreateTempFile(fsys filesystem.FullFileSystem, dir core.Path, prefix, suffix string) (core.Path, error) {
	name, err := fsys.CreateTemp(dir.String(), prefix+"*"+suffix)
	if err != nil {
		return core.Path{}, err
	}
	return core.Of(name), nil
}

// CreateTempDir creates a uniquely named empty directory in dir, or in the
// system temp directory when dir is empty.
func CreateTempDir(fsys filesystem.FullFileSystem, dir core.Path, prefix string) (core.Path, error) {
	name, err := fsys.MkdirTemp(dir.String(), prefix+"*")
	if err != nil {
		return core.Path{}, err
	}
	return core.Of(name), nil
}
