package filesystem

import (
	"errors"
	"io/fs"

	"golang.org/x/sys/unix"

	"github.com/arthur-debert/fstour/pkg/fstour/core"
)

// ErrNotDirectory is returned when a directory operation targets a file.
var ErrNotDirectory = errors.New("not a directory")

// classify maps raw OS errors onto the typed errors in core. Errors that
// have no typed counterpart are returned unchanged.
func classify(op, name string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return &core.NotFoundError{Op: op, Path: name, Err: err}
	// ENOTEMPTY also matches fs.ErrExist, so it has to be checked first.
	case errors.Is(err, unix.ENOTEMPTY):
		return &core.NotEmptyError{Op: op, Path: name, Err: err}
	case op == "remove" && errors.Is(err, unix.EEXIST):
		return &core.NotEmptyError{Op: op, Path: name, Err: err}
	case errors.Is(err, fs.ErrExist):
		return &core.ExistsError{Op: op, Path: name, Err: err}
	default:
		return err
	}
}

func classifyRename(oldpath, newpath string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &core.NotFoundError{Op: "rename", Path: oldpath, Err: err}
	case errors.Is(err, unix.ENOTEMPTY), errors.Is(err, fs.ErrExist):
		return &core.ExistsError{Op: "rename", Path: newpath, Err: err}
	default:
		return err
	}
}

// IsCrossDevice reports whether err came from renaming across filesystems.
func IsCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
