package core

import (
	"errors"
	"fmt"
)

var (
	// ErrMixedPaths is returned when relativizing between an absolute and a
	// relative path.
	ErrMixedPaths = errors.New("cannot relativize between absolute and relative paths")

	// ErrInvalidOptions is returned for open option combinations that cannot
	// be honoured together, such as append with truncate.
	ErrInvalidOptions = errors.New("invalid combination of open options")
)

// --- Error Types ---

// NotFoundError is returned when an operation requires an entry that does
// not exist.
type NotFoundError struct {
	Op   string
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s: no such file or directory", e.Op, e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// NotEmptyError is returned when deleting a directory that still has
// children.
type NotEmptyError struct {
	Op   string
	Path string
	Err  error
}

func (e *NotEmptyError) Error() string {
	return fmt.Sprintf("%s %s: directory not empty", e.Op, e.Path)
}

func (e *NotEmptyError) Unwrap() error {
	return e.Err
}

// ExistsError is returned when an operation would create or replace an
// entry that already exists.
type ExistsError struct {
	Op   string
	Path string
	Err  error
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("%s %s: file already exists", e.Op, e.Path)
}

func (e *ExistsError) Unwrap() error {
	return e.Err
}

// MalformedInputError is returned when file content is not valid UTF-8.
type MalformedInputError struct {
	Path   string
	Offset int
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed UTF-8 input in %s at byte %d", e.Path, e.Offset)
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsNotEmpty reports whether err is or wraps a NotEmptyError.
func IsNotEmpty(err error) bool {
	var target *NotEmptyError
	return errors.As(err, &target)
}

// IsExists reports whether err is or wraps an ExistsError.
func IsExists(err error) bool {
	var target *ExistsError
	return errors.As(err, &target)
}
