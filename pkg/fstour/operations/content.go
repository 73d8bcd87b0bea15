package operations

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/arthur-debert/fstour/pkg/fstour/core"
	"github.com/arthur-debert/fstour/pkg/fstour/filesystem"
)

// Write writes data to p. With no options the file is created or truncated;
// write access is always implied.
func Write(fsys filesystem.FullFileSystem, p core.Path, data []byte, opts ...core.OpenOption) error {
	if len(opts) == 0 {
		opts = core.DefaultWriteOptions
	}
	flags, err := core.Flags(core.Combine(opts...) | core.OpenWrite)
	if err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}

	f, err := fsys.OpenFile(p.String(), flags, DefaultFileMode)
	if err != nil {
		return err
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", p, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", p, err)
	}
	return nil
}

// WriteString writes s to p encoded as UTF-8.
func WriteString(fsys filesystem.FullFileSystem, p core.Path, s string, opts ...core.OpenOption) error {
	return Write(fsys, p, []byte(s), opts...)
}

// ReadBytes returns the full content of p.
func ReadBytes(fsys filesystem.FullFileSystem, p core.Path) ([]byte, error) {
	f, err := fsys.Open(p.String())
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", p, err)
	}
	return data, nil
}

// ReadString returns the content of p decoded as UTF-8. Invalid input yields
// a MalformedInputError pointing at the first bad byte.
func ReadString(fsys filesystem.FullFileSystem, p core.Path) (string, error) {
	data, err := ReadBytes(fsys, p)
	if err != nil {
		return "", err
	}
	if offset := invalidUTF8(data); offset >= 0 {
		return "", &core.MalformedInputError{Path: p.String(), Offset: offset}
	}
	return string(data), nil
}

func invalidUTF8(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return -1
}
