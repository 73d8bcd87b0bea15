package validation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arthur-debert/fstour/pkg/fstour/core"
	"github.com/arthur-debert/fstour/pkg/fstour/filesystem"
)

// NoMismatch is returned when two files have identical content.
const NoMismatch int64 = -1

const compareBufferSize = 32 * 1024

// Mismatch returns the offset of the first byte at which the contents of a
// and b differ. If one file is a prefix of the other, the size of the
// shorter file is returned. Identical content, or a and b being the same
// file, yields NoMismatch.
func Mismatch(fsys filesystem.FullFileSystem, a, b core.Path) (int64, error) {
	infoA, err := fsys.Stat(a.String())
	if err != nil {
		return 0, err
	}
	infoB, err := fsys.Stat(b.String())
	if err != nil {
		return 0, err
	}
	if os.SameFile(infoA, infoB) {
		return NoMismatch, nil
	}

	fa, err := fsys.Open(a.String())
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = fa.Close()
	}()

	fb, err := fsys.Open(b.String())
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = fb.Close()
	}()

	offset, err := MismatchReaders(fa, fb)
	if err != nil {
		return 0, fmt.Errorf("failed to compare %s and %s: %w", a, b, err)
	}
	return offset, nil
}

// MismatchReaders compares two streams byte by byte with the same result
// convention as Mismatch.
func MismatchReaders(a, b io.Reader) (int64, error) {
	ra := bufio.NewReaderSize(a, compareBufferSize)
	rb := bufio.NewReaderSize(b, compareBufferSize)

	var offset int64
	for {
		ca, errA := ra.ReadByte()
		cb, errB := rb.ReadByte()

		endA := errors.Is(errA, io.EOF)
		endB := errors.Is(errB, io.EOF)
		if errA != nil && !endA {
			return 0, errA
		}
		if errB != nil && !endB {
			return 0, errB
		}

		switch {
		case endA && endB:
			return NoMismatch, nil
		case endA || endB:
			return offset, nil
		case ca != cb:
			return offset, nil
		}
		offset++
	}
}
