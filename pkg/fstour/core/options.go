package core

import (
	"fmt"
	"os"
	"strings"
)

// OpenOption controls how a file is opened for reading or writing.
type OpenOption int

const (
	OpenRead OpenOption = 1 << iota
	OpenWrite
	OpenAppend
	OpenTruncate
	OpenCreate
	OpenCreateNew
)

// DefaultWriteOptions is used when a write is given no options.
var DefaultWriteOptions = []OpenOption{OpenCreate, OpenTruncate, OpenWrite}

var optionNames = []struct {
	opt  OpenOption
	name string
}{
	{OpenRead, "READ"},
	{OpenWrite, "WRITE"},
	{OpenAppend, "APPEND"},
	{OpenTruncate, "TRUNCATE_EXISTING"},
	{OpenCreate, "CREATE"},
	{OpenCreateNew, "CREATE_NEW"},
}

func (o OpenOption) String() string {
	var names []string
	for _, n := range optionNames {
		if o&n.opt != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return fmt.Sprintf("OpenOption(%d)", int(o))
	}
	return strings.Join(names, "|")
}

// Combine merges options into a single bit set.
func Combine(opts ...OpenOption) OpenOption {
	var set OpenOption
	for _, o := range opts {
		set |= o
	}
	return set
}

// Flags converts options into os.OpenFile flags. Append counts as write
// access. Create and truncate are ignored for read-only access.
func Flags(opts ...OpenOption) (int, error) {
	set := Combine(opts...)

	if set&OpenAppend != 0 && set&OpenTruncate != 0 {
		return 0, fmt.Errorf("%s: %w", set, ErrInvalidOptions)
	}
	if set&OpenAppend != 0 && set&OpenRead != 0 {
		return 0, fmt.Errorf("%s: %w", set, ErrInvalidOptions)
	}

	writing := set&(OpenWrite|OpenAppend) != 0
	var flags int
	switch {
	case writing && set&OpenRead != 0:
		flags = os.O_RDWR
	case writing:
		flags = os.O_WRONLY
	default:
		return os.O_RDONLY, nil
	}

	if set&OpenAppend != 0 {
		flags |= os.O_APPEND
	}
	if set&OpenTruncate != 0 {
		flags |= os.O_TRUNC
	}
	switch {
	case set&OpenCreateNew != 0:
		flags |= os.O_CREATE | os.O_EXCL
	case set&OpenCreate != 0:
		flags |= os.O_CREATE
	}

	return flags, nil
}
