package core

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Separator is the name separator used by Path.
const Separator = string(filepath.Separator)

// Path is an immutable filesystem location. It may be absolute or relative
// and may or may not refer to an existing entry. The zero value is the empty
// path.
type Path struct {
	p string
}

// Of builds a Path by joining the given segments with the separator.
// Repeated separators are collapsed and a trailing separator is dropped,
// but "." and ".." segments are kept as written.
func Of(first string, more ...string) Path {
	parts := make([]string, 0, len(more)+1)
	if first != "" {
		parts = append(parts, first)
	}
	for _, s := range more {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return Path{p: tidy(strings.Join(parts, Separator))}
}

// tidy collapses runs of separators and strips a trailing one.
func tidy(s string) string {
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))
	prevSep := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == filepath.Separator {
			if prevSep {
				continue
			}
			prevSep = true
		} else {
			prevSep = false
		}
		b.WriteByte(c)
	}

	out := b.String()
	if len(out) > 1 && strings.HasSuffix(out, Separator) {
		out = out[:len(out)-1]
	}
	return out
}

// String returns the path as written.
func (p Path) String() string {
	return p.p
}

// IsEmpty reports whether p is the empty path.
func (p Path) IsEmpty() bool {
	return p.p == ""
}

// IsAbs reports whether p is absolute.
func (p Path) IsAbs() bool {
	return filepath.IsAbs(p.p)
}

// Base returns the last name element, or the empty string for the empty path
// and the root.
func (p Path) Base() string {
	if p.p == "" || p.p == Separator {
		return ""
	}
	i := strings.LastIndex(p.p, Separator)
	return p.p[i+1:]
}

// Parent returns the path without its last name element. A single relative
// name and the root have no parent and yield the empty path.
func (p Path) Parent() Path {
	i := strings.LastIndex(p.p, Separator)
	switch {
	case i < 0:
		return Path{}
	case i == 0:
		if len(p.p) == 1 {
			return Path{}
		}
		return Path{p: Separator}
	default:
		return Path{p: p.p[:i]}
	}
}

// Resolve returns other when it is absolute, p when other is empty, and
// p/other otherwise.
func (p Path) Resolve(other Path) Path {
	switch {
	case other.IsAbs():
		return other
	case other.p == "":
		return p
	case p.p == "":
		return other
	default:
		return Path{p: tidy(p.p + Separator + other.p)}
	}
}

// Join resolves each segment against p in turn.
func (p Path) Join(segments ...string) Path {
	out := p
	for _, s := range segments {
		out = out.Resolve(Of(s))
	}
	return out
}

// Abs returns p made absolute against base. The result is not normalized:
// Abs of "./a" against "/w" is "/w/./a".
func (p Path) Abs(base string) Path {
	if p.IsAbs() {
		return p
	}
	if p.p == "" {
		return Of(base)
	}
	return Path{p: tidy(base + Separator + p.p)}
}

// Normalize resolves "." and ".." elements lexically. It never touches the
// filesystem. A path that normalizes to "." becomes the empty path.
func (p Path) Normalize() Path {
	if p.p == "" {
		return p
	}
	c := filepath.Clean(p.p)
	if c == "." {
		return Path{}
	}
	return Path{p: c}
}

// Relativize returns the relative path that leads from p to other. Both
// paths must be absolute or both relative.
func (p Path) Relativize(other Path) (Path, error) {
	if p.IsAbs() != other.IsAbs() {
		return Path{}, fmt.Errorf("relativize %q against %q: %w", other.p, p.p, ErrMixedPaths)
	}

	rel, err := filepath.Rel(p.orDot(), other.orDot())
	if err != nil {
		return Path{}, fmt.Errorf("relativize %q against %q: %w", other.p, p.p, err)
	}
	if rel == "." {
		return Path{}, nil
	}
	return Path{p: rel}, nil
}

func (p Path) orDot() string {
	if p.p == "" {
		return "."
	}
	return p.p
}

// Equal reports whether p and other have the same string form.
func (p Path) Equal(other Path) bool {
	return p.p == other.p
}

// Compare orders paths by their string form. A parent always sorts before
// its descendants.
func (p Path) Compare(other Path) int {
	return strings.Compare(p.p, other.p)
}
