// Package listing enumerates directory entries as lazy sequences.
//
// Every sequence opens its directory handles only when iterated and closes
// them before returning, whether the caller drains the sequence, breaks out
// early, hits an error or panics. Entry order is whatever the filesystem
// returns; nothing is sorted.
package listing

import (
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/arthur-debert/fstour/pkg/fstour/core"
	"github.com/arthur-debert/fstour/pkg/fstour/filesystem"
)

// ErrBadPattern is returned for malformed glob patterns.
var ErrBadPattern = errors.New("malformed glob pattern")

const readBatch = 64

// List yields the direct children of dir.
func List(fsys filesystem.FullFileSystem, dir core.Path) iter.Seq2[core.Path, error] {
	return func(yield func(core.Path, error) bool) {
		children(fsys, dir, func(child core.Path, _ bool) bool {
			return yield(child, nil)
		}, func(err error) {
			yield(core.Path{}, err)
		})
	}
}

// Glob yields the direct children of dir whose names match pattern. The
// pattern supports *, ?, [...] classes and {a,b} alternatives.
func Glob(fsys filesystem.FullFileSystem, dir core.Path, pattern string) iter.Seq2[core.Path, error] {
	return func(yield func(core.Path, error) bool) {
		if !doublestar.ValidatePattern(pattern) {
			yield(core.Path{}, fmt.Errorf("%q: %w", pattern, ErrBadPattern))
			return
		}
		children(fsys, dir, func(child core.Path, _ bool) bool {
			if ok, _ := doublestar.Match(pattern, child.Base()); !ok {
				return true
			}
			return yield(child, nil)
		}, func(err error) {
			yield(core.Path{}, err)
		})
	}
}

// WalkOption configures Walk.
type WalkOption func(*walkConfig)

type walkConfig struct {
	maxDepth int
}

// WithMaxDepth limits how deep Walk descends. Depth 0 yields only the root.
func WithMaxDepth(depth int) WalkOption {
	return func(c *walkConfig) {
		c.maxDepth = depth
	}
}

// Walk yields root and every entry below it in depth-first pre-order. Symlinks
// are reported but not followed. One directory handle is held per level
// currently being descended.
func Walk(fsys filesystem.FullFileSystem, root core.Path, opts ...WalkOption) iter.Seq2[core.Path, error] {
	cfg := walkConfig{maxDepth: -1}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(yield func(core.Path, error) bool) {
		info, err := fsys.Lstat(root.String())
		if err != nil {
			yield(core.Path{}, err)
			return
		}
		if !yield(root, nil) {
			return
		}
		if info.IsDir() {
			walk(fsys, root, 1, cfg.maxDepth, yield)
		}
	}
}

func walk(fsys filesystem.FullFileSystem, dir core.Path, depth, maxDepth int, yield func(core.Path, error) bool) bool {
	if maxDepth >= 0 && depth > maxDepth {
		return true
	}

	cont := true
	children(fsys, dir, func(child core.Path, isDir bool) bool {
		if !yield(child, nil) {
			cont = false
			return false
		}
		if isDir && !walk(fsys, child, depth+1, maxDepth, yield) {
			cont = false
			return false
		}
		return true
	}, func(err error) {
		cont = yield(core.Path{}, err)
	})
	return cont
}

// children opens dir, feeds each entry to visit until it returns false, and
// reports failures to fail. The handle is closed on every path out.
func children(fsys filesystem.FullFileSystem, dir core.Path, visit func(child core.Path, isDir bool) bool, fail func(error)) {
	handle, err := fsys.OpenDir(dir.String())
	if err != nil {
		fail(err)
		return
	}
	defer func() {
		_ = handle.Close()
	}()

	for {
		entries, err := handle.ReadDir(readBatch)
		for _, entry := range entries {
			if !visit(dir.Join(entry.Name()), entry.IsDir()) {
				return
			}
		}
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			fail(fmt.Errorf("failed to read directory %s: %w", dir, err))
			return
		}
		if len(entries) == 0 {
			return
		}
	}
}

// Collect drains seq into a slice, stopping at the first error.
func Collect(seq iter.Seq2[core.Path, error]) ([]core.Path, error) {
	var out []core.Path
	for p, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, nil
}
