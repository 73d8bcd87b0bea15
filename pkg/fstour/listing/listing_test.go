package listing_test

import (
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/fstour/pkg/fstour/core"
	"github.com/arthur-debert/fstour/pkg/fstour/filesystem"
	"github.com/arthur-debert/fstour/pkg/fstour/listing"
	"github.com/arthur-debert/fstour/pkg/fstour/testutil"
)

// countingFS tracks open directory handles.
type countingFS struct {
	*filesystem.OSFileSystem
	opened int
	open   int
}

type countedHandle struct {
	filesystem.DirHandle
	fs *countingFS
}

func (h *countedHandle) Close() error {
	h.fs.open--
	return h.DirHandle.Close()
}

func (c *countingFS) OpenDir(name string) (filesystem.DirHandle, error) {
	h, err := c.OSFileSystem.OpenDir(name)
	if err != nil {
		return nil, err
	}
	c.opened++
	c.open++
	return &countedHandle{DirHandle: h, fs: c}, nil
}

func newTree(t *testing.T) (*testutil.RealFSTestHelper, *countingFS) {
	h := testutil.NewRealFSTestHelper(t).WithAssets()
	h.WriteFile("assets/tasks/task.txt", "Hello World!")
	h.WriteFile("assets/tasks/auto-created.txt", "x")
	h.WriteFile("assets/tasks/readme.md", "# r")
	h.WriteFile("assets/tasks/sub/deep.txt", "d")
	return h, &countingFS{OSFileSystem: h.FileSystem()}
}

func strs(paths []core.Path) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = p.String()
	}
	sort.Strings(out)
	return out
}

func TestList(t *testing.T) {
	_, fsys := newTree(t)

	got, err := listing.Collect(listing.List(fsys, core.Of("assets/tasks")))
	require.NoError(t, err)
	assert.Equal(t, []string{
		"assets/tasks/auto-created.txt",
		"assets/tasks/readme.md",
		"assets/tasks/sub",
		"assets/tasks/task.txt",
	}, strs(got))
	assert.Equal(t, 0, fsys.open, "handle must be released")
}

func TestList_NotLazyUntilIterated(t *testing.T) {
	_, fsys := newTree(t)

	seq := listing.List(fsys, core.Of("assets/tasks"))
	assert.Equal(t, 0, fsys.opened)
	for range seq {
	}
	assert.Equal(t, 1, fsys.opened)
}

func TestList_EarlyBreakReleasesHandle(t *testing.T) {
	_, fsys := newTree(t)

	for p, err := range listing.List(fsys, core.Of("assets/tasks")) {
		require.NoError(t, err)
		assert.NotEmpty(t, p.String())
		break
	}
	assert.Equal(t, 1, fsys.opened)
	assert.Equal(t, 0, fsys.open)
}

func TestList_PanicReleasesHandle(t *testing.T) {
	_, fsys := newTree(t)

	assert.Panics(t, func() {
		for range listing.List(fsys, core.Of("assets/tasks")) {
			panic("boom")
		}
	})
	assert.Equal(t, 0, fsys.open)
}

func TestList_Missing(t *testing.T) {
	_, fsys := newTree(t)

	_, err := listing.Collect(listing.List(fsys, core.Of("assets/nope")))
	assert.True(t, core.IsNotFound(err))
}

func TestGlob(t *testing.T) {
	_, fsys := newTree(t)

	got, err := listing.Collect(listing.Glob(fsys, core.Of("assets/tasks"), "*.txt"))
	require.NoError(t, err)
	assert.Equal(t, []string{"assets/tasks/auto-created.txt", "assets/tasks/task.txt"}, strs(got))

	got, err = listing.Collect(listing.Glob(fsys, core.Of("assets/tasks"), "*.{md,txt}"))
	require.NoError(t, err)
	assert.Len(t, got, 3)
	assert.Equal(t, 0, fsys.open)
}

func TestGlob_BadPattern(t *testing.T) {
	_, fsys := newTree(t)

	_, err := listing.Collect(listing.Glob(fsys, core.Of("assets/tasks"), "[unclosed"))
	assert.ErrorIs(t, err, listing.ErrBadPattern)
	assert.Equal(t, 0, fsys.opened, "no handle opened for a bad pattern")
}

func TestWalk(t *testing.T) {
	_, fsys := newTree(t)

	got, err := listing.Collect(listing.Walk(fsys, core.Of("assets")))
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "assets", got[0].String(), "root comes first")
	assert.Equal(t, []string{
		"assets",
		"assets/notes-copy.txt",
		"assets/notes.txt",
		"assets/tasks",
		"assets/tasks/auto-created.txt",
		"assets/tasks/readme.md",
		"assets/tasks/sub",
		"assets/tasks/sub/deep.txt",
		"assets/tasks/task.txt",
	}, strs(got))

	index := map[string]int{}
	for i, p := range got {
		index[p.String()] = i
	}
	for _, p := range got {
		if parent := p.Parent(); !parent.IsEmpty() {
			if pi, ok := index[parent.String()]; ok {
				assert.Less(t, pi, index[p.String()], "%s must precede %s", parent, p)
			}
		}
	}
	assert.Equal(t, 0, fsys.open)
}

func TestWalk_MaxDepth(t *testing.T) {
	_, fsys := newTree(t)

	got, err := listing.Collect(listing.Walk(fsys, core.Of("assets"), listing.WithMaxDepth(1)))
	require.NoError(t, err)
	assert.Equal(t, []string{"assets", "assets/notes-copy.txt", "assets/notes.txt", "assets/tasks"}, strs(got))

	got, err = listing.Collect(listing.Walk(fsys, core.Of("assets"), listing.WithMaxDepth(0)))
	require.NoError(t, err)
	assert.Equal(t, []string{"assets"}, strs(got))
}

func TestWalk_EarlyBreakReleasesAllLevels(t *testing.T) {
	_, fsys := newTree(t)

	for p := range listing.Walk(fsys, core.Of("assets")) {
		if p.String() == "assets/tasks/sub/deep.txt" {
			assert.Equal(t, 3, fsys.open, "one handle per level")
			break
		}
	}
	assert.Equal(t, 0, fsys.open)
}

func TestWalk_FileRootAndSymlinks(t *testing.T) {
	h, fsys := newTree(t)

	got, err := listing.Collect(listing.Walk(fsys, core.Of("assets/notes.txt")))
	require.NoError(t, err)
	assert.Equal(t, []string{"assets/notes.txt"}, strs(got))

	require.NoError(t, os.Symlink(h.Path("assets/tasks"), h.Path("assets/loop")))
	got, err = listing.Collect(listing.Walk(fsys, core.Of("assets"), listing.WithMaxDepth(1)))
	require.NoError(t, err)
	assert.Contains(t, strs(got), "assets/loop")

	all, err := listing.Collect(listing.Walk(fsys, core.Of("assets")))
	require.NoError(t, err)
	assert.NotContains(t, strs(all), "assets/loop/task.txt", "symlinks are not followed")
}

func TestWalk_MissingRoot(t *testing.T) {
	_, fsys := newTree(t)

	_, err := listing.Collect(listing.Walk(fsys, core.Of("nope")))
	assert.True(t, core.IsNotFound(err))
}
